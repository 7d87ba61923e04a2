// Copyright (c) 2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package settings provides generic helpers for initialization and
// validation of optional configuration settings which are represented
// by pointer fields, so an uninitialized field can be detected as a
// nil pointer and filled by its default value.
package settings

// Nil2Value overwrites the (*t) pointer, which should be nil,
// in order to point to a newly allocated T instance and initializes it
// with the given v default value.
// If the (*t) pointer was not nil, Nil2Value will perform no action.
func Nil2Value[T any](t **T, v T) {
	if (*t) != nil {
		return
	}
	(*t) = &v
}
