// Copyright (c) 2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package model defines the inner most layer of the Clean Architecture
// containing the business-level models, also called entities or domain.
// This layer may not depend on outter layers, while all other layers
// may depend on it.
// Every entity is identified by a process-unique UUID which is assigned
// at the construction time and never changes thereafter. Callers which
// need to index entities should key their maps by that UUID directly
// instead of relying on a custom equality over the entity fields, so a
// mutated entity remains findable under its original key.
// By the way, it is acceptable to annotate structs in this package with
// multiple frameworks dependent tags (e.g., as required by ORM
// libraries) since adding more tags does not complicate definition of
// a struct, but can prevent unnecessary structs duplication.
package model

import (
	"time"

	"github.com/google/uuid"
)

// NewID generates a fresh entity identifier. Identifiers are never
// reused and never mutated once assigned to an entity.
func NewID() uuid.UUID {
	return uuid.New()
}

// Date drops the clock part of the given time instant, keeping its
// year, month, and day components in the UTC location. Lending and
// returning operations are recorded with a one day granularity, hence,
// all date comparisons in this package normalize their operands with
// this function first.
func Date(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
