// Copyright (c) 2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ErrOutOfStock indicates that a work exists in the collection but all
// of its copies are currently loaned out, so no copy may be taken.
// Callers already know which work was asked, so the error does not
// repeat it; they should wrap this error with their own context.
var ErrOutOfStock = errors.New("work has no available copy")

// ErrNotInCollection indicates that a work is not registered in the
// collection at all, in contrast to the ErrOutOfStock which reports a
// registered work with a zero available count.
var ErrNotInCollection = errors.New("work is not in the collection")

// Work models a catalogued item, such as a book or a periodical, which
// may be borrowed from the collection. The Quantity field counts the
// copies which are currently in the collection's possession; copies
// which are loaned out are decremented from it instead of being
// tracked separately, hence, Quantity may never drop below zero.
type Work struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	Year      int       `json:"year"`     // publication year
	Category  string    `json:"category"` // free-form category string
	Quantity  int       `json:"quantity"` // currently available copies
	CreatedAt time.Time `json:"created_at"`
}

// NewWork instantiates a Work with a fresh identifier and the current
// time as its creation timestamp. The quantity argument counts the
// copies of the initial batch and must not be negative.
func NewWork(
	title, author string, year int, category string, quantity int,
) (*Work, error) {
	if quantity < 0 {
		return nil, fmt.Errorf("negative quantity: %d", quantity)
	}
	return &Work{
		ID:        NewID(),
		Title:     title,
		Author:    author,
		Year:      year,
		Category:  category,
		Quantity:  quantity,
		CreatedAt: time.Now(),
	}, nil
}

// String returns a human readable representation of the work, as used
// by the CLI demo reports.
func (w *Work) String() string {
	return fmt.Sprintf("%s (%d)", w.Title, w.Year)
}
