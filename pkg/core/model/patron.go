// Copyright (c) 2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import (
	"time"

	"github.com/google/uuid"
)

// Patron models a person who is registered to borrow works from the
// collection. The Debt field accumulates the late fees which were
// posted against this patron; it starts at zero and only grows by fee
// postings (payments are out of the lending engine scope).
// Emails are intended to be unique across patrons, but no layer
// enforces the uniqueness currently; the registry stores what it is
// given.
type Patron struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Debt      float64   `json:"debt"`
	CreatedAt time.Time `json:"created_at"`
}

// NewPatron instantiates a Patron with a fresh identifier, a zero debt
// balance, and the current time as its creation timestamp.
func NewPatron(name, email string) *Patron {
	return &Patron{
		ID:        NewID(),
		Name:      name,
		Email:     email,
		CreatedAt: time.Now(),
	}
}
