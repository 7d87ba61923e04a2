// Copyright (c) 2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrLoanClosed indicates an attempt to return a loan which was
// already returned. A closed loan is terminal; borrowing the same
// work again requires a new Loan instance.
var ErrLoanClosed = errors.New("loan is already returned")

// Loan models one work borrowed by one patron. The loan and due dates
// are immutable once set. The ReturnedAt field is nil while the loan
// is open and is set exactly once by MarkReturned, transitioning the
// loan to its terminal returned state.
type Loan struct {
	ID         uuid.UUID  `json:"id"`
	WorkID     uuid.UUID  `json:"work_id"`
	PatronID   uuid.UUID  `json:"patron_id"`
	LoanedOn   time.Time  `json:"loaned_on"`
	DueOn      time.Time  `json:"due_on"`
	ReturnedAt *time.Time `json:"returned_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// NewLoan instantiates an open Loan for the given work and patron,
// loaned on the given date and due after the given number of days.
// The days argument is not bounded from below on purpose; a zero or
// negative value creates an already-due loan for callers which ask
// for it explicitly.
func NewLoan(
	workID, patronID uuid.UUID, loanedOn time.Time, days int,
) *Loan {
	loanedOn = Date(loanedOn)
	return &Loan{
		ID:        NewID(),
		WorkID:    workID,
		PatronID:  patronID,
		LoanedOn:  loanedOn,
		DueOn:     loanedOn.AddDate(0, 0, days),
		CreatedAt: time.Now(),
	}
}

// Returned reports whether this loan reached its terminal state.
func (l *Loan) Returned() bool {
	return l.ReturnedAt != nil
}

// MarkReturned records the return date and moves the loan to its
// terminal returned state. It fails with ErrLoanClosed if the loan
// was returned before; the first recorded return date is kept intact
// in that case.
func (l *Loan) MarkReturned(on time.Time) error {
	if l.Returned() {
		return ErrLoanClosed
	}
	d := Date(on)
	l.ReturnedAt = &d
	return nil
}

// DaysOverdue computes how many whole days the given reference date
// falls past the due date, or zero if the reference date is on or
// before the due date. It is a pure function of the dates and is
// defined for both open and returned loans; callers typically pass
// the current date for open loans and the actual return date for
// closed ones.
func (l *Loan) DaysOverdue(ref time.Time) int {
	days := int(Date(ref).Sub(Date(l.DueOn)).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}
