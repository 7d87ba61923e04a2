// Copyright (c) 2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package lendinguc contains the lending UseCase which orchestrates
// the library collection use cases:
//  1. Cataloguing works and registering patrons,
//  2. Lending works to patrons and accepting their return,
//  3. Assessing late return fees,
//  4. Reporting on the inventory, debtors, and per-patron histories.
package lendinguc

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/momeni/liblend/pkg/core/cerr"
	"github.com/momeni/liblend/pkg/core/model"
	"github.com/momeni/liblend/pkg/core/repo"
)

// UseCase represents the lending use case. It holds a database
// connection pool, the works, patrons, and loans repository instances
// (to be guided with the DB pool), and the lending policy settings,
// namely the default loan period and the daily fine amount.
type UseCase struct {
	pool      repo.Pool
	worksrp   repo.Works
	patronsrp repo.Patrons
	loansrp   repo.Loans

	loanPeriodDays int
	finePerDay     float64
}

// New instantiates a lending use case.
// Required parameters are passed individually, so caller has to
// provision them and whenever they change, caller will notice and fix
// them due to a compilation error.
// Optional parameters are passed as a series of functional options
// in order to facilitate their validation and flexibility.
func New(
	p repo.Pool,
	w repo.Works,
	pa repo.Patrons,
	l repo.Loans,
	opts ...Option,
) (*UseCase, error) {
	uc := &UseCase{pool: p, worksrp: w, patronsrp: pa, loansrp: l}
	for _, opt := range opts {
		if err := opt(uc); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}
	// now, deal with defaults
	if uc.loanPeriodDays == 0 {
		uc.loanPeriodDays = 7
	}
	if uc.finePerDay == 0 {
		uc.finePerDay = 1
	}
	return uc, nil
}

// AddWork use case catalogues a work with the given attributes.
// When a work with the same title, author, publication year, and
// category is already catalogued, the given quantity is added to its
// stock instead of recording a duplicate entry. The catalogued (or
// replenished) work model and possible errors are returned.
func (col *UseCase) AddWork(
	ctx context.Context,
	title, author string,
	year int,
	category string,
	quantity int,
) (work *model.Work, err error) {
	work, err = model.NewWork(title, author, year, category, quantity)
	if err != nil {
		return nil, cerr.BadRequest(err)
	}
	err = col.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		q := col.worksrp.Conn(c)
		work, err = q.Save(ctx, work)
		return err
	})
	if err != nil {
		work = nil
	}
	return
}

// RemoveWork use case withdraws exactly one copy of the wid work from
// the collection. It fails with a not-found error if no such work is
// catalogued and with a conflict error if no copy is currently
// available. The updated work model and possible errors are returned.
func (col *UseCase) RemoveWork(
	ctx context.Context, wid uuid.UUID,
) (work *model.Work, err error) {
	err = col.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		q := col.worksrp.Conn(c)
		work, err = q.AdjustStock(ctx, wid, -1)
		return err
	})
	if err != nil {
		work = nil
	}
	return
}

// RegisterPatron use case registers a patron with the given name and
// email address, so works may be lent to them thereafter.
func (col *UseCase) RegisterPatron(
	ctx context.Context, name, email string,
) (patron *model.Patron, err error) {
	if name == "" || email == "" {
		return nil, cerr.BadRequest(
			errors.New("patron name and email are required"),
		)
	}
	patron = model.NewPatron(name, email)
	err = col.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return col.patronsrp.Conn(c).Save(ctx, patron)
	})
	if err != nil {
		patron = nil
	}
	return
}

// Lend use case lends one copy of the given work to the given patron
// for the days period, without checking that either entity is still
// persisted under its identifier (trusting the caller-provided
// models). For identifier-based resolution, see LendByID.
//
// If days is zero, the configured default loan period is used instead.
// A negative days value is accepted as is and yields an already-due
// loan. The stock decrement and the loan creation take place in one
// transaction, so a failed loan persistence rolls the decrement back.
func (col *UseCase) Lend(
	ctx context.Context,
	work *model.Work,
	patron *model.Patron,
	days int,
) (*model.Loan, error) {
	if work == nil || patron == nil {
		return nil, cerr.BadRequest(
			errors.New("both work and patron are required"),
		)
	}
	return col.lend(ctx, work.ID, patron.ID, days)
}

// LendByID use case resolves the wid work and pid patron and lends one
// copy of that work to that patron for the days period. It fails with
// a not-found error if either identifier resolves to nothing.
// See the Lend method for the days semantics.
func (col *UseCase) LendByID(
	ctx context.Context, wid, pid uuid.UUID, days int,
) (loan *model.Loan, err error) {
	err = col.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		work, err := col.worksrp.Conn(c).Find(ctx, wid)
		switch {
		case err != nil:
			return err
		case work == nil:
			return cerr.NotFound(
				fmt.Errorf("no work with id %v", wid),
			)
		}
		patron, err := col.patronsrp.Conn(c).Find(ctx, pid)
		switch {
		case err != nil:
			return err
		case patron == nil:
			return cerr.NotFound(
				fmt.Errorf("no patron with id %v", pid),
			)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return col.lend(ctx, wid, pid, days)
}

// lend decrements the wid work stock and persists a fresh open loan
// for the pid patron as one transaction.
func (col *UseCase) lend(
	ctx context.Context, wid, pid uuid.UUID, days int,
) (loan *model.Loan, err error) {
	if days == 0 {
		days = col.loanPeriodDays
	}
	err = col.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			wq := col.worksrp.Tx(tx)
			if _, err := wq.AdjustStock(ctx, wid, -1); err != nil {
				return err
			}
			loan = model.NewLoan(wid, pid, time.Now(), days)
			return col.loansrp.Tx(tx).Save(ctx, loan)
		})
	})
	if err != nil {
		loan = nil
	}
	return
}

// Return use case marks the lid loan as returned at the `on` date and
// restores one copy of its work to the stock, as one transaction.
// It fails with a not-found error if no such loan exists and with a
// conflict error if the loan was already returned. The updated loan
// model and possible errors are returned.
func (col *UseCase) Return(
	ctx context.Context, lid uuid.UUID, on time.Time,
) (loan *model.Loan, err error) {
	err = col.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			loan, err = col.loansrp.Tx(tx).MarkReturned(ctx, lid, on)
			if err != nil {
				return err
			}
			_, err = col.worksrp.Tx(tx).AdjustStock(ctx, loan.WorkID, 1)
			return err
		})
	})
	if err != nil {
		loan = nil
	}
	return
}

// TryReturnByID use case works like Return, but when the lid loan does
// not exist, it reports the absence with a nil loan and a nil error
// instead of failing, so batch callers may skip missing loans without
// aborting. All other failures, including an already returned loan,
// are still reported as errors.
func (col *UseCase) TryReturnByID(
	ctx context.Context, lid uuid.UUID, on time.Time,
) (*model.Loan, error) {
	var loan *model.Loan
	err := col.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		l, err := col.loansrp.Conn(c).Find(ctx, lid)
		loan = l
		return err
	})
	if err != nil || loan == nil {
		return nil, err
	}
	return col.Return(ctx, lid, on)
}

// AssessLateFee use case computes the late return fee of the lid loan
// with respect to the ref reference date, charging the configured fine
// amount per overdue day. A positive fee is posted to the debt of the
// loan's patron and persisted; a zero fee is computed and returned
// without any posting. Each call posts independently, so assessing the
// same loan twice doubles the posted debt.
func (col *UseCase) AssessLateFee(
	ctx context.Context, lid uuid.UUID, ref time.Time,
) (fee float64, err error) {
	var loan *model.Loan
	err = col.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		loan, err = col.loansrp.Conn(c).Find(ctx, lid)
		switch {
		case err != nil:
			return err
		case loan == nil:
			return cerr.NotFound(
				fmt.Errorf("no loan with id %v", lid),
			)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	fee = float64(loan.DaysOverdue(ref)) * col.finePerDay
	if fee <= 0 {
		return 0, nil
	}
	err = col.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			_, err := col.patronsrp.Tx(tx).AddDebt(
				ctx, loan.PatronID, fee,
			)
			return err
		})
	})
	if err != nil {
		return 0, err
	}
	return fee, nil
}

// FindWork resolves the wid work by its identifier. A missing work is
// reported with a nil model and a nil error, not with a not-found
// error, so callers can distinguish absence without unwrapping errors.
func (col *UseCase) FindWork(
	ctx context.Context, wid uuid.UUID,
) (work *model.Work, err error) {
	err = col.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		work, err = col.worksrp.Conn(c).Find(ctx, wid)
		return err
	})
	if err != nil {
		work = nil
	}
	return
}

// FindPatron resolves the pid patron by its identifier, reporting
// absence with a nil model and a nil error like FindWork.
func (col *UseCase) FindPatron(
	ctx context.Context, pid uuid.UUID,
) (patron *model.Patron, err error) {
	err = col.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		patron, err = col.patronsrp.Conn(c).Find(ctx, pid)
		return err
	})
	if err != nil {
		patron = nil
	}
	return
}

// FindLoan resolves the lid loan by its identifier, reporting absence
// with a nil model and a nil error like FindWork.
func (col *UseCase) FindLoan(
	ctx context.Context, lid uuid.UUID,
) (loan *model.Loan, err error) {
	err = col.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		loan, err = col.loansrp.Conn(c).Find(ctx, lid)
		return err
	})
	if err != nil {
		loan = nil
	}
	return
}
