// Copyright (c) 2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package lendinguc

import (
	"context"

	"github.com/google/uuid"
	"github.com/momeni/liblend/pkg/core/model"
	"github.com/momeni/liblend/pkg/core/repo"
)

// InventoryReport lists all catalogued works with their available copy
// counts. Rows are returned as plain models; their rendering is up to
// the caller.
func (col *UseCase) InventoryReport(
	ctx context.Context,
) (works []model.Work, err error) {
	err = col.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		works, err = col.worksrp.Conn(c).List(ctx)
		return err
	})
	if err != nil {
		works = nil
	}
	return
}

// DebtReport lists the patrons having a positive outstanding debt.
// Patrons who owe nothing are left out.
func (col *UseCase) DebtReport(
	ctx context.Context,
) (patrons []model.Patron, err error) {
	err = col.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		patrons, err = col.patronsrp.Conn(c).ListDebtors(ctx)
		return err
	})
	if err != nil {
		patrons = nil
	}
	return
}

// PatronHistory lists the loans which were taken by the pid patron,
// newest first, with the title of each loaned work at hand. A patron
// without any loans (or an unknown identifier) yields an empty list.
func (col *UseCase) PatronHistory(
	ctx context.Context, pid uuid.UUID,
) (loans []model.PatronLoan, err error) {
	err = col.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		loans, err = col.loansrp.Conn(c).ListByPatron(ctx, pid)
		return err
	})
	if err != nil {
		loans = nil
	}
	return
}
