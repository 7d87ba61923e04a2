// Copyright (c) 2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package lendinguc_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/momeni/liblend/pkg/core/cerr"
	"github.com/momeni/liblend/pkg/core/model"
	"github.com/momeni/liblend/pkg/core/usecase/lendinguc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUseCase(
	t *testing.T, db *fakeDB, opts ...lendinguc.Option,
) *lendinguc.UseCase {
	col, err := lendinguc.New(
		fakePool{db: db}, fakeWorks{}, fakePatrons{}, fakeLoans{},
		opts...,
	)
	require.NoError(t, err, "instantiating lending use case")
	return col
}

func assertStatusCode(t *testing.T, err error, code int) {
	var ce *cerr.Error
	if assert.ErrorAs(t, err, &ce, "expected a categorized error") {
		assert.Equal(t, code, ce.HTTPStatusCode)
	}
}

func TestNewRejectsInvalidOptions(t *testing.T) {
	for _, tc := range []struct {
		name string
		opts []lendinguc.Option
	}{
		{"non-positive period", []lendinguc.Option{
			lendinguc.WithLoanPeriod(0),
		}},
		{"repeated period", []lendinguc.Option{
			lendinguc.WithLoanPeriod(10),
			lendinguc.WithLoanPeriod(20),
		}},
		{"non-positive fine", []lendinguc.Option{
			lendinguc.WithDailyFine(-0.5),
		}},
		{"repeated fine", []lendinguc.Option{
			lendinguc.WithDailyFine(1),
			lendinguc.WithDailyFine(2),
		}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			col, err := lendinguc.New(
				fakePool{db: newFakeDB()},
				fakeWorks{}, fakePatrons{}, fakeLoans{},
				tc.opts...,
			)
			assert.Error(t, err)
			assert.Nil(t, col)
		})
	}
}

func TestAddWorkMergesSameNaturalKey(t *testing.T) {
	ctx := context.Background()
	db := newFakeDB()
	col := newUseCase(t, db)
	w1, err := col.AddWork(
		ctx, "Dom Casmurro", "Machado de Assis", 1899, "Romance", 2,
	)
	require.NoError(t, err, "cataloguing a fresh work")
	w2, err := col.AddWork(
		ctx, "Dom Casmurro", "Machado de Assis", 1899, "Romance", 3,
	)
	require.NoError(t, err, "replenishing the same work")
	assert.Equal(t, w1.ID, w2.ID, "one catalog entry must be kept")
	assert.Equal(t, 5, w2.Quantity, "quantities must be added up")

	w3, err := col.AddWork(
		ctx, "Dom Casmurro", "Machado de Assis", 1900, "Romance", 1,
	)
	require.NoError(t, err, "cataloguing another edition")
	assert.NotEqual(
		t, w1.ID, w3.ID,
		"a different publication year is a different work",
	)
}

func TestAddWorkRejectsNegativeQuantity(t *testing.T) {
	ctx := context.Background()
	col := newUseCase(t, newFakeDB())
	w, err := col.AddWork(
		ctx, "Dom Casmurro", "Machado de Assis", 1899, "Romance", -2,
	)
	assert.Nil(t, w)
	assertStatusCode(t, err, http.StatusBadRequest)
}

func TestRegisterPatronRequiresNameAndEmail(t *testing.T) {
	ctx := context.Background()
	col := newUseCase(t, newFakeDB())
	for _, tc := range []struct {
		name        string
		pname, mail string
	}{
		{"missing name", "", "ana.silva@example.com"},
		{"missing email", "Ana Silva", ""},
	} {
		t.Run(tc.name, func(t *testing.T) {
			p, err := col.RegisterPatron(ctx, tc.pname, tc.mail)
			assert.Nil(t, p)
			assertStatusCode(t, err, http.StatusBadRequest)
		})
	}
	p, err := col.RegisterPatron(
		ctx, "Ana Silva", "ana.silva@example.com",
	)
	require.NoError(t, err)
	assert.Zero(t, p.Debt, "a fresh patron must owe nothing")
}

func TestRemoveWork(t *testing.T) {
	ctx := context.Background()
	db := newFakeDB()
	col := newUseCase(t, db)
	w, err := col.AddWork(
		ctx, "O Cortico", "Aluisio Azevedo", 1890, "Romance", 1,
	)
	require.NoError(t, err)

	w2, err := col.RemoveWork(ctx, w.ID)
	require.NoError(t, err, "withdrawing the last copy")
	assert.Equal(t, 0, w2.Quantity)

	_, err = col.RemoveWork(ctx, w.ID)
	assertStatusCode(t, err, http.StatusConflict)
	assert.ErrorIs(t, err, model.ErrOutOfStock)

	_, err = col.RemoveWork(ctx, uuid.New())
	assertStatusCode(t, err, http.StatusNotFound)
	assert.ErrorIs(t, err, model.ErrNotInCollection)
}

func TestLendDecrementsStock(t *testing.T) {
	ctx := context.Background()
	db := newFakeDB()
	col := newUseCase(t, db)
	w, err := col.AddWork(
		ctx, "Vidas Secas", "Graciliano Ramos", 1938, "Romance", 1,
	)
	require.NoError(t, err)
	p, err := col.RegisterPatron(
		ctx, "Ana Silva", "ana.silva@example.com",
	)
	require.NoError(t, err)

	loan, err := col.Lend(ctx, w, p, 14)
	require.NoError(t, err, "lending the only copy")
	assert.Equal(t, w.ID, loan.WorkID)
	assert.Equal(t, p.ID, loan.PatronID)
	assert.Equal(
		t, loan.LoanedOn.AddDate(0, 0, 14), loan.DueOn,
		"due date must respect the asked period",
	)
	assert.Equal(t, 0, db.works[w.ID].Quantity)

	_, err = col.Lend(ctx, w, p, 14)
	assertStatusCode(t, err, http.StatusConflict)
	assert.ErrorIs(
		t, err, model.ErrOutOfStock,
		"no copy is left for a second loan",
	)
}

func TestLendFallsBackToDefaultPeriod(t *testing.T) {
	ctx := context.Background()
	db := newFakeDB()
	col := newUseCase(t, db, lendinguc.WithLoanPeriod(21))
	w, err := col.AddWork(
		ctx, "Vidas Secas", "Graciliano Ramos", 1938, "Romance", 2,
	)
	require.NoError(t, err)
	p, err := col.RegisterPatron(
		ctx, "Ana Silva", "ana.silva@example.com",
	)
	require.NoError(t, err)

	loan, err := col.Lend(ctx, w, p, 0)
	require.NoError(t, err)
	assert.Equal(t, loan.LoanedOn.AddDate(0, 0, 21), loan.DueOn)

	loan, err = col.Lend(ctx, w, p, -3)
	require.NoError(t, err, "negative periods are taken as asked")
	assert.Equal(t, loan.LoanedOn.AddDate(0, 0, -3), loan.DueOn)
}

func TestLendValidatesArguments(t *testing.T) {
	ctx := context.Background()
	col := newUseCase(t, newFakeDB())
	_, err := col.Lend(ctx, nil, model.NewPatron("a", "a@b.c"), 7)
	assertStatusCode(t, err, http.StatusBadRequest)
}

func TestLendByIDRequiresBothEntities(t *testing.T) {
	ctx := context.Background()
	db := newFakeDB()
	col := newUseCase(t, db)
	w, err := col.AddWork(
		ctx, "Vidas Secas", "Graciliano Ramos", 1938, "Romance", 1,
	)
	require.NoError(t, err)
	p, err := col.RegisterPatron(
		ctx, "Ana Silva", "ana.silva@example.com",
	)
	require.NoError(t, err)

	_, err = col.LendByID(ctx, uuid.New(), p.ID, 7)
	assertStatusCode(t, err, http.StatusNotFound)

	_, err = col.LendByID(ctx, w.ID, uuid.New(), 7)
	assertStatusCode(t, err, http.StatusNotFound)

	loan, err := col.LendByID(ctx, w.ID, p.ID, 7)
	require.NoError(t, err)
	assert.Equal(t, 0, db.works[w.ID].Quantity)
	assert.Contains(t, db.loans, loan.ID)
}

func TestLendRollsBackStockOnLoanFailure(t *testing.T) {
	ctx := context.Background()
	db := newFakeDB()
	col := newUseCase(t, db)
	w, err := col.AddWork(
		ctx, "Vidas Secas", "Graciliano Ramos", 1938, "Romance", 1,
	)
	require.NoError(t, err)
	p, err := col.RegisterPatron(
		ctx, "Ana Silva", "ana.silva@example.com",
	)
	require.NoError(t, err)

	db.loanSaveErr = errors.New("disk is full")
	loan, err := col.Lend(ctx, w, p, 7)
	assert.Nil(t, loan)
	assert.ErrorIs(t, err, db.loanSaveErr)
	assert.Equal(
		t, 1, db.works[w.ID].Quantity,
		"a failed loan persistence must restore the stock decrement",
	)
}

func TestReturnRestoresStock(t *testing.T) {
	ctx := context.Background()
	db := newFakeDB()
	col := newUseCase(t, db)
	w, err := col.AddWork(
		ctx, "Vidas Secas", "Graciliano Ramos", 1938, "Romance", 1,
	)
	require.NoError(t, err)
	p, err := col.RegisterPatron(
		ctx, "Ana Silva", "ana.silva@example.com",
	)
	require.NoError(t, err)
	loan, err := col.Lend(ctx, w, p, 7)
	require.NoError(t, err)

	on := time.Now().AddDate(0, 0, 2)
	returned, err := col.Return(ctx, loan.ID, on)
	require.NoError(t, err, "returning an open loan")
	assert.True(t, returned.Returned())
	assert.Equal(t, model.Date(on), *returned.ReturnedAt)
	assert.Equal(t, 1, db.works[w.ID].Quantity)

	_, err = col.Return(ctx, loan.ID, on)
	assertStatusCode(t, err, http.StatusConflict)
	assert.ErrorIs(t, err, model.ErrLoanClosed)
	assert.Equal(
		t, 1, db.works[w.ID].Quantity,
		"a rejected return must not touch the stock again",
	)

	_, err = col.Return(ctx, uuid.New(), on)
	assertStatusCode(t, err, http.StatusNotFound)
}

func TestTryReturnByIDToleratesMissingLoans(t *testing.T) {
	ctx := context.Background()
	db := newFakeDB()
	col := newUseCase(t, db)
	loan, err := col.TryReturnByID(ctx, uuid.New(), time.Now())
	assert.NoError(t, err, "a missing loan is not a failure")
	assert.Nil(t, loan)
}

func TestAssessLateFee(t *testing.T) {
	ctx := context.Background()
	db := newFakeDB()
	col := newUseCase(t, db, lendinguc.WithDailyFine(2.5))
	w, err := col.AddWork(
		ctx, "Vidas Secas", "Graciliano Ramos", 1938, "Romance", 2,
	)
	require.NoError(t, err)
	p, err := col.RegisterPatron(
		ctx, "Ana Silva", "ana.silva@example.com",
	)
	require.NoError(t, err)
	loan, err := col.Lend(ctx, w, p, -3)
	require.NoError(t, err, "lending with an already passed due date")

	ref := time.Now()
	fee, err := col.AssessLateFee(ctx, loan.ID, ref)
	require.NoError(t, err)
	assert.Equal(t, 7.5, fee, "3 overdue days at 2.5 per day")
	assert.Equal(t, 7.5, db.patrons[p.ID].Debt)

	fee, err = col.AssessLateFee(ctx, loan.ID, ref)
	require.NoError(t, err)
	assert.Equal(t, 7.5, fee)
	assert.Equal(
		t, 15.0, db.patrons[p.ID].Debt,
		"each assessment posts its fee independently",
	)
}

func TestAssessLateFeeOnTimeLoan(t *testing.T) {
	ctx := context.Background()
	db := newFakeDB()
	col := newUseCase(t, db, lendinguc.WithDailyFine(2.5))
	w, err := col.AddWork(
		ctx, "Vidas Secas", "Graciliano Ramos", 1938, "Romance", 1,
	)
	require.NoError(t, err)
	p, err := col.RegisterPatron(
		ctx, "Ana Silva", "ana.silva@example.com",
	)
	require.NoError(t, err)
	loan, err := col.Lend(ctx, w, p, 7)
	require.NoError(t, err)

	fee, err := col.AssessLateFee(ctx, loan.ID, time.Now())
	require.NoError(t, err)
	assert.Zero(t, fee)
	assert.Zero(
		t, db.patrons[p.ID].Debt,
		"a zero fee must not be posted at all",
	)

	_, err = col.AssessLateFee(ctx, uuid.New(), time.Now())
	assertStatusCode(t, err, http.StatusNotFound)
}

func TestFindersReportAbsenceWithNil(t *testing.T) {
	ctx := context.Background()
	col := newUseCase(t, newFakeDB())

	w, err := col.FindWork(ctx, uuid.New())
	assert.NoError(t, err)
	assert.Nil(t, w)

	p, err := col.FindPatron(ctx, uuid.New())
	assert.NoError(t, err)
	assert.Nil(t, p)

	l, err := col.FindLoan(ctx, uuid.New())
	assert.NoError(t, err)
	assert.Nil(t, l)
}

func TestReports(t *testing.T) {
	ctx := context.Background()
	db := newFakeDB()
	col := newUseCase(t, db, lendinguc.WithDailyFine(1))
	w1, err := col.AddWork(
		ctx, "Vidas Secas", "Graciliano Ramos", 1938, "Romance", 2,
	)
	require.NoError(t, err)
	w2, err := col.AddWork(
		ctx, "Dom Casmurro", "Machado de Assis", 1899, "Romance", 1,
	)
	require.NoError(t, err)
	ana, err := col.RegisterPatron(
		ctx, "Ana Silva", "ana.silva@example.com",
	)
	require.NoError(t, err)
	bruno, err := col.RegisterPatron(
		ctx, "Bruno Costa", "bruno.costa@example.com",
	)
	require.NoError(t, err)

	loan, err := col.Lend(ctx, w1, ana, -2)
	require.NoError(t, err)
	_, err = col.Lend(ctx, w2, ana, 7)
	require.NoError(t, err)
	_, err = col.AssessLateFee(ctx, loan.ID, time.Now())
	require.NoError(t, err)

	works, err := col.InventoryReport(ctx)
	require.NoError(t, err)
	require.Len(t, works, 2)
	assert.Equal(t, "Dom Casmurro", works[0].Title, "title order")
	assert.Equal(t, 0, works[0].Quantity)
	assert.Equal(t, "Vidas Secas", works[1].Title)
	assert.Equal(t, 1, works[1].Quantity)

	debtors, err := col.DebtReport(ctx)
	require.NoError(t, err)
	require.Len(t, debtors, 1, "only indebted patrons are listed")
	assert.Equal(t, ana.ID, debtors[0].ID)
	assert.Equal(t, 2.0, debtors[0].Debt)

	history, err := col.PatronHistory(ctx, ana.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	titles := []string{history[0].WorkTitle, history[1].WorkTitle}
	assert.ElementsMatch(
		t, []string{"Vidas Secas", "Dom Casmurro"}, titles,
	)

	history, err = col.PatronHistory(ctx, bruno.ID)
	require.NoError(t, err)
	assert.Empty(t, history, "a patron without loans has no history")
}
