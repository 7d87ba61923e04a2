// Copyright (c) 2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package gormdb_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/momeni/liblend/pkg/adapter/db/gormdb"
	"github.com/momeni/liblend/pkg/adapter/db/gormdb/loansrp"
	"github.com/momeni/liblend/pkg/adapter/db/gormdb/patronsrp"
	"github.com/momeni/liblend/pkg/adapter/db/gormdb/schemarp"
	"github.com/momeni/liblend/pkg/adapter/db/gormdb/worksrp"
	"github.com/momeni/liblend/pkg/core/model"
	"github.com/momeni/liblend/pkg/core/repo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestPool opens a SQLite database in a per-test temporary
// directory and initializes the lending schema in it.
func newTestPool(t *testing.T) *gormdb.Pool {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "liblend-test.db")
	p, err := gormdb.NewSQLitePool(ctx, dsn)
	require.NoError(t, err, "opening %q database", dsn)
	t.Cleanup(func() {
		assert.NoError(t, p.Close(), "closing the connections pool")
	})
	schemaRepo := schemarp.New("", nil)
	err = p.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return schemaRepo.Conn(c).InitSchema(ctx)
	})
	require.NoError(t, err, "initializing the lending schema")
	return p
}

func newWork(t *testing.T, title string, quantity int) *model.Work {
	w, err := model.NewWork(
		title, "Machado de Assis", 1899, "Romance", quantity,
	)
	require.NoError(t, err, "instantiating %q work", title)
	return w
}

func TestWorksRepo(t *testing.T) {
	ctx := context.Background()
	p := newTestPool(t)
	works := worksrp.New()
	err := p.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		wq := works.Conn(c)

		w1, err := wq.Save(ctx, newWork(t, "Dom Casmurro", 2))
		require.NoError(t, err, "cataloguing a fresh work")
		assert.Equal(t, 2, w1.Quantity)

		w2, err := wq.Save(ctx, newWork(t, "Dom Casmurro", 3))
		require.NoError(t, err, "replenishing by the natural key")
		assert.Equal(t, w1.ID, w2.ID, "row identifier must be kept")
		assert.Equal(t, 5, w2.Quantity)

		w3, err := wq.Find(ctx, w1.ID)
		require.NoError(t, err)
		require.NotNil(t, w3)
		assert.Equal(t, 5, w3.Quantity)

		missing, err := wq.Find(ctx, uuid.New())
		require.NoError(t, err, "absence must not be an error")
		assert.Nil(t, missing)

		w4, err := wq.AdjustStock(ctx, w1.ID, -5)
		require.NoError(t, err, "taking all five copies")
		assert.Equal(t, 0, w4.Quantity)

		_, err = wq.AdjustStock(ctx, w1.ID, -1)
		assert.ErrorIs(
			t, err, model.ErrOutOfStock,
			"the stock may never drop below zero",
		)

		_, err = wq.AdjustStock(ctx, uuid.New(), -1)
		assert.ErrorIs(t, err, model.ErrNotInCollection)

		n, err := wq.Available(ctx, w1.ID)
		require.NoError(t, err)
		assert.Equal(t, 0, n)

		n, err = wq.Available(ctx, uuid.New())
		require.NoError(t, err, "absent works read as zero copies")
		assert.Equal(t, 0, n)

		_, err = wq.Save(ctx, newWork(t, "A Mao e a Luva", 1))
		require.NoError(t, err)
		all, err := wq.List(ctx)
		require.NoError(t, err)
		require.Len(t, all, 2)
		assert.Equal(t, "A Mao e a Luva", all[0].Title, "title order")
		assert.Equal(t, "Dom Casmurro", all[1].Title)
		return nil
	})
	require.NoError(t, err, "main connection error")
}

func TestPatronsRepo(t *testing.T) {
	ctx := context.Background()
	p := newTestPool(t)
	patrons := patronsrp.New()
	err := p.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		pq := patrons.Conn(c)

		ana := model.NewPatron("Ana Silva", "ana.silva@example.com")
		require.NoError(t, pq.Save(ctx, ana), "registering a patron")

		got, err := pq.Find(ctx, ana.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "Ana Silva", got.Name)
		assert.Zero(t, got.Debt)

		missing, err := pq.Find(ctx, uuid.New())
		require.NoError(t, err)
		assert.Nil(t, missing)

		got, err = pq.AddDebt(ctx, ana.ID, 2.5)
		require.NoError(t, err, "posting a late fee")
		assert.Equal(t, 2.5, got.Debt)

		got, err = pq.AddDebt(ctx, ana.ID, 1.5)
		require.NoError(t, err, "fees accumulate")
		assert.Equal(t, 4.0, got.Debt)

		_, err = pq.AddDebt(ctx, uuid.New(), 1)
		assert.Error(t, err, "an unknown patron cannot owe fees")

		bruno := model.NewPatron(
			"Bruno Costa", "bruno.costa@example.com",
		)
		require.NoError(t, pq.Save(ctx, bruno))
		debtors, err := pq.ListDebtors(ctx)
		require.NoError(t, err)
		require.Len(t, debtors, 1, "debt-free patrons are left out")
		assert.Equal(t, ana.ID, debtors[0].ID)
		return nil
	})
	require.NoError(t, err, "main connection error")
}

func TestLoansRepo(t *testing.T) {
	ctx := context.Background()
	p := newTestPool(t)
	works := worksrp.New()
	patrons := patronsrp.New()
	loans := loansrp.New()
	err := p.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		w, err := works.Conn(c).Save(ctx, newWork(t, "Dom Casmurro", 2))
		require.NoError(t, err)
		ana := model.NewPatron("Ana Silva", "ana.silva@example.com")
		require.NoError(t, patrons.Conn(c).Save(ctx, ana))
		lq := loans.Conn(c)

		on := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)
		older := model.NewLoan(w.ID, ana.ID, on, 7)
		require.NoError(t, lq.Save(ctx, older), "persisting a loan")
		newer := model.NewLoan(w.ID, ana.ID, on.AddDate(0, 0, 1), 7)
		require.NoError(t, lq.Save(ctx, newer))

		got, err := lq.Find(ctx, older.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, older.DueOn.UTC(), got.DueOn.UTC())
		assert.False(t, got.Returned())

		missing, err := lq.Find(ctx, uuid.New())
		require.NoError(t, err)
		assert.Nil(t, missing)

		ret := on.AddDate(0, 0, 3)
		got, err = lq.MarkReturned(ctx, older.ID, ret)
		require.NoError(t, err, "returning an open loan")
		require.NotNil(t, got.ReturnedAt)
		assert.Equal(t, model.Date(ret), got.ReturnedAt.UTC())

		_, err = lq.MarkReturned(ctx, older.ID, ret.AddDate(0, 0, 1))
		assert.ErrorIs(
			t, err, model.ErrLoanClosed,
			"a closed loan may not transition again",
		)

		_, err = lq.MarkReturned(ctx, uuid.New(), ret)
		assert.Error(t, err, "an unknown loan cannot be returned")

		history, err := lq.ListByPatron(ctx, ana.ID)
		require.NoError(t, err)
		require.Len(t, history, 2)
		assert.Equal(
			t, newer.ID, history[0].ID,
			"newest loan must come first",
		)
		assert.Equal(t, "Dom Casmurro", history[0].WorkTitle)
		assert.Equal(t, older.ID, history[1].ID)

		history, err = lq.ListByPatron(ctx, uuid.New())
		require.NoError(t, err)
		assert.Empty(t, history)
		return nil
	})
	require.NoError(t, err, "main connection error")
}

// TestGenericQueryers instantiates the package-level generic query
// functions with both of the gormdb.Queryer constraint alternatives,
// obtaining the context-bound *gorm.DB from a bare connection and
// from a transaction alike.
func TestGenericQueryers(t *testing.T) {
	ctx := context.Background()
	p := newTestPool(t)
	err := p.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		cc, ok := c.(*gormdb.Conn)
		require.True(t, ok, "connection concrete type")

		w, err := worksrp.Save(ctx, cc, newWork(t, "Esau e Jaco", 4))
		require.NoError(t, err, "saving over a bare connection")

		n, err := worksrp.Available(ctx, cc, w.ID)
		require.NoError(t, err)
		assert.Equal(t, 4, n)

		return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			tt, ok := tx.(*gormdb.Tx)
			require.True(t, ok, "transaction concrete type")

			got, err := worksrp.AdjustStock(ctx, tt, w.ID, -1)
			require.NoError(t, err, "adjusting over a transaction")
			assert.Equal(t, 3, got.Quantity)
			return nil
		})
	})
	require.NoError(t, err, "main connection error")
}

func TestTxRollback(t *testing.T) {
	ctx := context.Background()
	p := newTestPool(t)
	works := worksrp.New()
	errBail := errors.New("bail out")
	err := p.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		w, err := works.Conn(c).Save(ctx, newWork(t, "Dom Casmurro", 2))
		require.NoError(t, err)

		err = c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			_, err := works.Tx(tx).AdjustStock(ctx, w.ID, -2)
			require.NoError(t, err, "decrement inside the transaction")
			return errBail
		})
		assert.ErrorIs(t, err, errBail)

		n, err := works.Conn(c).Available(ctx, w.ID)
		require.NoError(t, err)
		assert.Equal(
			t, 2, n, "a failed transaction must leave no trace",
		)
		return nil
	})
	require.NoError(t, err, "main connection error")
}
