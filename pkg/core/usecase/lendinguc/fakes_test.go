// Copyright (c) 2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package lendinguc_test

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/momeni/liblend/pkg/core/cerr"
	"github.com/momeni/liblend/pkg/core/model"
	"github.com/momeni/liblend/pkg/core/repo"
)

// fakeDB is an in-memory stand-in for the database, shared by the
// fake pool, connection, transaction, and repository implementations.
// A transaction snapshots the maps before running its handler and
// restores them if the handler fails, mimicking a rollback.
type fakeDB struct {
	works   map[uuid.UUID]model.Work
	patrons map[uuid.UUID]model.Patron
	loans   map[uuid.UUID]model.Loan

	// loanSaveErr, if set, fails the next loans Save call, so tests
	// can observe how a failed transaction compensates its earlier
	// statements.
	loanSaveErr error
}

func newFakeDB() *fakeDB {
	return &fakeDB{
		works:   make(map[uuid.UUID]model.Work),
		patrons: make(map[uuid.UUID]model.Patron),
		loans:   make(map[uuid.UUID]model.Loan),
	}
}

func (db *fakeDB) snapshot() *fakeDB {
	s := newFakeDB()
	for k, v := range db.works {
		s.works[k] = v
	}
	for k, v := range db.patrons {
		s.patrons[k] = v
	}
	for k, v := range db.loans {
		s.loans[k] = v
	}
	return s
}

func (db *fakeDB) restore(s *fakeDB) {
	db.works = s.works
	db.patrons = s.patrons
	db.loans = s.loans
}

// This conversion ensures that fakePool implements the repo.Pool
// interface, so a contract change breaks the fakes at compile time
// instead of failing some use case test indirectly.
var _ repo.Pool = fakePool{}

type fakePool struct {
	db *fakeDB
}

func (p fakePool) Conn(
	ctx context.Context, handler repo.ConnHandler,
) error {
	return handler(ctx, &fakeConn{db: p.db})
}

func (p fakePool) Close() error {
	return nil
}

type fakeConn struct {
	db *fakeDB
}

func (c *fakeConn) Exec(
	_ context.Context, _ string, _ ...any,
) (int64, error) {
	return 0, errors.New("raw SQL statements are not supported")
}

func (c *fakeConn) Query(
	_ context.Context, _ string, _ ...any,
) (repo.Rows, error) {
	return nil, errors.New("raw SQL statements are not supported")
}

func (c *fakeConn) Tx(
	ctx context.Context, handler repo.TxHandler,
) error {
	s := c.db.snapshot()
	if err := handler(ctx, &fakeTx{db: c.db}); err != nil {
		c.db.restore(s)
		return err
	}
	return nil
}

func (c *fakeConn) IsConn() {
}

type fakeTx struct {
	db *fakeDB
}

func (tx *fakeTx) Exec(
	_ context.Context, _ string, _ ...any,
) (int64, error) {
	return 0, errors.New("raw SQL statements are not supported")
}

func (tx *fakeTx) Query(
	_ context.Context, _ string, _ ...any,
) (repo.Rows, error) {
	return nil, errors.New("raw SQL statements are not supported")
}

func (tx *fakeTx) IsTx() {
}

// unwrapDB extracts the shared fakeDB out of a fake connection or
// transaction, as the real repositories unwrap their concrete types.
func unwrapDB(q any) *fakeDB {
	switch q := q.(type) {
	case *fakeConn:
		return q.db
	case *fakeTx:
		return q.db
	default:
		panic(fmt.Sprintf("unexpected queryer type: %T", q))
	}
}

type fakeWorks struct {
}

func (fakeWorks) Conn(c repo.Conn) repo.WorksConnQueryer {
	return worksQ{db: unwrapDB(c)}
}

func (fakeWorks) Tx(tx repo.Tx) repo.WorksTxQueryer {
	return worksQ{db: unwrapDB(tx)}
}

type worksQ struct {
	db *fakeDB
}

func (q worksQ) Save(
	_ context.Context, w *model.Work,
) (*model.Work, error) {
	for id, g := range q.db.works {
		if g.Title == w.Title && g.Author == w.Author &&
			g.Year == w.Year && g.Category == w.Category {
			g.Quantity += w.Quantity
			q.db.works[id] = g
			return &g, nil
		}
	}
	q.db.works[w.ID] = *w
	g := *w
	return &g, nil
}

func (q worksQ) Find(
	_ context.Context, workID uuid.UUID,
) (*model.Work, error) {
	g, ok := q.db.works[workID]
	if !ok {
		return nil, nil
	}
	return &g, nil
}

func (q worksQ) AdjustStock(
	_ context.Context, workID uuid.UUID, delta int,
) (*model.Work, error) {
	g, ok := q.db.works[workID]
	if !ok {
		return nil, cerr.NotFound(fmt.Errorf(
			"work %v: %w", workID, model.ErrNotInCollection,
		))
	}
	if g.Quantity+delta < 0 {
		return nil, cerr.Conflict(fmt.Errorf(
			"work %v has %d copies: %w",
			workID, g.Quantity, model.ErrOutOfStock,
		))
	}
	g.Quantity += delta
	q.db.works[workID] = g
	return &g, nil
}

func (q worksQ) Available(
	_ context.Context, workID uuid.UUID,
) (int, error) {
	return q.db.works[workID].Quantity, nil
}

func (q worksQ) List(_ context.Context) ([]model.Work, error) {
	ws := make([]model.Work, 0, len(q.db.works))
	for _, g := range q.db.works {
		ws = append(ws, g)
	}
	sort.Slice(ws, func(i, j int) bool {
		if ws[i].Title != ws[j].Title {
			return ws[i].Title < ws[j].Title
		}
		return ws[i].Year < ws[j].Year
	})
	return ws, nil
}

type fakePatrons struct {
}

func (fakePatrons) Conn(c repo.Conn) repo.PatronsConnQueryer {
	return patronsQ{db: unwrapDB(c)}
}

func (fakePatrons) Tx(tx repo.Tx) repo.PatronsTxQueryer {
	return patronsQ{db: unwrapDB(tx)}
}

type patronsQ struct {
	db *fakeDB
}

func (q patronsQ) Save(_ context.Context, p *model.Patron) error {
	q.db.patrons[p.ID] = *p
	return nil
}

func (q patronsQ) Find(
	_ context.Context, patronID uuid.UUID,
) (*model.Patron, error) {
	g, ok := q.db.patrons[patronID]
	if !ok {
		return nil, nil
	}
	return &g, nil
}

func (q patronsQ) AddDebt(
	_ context.Context, patronID uuid.UUID, amount float64,
) (*model.Patron, error) {
	g, ok := q.db.patrons[patronID]
	if !ok {
		return nil, cerr.NotFound(
			errors.New("expected one row, but got 0"),
		)
	}
	g.Debt += amount
	q.db.patrons[patronID] = g
	return &g, nil
}

func (q patronsQ) ListDebtors(
	_ context.Context,
) ([]model.Patron, error) {
	ps := make([]model.Patron, 0, len(q.db.patrons))
	for _, g := range q.db.patrons {
		if g.Debt > 0 {
			ps = append(ps, g)
		}
	}
	sort.Slice(ps, func(i, j int) bool {
		return ps[i].Name < ps[j].Name
	})
	return ps, nil
}

type fakeLoans struct {
}

func (fakeLoans) Conn(c repo.Conn) repo.LoansConnQueryer {
	return loansQ{db: unwrapDB(c)}
}

func (fakeLoans) Tx(tx repo.Tx) repo.LoansTxQueryer {
	return loansQ{db: unwrapDB(tx)}
}

type loansQ struct {
	db *fakeDB
}

func (q loansQ) Save(_ context.Context, l *model.Loan) error {
	if err := q.db.loanSaveErr; err != nil {
		return err
	}
	q.db.loans[l.ID] = *l
	return nil
}

func (q loansQ) Find(
	_ context.Context, loanID uuid.UUID,
) (*model.Loan, error) {
	g, ok := q.db.loans[loanID]
	if !ok {
		return nil, nil
	}
	return &g, nil
}

func (q loansQ) MarkReturned(
	_ context.Context, loanID uuid.UUID, on time.Time,
) (*model.Loan, error) {
	g, ok := q.db.loans[loanID]
	if !ok {
		return nil, cerr.NotFound(
			fmt.Errorf("no loan with id %v", loanID),
		)
	}
	if g.ReturnedAt != nil {
		return nil, cerr.Conflict(fmt.Errorf(
			"loan %v was returned at %v: %w",
			loanID, *g.ReturnedAt, model.ErrLoanClosed,
		))
	}
	d := model.Date(on)
	g.ReturnedAt = &d
	q.db.loans[loanID] = g
	return &g, nil
}

func (q loansQ) ListByPatron(
	_ context.Context, patronID uuid.UUID,
) ([]model.PatronLoan, error) {
	ls := make([]model.PatronLoan, 0, len(q.db.loans))
	for _, g := range q.db.loans {
		if g.PatronID != patronID {
			continue
		}
		ls = append(ls, model.PatronLoan{
			Loan:      g,
			WorkTitle: q.db.works[g.WorkID].Title,
		})
	}
	sort.Slice(ls, func(i, j int) bool {
		if !ls[i].LoanedOn.Equal(ls[j].LoanedOn) {
			return ls[i].LoanedOn.After(ls[j].LoanedOn)
		}
		return ls[i].CreatedAt.After(ls[j].CreatedAt)
	})
	return ls, nil
}
