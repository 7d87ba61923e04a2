package repo

import (
	"context"

	"github.com/google/uuid"
	"github.com/momeni/liblend/pkg/core/model"
)

type WorksConnQueryer interface {
	WorksQueryer
}

type WorksTxQueryer interface {
	WorksQueryer
}

// WorksQueryer gathers the catalog and stock ledger operations over
// the works table. Find reports a missing work with a nil Work and a
// nil error, so callers can distinguish absence from storage failures
// without matching errors.
type WorksQueryer interface {
	// Save registers the given work, or, when a work with the same
	// title, author, year, and category natural key already exists,
	// grows the stock of that existing row by w.Quantity instead of
	// inserting a duplicate. The persisted row is returned, so the
	// caller can observe which identifier won the reconciliation.
	Save(ctx context.Context, w *model.Work) (*model.Work, error)

	Find(ctx context.Context, workID uuid.UUID) (*model.Work, error)

	// AdjustStock atomically adds delta (which may be negative) to the
	// available copy count of the given work, guarded by a quantity
	// plus delta >= 0 predicate so the count never drops below zero.
	// It fails with a model.ErrNotInCollection wrapping error when the
	// work is absent and with a model.ErrOutOfStock wrapping error
	// when the guard rejects a decrement.
	AdjustStock(
		ctx context.Context, workID uuid.UUID, delta int,
	) (*model.Work, error)

	// Available reads the current available copy count; absent works
	// read as zero without an error.
	Available(ctx context.Context, workID uuid.UUID) (int, error)

	List(ctx context.Context) ([]model.Work, error)
}

type Works interface {
	Conn(Conn) WorksConnQueryer
	Tx(Tx) WorksTxQueryer
}
