package repo

import (
	"context"

	"github.com/google/uuid"
	"github.com/momeni/liblend/pkg/core/model"
)

type PatronsConnQueryer interface {
	PatronsQueryer
}

type PatronsTxQueryer interface {
	PatronsQueryer
}

// PatronsQueryer gathers the patron registry operations. Find reports
// a missing patron with a nil Patron and a nil error.
type PatronsQueryer interface {
	Save(ctx context.Context, p *model.Patron) error

	Find(ctx context.Context, patronID uuid.UUID) (*model.Patron, error)

	// AddDebt atomically posts the given positive amount to the debt
	// balance of the given patron, returning the updated patron. It
	// fails with a not-found error when the patron is absent.
	AddDebt(
		ctx context.Context, patronID uuid.UUID, amount float64,
	) (*model.Patron, error)

	// ListDebtors lists the patrons having a positive debt balance.
	ListDebtors(ctx context.Context) ([]model.Patron, error)
}

type Patrons interface {
	Conn(Conn) PatronsConnQueryer
	Tx(Tx) PatronsTxQueryer
}
