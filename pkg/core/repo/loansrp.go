package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/momeni/liblend/pkg/core/model"
)

type LoansConnQueryer interface {
	LoansQueryer
}

type LoansTxQueryer interface {
	LoansQueryer
}

// LoansQueryer gathers the loan records operations. Find reports a
// missing loan with a nil Loan and a nil error.
type LoansQueryer interface {
	Save(ctx context.Context, l *model.Loan) error

	Find(ctx context.Context, loanID uuid.UUID) (*model.Loan, error)

	// MarkReturned records the return date of the given open loan,
	// guarded by a returned-at IS NULL predicate, and returns the
	// updated loan. It fails with a model.ErrLoanClosed wrapping error
	// when the loan was returned before and with a not-found error
	// when no such loan exists.
	MarkReturned(
		ctx context.Context, loanID uuid.UUID, on time.Time,
	) (*model.Loan, error)

	// ListByPatron lists the loans taken by the given patron, joined
	// with their work titles and ordered by loan date, newest first.
	ListByPatron(
		ctx context.Context, patronID uuid.UUID,
	) ([]model.PatronLoan, error)
}

type Loans interface {
	Conn(Conn) LoansConnQueryer
	Tx(Tx) LoansTxQueryer
}
