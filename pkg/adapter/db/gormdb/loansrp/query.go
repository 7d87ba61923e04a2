package loansrp

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/momeni/liblend/pkg/adapter/db/gormdb"
	"github.com/momeni/liblend/pkg/core/cerr"
	"github.com/momeni/liblend/pkg/core/model"
	"gorm.io/gorm/clause"
)

// Save persists the given loan as a fresh row.
func Save[Q gormdb.Queryer](ctx context.Context, q Q, l *model.Loan) error {
	gdb := q.GORM(ctx)
	gl := &gLoan{
		LID:        l.ID,
		WID:        l.WorkID,
		PID:        l.PatronID,
		LoanedOn:   l.LoanedOn,
		DueOn:      l.DueOn,
		ReturnedAt: l.ReturnedAt,
		CreatedAt:  l.CreatedAt,
	}
	if err := gdb.Create(gl).Error; err != nil {
		return fmt.Errorf("insert query: %w", err)
	}
	return nil
}

// Find resolves the loanID loan, reporting an absent row with a nil
// loan and a nil error.
func Find[Q gormdb.Queryer](ctx context.Context, q Q, loanID uuid.UUID) (*model.Loan, error) {
	gdb := q.GORM(ctx)
	var gls []gLoan
	res := gdb.Where("lid=?", loanID).Limit(1).Find(&gls)
	if err := res.Error; err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	if len(gls) == 0 {
		return nil, nil
	}
	return gls[0].Model(), nil
}

// MarkReturned records the `on` date as the return date of the loanID
// loan using a single UPDATE statement which is guarded by a NULL
// returned_at predicate, so a closed loan can never transition again.
// The updated loan is returned. A missing loan is reported with a
// not-found error and an already closed one with a conflict error
// wrapping model.ErrLoanClosed.
func MarkReturned[Q gormdb.Queryer](ctx context.Context, q Q, loanID uuid.UUID, on time.Time) (*model.Loan, error) {
	gdb := q.GORM(ctx)
	var gls []gLoan
	res := gdb.Model(&gls).Clauses(clause.Returning{}).Where(
		"lid=? AND returned_at IS NULL", loanID,
	).Update("returned_at", model.Date(on))
	if err := res.Error; err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	if len(gls) == 1 {
		return gls[0].Model(), nil
	}
	// zero rows; find out if the loan is absent or already closed
	l, err := Find(ctx, q, loanID)
	switch {
	case err != nil:
		return nil, err
	case l == nil:
		return nil, cerr.NotFound(
			fmt.Errorf("no loan with id %v", loanID),
		)
	}
	return nil, cerr.Conflict(fmt.Errorf(
		"loan %v was returned at %v: %w",
		loanID, *l.ReturnedAt, model.ErrLoanClosed,
	))
}

// ListByPatron fetches the loans which were taken by the patronID
// patron with the title of each loaned work at hand, ordered by the
// loan date, newest first.
func ListByPatron[Q gormdb.Queryer](ctx context.Context, q Q, patronID uuid.UUID) ([]model.PatronLoan, error) {
	gdb := q.GORM(ctx)
	var ghs []gHistoryRow
	res := gdb.Table("loans").Select(
		"loans.*, works.title AS work_title",
	).Joins(
		"JOIN works ON works.wid = loans.wid",
	).Where(
		"loans.pid=?", patronID,
	).Order(
		"loans.loaned_on DESC, loans.created_at DESC",
	).Scan(&ghs)
	if err := res.Error; err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	loans := make([]model.PatronLoan, 0, len(ghs))
	for i := range ghs {
		loans = append(loans, *ghs[i].Model())
	}
	return loans, nil
}
