package patronsrp

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/momeni/liblend/pkg/adapter/db/gormdb"
	"github.com/momeni/liblend/pkg/core/cerr"
	"github.com/momeni/liblend/pkg/core/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Save persists the given patron as a fresh registry row.
func Save[Q gormdb.Queryer](ctx context.Context, q Q, p *model.Patron) error {
	gdb := q.GORM(ctx)
	gp := &gPatron{
		PID:       p.ID,
		Name:      p.Name,
		Email:     p.Email,
		Debt:      p.Debt,
		CreatedAt: p.CreatedAt,
	}
	if err := gdb.Create(gp).Error; err != nil {
		return fmt.Errorf("insert query: %w", err)
	}
	return nil
}

// Find resolves the patronID patron, reporting an absent row with a
// nil patron and a nil error.
func Find[Q gormdb.Queryer](ctx context.Context, q Q, patronID uuid.UUID) (*model.Patron, error) {
	gdb := q.GORM(ctx)
	var gps []gPatron
	res := gdb.Where("pid=?", patronID).Limit(1).Find(&gps)
	if err := res.Error; err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	if len(gps) == 0 {
		return nil, nil
	}
	return gps[0].Model(), nil
}

// AddDebt posts the given amount to the outstanding debt of the
// patronID patron and returns the updated patron. A missing patron is
// reported with a not-found error.
func AddDebt[Q gormdb.Queryer](ctx context.Context, q Q, patronID uuid.UUID, amount float64) (*model.Patron, error) {
	gdb := q.GORM(ctx)
	var gps []gPatron
	res := gdb.Model(&gps).Clauses(clause.Returning{}).Where(
		"pid=?", patronID,
	).Update("debt", gorm.Expr("debt + ?", amount))
	if err := res.Error; err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	if n := len(gps); n != 1 {
		return nil, cerr.NotFound(
			fmt.Errorf("expected one row, but got %d", n),
		)
	}
	return gps[0].Model(), nil
}

// ListDebtors fetches the patrons having a positive outstanding debt,
// ordered by name.
func ListDebtors[Q gormdb.Queryer](ctx context.Context, q Q) ([]model.Patron, error) {
	gdb := q.GORM(ctx)
	var gps []gPatron
	res := gdb.Where("debt > 0").Order("name").Find(&gps)
	if err := res.Error; err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	patrons := make([]model.Patron, 0, len(gps))
	for i := range gps {
		patrons = append(patrons, *gps[i].Model())
	}
	return patrons, nil
}
