package worksrp

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

// Save persists the given work. A work which matches an existing row
// by its title, author, year, and category natural key replenishes the
// stock of that row instead of inserting a duplicate, keeping the row
// identifier intact. The persisted work is returned.
func Save[Q gormdb.Queryer](ctx context.Context, q Q, w *model.Work) (*model.Work, error) {
	gdb := q.GORM(ctx)
	var gws []gWork
	res := gdb.Model(&gws).Clauses(clause.Returning{}).Where(
		"title=? AND author=? AND year=? AND category=?",
		w.Title, w.Author, w.Year, w.Category,
	).Update("quantity", gorm.Expr("quantity + ?", w.Quantity))
	if err := res.Error; err != nil {
		return nil, fmt.Errorf("replenish query: %w", err)
	}
	if len(gws) == 1 {
		return gws[0].Model(), nil
	}
	gw := &gWork{
		WID:       w.ID,
		Title:     w.Title,
		Author:    w.Author,
		Year:      w.Year,
		Category:  w.Category,
		Quantity:  w.Quantity,
		CreatedAt: w.CreatedAt,
	}
	if err := gdb.Create(gw).Error; err != nil {
		return nil, fmt.Errorf("insert query: %w", err)
	}
	return gw.Model(), nil
}

// Find resolves the workID work, reporting an absent row with a nil
// work and a nil error.
func Find[Q gormdb.Queryer](ctx context.Context, q Q, workID uuid.UUID) (*model.Work, error) {
	gdb := q.GORM(ctx)
	var gws []gWork
	res := gdb.Where("wid=?", workID).Limit(1).Find(&gws)
	if err := res.Error; err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	if len(gws) == 0 {
		return nil, nil
	}
	return gws[0].Model(), nil
}

// AdjustStock adds delta, which may be negative, to the stock of the
// workID work using a single conditional UPDATE statement, so the
// stock may never drop below zero even if two decrements race. The
// updated work is returned. A missing work is reported with a
// not-found error wrapping model.ErrNotInCollection and a rejected
// decrement with a conflict error wrapping model.ErrOutOfStock.
func AdjustStock[Q gormdb.Queryer](ctx context.Context, q Q, workID uuid.UUID, delta int) (*model.Work, error) {
	gdb := q.GORM(ctx)
	var gws []gWork
	res := gdb.Model(&gws).Clauses(clause.Returning{}).Where(
		"wid=? AND quantity + ? >= 0", workID, delta,
	).Update("quantity", gorm.Expr("quantity + ?", delta))
	if err := res.Error; err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	if len(gws) == 1 {
		return gws[0].Model(), nil
	}
	// zero rows; find out if the work is absent or out of stock
	w, err := Find(ctx, q, workID)
	switch {
	case err != nil:
		return nil, err
	case w == nil:
		return nil, cerr.NotFound(fmt.Errorf(
			"work %v: %w", workID, model.ErrNotInCollection,
		))
	}
	return nil, cerr.Conflict(fmt.Errorf(
		"work %v has %d copies: %w",
		workID, w.Quantity, model.ErrOutOfStock,
	))
}

// Available reads the currently available copy count of the workID
// work. An absent work reads as zero copies.
func Available[Q gormdb.Queryer](ctx context.Context, q Q, workID uuid.UUID) (int, error) {
	w, err := Find(ctx, q, workID)
	if err != nil || w == nil {
		return 0, err
	}
	return w.Quantity, nil
}

// List fetches all catalogued works, ordered by title and year.
func List[Q gormdb.Queryer](ctx context.Context, q Q) ([]model.Work, error) {
	gdb := q.GORM(ctx)
	var gws []gWork
	if err := gdb.Order("title, year").Find(&gws).Error; err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	works := make([]model.Work, 0, len(gws))
	for i := range gws {
		works = append(works, *gws[i].Model())
	}
	return works, nil
}
