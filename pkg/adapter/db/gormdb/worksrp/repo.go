package worksrp

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/momeni/liblend/pkg/adapter/db/gormdb"
	"github.com/momeni/liblend/pkg/core/model"
	"github.com/momeni/liblend/pkg/core/repo"
)

type Repo struct {
}

func New() *Repo {
	return &Repo{}
}

type connQueryer struct {
	*gormdb.Conn
}

func (works *Repo) Conn(c repo.Conn) repo.WorksConnQueryer {
	cc := c.(*gormdb.Conn)
	return connQueryer{Conn: cc}
}

func (cq connQueryer) Save(ctx context.Context, w *model.Work) (*model.Work, error) {
	return Save(ctx, cq.Conn, w)
}

func (cq connQueryer) Find(ctx context.Context, workID uuid.UUID) (*model.Work, error) {
	return Find(ctx, cq.Conn, workID)
}

func (cq connQueryer) AdjustStock(ctx context.Context, workID uuid.UUID, delta int) (*model.Work, error) {
	return AdjustStock(ctx, cq.Conn, workID, delta)
}

func (cq connQueryer) Available(ctx context.Context, workID uuid.UUID) (int, error) {
	return Available(ctx, cq.Conn, workID)
}

func (cq connQueryer) List(ctx context.Context) ([]model.Work, error) {
	return List(ctx, cq.Conn)
}

type txQueryer struct {
	*gormdb.Tx
}

func (works *Repo) Tx(tx repo.Tx) repo.WorksTxQueryer {
	tt := tx.(*gormdb.Tx)
	return txQueryer{Tx: tt}
}

func (tq txQueryer) Save(ctx context.Context, w *model.Work) (*model.Work, error) {
	return Save(ctx, tq.Tx, w)
}

func (tq txQueryer) Find(ctx context.Context, workID uuid.UUID) (*model.Work, error) {
	return Find(ctx, tq.Tx, workID)
}

func (tq txQueryer) AdjustStock(ctx context.Context, workID uuid.UUID, delta int) (*model.Work, error) {
	return AdjustStock(ctx, tq.Tx, workID, delta)
}

func (tq txQueryer) Available(ctx context.Context, workID uuid.UUID) (int, error) {
	return Available(ctx, tq.Tx, workID)
}

func (tq txQueryer) List(ctx context.Context) ([]model.Work, error) {
	return List(ctx, tq.Tx)
}

// Migrate creates or updates the works table, so it matches the gWork
// row structure.
func Migrate[Q gormdb.Queryer](ctx context.Context, q Q) error {
	return q.GORM(ctx).AutoMigrate(&gWork{})
}

// gWork is the works table row structure.
type gWork struct {
	WID       uuid.UUID `gorm:"primaryKey;type:uuid;column:wid"`
	Title     string    `gorm:"not null"`
	Author    string    `gorm:"not null"`
	Year      int       `gorm:"not null"`
	Category  string    `gorm:"not null"`
	Quantity  int       `gorm:"not null"`
	CreatedAt time.Time
}

func (gw *gWork) TableName() string {
	return "works"
}

func (gw *gWork) Model() *model.Work {
	return &model.Work{
		ID:        gw.WID,
		Title:     gw.Title,
		Author:    gw.Author,
		Year:      gw.Year,
		Category:  gw.Category,
		Quantity:  gw.Quantity,
		CreatedAt: gw.CreatedAt,
	}
}
