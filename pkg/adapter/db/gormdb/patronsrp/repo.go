package patronsrp

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

func (patrons *Repo) Conn(c repo.Conn) repo.PatronsConnQueryer {
	cc := c.(*gormdb.Conn)
	return connQueryer{Conn: cc}
}

func (cq connQueryer) Save(ctx context.Context, p *model.Patron) error {
	return Save(ctx, cq.Conn, p)
}

func (cq connQueryer) Find(ctx context.Context, patronID uuid.UUID) (*model.Patron, error) {
	return Find(ctx, cq.Conn, patronID)
}

func (cq connQueryer) AddDebt(ctx context.Context, patronID uuid.UUID, amount float64) (*model.Patron, error) {
	return AddDebt(ctx, cq.Conn, patronID, amount)
}

func (cq connQueryer) ListDebtors(ctx context.Context) ([]model.Patron, error) {
	return ListDebtors(ctx, cq.Conn)
}

type txQueryer struct {
	*gormdb.Tx
}

func (patrons *Repo) Tx(tx repo.Tx) repo.PatronsTxQueryer {
	tt := tx.(*gormdb.Tx)
	return txQueryer{Tx: tt}
}

func (tq txQueryer) Save(ctx context.Context, p *model.Patron) error {
	return Save(ctx, tq.Tx, p)
}

func (tq txQueryer) Find(ctx context.Context, patronID uuid.UUID) (*model.Patron, error) {
	return Find(ctx, tq.Tx, patronID)
}

func (tq txQueryer) AddDebt(ctx context.Context, patronID uuid.UUID, amount float64) (*model.Patron, error) {
	return AddDebt(ctx, tq.Tx, patronID, amount)
}

func (tq txQueryer) ListDebtors(ctx context.Context) ([]model.Patron, error) {
	return ListDebtors(ctx, tq.Tx)
}

// Migrate creates or updates the patrons table, so it matches the
// gPatron row structure.
func Migrate[Q gormdb.Queryer](ctx context.Context, q Q) error {
	return q.GORM(ctx).AutoMigrate(&gPatron{})
}

// gPatron is the patrons table row structure. The email column is not
// declared unique since the lending rules do not depend on it; see the
// RegisterPatron use case.
type gPatron struct {
	PID       uuid.UUID `gorm:"primaryKey;type:uuid;column:pid"`
	Name      string    `gorm:"not null"`
	Email     string    `gorm:"not null"`
	Debt      float64   `gorm:"not null"`
	CreatedAt time.Time
}

func (gp *gPatron) TableName() string {
	return "patrons"
}

func (gp *gPatron) Model() *model.Patron {
	return &model.Patron{
		ID:        gp.PID,
		Name:      gp.Name,
		Email:     gp.Email,
		Debt:      gp.Debt,
		CreatedAt: gp.CreatedAt,
	}
}
