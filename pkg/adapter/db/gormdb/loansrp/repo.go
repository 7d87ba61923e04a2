package loansrp

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

func (loans *Repo) Conn(c repo.Conn) repo.LoansConnQueryer {
	cc := c.(*gormdb.Conn)
	return connQueryer{Conn: cc}
}

func (cq connQueryer) Save(ctx context.Context, l *model.Loan) error {
	return Save(ctx, cq.Conn, l)
}

func (cq connQueryer) Find(ctx context.Context, loanID uuid.UUID) (*model.Loan, error) {
	return Find(ctx, cq.Conn, loanID)
}

func (cq connQueryer) MarkReturned(ctx context.Context, loanID uuid.UUID, on time.Time) (*model.Loan, error) {
	return MarkReturned(ctx, cq.Conn, loanID, on)
}

func (cq connQueryer) ListByPatron(ctx context.Context, patronID uuid.UUID) ([]model.PatronLoan, error) {
	return ListByPatron(ctx, cq.Conn, patronID)
}

type txQueryer struct {
	*gormdb.Tx
}

func (loans *Repo) Tx(tx repo.Tx) repo.LoansTxQueryer {
	tt := tx.(*gormdb.Tx)
	return txQueryer{Tx: tt}
}

func (tq txQueryer) Save(ctx context.Context, l *model.Loan) error {
	return Save(ctx, tq.Tx, l)
}

func (tq txQueryer) Find(ctx context.Context, loanID uuid.UUID) (*model.Loan, error) {
	return Find(ctx, tq.Tx, loanID)
}

func (tq txQueryer) MarkReturned(ctx context.Context, loanID uuid.UUID, on time.Time) (*model.Loan, error) {
	return MarkReturned(ctx, tq.Tx, loanID, on)
}

func (tq txQueryer) ListByPatron(ctx context.Context, patronID uuid.UUID) ([]model.PatronLoan, error) {
	return ListByPatron(ctx, tq.Tx, patronID)
}

// Migrate creates or updates the loans table, so it matches the gLoan
// row structure.
func Migrate[Q gormdb.Queryer](ctx context.Context, q Q) error {
	return q.GORM(ctx).AutoMigrate(&gLoan{})
}

// gLoan is the loans table row structure. An open loan keeps a NULL
// returned_at column, so the loan lifecycle transition can be guarded
// by a single conditional UPDATE; see the MarkReturned function.
type gLoan struct {
	LID        uuid.UUID `gorm:"primaryKey;type:uuid;column:lid"`
	WID        uuid.UUID `gorm:"type:uuid;column:wid;not null;index"`
	PID        uuid.UUID `gorm:"type:uuid;column:pid;not null;index"`
	LoanedOn   time.Time `gorm:"not null"`
	DueOn      time.Time `gorm:"not null"`
	ReturnedAt *time.Time
	CreatedAt  time.Time
}

func (gl *gLoan) TableName() string {
	return "loans"
}

func (gl *gLoan) Model() *model.Loan {
	return &model.Loan{
		ID:         gl.LID,
		WorkID:     gl.WID,
		PatronID:   gl.PID,
		LoanedOn:   gl.LoanedOn,
		DueOn:      gl.DueOn,
		ReturnedAt: gl.ReturnedAt,
		CreatedAt:  gl.CreatedAt,
	}
}

// gHistoryRow is the patron history projection row, joining each loan
// with the title of its loaned work.
type gHistoryRow struct {
	LID        uuid.UUID `gorm:"column:lid"`
	WID        uuid.UUID `gorm:"column:wid"`
	PID        uuid.UUID `gorm:"column:pid"`
	LoanedOn   time.Time
	DueOn      time.Time
	ReturnedAt *time.Time
	CreatedAt  time.Time
	WorkTitle  string
}

func (gh *gHistoryRow) Model() *model.PatronLoan {
	return &model.PatronLoan{
		Loan: model.Loan{
			ID:         gh.LID,
			WorkID:     gh.WID,
			PatronID:   gh.PID,
			LoanedOn:   gh.LoanedOn,
			DueOn:      gh.DueOn,
			ReturnedAt: gh.ReturnedAt,
			CreatedAt:  gh.CreatedAt,
		},
		WorkTitle: gh.WorkTitle,
	}
}
