package gormdb

import (
	"context"

	"github.com/momeni/liblend/pkg/core/repo"
	"gorm.io/gorm"
)

// Queryer constrains the generic query functions of the repository
// packages to the connection and transaction types of this adapter.
// The GORM method is declared explicitly, so those functions may
// obtain a context-bound *gorm.DB from their type parameter.
type Queryer interface {
	*Conn | *Tx
	repo.Queryer

	GORM(ctx context.Context) *gorm.DB
}
