// Copyright (c) 2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package command

import (
	"context"
	"fmt"

	"github.com/momeni/liblend/pkg/adapter/db/gormdb/patronsrp"
	"github.com/momeni/liblend/pkg/adapter/db/gormdb/worksrp"
	"github.com/momeni/liblend/pkg/core/model"
	"github.com/momeni/liblend/pkg/core/repo"
	"github.com/spf13/cobra"
)

var initDevCmd = &cobra.Command{
	Use:   "init-dev",
	Short: "Initialize database contents with development data",
	Long: `Initialize database contents with development suitable data.
The database connection information are read from the config file and
the admin role is used for the connection, so the lending tables can
be created. The normal role is created too (if missing) and granted
the privileges which the lending queries require. Thereafter, a series
of sample works and patrons are seeded, so the web server can serve
meaningful reports right away. All changes are applied in one
transaction.`,
	RunE: initDev,
	Args: cobra.NoArgs,
}

func initDev(_ *cobra.Command, _ []string) error {
	ctx := context.Background()
	c, err := loadConfig()
	if err != nil {
		return err
	}
	p, err := c.ConnectionPool(ctx, repo.AdminRole)
	if err != nil {
		return fmt.Errorf("creating admin DB pool: %w", err)
	}
	defer p.Close()
	schemaRepo := c.NewSchemaRepo()
	worksRepo := worksrp.New()
	patronsRepo := patronsrp.New()
	err = p.Conn(ctx, func(ctx context.Context, conn repo.Conn) error {
		return conn.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			sq := schemaRepo.Tx(tx)
			if err := sq.InitSchema(ctx); err != nil {
				return fmt.Errorf("initializing schema: %w", err)
			}
			err := sq.CreateRoleIfNotExists(ctx, repo.NormalRole)
			if err != nil {
				return fmt.Errorf("creating normal role: %w", err)
			}
			if err := sq.GrantPrivileges(ctx, repo.NormalRole); err != nil {
				return fmt.Errorf("granting privileges: %w", err)
			}
			return seed(ctx, worksRepo.Tx(tx), patronsRepo.Tx(tx))
		})
	})
	if err != nil {
		return fmt.Errorf("initializing DB with dev data: %w", err)
	}
	return nil
}

// seed fills the works and patrons tables with sample rows.
func seed(
	ctx context.Context,
	wq repo.WorksTxQueryer,
	pq repo.PatronsTxQueryer,
) error {
	samples := []struct {
		title, author string
		year          int
		category      string
		quantity      int
	}{
		{"Dom Casmurro", "Machado de Assis", 1899, "Romance", 3},
		{"O Cortico", "Aluisio Azevedo", 1890, "Romance", 2},
		{"Vidas Secas", "Graciliano Ramos", 1938, "Romance", 1},
	}
	for _, s := range samples {
		w, err := model.NewWork(
			s.title, s.author, s.year, s.category, s.quantity,
		)
		if err != nil {
			return fmt.Errorf("constructing %q work: %w", s.title, err)
		}
		if _, err := wq.Save(ctx, w); err != nil {
			return fmt.Errorf("seeding %q work: %w", s.title, err)
		}
	}
	patrons := []struct {
		name, email string
	}{
		{"Ana Silva", "ana.silva@example.com"},
		{"Bruno Costa", "bruno.costa@example.com"},
	}
	for _, s := range patrons {
		if err := pq.Save(ctx, model.NewPatron(s.name, s.email)); err != nil {
			return fmt.Errorf("seeding %q patron: %w", s.name, err)
		}
	}
	return nil
}

func init() {
	dbCmd.AddCommand(initDevCmd)
}
