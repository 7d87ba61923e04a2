// Copyright (c) 2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package command

import (
	"context"
	"fmt"

	"github.com/momeni/liblend/pkg/core/repo"
	"github.com/spf13/cobra"
)

var initProdCmd = &cobra.Command{
	Use:   "init-prod",
	Short: "Initialize database contents with production suitable data",
	Long: `Initialize database contents with production suitable data.
The database connection information are read from the config file and
the admin role is used for the connection, so the lending tables can
be created. The tables are left empty. The normal role is created too
(if missing) and granted the privileges which the lending queries
require.

The normal role password is renewed with a fresh random credential.
The new password is written to the .pgpass.new file (next to the
.pgpass file in the configured pass-dir directory) before the database
is updated and that file is moved over the .pgpass file after the
changing transaction is committed, so a crash at any point leaves at
least one usable passwords file behind.`,
	RunE: initProd,
	Args: cobra.NoArgs,
}

func initProd(_ *cobra.Command, _ []string) error {
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
	change := func(
		ctx context.Context, roles []repo.Role, passwords []string,
	) error {
		return p.Conn(ctx, func(ctx context.Context, conn repo.Conn) error {
			return conn.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
				sq := schemaRepo.Tx(tx)
				if err := sq.InitSchema(ctx); err != nil {
					return fmt.Errorf("initializing schema: %w", err)
				}
				for _, r := range roles {
					if err := sq.CreateRoleIfNotExists(ctx, r); err != nil {
						return fmt.Errorf("creating %q role: %w", r, err)
					}
					if err := sq.GrantPrivileges(ctx, r); err != nil {
						return fmt.Errorf(
							"granting privileges to %q role: %w", r, err,
						)
					}
				}
				return sq.ChangePasswords(ctx, roles, passwords)
			})
		})
	}
	finalizer, err := c.RenewPasswords(ctx, change, repo.NormalRole)
	if err != nil {
		return fmt.Errorf("renewing role passwords: %w", err)
	}
	if err := finalizer(); err != nil {
		return fmt.Errorf("finalizing passwords renewal: %w", err)
	}
	return nil
}

func init() {
	dbCmd.AddCommand(initProdCmd)
}
