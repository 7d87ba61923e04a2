// Copyright (c) 2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package schemarp

import (
	"context"
	"errors"
	"fmt"

	"github.com/momeni/liblend/pkg/adapter/db/gormdb"
	"github.com/momeni/liblend/pkg/adapter/db/gormdb/loansrp"
	"github.com/momeni/liblend/pkg/adapter/db/gormdb/patronsrp"
	"github.com/momeni/liblend/pkg/adapter/db/gormdb/worksrp"
	"github.com/momeni/liblend/pkg/core/repo"
	"github.com/momeni/liblend/pkg/core/scram"
)

// scramIters is the SCRAM iteration count which is used for hashing
// role passwords, following RFC 7677 recommendation.
const scramIters = 15000

// InitSchema creates the works, patrons, and loans tables if they do
// not exist, delegating the row structure of each table to its own
// repository package.
func InitSchema[Q gormdb.Queryer](ctx context.Context, q Q) error {
	if err := worksrp.Migrate(ctx, q); err != nil {
		return fmt.Errorf("migrating works: %w", err)
	}
	if err := patronsrp.Migrate(ctx, q); err != nil {
		return fmt.Errorf("migrating patrons: %w", err)
	}
	if err := loansrp.Migrate(ctx, q); err != nil {
		return fmt.Errorf("migrating loans: %w", err)
	}
	return nil
}

// CreateRoleIfNotExists creates the `role` role if it does not
// exist right now. Although the login option is enabled for the
// created role, no specific password will be set for it.
// The ChangePasswords function may be used for setting a password if
// desired. Otherwise, that user may not login effectively (but
// using the trust or local identity methods).
//
// The `role` role name may be suffixed by `roleSuffix` if it is not
// empty. This is useful to have distinct role names if repo.Role
// predefined constants are not desirable.
func CreateRoleIfNotExists[Q gormdb.Queryer](
	ctx context.Context, q Q, roleSuffix repo.Role, role repo.Role,
) error {
	name := string(role + roleSuffix)
	rows, err := q.Query(
		ctx, "SELECT 1 FROM pg_roles WHERE rolname=?", name,
	)
	if err != nil {
		return fmt.Errorf("querying pg_roles: %w", err)
	}
	exists := rows.Next()
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating pg_roles rows: %w", err)
	}
	if exists {
		return nil
	}
	// role names may not be parameterized; they come from the trusted
	// repo.Role constants and the configured suffix
	_, err = q.Exec(ctx, fmt.Sprintf("CREATE ROLE %q LOGIN", name))
	if err != nil {
		return fmt.Errorf("creating %q role: %w", name, err)
	}
	return nil
}

// GrantPrivileges grants the SELECT, INSERT, UPDATE, and DELETE
// privileges on all lending tables to the `role` role, so it may run
// the lending queries without owning the tables.
//
// The `role` role name may be suffixed by `roleSuffix` if it is not
// empty. This is useful to have distinct role names if repo.Role
// predefined constants are not desirable.
func GrantPrivileges[Q gormdb.Queryer](
	ctx context.Context, q Q, roleSuffix repo.Role, role repo.Role,
) error {
	name := string(role + roleSuffix)
	_, err := q.Exec(ctx, fmt.Sprintf(
		`GRANT SELECT, INSERT, UPDATE, DELETE
ON TABLE works, patrons, loans TO %q`, name,
	))
	if err != nil {
		return fmt.Errorf("granting privileges to %q role: %w", name, err)
	}
	return nil
}

// ChangePasswords updates the passwords of the given roles in the
// current transaction. The roles and passwords slices must have the
// same number of entries, so they can be used in pair.
//
// The `roles` role names may be suffixed by `roleSuffix` if it is not
// empty. The `hasher` will be used for hashing of the `passwords`
// before sending them to the DBMS (so they may not leak in plaintext).
// This SCRAM hasher format must conform with the DBMS expected format.
func ChangePasswords(
	ctx context.Context,
	tx *gormdb.Tx,
	roleSuffix repo.Role,
	hasher scram.Hasher,
	roles []repo.Role,
	passwords []string,
) error {
	if len(roles) != len(passwords) {
		return fmt.Errorf(
			"got %d roles and %d passwords",
			len(roles), len(passwords),
		)
	}
	if hasher == nil {
		return errors.New("no scram hasher is configured")
	}
	for i, role := range roles {
		name := string(role + roleSuffix)
		h, err := hasher.Hash(passwords[i], "", scramIters)
		if err != nil {
			return fmt.Errorf("hashing %q role password: %w", name, err)
		}
		// the hash consists of ASCII letters only, as the Hasher
		// interface guarantees, so it is embedded as a literal
		_, err = tx.Exec(ctx, fmt.Sprintf(
			"ALTER ROLE %q PASSWORD '%s'", name, h,
		))
		if err != nil {
			return fmt.Errorf("altering %q role: %w", name, err)
		}
	}
	return nil
}
