// Copyright (c) 2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package schemarp provides a reification of the repo.Schema interface
// making it possible to create the lending tables and manage the
// database user roles which may query them.
//
// The table creation queries run on both supported dialects, while the
// role management queries are written for PostgreSQL and must not be
// attempted on an SQLite database (which has no roles at all).
package schemarp

import (
	"context"

	"github.com/momeni/liblend/pkg/adapter/db/gormdb"
	"github.com/momeni/liblend/pkg/core/repo"
	"github.com/momeni/liblend/pkg/core/scram"
)

// Repo represents a schema management repository. It keeps the
// role name suffix and the SCRAM hasher which role management queries
// need, so the use cases layer can stay unaware of them.
type Repo struct {
	roleSuffix repo.Role
	hasher     scram.Hasher
}

// New instantiates a schema management Repo struct. The roleSuffix is
// appended to all managed role names (pass an empty suffix to use the
// predefined repo.Role constants as they are), so multiple deployments
// may share one DBMS cluster. The hasher is used for hashing of role
// passwords before they are sent to the DBMS; it may be nil if the
// ChangePasswords method is not going to be used.
func New(roleSuffix repo.Role, hasher scram.Hasher) *Repo {
	return &Repo{roleSuffix: roleSuffix, hasher: hasher}
}

type connQueryer struct {
	*gormdb.Conn

	roleSuffix repo.Role
}

// Conn unwraps the given repo.Conn instance, expecting to find an
// instance of *gormdb.Conn as created by this adapter layer.
// Otherwise, it will panic. Unwrapped connection will be wrapped and
// returned as an instance of repo.SchemaConnQueryer interface, so
// it can be used in the use cases layer without requiring to type
// assert again and again.
func (schema *Repo) Conn(c repo.Conn) repo.SchemaConnQueryer {
	cc := c.(*gormdb.Conn)
	return connQueryer{Conn: cc, roleSuffix: schema.roleSuffix}
}

// InitSchema creates the works, patrons, and loans tables if they do
// not exist, bringing an empty database to the schema which the
// lending repositories expect.
func (cq connQueryer) InitSchema(ctx context.Context) error {
	return InitSchema(ctx, cq.Conn)
}

// CreateRoleIfNotExists creates the `role` role if it does not
// exist right now. Although the login option is enabled for the
// created role, no specific password will be set for it.
// The ChangePasswords method may be used for setting a password if
// desired. Otherwise, that user may not login effectively (but
// using the trust or local identity methods).
func (cq connQueryer) CreateRoleIfNotExists(
	ctx context.Context, role repo.Role,
) error {
	return CreateRoleIfNotExists(ctx, cq.Conn, cq.roleSuffix, role)
}

// GrantPrivileges grants the privileges which are required for the
// lending queries on all lending tables to the `role` role.
func (cq connQueryer) GrantPrivileges(
	ctx context.Context, role repo.Role,
) error {
	return GrantPrivileges(ctx, cq.Conn, cq.roleSuffix, role)
}

type txQueryer struct {
	*gormdb.Tx

	roleSuffix repo.Role
	hasher     scram.Hasher
}

// Tx unwraps the given repo.Tx instance, expecting to find an instance
// of *gormdb.Tx as created by this adapter layer. Otherwise, it will
// panic. Unwrapped transaction will be wrapped and returned as an
// instance of repo.SchemaTxQueryer interface, so it can be used in
// the use cases layer without requiring to type assert again and again.
//
// Currently, one operation mandates a transaction.
// ChangePasswords updates passwords of some roles. When creating roles
// for the first time, it is desired to change/set their passwords
// before making them visible by committing the transaction. Also, it
// may be desired to call this method multiple times if all roles and
// passwords may not be identified at the same time. So, a transaction
// is required since there are scenarios that other operation must be
// performed in the same transaction and caller must specify the proper
// point of commitment.
func (schema *Repo) Tx(tx repo.Tx) repo.SchemaTxQueryer {
	tt := tx.(*gormdb.Tx)
	return txQueryer{
		Tx:         tt,
		roleSuffix: schema.roleSuffix,
		hasher:     schema.hasher,
	}
}

// InitSchema creates the works, patrons, and loans tables if they do
// not exist, bringing an empty database to the schema which the
// lending repositories expect.
func (tq txQueryer) InitSchema(ctx context.Context) error {
	return InitSchema(ctx, tq.Tx)
}

// CreateRoleIfNotExists creates the `role` role if it does not
// exist right now, enabling its login option without setting any
// specific password; see the connQueryer method of the same name.
func (tq txQueryer) CreateRoleIfNotExists(
	ctx context.Context, role repo.Role,
) error {
	return CreateRoleIfNotExists(ctx, tq.Tx, tq.roleSuffix, role)
}

// GrantPrivileges grants the privileges which are required for the
// lending queries on all lending tables to the `role` role.
func (tq txQueryer) GrantPrivileges(
	ctx context.Context, role repo.Role,
) error {
	return GrantPrivileges(ctx, tq.Tx, tq.roleSuffix, role)
}

// ChangePasswords updates the passwords of the given roles in the
// current transaction. The roles and passwords slices must have the
// same number of entries, so they can be used in pair.
// These fields are not combined as a struct with two role and
// password fields because passing items separately ensures that
// all items are initialized explicitly in contrast to a struct
// which its fields can be zero-initialized and are more suitable
// to pass a set of optional fields.
func (tq txQueryer) ChangePasswords(
	ctx context.Context, roles []repo.Role, passwords []string,
) error {
	return ChangePasswords(
		ctx, tq.Tx, tq.roleSuffix, tq.hasher, roles, passwords,
	)
}
