// Copyright (c) 2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package repo

import "context"

// Schema interface presents expectations from a repository which
// allows database schema and roles management. It creates the lending
// tables and manages the roles which may query them, so the database
// initialization commands do not need to know about the concrete
// DBMS adapter.
type Schema interface {
	// Conn takes a Conn interface instance, unwraps it as required,
	// and returns a SchemaConnQueryer interface which (with access to
	// the implementation-dependent connection object) can create
	// tables or manage database roles.
	Conn(Conn) SchemaConnQueryer

	// Tx takes a Tx interface instance, unwraps it as required,
	// and returns a SchemaTxQueryer interface which (with access to
	// the implementation-dependent transaction object) can manage
	// database roles and change their passwords.
	Tx(Tx) SchemaTxQueryer
}

// SchemaConnQueryer lists the schema operations which may run over an
// open connection with auto-committed transactions.
type SchemaConnQueryer interface {
	SchemaQueryer
}

// SchemaTxQueryer lists the schema operations which must run in an
// ongoing transaction, so they may be committed or rolled back as one
// unit with the other initialization statements.
type SchemaTxQueryer interface {
	SchemaQueryer

	// ChangePasswords updates the passwords of the given roles in the
	// current transaction. The roles and passwords slices must have
	// the same number of entries, so they can be used in pair.
	// Passwords are hashed before being embedded in the ALTER ROLE
	// statements, hence, no plaintext password is sent to the DBMS.
	// The given roles may be suffixed automatically too, based on
	// this transaction queryer settings.
	ChangePasswords(
		ctx context.Context, roles []Role, passwords []string,
	) error
}

// SchemaQueryer lists common schema operations which may run with
// either a connection or an open transaction at hand.
type SchemaQueryer interface {
	// InitSchema creates the works, patrons, and loans tables if they
	// do not exist, bringing an empty database to the schema which the
	// lending repositories expect.
	InitSchema(ctx context.Context) error

	// CreateRoleIfNotExists creates the `role` role if it does not
	// exist right now. Although the login option is enabled for the
	// created role, no specific password will be set for it; see the
	// ChangePasswords method.
	//
	// The `role` role name may be suffixed automatically based on
	// this schema queryer settings.
	CreateRoleIfNotExists(ctx context.Context, role Role) error

	// GrantPrivileges grants the privileges which are required for the
	// lending queries on all lending tables to the `role` role.
	//
	// The `role` role name may be suffixed automatically based on
	// this schema queryer settings.
	GrantPrivileges(ctx context.Context, role Role) error
}
