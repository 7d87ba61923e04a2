// Copyright (c) 2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package gormdb provides the database adapter layer using the GORM
// framework. It reifies the repo.Pool, repo.Conn, and repo.Tx
// interfaces over two dialects. The PostgreSQL dialect serves the web
// server deployments, while the SQLite dialect backs the demo command
// and the repository unit tests with an embedded database file or an
// in-memory database.
//
// Concrete lending repositories are implemented by the worksrp,
// patronsrp, loansrp, and schemarp sub-packages. Queries are written
// with the GORM portable API (? placeholders and RETURNING clauses),
// so both dialects can run them unchanged. Role management queries are
// the exception and are accepted by the PostgreSQL dialect only; see
// the schemarp package.
package gormdb
