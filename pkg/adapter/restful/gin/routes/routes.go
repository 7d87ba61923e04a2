// Copyright (c) 2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package routes contains all resource packages and facilitates
// instantiation and registration of all repo, use case, and resource
// packages based on the user provided configuration settings.
package routes

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/momeni/liblend/pkg/adapter/config"
	"github.com/momeni/liblend/pkg/adapter/db/gormdb/loansrp"
	"github.com/momeni/liblend/pkg/adapter/db/gormdb/patronsrp"
	"github.com/momeni/liblend/pkg/adapter/db/gormdb/worksrp"
	"github.com/momeni/liblend/pkg/adapter/restful/gin/loansrs"
	"github.com/momeni/liblend/pkg/adapter/restful/gin/patronsrs"
	"github.com/momeni/liblend/pkg/adapter/restful/gin/worksrs"
	"github.com/momeni/liblend/pkg/core/repo"
)

// Register instantiates relevant repositories and use cases based on
// the c configuration settings. The p connections pool is passed to
// the use case instance, so it may acquire/release connections and
// transactions on demand. These connections/transactions will be
// passed to the repositories later in order to run relevant queries on
// them and accomplish those use cases. Each repository package is
// named like worksrp. Register instantiates a series of "resource"
// structs, from packages which are named like worksrs, in order to
// adapt the use cases interfaces with the REST APIs. These resources
// are registered as request handlers using the e gin-gonic engine
// instance. Possible errors will be returned after possible wrapping.
// Actual instantiation of the use case object is delegated to the
// c Config instance.
func Register(
	ctx context.Context, e *gin.Engine, p repo.Pool, c *config.Config,
) error {
	worksRepo := worksrp.New()
	patronsRepo := patronsrp.New()
	loansRepo := loansrp.New()

	col, err := c.Usecases.Lending.NewUseCase(
		p, worksRepo, patronsRepo, loansRepo,
	)
	if err != nil {
		return fmt.Errorf("creating lending use case: %w", err)
	}
	r := e.Group("/api/liblend/v1")
	worksrs.Register(r, col)
	patronsrs.Register(r, col)
	loansrs.Register(r, col)
	return nil
}
