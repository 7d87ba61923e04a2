// Copyright (c) 2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package patronsrs realizes the patrons resource, allowing the patron
// registration, lookup, and reporting REST APIs to be accepted and
// delegated to the lending use cases respectively.
package patronsrs

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/momeni/liblend/pkg/adapter/restful/gin/serdser"
	"github.com/momeni/liblend/pkg/core/usecase/lendinguc"
)

type resource struct {
	col *lendinguc.UseCase
}

// Register instantiates a resource adapting the lending use case
// instance with the relevant REST APIs including:
//  1. POST request to /api/liblend/v1/patrons
//     in order to register a patron,
//  2. GET request to /api/liblend/v1/patrons/:pid
//     in order to fetch one patron,
//  3. GET request to /api/liblend/v1/patrons/:pid/loans
//     in order to fetch the loans history of one patron,
//  4. GET request to /api/liblend/v1/reports/debtors
//     in order to fetch the indebted patrons report rows.
func Register(r *gin.RouterGroup, col *lendinguc.UseCase) {
	rs := &resource{col: col}
	r.POST("patrons", rs.RegisterPatron)
	r.GET("patrons/:pid", rs.GetPatron)
	r.GET("patrons/:pid/loans", rs.GetPatronLoans)
	r.GET("reports/debtors", rs.Debtors)
}

func (rs *resource) RegisterPatron(c *gin.Context) {
	req := rs.DserRegisterPatronReq(c)
	if req == nil {
		return
	}
	patron, err := rs.col.RegisterPatron(c, req.Name, req.Email)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, patron)
}

func (rs *resource) GetPatron(c *gin.Context) {
	req := rs.DserPatronPathReq(c)
	if req == nil {
		return
	}
	patron, err := rs.col.FindPatron(c, req.PatronID)
	switch {
	case err != nil:
		serdser.SerErr(c, err)
	case patron == nil:
		c.JSON(http.StatusNotFound, gin.H{
			"detail": "no such patron",
		})
	default:
		c.JSON(http.StatusOK, patron)
	}
}

func (rs *resource) GetPatronLoans(c *gin.Context) {
	req := rs.DserPatronPathReq(c)
	if req == nil {
		return
	}
	loans, err := rs.col.PatronHistory(c, req.PatronID)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, loans)
}

func (rs *resource) Debtors(c *gin.Context) {
	patrons, err := rs.col.DebtReport(c)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, patrons)
}
