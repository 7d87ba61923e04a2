// Copyright (c) 2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package loansrs realizes the loans resource, allowing the checkout,
// return, and fee assessment REST APIs to be accepted and delegated to
// the lending use cases respectively.
package loansrs

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
//  1. POST request to /api/liblend/v1/loans
//     in order to lend one copy of a work to a patron,
//  2. GET request to /api/liblend/v1/loans/:lid
//     in order to fetch one loan,
//  3. PATCH request to /api/liblend/v1/loans/:lid
//     in order to return a loan or assess its late fee.
func Register(r *gin.RouterGroup, col *lendinguc.UseCase) {
	rs := &resource{col: col}
	r.POST("loans", rs.Lend)
	r.GET("loans/:lid", rs.GetLoan)
	r.PATCH("loans/:lid", rs.UpdateLoan)
}

func (rs *resource) Lend(c *gin.Context) {
	req := rs.DserLendReq(c)
	if req == nil {
		return
	}
	loan, err := rs.col.LendByID(c, req.WorkID, req.PatronID, req.Days)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, loan)
}

func (rs *resource) GetLoan(c *gin.Context) {
	req := rs.DserLoanPathReq(c)
	if req == nil {
		return
	}
	loan, err := rs.col.FindLoan(c, req.LoanID)
	switch {
	case err != nil:
		serdser.SerErr(c, err)
	case loan == nil:
		c.JSON(http.StatusNotFound, gin.H{
			"detail": "no such loan",
		})
	default:
		c.JSON(http.StatusOK, loan)
	}
}

func (rs *resource) UpdateLoan(c *gin.Context) {
	req := rs.DserUpdateLoanReq(c)
	if req == nil {
		return
	}
	switch req.Op {
	case "return":
		loan, err := rs.col.Return(c, req.LoanID, req.Date)
		if err != nil {
			serdser.SerErr(c, err)
			return
		}
		c.JSON(http.StatusOK, loan)
	case "assess-fee":
		fee, err := rs.col.AssessLateFee(c, req.LoanID, req.Date)
		if err != nil {
			serdser.SerErr(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"fee": fee})
	default:
		panic("unexpected op:" + req.Op)
	}
}
