// Copyright (c) 2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package worksrs realizes the works resource, allowing the catalogue
// manipulation and inventory REST APIs to be accepted and delegated to
// the lending use cases respectively.
package worksrs

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
//  1. POST request to /api/liblend/v1/works
//     in order to catalogue a work or replenish its stock,
//  2. GET request to /api/liblend/v1/works/:wid
//     in order to fetch one work,
//  3. PATCH request to /api/liblend/v1/works/:wid
//     in order to withdraw one copy of a work,
//  4. GET request to /api/liblend/v1/reports/inventory
//     in order to fetch the inventory report rows.
func Register(r *gin.RouterGroup, col *lendinguc.UseCase) {
	rs := &resource{col: col}
	r.POST("works", rs.AddWork)
	r.GET("works/:wid", rs.GetWork)
	r.PATCH("works/:wid", rs.UpdateWork)
	r.GET("reports/inventory", rs.Inventory)
}

func (rs *resource) AddWork(c *gin.Context) {
	req := rs.DserAddWorkReq(c)
	if req == nil {
		return
	}
	work, err := rs.col.AddWork(
		c, req.Title, req.Author, req.Year, req.Category, req.Quantity,
	)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, work)
}

func (rs *resource) GetWork(c *gin.Context) {
	req := rs.DserWorkPathReq(c)
	if req == nil {
		return
	}
	work, err := rs.col.FindWork(c, req.WorkID)
	switch {
	case err != nil:
		serdser.SerErr(c, err)
	case work == nil:
		c.JSON(http.StatusNotFound, gin.H{
			"detail": "no such work",
		})
	default:
		c.JSON(http.StatusOK, work)
	}
}

func (rs *resource) UpdateWork(c *gin.Context) {
	req := rs.DserUpdateWorkReq(c)
	if req == nil {
		return
	}
	switch req.Op {
	case "remove":
		work, err := rs.col.RemoveWork(c, req.WorkID)
		if err != nil {
			serdser.SerErr(c, err)
			return
		}
		c.JSON(http.StatusOK, work)
	default:
		panic("unexpected op:" + req.Op)
	}
}

func (rs *resource) Inventory(c *gin.Context) {
	works, err := rs.col.InventoryReport(c)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, works)
}
