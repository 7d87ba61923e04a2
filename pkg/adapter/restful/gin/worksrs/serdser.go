package worksrs

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/momeni/liblend/pkg/adapter/restful/gin/serdser"
)

type addWorkReq struct {
	Title    string `json:"title" binding:"required"`
	Author   string `json:"author" binding:"required"`
	Year     int    `json:"year" binding:"required"`
	Category string `json:"category" binding:"required"`
	Quantity int    `json:"quantity" binding:"omitempty,gte=0"`
}

func (rs *resource) DserAddWorkReq(c *gin.Context) *addWorkReq {
	req := &addWorkReq{}
	if ok := serdser.Bind(c, req); !ok {
		return nil
	}
	return req
}

type rawWorkPathReq struct {
	WorkID string `uri:"wid" binding:"required,uuid"`
}

type workPathReq struct {
	WorkID uuid.UUID
}

func (rs *resource) DserWorkPathReq(c *gin.Context) *workPathReq {
	req := &rawWorkPathReq{}
	if ok := serdser.Bind(c, req); !ok {
		return nil
	}
	wid, err := uuid.Parse(req.WorkID)
	if err != nil {
		var errs map[string][]string
		serdser.AddErr(&errs, "wid", "Path param wid is not UUID.")
		c.JSON(http.StatusBadRequest, errs)
		return nil
	}
	return &workPathReq{WorkID: wid}
}

type rawUpdateWorkReq struct {
	WorkID string `uri:"wid" binding:"required,uuid"`
	Op     string `form:"op" binding:"required,oneof=remove"`
}

type updateWorkReq struct {
	WorkID uuid.UUID
	Op     string
}

func (rs *resource) DserUpdateWorkReq(c *gin.Context) *updateWorkReq {
	req := &rawUpdateWorkReq{}
	if ok := serdser.Bind(c, req); !ok {
		return nil
	}
	wid, err := uuid.Parse(req.WorkID)
	if err != nil {
		var errs map[string][]string
		serdser.AddErr(&errs, "wid", "Path param wid is not UUID.")
		c.JSON(http.StatusBadRequest, errs)
		return nil
	}
	return &updateWorkReq{WorkID: wid, Op: req.Op}
}
