package patronsrs

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/momeni/liblend/pkg/adapter/restful/gin/serdser"
)

type registerPatronReq struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
}

func (rs *resource) DserRegisterPatronReq(c *gin.Context) *registerPatronReq {
	req := &registerPatronReq{}
	if ok := serdser.Bind(c, req); !ok {
		return nil
	}
	return req
}

type rawPatronPathReq struct {
	PatronID string `uri:"pid" binding:"required,uuid"`
}

type patronPathReq struct {
	PatronID uuid.UUID
}

func (rs *resource) DserPatronPathReq(c *gin.Context) *patronPathReq {
	req := &rawPatronPathReq{}
	if ok := serdser.Bind(c, req); !ok {
		return nil
	}
	pid, err := uuid.Parse(req.PatronID)
	if err != nil {
		var errs map[string][]string
		serdser.AddErr(&errs, "pid", "Path param pid is not UUID.")
		c.JSON(http.StatusBadRequest, errs)
		return nil
	}
	return &patronPathReq{PatronID: pid}
}
