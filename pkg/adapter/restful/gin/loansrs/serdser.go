package loansrs

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/momeni/liblend/pkg/adapter/restful/gin/serdser"
)

// dateLayout is the accepted format of the optional date parameters.
const dateLayout = "2006-01-02"

type rawLendReq struct {
	WorkID   string `json:"wid" binding:"required,uuid"`
	PatronID string `json:"pid" binding:"required,uuid"`
	Days     int    `json:"days" binding:"omitempty"`
}

type lendReq struct {
	WorkID   uuid.UUID
	PatronID uuid.UUID
	Days     int
}

func (rs *resource) DserLendReq(c *gin.Context) *lendReq {
	req := &rawLendReq{}
	if ok := serdser.Bind(c, req); !ok {
		return nil
	}
	val := &lendReq{Days: req.Days}
	var errs map[string][]string
	var err error
	val.WorkID, err = uuid.Parse(req.WorkID)
	serdser.Assert(&errs, err == nil, "wid", "The wid is not UUID.")
	val.PatronID, err = uuid.Parse(req.PatronID)
	serdser.Assert(&errs, err == nil, "pid", "The pid is not UUID.")
	if errs != nil {
		c.JSON(http.StatusBadRequest, errs)
		return nil
	}
	return val
}

type rawLoanPathReq struct {
	LoanID string `uri:"lid" binding:"required,uuid"`
}

type loanPathReq struct {
	LoanID uuid.UUID
}

func (rs *resource) DserLoanPathReq(c *gin.Context) *loanPathReq {
	req := &rawLoanPathReq{}
	if ok := serdser.Bind(c, req); !ok {
		return nil
	}
	lid, err := uuid.Parse(req.LoanID)
	if err != nil {
		var errs map[string][]string
		serdser.AddErr(&errs, "lid", "Path param lid is not UUID.")
		c.JSON(http.StatusBadRequest, errs)
		return nil
	}
	return &loanPathReq{LoanID: lid}
}

type rawUpdateLoanReq struct {
	LoanID string `uri:"lid" binding:"required,uuid"`
	Op     string `form:"op" binding:"required,oneof=return assess-fee"`
	Date   string `form:"date" binding:"omitempty,datetime=2006-01-02"`
}

type updateLoanReq struct {
	LoanID uuid.UUID
	Op     string
	Date   time.Time
}

func (rs *resource) DserUpdateLoanReq(c *gin.Context) *updateLoanReq {
	req := &rawUpdateLoanReq{}
	if ok := serdser.Bind(c, req); !ok {
		return nil
	}
	val := &updateLoanReq{Op: req.Op}
	var errs map[string][]string
	var err error
	val.LoanID, err = uuid.Parse(req.LoanID)
	if err != nil {
		serdser.AddErr(&errs, "lid", "Path param lid is not UUID.")
		c.JSON(http.StatusBadRequest, errs)
		return nil
	}
	if req.Date == "" {
		val.Date = time.Now()
		return val
	}
	val.Date, err = time.Parse(dateLayout, req.Date)
	if err != nil {
		serdser.AddErr(&errs, "date", err.Error())
		c.JSON(http.StatusBadRequest, errs)
		return nil
	}
	return val
}
