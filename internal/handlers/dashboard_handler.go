package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ledger-service/internal/services"
	"ledger-service/pkg/common"
)

type DashboardHandler struct {
	Summary *services.SummaryService
	Audit   *services.AuditService
}

func NewDashboardHandler(summary *services.SummaryService, audit *services.AuditService) *DashboardHandler {
	return &DashboardHandler{Summary: summary, Audit: audit}
}

func (h *DashboardHandler) Totals(c *gin.Context) {
	ns, ok := namespaceParam(c)
	if !ok {
		return
	}
	totals, err := h.Summary.Totals(ns)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(totals, "Totals fetched"))
}

func (h *DashboardHandler) NextDeadline(c *gin.Context) {
	info, err := h.Summary.NextDeadline()
	if err != nil {
		respondError(c, err)
		return
	}
	if info == nil {
		c.JSON(http.StatusOK, common.NewSuccessResponse(nil, "No outstanding payments"))
		return
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(info, "Next deadline fetched"))
}

// TriggerAudit lets an operator kick a full commission sweep without
// waiting for the nightly schedule.
func (h *DashboardHandler) TriggerAudit(c *gin.Context) {
	if err := h.Audit.EnqueueFullSweep(); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(nil, "Audit sweep enqueued"))
}
