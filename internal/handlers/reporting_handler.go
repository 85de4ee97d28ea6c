package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lifesure/lifesure-backend/internal/service"
)

type ReportingHandler struct {
	svc *service.ReportingService
}

func NewReportingHandler(svc *service.ReportingService) *ReportingHandler {
	return &ReportingHandler{svc: svc}
}

func (h *ReportingHandler) AgentDashboard(c *gin.Context) {
	dashboard, err := h.svc.AgentDashboard(c.Request.Context(), c.Query("agent"))
	if err != nil {
		respondErr(c, err)
		return
	}
	respond(c, http.StatusOK, "Dashboard fetched successfully", dashboard)
}
