package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lifesure/lifesure-backend/internal/apperr"
	"github.com/lifesure/lifesure-backend/internal/models"
	"github.com/lifesure/lifesure-backend/internal/service"
)

type ClaimHandler struct {
	svc *service.ClaimService
}

func NewClaimHandler(svc *service.ClaimService) *ClaimHandler {
	return &ClaimHandler{svc: svc}
}

func (h *ClaimHandler) FileClaim(c *gin.Context) {
	var in service.FileClaimInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondErr(c, apperr.Validation("invalid request body"))
		return
	}

	id, err := h.svc.FileClaim(c.Request.Context(), in)
	if err != nil {
		respondErr(c, err)
		return
	}
	respond(c, http.StatusCreated, "Claim submitted successfully", gin.H{"insertedId": id})
}

func (h *ClaimHandler) ResolveClaim(c *gin.Context) {
	var body struct {
		Status     string `json:"status"`
		AgentEmail string `json:"agentEmail"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		respondErr(c, apperr.Validation("invalid request body"))
		return
	}

	err := h.svc.ResolveClaim(c.Request.Context(), c.Param("id"), models.ApplicationStatus(body.Status), body.AgentEmail)
	if err != nil {
		respondErr(c, err)
		return
	}
	respond(c, http.StatusOK, "Claim resolved successfully", nil)
}

func (h *ClaimHandler) List(c *gin.Context) {
	claims, err := h.svc.List(c.Request.Context(), models.ApplicationStatus(c.Query("status")))
	if err != nil {
		respondErr(c, err)
		return
	}
	respond(c, http.StatusOK, "Claims fetched successfully", claims)
}

func (h *ClaimHandler) ListByCustomer(c *gin.Context) {
	claims, err := h.svc.ListByCustomer(c.Request.Context(), c.Query("email"))
	if err != nil {
		respondErr(c, err)
		return
	}
	respond(c, http.StatusOK, "Claims fetched successfully", claims)
}
