package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lifesure/lifesure-backend/internal/apperr"
	"github.com/lifesure/lifesure-backend/internal/models"
	"github.com/lifesure/lifesure-backend/internal/service"
)

type ApplicationHandler struct {
	svc *service.ApplicationService
}

func NewApplicationHandler(svc *service.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{svc: svc}
}

func (h *ApplicationHandler) Submit(c *gin.Context) {
	var in service.SubmitInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondErr(c, apperr.Validation("invalid request body"))
		return
	}

	id, err := h.svc.Submit(c.Request.Context(), in)
	if err != nil {
		respondErr(c, err)
		return
	}
	respond(c, http.StatusCreated, "Application submitted successfully", gin.H{"insertedId": id})
}

func (h *ApplicationHandler) AssignAgent(c *gin.Context) {
	var body struct {
		Agent string `json:"agent"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		respondErr(c, apperr.Validation("invalid request body"))
		return
	}

	if err := h.svc.AssignAgent(c.Request.Context(), c.Param("id"), body.Agent); err != nil {
		respondErr(c, err)
		return
	}
	respond(c, http.StatusOK, "Agent assigned successfully", nil)
}

func (h *ApplicationHandler) SetStatus(c *gin.Context) {
	var body struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		respondErr(c, apperr.Validation("invalid request body"))
		return
	}

	if err := h.svc.SetStatus(c.Request.Context(), c.Param("id"), models.ApplicationStatus(body.Status)); err != nil {
		respondErr(c, err)
		return
	}
	respond(c, http.StatusOK, "Application status updated", nil)
}

func (h *ApplicationHandler) GetByID(c *gin.Context) {
	app, err := h.svc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondErr(c, err)
		return
	}
	respond(c, http.StatusOK, "Application fetched successfully", app)
}

func (h *ApplicationHandler) List(c *gin.Context) {
	apps, err := h.svc.List(c.Request.Context(), models.ApplicationStatus(c.Query("status")))
	if err != nil {
		respondErr(c, err)
		return
	}
	respond(c, http.StatusOK, "Applications fetched successfully", apps)
}

func (h *ApplicationHandler) ListByCustomer(c *gin.Context) {
	apps, err := h.svc.ListByCustomer(c.Request.Context(), c.Query("email"))
	if err != nil {
		respondErr(c, err)
		return
	}
	respond(c, http.StatusOK, "Applications fetched successfully", apps)
}

func (h *ApplicationHandler) ListByAgent(c *gin.Context) {
	apps, err := h.svc.ListByAgent(c.Request.Context(), c.Query("agent"))
	if err != nil {
		respondErr(c, err)
		return
	}
	respond(c, http.StatusOK, "Applications fetched successfully", apps)
}
