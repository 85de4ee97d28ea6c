package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lifesure/lifesure-backend/internal/apperr"
	"github.com/lifesure/lifesure-backend/internal/service"
)

type PaymentHandler struct {
	svc *service.PaymentService
}

func NewPaymentHandler(svc *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{svc: svc}
}

func (h *PaymentHandler) CreateIntent(c *gin.Context) {
	var in service.CreateIntentInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondErr(c, apperr.Validation("invalid request body"))
		return
	}

	clientSecret, err := h.svc.CreateIntent(c.Request.Context(), in)
	if err != nil {
		respondErr(c, err)
		return
	}
	respond(c, http.StatusOK, "Payment intent created", gin.H{"clientSecret": clientSecret})
}

func (h *PaymentHandler) SaveTransaction(c *gin.Context) {
	var in service.ReconcileInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondErr(c, apperr.Validation("invalid request body"))
		return
	}

	result, err := h.svc.Reconcile(c.Request.Context(), in)
	if err != nil {
		respondErr(c, err)
		return
	}
	respond(c, http.StatusCreated, "Payment recorded successfully", result)
}

func (h *PaymentHandler) ListTransactions(c *gin.Context) {
	txs, err := h.svc.ListTransactions(c.Request.Context(), c.Query("email"))
	if err != nil {
		respondErr(c, err)
		return
	}
	respond(c, http.StatusOK, "Transactions fetched successfully", txs)
}
