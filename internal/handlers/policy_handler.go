package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/lifesure/lifesure-backend/internal/apperr"
	"github.com/lifesure/lifesure-backend/internal/interfaces"
	"github.com/lifesure/lifesure-backend/internal/models"
)

// PolicyHandler serves the admin catalog CRUD. Plain data access; the
// lifecycle services are the only writers of purchaseCount.
type PolicyHandler struct {
	repo interfaces.PolicyRepository
}

func NewPolicyHandler(repo interfaces.PolicyRepository) *PolicyHandler {
	return &PolicyHandler{repo: repo}
}

func (h *PolicyHandler) Create(c *gin.Context) {
	var p models.Policy
	if err := c.ShouldBindJSON(&p); err != nil {
		respondErr(c, apperr.Validation("invalid request body"))
		return
	}
	if p.Title == "" {
		respondErr(c, apperr.Validation("title is required"))
		return
	}
	if p.MinAge > p.MaxAge {
		respondErr(c, apperr.Validation("minAge must not exceed maxAge"))
		return
	}
	p.PurchaseCount = 0

	id, err := h.repo.Insert(c.Request.Context(), &p)
	if err != nil {
		respondErr(c, err)
		return
	}
	respond(c, http.StatusCreated, "Policy created successfully", gin.H{"insertedId": id.Hex()})
}

func (h *PolicyHandler) Update(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondErr(c, apperr.Validation("policy id is malformed"))
		return
	}

	var p models.Policy
	if err := c.ShouldBindJSON(&p); err != nil {
		respondErr(c, apperr.Validation("invalid request body"))
		return
	}
	if p.MinAge > p.MaxAge {
		respondErr(c, apperr.Validation("minAge must not exceed maxAge"))
		return
	}

	matched, err := h.repo.Update(c.Request.Context(), id, &p)
	if err != nil {
		respondErr(c, err)
		return
	}
	if matched == 0 {
		respondErr(c, apperr.NotFound("policy %s not found", c.Param("id")))
		return
	}
	respond(c, http.StatusOK, "Policy updated successfully", nil)
}

func (h *PolicyHandler) Get(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondErr(c, apperr.Validation("policy id is malformed"))
		return
	}

	policy, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		respondErr(c, err)
		return
	}
	if policy == nil {
		respondErr(c, apperr.NotFound("policy %s not found", c.Param("id")))
		return
	}
	respond(c, http.StatusOK, "Policy fetched successfully", policy)
}

func (h *PolicyHandler) List(c *gin.Context) {
	policies, err := h.repo.List(c.Request.Context(), c.Query("category"), c.Query("search"))
	if err != nil {
		respondErr(c, err)
		return
	}
	respond(c, http.StatusOK, "Policies fetched successfully", policies)
}

func (h *PolicyHandler) Delete(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondErr(c, apperr.Validation("policy id is malformed"))
		return
	}

	deleted, err := h.repo.Delete(c.Request.Context(), id)
	if err != nil {
		respondErr(c, err)
		return
	}
	if deleted == 0 {
		respondErr(c, apperr.NotFound("policy %s not found", c.Param("id")))
		return
	}
	respond(c, http.StatusOK, "Policy deleted successfully", nil)
}
