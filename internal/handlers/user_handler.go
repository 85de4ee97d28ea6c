package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/lifesure/lifesure-backend/internal/apperr"
	"github.com/lifesure/lifesure-backend/internal/interfaces"
	"github.com/lifesure/lifesure-backend/internal/models"
)

type UserHandler struct {
	repo interfaces.UserRepository
}

func NewUserHandler(repo interfaces.UserRepository) *UserHandler {
	return &UserHandler{repo: repo}
}

// Upsert returns the existing user for the email, or creates one with the
// customer role.
func (h *UserHandler) Upsert(c *gin.Context) {
	var u models.User
	if err := c.ShouldBindJSON(&u); err != nil {
		respondErr(c, apperr.Validation("invalid request body"))
		return
	}
	if u.Email == "" {
		respondErr(c, apperr.Validation("email is required"))
		return
	}

	existing, err := h.repo.FindByEmail(c.Request.Context(), u.Email)
	if err != nil {
		respondErr(c, err)
		return
	}
	if existing != nil {
		respond(c, http.StatusOK, "User already exists", existing)
		return
	}

	u.Role = models.RoleCustomer
	u.CreatedAt = time.Now().UTC()
	id, err := h.repo.Insert(c.Request.Context(), &u)
	if err != nil {
		respondErr(c, err)
		return
	}
	u.ID = id
	respond(c, http.StatusCreated, "User created successfully", u)
}

func (h *UserHandler) SetRole(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondErr(c, apperr.Validation("user id is malformed"))
		return
	}

	var body struct {
		Role string `json:"role"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		respondErr(c, apperr.Validation("invalid request body"))
		return
	}
	role := models.UserRole(body.Role)
	if !models.ValidUserRole(role) {
		respondErr(c, apperr.Validation("role must be customer, agent or admin"))
		return
	}

	matched, err := h.repo.SetRole(c.Request.Context(), id, role)
	if err != nil {
		respondErr(c, err)
		return
	}
	if matched == 0 {
		respondErr(c, apperr.NotFound("user %s not found", c.Param("id")))
		return
	}
	respond(c, http.StatusOK, "User role updated", nil)
}
