package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lifesure/lifesure-backend/internal/handlers"
	"github.com/lifesure/lifesure-backend/internal/telemetry"
)

type Handlers struct {
	Applications *handlers.ApplicationHandler
	Payments     *handlers.PaymentHandler
	Claims       *handlers.ClaimHandler
	Policies     *handlers.PolicyHandler
	Users        *handlers.UserHandler
	Reporting    *handlers.ReportingHandler
}

func NewRouter(h Handlers) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(telemetry.TracingMiddleware())

	// Prometheus metrics
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "lifesure-backend"})
	})

	api := r.Group("/api")

	// Application lifecycle
	api.POST("/submit-application", h.Applications.Submit)
	api.PATCH("/application/:id/assign-agent", h.Applications.AssignAgent)
	api.PATCH("/agent/application/:id/status", h.Applications.SetStatus)
	api.GET("/application/:id", h.Applications.GetByID)
	api.GET("/applications", h.Applications.List)
	api.GET("/my-applications", h.Applications.ListByCustomer)
	api.GET("/agent/applications", h.Applications.ListByAgent)

	// Payments
	api.POST("/create-payment", h.Payments.CreateIntent)
	api.POST("/save-transaction", h.Payments.SaveTransaction)
	api.GET("/transactions", h.Payments.ListTransactions)

	// Claims
	api.POST("/claim-request", h.Claims.FileClaim)
	api.PATCH("/claim-approve/:id", h.Claims.ResolveClaim)
	api.GET("/claims", h.Claims.List)
	api.GET("/my-claims", h.Claims.ListByCustomer)

	// Policy catalog
	api.POST("/policies", h.Policies.Create)
	api.PUT("/policies/:id", h.Policies.Update)
	api.GET("/policies", h.Policies.List)
	api.GET("/policies/:id", h.Policies.Get)
	api.DELETE("/policies/:id", h.Policies.Delete)

	// Users
	api.POST("/users", h.Users.Upsert)
	api.PATCH("/users/:id/role", h.Users.SetRole)

	// Reporting
	api.GET("/agent/dashboard", h.Reporting.AgentDashboard)

	return r
}
