package rest

import (
	"time"

	"PlisioPay/internal/controller/rest/handlers"
	"PlisioPay/pkg/health"
	"PlisioPay/pkg/metrics"

	"github.com/gin-gonic/gin"
)

const readinessTimeout = 3 * time.Second

type Router struct {
	session   handlers.SessionHandler
	health    *health.Registry
	startedAt time.Time
}

func (r *Router) SetUp(engine *gin.Engine) {
	engine.GET("/health/live", health.LivenessHandler(r.startedAt))
	engine.GET("/health/ready", health.ReadinessHandler(r.health, readinessTimeout))
	engine.GET("/metrics", metrics.Handler())

	sessions := engine.Group("/sessions")
	sessions.POST("", r.session.Open)
	sessions.GET("/:session_id/step", r.session.Step)
	sessions.POST("/:session_id/invoice", r.session.LoadInvoice)
	sessions.POST("/:session_id/invoices/new", r.session.NewInvoice)
	sessions.POST("/:session_id/email", r.session.SubmitEmail)
	sessions.POST("/:session_id/currency", r.session.SelectCurrency)
	sessions.POST("/:session_id/currency/change", r.session.ChangeCurrency)
	sessions.POST("/:session_id/reset", r.session.Reset)
	sessions.POST("/:session_id/start", r.session.Start)
	sessions.POST("/:session_id/stop", r.session.Stop)
	sessions.DELETE("/:session_id", r.session.Close)
}

func NewRouter(session handlers.SessionHandler, registry *health.Registry) *Router {
	if registry == nil {
		registry = health.NewRegistry()
	}
	return &Router{session: session, health: registry, startedAt: time.Now()}
}
