package app

import (
	"log/slog"

	"PlisioPay/pkg/logger"
	"PlisioPay/pkg/metrics"

	"github.com/gin-gonic/gin"
)

func NewGinEngine(withBodies bool) *gin.Engine {
	engine := gin.New()
	engine.Use(
		metrics.GinMiddleware(),
		logger.CorrelationMiddleware(),
		logger.GinRequestLogger(slog.Default(), withBodies),
		gin.Recovery(),
	)
	return engine
}
