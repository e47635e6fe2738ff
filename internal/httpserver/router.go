package httpserver

import (
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// buildRouter wires routes for the API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps, opts Options) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery(), metricsMiddleware())

	if len(opts.CORSOrigins) > 0 {
		corsCfg := cors.DefaultConfig()
		corsCfg.AllowOrigins = opts.CORSOrigins
		corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
		router.Use(cors.New(corsCfg))
	}

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	api.POST("/checkout", identityMiddleware(opts.JWTSecret), checkoutHandler(logger, deps.CheckoutSvc))
	api.POST("/webhook", webhookHandler(logger, deps.Processor, opts.WebhookSecret))
	api.GET("/orders", listOrdersHandler(logger, deps.Orders))
	api.GET("/orders/:orderNumber", getOrderHandler(logger, deps.Orders))
	api.PATCH("/orders/:orderNumber/status", updateOrderStatusHandler(logger, deps.Orders))

	return router
}
