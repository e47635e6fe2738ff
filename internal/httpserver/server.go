package httpserver

import (
	"context"
	"log"
	"net/http"
	"time"

	"elitecart/internal/domain"
	"elitecart/internal/razorpay"
	"elitecart/internal/repository/order"
	"elitecart/internal/service/payment"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CheckoutService builds client-facing checkout sessions.
type CheckoutService interface {
	CreateSession(ctx context.Context, items []domain.CartLine, meta domain.Metadata) (*domain.CheckoutSession, error)
}

// EventProcessor reconciles verified gateway events into orders.
type EventProcessor interface {
	Process(ctx context.Context, event razorpay.WebhookEvent) (payment.Outcome, error)
}

// Deps are the collaborators the routes need.
type Deps struct {
	CheckoutSvc CheckoutService
	Processor   EventProcessor
	Orders      order.Repository
}

// Options carries request-level configuration for the router.
type Options struct {
	WebhookSecret string
	JWTSecret     string
	CORSOrigins   []string
}

// Server wraps the HTTP server setup.
type Server struct {
	httpServer *http.Server
	logger     *log.Logger
	db         *pgxpool.Pool
}

// New builds a Server with the checkout, webhook and order routes.
func New(addr string, logger *log.Logger, db *pgxpool.Pool, deps Deps, opts Options) (*Server, error) {
	router := buildRouter(logger, db, deps, opts)

	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	return &Server{
		httpServer: httpSrv,
		logger:     logger,
		db:         db,
	}, nil
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func readyHandler(db *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if db == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "reason": "db not configured"})
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), time.Second)
		defer cancel()
		if err := db.Ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "reason": "db not reachable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	}
}
