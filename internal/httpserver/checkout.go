package httpserver

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"elitecart/internal/domain"
	"elitecart/internal/razorpay"
	"github.com/gin-gonic/gin"
)

type checkoutRequest struct {
	Items    []domain.CartLine `json:"items"`
	Metadata domain.Metadata   `json:"metadata"`
}

func checkoutHandler(logger *log.Logger, svc CheckoutService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req checkoutRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		if strings.TrimSpace(req.Metadata.OrderNumber) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "orderNumber required"})
			return
		}
		if uid := c.GetString(userIDKey); uid != "" {
			req.Metadata.UserID = uid
		}

		session, err := svc.CreateSession(c.Request.Context(), req.Items, req.Metadata)
		if err != nil {
			var gwErr *razorpay.GatewayError
			switch {
			case errors.Is(err, domain.ErrInvalidCart):
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			case errors.As(err, &gwErr):
				logger.Printf("checkout order %s: %v", req.Metadata.OrderNumber, err)
				c.JSON(http.StatusBadGateway, gin.H{"error": "payment gateway error"})
			default:
				logger.Printf("checkout order %s: %v", req.Metadata.OrderNumber, err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "checkout failed"})
			}
			return
		}

		c.JSON(http.StatusOK, session)
	}
}
