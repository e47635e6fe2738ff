package httpserver

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"elitecart/internal/domain"
	"elitecart/internal/repository/order"
	"github.com/gin-gonic/gin"
)

const defaultListLimit = 50

func listOrdersHandler(logger *log.Logger, repo order.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := queryInt(c, "limit", defaultListLimit)
		offset := queryInt(c, "offset", 0)

		orders, err := repo.List(c.Request.Context(), limit, offset)
		if err != nil {
			logger.Printf("list orders: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "list orders failed"})
			return
		}
		if orders == nil {
			orders = []domain.Order{}
		}
		c.JSON(http.StatusOK, gin.H{"orders": orders, "count": len(orders)})
	}
}

func getOrderHandler(logger *log.Logger, repo order.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		o, err := repo.GetByOrderNumber(c.Request.Context(), c.Param("orderNumber"))
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
				return
			}
			logger.Printf("get order: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "get order failed"})
			return
		}
		c.JSON(http.StatusOK, o)
	}
}

type statusUpdateRequest struct {
	Status string `json:"status" binding:"required"`
}

// updateOrderStatusHandler is the repository's status-update contract
// exposed to fulfillment tooling. Transition rules live with that tooling;
// here only the enum is enforced.
func updateOrderStatusHandler(logger *log.Logger, repo order.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req statusUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "status required"})
			return
		}
		status := domain.OrderStatus(req.Status)
		if !status.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown status"})
			return
		}

		orderNumber := c.Param("orderNumber")
		if err := repo.UpdateStatus(c.Request.Context(), orderNumber, status); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
				return
			}
			logger.Printf("update order %s status: %v", orderNumber, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "status update failed"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"orderNumber": orderNumber, "status": status})
	}
}

func queryInt(c *gin.Context, key string, def int) int {
	v := c.Query(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return def
	}
	return n
}
