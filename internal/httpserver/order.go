package httpserver

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Diego999991/ecommerce-api/internal/domain"
)

type setStatusRequest struct {
	Status string `json:"status"`
}

func checkoutHandler(svc CheckoutService, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		u, ok := currentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
			return
		}
		order, err := svc.Checkout(c.Request.Context(), u.ID)
		if err != nil {
			writeError(c, logger, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"message": "order created", "order": order})
	}
}

func listUserOrdersHandler(svc OrderService, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		u, ok := currentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
			return
		}
		orders, err := svc.ListForUser(c.Request.Context(), u.ID)
		if err != nil {
			writeError(c, logger, err)
			return
		}
		if orders == nil {
			orders = []domain.Order{}
		}
		c.JSON(http.StatusOK, orders)
	}
}

func getOrderHandler(svc OrderService, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		u, ok := currentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
			return
		}
		order, err := svc.Get(c.Request.Context(), u.ID, c.Param("id"))
		if err != nil {
			writeError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

func listAllOrdersHandler(svc OrderService, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		orders, err := svc.ListAll(c.Request.Context(), c.Query("status"))
		if err != nil {
			writeError(c, logger, err)
			return
		}
		if orders == nil {
			orders = []domain.Order{}
		}
		c.JSON(http.StatusOK, orders)
	}
}

func setOrderStatusHandler(svc OrderService, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in setStatusRequest
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		order, err := svc.SetStatus(c.Request.Context(), c.Param("id"), in.Status)
		if err != nil {
			writeError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "status updated", "order": order})
	}
}
