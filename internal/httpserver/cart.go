package httpserver

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

type addCartItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

type updateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

func getCartHandler(svc CartService, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		u, ok := currentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
			return
		}
		cart, err := svc.Get(c.Request.Context(), u.ID)
		if err != nil {
			writeError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, cart)
	}
}

func addCartItemHandler(svc CartService, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		u, ok := currentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
			return
		}
		var in addCartItemRequest
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		line, err := svc.AddItem(c.Request.Context(), u.ID, in.ProductID, in.Quantity)
		if err != nil {
			writeError(c, logger, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"message": "item added to cart", "cartItem": line})
	}
}

func updateCartItemHandler(svc CartService, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		u, ok := currentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
			return
		}
		var in updateCartItemRequest
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		line, err := svc.UpdateItem(c.Request.Context(), u.ID, c.Param("id"), in.Quantity)
		if err != nil {
			writeError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "cart updated", "cartItem": line})
	}
}

func removeCartItemHandler(svc CartService, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		u, ok := currentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
			return
		}
		if err := svc.RemoveItem(c.Request.Context(), u.ID, c.Param("id")); err != nil {
			writeError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "item removed from cart"})
	}
}

func clearCartHandler(svc CartService, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		u, ok := currentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
			return
		}
		if err := svc.Clear(c.Request.Context(), u.ID); err != nil {
			writeError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "cart cleared"})
	}
}
