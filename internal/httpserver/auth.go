package httpserver

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	authsvc "github.com/Diego999991/ecommerce-api/internal/service/auth"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func registerHandler(svc AuthService, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in authsvc.RegisterInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		u, token, err := svc.Register(c.Request.Context(), in)
		if err != nil {
			writeError(c, logger, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"user": u, "token": token})
	}
}

func loginHandler(svc AuthService, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in loginRequest
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		u, token, err := svc.Login(c.Request.Context(), in.Email, in.Password)
		if err != nil {
			writeError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"user": u, "token": token})
	}
}

func profileHandler(svc AuthService, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		u, ok := currentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
			return
		}
		profile, err := svc.Profile(c.Request.Context(), u.ID)
		if err != nil {
			writeError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, profile)
	}
}
