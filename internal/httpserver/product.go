package httpserver

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Diego999991/ecommerce-api/internal/domain"
	productsvc "github.com/Diego999991/ecommerce-api/internal/service/product"
)

func listProductsHandler(svc ProductService, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := svc.List(c.Request.Context(), c.Query("category"), c.Query("search"))
		if err != nil {
			writeError(c, logger, err)
			return
		}
		if products == nil {
			products = []domain.Product{}
		}
		c.JSON(http.StatusOK, products)
	}
}

func getProductHandler(svc ProductService, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := svc.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			writeError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, p)
	}
}

func createProductHandler(svc ProductService, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in productsvc.CreateInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		p, err := svc.Create(c.Request.Context(), in)
		if err != nil {
			writeError(c, logger, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"message": "product created", "product": p})
	}
}

func updateProductHandler(svc ProductService, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in productsvc.UpdateInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		p, err := svc.Update(c.Request.Context(), c.Param("id"), in)
		if err != nil {
			writeError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "product updated", "product": p})
	}
}

func deleteProductHandler(svc ProductService, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
			writeError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "product deleted"})
	}
}
