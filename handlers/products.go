package handlers

import (
	"net/http"
	"strconv"

	"github.com/Amanjain8795/matratv-connect-main-sub001/models"

	"github.com/gin-gonic/gin"
)

func GetProductsHandler(c *gin.Context) {
	products, err := models.GetActiveProducts(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"products": []models.Product{}})
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}

func GetProductHandler(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}

	product, err := models.GetProductByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"product": product})
}
