package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mahmoudAmagdy/VendingMachine/internal/machine/domain"
)

const ProductIDKey = "id"

type createProductRequestBody struct {
	Name            string `json:"productName" binding:"required"`
	AvailableAmount int    `json:"amountAvailable" binding:"gte=0"`
	Cost            int    `json:"cost" binding:"required"`
}

type updateProductRequestBody struct {
	Name            *string `json:"productName"`
	AvailableAmount *int    `json:"amountAvailable"`
	Cost            *int    `json:"cost"`
}

type ProductHandler struct {
	products domain.ProductManager
}

func NewProductHandler(products domain.ProductManager) *ProductHandler {
	return &ProductHandler{
		products: products,
	}
}

func (h *ProductHandler) Create(c *gin.Context) {
	var body createProductRequestBody

	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": "invalid request body"})
		return
	}

	product, err := h.products.CreateProduct(c, c.GetInt(UserIDKey), domain.NewProduct{
		Name:            body.Name,
		AvailableAmount: body.AvailableAmount,
		Cost:            body.Cost,
	})
	if err != nil {
		handleDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, product)
}

func (h *ProductHandler) Get(c *gin.Context) {
	productID, ok := parseProductID(c)
	if !ok {
		return
	}

	product, err := h.products.GetProduct(c, productID)
	if err != nil {
		handleDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) List(c *gin.Context) {
	products, err := h.products.ListProducts(c)
	if err != nil {
		handleDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, products)
}

func (h *ProductHandler) Update(c *gin.Context) {
	productID, ok := parseProductID(c)
	if !ok {
		return
	}

	var body updateProductRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": "invalid request body"})
		return
	}

	product, err := h.products.UpdateProduct(c, c.GetInt(UserIDKey), productID, domain.ProductUpdate{
		Name:            body.Name,
		AvailableAmount: body.AvailableAmount,
		Cost:            body.Cost,
	})
	if err != nil {
		handleDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) Delete(c *gin.Context) {
	productID, ok := parseProductID(c)
	if !ok {
		return
	}

	err := h.products.DeleteProduct(c, c.GetInt(UserIDKey), productID)
	if err != nil {
		handleDomainError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func parseProductID(c *gin.Context) (int, bool) {
	productID, err := strconv.Atoi(c.Param(ProductIDKey))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": "invalid product id"})
		return 0, false
	}

	return productID, true
}
