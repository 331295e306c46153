package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mahmoudAmagdy/VendingMachine/internal/machine/domain"
)

type registerRequestBody struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role" binding:"required"`
}

type loginRequestBody struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type AuthHandler struct {
	authenticator domain.Authenticator
}

func NewAuthHandler(authenticator domain.Authenticator) *AuthHandler {
	return &AuthHandler{
		authenticator: authenticator,
	}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var body registerRequestBody

	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": "invalid request body"})
		return
	}

	profile, err := h.authenticator.Register(c, body.Username, body.Password, body.Role)
	if err != nil {
		handleDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, profile)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var body loginRequestBody

	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": "invalid request body"})
		return
	}

	token, err := h.authenticator.Login(c, body.Username, body.Password)
	if err != nil {
		handleDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}
