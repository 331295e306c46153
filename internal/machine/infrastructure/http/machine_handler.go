package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mahmoudAmagdy/VendingMachine/internal/machine/domain"
)

type depositRequestBody struct {
	Coin int `json:"coin" binding:"required"`
}

type buyRequestBody struct {
	ProductID int `json:"productId" binding:"required"`
	Amount    int `json:"amount" binding:"required"`
}

// MachineHandler exposes the transaction engine: deposit, buy, reset.
type MachineHandler struct {
	depositor domain.Depositor
	purchaser domain.Purchaser
	resetter  domain.Resetter
	userInfo  domain.UserInfoProvider
}

func NewMachineHandler(
	depositor domain.Depositor,
	purchaser domain.Purchaser,
	resetter domain.Resetter,
	userInfo domain.UserInfoProvider,
) *MachineHandler {
	return &MachineHandler{
		depositor: depositor,
		purchaser: purchaser,
		resetter:  resetter,
		userInfo:  userInfo,
	}
}

func (h *MachineHandler) Deposit(c *gin.Context) {
	var body depositRequestBody

	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": "invalid request body"})
		return
	}

	receipt, err := h.depositor.Deposit(c, c.GetInt(UserIDKey), body.Coin)
	if err != nil {
		handleDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, receipt)
}

func (h *MachineHandler) Buy(c *gin.Context) {
	var body buyRequestBody

	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": "invalid request body"})
		return
	}

	receipt, err := h.purchaser.Buy(c, c.GetInt(UserIDKey), body.ProductID, body.Amount)
	if err != nil {
		handleDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, receipt)
}

func (h *MachineHandler) Reset(c *gin.Context) {
	receipt, err := h.resetter.Reset(c, c.GetInt(UserIDKey))
	if err != nil {
		handleDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, receipt)
}

func (h *MachineHandler) GetMe(c *gin.Context) {
	profile, err := h.userInfo.GetUserInfo(c, c.GetInt(UserIDKey))
	if err != nil {
		handleDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}
