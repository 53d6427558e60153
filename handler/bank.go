package handler

import (
	"net/http"
	"strconv"

	"LuckyChat/config"
	"LuckyChat/middleware"
	"LuckyChat/pkg/context"
	"LuckyChat/pkg/response"
	"LuckyChat/service"
	"LuckyChat/types"

	"github.com/gin-gonic/gin"
)

type Bank struct {
	Config      *config.Config
	BankService service.IBankService
}

func (h *Bank) RegisterRouter(r gin.IRouter) {
	authorize := middleware.Auth([]byte(h.Config.Jwt.Secret))
	bank := r.Group("/v1/bank", authorize)

	bank.GET("/balance", context.Wrap(h.Balance))
	bank.POST("/transaction", context.Wrap(h.Transaction))
	bank.GET("/transactions", context.Wrap(h.Transactions))
}

func (h *Bank) Balance(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, "未登录")
	}

	balance, err := h.BankService.Balance(c, userID, c.Query("personaId"))
	if err != nil {
		return err
	}
	response.Success(c, balance)
	return nil
}

func (h *Bank) Transaction(c *gin.Context) error {
	var req types.BankTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.NewError(http.StatusBadRequest, err.Error())
	}
	userID, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, "未登录")
	}

	balance, err := h.BankService.Record(c, userID, &req)
	if err != nil {
		return err
	}
	response.Success(c, balance)
	return nil
}

func (h *Bank) Transactions(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, "未登录")
	}

	offset, _ := strconv.Atoi(c.Query("offset"))
	limit, _ := strconv.Atoi(c.Query("limit"))

	page, err := h.BankService.Transactions(c, userID, c.Query("personaId"), offset, limit)
	if err != nil {
		return err
	}
	response.Success(c, page)
	return nil
}
