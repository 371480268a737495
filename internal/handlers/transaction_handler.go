package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ledger-service/internal/services"
	"ledger-service/pkg/common"
)

type TransactionHandler struct {
	Transactions *services.TransactionService
	Payments     *services.PaymentService
}

func NewTransactionHandler(transactions *services.TransactionService, payments *services.PaymentService) *TransactionHandler {
	return &TransactionHandler{Transactions: transactions, Payments: payments}
}

func (h *TransactionHandler) Create(c *gin.Context) {
	clientID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req services.TransactionDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(err.Error(), nil, http.StatusBadRequest))
		return
	}
	trx, err := h.Transactions.AddTransaction(clientID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(trx, "Transaction created"))
}

func (h *TransactionHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "trxId")
	if !ok {
		return
	}
	var req services.TransactionDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(err.Error(), nil, http.StatusBadRequest))
		return
	}
	trx, err := h.Transactions.UpdateTransaction(id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(trx, "Transaction updated"))
}

func (h *TransactionHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "trxId")
	if !ok {
		return
	}
	if err := h.Transactions.DeleteTransaction(id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(nil, "Transaction deleted"))
}

func (h *TransactionHandler) AddPayment(c *gin.Context) {
	clientID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req services.PaymentDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(err.Error(), nil, http.StatusBadRequest))
		return
	}
	payment, err := h.Payments.AddPayment(clientID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(payment, "Payment recorded"))
}
