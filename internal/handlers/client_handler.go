package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"ledger-service/internal/ledger"
	"ledger-service/internal/services"
	"ledger-service/pkg/common"
)

type ClientHandler struct {
	Clients      *services.ClientService
	Transactions *services.TransactionService
}

func NewClientHandler(clients *services.ClientService, transactions *services.TransactionService) *ClientHandler {
	return &ClientHandler{Clients: clients, Transactions: transactions}
}

func (h *ClientHandler) Create(c *gin.Context) {
	ns, ok := namespaceParam(c)
	if !ok {
		return
	}
	var req services.CreateClientDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(err.Error(), nil, http.StatusBadRequest))
		return
	}
	client, err := h.Clients.CreateClient(ns, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(client, "Client created"))
}

func (h *ClientHandler) List(c *gin.Context) {
	ns, ok := namespaceParam(c)
	if !ok {
		return
	}
	archived := c.Query("archived") == "true"
	clients, err := h.Clients.ListClients(ns, archived)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(clients, "Clients fetched"))
}

func (h *ClientHandler) Get(c *gin.Context) {
	ns, ok := namespaceParam(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	client, err := h.Clients.GetClient(ns, id)
	if err != nil {
		respondError(c, err)
		return
	}
	balance := ledger.ClientBalance(client.Transactions)
	c.JSON(http.StatusOK, common.NewSuccessResponse(gin.H{
		"client":            client,
		"balance":           balance,
		"formatted_balance": common.FormatCurrency(balance),
	}, "Client fetched"))
}

func (h *ClientHandler) Update(c *gin.Context) {
	ns, ok := namespaceParam(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req services.UpdateClientDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(err.Error(), nil, http.StatusBadRequest))
		return
	}
	client, err := h.Clients.UpdateClient(ns, id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(client, "Client updated"))
}

func (h *ClientHandler) Delete(c *gin.Context) {
	ns, ok := namespaceParam(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.Clients.DeleteClient(ns, id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(nil, "Client deleted"))
}

func (h *ClientHandler) Settle(c *gin.Context) {
	ns, ok := namespaceParam(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	client, err := h.Clients.SettleAndArchive(ns, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(client, "Client settled and archived"))
}

func (h *ClientHandler) Restore(c *gin.Context) {
	ns, ok := namespaceParam(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	client, err := h.Clients.RestoreClient(ns, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(client, "Client restored"))
}

func (h *ClientHandler) History(c *gin.Context) {
	ns, ok := namespaceParam(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if _, err := h.Clients.FindClient(ns, id); err != nil {
		respondError(c, err)
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	result, err := h.Transactions.GetTransactions(id, page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
