package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ledger-service/internal/services"
	"ledger-service/pkg/common"
)

type EntityHandler struct {
	Entities *services.EntityService
}

func NewEntityHandler(entities *services.EntityService) *EntityHandler {
	return &EntityHandler{Entities: entities}
}

func (h *EntityHandler) Create(c *gin.Context) {
	var req services.EntityDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(err.Error(), nil, http.StatusBadRequest))
		return
	}
	entity, err := h.Entities.CreateEntity(req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(entity, "Entity created"))
}

func (h *EntityHandler) List(c *gin.Context) {
	entities, err := h.Entities.ListEntities()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(entities, "Entities fetched"))
}

func (h *EntityHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	entity, err := h.Entities.GetEntity(id)
	if err != nil {
		respondError(c, err)
		return
	}
	activeOnly := c.DefaultQuery("active_only", "true") == "true"
	aggregates, err := h.Entities.Aggregates(id, activeOnly)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(gin.H{
		"entity":     entity,
		"aggregates": aggregates,
	}, "Entity fetched"))
}

func (h *EntityHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req services.EntityDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(err.Error(), nil, http.StatusBadRequest))
		return
	}
	entity, err := h.Entities.UpdateEntity(id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(entity, "Entity updated"))
}

func (h *EntityHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.Entities.DeleteEntity(id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(nil, "Entity deleted"))
}

func (h *EntityHandler) AddLot(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req services.LotDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(err.Error(), nil, http.StatusBadRequest))
		return
	}
	lot, err := h.Entities.AddLot(id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(lot, "Lot added"))
}

func (h *EntityHandler) UpdateLot(c *gin.Context) {
	lotID, ok := pathID(c, "lotId")
	if !ok {
		return
	}
	var req services.LotDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(err.Error(), nil, http.StatusBadRequest))
		return
	}
	lot, err := h.Entities.UpdateLot(lotID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(lot, "Lot updated"))
}

func (h *EntityHandler) DeleteLot(c *gin.Context) {
	lotID, ok := pathID(c, "lotId")
	if !ok {
		return
	}
	if err := h.Entities.DeleteLot(lotID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(nil, "Lot deleted"))
}

func (h *EntityHandler) ToggleLotArchive(c *gin.Context) {
	lotID, ok := pathID(c, "lotId")
	if !ok {
		return
	}
	lot, err := h.Entities.ToggleLotArchive(lotID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(lot, "Lot archive toggled"))
}

type markLoadedRequest struct {
	LoadingDetails string `json:"loading_details"`
}

func (h *EntityHandler) MarkLotLoaded(c *gin.Context) {
	lotID, ok := pathID(c, "lotId")
	if !ok {
		return
	}
	var req markLoadedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(err.Error(), nil, http.StatusBadRequest))
		return
	}
	lot, err := h.Entities.MarkLotLoaded(lotID, req.LoadingDetails)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(lot, "Lot marked as loaded"))
}
