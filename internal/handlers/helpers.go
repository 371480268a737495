package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"ledger-service/internal/models"
	"ledger-service/pkg/common"
)

func pathID(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse("Invalid "+name, nil, http.StatusBadRequest))
		return 0, false
	}
	return id, true
}

// namespaceParam validates the :namespace path segment against the two
// ledger buckets.
func namespaceParam(c *gin.Context) (string, bool) {
	ns := c.Param("namespace")
	if ns != models.NamespaceAdvances && ns != models.NamespaceWork {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse("Unknown namespace", nil, http.StatusBadRequest))
		return "", false
	}
	return ns, true
}

// respondError maps service errors onto HTTP statuses.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, common.ErrNotFound):
		c.JSON(http.StatusNotFound, common.NewErrorResponse(err.Error(), nil, http.StatusNotFound))
	case errors.Is(err, common.ErrValidation):
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(err.Error(), nil, http.StatusBadRequest))
	default:
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error(), nil, http.StatusInternalServerError))
	}
}
