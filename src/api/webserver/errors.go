package webserver

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/civicledger/govledger/src/api/store"
)

// storeError maps store failures onto the response taxonomy: 404 for missing
// ids, 400 for business-rule rejections, generic 500 (detail logged, not
// leaked) for anything else.
func storeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, store.ErrInsufficientFunds), errors.Is(err, store.ErrInvalidVote):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		slog.Error("store fault", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
