package webserver

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/civicledger/govledger/src/api/store"
)

type Transactions struct {
	st *store.Store
}

func NewTransactions(st *store.Store) Transactions {
	return Transactions{st: st}
}

func (h Transactions) List(c *gin.Context) {
	limit := store.DefaultTransactionLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = n
	}
	c.JSON(http.StatusOK, h.st.ListTransactions(limit))
}

func (h Transactions) ListForPolicy(c *gin.Context) {
	c.JSON(http.StatusOK, h.st.ListTransactionsForPolicy(c.Param("policyId")))
}
