package webserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/civicledger/govledger/src/api/store"
)

type Analytics struct {
	st *store.Store
}

func NewAnalytics(st *store.Store) Analytics {
	return Analytics{st: st}
}

func (h Analytics) Overview(c *gin.Context) {
	c.JSON(http.StatusOK, h.st.AnalyticsOverview())
}
