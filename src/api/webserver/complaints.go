package webserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"

	"github.com/civicledger/govledger/src/api/realtime"
	"github.com/civicledger/govledger/src/api/store"
	"github.com/civicledger/govledger/src/api/types"
)

type Complaints struct {
	st        *store.Store
	hub       Publisher
	sanitizer *bluemonday.Policy
}

func NewComplaints(st *store.Store, hub Publisher) Complaints {
	return Complaints{st: st, hub: hub, sanitizer: bluemonday.StrictPolicy()}
}

func (h Complaints) List(c *gin.Context) {
	c.JSON(http.StatusOK, h.st.ListComplaints())
}

func (h Complaints) Get(c *gin.Context) {
	view, err := h.st.GetComplaint(c.Param("id"))
	if err != nil {
		storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h Complaints) Create(c *gin.Context) {
	var req struct {
		Title       string                  `json:"title" binding:"required,max=255"`
		Description string                  `json:"description" binding:"required,max=10000"`
		Category    string                  `json:"category" binding:"required,max=64"`
		Priority    types.ComplaintPriority `json:"priority" binding:"required,oneof=Low Medium High Critical"`
		PolicyID    *string                 `json:"policy_id"`
		District    string                  `json:"district" binding:"required,max=128"`
		Location    string                  `json:"location" binding:"max=256"`
		Media       []string                `json:"media" binding:"max=10"`
		CitizenID   string                  `json:"citizen_id" binding:"required,max=64"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	view := h.st.CreateComplaint(store.ComplaintInput{
		Title:       h.sanitizer.Sanitize(req.Title),
		Description: h.sanitizer.Sanitize(req.Description),
		Category:    req.Category,
		Priority:    req.Priority,
		PolicyID:    req.PolicyID,
		District:    req.District,
		Location:    req.Location,
		Media:       req.Media,
		CitizenID:   req.CitizenID,
	})

	h.hub.Publish(realtime.TopicComplaints, h.st.ListComplaints())
	c.JSON(http.StatusCreated, view)
}
