package webserver

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/civicledger/govledger/src/api/realtime"
	"github.com/civicledger/govledger/src/api/store"
	"github.com/civicledger/govledger/src/api/types"
)

type Proposals struct {
	st  *store.Store
	hub Publisher
}

func NewProposals(st *store.Store, hub Publisher) Proposals {
	return Proposals{st: st, hub: hub}
}

func (h Proposals) publish() {
	h.hub.Publish(realtime.TopicProposals, h.st.ListProposals())
}

func (h Proposals) List(c *gin.Context) {
	c.JSON(http.StatusOK, h.st.ListProposals())
}

func (h Proposals) Get(c *gin.Context) {
	view, err := h.st.GetProposal(c.Param("id"))
	if err != nil {
		storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h Proposals) Create(c *gin.Context) {
	var req struct {
		Title             string `json:"title" binding:"required,max=255"`
		Description       string `json:"description" binding:"required,max=10000"`
		Category          string `json:"category" binding:"required,max=64"`
		Proposer          string `json:"proposer" binding:"required,max=128"`
		VotingPeriodHours int64  `json:"voting_period_hours" binding:"required,min=1"`
		Quorum            int64  `json:"quorum" binding:"min=0"`
		ExecutionData     string `json:"execution_data"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	view := h.st.CreateProposal(store.ProposalInput{
		Title:         req.Title,
		Description:   req.Description,
		Category:      req.Category,
		Proposer:      req.Proposer,
		VotingPeriod:  time.Duration(req.VotingPeriodHours) * time.Hour,
		Quorum:        req.Quorum,
		ExecutionData: req.ExecutionData,
	})

	h.publish()
	c.JSON(http.StatusCreated, view)
}

func (h Proposals) Vote(c *gin.Context) {
	var req struct {
		Voter       string         `json:"voter" binding:"required,max=128"`
		VoteType    types.VoteType `json:"vote_type" binding:"required,oneof=Yes No Abstain"`
		VotingPower int64          `json:"voting_power" binding:"required,min=1"`
		Reason      string         `json:"reason" binding:"max=1000"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Voter and reason are recorded nowhere and checked against nothing:
	// vote accumulation is deliberately unbounded and unauthenticated.
	view, err := h.st.Vote(c.Param("id"), req.VoteType, req.VotingPower)
	if err != nil {
		storeError(c, err)
		return
	}

	h.publish()
	c.JSON(http.StatusOK, view)
}
