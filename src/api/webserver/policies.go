package webserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"

	"github.com/civicledger/govledger/src/api/realtime"
	"github.com/civicledger/govledger/src/api/store"
	"github.com/civicledger/govledger/src/api/types"
)

type Policies struct {
	st        *store.Store
	hub       Publisher
	sanitizer *bluemonday.Policy
}

func NewPolicies(st *store.Store, hub Publisher) Policies {
	return Policies{st: st, hub: hub, sanitizer: bluemonday.StrictPolicy()}
}

func (h Policies) publish() {
	h.hub.Publish(realtime.TopicPolicies, h.st.ListPolicies())
}

func (h Policies) List(c *gin.Context) {
	c.JSON(http.StatusOK, h.st.ListPolicies())
}

func (h Policies) Get(c *gin.Context) {
	view, err := h.st.GetPolicy(c.Param("id"))
	if err != nil {
		storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h Policies) Create(c *gin.Context) {
	var req struct {
		Title               string       `json:"title" binding:"required,max=255"`
		Description         string       `json:"description" binding:"required,max=10000"`
		Category            string       `json:"category" binding:"required,max=64"`
		FundAllocation      types.Amount `json:"fund_allocation" binding:"required"`
		BeneficiaryCount    int64        `json:"beneficiary_count" binding:"min=0"`
		District            string       `json:"district" binding:"required,max=128"`
		Contractor          *string      `json:"contractor"`
		EligibilityCriteria []string     `json:"eligibility_criteria"`
		ExecutionConditions []string     `json:"execution_conditions"`
		CodeSnippet         string       `json:"code_snippet"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	view := h.st.CreatePolicy(store.PolicyInput{
		Title:               h.sanitizer.Sanitize(req.Title),
		Description:         h.sanitizer.Sanitize(req.Description),
		Category:            req.Category,
		FundAllocation:      req.FundAllocation,
		BeneficiaryCount:    req.BeneficiaryCount,
		District:            req.District,
		Contractor:          req.Contractor,
		EligibilityCriteria: req.EligibilityCriteria,
		ExecutionConditions: req.ExecutionConditions,
		CodeSnippet:         req.CodeSnippet,
	})

	h.publish()
	c.JSON(http.StatusCreated, view)
}

func (h Policies) Activate(c *gin.Context) {
	view, err := h.st.ActivatePolicy(c.Param("id"))
	if err != nil {
		storeError(c, err)
		return
	}
	h.publish()
	c.JSON(http.StatusOK, view)
}

func (h Policies) ReleaseFunds(c *gin.Context) {
	var req struct {
		Amount    types.Amount `json:"amount" binding:"required"`
		ToAddress string       `json:"to_address" binding:"required,max=128"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	policy, tx, err := h.st.ReleaseFunds(c.Param("id"), req.Amount, req.ToAddress)
	if err != nil {
		storeError(c, err)
		return
	}

	h.publish()
	h.hub.Publish(realtime.TopicTransactions, h.st.AllTransactions())

	c.JSON(http.StatusOK, gin.H{
		"policy":         policy,
		"transaction_id": tx.ID,
	})
}
