package types

import (
	"strconv"
	"time"
)

// Policy status
type PolicyStatus string

const (
	PolicyDraft     PolicyStatus = "Draft"
	PolicyActive    PolicyStatus = "Active"
	PolicyCompleted PolicyStatus = "Completed"
)

// Complaint enums
type ComplaintPriority string

const (
	PriorityLow      ComplaintPriority = "Low"
	PriorityMedium   ComplaintPriority = "Medium"
	PriorityHigh     ComplaintPriority = "High"
	PriorityCritical ComplaintPriority = "Critical"
)

type ComplaintStatus string

const (
	ComplaintSubmitted   ComplaintStatus = "Submitted"
	ComplaintUnderReview ComplaintStatus = "UnderReview"
	ComplaintResolved    ComplaintStatus = "Resolved"
)

// Proposal enums
type ProposalStatus string

const (
	ProposalDraft  ProposalStatus = "Draft"
	ProposalActive ProposalStatus = "Active"
)

type VoteType string

const (
	VoteYes     VoteType = "Yes"
	VoteNo      VoteType = "No"
	VoteAbstain VoteType = "Abstain"
)

// Transaction enums
type TransactionType string

const (
	TxAllocation TransactionType = "Allocation"
	TxRelease    TransactionType = "Release"
)

type TransactionStatus string

const (
	TxPending   TransactionStatus = "Pending"
	TxCompleted TransactionStatus = "Completed"
	TxFailed    TransactionStatus = "Failed"
)

// Policy is a modeled government scheme with allocated and released funds.
// Invariant: 0 <= FundReleased <= FundAllocation.
type Policy struct {
	ID                  string
	Title               string
	Description         string
	Category            string
	FundAllocation      Amount
	FundReleased        Amount
	BeneficiaryCount    int64
	Status              PolicyStatus
	CreatedAt           time.Time
	UpdatedAt           time.Time
	District            string
	Contractor          *string
	EligibilityCriteria []string
	ExecutionConditions []string
	CodeSnippet         string // cosmetic, never executed
}

// ComplaintAnalysis is the derived record attached to a Complaint at creation.
// All fields are produced by deterministic string matching, not inference.
type ComplaintAnalysis struct {
	Sentiment       string   `json:"sentiment"`
	Category        string   `json:"category"`
	PriorityScore   int      `json:"priority_score"`
	SuggestedAction string   `json:"suggested_action"`
	Confidence      float64  `json:"confidence"`
	Keywords        []string `json:"keywords"`
}

// Complaint is a citizen-submitted issue report, optionally linked to a Policy.
type Complaint struct {
	ID          string
	Title       string
	Description string
	Category    string
	Priority    ComplaintPriority
	Status      ComplaintStatus
	PolicyID    *string
	District    string
	Location    string
	Media       []string
	CitizenID   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Analysis    ComplaintAnalysis
	AuditScore  float64
	ResolvedAt  *time.Time
}

// Proposal is a governance item open for tallied voting within a time window.
type Proposal struct {
	ID            string
	Title         string
	Description   string
	Category      string
	Proposer      string
	CreatedAt     time.Time
	VotingStart   time.Time
	VotingEnd     time.Time
	Status        ProposalStatus
	YesVotes      int64
	NoVotes       int64
	AbstainVotes  int64
	TotalVotes    int64
	Quorum        int64
	ExecutionData string // opaque, unused
}

// MetadataPair keeps transaction metadata ordered.
type MetadataPair struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Transaction is an immutable record of a fund movement tied to a Policy.
type Transaction struct {
	ID          string
	PolicyID    string
	Type        TransactionType
	Amount      Amount
	FromAddress string
	ToAddress   string
	Timestamp   time.Time
	Status      TransactionStatus
	Hash        string // pseudo-random, not content-derived
	Metadata    []MetadataPair
}

// nano serializes a timestamp as a nanosecond-integer decimal string.
func nano(t time.Time) string { return strconv.FormatInt(t.UnixNano(), 10) }

func nanoPtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := nano(*t)
	return &s
}

// Wire views. Currency and timestamp fields travel as decimal strings only.

type PolicyView struct {
	ID                  string       `json:"id"`
	Title               string       `json:"title"`
	Description         string       `json:"description"`
	Category            string       `json:"category"`
	FundAllocation      Amount       `json:"fund_allocation"`
	FundReleased        Amount       `json:"fund_released"`
	BeneficiaryCount    int64        `json:"beneficiary_count"`
	Status              PolicyStatus `json:"status"`
	CreatedAt           string       `json:"created_at"`
	UpdatedAt           string       `json:"updated_at"`
	District            string       `json:"district"`
	Contractor          *string      `json:"contractor"`
	EligibilityCriteria []string     `json:"eligibility_criteria"`
	ExecutionConditions []string     `json:"execution_conditions"`
	CodeSnippet         string       `json:"code_snippet"`
}

func (p *Policy) View() PolicyView {
	return PolicyView{
		ID:                  p.ID,
		Title:               p.Title,
		Description:         p.Description,
		Category:            p.Category,
		FundAllocation:      p.FundAllocation,
		FundReleased:        p.FundReleased,
		BeneficiaryCount:    p.BeneficiaryCount,
		Status:              p.Status,
		CreatedAt:           nano(p.CreatedAt),
		UpdatedAt:           nano(p.UpdatedAt),
		District:            p.District,
		Contractor:          p.Contractor,
		EligibilityCriteria: p.EligibilityCriteria,
		ExecutionConditions: p.ExecutionConditions,
		CodeSnippet:         p.CodeSnippet,
	}
}

type ComplaintView struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Category    string            `json:"category"`
	Priority    ComplaintPriority `json:"priority"`
	Status      ComplaintStatus   `json:"status"`
	PolicyID    *string           `json:"policy_id"`
	District    string            `json:"district"`
	Location    string            `json:"location"`
	Media       []string          `json:"media"`
	CitizenID   string            `json:"citizen_id"`
	CreatedAt   string            `json:"created_at"`
	UpdatedAt   string            `json:"updated_at"`
	Analysis    ComplaintAnalysis `json:"analysis"`
	AuditScore  float64           `json:"audit_score"`
	ResolvedAt  *string           `json:"resolved_at"`
}

func (c *Complaint) View() ComplaintView {
	return ComplaintView{
		ID:          c.ID,
		Title:       c.Title,
		Description: c.Description,
		Category:    c.Category,
		Priority:    c.Priority,
		Status:      c.Status,
		PolicyID:    c.PolicyID,
		District:    c.District,
		Location:    c.Location,
		Media:       c.Media,
		CitizenID:   c.CitizenID,
		CreatedAt:   nano(c.CreatedAt),
		UpdatedAt:   nano(c.UpdatedAt),
		Analysis:    c.Analysis,
		AuditScore:  c.AuditScore,
		ResolvedAt:  nanoPtr(c.ResolvedAt),
	}
}

type ProposalView struct {
	ID            string         `json:"id"`
	Title         string         `json:"title"`
	Description   string         `json:"description"`
	Category      string         `json:"category"`
	Proposer      string         `json:"proposer"`
	CreatedAt     string         `json:"created_at"`
	VotingStart   string         `json:"voting_start"`
	VotingEnd     string         `json:"voting_end"`
	Status        ProposalStatus `json:"status"`
	YesVotes      int64          `json:"yes_votes"`
	NoVotes       int64          `json:"no_votes"`
	AbstainVotes  int64          `json:"abstain_votes"`
	TotalVotes    int64          `json:"total_votes"`
	Quorum        int64          `json:"quorum"`
	ExecutionData string         `json:"execution_data,omitempty"`
}

func (p *Proposal) View() ProposalView {
	return ProposalView{
		ID:            p.ID,
		Title:         p.Title,
		Description:   p.Description,
		Category:      p.Category,
		Proposer:      p.Proposer,
		CreatedAt:     nano(p.CreatedAt),
		VotingStart:   nano(p.VotingStart),
		VotingEnd:     nano(p.VotingEnd),
		Status:        p.Status,
		YesVotes:      p.YesVotes,
		NoVotes:       p.NoVotes,
		AbstainVotes:  p.AbstainVotes,
		TotalVotes:    p.TotalVotes,
		Quorum:        p.Quorum,
		ExecutionData: p.ExecutionData,
	}
}

type TransactionView struct {
	ID          string            `json:"id"`
	PolicyID    string            `json:"policy_id"`
	Type        TransactionType   `json:"type"`
	Amount      Amount            `json:"amount"`
	FromAddress string            `json:"from_address"`
	ToAddress   string            `json:"to_address"`
	Timestamp   string            `json:"timestamp"`
	Status      TransactionStatus `json:"status"`
	Hash        string            `json:"hash"`
	Metadata    []MetadataPair    `json:"metadata"`
}

func (t *Transaction) View() TransactionView {
	return TransactionView{
		ID:          t.ID,
		PolicyID:    t.PolicyID,
		Type:        t.Type,
		Amount:      t.Amount,
		FromAddress: t.FromAddress,
		ToAddress:   t.ToAddress,
		Timestamp:   nano(t.Timestamp),
		Status:      t.Status,
		Hash:        t.Hash,
		Metadata:    t.Metadata,
	}
}
