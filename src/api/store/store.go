// Package store owns the four in-memory governance collections. The service
// process is the sole owner of this state; nothing is persisted and a restart
// starts empty (modulo the seed dataset). All access goes through a single
// RWMutex so handlers may run on any goroutine.
package store

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/civicledger/govledger/src/api/types"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrInvalidVote       = errors.New("invalid vote type")
)

// votingStartDelay is the fixed offset between proposal creation and the
// opening of its voting window.
const votingStartDelay = 24 * time.Hour

// treasuryAddress is the from-address stamped on fund-release transactions.
// Free text, never validated.
const treasuryAddress = "0xGOV-TREASURY"

// ComplaintAnalyzer produces the derived analysis record at complaint
// creation time.
type ComplaintAnalyzer interface {
	Analyze(description string, priority types.ComplaintPriority) types.ComplaintAnalysis
}

// Store holds the collections in insertion order. Entities are never deleted,
// so an append-only slice plus an id index is enough.
type Store struct {
	mu sync.RWMutex

	analyzer ComplaintAnalyzer

	policies     []*types.Policy
	policyIdx    map[string]*types.Policy
	complaints   []*types.Complaint
	complaintIdx map[string]*types.Complaint
	proposals    []*types.Proposal
	proposalIdx  map[string]*types.Proposal
	transactions []*types.Transaction
}

func New(analyzer ComplaintAnalyzer) *Store {
	return &Store{
		analyzer:     analyzer,
		policyIdx:    make(map[string]*types.Policy),
		complaintIdx: make(map[string]*types.Complaint),
		proposalIdx:  make(map[string]*types.Proposal),
	}
}

// newTxHash returns a cosmetic pseudo-random transaction hash. It is not
// derived from the transaction contents.
func newTxHash() string {
	buf := make([]byte, 32)
	_, _ = rand.Read(buf)
	return "0x" + hex.EncodeToString(buf)
}

// ---------------------------------------------------------------------------
// Policies
// ---------------------------------------------------------------------------

type PolicyInput struct {
	Title               string
	Description         string
	Category            string
	FundAllocation      types.Amount
	BeneficiaryCount    int64
	District            string
	Contractor          *string
	EligibilityCriteria []string
	ExecutionConditions []string
	CodeSnippet         string
}

func (s *Store) ListPolicies() []types.PolicyView {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]types.PolicyView, 0, len(s.policies))
	for _, p := range s.policies {
		out = append(out, p.View())
	}
	return out
}

func (s *Store) GetPolicy(id string) (types.PolicyView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.policyIdx[id]
	if !ok {
		return types.PolicyView{}, fmt.Errorf("policy %s: %w", id, ErrNotFound)
	}
	return p.View(), nil
}

func (s *Store) CreatePolicy(in PolicyInput) types.PolicyView {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	p := &types.Policy{
		ID:                  uuid.NewString(),
		Title:               in.Title,
		Description:         in.Description,
		Category:            in.Category,
		FundAllocation:      in.FundAllocation,
		FundReleased:        types.NewAmount(0),
		BeneficiaryCount:    in.BeneficiaryCount,
		Status:              types.PolicyDraft,
		CreatedAt:           now,
		UpdatedAt:           now,
		District:            in.District,
		Contractor:          in.Contractor,
		EligibilityCriteria: in.EligibilityCriteria,
		ExecutionConditions: in.ExecutionConditions,
		CodeSnippet:         in.CodeSnippet,
	}
	s.policies = append(s.policies, p)
	s.policyIdx[p.ID] = p
	return p.View()
}

func (s *Store) ActivatePolicy(id string) (types.PolicyView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.policyIdx[id]
	if !ok {
		return types.PolicyView{}, fmt.Errorf("policy %s: %w", id, ErrNotFound)
	}
	p.Status = types.PolicyActive
	p.UpdatedAt = time.Now()
	return p.View(), nil
}

// ReleaseFunds increments the policy's released amount and records a
// companion Release transaction in the same critical section. Rejected
// releases leave both collections untouched.
func (s *Store) ReleaseFunds(id string, amount types.Amount, toAddress string) (types.PolicyView, types.TransactionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.policyIdx[id]
	if !ok {
		return types.PolicyView{}, types.TransactionView{}, fmt.Errorf("policy %s: %w", id, ErrNotFound)
	}
	if p.FundReleased.Add(amount).Cmp(p.FundAllocation) > 0 {
		return types.PolicyView{}, types.TransactionView{}, fmt.Errorf(
			"release of %s exceeds allocation %s (already released %s): %w",
			amount, p.FundAllocation, p.FundReleased, ErrInsufficientFunds)
	}

	p.FundReleased = p.FundReleased.Add(amount)
	p.UpdatedAt = time.Now()

	tx := &types.Transaction{
		ID:          uuid.NewString(),
		PolicyID:    p.ID,
		Type:        types.TxRelease,
		Amount:      amount,
		FromAddress: treasuryAddress,
		ToAddress:   toAddress,
		Timestamp:   time.Now(),
		Status:      types.TxCompleted,
		Hash:        newTxHash(),
		Metadata: []types.MetadataPair{
			{Key: "policy_title", Value: p.Title},
			{Key: "purpose", Value: "fund release"},
		},
	}
	s.transactions = append(s.transactions, tx)
	return p.View(), tx.View(), nil
}

// ---------------------------------------------------------------------------
// Complaints
// ---------------------------------------------------------------------------

type ComplaintInput struct {
	Title       string
	Description string
	Category    string
	Priority    types.ComplaintPriority
	PolicyID    *string
	District    string
	Location    string
	Media       []string
	CitizenID   string
}

func (s *Store) ListComplaints() []types.ComplaintView {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]types.ComplaintView, 0, len(s.complaints))
	for _, c := range s.complaints {
		out = append(out, c.View())
	}
	return out
}

func (s *Store) GetComplaint(id string) (types.ComplaintView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.complaintIdx[id]
	if !ok {
		return types.ComplaintView{}, fmt.Errorf("complaint %s: %w", id, ErrNotFound)
	}
	return c.View(), nil
}

// CreateComplaint stores the complaint in Submitted status with its analysis
// computed synchronously from the description text.
func (s *Store) CreateComplaint(in ComplaintInput) types.ComplaintView {
	an := s.analyzer.Analyze(in.Description, in.Priority)

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	c := &types.Complaint{
		ID:          uuid.NewString(),
		Title:       in.Title,
		Description: in.Description,
		Category:    in.Category,
		Priority:    in.Priority,
		Status:      types.ComplaintSubmitted,
		PolicyID:    in.PolicyID,
		District:    in.District,
		Location:    in.Location,
		Media:       in.Media,
		CitizenID:   in.CitizenID,
		CreatedAt:   now,
		UpdatedAt:   now,
		Analysis:    an,
		AuditScore:  auditScore(an),
	}
	s.complaints = append(s.complaints, c)
	s.complaintIdx[c.ID] = c
	return c.View()
}

// auditScore folds the analysis into a 0-100 score. Deterministic.
func auditScore(an types.ComplaintAnalysis) float64 {
	score := 50.0 + 5.0*float64(an.PriorityScore)
	if score > 100 {
		score = 100
	}
	return score
}

// ---------------------------------------------------------------------------
// Proposals
// ---------------------------------------------------------------------------

type ProposalInput struct {
	Title         string
	Description   string
	Category      string
	Proposer      string
	VotingPeriod  time.Duration
	Quorum        int64
	ExecutionData string
}

func (s *Store) ListProposals() []types.ProposalView {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]types.ProposalView, 0, len(s.proposals))
	for _, p := range s.proposals {
		out = append(out, p.View())
	}
	return out
}

func (s *Store) GetProposal(id string) (types.ProposalView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.proposalIdx[id]
	if !ok {
		return types.ProposalView{}, fmt.Errorf("proposal %s: %w", id, ErrNotFound)
	}
	return p.View(), nil
}

func (s *Store) CreateProposal(in ProposalInput) types.ProposalView {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	start := now.Add(votingStartDelay)
	p := &types.Proposal{
		ID:            uuid.NewString(),
		Title:         in.Title,
		Description:   in.Description,
		Category:      in.Category,
		Proposer:      in.Proposer,
		CreatedAt:     now,
		VotingStart:   start,
		VotingEnd:     start.Add(in.VotingPeriod),
		Status:        types.ProposalDraft,
		Quorum:        in.Quorum,
		ExecutionData: in.ExecutionData,
	}
	s.proposals = append(s.proposals, p)
	s.proposalIdx[p.ID] = p
	return p.View()
}

// Vote adds votingPower to the matching tally and to the total. There is no
// double-vote prevention, eligibility check, or quorum enforcement here; any
// caller may vote any amount any number of times.
func (s *Store) Vote(id string, vote types.VoteType, votingPower int64) (types.ProposalView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.proposalIdx[id]
	if !ok {
		return types.ProposalView{}, fmt.Errorf("proposal %s: %w", id, ErrNotFound)
	}

	switch vote {
	case types.VoteYes:
		p.YesVotes += votingPower
	case types.VoteNo:
		p.NoVotes += votingPower
	case types.VoteAbstain:
		p.AbstainVotes += votingPower
	default:
		return types.ProposalView{}, fmt.Errorf("%q: %w", vote, ErrInvalidVote)
	}
	p.TotalVotes += votingPower
	return p.View(), nil
}

// ---------------------------------------------------------------------------
// Transactions
// ---------------------------------------------------------------------------

const DefaultTransactionLimit = 10

// ListTransactions returns the most recent limit transactions, newest first.
// A non-positive limit falls back to DefaultTransactionLimit.
func (s *Store) ListTransactions(limit int) []types.TransactionView {
	if limit <= 0 {
		limit = DefaultTransactionLimit
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	sorted := make([]*types.Transaction, len(s.transactions))
	copy(sorted, s.transactions)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.After(sorted[j].Timestamp)
	})
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}

	out := make([]types.TransactionView, 0, len(sorted))
	for _, tx := range sorted {
		out = append(out, tx.View())
	}
	return out
}

func (s *Store) ListTransactionsForPolicy(policyID string) []types.TransactionView {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]types.TransactionView, 0)
	for _, tx := range s.transactions {
		if tx.PolicyID == policyID {
			out = append(out, tx.View())
		}
	}
	return out
}

// AllTransactions serializes the whole collection in insertion order, for
// topic snapshots.
func (s *Store) AllTransactions() []types.TransactionView {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]types.TransactionView, 0, len(s.transactions))
	for _, tx := range s.transactions {
		out = append(out, tx.View())
	}
	return out
}

// ---------------------------------------------------------------------------
// Analytics
// ---------------------------------------------------------------------------

// Overview aggregates the whole dataset. Monetary totals are summed as
// fixed-point amounts and formatted in major units with two decimals;
// utilization_rate is released/allocated*100 guarded against zero.
type Overview struct {
	TotalPolicies     int    `json:"total_policies"`
	ActivePolicies    int    `json:"active_policies"`
	TotalComplaints   int    `json:"total_complaints"`
	PendingComplaints int    `json:"pending_complaints"`
	TotalProposals    int    `json:"total_proposals"`
	ActiveProposals   int    `json:"active_proposals"`
	TotalTransactions int    `json:"total_transactions"`
	TotalAllocated    string `json:"total_allocated"`
	TotalReleased     string `json:"total_released"`
	UtilizationRate   string `json:"utilization_rate"`
}

func (s *Store) AnalyticsOverview() Overview {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ov := Overview{
		TotalPolicies:     len(s.policies),
		TotalComplaints:   len(s.complaints),
		TotalProposals:    len(s.proposals),
		TotalTransactions: len(s.transactions),
	}

	allocated := types.NewAmount(0)
	released := types.NewAmount(0)
	for _, p := range s.policies {
		if p.Status == types.PolicyActive {
			ov.ActivePolicies++
		}
		allocated = allocated.Add(p.FundAllocation)
		released = released.Add(p.FundReleased)
	}
	for _, c := range s.complaints {
		if c.Status != types.ComplaintResolved {
			ov.PendingComplaints++
		}
	}
	for _, p := range s.proposals {
		if p.Status == types.ProposalActive {
			ov.ActiveProposals++
		}
	}

	ov.TotalAllocated = allocated.Major()
	ov.TotalReleased = released.Major()
	ov.UtilizationRate = released.PercentOf(allocated)
	return ov
}
