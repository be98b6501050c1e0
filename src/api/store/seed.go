package store

import (
	"log"
	"time"

	"github.com/civicledger/govledger/src/api/types"
)

// Seed loads the demo dataset through the normal store operations so every
// invariant (fund ceiling, analysis-at-creation, voting windows) holds for
// seeded entities exactly as for API-created ones.
func Seed(s *Store) {
	contractor := "Bharat Infra Ltd"

	roads := s.CreatePolicy(PolicyInput{
		Title:            "Rural Road Rehabilitation",
		Description:      "Resurfacing and drainage works for 120 km of rural roads.",
		Category:         "Infrastructure",
		FundAllocation:   types.NewAmount(50_000_000_00),
		BeneficiaryCount: 18000,
		District:         "Nagpur",
		Contractor:       &contractor,
		EligibilityCriteria: []string{
			"Village population under 10,000",
			"No resurfacing in the last 5 years",
		},
		ExecutionConditions: []string{
			"Quarterly progress audit",
			"Release in tranches of at most 20%",
		},
		CodeSnippet: "contract RoadFund { function release(uint256 amount) external; }",
	})
	if _, err := s.ActivatePolicy(roads.ID); err != nil {
		log.Printf("seed: activate policy: %v", err)
	}
	if _, _, err := s.ReleaseFunds(roads.ID, types.NewAmount(8_000_000_00), "0xNAGPUR-PWD"); err != nil {
		log.Printf("seed: release funds: %v", err)
	}

	s.CreatePolicy(PolicyInput{
		Title:            "Clean Water Access Program",
		Description:      "Borewell installation and pipeline extension for peri-urban wards.",
		Category:         "Water",
		FundAllocation:   types.NewAmount(20_000_000_00),
		BeneficiaryCount: 42000,
		District:         "Pune",
		EligibilityCriteria: []string{
			"Ward without piped supply",
		},
		ExecutionConditions: []string{
			"Water quality certification before final tranche",
		},
	})

	s.CreatePolicy(PolicyInput{
		Title:            "Digital Literacy Drive",
		Description:      "Training centers and device grants for secondary schools.",
		Category:         "Education",
		FundAllocation:   types.NewAmount(7_500_000_00),
		BeneficiaryCount: 9500,
		District:         "Nashik",
	})

	s.CreateComplaint(ComplaintInput{
		Title:       "Streetlights out on MG Road",
		Description: "The streetlights along MG Road are not working for two weeks now.",
		Category:    "Electricity",
		Priority:    types.PriorityHigh,
		PolicyID:    &roads.ID,
		District:    "Nagpur",
		Location:    "MG Road, Ward 7",
		Media:       []string{"https://media.civicledger.example/complaints/mg-road-1.jpg"},
		CitizenID:   "CIT-104233",
	})

	s.CreateComplaint(ComplaintInput{
		Title:       "Irregular water supply",
		Description: "Water supply arrives only on alternate days despite the new pipeline.",
		Category:    "Water",
		Priority:    types.PriorityMedium,
		District:    "Pune",
		Location:    "Sector 12",
		CitizenID:   "CIT-087541",
	})

	budget := s.CreateProposal(ProposalInput{
		Title:        "Reallocate unspent road funds to flood relief",
		Description:  "Move up to 10% of the unspent road rehabilitation budget to monsoon flood relief.",
		Category:     "Budget",
		Proposer:     "councillor-14",
		VotingPeriod: 72 * time.Hour,
		Quorum:       100,
	})
	for _, v := range []struct {
		vote  types.VoteType
		power int64
	}{
		{types.VoteYes, 40},
		{types.VoteNo, 12},
		{types.VoteAbstain, 3},
	} {
		if _, err := s.Vote(budget.ID, v.vote, v.power); err != nil {
			log.Printf("seed: vote: %v", err)
		}
	}

	s.CreateProposal(ProposalInput{
		Title:        "Publish contractor performance scores",
		Description:  "Require quarterly publication of contractor delivery metrics.",
		Category:     "Transparency",
		Proposer:     "councillor-03",
		VotingPeriod: 120 * time.Hour,
		Quorum:       150,
	})
}
