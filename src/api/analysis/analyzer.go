// Package analysis derives the complaint analysis record from submission text.
// Everything here is a lookup table over the input; there is no inference and
// no state, so results are fully deterministic. The Analyzer interface exists
// so a real classifier could replace KeywordAnalyzer without touching the
// data-service contract.
package analysis

import (
	"strings"

	"github.com/civicledger/govledger/src/api/types"
)

type Analyzer interface {
	Analyze(description string, priority types.ComplaintPriority) types.ComplaintAnalysis
}

// negativeMarkers flip sentiment to "negative" when either appears in the
// description. Anything else is "neutral".
var negativeMarkers = [2]string{"not working", "broken"}

// priorityScores maps the citizen-chosen priority to a numeric score.
var priorityScores = map[types.ComplaintPriority]int{
	types.PriorityLow:      2,
	types.PriorityMedium:   5,
	types.PriorityHigh:     8,
	types.PriorityCritical: 10,
}

// categoryMarkers guess a service category from the description.
var categoryMarkers = []struct {
	marker   string
	category string
}{
	{"road", "Road"},
	{"pothole", "Road"},
	{"water", "Water"},
	{"pipe", "Water"},
	{"drain", "Sanitation"},
	{"garbage", "Sanitation"},
	{"sewage", "Sanitation"},
	{"electric", "Electricity"},
	{"power", "Electricity"},
	{"streetlight", "Electricity"},
}

const (
	defaultCategory = "General"
	confidence      = 0.85
)

// keywords attached to every analysis record. Constant by design of the
// original dataset; only sentiment and category react to the text.
var constantKeywords = []string{"infrastructure", "public-service"}

type KeywordAnalyzer struct{}

func NewKeywordAnalyzer() KeywordAnalyzer { return KeywordAnalyzer{} }

func (KeywordAnalyzer) Analyze(description string, priority types.ComplaintPriority) types.ComplaintAnalysis {
	lower := strings.ToLower(description)

	sentiment := "neutral"
	for _, m := range negativeMarkers {
		if strings.Contains(lower, m) {
			sentiment = "negative"
			break
		}
	}

	category := defaultCategory
	for _, cm := range categoryMarkers {
		if strings.Contains(lower, cm.marker) {
			category = cm.category
			break
		}
	}

	score, ok := priorityScores[priority]
	if !ok {
		score = priorityScores[types.PriorityMedium]
	}

	return types.ComplaintAnalysis{
		Sentiment:       sentiment,
		Category:        category,
		PriorityScore:   score,
		SuggestedAction: suggestedAction(score),
		Confidence:      confidence,
		Keywords:        append([]string(nil), constantKeywords...),
	}
}

func suggestedAction(score int) string {
	switch {
	case score >= 10:
		return "Dispatch emergency response team"
	case score >= 8:
		return "Escalate to district officer within 24 hours"
	case score >= 5:
		return "Schedule field inspection this week"
	default:
		return "Queue for routine review"
	}
}
