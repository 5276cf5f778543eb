package trust

import "time"

// Severity is the presentation weight of a finding. Renderers map it to an
// emoji or color; the core only derives it from the score delta.
type Severity string

const (
	SeverityGood Severity = "good"
	SeverityBad  Severity = "bad"
	SeverityInfo Severity = "info"
)

func severityFor(delta int) Severity {
	switch {
	case delta > 0:
		return SeverityGood
	case delta < 0:
		return SeverityBad
	default:
		return SeverityInfo
	}
}

// Finding is one scored observation about a target. The trust evaluator emits
// exactly one per CheckKind; other checkers in this tool reuse the shape for
// their own signals.
type Finding struct {
	Check    string   `json:"check"`
	Severity Severity `json:"severity"`
	Delta    int      `json:"score_delta"`
	Message  string   `json:"message"`
	Evidence string   `json:"evidence,omitempty"`
}

// TrustReport is the structured result of one domain analysis. Score always
// equals the sum of the finding deltas, and Findings holds one entry per
// check in fixed order.
type TrustReport struct {
	Domain      string    `json:"domain"`
	Score       int       `json:"score"`
	Findings    []Finding `json:"findings"`
	EvaluatedAt time.Time `json:"evaluated_at"`
}
