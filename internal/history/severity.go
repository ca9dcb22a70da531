package history

import "strings"

// Severity buckets a free-text risk label for display. The backend's labels
// are not an enum, so classification is by substring.
type Severity int

const (
	SeverityLow Severity = iota
	SeverityMedium
	SeverityHigh
)

func (s Severity) String() string {
	switch s {
	case SeverityHigh:
		return "high"
	case SeverityMedium:
		return "medium"
	default:
		return "low"
	}
}

// Classify is case-insensitive: "high" anywhere wins, then "medium" or
// "moderate", everything else is low.
func Classify(riskLabel string) Severity {
	label := strings.ToLower(riskLabel)
	switch {
	case strings.Contains(label, "high"):
		return SeverityHigh
	case strings.Contains(label, "medium"), strings.Contains(label, "moderate"):
		return SeverityMedium
	default:
		return SeverityLow
	}
}
