package dashboard

import (
	"strings"

	"trendtruth/domain/analysis"
)

// HealthPill is one source's display entry in the health strip
type HealthPill struct {
	Label string `json:"label"`
	OK    bool   `json:"ok"`
}

// SummarizeHealth converts source statuses into display pills, in the order
// the association enumerates them. A status counts as healthy when it starts
// with "ok" or mentions "fallback"; anything else renders as a warning. This
// is a display heuristic over free-form status strings, not a protocol.
func SummarizeHealth(health analysis.SourceHealth) []HealthPill {
	pills := make([]HealthPill, 0, len(health))
	for _, s := range health {
		label := strings.ReplaceAll(s.Name, "_", " ") + ": " + s.Status
		ok := strings.HasPrefix(s.Status, "ok") || strings.Contains(s.Status, "fallback")
		pills = append(pills, HealthPill{Label: label, OK: ok})
	}
	return pills
}
