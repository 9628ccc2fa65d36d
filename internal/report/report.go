// Package report defines the issue and result types shared by every analysis
// component, plus the aggregator that merges independent issue streams into a
// single pass/fail verdict and a rendered markdown report.
package report

import "sort"

// Severity classifies how strongly an issue affects the verdict.
// Critical and high issues fail validation; medium and low are advisory.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
)

// Rank orders severities for sorting and registry ordering.
// Higher rank = more severe. Unknown severities rank below low.
func (s Severity) Rank() int {
	switch s {
	case SeverityCritical:
		return 4
	case SeverityHigh:
		return 3
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 1
	default:
		return 0
	}
}

// ValidationIssue is a single problem found by any analysis component.
// Issues are immutable once emitted.
type ValidationIssue struct {
	Severity   Severity `json:"severity"`
	Type       string   `json:"type"`
	Details    string   `json:"details"`
	Line       int      `json:"line,omitempty"` // 1-based; 0 means unknown
	Suggestion string   `json:"suggestion,omitempty"`
}

// Summary counts issues per severity. It is always derived from the issue
// set it summarizes, never stored independently.
type Summary struct {
	Critical int `json:"critical"`
	High     int `json:"high"`
	Medium   int `json:"medium"`
	Low      int `json:"low"`
	Total    int `json:"total"`
}

// Add accumulates another summary into this one (pointwise sum).
func (s *Summary) Add(other Summary) {
	s.Critical += other.Critical
	s.High += other.High
	s.Medium += other.Medium
	s.Low += other.Low
	s.Total += other.Total
}

// Summarize counts the severities in issues.
func Summarize(issues []ValidationIssue) Summary {
	var sum Summary
	for _, issue := range issues {
		switch issue.Severity {
		case SeverityCritical:
			sum.Critical++
		case SeverityHigh:
			sum.High++
		case SeverityMedium:
			sum.Medium++
		case SeverityLow:
			sum.Low++
		}
		sum.Total++
	}
	return sum
}

// Result is the verdict for one content file.
// Invariant: Passed == (Summary.Critical == 0 && Summary.High == 0).
type Result struct {
	Path     string            `json:"path"`
	Passed   bool              `json:"passed"`
	Summary  Summary           `json:"summary"`
	Issues   []ValidationIssue `json:"issues"`
	Markdown string            `json:"-"`
}

// Aggregate merges the issues collected for path into a Result: it computes
// the summary, derives the verdict, orders issues by severity (critical
// first) with emission order preserved within a severity, and renders the
// markdown report.
func Aggregate(path string, issues []ValidationIssue) Result {
	sorted := make([]ValidationIssue, len(issues))
	copy(sorted, issues)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Severity.Rank() > sorted[j].Severity.Rank()
	})

	sum := Summarize(sorted)
	result := Result{
		Path:    path,
		Passed:  sum.Critical == 0 && sum.High == 0,
		Summary: sum,
		Issues:  sorted,
	}
	result.Markdown = RenderMarkdown(result)
	return result
}
