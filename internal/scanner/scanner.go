// Package scanner executes the pattern registry against content text and
// converts matches into validation issues. It holds no per-call state; the
// only shared structure is a bounded line-index cache, so one Scanner is safe
// for concurrent use across files.
package scanner

import (
	"fmt"
	"time"

	"github.com/opencurator/contentgate/internal/redact"
	"github.com/opencurator/contentgate/internal/registry"
	"github.com/opencurator/contentgate/internal/report"
)

// Mode selects the scan strategy.
type Mode string

const (
	// ModeFull evaluates every pattern in registry order.
	ModeFull Mode = "full"
	// ModeQuick stops at the first critical/high match and never resolves
	// line numbers. Intended for low-latency admission checks.
	ModeQuick Mode = "quick"
	// ModeMetrics is full mode plus per-pattern timing.
	ModeMetrics Mode = "metrics"
)

// Options controls a single scan. The scanner never mutates it.
type Options struct {
	Mode Mode

	// MaxIssues caps the number of issues returned (0 = unlimited). The cap
	// truncates in registry order, not by position in text; this is the
	// documented behavior, not an iteration accident.
	MaxIssues int

	// SkipLineNumbers disables line resolution for matched patterns.
	SkipLineNumbers bool
}

// Metrics is populated in metrics mode for offline performance regression
// testing.
type Metrics struct {
	PatternsEvaluated int
	PatternDurations  map[string]time.Duration
	Elapsed           time.Duration
}

const excerptLimit = 80

// Scanner runs registry patterns over text buffers.
type Scanner struct {
	reg   *registry.Registry
	lines *lineCache
}

// New creates a scanner over the given registry.
func New(reg *registry.Registry) *Scanner {
	return &Scanner{
		reg:   reg,
		lines: newLineCache(lineCacheCapacity),
	}
}

// Scan evaluates the registry against text. It never fails: malformed or
// binary input is not the scanner's concern, and the result is simply the
// (possibly empty) issue list. Identical inputs produce identical ordered
// output.
func (s *Scanner) Scan(text string, opts Options) []report.ValidationIssue {
	issues, _ := s.scan(text, opts, nil)
	return issues
}

// ScanWithMetrics is Scan in metrics mode, returning per-pattern timings.
func (s *Scanner) ScanWithMetrics(text string, opts Options) ([]report.ValidationIssue, Metrics) {
	opts.Mode = ModeMetrics
	m := Metrics{PatternDurations: make(map[string]time.Duration)}
	start := time.Now()
	issues, evaluated := s.scan(text, opts, m.PatternDurations)
	m.PatternsEvaluated = evaluated
	m.Elapsed = time.Since(start)
	return issues, m
}

func (s *Scanner) scan(text string, opts Options, timings map[string]time.Duration) ([]report.ValidationIssue, int) {
	var issues []report.ValidationIssue
	evaluated := 0

	capped := func() bool {
		return opts.MaxIssues > 0 && len(issues) >= opts.MaxIssues
	}

	for _, p := range s.reg.Patterns() {
		if capped() {
			break
		}
		if opts.Mode == ModeQuick && p.Severity != report.SeverityCritical && p.Severity != report.SeverityHigh {
			// Registry order puts critical/high first, so nothing relevant
			// to quick mode remains.
			break
		}

		start := time.Now()
		match := p.Matcher.FindString(text)
		evaluated++
		if timings != nil {
			timings[p.ID] += time.Since(start)
		}
		if match == "" {
			continue
		}

		issue := report.ValidationIssue{
			Severity:   p.Severity,
			Type:       p.ID,
			Details:    fmt.Sprintf("%s: %q", p.Description, redact.Redact(truncate(match, excerptLimit))),
			Suggestion: p.Suggestion,
		}
		if opts.Mode != ModeQuick && !opts.SkipLineNumbers {
			issue.Line = s.locateLine(text, p)
		}
		issues = append(issues, issue)

		if opts.Mode == ModeQuick {
			return issues, evaluated
		}
	}

	if opts.Mode != ModeQuick && !capped() {
		for _, issue := range unicodeIssues(text, opts.SkipLineNumbers) {
			if capped() {
				break
			}
			issues = append(issues, issue)
		}
	}

	return issues, evaluated
}

// locateLine finds a matching line for the pattern, searching outward from
// the document's midpoint (violations cluster mid-document in practice) and
// falling back to a linear scan. Returns 0 when no single line matches,
// e.g. a match spanning a line break.
func (s *Scanner) locateLine(text string, p registry.SecurityPattern) int {
	lines := s.lines.get(text)
	n := len(lines)
	if n == 0 {
		return 0
	}

	mid := n / 2
	for d := 0; d <= n; d++ {
		if up := mid - d; up >= 0 && up < n && p.Matcher.MatchString(lines[up]) {
			return up + 1
		}
		if down := mid + d; d > 0 && down < n && p.Matcher.MatchString(lines[down]) {
			return down + 1
		}
	}

	for i, line := range lines {
		if p.Matcher.MatchString(line) {
			return i + 1
		}
	}
	return 0
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit] + "…"
}
