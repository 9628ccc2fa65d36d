// Package engine orchestrates the validation pipeline: read, parse, then the
// three independent analysis passes (schema, security scan, quality), then
// aggregation. It also provides the batch coordinator running the pipeline
// over many files.
package engine

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/opencurator/contentgate/internal/config"
	"github.com/opencurator/contentgate/internal/frontmatter"
	"github.com/opencurator/contentgate/internal/quality"
	"github.com/opencurator/contentgate/internal/registry"
	"github.com/opencurator/contentgate/internal/report"
	"github.com/opencurator/contentgate/internal/scanner"
	"github.com/opencurator/contentgate/internal/schema"
)

// Issue type tags for structural failures that short-circuit the pipeline.
const (
	IssueFileUnreadable     = "file_unreadable"
	IssueEmptyContent       = "empty_content"
	IssueContentTooLong     = "content_too_long"
	IssueInvalidFrontMatter = "invalid_frontmatter"
)

// Engine is the validation pipeline. Safe for concurrent use: the registry
// is read-only and the scanner's line cache is internally synchronized.
type Engine struct {
	cfg   *config.Config
	scan  *scanner.Scanner
	audit *AuditLog
}

// New builds the registry (builtins plus configured pattern packs), the
// scanner, and the audit log if one is configured.
func New(cfg *config.Config) (*Engine, error) {
	var extra []registry.SecurityPattern
	for _, dir := range cfg.PatternPacks {
		patterns, err := registry.LoadPacks(dir)
		if err != nil {
			return nil, fmt.Errorf("load pattern packs: %w", err)
		}
		extra = append(extra, patterns...)
	}

	reg, err := registry.New(extra...)
	if err != nil {
		return nil, fmt.Errorf("build pattern registry: %w", err)
	}

	e := &Engine{
		cfg:  cfg,
		scan: scanner.New(reg),
	}

	if cfg.AuditLog != "" {
		audit, err := OpenAuditLog(cfg.AuditLog)
		if err != nil {
			return nil, fmt.Errorf("open audit log: %w", err)
		}
		e.audit = audit
	}

	return e, nil
}

// Close releases the audit log, if any.
func (e *Engine) Close() error {
	if e.audit != nil {
		return e.audit.Close()
	}
	return nil
}

// ValidateContent reads path and runs the full pipeline. An unreadable file
// is a terminal, reported outcome: one critical issue, no retry.
func (e *Engine) ValidateContent(path string) report.Result {
	return e.validate(path, "")
}

func (e *Engine) validate(path, runID string) report.Result {
	data, err := os.ReadFile(path)
	if err != nil {
		return e.finalize(path, runID, []report.ValidationIssue{{
			Severity: report.SeverityCritical,
			Type:     IssueFileUnreadable,
			Details:  fmt.Sprintf("cannot read file: %v", err),
		}})
	}
	return e.finalize(path, runID, e.analyzeText(string(data)))
}

// ValidateText runs the pipeline over in-memory text, attributing the result
// to name. Used by watch mode and tests.
func (e *Engine) ValidateText(name, text string) report.Result {
	return e.finalize(name, "", e.analyzeText(text))
}

// analyzeText applies the structural gates, then the three independent
// analysis passes. Structural criticals short-circuit: there is nothing
// further to validate against unparseable input.
func (e *Engine) analyzeText(text string) []report.ValidationIssue {
	limits := e.cfg.Limits

	if strings.TrimSpace(text) == "" {
		return []report.ValidationIssue{{
			Severity: report.SeverityCritical,
			Type:     IssueEmptyContent,
			Details:  "content is empty",
		}}
	}

	if len(text) > limits.MaxContentBytes {
		return []report.ValidationIssue{{
			Severity:   report.SeverityCritical,
			Type:       IssueContentTooLong,
			Details:    fmt.Sprintf("content is %d bytes (limit %d)", len(text), limits.MaxContentBytes),
			Suggestion: "Split the content or trim embedded data",
		}}
	}

	raw, body, err := frontmatter.Parse(text)
	if err != nil {
		return []report.ValidationIssue{{
			Severity:   report.SeverityCritical,
			Type:       IssueInvalidFrontMatter,
			Details:    fmt.Sprintf("front-matter parse failed: %v", err),
			Suggestion: "Start the file with a `---` delimited YAML header",
		}}
	}

	issues := schema.Validate(raw, limits)
	issues = append(issues, e.scan.Scan(text, scanner.Options{Mode: scanner.ModeFull})...)
	issues = append(issues, quality.Analyze(body, raw, limits)...)
	return issues
}

// Scan exposes the pure security scan for callers that need pattern results
// without the rest of the pipeline.
func (e *Engine) Scan(text string, opts scanner.Options) []report.ValidationIssue {
	return e.scan.Scan(text, opts)
}

// ScanWithMetrics is Scan with per-pattern timing, for performance work.
func (e *Engine) ScanWithMetrics(text string, opts scanner.Options) ([]report.ValidationIssue, scanner.Metrics) {
	return e.scan.ScanWithMetrics(text, opts)
}

func (e *Engine) finalize(path, runID string, issues []report.ValidationIssue) report.Result {
	result := report.Aggregate(path, issues)

	if e.audit != nil {
		types := make([]string, 0, len(result.Issues))
		for _, issue := range result.Issues {
			types = append(types, issue.Type)
		}
		_ = e.audit.Log(AuditEvent{
			Timestamp:  time.Now().UTC().Format(time.RFC3339),
			RunID:      runID,
			Path:       path,
			Passed:     result.Passed,
			Critical:   result.Summary.Critical,
			High:       result.Summary.High,
			Medium:     result.Summary.Medium,
			Low:        result.Summary.Low,
			IssueTypes: types,
		})
	}

	return result
}
