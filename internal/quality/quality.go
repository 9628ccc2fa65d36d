// Package quality runs heuristic checks on the content body: length,
// placeholder text, URL hygiene, and type-specific advisories. Every check is
// independent and order-insensitive, and none of them blocks the verdict.
package quality

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/opencurator/contentgate/internal/config"
	"github.com/opencurator/contentgate/internal/report"
)

const (
	IssueContentTooShort = "content_too_short"
	IssuePlaceholder     = "placeholder_content"
	IssueUnsafeURL       = "unsafe_url"
	IssueLineTooLong     = "line_too_long"
	IssueMissingTriggers = "missing_triggers"
)

// placeholderTokens are matched literally; loremIpsumRe separately handles
// the one case-insensitive token.
var placeholderTokens = []string{"TODO", "FIXME", "XXX", "[INSERT", "[ADD"}

var loremIpsumRe = regexp.MustCompile(`(?i)lorem ipsum`)

var urlRe = regexp.MustCompile(`https?://[^\s)\]>"'` + "`" + `]{1,300}`)

// safeURLRe is a conservative well-formedness pattern: scheme, hostname with
// at least one dot, optional port and path. URLs failing it are flagged, not
// rejected.
var safeURLRe = regexp.MustCompile(`^https?://[A-Za-z0-9][A-Za-z0-9-]{0,62}(\.[A-Za-z0-9][A-Za-z0-9-]{0,62}){1,10}(:\d{1,5})?(/[A-Za-z0-9._~%!$&'()*+,;=:@/?#-]{0,500})?$`)

// Analyze runs all quality checks over body. The metadata map supplies the
// content type for variant-specific advisories.
func Analyze(body string, meta map[string]any, limits config.Limits) []report.ValidationIssue {
	var issues []report.ValidationIssue

	if len(strings.TrimSpace(body)) < limits.MinBodyLength {
		issues = append(issues, report.ValidationIssue{
			Severity:   report.SeverityMedium,
			Type:       IssueContentTooShort,
			Details:    fmt.Sprintf("body is %d characters (minimum %d)", len(strings.TrimSpace(body)), limits.MinBodyLength),
			Suggestion: "Flesh out the content before submission",
		})
	}

	issues = append(issues, placeholderIssues(body)...)
	issues = append(issues, urlIssues(body)...)
	issues = append(issues, lineLengthIssues(body, limits.MaxLineLength)...)
	issues = append(issues, variantIssues(meta)...)

	return issues
}

// placeholderIssues reports the first occurrence of each placeholder token,
// not every occurrence.
func placeholderIssues(body string) []report.ValidationIssue {
	var issues []report.ValidationIssue

	for _, token := range placeholderTokens {
		idx := strings.Index(body, token)
		if idx < 0 {
			continue
		}
		issues = append(issues, placeholderIssue(token, lineAt(body, idx)))
	}

	if loc := loremIpsumRe.FindStringIndex(body); loc != nil {
		issues = append(issues, placeholderIssue(body[loc[0]:loc[1]], lineAt(body, loc[0])))
	}

	return issues
}

func placeholderIssue(token string, line int) report.ValidationIssue {
	return report.ValidationIssue{
		Severity:   report.SeverityMedium,
		Type:       IssuePlaceholder,
		Details:    fmt.Sprintf("placeholder text %q found", token),
		Line:       line,
		Suggestion: "Replace placeholder text with final content",
	}
}

func urlIssues(body string) []report.ValidationIssue {
	var issues []report.ValidationIssue
	for _, loc := range urlRe.FindAllStringIndex(body, -1) {
		url := strings.TrimRight(body[loc[0]:loc[1]], ".,;")
		if safeURLRe.MatchString(url) {
			continue
		}
		issues = append(issues, report.ValidationIssue{
			Severity:   report.SeverityLow,
			Type:       IssueUnsafeURL,
			Details:    fmt.Sprintf("URL %q is not well-formed", url),
			Line:       lineAt(body, loc[0]),
			Suggestion: "Use a plain https URL with a resolvable hostname",
		})
	}
	return issues
}

// lineLengthIssues flags the first line exceeding the limit; one oversized
// line is enough to signal the problem.
func lineLengthIssues(body string, maxLen int) []report.ValidationIssue {
	for i, line := range strings.Split(body, "\n") {
		if len(line) > maxLen {
			return []report.ValidationIssue{{
				Severity:   report.SeverityLow,
				Type:       IssueLineTooLong,
				Details:    fmt.Sprintf("line is %d characters (limit %d)", len(line), maxLen),
				Line:       i + 1,
				Suggestion: "Wrap long lines",
			}}
		}
	}
	return nil
}

// variantIssues emits type-specific advisories. A persona without triggers
// still validates; the advisory just tells the author activation will be
// manual-only.
func variantIssues(meta map[string]any) []report.ValidationIssue {
	if typ, _ := meta["type"].(string); typ != "persona" {
		return nil
	}

	triggers, present := meta["triggers"]
	empty := !present
	if list, ok := triggers.([]any); present && ok && len(list) == 0 {
		empty = true
	}
	if !empty {
		return nil
	}

	return []report.ValidationIssue{{
		Severity:   report.SeverityLow,
		Type:       IssueMissingTriggers,
		Details:    "persona has no trigger list; it can only be activated by name",
		Suggestion: "Add a `triggers` list of activation phrases",
	}}
}

func lineAt(text string, offset int) int {
	return strings.Count(text[:offset], "\n") + 1
}
