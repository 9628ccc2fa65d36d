package report

import (
	"fmt"
	"strings"
)

// RenderMarkdown produces the human-readable report for a result. Rendering
// is pure: it reads the result and returns a string, and it handles an empty
// issue list without special-casing by the caller.
func RenderMarkdown(r Result) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Validation Report: %s\n\n", r.Path)
	if r.Passed {
		b.WriteString("**Verdict: PASSED** ✅\n\n")
	} else {
		b.WriteString("**Verdict: FAILED** ❌\n\n")
	}

	b.WriteString("| Severity | Count |\n")
	b.WriteString("| --- | --- |\n")
	fmt.Fprintf(&b, "| Critical | %d |\n", r.Summary.Critical)
	fmt.Fprintf(&b, "| High | %d |\n", r.Summary.High)
	fmt.Fprintf(&b, "| Medium | %d |\n", r.Summary.Medium)
	fmt.Fprintf(&b, "| Low | %d |\n", r.Summary.Low)
	fmt.Fprintf(&b, "| **Total** | **%d** |\n\n", r.Summary.Total)

	if len(r.Issues) == 0 {
		b.WriteString("No issues found.\n")
		return b.String()
	}

	b.WriteString("## Issues\n\n")
	for _, issue := range r.Issues {
		fmt.Fprintf(&b, "- **[%s]** `%s`: %s", strings.ToUpper(string(issue.Severity)), issue.Type, issue.Details)
		if issue.Line > 0 {
			fmt.Fprintf(&b, " (line %d)", issue.Line)
		}
		b.WriteString("\n")
		if issue.Suggestion != "" {
			fmt.Fprintf(&b, "  - Suggestion: %s\n", issue.Suggestion)
		}
	}

	return b.String()
}
