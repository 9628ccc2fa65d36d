package quality

import (
	"strings"
	"testing"

	"github.com/opencurator/contentgate/internal/config"
	"github.com/opencurator/contentgate/internal/report"
)

// longBody is comfortably over the default minimum length and triggers no
// other check.
var longBody = strings.Repeat("This persona helps users plan balanced weekly meals.\n", 5)

func personaMeta() map[string]any {
	return map[string]any{
		"type":     "persona",
		"triggers": []any{"meal plan"},
	}
}

func countType(issues []report.ValidationIssue, typ string) int {
	n := 0
	for _, issue := range issues {
		if issue.Type == typ {
			n++
		}
	}
	return n
}

func TestAnalyze_CleanBody(t *testing.T) {
	issues := Analyze(longBody, personaMeta(), config.Default().Limits)
	if len(issues) != 0 {
		t.Errorf("unexpected issues: %+v", issues)
	}
}

func TestAnalyze_ShortBody(t *testing.T) {
	issues := Analyze("too short   ", personaMeta(), config.Default().Limits)
	if countType(issues, IssueContentTooShort) != 1 {
		t.Fatalf("got %+v, want one content_too_short", issues)
	}
	for _, issue := range issues {
		if issue.Type == IssueContentTooShort && issue.Severity != report.SeverityMedium {
			t.Errorf("severity = %s, want medium", issue.Severity)
		}
	}
}

func TestAnalyze_PlaceholderFirstOccurrenceOnly(t *testing.T) {
	body := longBody + "TODO first\nmore text\nTODO second\nFIXME once\n"
	issues := Analyze(body, personaMeta(), config.Default().Limits)

	if got := countType(issues, IssuePlaceholder); got != 2 {
		t.Fatalf("got %d placeholder issues, want 2 (one per token)", got)
	}
	for _, issue := range issues {
		if issue.Type == IssuePlaceholder && strings.Contains(issue.Details, "TODO") {
			if issue.Line != 6 {
				t.Errorf("TODO reported at line %d, want 6 (first occurrence)", issue.Line)
			}
		}
	}
}

func TestAnalyze_LoremIpsumCaseInsensitive(t *testing.T) {
	body := longBody + "Lorem Ipsum dolor sit amet.\n"
	issues := Analyze(body, personaMeta(), config.Default().Limits)
	if countType(issues, IssuePlaceholder) != 1 {
		t.Errorf("got %+v, want one placeholder issue", issues)
	}
}

func TestAnalyze_URLs(t *testing.T) {
	tests := []struct {
		name      string
		url       string
		wantIssue bool
	}{
		{"well formed", "https://example.com/docs/guide", false},
		{"with port", "https://example.com:8443/x", false},
		{"trailing period stripped", "https://example.com/page.", false},
		{"no dot in host", "http://localhost/admin", true},
		{"userinfo trick", "https://example.com@evil.test/x", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := longBody + "See " + tt.url + " for details.\n"
			issues := Analyze(body, personaMeta(), config.Default().Limits)
			got := countType(issues, IssueUnsafeURL)
			want := 0
			if tt.wantIssue {
				want = 1
			}
			if got != want {
				t.Errorf("got %d unsafe_url issues, want %d: %+v", got, want, issues)
			}
		})
	}
}

func TestAnalyze_LineTooLong(t *testing.T) {
	limits := config.Default().Limits
	body := longBody + strings.Repeat("a", limits.MaxLineLength+1) + "\n" +
		strings.Repeat("b", limits.MaxLineLength+1) + "\n"

	issues := Analyze(body, personaMeta(), limits)
	if countType(issues, IssueLineTooLong) != 1 {
		t.Fatalf("got %+v, want exactly one line_too_long", issues)
	}
	for _, issue := range issues {
		if issue.Type == IssueLineTooLong && issue.Line != 6 {
			t.Errorf("line = %d, want 6 (first oversized line)", issue.Line)
		}
	}
}

func TestAnalyze_PersonaTriggers(t *testing.T) {
	t.Run("missing triggers is advisory", func(t *testing.T) {
		meta := map[string]any{"type": "persona"}
		issues := Analyze(longBody, meta, config.Default().Limits)
		if countType(issues, IssueMissingTriggers) != 1 {
			t.Fatalf("got %+v, want one missing_triggers", issues)
		}
		for _, issue := range issues {
			if issue.Type == IssueMissingTriggers && issue.Severity != report.SeverityLow {
				t.Errorf("severity = %s, want low", issue.Severity)
			}
		}
	})

	t.Run("empty trigger list is advisory", func(t *testing.T) {
		meta := map[string]any{"type": "persona", "triggers": []any{}}
		issues := Analyze(longBody, meta, config.Default().Limits)
		if countType(issues, IssueMissingTriggers) != 1 {
			t.Errorf("got %+v, want one missing_triggers", issues)
		}
	})

	t.Run("non-persona types are exempt", func(t *testing.T) {
		meta := map[string]any{"type": "prompt"}
		issues := Analyze(longBody, meta, config.Default().Limits)
		if countType(issues, IssueMissingTriggers) != 0 {
			t.Errorf("unexpected advisory for prompt: %+v", issues)
		}
	})
}
