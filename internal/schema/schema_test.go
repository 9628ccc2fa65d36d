package schema

import (
	"strings"
	"testing"

	"github.com/opencurator/contentgate/internal/config"
	"github.com/opencurator/contentgate/internal/report"
)

func baseMeta(typ string) map[string]any {
	return map[string]any{
		"type":        typ,
		"name":        "Example",
		"description": "An example entry",
		"unique_id":   "example-entry_v1",
		"author":      "tester",
		"category":    "productivity",
	}
}

func typesOf(issues []report.ValidationIssue) []string {
	out := make([]string, len(issues))
	for i, issue := range issues {
		out[i] = issue.Type
	}
	return out
}

func TestValidate_MinimalMetadataPerType(t *testing.T) {
	for _, typ := range []string{"persona", "prompt", "tool", "ensemble", "memory"} {
		t.Run(typ, func(t *testing.T) {
			issues := Validate(baseMeta(typ), config.Default().Limits)
			if len(issues) != 0 {
				t.Errorf("unexpected issues: %v", typesOf(issues))
			}
		})
	}

	t.Run("skill with capabilities", func(t *testing.T) {
		meta := baseMeta("skill")
		meta["capabilities"] = []any{"summarize", "translate"}
		if issues := Validate(meta, config.Default().Limits); len(issues) != 0 {
			t.Errorf("unexpected issues: %v", typesOf(issues))
		}
	})

	t.Run("template with format", func(t *testing.T) {
		meta := baseMeta("template")
		meta["format"] = "markdown"
		meta["category"] = "document"
		if issues := Validate(meta, config.Default().Limits); len(issues) != 0 {
			t.Errorf("unexpected issues: %v", typesOf(issues))
		}
	})
}

func TestValidate_TypeTag(t *testing.T) {
	t.Run("missing type stops variant checks", func(t *testing.T) {
		meta := baseMeta("persona")
		delete(meta, "type")
		delete(meta, "name") // would be a second issue if checks continued
		issues := Validate(meta, config.Default().Limits)
		if len(issues) != 1 {
			t.Fatalf("got %d issues (%v), want 1", len(issues), typesOf(issues))
		}
		if issues[0].Type != IssueMissingField {
			t.Errorf("type = %q, want %q", issues[0].Type, IssueMissingField)
		}
		if issues[0].Severity != report.SeverityHigh {
			t.Errorf("severity = %s, want high", issues[0].Severity)
		}
	})

	t.Run("unknown type is invalid not missing", func(t *testing.T) {
		meta := baseMeta("widget")
		issues := Validate(meta, config.Default().Limits)
		if len(issues) != 1 {
			t.Fatalf("got %d issues (%v), want 1", len(issues), typesOf(issues))
		}
		if issues[0].Type != IssueInvalidField {
			t.Errorf("type = %q, want %q", issues[0].Type, IssueInvalidField)
		}
	})

	t.Run("non-string type", func(t *testing.T) {
		meta := baseMeta("persona")
		meta["type"] = 7
		issues := Validate(meta, config.Default().Limits)
		if len(issues) != 1 || issues[0].Type != IssueInvalidField {
			t.Errorf("got %v, want one invalid_field", typesOf(issues))
		}
	})
}

func TestValidate_RequiredFields(t *testing.T) {
	t.Run("missing field", func(t *testing.T) {
		meta := baseMeta("persona")
		delete(meta, "author")
		issues := Validate(meta, config.Default().Limits)
		if len(issues) != 1 || issues[0].Type != IssueMissingField {
			t.Fatalf("got %v, want one missing_field", typesOf(issues))
		}
		if issues[0].Suggestion == "" {
			t.Error("missing_field issue has no suggestion")
		}
	})

	t.Run("empty string is invalid", func(t *testing.T) {
		meta := baseMeta("persona")
		meta["description"] = "   "
		issues := Validate(meta, config.Default().Limits)
		if len(issues) != 1 || issues[0].Type != IssueInvalidField {
			t.Errorf("got %v, want one invalid_field", typesOf(issues))
		}
	})

	t.Run("wrong type is invalid", func(t *testing.T) {
		meta := baseMeta("persona")
		meta["name"] = []any{"not", "a", "string"}
		issues := Validate(meta, config.Default().Limits)
		if len(issues) != 1 || issues[0].Type != IssueInvalidField {
			t.Errorf("got %v, want one invalid_field", typesOf(issues))
		}
	})
}

func TestValidate_Version(t *testing.T) {
	tests := []struct {
		name    string
		version any
		strict  bool
		wantSev report.Severity
		wantLen int
	}{
		{"valid semver", "1.0.0", false, "", 0},
		{"two-part version advisory", "1.0", false, report.SeverityLow, 1},
		{"two-part version strict", "1.0", true, report.SeverityHigh, 1},
		{"non-string version", 1.0, false, report.SeverityLow, 1},
		{"garbage version", "latest", false, report.SeverityLow, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta := baseMeta("prompt")
			meta["version"] = tt.version
			limits := config.Default().Limits
			limits.StrictVersion = tt.strict

			issues := Validate(meta, limits)
			if len(issues) != tt.wantLen {
				t.Fatalf("got %d issues (%v), want %d", len(issues), typesOf(issues), tt.wantLen)
			}
			if tt.wantLen == 1 {
				if issues[0].Type != IssueInvalidVersion {
					t.Errorf("type = %q, want %q", issues[0].Type, IssueInvalidVersion)
				}
				if issues[0].Severity != tt.wantSev {
					t.Errorf("severity = %s, want %s", issues[0].Severity, tt.wantSev)
				}
			}
		})
	}
}

func TestValidate_Capabilities(t *testing.T) {
	t.Run("missing", func(t *testing.T) {
		issues := Validate(baseMeta("skill"), config.Default().Limits)
		if len(issues) != 1 || issues[0].Type != IssueMissingField {
			t.Errorf("got %v, want one missing_field", typesOf(issues))
		}
	})

	t.Run("empty list", func(t *testing.T) {
		meta := baseMeta("agent")
		meta["capabilities"] = []any{}
		issues := Validate(meta, config.Default().Limits)
		if len(issues) != 1 || issues[0].Type != IssueInvalidField {
			t.Errorf("got %v, want one invalid_field", typesOf(issues))
		}
	})

	t.Run("non-string element", func(t *testing.T) {
		meta := baseMeta("skill")
		meta["capabilities"] = []any{"ok", 3}
		issues := Validate(meta, config.Default().Limits)
		if len(issues) != 1 || issues[0].Type != IssueInvalidField {
			t.Errorf("got %v, want one invalid_field", typesOf(issues))
		}
	})
}

func TestValidate_TemplateCategory(t *testing.T) {
	meta := baseMeta("template")
	meta["format"] = "markdown"
	meta["category"] = "poetry"

	issues := Validate(meta, config.Default().Limits)
	if len(issues) != 1 || issues[0].Type != IssueInvalidField {
		t.Fatalf("got %v, want one invalid_field", typesOf(issues))
	}
	if !strings.Contains(issues[0].Details, "poetry") {
		t.Errorf("details do not name the bad category: %s", issues[0].Details)
	}
}

func TestValidate_MetadataTooLong(t *testing.T) {
	meta := baseMeta("persona")
	meta["notes"] = strings.Repeat("x", 5000)

	issues := Validate(meta, config.Default().Limits)
	found := false
	for _, issue := range issues {
		if issue.Type == IssueMetadataTooLong {
			found = true
			if issue.Severity != report.SeverityMedium {
				t.Errorf("severity = %s, want medium", issue.Severity)
			}
		}
	}
	if !found {
		t.Errorf("no metadata_too_long issue in %v", typesOf(issues))
	}
}

func TestValidate_OptionalTagsAndLicense(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		meta := baseMeta("persona")
		meta["tags"] = []any{"cooking", "planning"}
		meta["license"] = "MIT"
		if issues := Validate(meta, config.Default().Limits); len(issues) != 0 {
			t.Errorf("unexpected issues: %v", typesOf(issues))
		}
	})

	t.Run("tags not a list", func(t *testing.T) {
		meta := baseMeta("persona")
		meta["tags"] = "cooking"
		issues := Validate(meta, config.Default().Limits)
		if len(issues) != 1 || issues[0].Type != IssueInvalidField {
			t.Errorf("got %v, want one invalid_field", typesOf(issues))
		}
	})

	t.Run("empty license", func(t *testing.T) {
		meta := baseMeta("persona")
		meta["license"] = ""
		issues := Validate(meta, config.Default().Limits)
		if len(issues) != 1 || issues[0].Type != IssueInvalidField {
			t.Errorf("got %v, want one invalid_field", typesOf(issues))
		}
	})
}
