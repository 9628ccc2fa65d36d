// Package schema validates parsed front-matter against per-type contracts.
// Metadata is a tagged union: the `type` field selects the variant, and no
// shape is assumed before the tag is read.
package schema

import (
	"fmt"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/opencurator/contentgate/internal/config"
	"github.com/opencurator/contentgate/internal/report"
)

// ContentType is the discriminator tag of the metadata union.
type ContentType string

const (
	TypePersona  ContentType = "persona"
	TypeSkill    ContentType = "skill"
	TypeAgent    ContentType = "agent"
	TypePrompt   ContentType = "prompt"
	TypeTemplate ContentType = "template"
	TypeTool     ContentType = "tool"
	TypeEnsemble ContentType = "ensemble"
	TypeMemory   ContentType = "memory"
)

var knownTypes = map[ContentType]bool{
	TypePersona: true, TypeSkill: true, TypeAgent: true, TypePrompt: true,
	TypeTemplate: true, TypeTool: true, TypeEnsemble: true, TypeMemory: true,
}

// KnownType reports whether t is a recognized content type.
func KnownType(t ContentType) bool { return knownTypes[t] }

// Issue type tags. Missing and invalid are distinct so auto-fix tooling can
// special-case fields that are absent entirely.
const (
	IssueMissingField    = "missing_field"
	IssueInvalidField    = "invalid_field"
	IssueMetadataTooLong = "metadata_too_long"
	IssueInvalidVersion  = "invalid_version_format"
)

// baseRequired are the fields every variant must carry.
var baseRequired = []string{"name", "description", "unique_id", "author", "category"}

// templateCategories is the fixed enum for the template variant's category.
var templateCategories = map[string]bool{
	"document": true, "email": true, "report": true,
	"presentation": true, "code": true, "creative": true,
}

var versionRe = regexp.MustCompile(`^\d{1,4}\.\d{1,4}\.\d{1,4}$`)

// Validate checks raw front-matter against the contract selected by its type
// tag. It returns issues, never errors: an unparseable shape is itself an
// issue.
func Validate(raw map[string]any, limits config.Limits) []report.ValidationIssue {
	var issues []report.ValidationIssue

	// Size guard runs independently of field-level checks.
	if data, err := yaml.Marshal(raw); err == nil && len(data) > limits.MaxMetadataBytes {
		issues = append(issues, report.ValidationIssue{
			Severity:   report.SeverityMedium,
			Type:       IssueMetadataTooLong,
			Details:    fmt.Sprintf("metadata is %d bytes (limit %d)", len(data), limits.MaxMetadataBytes),
			Suggestion: "Trim optional metadata fields",
		})
	}

	tagValue, present := raw["type"]
	if !present {
		return append(issues, missingField("type"))
	}
	tag, ok := tagValue.(string)
	if !ok || !KnownType(ContentType(tag)) {
		// Cannot validate fields for an unknown shape; stop variant checks.
		return append(issues, invalidField("type",
			fmt.Sprintf("type %q is not a recognized content type", tagValue)))
	}

	for _, field := range baseRequired {
		issues = append(issues, checkRequiredString(raw, field)...)
	}
	issues = append(issues, checkOptionalFields(raw, limits)...)
	issues = append(issues, checkVariant(ContentType(tag), raw)...)

	return issues
}

// checkRequiredString emits one issue if field is absent or not a non-empty
// string.
func checkRequiredString(raw map[string]any, field string) []report.ValidationIssue {
	value, present := raw[field]
	if !present {
		return []report.ValidationIssue{missingField(field)}
	}
	s, ok := value.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return []report.ValidationIssue{invalidField(field,
			fmt.Sprintf("field %q must be a non-empty string", field))}
	}
	return nil
}

func checkOptionalFields(raw map[string]any, limits config.Limits) []report.ValidationIssue {
	var issues []report.ValidationIssue

	if value, present := raw["version"]; present {
		s, ok := value.(string)
		if !ok || !versionRe.MatchString(s) {
			severity := report.SeverityLow
			if limits.StrictVersion {
				severity = report.SeverityHigh
			}
			issues = append(issues, report.ValidationIssue{
				Severity:   severity,
				Type:       IssueInvalidVersion,
				Details:    fmt.Sprintf("version %v is not MAJOR.MINOR.PATCH", value),
				Suggestion: suggestionFor("version"),
			})
		}
	}

	if value, present := raw["tags"]; present {
		if _, ok := stringList(value); !ok {
			issues = append(issues, invalidField("tags", "field \"tags\" must be a list of non-empty strings"))
		}
	}

	if value, present := raw["license"]; present {
		if s, ok := value.(string); !ok || strings.TrimSpace(s) == "" {
			issues = append(issues, invalidField("license", "field \"license\" must be a non-empty string"))
		}
	}

	return issues
}

func checkVariant(tag ContentType, raw map[string]any) []report.ValidationIssue {
	var issues []report.ValidationIssue

	switch tag {
	case TypeSkill, TypeAgent:
		value, present := raw["capabilities"]
		if !present {
			issues = append(issues, missingField("capabilities"))
			break
		}
		list, ok := stringList(value)
		if !ok || len(list) == 0 {
			issues = append(issues, invalidField("capabilities",
				fmt.Sprintf("%s requires a non-empty capability list", tag)))
		}

	case TypeTemplate:
		issues = append(issues, checkRequiredString(raw, "format")...)
		if s, ok := raw["category"].(string); ok && s != "" && !templateCategories[s] {
			issues = append(issues, invalidField("category",
				fmt.Sprintf("template category %q is not one of the recognized categories", s)))
		}
	}

	return issues
}

// stringList converts a decoded YAML sequence into a []string, rejecting
// non-string or empty elements.
func stringList(value any) ([]string, bool) {
	items, ok := value.([]any)
	if !ok {
		return nil, false
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok || strings.TrimSpace(s) == "" {
			return nil, false
		}
		out = append(out, s)
	}
	return out, true
}

func missingField(field string) report.ValidationIssue {
	return report.ValidationIssue{
		Severity:   report.SeverityHigh,
		Type:       IssueMissingField,
		Details:    fmt.Sprintf("required field %q is missing", field),
		Suggestion: suggestionFor(field),
	}
}

func invalidField(field, details string) report.ValidationIssue {
	return report.ValidationIssue{
		Severity:   report.SeverityHigh,
		Type:       IssueInvalidField,
		Details:    details,
		Suggestion: suggestionFor(field),
	}
}
