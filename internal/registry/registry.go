// Package registry holds the immutable, priority-ordered table of security
// detectors the scanner executes. The registry is built once at process start
// and never mutated; adding patterns means building a fresh registry and
// swapping it atomically at the caller.
package registry

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/opencurator/contentgate/internal/report"
)

// Category groups related detectors and carries a fixed priority weight used
// for registry ordering.
type Category string

const (
	CategoryCommandExecution    Category = "command_execution"
	CategoryCodeExecution       Category = "code_execution"
	CategoryDataExfiltration    Category = "data_exfiltration"
	CategoryPromptInjection     Category = "prompt_injection"
	CategoryCredentialExposure  Category = "credential_exposure"
	CategoryContextManipulation Category = "context_manipulation"
	CategoryObfuscation         Category = "obfuscation"
	CategoryResourceExhaustion  Category = "resource_exhaustion"
)

// categoryWeight reflects real-world attack frequency: within a severity,
// higher-weight categories are evaluated first.
var categoryWeight = map[Category]int{
	CategoryCommandExecution:    90,
	CategoryCodeExecution:       85,
	CategoryDataExfiltration:    80,
	CategoryPromptInjection:     70,
	CategoryCredentialExposure:  60,
	CategoryContextManipulation: 50,
	CategoryObfuscation:         40,
	CategoryResourceExhaustion:  30,
}

// KnownCategory reports whether c is one of the defined categories.
func KnownCategory(c Category) bool {
	_, ok := categoryWeight[c]
	return ok
}

// SecurityPattern is one security detector: a compiled matcher plus the
// metadata attached to every issue it produces. Immutable after registration.
type SecurityPattern struct {
	ID          string
	Category    Category
	Severity    report.Severity
	Matcher     *regexp.Regexp
	Description string
	Suggestion  string

	// branches is the alternation branch count of the matcher source,
	// computed at build time and used as the ordering tiebreaker.
	branches int
}

// Registry is the ordered detector table. No mutation API exists
// post-construction.
type Registry struct {
	patterns []SecurityPattern
}

// New builds a registry from the builtin pattern set plus any extra patterns
// (e.g. loaded from YAML packs). Every pattern is checked against the
// non-catastrophic matcher invariant; a bad pattern fails the whole build so
// it cannot silently weaken the ordering or hang the scanner.
func New(extra ...SecurityPattern) (*Registry, error) {
	patterns := builtinPatterns()
	patterns = append(patterns, extra...)

	seen := make(map[string]bool, len(patterns))
	for i := range patterns {
		p := &patterns[i]
		if p.ID == "" {
			return nil, fmt.Errorf("pattern %d: missing id", i)
		}
		if seen[p.ID] {
			return nil, fmt.Errorf("pattern %q: duplicate id", p.ID)
		}
		seen[p.ID] = true
		if !KnownCategory(p.Category) {
			return nil, fmt.Errorf("pattern %q: unknown category %q", p.ID, p.Category)
		}
		if p.Severity.Rank() == 0 {
			return nil, fmt.Errorf("pattern %q: unknown severity %q", p.ID, p.Severity)
		}
		if p.Matcher == nil {
			return nil, fmt.Errorf("pattern %q: nil matcher", p.ID)
		}
		if err := checkBounded(p.Matcher.String()); err != nil {
			return nil, fmt.Errorf("pattern %q: %w", p.ID, err)
		}
		p.branches = countBranches(p.Matcher.String())
	}

	// Ordering: severity rank desc, category weight desc, fewer alternation
	// branches first (cheap rejection), id as a final deterministic key.
	sort.SliceStable(patterns, func(i, j int) bool {
		a, b := patterns[i], patterns[j]
		if a.Severity.Rank() != b.Severity.Rank() {
			return a.Severity.Rank() > b.Severity.Rank()
		}
		if categoryWeight[a.Category] != categoryWeight[b.Category] {
			return categoryWeight[a.Category] > categoryWeight[b.Category]
		}
		if a.branches != b.branches {
			return a.branches < b.branches
		}
		return a.ID < b.ID
	})

	return &Registry{patterns: patterns}, nil
}

// MustNew is New for the builtin set only; the builtin table is covered by
// tests, so a failure here is a programming error.
func MustNew() *Registry {
	r, err := New()
	if err != nil {
		panic(err)
	}
	return r
}

// Patterns returns the ordered detector table. Callers must treat the
// returned slice as read-only.
func (r *Registry) Patterns() []SecurityPattern {
	return r.patterns
}

// Len returns the number of registered patterns.
func (r *Registry) Len() int { return len(r.patterns) }

// checkBounded rejects matcher sources with a quantifier applied directly to
// a group that itself ends in an unbounded quantifier (e.g. `(a+)+`), the
// shape behind catastrophic backtracking. Go's RE2 engine does not backtrack,
// but the invariant keeps pack-supplied patterns portable and reviewable.
func checkBounded(expr string) error {
	for i := 1; i < len(expr); i++ {
		if expr[i-1] != ')' {
			continue
		}
		if i >= 2 && expr[i-2] == '\\' {
			continue // literal paren, not a group
		}
		if expr[i] != '*' && expr[i] != '+' && expr[i] != '{' {
			continue
		}
		if groupEndsUnbounded(expr, i-1) {
			return fmt.Errorf("nested unbounded quantifier at offset %d", i)
		}
	}
	return nil
}

// groupEndsUnbounded reports whether the group closing at expr[end] has a
// body ending in * or +.
func groupEndsUnbounded(expr string, end int) bool {
	depth := 0
	for i := end; i >= 0; i-- {
		switch expr[i] {
		case ')':
			depth++
		case '(':
			depth--
			if depth == 0 {
				body := expr[i+1 : end]
				return strings.HasSuffix(body, "*") || strings.HasSuffix(body, "+")
			}
		}
	}
	return false
}

// countBranches counts top-level and nested alternation branches as a rough
// matcher-complexity measure for ordering.
func countBranches(expr string) int {
	count := 1
	for i := 0; i < len(expr); i++ {
		if expr[i] == '|' && (i == 0 || expr[i-1] != '\\') {
			count++
		}
	}
	return count
}
