package registry

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/opencurator/contentgate/internal/report"
)

// Pack is a YAML file carrying extra security patterns to merge into the
// registry at build time. Pack patterns go through the same validation as
// builtins, so a pack cannot smuggle in an unbounded matcher.
type Pack struct {
	Name        string        `yaml:"name"`
	Description string        `yaml:"description"`
	PackVersion string        `yaml:"version"`
	Author      string        `yaml:"author"`
	Patterns    []PackPattern `yaml:"patterns"`
}

// PackPattern is one pattern definition inside a pack.
type PackPattern struct {
	ID          string `yaml:"id"`
	Category    string `yaml:"category"`
	Severity    string `yaml:"severity"`
	Regex       string `yaml:"regex"`
	Description string `yaml:"description"`
	Suggestion  string `yaml:"suggestion,omitempty"`
}

// LoadPack reads one pack file and compiles its patterns. Any invalid entry
// fails the whole pack; a half-loaded pack would silently change scan
// coverage.
func LoadPack(path string) ([]SecurityPattern, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var pack Pack
	if err := yaml.Unmarshal(data, &pack); err != nil {
		return nil, fmt.Errorf("parse pack %s: %w", path, err)
	}

	patterns := make([]SecurityPattern, 0, len(pack.Patterns))
	for i, pp := range pack.Patterns {
		if pp.ID == "" {
			return nil, fmt.Errorf("pack %s: pattern %d: missing id", path, i)
		}
		if !KnownCategory(Category(pp.Category)) {
			return nil, fmt.Errorf("pack %s: pattern %q: unknown category %q", path, pp.ID, pp.Category)
		}
		sev := report.Severity(pp.Severity)
		if sev.Rank() == 0 {
			return nil, fmt.Errorf("pack %s: pattern %q: unknown severity %q", path, pp.ID, pp.Severity)
		}
		re, err := regexp.Compile(pp.Regex)
		if err != nil {
			return nil, fmt.Errorf("pack %s: pattern %q: %w", path, pp.ID, err)
		}
		patterns = append(patterns, SecurityPattern{
			ID:          pp.ID,
			Category:    Category(pp.Category),
			Severity:    sev,
			Matcher:     re,
			Description: pp.Description,
			Suggestion:  pp.Suggestion,
		})
	}
	return patterns, nil
}

// LoadPacks loads every .yaml/.yml file under dir. Files prefixed with an
// underscore are treated as disabled and skipped. A missing directory is not
// an error.
func LoadPacks(dir string) ([]SecurityPattern, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var all []SecurityPattern
	for _, entry := range entries {
		if entry.IsDir() || !isYAMLFile(entry.Name()) {
			continue
		}
		if strings.HasPrefix(entry.Name(), "_") {
			continue
		}
		patterns, err := LoadPack(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		all = append(all, patterns...)
	}
	return all, nil
}

func isYAMLFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".yaml" || ext == ".yml"
}
