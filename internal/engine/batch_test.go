package engine_test

import (
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opencurator/contentgate/internal/config"
	"github.com/opencurator/contentgate/internal/engine"
)

func TestValidateAll_IsolatesFailures(t *testing.T) {
	e := newTestEngine(t, nil)
	dir := t.TempDir()

	good := writeDoc(t, dir, "good.md", goodDoc)
	missing := filepath.Join(dir, "missing.md")
	bad := writeDoc(t, dir, "bad.md", "no front matter\n")

	batch := e.ValidateAll([]string{good, missing, bad})

	require.Len(t, batch.Results, 3)
	assert.True(t, batch.Results[0].Passed)
	assert.False(t, batch.Results[1].Passed)
	assert.Equal(t, engine.IssueFileUnreadable, batch.Results[1].Issues[0].Type)
	assert.False(t, batch.Results[2].Passed)
	assert.Equal(t, engine.IssueInvalidFrontMatter, batch.Results[2].Issues[0].Type)

	assert.Equal(t, 1, batch.FilesPassed)
	assert.Equal(t, 2, batch.FilesFailed)
	assert.False(t, batch.Passed())
}

func TestValidateAll_ResultsFollowInputOrder(t *testing.T) {
	cfg := config.Default()
	cfg.BatchConcurrency = 3
	e := newTestEngine(t, cfg)
	dir := t.TempDir()

	var paths []string
	for i := 0; i < 20; i++ {
		paths = append(paths, writeDoc(t, dir, fmt.Sprintf("doc-%02d.md", i), goodDoc))
	}

	batch := e.ValidateAll(paths)
	require.Len(t, batch.Results, len(paths))
	for i, r := range batch.Results {
		assert.Equal(t, paths[i], r.Path)
	}
	assert.Equal(t, len(paths), batch.FilesPassed)
	assert.True(t, batch.Passed())
}

func TestValidateAll_SummaryIsPointwiseSum(t *testing.T) {
	e := newTestEngine(t, nil)
	dir := t.TempDir()

	paths := []string{
		writeDoc(t, dir, "a.md", goodDoc),
		writeDoc(t, dir, "b.md", "plain text, no header\n"),
		writeDoc(t, dir, "c.md", "also plain text\n"),
	}

	batch := e.ValidateAll(paths)

	var critical, high, medium, low, total int
	for _, r := range batch.Results {
		critical += r.Summary.Critical
		high += r.Summary.High
		medium += r.Summary.Medium
		low += r.Summary.Low
		total += r.Summary.Total
	}
	assert.Equal(t, critical, batch.Summary.Critical)
	assert.Equal(t, high, batch.Summary.High)
	assert.Equal(t, medium, batch.Summary.Medium)
	assert.Equal(t, low, batch.Summary.Low)
	assert.Equal(t, total, batch.Summary.Total)
}

func TestValidateAll_RunID(t *testing.T) {
	e := newTestEngine(t, nil)
	dir := t.TempDir()
	path := writeDoc(t, dir, "a.md", goodDoc)

	first := e.ValidateAll([]string{path})
	second := e.ValidateAll([]string{path})

	assert.Len(t, first.RunID, 26)
	assert.NotEqual(t, first.RunID, second.RunID)
}

func TestBatchResult_Markdown(t *testing.T) {
	e := newTestEngine(t, nil)
	dir := t.TempDir()

	batch := e.ValidateAll([]string{
		writeDoc(t, dir, "good.md", goodDoc),
		writeDoc(t, dir, "bad.md", "no header\n"),
	})

	md := batch.Markdown()
	assert.Contains(t, md, "# Batch Validation Report")
	assert.Contains(t, md, batch.RunID)
	assert.Contains(t, md, "1 passed, 1 failed")
	assert.Contains(t, md, "✅ pass")
	assert.Contains(t, md, "❌ fail")

	// Only failing files get their full report inlined.
	assert.Equal(t, 1, strings.Count(md, "# Validation Report:"))
}

func TestValidateAll_EmptyBatch(t *testing.T) {
	e := newTestEngine(t, nil)
	batch := e.ValidateAll(nil)
	assert.Empty(t, batch.Results)
	assert.True(t, batch.Passed())
	assert.NotEmpty(t, batch.RunID)
}
