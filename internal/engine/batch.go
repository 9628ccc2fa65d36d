package engine

import (
	"fmt"
	"strings"
	"sync"

	"github.com/oklog/ulid/v2"

	"github.com/opencurator/contentgate/internal/report"
)

// BatchResult holds per-file results plus the pointwise sum of their
// summaries. Results are indexed by input path order regardless of worker
// completion order.
type BatchResult struct {
	RunID       string          `json:"run_id"`
	Results     []report.Result `json:"results"`
	Summary     report.Summary  `json:"summary"`
	FilesPassed int             `json:"files_passed"`
	FilesFailed int             `json:"files_failed"`
}

// ValidateAll runs the pipeline over every path using a bounded worker pool.
// Each file is isolated: one file's failure becomes that file's critical
// issue and never affects another file's verdict.
func (e *Engine) ValidateAll(paths []string) BatchResult {
	batch := BatchResult{
		RunID:   ulid.Make().String(),
		Results: make([]report.Result, len(paths)),
	}

	sem := make(chan struct{}, e.cfg.BatchConcurrency)
	var wg sync.WaitGroup
	for i, path := range paths {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, path string) {
			defer wg.Done()
			defer func() { <-sem }()
			batch.Results[i] = e.validate(path, batch.RunID)
		}(i, path)
	}
	wg.Wait()

	for _, r := range batch.Results {
		batch.Summary.Add(r.Summary)
		if r.Passed {
			batch.FilesPassed++
		} else {
			batch.FilesFailed++
		}
	}
	return batch
}

// Passed reports whether every file in the batch passed.
func (b BatchResult) Passed() bool { return b.FilesFailed == 0 }

// Markdown renders the batch summary report: overall counts, then one line
// per file, then the full report of each failing file.
func (b BatchResult) Markdown() string {
	var out strings.Builder

	fmt.Fprintf(&out, "# Batch Validation Report\n\nRun `%s`: %d file(s), %d passed, %d failed.\n\n",
		b.RunID, len(b.Results), b.FilesPassed, b.FilesFailed)

	fmt.Fprintf(&out, "| File | Verdict | Critical | High | Medium | Low |\n")
	fmt.Fprintf(&out, "| --- | --- | --- | --- | --- | --- |\n")
	for _, r := range b.Results {
		verdict := "✅ pass"
		if !r.Passed {
			verdict = "❌ fail"
		}
		fmt.Fprintf(&out, "| %s | %s | %d | %d | %d | %d |\n",
			r.Path, verdict, r.Summary.Critical, r.Summary.High, r.Summary.Medium, r.Summary.Low)
	}
	out.WriteString("\n")

	for _, r := range b.Results {
		if r.Passed {
			continue
		}
		out.WriteString("---\n\n")
		out.WriteString(r.Markdown)
		out.WriteString("\n")
	}

	return out.String()
}
