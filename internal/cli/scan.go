package cli

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/opencurator/contentgate/internal/report"
	"github.com/opencurator/contentgate/internal/scanner"
)

var (
	scanQuick     bool
	scanMetrics   bool
	scanNoLines   bool
	scanMaxIssues int
)

var scanCmd = &cobra.Command{
	Use:   "scan FILE",
	Short: "Run only the security pattern scan over a file",
	Long: `Execute the pattern registry against a file without schema or quality
checks. Useful for low-latency admission checks (--quick) and for pattern
performance work (--metrics).

  contentgate scan --quick submission.md
  contentgate scan --metrics --no-lines corpus.md`,
	Args: cobra.ExactArgs(1),
	RunE: scanCommand,
}

func init() {
	scanCmd.Flags().BoolVar(&scanQuick, "quick", false, "Stop at the first critical/high match")
	scanCmd.Flags().BoolVar(&scanMetrics, "metrics", false, "Record per-pattern match timing")
	scanCmd.Flags().BoolVar(&scanNoLines, "no-lines", false, "Skip line-number resolution")
	scanCmd.Flags().IntVar(&scanMaxIssues, "max-issues", 0, "Cap reported issues, truncated in registry order (0 = unlimited)")
	rootCmd.AddCommand(scanCmd)
}

func scanCommand(cmd *cobra.Command, args []string) error {
	eng, err := newEngine()
	if err != nil {
		return err
	}
	defer eng.Close()

	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}

	opts := scanner.Options{
		Mode:            scanner.ModeFull,
		MaxIssues:       scanMaxIssues,
		SkipLineNumbers: scanNoLines,
	}
	if scanQuick {
		opts.Mode = scanner.ModeQuick
	}

	if scanMetrics {
		issues, metrics := eng.ScanWithMetrics(string(data), opts)
		printIssues(issues)
		fmt.Printf("\n%d pattern(s) evaluated in %s\n", metrics.PatternsEvaluated, metrics.Elapsed)
		ids := make([]string, 0, len(metrics.PatternDurations))
		for id := range metrics.PatternDurations {
			ids = append(ids, id)
		}
		sort.Slice(ids, func(i, j int) bool {
			return metrics.PatternDurations[ids[i]] > metrics.PatternDurations[ids[j]]
		})
		for _, id := range ids {
			fmt.Printf("  %-30s %s\n", id, metrics.PatternDurations[id])
		}
		return nil
	}

	issues := eng.Scan(string(data), opts)
	printIssues(issues)
	for _, issue := range issues {
		if issue.Severity == report.SeverityCritical || issue.Severity == report.SeverityHigh {
			return fmt.Errorf("security scan failed")
		}
	}
	return nil
}

func printIssues(issues []report.ValidationIssue) {
	if len(issues) == 0 {
		fmt.Println("No security issues found.")
		return
	}
	for _, issue := range issues {
		line := ""
		if issue.Line > 0 {
			line = fmt.Sprintf(" (line %d)", issue.Line)
		}
		fmt.Printf("  [%s] %s: %s%s\n", issue.Severity, issue.Type, issue.Details, line)
	}
}
