package cli

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"
)

var batchCmd = &cobra.Command{
	Use:   "batch PATH...",
	Short: "Validate many files or whole directories",
	Long: `Validate every listed file, recursing into directories for .md files, and
print one batch report. Per-file failures are isolated: an unreadable file
fails only itself.

  contentgate batch library/`,
	Args: cobra.MinimumNArgs(1),
	RunE: batchCommand,
}

func init() {
	batchCmd.Flags().BoolVar(&validatePretty, "pretty", false, "Render the report for the terminal (default: only on a TTY)")
	rootCmd.AddCommand(batchCmd)
}

func batchCommand(cmd *cobra.Command, args []string) error {
	eng, err := newEngine()
	if err != nil {
		return err
	}
	defer eng.Close()

	paths, err := collectContentPaths(args)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no content files found")
	}

	batch := eng.ValidateAll(paths)
	printReport(batch.Markdown())

	if !batch.Passed() {
		return fmt.Errorf("%d of %d file(s) failed validation", batch.FilesFailed, len(batch.Results))
	}
	return nil
}

// collectContentPaths expands directories into their .md files. Missing or
// unreadable paths are kept as-is so the engine reports them as per-file
// criticals instead of aborting the batch.
func collectContentPaths(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil || !info.IsDir() {
			// Explicitly named files are validated regardless of extension.
			paths = append(paths, arg)
			continue
		}
		err = filepath.WalkDir(arg, func(p string, d fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				paths = append(paths, p)
				return nil
			}
			if !d.IsDir() && strings.EqualFold(filepath.Ext(p), ".md") {
				paths = append(paths, p)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	sort.Strings(paths)
	return paths, nil
}
