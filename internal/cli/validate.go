package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var validatePretty bool

var validateCmd = &cobra.Command{
	Use:   "validate FILE...",
	Short: "Validate one or more content files",
	Long: `Run the full validation pipeline over each file and print the markdown
report. Exits nonzero if any file fails.

  contentgate validate library/personas/helper.md`,
	Args: cobra.MinimumNArgs(1),
	RunE: validateCommand,
}

func init() {
	validateCmd.Flags().BoolVar(&validatePretty, "pretty", false, "Render the report for the terminal (default: only on a TTY)")
	rootCmd.AddCommand(validateCmd)
}

func validateCommand(cmd *cobra.Command, args []string) error {
	eng, err := newEngine()
	if err != nil {
		return err
	}
	defer eng.Close()

	failed := 0
	for _, path := range args {
		result := eng.ValidateContent(path)
		printReport(result.Markdown)
		if !result.Passed {
			failed++
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d file(s) failed validation", failed, len(args))
	}
	return nil
}

// printReport writes the markdown report, rendering it with glamour when
// requested or when stdout is a terminal.
func printReport(markdown string) {
	if validatePretty || term.IsTerminal(int(os.Stdout.Fd())) {
		if rendered, err := glamour.Render(markdown, "auto"); err == nil {
			fmt.Print(rendered)
			return
		}
	}
	fmt.Println(markdown)
}
