package cli

import (
	"github.com/spf13/cobra"

	"github.com/opencurator/contentgate/internal/config"
	"github.com/opencurator/contentgate/internal/engine"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "contentgate",
	Short: "contentgate - validation gate for community content submissions",
	Long: `contentgate validates user-submitted content items (front-matter plus
free-text body) before they enter a shared content library. It checks schema
correctness per content type and scans for security risks: prompt injection,
command execution, data exfiltration, and related adversarial patterns.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultConfigFile, "Path to config YAML file")
}

// newEngine loads config and builds the engine; shared by all subcommands.
func newEngine() (*engine.Engine, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	return engine.New(cfg)
}

func Execute() error {
	return rootCmd.Execute()
}
