// Penpal is a writing companion that lives alongside a text document:
// it watches your drafting, occasionally comments on a finished
// paragraph, and is always available for a direct chat.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"penpal/internal/config"
	"penpal/internal/logging"
)

var (
	flagConfigPath string
	flagVerbose    bool

	logger *zap.Logger
	cfg    *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "penpal",
	Short: "An ambient writing companion backed by a generative model",
	Long: `Penpal watches a document you are writing and keeps you company:
a configurable persona greets you, occasionally comments when you finish
a paragraph, and answers directly when you open a chat.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(flagConfigPath)
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		level := cfg.Logging.Level
		if flagVerbose {
			level = "debug"
		}
		logger, err = logging.New(level)
		if err != nil {
			return fmt.Errorf("failed to build logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func main() {
	rootCmd.PersistentFlags().StringVar(&flagConfigPath, "config",
		config.DefaultConfigPath(), "path to the config file")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false,
		"enable debug logging")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
