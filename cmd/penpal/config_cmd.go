package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"penpal/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and change penpal settings",
}

var configGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Print the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		key := "(not set)"
		if cfg.LLM.APIKey != "" {
			key = "****" + lastN(cfg.LLM.APIKey, 4)
		}
		fmt.Printf("companion name:      %s\n", cfg.Companion.DisplayName)
		fmt.Printf("greeting enabled:    %v\n", cfg.Companion.GreetingEnabled)
		fmt.Printf("comment probability: %.2f\n", cfg.Companion.CommentProbability)
		fmt.Printf("model:               %s\n", cfg.LLM.Model)
		fmt.Printf("api key:             %s\n", key)
		fmt.Printf("archive:             %v (%s)\n",
			cfg.Archive.Enabled, cfg.Archive.DatabasePath)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change one setting and save the config file",
	Long: `Supported keys:
  api-key      the Gemini API key
  name         the companion's display name
  greeting     true or false
  probability  chance in [0.01, 1.0] of an ambient comment
  model        the Gemini model name`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := strings.ToLower(args[0]), args[1]

		switch key {
		case "api-key":
			cfg.LLM.APIKey = strings.TrimSpace(value)
		case "name":
			if strings.TrimSpace(value) == "" {
				return fmt.Errorf("name must not be empty")
			}
			cfg.Companion.DisplayName = strings.TrimSpace(value)
		case "greeting":
			enabled, err := strconv.ParseBool(value)
			if err != nil {
				return fmt.Errorf("greeting must be true or false: %w", err)
			}
			cfg.Companion.GreetingEnabled = enabled
		case "probability":
			p, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return fmt.Errorf("probability must be a number: %w", err)
			}
			if p < config.MinCommentProbability || p > config.MaxCommentProbability {
				return fmt.Errorf("probability must be in [%.2f, %.2f]",
					config.MinCommentProbability, config.MaxCommentProbability)
			}
			cfg.Companion.CommentProbability = p
		case "model":
			if strings.TrimSpace(value) == "" {
				return fmt.Errorf("model must not be empty")
			}
			cfg.LLM.Model = strings.TrimSpace(value)
		default:
			return fmt.Errorf("unknown setting %q", args[0])
		}

		cfg.Normalize()
		if err := cfg.Save(flagConfigPath); err != nil {
			return err
		}
		fmt.Printf("Saved %s.\n", flagConfigPath)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

func lastN(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}
