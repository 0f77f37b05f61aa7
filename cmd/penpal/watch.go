package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"penpal/internal/companion"
	"penpal/internal/host"
	"penpal/internal/llm"
	"penpal/internal/store"
)

var watchCmd = &cobra.Command{
	Use:   "watch <file>",
	Short: "Watch a document and keep the companion's presence on screen",
	Args:  cobra.ExactArgs(1),
	RunE:  runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := companion.Options{
		DisplayName:        cfg.Companion.DisplayName,
		GreetingEnabled:    cfg.Companion.GreetingEnabled,
		CommentProbability: cfg.Companion.CommentProbability,
		DebounceDelay:      cfg.DebounceDelay(),
		DisplayDuration:    cfg.DisplayDuration(),
		NewClient:          geminiFactory(),
		Logger:             logger,
	}

	if cfg.Archive.Enabled {
		archive, err := store.NewArchive(cfg.Archive.DatabasePath)
		if err != nil {
			return fmt.Errorf("failed to open transcript archive: %w", err)
		}
		defer archive.Close()
		opts.Archive = archive
	}

	orch := companion.NewOrchestrator(opts)
	orch.SetCredential(ctx, cfg.LLM.APIKey)
	if !orch.Configured() {
		fmt.Fprintln(os.Stderr,
			"No API key configured; the companion will sit quietly.",
			"Set GEMINI_API_KEY or run `penpal config set api-key <key>`.")
	}

	status := companion.NewStatusView(orch)
	status.OnUpdate(func(s string) {
		fmt.Printf("\r\033[K%s", s)
	})

	fileHost, err := host.NewFileHost(args[0], 200*time.Millisecond, logger)
	if err != nil {
		return fmt.Errorf("failed to watch %s: %w", args[0], err)
	}
	fileHost.OnReady(func(ev host.ChangeEvent) {
		orch.HandleReady(ctx, ev.Text, ev.CursorLine)
	})
	fileHost.OnChange(func(ev host.ChangeEvent) {
		orch.HandleEdit(ctx, ev.Text, ev.CursorLine)
	})

	if err := fileHost.Start(ctx); err != nil {
		return fmt.Errorf("failed to start document watcher: %w", err)
	}
	logger.Info("watching document",
		zap.String("path", args[0]),
		zap.String("companion", cfg.Companion.DisplayName))
	fmt.Printf("%s\n", status.Current())

	<-ctx.Done()
	fmt.Println()
	fileHost.Stop()

	stats := fileHost.Stats()
	logger.Info("watcher stopped",
		zap.Int("events_seen", stats.EventsSeen),
		zap.Int("changes_delivered", stats.ChangesDelivered))
	return nil
}

// geminiFactory adapts the configured model settings into the client
// factory the orchestrator calls whenever the credential changes.
func geminiFactory() companion.ClientFactory {
	return func(ctx context.Context, credential, persona string) (llm.Client, error) {
		return llm.NewGemini(ctx, llm.GeminiConfig{
			APIKey:          credential,
			Model:           cfg.LLM.Model,
			Persona:         persona,
			Temperature:     float32(cfg.LLM.Temperature),
			MaxOutputTokens: int32(cfg.LLM.MaxOutputTokens),
		})
	}
}
