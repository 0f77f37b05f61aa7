package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"penpal/internal/companion"
	"penpal/internal/store"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Open an interactive conversation with the companion",
	RunE:  runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := companion.Options{
		DisplayName: cfg.Companion.DisplayName,
		NewClient:   geminiFactory(),
		Logger:      logger,
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

	view := companion.NewChatView(orch)
	view.OnAppend(func(m companion.Message) {
		if m.Role == companion.RoleCompanion {
			fmt.Printf("%s: %s\n", cfg.Companion.DisplayName, m.Text)
		}
	})

	fmt.Printf("Chatting with %s. Ctrl-D or /quit to leave.\n",
		cfg.Companion.DisplayName)

	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for {
		fmt.Print("you: ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "/quit" || line == "/exit" {
			break
		}
		view.Send(ctx, line)

		select {
		case <-ctx.Done():
			fmt.Println()
			return nil
		default:
		}
	}
	fmt.Println()
	return scanner.Err()
}
