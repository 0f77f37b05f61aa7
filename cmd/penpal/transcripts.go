package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"penpal/internal/companion"
	"penpal/internal/store"
)

var transcriptsCmd = &cobra.Command{
	Use:   "transcripts",
	Short: "List and replay archived conversations",
}

var transcriptsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List archived transcripts, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		archive, err := store.NewArchive(cfg.Archive.DatabasePath)
		if err != nil {
			return err
		}
		defer archive.Close()

		infos, err := archive.ListTranscripts(transcriptsLimit)
		if err != nil {
			return err
		}
		if len(infos) == 0 {
			fmt.Println("No archived transcripts.")
			return nil
		}
		for _, info := range infos {
			fmt.Printf("%s  %s  %d messages\n",
				info.ArchivedAt.Format("2006-01-02 15:04"),
				info.ID, info.MessageCount)
		}
		return nil
	},
}

var transcriptsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print one archived transcript",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		archive, err := store.NewArchive(cfg.Archive.DatabasePath)
		if err != nil {
			return err
		}
		defer archive.Close()

		messages, err := archive.GetTranscript(args[0])
		if err != nil {
			return err
		}
		for _, m := range messages {
			speaker := "you"
			if m.Role == companion.RoleCompanion {
				speaker = cfg.Companion.DisplayName
			}
			fmt.Printf("%s: %s\n", speaker, m.Text)
		}
		return nil
	},
}

var transcriptsLimit int

func init() {
	transcriptsListCmd.Flags().IntVar(&transcriptsLimit, "limit", 20,
		"maximum number of transcripts to list")
	transcriptsCmd.AddCommand(transcriptsListCmd)
	transcriptsCmd.AddCommand(transcriptsShowCmd)
	rootCmd.AddCommand(transcriptsCmd)
}
