package cmd

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/nfrund/reviewboard/internal/logging"
	"github.com/nfrund/reviewboard/internal/server"
	"github.com/nfrund/reviewboard/internal/tui"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Show the review board in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		// The terminal belongs to the UI, so logs go to a file or nowhere.
		var logOut io.Writer = io.Discard
		if path, _ := cmd.Flags().GetString("log-file"); path != "" {
			f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
			if err != nil {
				return fmt.Errorf("open log file: %w", err)
			}
			defer f.Close()
			logOut = f
		}
		logging.New(logOut, cfg.LogFormat, cfg.LogLevel)

		client, err := server.NewReviewClient(cfg, version)
		if err != nil {
			return err
		}
		return tui.Run(cmd.Context(), client, cfg.Location(), tea.WithAltScreen())
	},
}

func init() {
	tuiCmd.Flags().String("log-file", "", "append logs to this file")
	rootCmd.AddCommand(tuiCmd)
}
