package cmd

import (
	"github.com/nfrund/reviewboard/internal/server"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the review board web UI",
	RunE: func(cmd *cobra.Command, args []string) error {
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.ServerAddr = addr
		}

		s, err := server.New(cmd.Context(), cfg, server.WithVersion(version))
		if err != nil {
			return err
		}
		return s.Start(cmd.Context())
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address, overrides SERVER_ADDR")
	rootCmd.AddCommand(serveCmd)
}
