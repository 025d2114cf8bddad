package cmd

import (
	"fmt"
	"os"

	"github.com/nfrund/reviewboard/internal/config"
	"github.com/nfrund/reviewboard/internal/logging"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var (
	envFile string
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "reviewboard",
	Short: "WhatsApp review board",
	Long: `reviewboard shows the product reviews collected by the WhatsApp review backend.

Available commands:
  serve      Serve the review board web UI
  tui        Show the review board in the terminal
  fetch      Fetch the review collection once and print it

Use "reviewboard [command] --help" for more information about a specific command.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(afero.NewOsFs(), envFile)
		if err != nil {
			return err
		}
		cfg = loaded
		logging.New(os.Stderr, cfg.LogFormat, cfg.LogLevel)
		return nil
	},
}

// Execute executes the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", config.DefaultEnvFile, "dotenv file read before the environment")
}
