// Package cli commands of the botkit demo client.
package cli

import (
	"fmt"
	"os"

	"github.com/golangid/botkit"
	"github.com/spf13/cobra"
)

const serviceName = "botkit"

var (
	threadID string
	noColor  bool
)

var rootCmd = &cobra.Command{
	Use:   serviceName,
	Short: "Conversational bot client",
	Long: `botkit sign in to the bot platform, open the real time session and
print every bot message as text. Configuration is read from .env and the environment.`,
	Version:       botkit.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute run the command line, called once by main
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().StringVarP(&threadID, "thread", "t", "", "resume this thread id")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored banners")
}
