package cli

import (
	"context"
	"fmt"

	"github.com/golangid/botkit/internal/console"
	"github.com/golangid/botkit/session"
	"github.com/spf13/cobra"
)

var (
	historyFrom string
	historyAll  bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Load the conversation history into the thread and print it",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		out := cmd.OutOrStdout()

		a, err := newApp(ctx, session.BaseListener{})
		if err != nil {
			return err
		}
		defer a.close(context.Background())

		loaded, err := loadHistory(ctx, a.session, historyFrom, historyAll)
		if err != nil {
			return err
		}

		bubbles, err := a.session.Messages(ctx)
		if err != nil {
			return err
		}
		printer := console.NewPrinter(out, !noColor)
		for _, b := range bubbles {
			printer.OnMessage(b)
		}
		fmt.Fprintf(out, "-- %d new, %d in thread %s --\n", loaded, len(bubbles), a.session.Thread().ID)
		return nil
	},
}

func init() {
	historyCmd.Flags().StringVar(&historyFrom, "from", "", "start after this message id")
	historyCmd.Flags().BoolVar(&historyAll, "all", false, "follow every page while more are available")
	rootCmd.AddCommand(historyCmd)
}

type historyLoader interface {
	LoadHistory(ctx context.Context, fromMessageID string) (session.HistoryResult, error)
}

func loadHistory(ctx context.Context, loader historyLoader, from string, all bool) (loaded int, err error) {
	for {
		result, err := loader.LoadHistory(ctx, from)
		if err != nil {
			return loaded, err
		}
		loaded += result.Loaded
		if !all || !result.MoreAvailable || result.LastMessageID == "" || result.LastMessageID == from {
			return loaded, nil
		}
		from = result.LastMessageID
	}
}
