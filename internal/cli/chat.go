package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/golangid/botkit/internal/console"
	"github.com/golangid/botkit/logger"
	"github.com/golangid/botkit/render"
	"github.com/golangid/botkit/session"
	"github.com/spf13/cobra"
	"go.uber.org/zap/zapcore"
)

var speech bool

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive conversation",
	Long: `Type a message and press enter to send it. Lines starting with a slash are commands:
  /<n>          pick the numbered choice of the last bot message
  /more         show every element of the last truncated list
  /speech on    print the spoken text of bot messages (off to disable)
  /quit         leave the conversation`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		printer := console.NewPrinter(cmd.OutOrStdout(), !noColor)
		a, err := newApp(ctx, printer)
		if err != nil {
			return err
		}
		defer a.close(context.Background())

		a.session.SetSpeechEnabled(speech)
		if err := a.session.Connect(ctx); err != nil {
			return err
		}
		return chatLoop(ctx, cmd.InOrStdin(), cmd.OutOrStdout(), a.session, printer)
	},
}

func init() {
	chatCmd.Flags().BoolVar(&speech, "speech", false, "print the spoken text of bot messages")
	rootCmd.AddCommand(chatCmd)
}

type conversation interface {
	SendText(ctx context.Context, text string) error
	HandleAction(ctx context.Context, action render.Action) error
	ShowMore(ctx context.Context, messageID string) error
	SetSpeechEnabled(enabled bool)
}

var errQuit = errors.New("quit")

func chatLoop(ctx context.Context, in io.Reader, out io.Writer, conv conversation, printer *console.Printer) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := readLines(ctx, in)
	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			err := handleLine(ctx, line, conv, printer)
			if errors.Is(err, errQuit) {
				return nil
			}
			if errors.Is(err, session.ErrNotConnected) {
				return err
			}
			if err != nil {
				fmt.Fprintf(out, "    ! %v\n", err)
				logger.Log(zapcore.DebugLevel, err.Error(), "cli", "chat")
			}
		}
	}
}

func handleLine(ctx context.Context, line string, conv conversation, printer *console.Printer) error {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}
	if !strings.HasPrefix(line, "/") {
		return conv.SendText(ctx, line)
	}

	fields := strings.Fields(strings.TrimPrefix(line, "/"))
	if len(fields) == 0 {
		return nil
	}
	switch fields[0] {
	case "quit", "exit":
		return errQuit
	case "more":
		id := printer.TruncatedMessageID()
		if id == "" {
			return errors.New("nothing to expand")
		}
		return conv.ShowMore(ctx, id)
	case "speech":
		conv.SetSpeechEnabled(len(fields) < 2 || fields[1] != "off")
		return nil
	}

	n, err := strconv.Atoi(fields[0])
	if err != nil {
		return fmt.Errorf("unknown command /%s", fields[0])
	}
	action, ok := printer.Action(n)
	if !ok {
		return fmt.Errorf("no choice %d", n)
	}
	return conv.HandleAction(ctx, action)
}

// readLines scan in until EOF or ctx is done, the channel is closed when the reader stops
func readLines(ctx context.Context, in io.Reader) <-chan string {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for ctx.Err() == nil && scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()
	return lines
}
