package cli

import (
	"encoding/json"
	"fmt"

	"github.com/golangid/botkit/message"
	"github.com/golangid/botkit/render"
	"github.com/golangid/botkit/template"
	"github.com/spf13/cobra"
)

var classifyPayload string

var classifyCmd = &cobra.Command{
	Use:   "classify <template-type> [table-design]",
	Short: "Print the message kind of a template type, and its view when a payload is given",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		var design string
		if len(args) > 1 {
			design = args[1]
		}
		kind := template.Classify(args[0], design)
		fmt.Fprintln(cmd.OutOrStdout(), kind)

		if classifyPayload == "" {
			return nil
		}
		payload, err := template.Decode(kind, classifyPayload)
		if err != nil {
			return err
		}
		bubble := render.Build(messageOf(kind, classifyPayload))
		if len(bubble.Views) == 0 {
			return fmt.Errorf("%s payload decoded to %T but has no view", kind, payload)
		}
		out, err := json.MarshalIndent(bubble.Views[0], "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	},
}

func init() {
	classifyCmd.Flags().StringVarP(&classifyPayload, "payload", "p", "", "template payload json to decode")
	rootCmd.AddCommand(classifyCmd)
}

// messageOf single component incoming message, used to preview a payload
func messageOf(kind template.Kind, payload string) message.Message {
	return message.Message{
		Direction:  message.DirectionIncoming,
		Components: []message.Component{{Kind: kind, Payload: payload}},
	}
}
