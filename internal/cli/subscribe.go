package cli

import (
	"context"
	"encoding/hex"
	"fmt"

	"github.com/golangid/botkit/session"
	"github.com/spf13/cobra"
)

var subscribeCmd = &cobra.Command{
	Use:   "subscribe <device-token-hex>",
	Short: "Register a device token for push notifications",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDeviceToken(cmd, args[0], (*session.Session).Subscribe)
	},
}

var unsubscribeCmd = &cobra.Command{
	Use:   "unsubscribe <device-token-hex>",
	Short: "Remove a device token from push notifications",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDeviceToken(cmd, args[0], (*session.Session).Unsubscribe)
	},
}

func init() {
	rootCmd.AddCommand(subscribeCmd, unsubscribeCmd)
}

func withDeviceToken(cmd *cobra.Command, tokenHex string, call func(*session.Session, context.Context, []byte) error) error {
	token, err := hex.DecodeString(tokenHex)
	if err != nil {
		return fmt.Errorf("device token: %w", err)
	}

	ctx := cmd.Context()
	a, err := newApp(ctx, session.BaseListener{})
	if err != nil {
		return err
	}
	defer a.close(context.Background())

	if err := call(a.session, ctx, token); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s done for user %s\n", cmd.Name(), a.session.User().UserID)
	return nil
}
