package client

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	transports "github.com/behavioral-data/Data-Assistant-Interface/internal/cmd/client/transports"
)

// NewSendCommand constructs the `send` command, which records one event.
func NewSendCommand() *cobra.Command {
	sendCmd := &cobra.Command{
		Use:   "send",
		Short: "Send one event to a jupyterlab-log server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			contextID, _ := cmd.Flags().GetString("context-id")
			data, _ := cmd.Flags().GetString("data")
			fields, _ := cmd.Flags().GetStringArray("field")
			transport, _ := cmd.Flags().GetString("transport")
			baseURL, _ := cmd.Flags().GetString("url")
			basePath, _ := cmd.Flags().GetString("base-path")
			token, _ := cmd.Flags().GetString("token")
			grpcAddr, _ := cmd.Flags().GetString("grpc-addr")
			timeout, _ := cmd.Flags().GetDuration("timeout")

			event, err := buildEvent(data, fields, contextID)
			if err != nil {
				return err
			}

			var t transports.EventsTransport
			switch transport {
			case "http":
				t = transports.NewHTTPTransport(baseURL, basePath, token, nil)
			case "grpc":
				t = transports.NewGrpcTransport(grpcDialer(grpcAddr), token)
			default:
				return fmt.Errorf("invalid --transport; use http|grpc")
			}

			ctx := cmd.Context()
			if timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, timeout)
				defer cancel()
			}
			ack, err := t.Send(ctx, event)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "status: %s (%s)\n", ack.Status, ack.Msg)
			return nil
		},
	}
	sendCmd.Flags().String("context-id", "", "Context id; sets the contextId key of the event")
	sendCmd.Flags().String("data", "", "Event as a JSON object, e.g. '{\"eventName\":\"cell_run\"}'")
	sendCmd.Flags().StringArray("field", []string{}, "Event field key=value (repeat); JSON values keep their type")
	sendCmd.Flags().String("transport", "http", "Transport: http|grpc")
	sendCmd.Flags().String("url", baseURLFromEnv(), "Server base URL for the http transport")
	sendCmd.Flags().String("base-path", "/", "Server base path the endpoint is mounted under")
	sendCmd.Flags().String("token", "", "Jupyter API token")
	sendCmd.Flags().String("grpc-addr", grpcAddrFromEnv(), "Server address for the grpc transport")
	sendCmd.Flags().Duration("timeout", 10*time.Second, "Request timeout")
	return sendCmd
}
