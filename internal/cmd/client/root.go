package client

import (
	"github.com/spf13/cobra"
)

// NewRoot constructs a root Cobra command for the client.
// It registers the send command.
func NewRoot() *cobra.Command {
	root := &cobra.Command{
		Use:   "jupyterlab-log",
		Short: "jupyterlab-log client commands",
	}
	root.AddCommand(NewSendCommand())
	return root
}
