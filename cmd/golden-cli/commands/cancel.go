package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newCancelCmd() *cobra.Command {
	var runID string

	cmd := &cobra.Command{
		Use:   "cancel <workflow-id>",
		Short: "Cancel a running workflow execution",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, err := dialClient()
			if err != nil {
				return err
			}
			defer c.Close()

			if err := c.Cancel(context.Background(), args[0], runID); err != nil {
				return err
			}
			fmt.Printf("cancellation requested for workflow %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&runID, "run-id", "", "specific run id (defaults to the latest)")
	return cmd
}
