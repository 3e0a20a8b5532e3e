package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newStatusCmd() *cobra.Command {
	var runID string

	cmd := &cobra.Command{
		Use:   "status <workflow-id>",
		Short: "Query the status of a workflow execution",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, err := dialClient()
			if err != nil {
				return err
			}
			defer c.Close()

			status, err := c.Describe(context.Background(), args[0], runID)
			if err != nil {
				return err
			}
			fmt.Printf("workflow %s (run %s): %s\n", status.WorkflowID, status.RunID, status.Status)
			return nil
		},
	}

	cmd.Flags().StringVar(&runID, "run-id", "", "specific run id (defaults to the latest)")
	return cmd
}
