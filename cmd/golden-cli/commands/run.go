package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/skssmd/golden-ci/internal/core/app"
	"github.com/skssmd/golden-ci/internal/temporalclient"
	"github.com/skssmd/golden-ci/internal/workflow"
)

func newRunCmd() *cobra.Command {
	var name, url, revision string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Manually submit a push_to_deploy run for a git source",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, cfg, err := dialClient()
			if err != nil {
				return err
			}
			defer c.Close()

			input := workflow.PushToDeployInput{
				Source:         app.NewGitSource(name, url, revision),
				GitOpsURL:      cfg.GitOpsURL,
				GitOpsRevision: cfg.GitOpsRevision,
				Namespace:      cfg.Namespace,
				App:            name,
				Cluster:        cfg.Cluster,
				Registry:       cfg.Registry,
			}

			workflowID := temporalclient.WorkflowID(name, revision)
			result, err := c.StartPushToDeploy(context.Background(), workflowID, input)
			if err != nil {
				return err
			}
			if result.AlreadyExists {
				fmt.Printf("workflow %s already running\n", workflowID)
				return nil
			}
			fmt.Printf("started workflow %s (run %s)\n", result.WorkflowID, result.RunID)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "repository name")
	cmd.Flags().StringVar(&url, "url", "", "clone url")
	cmd.Flags().StringVar(&revision, "revision", "", "source revision")
	cmd.MarkFlagRequired("name")
	cmd.MarkFlagRequired("url")
	cmd.MarkFlagRequired("revision")

	return cmd
}
