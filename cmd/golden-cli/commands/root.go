package commands

import (
	"github.com/spf13/cobra"

	"github.com/skssmd/golden-ci/internal/config"
	"github.com/skssmd/golden-ci/internal/temporalclient"
)

// Root builds the golden-cli command tree: run, status, cancel, infra.
func Root() *cobra.Command {
	root := &cobra.Command{
		Use:   "golden-cli",
		Short: "Operator CLI for the golden-ci push-to-deploy engine",
	}

	root.AddCommand(newRunCmd(), newStatusCmd(), newCancelCmd(), newInfraCmd())
	return root
}

func dialClient() (*temporalclient.Client, *config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	c, err := temporalclient.Dial(cfg.TemporalURL, cfg.TaskQueue)
	if err != nil {
		return nil, nil, err
	}
	return c, cfg, nil
}
