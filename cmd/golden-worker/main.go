// Command golden-worker hosts the push_to_deploy and golden_path workflow
// definitions and their activity implementations, polling the durability
// substrate for work.
package main

import (
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/worker"
	sdkworkflow "go.temporal.io/sdk/workflow"

	"github.com/skssmd/golden-ci/internal/activities"
	"github.com/skssmd/golden-ci/internal/config"
	"github.com/skssmd/golden-ci/internal/dockerutil"
	"github.com/skssmd/golden-ci/internal/logging"
	"github.com/skssmd/golden-ci/internal/workflow"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := logging.New("golden-worker", cfg.LogLevel)

	sdk, err := client.Dial(client.Options{HostPort: cfg.TemporalURL})
	if err != nil {
		logger.Error().Err(err).Msg("failed to connect to temporal")
		os.Exit(1)
	}
	defer sdk.Close()

	docker, err := dockerutil.NewClient()
	if err != nil {
		logger.Error().Err(err).Msg("failed to connect to docker daemon")
		os.Exit(1)
	}

	a := activities.New(docker, cfg)

	w := worker.New(sdk, cfg.TaskQueue, worker.Options{})
	w.RegisterWorkflowWithOptions(workflow.PushToDeploy, sdkworkflow.RegisterOptions{Name: "push_to_deploy"})
	w.RegisterWorkflowWithOptions(workflow.GoldenPath, sdkworkflow.RegisterOptions{Name: "golden_path"})
	w.RegisterActivity(a)

	go func() {
		logger.Info().Str("addr", cfg.MetricsAddr).Msg("starting worker metrics server")
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		if err := http.ListenAndServe(cfg.MetricsAddr, mux); err != nil {
			logger.Warn().Err(err).Msg("metrics server stopped")
		}
	}()

	logger.Info().Str("task_queue", cfg.TaskQueue).Msg("starting worker")
	if err := w.Run(worker.InterruptCh()); err != nil {
		logger.Error().Err(err).Msg("worker stopped")
		os.Exit(1)
	}
}
