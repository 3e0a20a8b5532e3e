// Command golden-server runs the webhook ingress: it accepts forge push
// events and submits the push_to_deploy workflow to the durability
// substrate.
package main

import (
	"net/http"
	"os"

	"github.com/rs/zerolog"

	"github.com/skssmd/golden-ci/internal/config"
	"github.com/skssmd/golden-ci/internal/logging"
	"github.com/skssmd/golden-ci/internal/temporalclient"
	"github.com/skssmd/golden-ci/internal/webhook"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		zerolog.New(os.Stderr).Error().Err(err).Msg("failed to load config")
		os.Exit(1)
	}

	logger := logging.New("golden-server", cfg.LogLevel)

	temporal, err := temporalclient.Dial(cfg.TemporalURL, cfg.TaskQueue)
	if err != nil {
		logger.Error().Err(err).Msg("failed to connect to temporal")
		os.Exit(1)
	}
	defer temporal.Close()

	srv := webhook.New(temporal, cfg, logger)

	logger.Info().Str("addr", cfg.IngressAddr).Msg("starting ingress server")
	if err := http.ListenAndServe(cfg.IngressAddr, srv); err != nil {
		logger.Error().Err(err).Msg("ingress server stopped")
		os.Exit(1)
	}
}
