// Package webhook implements the forge-facing ingress HTTP server: it
// validates incoming push events and submits the push_to_deploy workflow
// under a deterministic id. Router shape (chi + cors + middleware chain)
// follows Azure-containerization-assist's pkg/mcp/infra/transport/http.go.
package webhook

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/skssmd/golden-ci/internal/config"
	"github.com/skssmd/golden-ci/internal/core/app"
	"github.com/skssmd/golden-ci/internal/metrics"
	"github.com/skssmd/golden-ci/internal/temporalclient"
	"github.com/skssmd/golden-ci/internal/workflow"
)

// eventHeaders are the two forge event-type headers this engine recognizes;
// Gitea and Forgejo are treated as synonymous for this purpose.
var eventHeaders = []string{"X-Gitea-Event", "X-Forgejo-Event"}

// pushPayload is the minimal shape this engine requires out of a forge push
// webhook body.
type pushPayload struct {
	After      string `json:"after"`
	Repository struct {
		Name     string `json:"name"`
		CloneURL string `json:"clone_url"`
	} `json:"repository"`
}

// Server is the webhook ingress HTTP server.
type Server struct {
	router   chi.Router
	temporal *temporalclient.Client
	cfg      *config.Config
	logger   zerolog.Logger
}

// New builds a Server submitting workflows through temporal.
func New(temporal *temporalclient.Client, cfg *config.Config, logger zerolog.Logger) *Server {
	s := &Server{temporal: temporal, cfg: cfg, logger: logger}
	s.setupRouter()
	return s
}

func (s *Server) setupRouter() {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"POST", "GET"},
		AllowedHeaders: []string{"Content-Type", "X-Gitea-Event", "X-Forgejo-Event"},
	}))
	r.Use(s.loggingMiddleware)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Post("/webhooks/{forge}", s.handleWebhook)
	r.Post("/healthz", s.handleHealthz)
	r.Handle("/metrics", promhttp.Handler())

	s.router = r
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Dur("duration", time.Since(start)).
			Msg("handled request")
	})
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleWebhook(w http.ResponseWriter, r *http.Request) {
	forge := chi.URLParam(r, "forge")
	deliveryID := uuid.NewString()

	eventType := ""
	for _, h := range eventHeaders {
		if v := r.Header.Get(h); v != "" {
			eventType = v
			break
		}
	}
	metrics.WebhooksReceived.WithLabelValues(forge, eventType).Inc()
	if !strings.EqualFold(eventType, "push") {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	var body pushPayload
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.logger.Warn().Err(err).Str("forge", forge).Str("delivery_id", deliveryID).Msg("malformed webhook body")
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	if body.After == "" || body.Repository.Name == "" || body.Repository.CloneURL == "" {
		s.logger.Warn().Str("forge", forge).Str("delivery_id", deliveryID).Msg("webhook body missing required fields")
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	source := app.NewGitSource(body.Repository.Name, body.Repository.CloneURL, body.After)
	workflowID := temporalclient.WorkflowID(body.Repository.Name, body.After)

	input := workflow.PushToDeployInput{
		Source:         source,
		GitOpsURL:      s.cfg.GitOpsURL,
		GitOpsRevision: s.cfg.GitOpsRevision,
		Namespace:      s.cfg.Namespace,
		App:            body.Repository.Name,
		Cluster:        s.cfg.Cluster,
		Registry:       s.cfg.Registry,
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	result, err := s.temporal.StartPushToDeploy(ctx, workflowID, input)
	if err != nil {
		metrics.WorkflowsStarted.WithLabelValues("rejected").Inc()
		s.logger.Error().Err(err).Str("workflow_id", workflowID).Str("delivery_id", deliveryID).Msg("failed to submit workflow")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	if result.AlreadyExists {
		metrics.WorkflowsStarted.WithLabelValues("already_running").Inc()
		s.logger.Info().Str("workflow_id", workflowID).Str("delivery_id", deliveryID).Msg("workflow already running, treating as idempotent success")
	} else {
		metrics.WorkflowsStarted.WithLabelValues("accepted").Inc()
		s.logger.Info().Str("workflow_id", workflowID).Str("run_id", result.RunID).Str("delivery_id", deliveryID).Msg("started push_to_deploy workflow")
	}
	w.WriteHeader(http.StatusAccepted)
}
