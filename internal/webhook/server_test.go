package webhook

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/skssmd/golden-ci/internal/config"
)

func newTestServer() *Server {
	return New(nil, &config.Config{
		GitOpsURL:      "https://example/gitops",
		GitOpsRevision: "main",
		Namespace:      "default",
		Cluster:        "prod",
		Registry:       "http://localhost:5000",
	}, zerolog.Nop())
}

func TestHandleWebhookIgnoresNonPushEvent(t *testing.T) {
	s := newTestServer()
	req := httptest.NewRequest(http.MethodPost, "/webhooks/gitea", strings.NewReader(`{}`))
	req.Header.Set("X-Gitea-Event", "issue_comment")
	rec := httptest.NewRecorder()

	s.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
}

func TestHandleWebhookRejectsMalformedBody(t *testing.T) {
	s := newTestServer()
	req := httptest.NewRequest(http.MethodPost, "/webhooks/gitea", strings.NewReader(`not json`))
	req.Header.Set("X-Gitea-Event", "push")
	rec := httptest.NewRecorder()

	s.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleWebhookRejectsMissingFields(t *testing.T) {
	s := newTestServer()
	req := httptest.NewRequest(http.MethodPost, "/webhooks/gitea", strings.NewReader(`{"after":"abc123"}`))
	req.Header.Set("X-Gitea-Event", "push")
	rec := httptest.NewRecorder()

	s.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleHealthz(t *testing.T) {
	s := newTestServer()
	req := httptest.NewRequest(http.MethodPost, "/healthz", nil)
	rec := httptest.NewRecorder()

	s.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
}
