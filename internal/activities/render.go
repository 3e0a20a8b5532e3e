package activities

import (
	"context"
	"fmt"
	"os"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"

	"github.com/skssmd/golden-ci/internal/errkind"
	"github.com/skssmd/golden-ci/internal/execrunner"
	"github.com/skssmd/golden-ci/internal/ociartifact"
)

// templatingCLI is the external chart templating tool this activity shells
// out to (helm-compatible "template" subcommand).
const templatingCLI = "helm"

// PushRenderedAppInput is the input to PushRenderedApp, the optional
// manifest-rendering variant of publishing an app's deploy artifact.
type PushRenderedAppInput struct {
	AppsDir   string
	Namespace string
	App       string
	Cluster   string
	Registry  string
}

// PushRenderedApp renders the app's chart with its cluster values file and
// publishes the result as an OCI artifact.
func (a *Activities) PushRenderedApp(ctx context.Context, in PushRenderedAppInput) (ociartifact.PushResult, error) {
	logger := activity.GetLogger(ctx)

	renderDir := fmt.Sprintf("/tmp/%s-%s-render", in.App, in.Cluster)
	if err := os.RemoveAll(renderDir); err != nil {
		return ociartifact.PushResult{}, temporal.NewApplicationError(err.Error(), string(errkind.Transient), err)
	}
	if err := os.MkdirAll(renderDir, 0o755); err != nil {
		return ociartifact.PushResult{}, temporal.NewApplicationError(err.Error(), string(errkind.Transient), err)
	}

	chartDir := fmt.Sprintf("%s/%s/%s/chart", in.AppsDir, in.Namespace, in.App)
	valuesFile := fmt.Sprintf("%s/%s/%s/%s.yaml", in.AppsDir, in.Namespace, in.App, in.Cluster)
	outputFile := renderDir + "/rendered.yaml"

	logger.Info("rendering chart", "chart", chartDir, "values", valuesFile)
	result, err := execrunner.Run(ctx, "", templatingCLI, "template", in.App, chartDir, "--values", valuesFile)
	if err != nil {
		return ociartifact.PushResult{}, temporal.NewApplicationError(err.Error(), string(errkind.Transient), err)
	}
	if !result.Succeeded() {
		return ociartifact.PushResult{}, temporal.NewNonRetryableApplicationError(
			"chart template render failed", string(errkind.BuildFailure), nil, result.Stderr)
	}
	if err := os.WriteFile(outputFile, []byte(result.Stdout), 0o644); err != nil {
		return ociartifact.PushResult{}, temporal.NewApplicationError(err.Error(), string(errkind.Transient), err)
	}

	reference := fmt.Sprintf("%s/%s/%s:%s", in.Registry, in.Namespace, in.App, in.Cluster)
	pushResult, err := ociartifact.Push(ctx, renderDir, reference, a.Cfg.GitUsername, a.Cfg.GitPassword)
	if err != nil {
		return ociartifact.PushResult{}, temporal.NewApplicationError(err.Error(), string(errkind.Transient), err)
	}

	return pushResult, nil
}
