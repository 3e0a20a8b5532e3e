package activities

import (
	"context"
	"fmt"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"

	"github.com/skssmd/golden-ci/internal/core/app"
	"github.com/skssmd/golden-ci/internal/errkind"
	"github.com/skssmd/golden-ci/internal/execrunner"
)

// dockerfileBuilderCLI (here) and autoDetectBuilderCLI (source.go) are the
// external, fixed-interface build tools this engine shells out to rather than
// reimplementing.
const dockerfileBuilderCLI = "docker"

// AppBuild builds builder.TargetImage and returns it. A sub-process exit
// code != 0 is non-retryable with stderr surfaced; the workflow's retry
// policy additionally caps this activity at one attempt, but a failed build
// (non-zero exit, failed retag) is always reported as non-retryable so a
// manual retry from history also fails fast. Failing to start the build
// tool, or to pull a vendored image, is reported as a retryable transient
// error.
func (a *Activities) AppBuild(ctx context.Context, builder app.Builder) (app.Image, error) {
	logger := activity.GetLogger(ctx)

	switch builder.Kind {
	case app.BuildKindDockerfile:
		logger.Info("building with Dockerfile", "workspace", builder.WorkspacePath)
		return a.runBuildCLI(ctx, dockerfileBuilderCLI, []string{"build", ".", "--tag", builder.TargetImage.Canonical()}, builder)

	case app.BuildKindAutoDetect:
		logger.Info("building with auto-detecting builder", "workspace", builder.WorkspacePath)
		return a.runBuildCLI(ctx, autoDetectBuilderCLI, []string{"build", ".", "--tag", builder.TargetImage.Canonical()}, builder)

	case app.BuildKindVendor:
		logger.Info("retagging vendored image", "source", builder.SourceImage.Canonical(), "target", builder.TargetImage.Canonical())
		if err := a.Docker.Pull(ctx, builder.SourceImage.Canonical(), ""); err != nil {
			return app.Image{}, temporal.NewApplicationError(err.Error(), string(errkind.Transient), err)
		}
		if err := a.Docker.Retag(ctx, builder.SourceImage.Canonical(), builder.TargetImage.Canonical()); err != nil {
			return app.Image{}, temporal.NewNonRetryableApplicationError(err.Error(), string(errkind.BuildFailure), err)
		}
		return builder.TargetImage, nil

	default:
		return app.Image{}, temporal.NewNonRetryableApplicationError(
			"unknown builder kind", string(errkind.Contract), nil)
	}
}

func (a *Activities) runBuildCLI(ctx context.Context, name string, args []string, builder app.Builder) (app.Image, error) {
	result, err := execrunner.Run(ctx, builder.WorkspacePath, name, args...)
	if err != nil {
		return app.Image{}, temporal.NewApplicationError(err.Error(), string(errkind.Transient), err)
	}
	if !result.Succeeded() {
		msg := fmt.Sprintf("build exited with code %d", result.ExitCode)
		return app.Image{}, temporal.NewNonRetryableApplicationError(msg, string(errkind.BuildFailure), nil, result.Stderr)
	}
	return builder.TargetImage, nil
}
