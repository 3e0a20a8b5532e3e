package workflow

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	"github.com/skssmd/golden-ci/internal/activities"
	"github.com/skssmd/golden-ci/internal/core/app"
)

// GoldenPathInput is the input to GoldenPath: a build-and-publish-only run
// with no GitOps mutation, for sources that have no deployment target of
// their own (e.g. a base image other services consume).
type GoldenPathInput struct {
	Source   app.Source
	Registry string
}

// GoldenPath runs the first four steps of the push-to-deploy pipeline
// (pull, detect, build, push) and returns the pushed image, for sources
// with no GitOps deployment target to mutate.
func GoldenPath(ctx workflow.Context, input GoldenPathInput) (app.Image, error) {
	var a *activities.Activities

	pullCtx := workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
		StartToCloseTimeout: 120 * time.Second,
		RetryPolicy:         defaultRetryPolicy(),
	})
	var pulledSource app.Source
	if err := workflow.ExecuteActivity(pullCtx, a.AppSourcePull, input.Source).Get(pullCtx, &pulledSource); err != nil {
		return app.Image{}, err
	}

	detectCtx := workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
		StartToCloseTimeout: 30 * time.Second,
		RetryPolicy:         defaultRetryPolicy(),
	})
	var builder app.Builder
	if err := workflow.ExecuteActivity(detectCtx, a.AppSourceDetect, pulledSource).Get(detectCtx, &builder); err != nil {
		return app.Image{}, err
	}

	buildCtx := workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
		StartToCloseTimeout: 600 * time.Second,
		RetryPolicy:         &temporal.RetryPolicy{MaximumAttempts: 1},
	})
	var builtImage app.Image
	if err := workflow.ExecuteActivity(buildCtx, a.AppBuild, builder).Get(buildCtx, &builtImage); err != nil {
		return app.Image{}, err
	}

	pushCtx := workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
		StartToCloseTimeout: 120 * time.Second,
		RetryPolicy:         defaultRetryPolicy(),
	})
	var pushedImage app.Image
	if err := workflow.ExecuteActivity(pushCtx, a.ImagePush, builtImage).Get(pushCtx, &pushedImage); err != nil {
		return app.Image{}, err
	}

	return pushedImage, nil
}
