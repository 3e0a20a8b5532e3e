// Package workflow holds the deterministic workflow definitions driven by
// the durability substrate. Workflow functions here touch no wall-clock,
// environment variable or random source directly; every piece of
// non-determinism comes back through an activity result.
package workflow

import (
	"fmt"
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	"github.com/skssmd/golden-ci/internal/activities"
	"github.com/skssmd/golden-ci/internal/core/app"
)

// PushToDeployInput is the workflow input: all fields required, all strings
// non-empty.
type PushToDeployInput struct {
	Source         app.Source
	GitOpsURL      string
	GitOpsRevision string
	Namespace      string
	App            string
	Cluster        string
	Registry       string
}

// defaultRetryPolicy is the policy left on every step except the build,
// which gets a single attempt: exponential backoff, unlimited retries.
func defaultRetryPolicy() *temporal.RetryPolicy {
	return &temporal.RetryPolicy{
		InitialInterval:    time.Second,
		BackoffCoefficient: 2.0,
		MaximumInterval:    time.Minute,
	}
}

// PushToDeploy runs the full pull → detect → build → push → gitops pipeline
// and returns the pushed image.
func PushToDeploy(ctx workflow.Context, input PushToDeployInput) (app.Image, error) {
	logger := workflow.GetLogger(ctx)
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

	cloneCtx := workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
		StartToCloseTimeout: 120 * time.Second,
		RetryPolicy:         defaultRetryPolicy(),
	})
	var gitopsDir string
	cloneInput := activities.CloneInput{URL: input.GitOpsURL, Revision: input.GitOpsRevision}
	if err := workflow.ExecuteActivity(cloneCtx, a.Clone, cloneInput).Get(cloneCtx, &gitopsDir); err != nil {
		return app.Image{}, err
	}

	updateCtx := workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
		StartToCloseTimeout: 30 * time.Second,
		RetryPolicy:         defaultRetryPolicy(),
	})
	updateInput := activities.UpdateAppVersionInput{
		AppsDir:   gitopsDir + "/apps",
		Namespace: input.Namespace,
		App:       input.App,
		Cluster:   input.Cluster,
		NewImages: []activities.AppImageUpdate{{Repository: pushedImage.RepositoryPath(), Tag: pushedImage.Tag}},
	}
	var changed bool
	if err := workflow.ExecuteActivity(updateCtx, a.UpdateAppVersion, updateInput).Get(updateCtx, &changed); err != nil {
		return app.Image{}, err
	}

	if !changed {
		logger.Info("no-op deploy: image tag already up to date", "namespace", input.Namespace, "app", input.App, "cluster", input.Cluster)
		return pushedImage, nil
	}

	addCtx := workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
		StartToCloseTimeout: 30 * time.Second,
		RetryPolicy:         defaultRetryPolicy(),
	})
	addInput := activities.GitAddInput{FilePath: updateInput.ValuesFilePath(), RepoDir: gitopsDir}
	if err := workflow.ExecuteActivity(addCtx, a.GitAdd, addInput).Get(addCtx, nil); err != nil {
		return app.Image{}, err
	}

	commitCtx := workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
		StartToCloseTimeout: 30 * time.Second,
		RetryPolicy:         defaultRetryPolicy(),
	})
	commitInput := activities.GitCommitInput{
		Dir:     gitopsDir,
		Message: fmt.Sprintf("chore(%s/%s): update %s version", input.Namespace, input.App, input.Cluster),
	}
	if err := workflow.ExecuteActivity(commitCtx, a.GitCommit, commitInput).Get(commitCtx, nil); err != nil {
		return app.Image{}, err
	}

	pushGitCtx := workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
		StartToCloseTimeout: 60 * time.Second,
		RetryPolicy:         defaultRetryPolicy(),
	})
	pushGitInput := activities.GitPushInput{Dir: gitopsDir}
	if err := workflow.ExecuteActivity(pushGitCtx, a.GitPush, pushGitInput).Get(pushGitCtx, nil); err != nil {
		return app.Image{}, err
	}

	return pushedImage, nil
}
