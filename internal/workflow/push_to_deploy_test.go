package workflow

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/testsuite"

	"github.com/skssmd/golden-ci/internal/activities"
	"github.com/skssmd/golden-ci/internal/core/app"
)

func pushToDeployInput() PushToDeployInput {
	return PushToDeployInput{
		Source:         app.NewGitSource("example-service", "https://example/ex", "abc123"),
		GitOpsURL:      "https://example/gitops",
		GitOpsRevision: "main",
		Namespace:      "reg",
		App:            "ex",
		Cluster:        "prod",
		Registry:       "http://localhost:5000",
	}
}

// TestPushToDeployHappyPathChange covers Scenario 1: a changed tag results
// in add/commit/push being invoked and the pushed image returned.
func TestPushToDeployHappyPathChange(t *testing.T) {
	ts := testsuite.WorkflowTestSuite{}
	env := ts.NewTestWorkflowEnvironment()
	var a *activities.Activities

	in := pushToDeployInput()
	pulled := in.Source
	builder := app.DockerfileBuilder(pulled.Git.WorkspacePath, app.Image{
		Registry: in.Registry, Owner: "golden-ci", Repository: "example-service", Tag: "abc123",
	})
	built := builder.TargetImage

	env.OnActivity(a.AppSourcePull, in.Source).Return(pulled, nil)
	env.OnActivity(a.AppSourceDetect, pulled).Return(builder, nil)
	env.OnActivity(a.AppBuild, builder).Return(built, nil)
	env.OnActivity(a.ImagePush, built).Return(built, nil)
	env.OnActivity(a.Clone, activities.CloneInput{URL: in.GitOpsURL, Revision: in.GitOpsRevision}).
		Return("/tmp/clone-gitops-main", nil)
	env.OnActivity(a.UpdateAppVersion, activities.UpdateAppVersionInput{
		AppsDir:   "/tmp/clone-gitops-main/apps",
		Namespace: in.Namespace,
		App:       in.App,
		Cluster:   in.Cluster,
		NewImages: []activities.AppImageUpdate{{Repository: "http://localhost:5000/golden-ci/example-service", Tag: "abc123"}},
	}).Return(true, nil)
	env.OnActivity(a.GitAdd, activities.GitAddInput{
		FilePath: "/tmp/clone-gitops-main/apps/reg/ex/prod.yaml",
		RepoDir:  "/tmp/clone-gitops-main",
	}).Return(nil)
	env.OnActivity(a.GitCommit, activities.GitCommitInput{
		Dir:     "/tmp/clone-gitops-main",
		Message: "chore(reg/ex): update prod version",
	}).Return(nil)
	env.OnActivity(a.GitPush, activities.GitPushInput{Dir: "/tmp/clone-gitops-main"}).Return(nil)

	env.ExecuteWorkflow(PushToDeploy, in)

	require.True(t, env.IsWorkflowCompleted())
	require.NoError(t, env.GetWorkflowError())
	var result app.Image
	require.NoError(t, env.GetWorkflowResult(&result))
	require.Equal(t, built, result)
}

// TestPushToDeployHappyPathNoChange covers Scenario 2: when update_app_version
// reports no change, git_add/commit/push are never invoked.
func TestPushToDeployHappyPathNoChange(t *testing.T) {
	ts := testsuite.WorkflowTestSuite{}
	env := ts.NewTestWorkflowEnvironment()
	var a *activities.Activities

	in := pushToDeployInput()
	pulled := in.Source
	builder := app.DockerfileBuilder(pulled.Git.WorkspacePath, app.Image{
		Registry: in.Registry, Owner: "golden-ci", Repository: "example-service", Tag: "abc123",
	})
	built := builder.TargetImage

	env.OnActivity(a.AppSourcePull, in.Source).Return(pulled, nil)
	env.OnActivity(a.AppSourceDetect, pulled).Return(builder, nil)
	env.OnActivity(a.AppBuild, builder).Return(built, nil)
	env.OnActivity(a.ImagePush, built).Return(built, nil)
	env.OnActivity(a.Clone, activities.CloneInput{URL: in.GitOpsURL, Revision: in.GitOpsRevision}).
		Return("/tmp/clone-gitops-main", nil)
	env.OnActivity(a.UpdateAppVersion, activities.UpdateAppVersionInput{
		AppsDir:   "/tmp/clone-gitops-main/apps",
		Namespace: in.Namespace,
		App:       in.App,
		Cluster:   in.Cluster,
		NewImages: []activities.AppImageUpdate{{Repository: "http://localhost:5000/golden-ci/example-service", Tag: "abc123"}},
	}).Return(false, nil)

	env.ExecuteWorkflow(PushToDeploy, in)

	require.True(t, env.IsWorkflowCompleted())
	require.NoError(t, env.GetWorkflowError())
	var result app.Image
	require.NoError(t, env.GetWorkflowResult(&result))
	require.Equal(t, built, result)
	env.AssertNotCalled(t, "GitAdd")
	env.AssertNotCalled(t, "GitCommit")
	env.AssertNotCalled(t, "GitPush")
}

// TestPushToDeployBuildFailureIsTerminal covers Scenario 6: a non-retryable
// build failure fails the workflow before any gitops activity runs.
func TestPushToDeployBuildFailureIsTerminal(t *testing.T) {
	ts := testsuite.WorkflowTestSuite{}
	env := ts.NewTestWorkflowEnvironment()
	var a *activities.Activities

	in := pushToDeployInput()
	pulled := in.Source
	builder := app.DockerfileBuilder(pulled.Git.WorkspacePath, app.Image{
		Registry: in.Registry, Owner: "golden-ci", Repository: "example-service", Tag: "abc123",
	})

	env.OnActivity(a.AppSourcePull, in.Source).Return(pulled, nil)
	env.OnActivity(a.AppSourceDetect, pulled).Return(builder, nil)
	env.OnActivity(a.AppBuild, builder).Return(app.Image{},
		temporal.NewNonRetryableApplicationError("build failed", "build-failure", nil))

	env.ExecuteWorkflow(PushToDeploy, in)

	require.True(t, env.IsWorkflowCompleted())
	require.Error(t, env.GetWorkflowError())
	env.AssertNotCalled(t, "Clone")
	env.AssertNotCalled(t, "UpdateAppVersion")
	env.AssertNotCalled(t, "GitCommit")
}
