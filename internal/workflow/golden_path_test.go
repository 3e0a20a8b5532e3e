package workflow

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/testsuite"

	"github.com/skssmd/golden-ci/internal/activities"
	"github.com/skssmd/golden-ci/internal/core/app"
)

func TestGoldenPathReturnsPushedImage(t *testing.T) {
	ts := testsuite.WorkflowTestSuite{}
	env := ts.NewTestWorkflowEnvironment()
	var a *activities.Activities

	source := app.NewGitSource("base-image", "https://example/base", "def456")
	in := GoldenPathInput{Source: source, Registry: "http://localhost:5000"}
	builder := app.DockerfileBuilder(source.Git.WorkspacePath, app.Image{
		Registry: in.Registry, Owner: "golden-ci", Repository: "base-image", Tag: "def456",
	})
	built := builder.TargetImage

	env.OnActivity(a.AppSourcePull, source).Return(source, nil)
	env.OnActivity(a.AppSourceDetect, source).Return(builder, nil)
	env.OnActivity(a.AppBuild, builder).Return(built, nil)
	env.OnActivity(a.ImagePush, built).Return(built, nil)

	env.ExecuteWorkflow(GoldenPath, in)

	require.True(t, env.IsWorkflowCompleted())
	require.NoError(t, env.GetWorkflowError())
	var result app.Image
	require.NoError(t, env.GetWorkflowResult(&result))
	require.Equal(t, built, result)
}
