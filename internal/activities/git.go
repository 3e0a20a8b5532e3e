package activities

import (
	"context"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"

	"github.com/skssmd/golden-ci/internal/errkind"
	"github.com/skssmd/golden-ci/internal/gitutil"
)

// GitAddInput is the input to GitAdd.
type GitAddInput struct {
	FilePath string
	RepoDir  string
}

// GitAdd stages a single file.
func (a *Activities) GitAdd(ctx context.Context, in GitAddInput) error {
	if err := gitutil.AddFile(in.RepoDir, in.FilePath); err != nil {
		return temporal.NewApplicationError(err.Error(), string(errkind.Transient), err)
	}
	return nil
}

// GitCommitInput is the input to GitCommit.
type GitCommitInput struct {
	Dir     string
	Message string
}

// GitCommit commits staged changes, configuring committer identity from
// GIT_USER/GIT_EMAIL. "Nothing to commit" is treated as success, not
// failure.
func (a *Activities) GitCommit(ctx context.Context, in GitCommitInput) error {
	logger := activity.GetLogger(ctx)
	committed, err := gitutil.Commit(in.Dir, in.Message, gitutil.Identity{
		Name:  a.Cfg.GitUser,
		Email: a.Cfg.GitEmail,
	})
	if err != nil {
		return temporal.NewApplicationError(err.Error(), string(errkind.Transient), err)
	}
	if !committed {
		logger.Info("nothing to commit", "dir", in.Dir)
	}
	return nil
}

// GitPushInput is the input to GitPush.
type GitPushInput struct {
	Dir string
}

// GitPush pushes dir's branch to origin, authenticating with the configured
// git credentials if origin's URL carries none.
func (a *Activities) GitPush(ctx context.Context, in GitPushInput) error {
	if err := gitutil.Push(in.Dir, a.Cfg.GitUsername, a.Cfg.GitPassword); err != nil {
		return temporal.NewApplicationError(err.Error(), string(errkind.Transient), err)
	}
	return nil
}
