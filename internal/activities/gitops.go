package activities

import (
	"context"
	"fmt"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"

	"github.com/skssmd/golden-ci/internal/core/app"
	"github.com/skssmd/golden-ci/internal/errkind"
	"github.com/skssmd/golden-ci/internal/gitops"
	"github.com/skssmd/golden-ci/internal/gitutil"
)

// CloneInput is the input to Clone.
type CloneInput struct {
	URL      string
	Revision string
}

// Clone produces a clean GitOps workspace and returns its path.
func (a *Activities) Clone(ctx context.Context, in CloneInput) (string, error) {
	logger := activity.GetLogger(ctx)
	workspacePath := fmt.Sprintf("/tmp/clone-%s-%s", app.Sanitize(in.URL), shortRevision(in.Revision, 8))

	logger.Info("cloning gitops repository", "url", in.URL, "revision", in.Revision, "workspace", workspacePath)
	if err := gitutil.CloneAtRevision(workspacePath, in.URL, in.Revision, a.Cfg.GitUsername, a.Cfg.GitPassword); err != nil {
		return "", temporal.NewApplicationError(err.Error(), string(errkind.Transient), err)
	}
	return workspacePath, nil
}

// AppImageUpdate is one {repository, tag} entry to apply.
type AppImageUpdate struct {
	Repository string
	Tag        string
}

// UpdateAppVersionInput is the input to UpdateAppVersion.
type UpdateAppVersionInput struct {
	AppsDir   string
	Namespace string
	App       string
	Cluster   string
	NewImages []AppImageUpdate
}

// ValuesFilePath returns the values file UpdateAppVersion mutates, following
// the GitOps repository's apps/{namespace}/{app}/{cluster}.yaml layout.
func (in UpdateAppVersionInput) ValuesFilePath() string {
	return fmt.Sprintf("%s/%s/%s/%s.yaml", in.AppsDir, in.Namespace, in.App, in.Cluster)
}

// UpdateAppVersion walks the cluster values file and bumps any matching
// image tag, returning whether anything changed. Idempotent: see
// internal/gitops.UpdateAppVersion.
func (a *Activities) UpdateAppVersion(ctx context.Context, in UpdateAppVersionInput) (bool, error) {
	logger := activity.GetLogger(ctx)
	path := in.ValuesFilePath()

	updates := make([]gitops.ImageUpdate, len(in.NewImages))
	for i, u := range in.NewImages {
		updates[i] = gitops.ImageUpdate{Repository: u.Repository, Tag: u.Tag}
	}

	changed, err := gitops.UpdateAppVersion(path, updates)
	if err != nil {
		return false, temporal.NewApplicationError(err.Error(), string(errkind.Transient), err)
	}

	if changed {
		logger.Info("updated app version", "path", path)
	} else {
		logger.Info("no image update needed, skipping", "path", path)
	}
	return changed, nil
}

func shortRevision(revision string, n int) string {
	if len(revision) <= n {
		return revision
	}
	return revision[:n]
}
