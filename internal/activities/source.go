package activities

import (
	"context"
	"os"
	"path/filepath"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"

	"github.com/skssmd/golden-ci/internal/core/app"
	"github.com/skssmd/golden-ci/internal/errkind"
	"github.com/skssmd/golden-ci/internal/execrunner"
	"github.com/skssmd/golden-ci/internal/gitutil"
)

// autoDetectBuilderCLI is the external auto-detecting builder tool this
// activity shells out to when a source carries no Dockerfile.
const autoDetectBuilderCLI = "nixpacks"

// AppSourcePull populates the workspace for a Git source (shallow fetch,
// detached checkout at the revision) or is a no-op for a vendored image.
func (a *Activities) AppSourcePull(ctx context.Context, source app.Source) (app.Source, error) {
	logger := activity.GetLogger(ctx)

	switch source.Kind {
	case app.SourceKindVendoredImage:
		return source, nil
	case app.SourceKindGit:
		g := source.Git
		logger.Info("pulling source", "name", g.Name, "revision", g.Revision)
		if err := gitutil.PullAtRevision(g.WorkspacePath, g.URL, g.Revision); err != nil {
			return app.Source{}, temporal.NewApplicationError(err.Error(), string(errkind.Transient), err)
		}
		return source, nil
	default:
		return app.Source{}, temporal.NewNonRetryableApplicationError(
			"unknown source kind", string(errkind.Contract), nil)
	}
}

// AppSourceDetect picks a Builder for a pulled source.
func (a *Activities) AppSourceDetect(ctx context.Context, source app.Source) (app.Builder, error) {
	logger := activity.GetLogger(ctx)

	switch source.Kind {
	case app.SourceKindVendoredImage:
		v := source.VendoredImage
		upstream := app.Image{Registry: v.Registry, Owner: v.Owner, Repository: v.Repository, Tag: v.Tag}
		target := app.Image{
			Registry:   a.Cfg.Registry,
			Owner:      defaultOwner(),
			Repository: v.Repository,
			Tag:        v.Tag,
		}
		return app.VendorBuilder(upstream, target), nil

	case app.SourceKindGit:
		g := source.Git
		target := app.Image{
			Registry:   a.Cfg.Registry,
			Owner:      defaultOwner(),
			Repository: g.Name,
			Tag:        g.Revision,
		}

		if _, err := os.Stat(filepath.Join(g.WorkspacePath, "Dockerfile")); err == nil {
			logger.Info("detected Dockerfile", "workspace", g.WorkspacePath)
			return app.DockerfileBuilder(g.WorkspacePath, target), nil
		}

		result, err := execrunner.Run(ctx, g.WorkspacePath, autoDetectBuilderCLI, "detect", ".")
		if err != nil {
			return app.Builder{}, temporal.NewApplicationError(err.Error(), string(errkind.Transient), err)
		}
		if result.Succeeded() && len(result.Stdout) > 0 {
			logger.Info("auto-detected buildable project", "workspace", g.WorkspacePath)
			return app.AutoDetectBuilder(g.WorkspacePath, target), nil
		}

		return app.Builder{}, temporal.NewNonRetryableApplicationError(
			"no-buildable-code", string(errkind.Contract), nil)

	default:
		return app.Builder{}, temporal.NewNonRetryableApplicationError(
			"unknown source kind", string(errkind.Contract), nil)
	}
}

func defaultOwner() string {
	if owner := os.Getenv("OWNER"); owner != "" {
		return owner
	}
	return "golden-ci"
}
