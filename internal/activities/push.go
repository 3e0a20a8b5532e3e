package activities

import (
	"context"
	"strings"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"

	"github.com/skssmd/golden-ci/internal/core/app"
	"github.com/skssmd/golden-ci/internal/errkind"
)

// ImagePush pushes image to its registry and returns it unchanged (spec
// §4.6). Network failures are retryable; auth rejection is not.
func (a *Activities) ImagePush(ctx context.Context, image app.Image) (app.Image, error) {
	logger := activity.GetLogger(ctx)
	logger.Info("pushing image", "image", image.Canonical())

	if err := a.Docker.Push(ctx, image.Canonical(), ""); err != nil {
		if isAuthRejection(err.Error()) {
			return app.Image{}, temporal.NewNonRetryableApplicationError(err.Error(), string(errkind.Auth), err)
		}
		return app.Image{}, temporal.NewApplicationError(err.Error(), string(errkind.Transient), err)
	}

	return image, nil
}

func isAuthRejection(msg string) bool {
	lower := strings.ToLower(msg)
	return strings.Contains(lower, "unauthorized") || strings.Contains(lower, "authentication required") || strings.Contains(lower, "denied")
}
