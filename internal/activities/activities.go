// Package activities implements every side-effecting step of the
// push-to-deploy pipeline. Activities are methods on Activities so their
// external collaborators (the Docker client, git credentials, the registry
// default) are constructor-injected rather than read from globals.
package activities

import (
	"github.com/skssmd/golden-ci/internal/config"
	"github.com/skssmd/golden-ci/internal/dockerutil"
)

// Activities holds the collaborators every activity method needs.
type Activities struct {
	Docker *dockerutil.Client
	Cfg    *config.Config
}

// New constructs an Activities bound to docker and cfg.
func New(docker *dockerutil.Client, cfg *config.Config) *Activities {
	return &Activities{Docker: docker, Cfg: cfg}
}
