// Package infra provisions the self-hosted registry and durability substrate
// a fresh deployment target needs before golden-server/golden-worker can run
// against it: Docker, a registry container, and a Temporal dev server
// container. This engine has no application containers of its own to host,
// so there's no Postgres/Redis/Traefik step here, only what
// push_to_deploy's own collaborators need.
package infra

import (
	"fmt"
	"io"

	"github.com/skssmd/golden-ci/internal/sshutil"
)

// bootstrapStep is a check-then-run idiom: skip a step whose check command
// already succeeds.
type bootstrapStep struct {
	name    string
	check   string
	cmd     string
	skipMsg string
}

// Bootstrap installs Docker and starts a local registry and a Temporal dev
// server on client's host, so a fresh host can serve as both REGISTRY and
// TEMPORAL_URL's default targets.
func Bootstrap(client *sshutil.Client, stdout, stderr io.Writer) error {
	dockerInstallCmd := "curl -fsSL https://get.docker.com | sudo sh && sudo systemctl start docker && sudo systemctl enable docker && sudo usermod -aG docker $USER"

	steps := []bootstrapStep{
		{
			name:    "Check Docker",
			check:   "docker --version",
			cmd:     dockerInstallCmd,
			skipMsg: "Docker is already installed.",
		},
		{
			name:    "Check Docker Compose",
			check:   "docker compose version",
			cmd:     dockerInstallCmd,
			skipMsg: "Docker Compose is already installed.",
		},
		{
			name:    "Create Network",
			check:   "sudo docker network inspect golden-ci-public",
			cmd:     "sudo docker network create golden-ci-public",
			skipMsg: "Docker network 'golden-ci-public' already exists.",
		},
		{
			name:    "Start Registry",
			check:   "sudo docker ps | grep golden-ci-registry",
			cmd:     "sudo docker run -d --name golden-ci-registry --network golden-ci-public -p 5000:5000 --restart unless-stopped registry:2",
			skipMsg: "Registry container is already running.",
		},
		{
			name:    "Start Temporal Dev Server",
			check:   "sudo docker ps | grep golden-ci-temporal",
			cmd:     "sudo docker run -d --name golden-ci-temporal --network golden-ci-public -p 7233:7233 --restart unless-stopped temporalio/auto-setup:latest",
			skipMsg: "Temporal dev server is already running.",
		},
	}

	for _, step := range steps {
		if step.check != "" {
			if err := client.RunCommand(step.check, nil, nil); err == nil {
				if step.skipMsg != "" {
					fmt.Fprintf(stdout, "already done: %s\n", step.skipMsg)
				}
				continue
			}
		}

		fmt.Fprintf(stdout, "running: %s\n", step.name)
		if err := client.RunCommand(step.cmd, stdout, stderr); err != nil {
			return fmt.Errorf("step %s failed: %w", step.name, err)
		}
	}

	return nil
}
