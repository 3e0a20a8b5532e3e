// Package dockerutil talks to the local container daemon through the
// official Docker Engine API client, github.com/docker/docker/client, for
// image push and retag. This is distinct from the Dockerfile/auto-detect
// builder CLIs invoked through execrunner: those build images, this
// package only pushes, pulls and re-tags what they produced.
package dockerutil

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/docker/docker/api/types/image"
	"github.com/docker/docker/client"
)

// Client wraps the Docker Engine API client with the three operations the
// activities need.
type Client struct {
	cli *client.Client
}

// NewClient connects to the local Docker daemon over its default socket.
func NewClient() (*Client, error) {
	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return nil, fmt.Errorf("connect to docker daemon: %w", err)
	}
	return &Client{cli: cli}, nil
}

// Push pushes ref (a fully-qualified "registry/owner/repository:tag"
// string) to its registry, draining the streamed JSON progress events. The
// push only counts as successful if the stream produces no transport error
// and no event in it is itself an error message.
func (c *Client) Push(ctx context.Context, ref string, authConfig string) error {
	rc, err := c.cli.ImagePush(ctx, ref, image.PushOptions{RegistryAuth: authConfig})
	if err != nil {
		return fmt.Errorf("push %s: %w", ref, err)
	}
	defer rc.Close()
	return drainProgress(rc, ref)
}

// Pull pulls ref, draining progress the same way Push does.
func (c *Client) Pull(ctx context.Context, ref string, authConfig string) error {
	rc, err := c.cli.ImagePull(ctx, ref, image.PullOptions{RegistryAuth: authConfig})
	if err != nil {
		return fmt.Errorf("pull %s: %w", ref, err)
	}
	defer rc.Close()
	return drainProgress(rc, ref)
}

// Retag tags an already-pulled sourceRef under targetRef, the local
// in-daemon equivalent of the Vendor builder's "re-tag in the local
// registry" semantics.
func (c *Client) Retag(ctx context.Context, sourceRef, targetRef string) error {
	if err := c.cli.ImageTag(ctx, sourceRef, targetRef); err != nil {
		return fmt.Errorf("tag %s as %s: %w", sourceRef, targetRef, err)
	}
	return nil
}

// progressEvent mirrors the subset of the Docker daemon's streamed JSON
// message format this package needs to detect a terminal error.
type progressEvent struct {
	Error       string `json:"error"`
	ErrorDetail *struct {
		Message string `json:"message"`
	} `json:"errorDetail"`
}

func drainProgress(r io.Reader, ref string) error {
	dec := json.NewDecoder(r)
	for {
		var evt progressEvent
		if err := dec.Decode(&evt); err != nil {
			if err == io.EOF {
				return nil
			}
			return fmt.Errorf("read progress stream for %s: %w", ref, err)
		}
		if evt.Error != "" {
			return fmt.Errorf("%s: %s", ref, evt.Error)
		}
		if evt.ErrorDetail != nil && evt.ErrorDetail.Message != "" {
			return fmt.Errorf("%s: %s", ref, evt.ErrorDetail.Message)
		}
	}
}
