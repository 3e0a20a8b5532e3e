// Package ociartifact publishes a rendered manifest directory as an OCI
// artifact via oras.land/oras-go/v2, replacing an external OCI-artifact
// pusher CLI with an in-process client.
package ociartifact

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	ocispec "github.com/opencontainers/image-spec/specs-go/v1"
	"oras.land/oras-go/v2"
	"oras.land/oras-go/v2/content/file"
	"oras.land/oras-go/v2/registry/remote"
	"oras.land/oras-go/v2/registry/remote/auth"
	"oras.land/oras-go/v2/registry/remote/retry"
)

// manifestMediaType is the media type used for rendered Kubernetes manifest
// layers pushed by this engine.
const manifestMediaType = "application/vnd.golden-ci.manifest.v1+yaml"

// PushResult mirrors the pusher's JSON output shape.
type PushResult struct {
	Reference string `json:"reference"`
	Digest    string `json:"digest,omitempty"`
	Size      int64  `json:"size,omitempty"`
}

// Push publishes every file directly in dir as layers of a single OCI
// artifact at reference ("registry/namespace/app:cluster"). Subdirectories
// are skipped, not descended into.
func Push(ctx context.Context, dir, reference, username, password string) (PushResult, error) {
	store, err := file.New(dir)
	if err != nil {
		return PushResult{}, fmt.Errorf("open content store: %w", err)
	}
	defer store.Close()

	entries, err := os.ReadDir(dir)
	if err != nil {
		return PushResult{}, fmt.Errorf("read render dir: %w", err)
	}

	var layers []ocispec.Descriptor
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		desc, err := store.Add(ctx, e.Name(), manifestMediaType, filepath.Join(dir, e.Name()))
		if err != nil {
			return PushResult{}, fmt.Errorf("add %s to content store: %w", e.Name(), err)
		}
		layers = append(layers, desc)
	}

	manifestDescriptor, err := oras.PackManifest(ctx, store, oras.PackManifestVersion1_1, manifestMediaType,
		oras.PackManifestOptions{Layers: layers})
	if err != nil {
		return PushResult{}, fmt.Errorf("pack manifest: %w", err)
	}

	registryHost, repoPath, tag, err := splitReference(reference)
	if err != nil {
		return PushResult{}, err
	}

	remoteRepo, err := remote.NewRepository(registryHost + "/" + repoPath)
	if err != nil {
		return PushResult{}, fmt.Errorf("open remote repository: %w", err)
	}
	remoteRepo.Client = &auth.Client{
		Client: retry.DefaultClient,
		Cache:  auth.NewCache(),
		Credential: auth.StaticCredential(registryHost, auth.Credential{
			Username: username,
			Password: password,
		}),
	}

	if err := store.Tag(ctx, manifestDescriptor, tag); err != nil {
		return PushResult{}, fmt.Errorf("tag manifest: %w", err)
	}
	desc, err := oras.Copy(ctx, store, tag, remoteRepo, tag, oras.DefaultCopyOptions)
	if err != nil {
		return PushResult{}, fmt.Errorf("push artifact: %w", err)
	}

	return PushResult{
		Reference: reference,
		Digest:    desc.Digest.String(),
		Size:      desc.Size,
	}, nil
}

// splitReference splits "registry/namespace/app:cluster" into its registry
// host, repository path and tag.
func splitReference(reference string) (registryHost, repoPath, tag string, err error) {
	parts := strings.SplitN(reference, "/", 2)
	if len(parts) != 2 {
		return "", "", "", fmt.Errorf("reference %q: expected registry/path:tag", reference)
	}
	registryHost = parts[0]

	repoAndTag := strings.SplitN(parts[1], ":", 2)
	if len(repoAndTag) != 2 {
		return "", "", "", fmt.Errorf("reference %q: missing tag", reference)
	}
	return registryHost, repoAndTag[0], repoAndTag[1], nil
}
