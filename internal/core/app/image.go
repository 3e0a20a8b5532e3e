// Package app holds the tagged-union data model for sources, builders and
// images that flows through the push-to-deploy pipeline.
package app

import (
	"fmt"
	"strings"
)

// Image is the canonical address of a container image produced by a build
// or re-tag step. Tag must equal the upstream revision for built images
// (content-addressed tagging); the Vendor builder path is the one exception,
// where Tag is the upstream tag passed through unchanged.
type Image struct {
	Registry   string `json:"registry"`
	Owner      string `json:"owner"`
	Repository string `json:"repository"`
	Tag        string `json:"tag"`
}

// Canonical returns the "{registry}/{owner}/{repository}:{tag}" string form.
func (i Image) Canonical() string {
	return fmt.Sprintf("%s/%s/%s:%s", i.Registry, i.Owner, i.Repository, i.Tag)
}

// RepositoryPath returns the "{registry}/{owner}/{repository}" string form,
// untagged. This is the value GitOps values files store under their
// repository: scalar, distinct from the bare Repository field.
func (i Image) RepositoryPath() string {
	return fmt.Sprintf("%s/%s/%s", i.Registry, i.Owner, i.Repository)
}

func (i Image) String() string {
	return i.Canonical()
}

// ParseImage parses a canonical image string back into an Image. It is the
// left inverse of Canonical: ParseImage(img.Canonical()) == img.
//
// Registry may itself carry a "scheme://" prefix (e.g. "http://localhost:5000",
// the REGISTRY default), so the scheme is split off first. The remaining
// "registry/owner/repository:tag" must have exactly three '/'-separated
// segments, and the tag is split off the last segment only, keeping any
// port-colon in the registry host intact.
func ParseImage(s string) (Image, error) {
	scheme := ""
	rest := s
	if idx := strings.Index(s, "://"); idx >= 0 {
		scheme = s[:idx+3]
		rest = s[idx+3:]
	}

	parts := strings.Split(rest, "/")
	if len(parts) != 3 {
		return Image{}, fmt.Errorf("image %q: expected registry/owner/repository:tag", s)
	}

	repoAndTag := strings.SplitN(parts[2], ":", 2)
	if len(repoAndTag) != 2 {
		return Image{}, fmt.Errorf("image %q: missing tag separator", s)
	}

	return Image{
		Registry:   scheme + parts[0],
		Owner:      parts[1],
		Repository: repoAndTag[0],
		Tag:        repoAndTag[1],
	}, nil
}
