package app

import (
	"fmt"
	"regexp"
	"strings"
)

// Source is a tagged union over the two shapes the pipeline can build from:
// a git checkout at a content-addressed revision, or a pre-built upstream
// image to re-tag. Exactly one of Git / VendoredImage is set, discriminated
// by Kind, and that is how it round-trips through JSON as the workflow's
// replayable history.
type Source struct {
	Kind          SourceKind     `json:"kind"`
	Git           *GitSource     `json:"git,omitempty"`
	VendoredImage *VendoredImage `json:"vendored_image,omitempty"`
}

// SourceKind discriminates the Source union.
type SourceKind string

const (
	SourceKindGit           SourceKind = "git"
	SourceKindVendoredImage SourceKind = "vendored_image"
)

// GitSource is the dominant case: a named repository at an immutable
// revision, pulled into a deterministic workspace path.
type GitSource struct {
	Name          string `json:"name"`
	URL           string `json:"url"`
	Revision      string `json:"revision"`
	WorkspacePath string `json:"workspace_path"`
}

// VendoredImage is a passthrough of a pre-built upstream image; no source
// pull or build step runs, only a re-tag into the local registry.
type VendoredImage struct {
	Registry   string `json:"registry"`
	Owner      string `json:"owner"`
	Repository string `json:"repository"`
	Tag        string `json:"tag"`
}

// NewGitSource builds a Git source with its deterministic workspace path
// already derived from (name, revision).
func NewGitSource(name, url, revision string) Source {
	return Source{
		Kind: SourceKindGit,
		Git: &GitSource{
			Name:          name,
			URL:           url,
			Revision:      revision,
			WorkspacePath: GitWorkspacePath(name, revision),
		},
	}
}

// NewVendoredImageSource wraps an upstream image reference as a Source.
func NewVendoredImageSource(img Image) Source {
	return Source{
		Kind: SourceKindVendoredImage,
		VendoredImage: &VendoredImage{
			Registry:   img.Registry,
			Owner:      img.Owner,
			Repository: img.Repository,
			Tag:        img.Tag,
		},
	}
}

// GitWorkspacePath derives the workspace directory for a (name, revision)
// pair. Two pulls of the same (name, revision) always land in the same
// directory, which is what makes the source-pull activity idempotent across
// retries.
func GitWorkspacePath(name, revision string) string {
	return fmt.Sprintf("/tmp/%s-%s", Sanitize(name), revision)
}

var sanitizeAllowed = regexp.MustCompile(`[^A-Za-z0-9._-]`)
var sanitizeWhitespaceOrSlash = regexp.MustCompile(`[\s/]`)

// Sanitize maps an arbitrary string into a filesystem/identifier-safe form:
// keep [A-Za-z0-9._-], map whitespace and '/' to '-', trim leading/trailing
// '-', lowercase. Used for workspace paths and workflow ids alike so that
// the same repository name always produces the same derived strings.
func Sanitize(s string) string {
	s = sanitizeWhitespaceOrSlash.ReplaceAllString(s, "-")
	s = sanitizeAllowed.ReplaceAllString(s, "")
	s = strings.Trim(s, "-")
	return strings.ToLower(s)
}
