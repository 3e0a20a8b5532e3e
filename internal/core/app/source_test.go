package app

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSanitize(t *testing.T) {
	cases := map[string]string{
		"Example Service":    "example-service",
		"org/repo-name":      "org-repo-name",
		"--leading-trailing--": "leading-trailing",
		"Weird!@#Chars":      "weirdchars",
		"already-ok":         "already-ok",
	}

	for input, want := range cases {
		got := Sanitize(input)
		require.Equal(t, want, got, "sanitize(%q)", input)
	}
}

func TestSanitizeOnlyProducesAllowedCharset(t *testing.T) {
	inputs := []string{"A B/C_D.E-F!G", "", "---", "MixedCase/Repo Name!!"}
	for _, in := range inputs {
		out := Sanitize(in)
		for _, r := range out {
			ok := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '.' || r == '_' || r == '-'
			require.True(t, ok, "sanitize(%q) produced disallowed rune %q", in, r)
		}
		require.False(t, len(out) > 0 && (out[0] == '-' || out[len(out)-1] == '-'), "sanitize(%q) = %q has leading/trailing dash", in, out)
	}
}

func TestGitWorkspacePathDeterministic(t *testing.T) {
	p1 := GitWorkspacePath("example-service", "abc123")
	p2 := GitWorkspacePath("example-service", "abc123")
	require.Equal(t, p1, p2)
	require.Equal(t, "/tmp/example-service-abc123", p1)

	p3 := GitWorkspacePath("example-service", "def456")
	require.NotEqual(t, p1, p3)
}

func TestNewGitSource(t *testing.T) {
	src := NewGitSource("example-service", "https://example/ex", "abc123")
	require.Equal(t, SourceKindGit, src.Kind)
	require.NotNil(t, src.Git)
	require.Equal(t, "/tmp/example-service-abc123", src.Git.WorkspacePath)
}
