package gitops

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "production.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestUpdateAppVersionChangesStaleTag(t *testing.T) {
	path := writeTemp(t, `
controllers:
  main:
    containers:
      app:
        image:
          repository: reg/ex/example-service
          tag: old
`)

	changed, err := UpdateAppVersion(path, []ImageUpdate{
		{Repository: "reg/ex/example-service", Tag: "abc123"},
	})
	require.NoError(t, err)
	require.True(t, changed)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "tag: abc123")
}

func TestUpdateAppVersionNoOpWhenTagMatches(t *testing.T) {
	path := writeTemp(t, `
controllers:
  main:
    containers:
      app:
        image:
          repository: reg/ex/example-service
          tag: abc123
`)

	changed, err := UpdateAppVersion(path, []ImageUpdate{
		{Repository: "reg/ex/example-service", Tag: "abc123"},
	})
	require.NoError(t, err)
	require.False(t, changed)
}

func TestUpdateAppVersionIdempotentRetry(t *testing.T) {
	path := writeTemp(t, `
image:
  repository: reg/ex/example-service
  tag: old
`)
	updates := []ImageUpdate{{Repository: "reg/ex/example-service", Tag: "abc123"}}

	changed, err := UpdateAppVersion(path, updates)
	require.NoError(t, err)
	require.True(t, changed)

	first, err := os.ReadFile(path)
	require.NoError(t, err)

	changed, err = UpdateAppVersion(path, updates)
	require.NoError(t, err)
	require.False(t, changed)

	second, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestUpdateAppVersionRecursiveMultipleBlocks(t *testing.T) {
	path := writeTemp(t, `
controllers:
  web:
    containers:
      app:
        image:
          repository: reg/ex/example-service
          tag: old-web
  worker:
    containers:
      app:
        image:
          repository: reg/ex/example-service
          tag: old-worker
`)

	changed, err := UpdateAppVersion(path, []ImageUpdate{
		{Repository: "reg/ex/example-service", Tag: "abc123"},
	})
	require.NoError(t, err)
	require.True(t, changed)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NotContains(t, string(data), "old-web")
	require.NotContains(t, string(data), "old-worker")
}

func TestUpdateAppVersionIgnoresNonMatchingRepository(t *testing.T) {
	path := writeTemp(t, `
image:
  repository: other/repo
  tag: old
`)

	changed, err := UpdateAppVersion(path, []ImageUpdate{
		{Repository: "reg/ex/example-service", Tag: "abc123"},
	})
	require.NoError(t, err)
	require.False(t, changed)
}
