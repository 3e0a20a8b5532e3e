package app

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestImageCanonicalRoundTrip(t *testing.T) {
	cases := []Image{
		{Registry: "reg.example.com", Owner: "ex", Repository: "example-service", Tag: "abc123"},
		{Registry: "http://localhost:5000", Owner: "khuedoan", Repository: "blog", Tag: "latest"},
	}

	for _, img := range cases {
		parsed, err := ParseImage(img.Canonical())
		require.NoError(t, err)
		require.Equal(t, img, parsed)
	}
}

func TestParseImageRejectsMalformed(t *testing.T) {
	_, err := ParseImage("not-an-image")
	require.Error(t, err)

	_, err = ParseImage("registry/owner-without-tag")
	require.Error(t, err)
}

func TestImageString(t *testing.T) {
	img := Image{Registry: "r", Owner: "o", Repository: "repo", Tag: "t"}
	require.Equal(t, "r/o/repo:t", img.String())
}
