package app

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuilderConstructors(t *testing.T) {
	target := Image{Registry: "r", Owner: "o", Repository: "repo", Tag: "t"}

	df := DockerfileBuilder("/tmp/ws", target)
	require.Equal(t, BuildKindDockerfile, df.Kind)
	require.Equal(t, "/tmp/ws", df.WorkspacePath)
	require.Nil(t, df.SourceImage)

	ad := AutoDetectBuilder("/tmp/ws", target)
	require.Equal(t, BuildKindAutoDetect, ad.Kind)

	upstream := Image{Registry: "docker.io", Owner: "library", Repository: "nginx", Tag: "1.27"}
	v := VendorBuilder(upstream, target)
	require.Equal(t, BuildKindVendor, v.Kind)
	require.Equal(t, &upstream, v.SourceImage)
	require.Equal(t, target, v.TargetImage)
}
