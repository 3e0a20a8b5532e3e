package app

// Builder is a tagged union over the three ways an Image gets produced.
// BuildKind discriminates; the embedded TargetImage is always the image
// coordinates the build is expected to produce.
type Builder struct {
	Kind          BuildKind `json:"kind"`
	WorkspacePath string    `json:"workspace_path,omitempty"`
	SourceImage   *Image    `json:"source_image,omitempty"`
	TargetImage   Image     `json:"target_image"`
}

// BuildKind discriminates the Builder union.
type BuildKind string

const (
	BuildKindDockerfile  BuildKind = "dockerfile"
	BuildKindAutoDetect  BuildKind = "autodetect"
	BuildKindVendor      BuildKind = "vendor"
)

// DockerfileBuilder builds workspacePath/Dockerfile with the Dockerfile
// build tool.
func DockerfileBuilder(workspacePath string, target Image) Builder {
	return Builder{Kind: BuildKindDockerfile, WorkspacePath: workspacePath, TargetImage: target}
}

// AutoDetectBuilder builds workspacePath with the auto-detecting builder
// tool, used when no Dockerfile is present but the tool recognizes the
// project layout.
func AutoDetectBuilder(workspacePath string, target Image) Builder {
	return Builder{Kind: BuildKindAutoDetect, WorkspacePath: workspacePath, TargetImage: target}
}

// VendorBuilder re-tags an existing upstream image under target, with no
// rebuild: pull sourceImage, push it back out under target's coordinates.
func VendorBuilder(sourceImage, target Image) Builder {
	return Builder{Kind: BuildKindVendor, SourceImage: &sourceImage, TargetImage: target}
}
