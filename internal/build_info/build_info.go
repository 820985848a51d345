package build_info

import "runtime"

const DefaultDevVersion = "0.0.0-localdev"

// Set with -ldflags "-X github.com/launchpad-ops/tfscaffold/internal/build_info.Version=..." by the release build.
var (
	Version = DefaultDevVersion
	Commit  = "unknown"
	Date    = "unknown"
)

// IsDevBuild reports whether the binary was built without release version information.
func IsDevBuild() bool {
	return Version == "" || Version == DefaultDevVersion
}

func Platform() string {
	return runtime.GOOS + "/" + runtime.GOARCH
}
