// Package version reports build information and checks corpus version
// constraints against the running build.
package version

import (
	"fmt"
	"runtime"

	"github.com/Masterminds/semver/v3"

	"github.com/teranos/qntx-dims/errors"
)

// Build information. These variables are set at build time via ldflags.
var (
	// CommitHash is the git commit hash when the binary was built
	CommitHash = "dev"

	// BuildTime is when the binary was built
	BuildTime = "unknown"

	// Version is the semantic version (if tagged)
	Version = "dev"
)

// Info contains version and build information
type Info struct {
	CommitHash string `json:"commit_hash"`
	BuildTime  string `json:"build_time"`
	Version    string `json:"version"`
	GoVersion  string `json:"go_version"`
	Platform   string `json:"platform"`
}

// Get returns the current version information
func Get() Info {
	return Info{
		CommitHash: CommitHash,
		BuildTime:  BuildTime,
		Version:    Version,
		GoVersion:  runtime.Version(),
		Platform:   fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}
}

// String returns a human-readable version string
func (i Info) String() string {
	if i.IsDev() {
		return fmt.Sprintf("qntx-dims dev (commit %s, built %s)", i.CommitHash, i.BuildTime)
	}
	return fmt.Sprintf("qntx-dims %s (commit %s, built %s)", i.Version, i.CommitHash, i.BuildTime)
}

// Short returns a short version string with just the commit hash
func (i Info) Short() string {
	if len(i.CommitHash) >= 7 {
		return i.CommitHash[:7]
	}
	return i.CommitHash
}

// IsDev reports an untagged build
func (i Info) IsDev() bool {
	return i.Version == "" || i.Version == "dev"
}

// Semver parses the version; dev builds have none
func (i Info) Semver() (*semver.Version, error) {
	if i.IsDev() {
		return nil, errors.New("dev build has no semantic version")
	}
	v, err := semver.NewVersion(i.Version)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid build version %q", i.Version)
	}
	return v, nil
}

// Satisfies checks a constraint such as ">= 0.2, < 1.0" against the build.
// Dev builds satisfy every well-formed constraint; an empty constraint is
// always satisfied.
func (i Info) Satisfies(constraint string) (bool, error) {
	if constraint == "" {
		return true, nil
	}
	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return false, errors.Wrapf(err, "invalid version constraint %q", constraint)
	}
	if i.IsDev() {
		return true, nil
	}
	v, err := i.Semver()
	if err != nil {
		return false, err
	}
	return c.Check(v), nil
}
