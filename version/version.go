package version

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/teranos/iconforge/errors"
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
	if i.Version != "dev" {
		return fmt.Sprintf("iconforge %s (commit %s, built %s)", i.Version, i.CommitHash, i.BuildTime)
	}
	return fmt.Sprintf("iconforge dev (commit %s, built %s)", i.CommitHash, i.BuildTime)
}

// Short returns a short version string with just the commit hash
func (i Info) Short() string {
	if len(i.CommitHash) >= 7 {
		return i.CommitHash[:7]
	}
	return i.CommitHash
}

// Satisfies reports whether the running tool satisfies a project's
// `requires` constraint (e.g. ">= 0.3.0, < 1.0.0"). An empty constraint
// always passes, and so do dev builds, which carry no release number.
func Satisfies(constraint string) error {
	return satisfies(Version, constraint)
}

func satisfies(current, constraint string) error {
	constraint = strings.TrimSpace(constraint)
	if constraint == "" {
		return nil
	}

	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return errors.Wrapf(errors.ErrInvalidConfig, "project.requires %q: %v", constraint, err)
	}

	if current == "dev" || current == "" {
		return nil
	}

	v, err := semver.NewVersion(current)
	if err != nil {
		return errors.Wrapf(err, "invalid tool version %q", current)
	}

	if !c.Check(v) {
		return errors.WithHintf(
			errors.Wrapf(errors.ErrInvalidConfig, "iconforge %s does not satisfy project.requires %q", current, constraint),
			"install an iconforge release matching %s", constraint)
	}
	return nil
}
