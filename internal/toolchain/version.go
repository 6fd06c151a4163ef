package toolchain

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"
)

var versionLine = regexp.MustCompile(`Meteor\s+v?(\d+(?:\.\d+)*)`)

// ParseVersion extracts the release from `meteor --version` output such as
// "Meteor 1.8.0.2". Components past the patch level are dropped.
func ParseVersion(output string) (*semver.Version, error) {
	m := versionLine.FindStringSubmatch(output)
	if m == nil {
		return nil, fmt.Errorf("unrecognized meteor version output %q", strings.TrimSpace(output))
	}
	parts := strings.Split(m[1], ".")
	if len(parts) > 3 {
		parts = parts[:3]
	}
	return semver.NewVersion(strings.Join(parts, "."))
}

// Satisfies reports whether v meets constraint. A bare version such as
// "1.8.0" is read as ">= 1.8.0".
func Satisfies(v *semver.Version, constraint string) (bool, error) {
	constraint = strings.TrimSpace(constraint)
	if _, err := semver.NewVersion(strings.TrimPrefix(constraint, "v")); err == nil {
		constraint = ">= " + constraint
	}
	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return false, fmt.Errorf("parsing constraint %q: %w", constraint, err)
	}
	return c.Check(v), nil
}
