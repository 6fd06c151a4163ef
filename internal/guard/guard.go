package guard

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// AllowedEntries may exist in a destination without being conflicts. They
// are typically created by a VCS host or an IDE before the project exists.
var AllowedEntries = map[string]bool{
	".DS_Store":      true,
	"Thumbs.db":      true,
	".git":           true,
	".gitignore":     true,
	".idea":          true,
	"README.md":      true,
	"LICENSE":        true,
	"web.iml":        true,
	".hg":            true,
	".hgignore":      true,
	".hgcheck":       true,
	".npmignore":     true,
	"mkdocs.yml":     true,
	"docs":           true,
	".travis.yml":    true,
	".gitlab-ci.yml": true,
	".gitattributes": true,
}

// StaleArtifactPrefixes match log files from a failed install. They are
// removed silently on the next run. The prefixes also catch rotated files
// such as npm-debug.log.12345.
var StaleArtifactPrefixes = []string{
	"npm-debug.log",
	"yarn-error.log",
	"yarn-debug.log",
}

// Report is the outcome of Assess. It is computed fresh on every call.
type Report struct {
	Conflicts []string // entries that block scaffolding, sorted
	Removed   []string // stale artifacts deleted during the check, sorted
	Owned     bool     // a matching marker from a prior failed run was found
}

// Safe reports whether scaffolding may write into the directory.
func (r *Report) Safe() bool {
	return len(r.Conflicts) == 0
}

// Assess lists root's immediate entries (creating root if absent), removes
// stale artifacts, and classifies what remains. name is the project name
// used to match an ownership marker.
func Assess(root, name string) (*Report, error) {
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("creating %s: %w", root, err)
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", root, err)
	}

	report := &Report{}
	var remaining []string

	for _, e := range entries {
		if isStaleArtifact(e.Name()) {
			if err := os.RemoveAll(filepath.Join(root, e.Name())); err != nil {
				return nil, fmt.Errorf("removing stale artifact %s: %w", e.Name(), err)
			}
			report.Removed = append(report.Removed, e.Name())
			continue
		}
		remaining = append(remaining, e.Name())
	}

	marker, err := ReadMarker(root)
	if err != nil {
		return nil, err
	}
	if marker != nil && marker.Name == name {
		report.Owned = true
		return report, nil
	}

	for _, entry := range remaining {
		if AllowedEntries[entry] {
			continue
		}
		report.Conflicts = append(report.Conflicts, entry)
	}

	return report, nil
}

func isStaleArtifact(name string) bool {
	for _, prefix := range StaleArtifactPrefixes {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return false
}

// PrintConflicts writes operator guidance for an unsafe report.
func PrintConflicts(w io.Writer, name string, report *Report) {
	fmt.Fprintf(w, "The directory %s contains files that could conflict:\n\n", name)
	for _, c := range report.Conflicts {
		fmt.Fprintf(w, "  %s\n", c)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Either try using a new directory name, or remove the files listed above.")
}
