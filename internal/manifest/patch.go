package manifest

import (
	"fmt"
	"os"
	"strings"

	"github.com/Masterminds/semver/v3"
	scaffolderr "github.com/empiricaly/create-empirica-app/internal/errors"
	"github.com/empiricaly/create-empirica-app/internal/platform"
)

// PatchResult reports what PatchCaretRanges did to each requested entry.
type PatchResult struct {
	Patched   []string       // rewritten to ^<version>
	Unchanged []string       // already a caret range
	Skipped   []SkippedEntry // kept as-is because ^<version> is not a valid range
}

// SkippedEntry is a dependency whose caret form failed to parse.
type SkippedEntry struct {
	Name    string
	Version string
	Reason  string
}

// PatchCaretRanges rewrites the listed dependencies of the manifest at path
// from exact versions to caret ranges. Every name must be present in
// dependencies; otherwise an E_MISSING_DEPENDENCY error is returned and the
// file is not modified. An entry whose caret form would not parse keeps its
// original version and is reported in Skipped. The file is written once,
// after every entry has been processed.
func PatchCaretRanges(path string, names []string) (*PatchResult, error) {
	doc, err := Load(path)
	if err != nil {
		return nil, scaffolderr.Wrap(scaffolderr.EPatch, "loading manifest", err)
	}

	deps, ok := doc.Dependencies()
	if !ok {
		return nil, scaffolderr.Newf(scaffolderr.EMissingDependency, "missing dependencies in %s", FileName)
	}

	// Check every entry before changing anything.
	versions := make(map[string]string, len(names))
	for _, name := range names {
		raw, ok := deps.Get(name)
		if !ok {
			return nil, scaffolderr.WithDetails(scaffolderr.EMissingDependency,
				fmt.Sprintf("unable to find %s in %s", name, FileName), nil,
				map[string]string{"dependency": name, "manifest": path})
		}
		v, ok := raw.(string)
		if !ok || strings.TrimSpace(v) == "" {
			return nil, scaffolderr.WithDetails(scaffolderr.EMissingDependency,
				fmt.Sprintf("dependency %s in %s has no version string", name, FileName), nil,
				map[string]string{"dependency": name, "manifest": path})
		}
		versions[name] = v
	}

	result := &PatchResult{}
	for _, name := range names {
		version := versions[name]
		if strings.HasPrefix(version, "^") {
			result.Unchanged = append(result.Unchanged, name)
			continue
		}

		patched, err := CaretRange(version)
		if err != nil {
			result.Skipped = append(result.Skipped, SkippedEntry{
				Name:    name,
				Version: version,
				Reason:  err.Error(),
			})
			continue
		}
		deps.Set(name, patched)
		result.Patched = append(result.Patched, name)
	}

	data, err := Encode(doc)
	if err != nil {
		return nil, scaffolderr.Wrap(scaffolderr.EPatch, "encoding manifest", err)
	}

	perm := os.FileMode(0644)
	if info, err := os.Stat(path); err == nil {
		perm = info.Mode().Perm()
	}
	if err := platform.WriteFileAtomic(path, data, perm); err != nil {
		return nil, scaffolderr.Wrap(scaffolderr.EPatch, fmt.Sprintf("writing %s", path), err)
	}

	return result, nil
}

// DeclaredDependencies returns the names, in order, that the manifest at
// path lists under dependencies. A manifest without dependencies yields none.
func DeclaredDependencies(path string, names []string) ([]string, error) {
	doc, err := Load(path)
	if err != nil {
		return nil, scaffolderr.Wrap(scaffolderr.EPatch, "loading manifest", err)
	}
	deps, ok := doc.Dependencies()
	if !ok {
		return nil, nil
	}
	var declared []string
	for _, name := range names {
		if _, ok := deps.Get(name); ok {
			declared = append(declared, name)
		}
	}
	return declared, nil
}

// CaretRange returns "^"+version if that is a valid range expression.
func CaretRange(version string) (string, error) {
	candidate := "^" + version
	if _, err := semver.NewConstraint(candidate); err != nil {
		return "", fmt.Errorf("version %s would become invalid range %s: %w", version, candidate, err)
	}
	return candidate, nil
}
