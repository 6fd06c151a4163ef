package scaffold

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"text/template"

	"github.com/bmatcuk/doublestar/v4"

	scaffolderr "github.com/empiricaly/create-empirica-app/internal/errors"
	"github.com/empiricaly/create-empirica-app/internal/manifest"
	"github.com/empiricaly/create-empirica-app/internal/platform"
	"github.com/empiricaly/create-empirica-app/internal/project"
)

// IgnorePatterns are skipped entirely when walking a template. Matching
// directories are not descended into.
var IgnorePatterns = []string{
	".meteor/local",
	"**/node_modules",
	"**/.git",
	DescriptorFile,
}

// Entry is one planned file copy.
type Entry struct {
	Source string // slash-separated path in the template
	Dest   string // slash-separated path in the project, suffix stripped
	Render bool
	Mode   fs.FileMode
}

// Result holds the outcome of a render.
type Result struct {
	Files    []string // written, relative to the project root
	Skipped  []string // render targets whose output was blank
	Warnings []string
}

// Plan walks src and computes every destination path before anything is
// written. Two sources mapping to one destination is an E_RENDER error.
func Plan(src fs.FS, rules Rules) ([]Entry, error) {
	var entries []Entry
	owners := make(map[string]string)

	err := fs.WalkDir(src, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if p == "." {
			return nil
		}
		if ignored(p) {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return err
		}
		if !info.Mode().IsRegular() {
			return nil
		}

		base := rules.Apply(path.Base(p))
		render := strings.HasSuffix(base, TemplateSuffix)
		base = strings.TrimSuffix(base, TemplateSuffix)
		if base == "" || strings.Contains(base, "/") {
			return scaffolderr.WithDetails(scaffolderr.ERender, "rename produced an invalid file name", nil,
				map[string]string{"source": p, "name": base})
		}
		dest := path.Join(path.Dir(p), base)

		if prev, ok := owners[dest]; ok {
			return scaffolderr.WithDetails(scaffolderr.ERender, "two template files map to the same destination", nil,
				map[string]string{"destination": dest, "source": p, "previous_source": prev})
		}
		owners[dest] = p

		entries = append(entries, Entry{
			Source: p,
			Dest:   dest,
			Render: render,
			Mode:   info.Mode().Perm() | 0600,
		})
		return nil
	})
	if err != nil {
		if _, ok := scaffolderr.As(err); ok {
			return nil, err
		}
		return nil, scaffolderr.Wrap(scaffolderr.ERender, "walking template", err)
	}
	return entries, nil
}

func ignored(p string) bool {
	for _, pattern := range IgnorePatterns {
		if ok, _ := doublestar.Match(pattern, p); ok {
			return true
		}
	}
	return false
}

// Existing returns the destinations planned from src that are already
// present under destRoot, sorted.
func Existing(src fs.FS, destRoot string, rules Rules) ([]string, error) {
	entries, err := Plan(src, rules)
	if err != nil {
		return nil, err
	}
	var found []string
	for _, e := range entries {
		if _, err := os.Lstat(filepath.Join(destRoot, filepath.FromSlash(e.Dest))); err == nil {
			found = append(found, e.Dest)
		}
	}
	sort.Strings(found)
	return found, nil
}

// Render copies src into destRoot. Render targets are executed with cfg as
// the template data; a reference to an unknown field fails the render. Any
// failure aborts the render and leaves what was already written in place.
func Render(src fs.FS, destRoot string, cfg project.RenderConfig, rules Rules) (*Result, error) {
	entries, err := Plan(src, rules)
	if err != nil {
		return nil, err
	}

	result := &Result{}
	for _, e := range entries {
		data, err := fs.ReadFile(src, e.Source)
		if err != nil {
			return result, renderErr("reading", e, err)
		}

		if e.Render {
			tmpl, err := template.New(e.Source).Option("missingkey=error").Parse(string(data))
			if err != nil {
				return result, renderErr("parsing", e, err)
			}
			var buf bytes.Buffer
			if err := tmpl.Execute(&buf, cfg); err != nil {
				return result, renderErr("executing", e, err)
			}
			if len(bytes.TrimSpace(buf.Bytes())) == 0 {
				result.Skipped = append(result.Skipped, e.Dest)
				continue
			}
			data = buf.Bytes()
		}

		out := filepath.Join(destRoot, filepath.FromSlash(e.Dest))
		if err := os.MkdirAll(filepath.Dir(out), 0755); err != nil {
			return result, renderErr("creating directory for", e, err)
		}
		if err := os.WriteFile(out, data, e.Mode); err != nil {
			return result, renderErr("writing", e, err)
		}
		if err := platform.SetMode(out, e.Mode); err != nil {
			return result, renderErr("setting mode of", e, err)
		}
		result.Files = append(result.Files, e.Dest)
	}
	sort.Strings(result.Files)

	// Validate the generated manifest against JSON Schema.
	manifestFile := filepath.Join(destRoot, manifest.FileName)
	if _, err := os.Stat(manifestFile); err == nil {
		valResult, valErr := manifest.ValidateFile(manifestFile)
		if valErr != nil {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("Could not validate %s: %v", manifest.FileName, valErr))
		} else if !valResult.Valid {
			for _, issue := range valResult.Issues {
				result.Warnings = append(result.Warnings, fmt.Sprintf("%s: %s", manifest.FileName, issue))
			}
		}
	}

	return result, nil
}

func renderErr(verb string, e Entry, err error) error {
	return scaffolderr.WithDetails(scaffolderr.ERender, fmt.Sprintf("%s %s", verb, e.Source), err,
		map[string]string{"source": e.Source, "destination": e.Dest})
}
