package scaffold

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	"github.com/go-git/go-git/v5"
	"go.yaml.in/yaml/v3"

	scaffolderr "github.com/empiricaly/create-empirica-app/internal/errors"
)

//go:embed all:templates
var builtinFS embed.FS

// DefaultTemplate is the built-in template used when none is requested.
const DefaultTemplate = "basic"

// DescriptorFile is the optional template descriptor at a template's root.
// It is never copied into the project.
const DescriptorFile = "template.yaml"

// DefaultCaretDependencies are widened when a template does not list its
// own, provided its manifest declares them.
var DefaultCaretDependencies = []string{"react", "react-dom"}

// Descriptor is the parsed template.yaml.
type Descriptor struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	// CaretDependencies is nil when the template does not list any; an
	// explicit empty list disables widening.
	CaretDependencies []string `yaml:"caret_dependencies"`
	StartCommand      string   `yaml:"start_command"`
}

// Source is an opened template tree.
type Source struct {
	Ref        string
	Kind       string // "builtin", "dir" or "git"
	FS         fs.FS
	Descriptor Descriptor

	cleanup func() error
}

// Close releases resources held by the source, such as a cloned checkout.
func (s *Source) Close() error {
	if s.cleanup == nil {
		return nil
	}
	return s.cleanup()
}

// Builtins lists the embedded template names.
func Builtins() []string {
	entries, err := fs.ReadDir(builtinFS, "templates")
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names
}

// OpenSource resolves ref to a template tree. ref is a built-in template
// name, a local directory, or a git URL, checked in that order.
func OpenSource(ctx context.Context, ref string) (*Source, error) {
	if ref == "" {
		ref = DefaultTemplate
	}

	if !strings.ContainsAny(ref, `/\:`) {
		if sub, err := fs.Sub(builtinFS, "templates/"+ref); err == nil {
			if _, err := fs.Stat(sub, "."); err == nil {
				return newSource(ref, "builtin", sub, nil)
			}
		}
	}

	if info, err := os.Stat(ref); err == nil && info.IsDir() {
		return newSource(ref, "dir", os.DirFS(ref), nil)
	}

	if IsGitURL(ref) {
		return cloneSource(ctx, ref)
	}

	err := scaffolderr.New(scaffolderr.EUsage, fmt.Sprintf("unknown template %q", ref))
	return nil, scaffolderr.WithHints(err,
		"Use a built-in template ("+strings.Join(Builtins(), ", ")+"), a local directory, or a git URL.")
}

// IsGitURL reports whether ref looks like a clonable repository URL.
func IsGitURL(ref string) bool {
	for _, prefix := range []string{"https://", "http://", "ssh://", "git://", "git@", "file://"} {
		if strings.HasPrefix(ref, prefix) {
			return true
		}
	}
	return strings.HasSuffix(ref, ".git")
}

func cloneSource(ctx context.Context, url string) (*Source, error) {
	dir, err := os.MkdirTemp("", "create-empirica-app-template-*")
	if err != nil {
		return nil, scaffolderr.Wrap(scaffolderr.ERender, "creating clone directory", err)
	}
	cleanup := func() error { return os.RemoveAll(dir) }

	_, err = git.PlainCloneContext(ctx, dir, false, &git.CloneOptions{
		URL:          url,
		Depth:        1,
		SingleBranch: true,
	})
	if err != nil {
		cleanup()
		return nil, scaffolderr.WithDetails(scaffolderr.ERender, "cloning template", err,
			map[string]string{"url": url})
	}

	return newSource(url, "git", os.DirFS(dir), cleanup)
}

func newSource(ref, kind string, fsys fs.FS, cleanup func() error) (*Source, error) {
	desc, err := LoadDescriptor(fsys)
	if err != nil {
		if cleanup != nil {
			cleanup()
		}
		return nil, scaffolderr.WithDetails(scaffolderr.ERender, "reading template descriptor", err,
			map[string]string{"template": ref})
	}
	return &Source{Ref: ref, Kind: kind, FS: fsys, Descriptor: desc, cleanup: cleanup}, nil
}

// LoadDescriptor reads template.yaml from fsys. A missing file yields an
// empty descriptor with the default start command.
func LoadDescriptor(fsys fs.FS) (Descriptor, error) {
	var d Descriptor
	data, err := fs.ReadFile(fsys, DescriptorFile)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return d, fmt.Errorf("reading %s: %w", DescriptorFile, err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, &d); err != nil {
			return d, fmt.Errorf("parsing %s: %w", DescriptorFile, err)
		}
	}

	if d.StartCommand == "" {
		d.StartCommand = "meteor"
	}
	return d, nil
}
