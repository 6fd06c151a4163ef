package project

import (
	"fmt"
	"path/filepath"
	"strings"

	scaffolderr "github.com/empiricaly/create-empirica-app/internal/errors"
)

// Request is created once from CLI input and passed by value through every
// stage of a run.
type Request struct {
	Name           string // validated package name (basename of Root)
	Root           string // absolute destination directory
	Template       string // built-in template name, directory, or git URL
	PackageManager string // "meteor", "npm", or "yarn"
	Verbose        bool
}

// Options carries the optional parts of a Request.
type Options struct {
	Template       string
	PackageManager string
	Verbose        bool
}

// NewRequest resolves dir against the working directory and validates the
// resulting project name. No filesystem mutation happens here.
func NewRequest(dir string, opts Options) (Request, error) {
	if strings.TrimSpace(dir) == "" {
		return Request{}, scaffolderr.New(scaffolderr.EUsage, "please specify the project directory")
	}

	root, err := filepath.Abs(dir)
	if err != nil {
		return Request{}, scaffolderr.Wrap(scaffolderr.EInternal, fmt.Sprintf("resolving %s", dir), err)
	}
	name := filepath.Base(root)

	if err := CheckName(name); err != nil {
		return Request{}, err
	}

	return Request{
		Name:           name,
		Root:           root,
		Template:       opts.Template,
		PackageManager: opts.PackageManager,
		Verbose:        opts.Verbose,
	}, nil
}
