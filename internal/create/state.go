package create

import (
	"github.com/empiricaly/create-empirica-app/internal/manifest"
	"github.com/empiricaly/create-empirica-app/internal/scaffold"
	"github.com/empiricaly/create-empirica-app/internal/toolchain"
)

// State is a step of a run.
type State string

// Run states, in order.
const (
	StatePreflightToolchain State = "preflight-toolchain"
	StateDirectoryCheck     State = "directory-check"
	StateRender             State = "render"
	StateManifestPatch      State = "manifest-patch"
	StateDependencyInstall  State = "dependency-install"
	StateDone               State = "done"
	StateFailed             State = "failed"
)

// Outcome records how far a run got and what each step produced.
type Outcome struct {
	State   State
	Visited []State
	// FailedIn is the step that failed, when State is StateFailed.
	FailedIn State

	Toolchain *toolchain.Status
	Render    *scaffold.Result
	Patch     *manifest.PatchResult
	Offline   bool
	Warnings  []string
}

func (o *Outcome) enter(s State) {
	o.State = s
	o.Visited = append(o.Visited, s)
}

func (o *Outcome) fail(err error) (*Outcome, error) {
	o.FailedIn = o.State
	o.enter(StateFailed)
	return o, err
}

func (o *Outcome) warn(msg string) {
	o.Warnings = append(o.Warnings, msg)
}
