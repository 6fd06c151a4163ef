package project

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	scaffolderr "github.com/empiricaly/create-empirica-app/internal/errors"
)

const maxNameLength = 214

var urlSafe = regexp.MustCompile(`^[A-Za-z0-9\-_.!~*'()]+$`)

var blacklisted = map[string]bool{
	"node_modules": true,
	"favicon.ico":  true,
}

var coreModules = map[string]bool{
	"assert": true, "async_hooks": true, "buffer": true, "child_process": true,
	"cluster": true, "console": true, "constants": true, "crypto": true,
	"dgram": true, "dns": true, "domain": true, "events": true, "fs": true,
	"http": true, "http2": true, "https": true, "inspector": true,
	"module": true, "net": true, "os": true, "path": true, "perf_hooks": true,
	"process": true, "punycode": true, "querystring": true, "readline": true,
	"repl": true, "stream": true, "string_decoder": true, "sys": true,
	"timers": true, "tls": true, "trace_events": true, "tty": true,
	"url": true, "util": true, "v8": true, "vm": true, "worker_threads": true,
	"zlib": true,
}

// ReservedDependencies are names a new project may not take because the
// generated package.json depends on packages with the same name.
var ReservedDependencies = []string{"react", "react-dom", "react-scripts"}

// Violations returns every npm naming-rule violation for name. An empty
// result means the name is valid for a new package.
func Violations(name string) []string {
	var v []string

	if name == "" {
		return []string{"name length must be greater than zero"}
	}
	if strings.HasPrefix(name, ".") {
		v = append(v, "name cannot start with a period")
	}
	if strings.HasPrefix(name, "_") {
		v = append(v, "name cannot start with an underscore")
	}
	if strings.TrimSpace(name) != name {
		v = append(v, "name cannot contain leading or trailing spaces")
	}
	if blacklisted[strings.ToLower(name)] {
		v = append(v, fmt.Sprintf("%s is a blacklisted name", name))
	}
	if coreModules[name] {
		v = append(v, fmt.Sprintf("%s is a core module name", name))
	}
	if len(name) > maxNameLength {
		v = append(v, fmt.Sprintf("name can no longer contain more than %d characters", maxNameLength))
	}
	if strings.ToLower(name) != name {
		v = append(v, "name can no longer contain capital letters")
	}
	if strings.ContainsAny(name, "~'!()*") {
		v = append(v, `name can no longer contain special characters ("~'!()*")`)
	}
	if !urlSafe.MatchString(name) {
		v = append(v, "name can only contain URL-friendly characters")
	}

	return v
}

// CheckName validates name against npm naming rules and the reserved
// dependency names. It returns an E_INVALID_PROJECT_NAME error listing every
// violation.
func CheckName(name string) error {
	if v := Violations(name); len(v) > 0 {
		lines := make([]string, 0, len(v))
		for _, msg := range v {
			lines = append(lines, "  *  "+msg)
		}
		return scaffolderr.WithHints(
			scaffolderr.Newf(scaffolderr.EInvalidProjectName,
				"could not create a project called %q because of npm naming restrictions", name),
			lines...,
		)
	}

	reserved := append([]string(nil), ReservedDependencies...)
	sort.Strings(reserved)
	for _, dep := range reserved {
		if dep != name {
			continue
		}
		hints := []string{"Due to the way npm works, the following names are not allowed:", ""}
		for _, d := range reserved {
			hints = append(hints, "  "+d)
		}
		hints = append(hints, "", "Please choose a different project name.")
		return scaffolderr.WithHints(
			scaffolderr.Newf(scaffolderr.EInvalidProjectName,
				"cannot create a project called %q because a dependency with the same name exists", name),
			hints...,
		)
	}
	return nil
}
