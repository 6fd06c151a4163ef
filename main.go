package main

import (
	"os"

	"github.com/empiricaly/create-empirica-app/internal/cli"
	scaffolderr "github.com/empiricaly/create-empirica-app/internal/errors"
)

// version, commit, and date are set via ldflags at build time.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	err := cli.Execute(version, commit, date)
	if err != nil {
		scaffolderr.Print(os.Stderr, err)
	}
	os.Exit(scaffolderr.ExitCode(err))
}
