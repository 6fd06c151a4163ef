// Package cli defines the Cobra command tree for create-empirica-app. The
// root command scaffolds a project and config manages user settings.
// Commands parse flags and wire collaborators; the run itself lives in
// internal/create.
package cli
