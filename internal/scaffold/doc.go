// Package scaffold copies an application template into a project directory.
// Each file's destination name is computed by an ordered list of rename
// rules; names that end in ".tmpl" after renaming are executed as Go
// templates over the project's RenderConfig, and the suffix is dropped.
// Templates come from the embedded set, a local directory, or a git URL.
package scaffold
