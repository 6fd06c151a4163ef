// Package manifest reads, validates, and patches the package.json of a
// generated project. Patching widens exact dependency versions into caret
// ranges; validation checks the rendered file against an embedded JSON Schema.
package manifest
