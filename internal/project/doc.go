// Package project builds the immutable inputs of a scaffolding run: the
// Request assembled from CLI arguments and the RenderConfig handed to the
// template renderer. Project names are checked against npm package naming
// rules before anything touches the filesystem.
package project
