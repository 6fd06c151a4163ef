// Package guard decides whether a destination directory is safe to scaffold
// into. It removes log files left by a previously failed dependency install,
// tolerates a fixed allow-list of benign entries, and recognises directories
// owned by an interrupted run of this tool through a marker file.
package guard
