// Package create runs the scaffolding state machine:
//
//	preflight-toolchain -> directory-check -> render -> manifest-patch ->
//	dependency-install -> done
//
// with failed reachable from every step. Each step blocks until its
// filesystem work or subprocess finishes. Run returns the final state and an
// error; deciding the process exit status is left to the caller.
package create
