// Package toolchain makes sure the meteor toolchain is available before a
// project is scaffolded. A missing toolchain is installed with the official
// installer script on POSIX systems; on Windows the operator is pointed at
// the manual installer instead. An installed toolchain older than the
// configured minimum produces a warning, never a failure.
package toolchain
