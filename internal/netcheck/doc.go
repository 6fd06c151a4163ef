// Package netcheck decides whether the package registry can be reached
// before dependencies are installed. A failed lookup of the registry host
// falls back to a lookup of the configured HTTPS proxy, since a working proxy
// may reach a registry that local DNS cannot resolve.
package netcheck
