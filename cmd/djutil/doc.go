// Package main hosts the djutil CLI entrypoint and command graph.
//
// The Cobra-based command tree translates terminal invocations into the two
// matching pipelines (offline file matching and online catalog linking) plus
// the supporting format, dependency, and configuration commands. It
// centralizes configuration resolution and structured logging setup so
// subcommands can focus on user experience instead of wiring.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
