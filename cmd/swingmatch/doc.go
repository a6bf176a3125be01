// Package main hosts the swingmatch CLI entrypoint and command graph.
//
// The Cobra command tree loads configuration once, resolves motions from the
// reference library, archive files or videos, and hands them to the
// comparison engine. Results print as tables for people or JSON for scripts,
// and each comparison is recorded in the local history database unless
// history is disabled.
//
// Keep this package thin: behaviour belongs in the internal packages and is
// only surfaced here through commands and flags.
package main
