// Package organizer moves files under a root directory into child
// directories named after their lowercased extension.
//
// Per-entry failures are collected in the returned Report instead of
// aborting the walk; only a failure to create a target directory stops it.
package organizer
