// Package installer resolves component closures and writes their files
// into a host project.
//
// Resolve expands a requested set of component ids into the full closure
// over registry dependencies. InstallAll places each resolved component's
// files under the target directory, adapting content to the detected
// project profile, and aggregates every external package name referenced
// by the installed set. InstallDependencies hands that set to the host's
// package manager in a single invocation.
//
// Resolution-phase failures abort before any filesystem mutation.
// Installation-phase failures are isolated per component: one conflicting
// file never blocks the remaining components.
package installer
