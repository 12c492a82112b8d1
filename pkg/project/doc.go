// Package project inspects a host project and infers the configuration
// that drives component installation: framework variant, TypeScript usage,
// styling system, package manager, and path layout.
//
// Detection is pure read-only filesystem inspection. Each heuristic is an
// independent predicate; none of them write or depend on another's result,
// so they are individually testable against a fabricated directory tree.
package project
