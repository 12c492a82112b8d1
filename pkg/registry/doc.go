// Package registry fetches component descriptors from a loom registry.
//
// A registry is a plain HTTP+JSON service with three endpoints:
//
//	GET /registry/components        list all descriptors
//	GET /registry/components/{id}   one descriptor, or 404
//	GET /registry/search?q=         descriptors matching a query
//
// Client wraps these endpoints with response validation, retry with
// backoff on transient failures, an in-memory per-instance memo keyed by
// component id, and an optional persistent cache backend (see pkg/cache).
//
// Server is a chi-based implementation of the same protocol serving
// descriptors from a local directory, intended for developing and testing
// registries before publishing them.
package registry
