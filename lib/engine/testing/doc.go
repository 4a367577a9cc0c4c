// Package testing provides a shared conformance test suite and benchmarks
// for engine.IEngine implementations. Every backend runs the same suite, so
// the create/update/delete semantics, the authorization rules and the filter
// behavior stay identical across implementations.
package testing
