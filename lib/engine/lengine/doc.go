// Package lengine provides the local in-memory implementation of the
// engine.IEngine interface. Records are held in encoded form in a concurrent
// map; every mutation runs inside a per-key atomic compute step, so
// authorization is always checked against the record state immediately
// preceding the mutation and concurrent writers on distinct keys never block
// each other.
//
// This implementation is not persistent and only works within a single
// process. For a store that survives restarts see the pengine package.
package lengine
