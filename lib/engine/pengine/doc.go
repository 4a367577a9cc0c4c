// Package pengine provides the persistent implementation of the
// engine.IEngine interface, backed by a pebble key-value database. Encoded
// records are stored under their raw key bytes, so the store survives
// process restarts.
//
// Mutations take an exclusive lock while reads share one: the
// authorize-then-write sequence of an update or delete must observe the
// record state immediately preceding the mutation, and pebble itself only
// guarantees atomicity per write, not across the read-modify-write cycle.
package pengine
