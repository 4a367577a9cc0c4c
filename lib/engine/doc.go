// Package engine provides the record-store engine interface: authenticated
// create/update/delete of chirp records against a keyed collection, plus
// lookup and filtered listing. It serves as the abstraction layer over the
// concrete storage backends, adding validation, authorization and unified
// error reporting.
//
// The package focuses on:
//   - A unified interface (IEngine) for record operations across different backends
//   - Pluggable storage backend architecture through the EngineFactory pattern
//
// Key Components:
//
//   - IEngine Interface: The core abstraction defining the record operations.
//     All implementations share this common interface, allowing applications
//     to switch between backends without code changes. Every mutation is
//     atomic: validation and authorization are checked against the record
//     state immediately preceding the mutation, and a failed operation leaves
//     the store byte-for-byte unchanged.
//
//   - Error System: A structured error reporting mechanism using typed error
//     codes. Callers can distinguish validation failures, authorization
//     failures, missing keys, key collisions and corrupt stored records.
//
//   - Rules: The pure validation (topic length) and authorization (requester
//     equals stored author) checks shared by all implementations. The engine
//     never verifies signatures; requester identities arrive pre-authenticated
//     from the boundary layer.
//
// Implementations:
//
//   - Local Engine (lengine): An in-memory implementation holding encoded
//     records in a concurrent map with per-key atomic mutation. Suitable for
//     tests and single-process deployments without persistence.
//     Available in the "github.com/chirpkv/chirp/lib/engine/lengine" package.
//
//   - Persistent Engine (pengine): An implementation backed by a pebble
//     key-value database. Records survive process restarts.
//     Available in the "github.com/chirpkv/chirp/lib/engine/pengine" package.
package engine
