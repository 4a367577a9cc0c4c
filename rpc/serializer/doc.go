// Package serializer provides message serialization for the chirp RPC
// system, converting between common.Message objects and byte arrays for
// network transmission.
//
// Three interchangeable implementations are provided:
//
//   - Binary: A hand-written binary format using presence flags and
//     length-prefixed fields. Fastest and most compact; the default.
//
//   - JSON: Human-readable encoding, useful for debugging the boundary with
//     standard HTTP tooling.
//
//   - GOB: Go's native binary encoding.
//
// All implementations satisfy the IRPCSerializer interface and round-trip
// every Message exactly; client and server must simply agree on one format.
package serializer
