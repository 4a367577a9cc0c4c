// Package record defines the chirp record type, its fixed binary layout and
// the filter primitive used to query stored records by byte offset.
//
// The encoded layout is an external contract: deployed scanners address the
// author, timestamp and topic fields by absolute byte offset, so the field
// order and the offset constants exported by this package must never change
// for a published tag version.
//
// Layout (all integers little-endian):
//
//	offset  0: 8-byte discriminator tag
//	offset  8: 32-byte author identity
//	offset 40: 8-byte creation timestamp (unix seconds, int64)
//	offset 48: 4-byte topic length (raw UTF-8 bytes, not characters)
//	offset 52: topic bytes
//	then:      4-byte content length, content bytes
//
// Key Components:
//
//   - Record: the decoded form of a stored post (author, timestamp, topic,
//     content) with Encode/Decode converting to and from the wire layout.
//     Decode is the exact inverse of Encode and fails with a *CorruptError
//     on a foreign tag or a truncated buffer.
//
//   - Identity: a fixed 32-byte public identity with hex helpers. Identities
//     arrive pre-authenticated; this package only compares them.
//
//   - Filter: the raw "expect these bytes at this offset" predicate over the
//     encoded form, plus the ByAuthor and ByTopic convenience constructors
//     built on top of it.
package record
