package record

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
)

// --------------------------------------------------------------------------
// Layout Constants
// --------------------------------------------------------------------------

// Layout constants. These are part of the external contract (scanners filter
// on absolute offsets) and must never change for a published tag.
const (
	TagSize       = 8  // Discriminator tag size
	IdentitySize  = 32 // Author identity size
	TimestampSize = 8  // Creation timestamp size
	LengthSize    = 4  // Length prefix size (uint32 LE)

	AuthorOffset      = TagSize                           // 8
	TimestampOffset   = AuthorOffset + IdentitySize       // 40
	TopicLengthOffset = TimestampOffset + TimestampSize   // 48
	TopicOffset       = TopicLengthOffset + LengthSize    // 52

	// minEncodedSize is the size of a record with empty topic and content.
	minEncodedSize = TopicOffset + LengthSize
)

// recordTag identifies the record kind in the encoded form. Any other tag is
// treated as corrupt input by Decode.
var recordTag = [TagSize]byte{'C', 'H', 'R', 'P', 'T', 'W', 'T', 1}

// --------------------------------------------------------------------------
// Identity Type
// --------------------------------------------------------------------------

// Identity is a fixed-width public identity. It is bound to a record once at
// creation time and compared byte-for-byte during authorization.
type Identity [IdentitySize]byte

// String returns the hex representation of the identity.
func (id Identity) String() string {
	return hex.EncodeToString(id[:])
}

// ParseIdentity parses a 64-character hex string into an Identity.
func ParseIdentity(s string) (Identity, error) {
	var id Identity
	raw, err := hex.DecodeString(s)
	if err != nil {
		return id, fmt.Errorf("invalid identity %q: %w", s, err)
	}
	if len(raw) != IdentitySize {
		return id, fmt.Errorf("invalid identity %q: got %d bytes, want %d", s, len(raw), IdentitySize)
	}
	copy(id[:], raw)
	return id, nil
}

// IdentityFromBytes converts a raw byte slice into an Identity.
// The slice must be exactly IdentitySize bytes long.
func IdentityFromBytes(b []byte) (Identity, error) {
	var id Identity
	if len(b) != IdentitySize {
		return id, fmt.Errorf("invalid identity: got %d bytes, want %d", len(b), IdentitySize)
	}
	copy(id[:], b)
	return id, nil
}

// --------------------------------------------------------------------------
// Record Type
// --------------------------------------------------------------------------

// Record is the decoded form of a stored post. Author and Timestamp are set
// once at creation and never change; Topic and Content are mutable.
type Record struct {
	Author    Identity
	Timestamp int64
	Topic     string
	Content   string
}

// Keyed pairs a record with the storage key it is stored under.
type Keyed struct {
	Key    string
	Record Record
}

// SizeBytes returns the exact number of bytes Encode will produce.
func (r *Record) SizeBytes() int {
	return minEncodedSize + len(r.Topic) + len(r.Content)
}

// Encode serializes the record into the fixed layout described in the
// package documentation. The output is deterministic.
func (r *Record) Encode() []byte {
	result := make([]byte, r.SizeBytes())

	copy(result[:TagSize], recordTag[:])
	copy(result[AuthorOffset:AuthorOffset+IdentitySize], r.Author[:])
	binary.LittleEndian.PutUint64(result[TimestampOffset:TimestampOffset+TimestampSize], uint64(r.Timestamp))

	// Topic (length prefix counts raw bytes, not characters)
	topicBytes := []byte(r.Topic)
	binary.LittleEndian.PutUint32(result[TopicLengthOffset:TopicOffset], uint32(len(topicBytes)))
	pos := TopicOffset
	copy(result[pos:pos+len(topicBytes)], topicBytes)
	pos += len(topicBytes)

	// Content
	contentBytes := []byte(r.Content)
	binary.LittleEndian.PutUint32(result[pos:pos+LengthSize], uint32(len(contentBytes)))
	pos += LengthSize
	copy(result[pos:pos+len(contentBytes)], contentBytes)

	return result
}

// Decode extracts all record fields from an encoded buffer. It is the exact
// inverse of Encode and returns a *CorruptError if the discriminator tag does
// not match or a length prefix would read past the end of the buffer.
func (r *Record) Decode(data []byte) error {
	if len(data) < minEncodedSize {
		return newCorruptError("buffer too short for record header (%d bytes)", len(data))
	}

	for i := 0; i < TagSize; i++ {
		if data[i] != recordTag[i] {
			return newCorruptError("unknown discriminator tag %x", data[:TagSize])
		}
	}

	var author Identity
	copy(author[:], data[AuthorOffset:AuthorOffset+IdentitySize])
	timestamp := int64(binary.LittleEndian.Uint64(data[TimestampOffset : TimestampOffset+TimestampSize]))

	topicLen := binary.LittleEndian.Uint32(data[TopicLengthOffset:TopicOffset])
	pos := TopicOffset
	if uint64(pos)+uint64(topicLen)+uint64(LengthSize) > uint64(len(data)) {
		return newCorruptError("topic length %d exceeds buffer", topicLen)
	}
	topic := string(data[pos : pos+int(topicLen)])
	pos += int(topicLen)

	contentLen := binary.LittleEndian.Uint32(data[pos : pos+LengthSize])
	pos += LengthSize
	if uint64(pos)+uint64(contentLen) > uint64(len(data)) {
		return newCorruptError("content length %d exceeds buffer", contentLen)
	}
	content := string(data[pos : pos+int(contentLen)])

	r.Author = author
	r.Timestamp = timestamp
	r.Topic = topic
	r.Content = content
	return nil
}

// --------------------------------------------------------------------------
// Corrupt Record Error
// --------------------------------------------------------------------------

// CorruptError reports a structural decode failure. It is a distinct type so
// callers can tell "corrupt store" apart from validation or authorization
// failures.
type CorruptError struct {
	Reason string
}

func (e *CorruptError) Error() string {
	return fmt.Sprintf("corrupt record: %s", e.Reason)
}

func newCorruptError(format string, args ...interface{}) *CorruptError {
	return &CorruptError{Reason: fmt.Sprintf(format, args...)}
}
