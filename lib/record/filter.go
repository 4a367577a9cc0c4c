package record

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// --------------------------------------------------------------------------
// Filter Primitive
// --------------------------------------------------------------------------

// Filter is the raw query primitive: it matches an encoded record iff the
// record contains exactly Bytes at absolute byte offset Offset.
//
// A record too short for the addressed range is treated as non-matching
// rather than corrupt. This keeps List total over a store that may hold
// records of older schema versions.
type Filter struct {
	Offset int
	Bytes  []byte
}

// Matches reports whether the encoded record satisfies the filter.
func (f Filter) Matches(encoded []byte) bool {
	if f.Offset < 0 || f.Offset+len(f.Bytes) > len(encoded) {
		return false
	}
	return bytes.Equal(encoded[f.Offset:f.Offset+len(f.Bytes)], f.Bytes)
}

// MatchesAll reports whether the encoded record satisfies every filter
// (logical AND). An empty filter list matches everything.
func MatchesAll(encoded []byte, filters []Filter) bool {
	for _, f := range filters {
		if !f.Matches(encoded) {
			return false
		}
	}
	return true
}

// --------------------------------------------------------------------------
// Structured Convenience Filters
// --------------------------------------------------------------------------

// ByAuthor returns a filter matching records created by the given identity.
func ByAuthor(author Identity) Filter {
	b := make([]byte, IdentitySize)
	copy(b, author[:])
	return Filter{Offset: AuthorOffset, Bytes: b}
}

// ByTopic returns a filter matching records whose topic begins with the raw
// UTF-8 bytes of topic. For stored topics of the same length this is exact
// equality of the topic field.
func ByTopic(topic string) Filter {
	return Filter{Offset: TopicOffset, Bytes: []byte(topic)}
}

// --------------------------------------------------------------------------
// Wire Encoding
// --------------------------------------------------------------------------

// EncodeFilters packs a filter list into a single byte blob for transmission:
// 4-byte count, then per filter a 4-byte offset and a length-prefixed byte
// pattern (all little-endian).
func EncodeFilters(filters []Filter) []byte {
	size := LengthSize
	for _, f := range filters {
		size += 2*LengthSize + len(f.Bytes)
	}

	result := make([]byte, size)
	binary.LittleEndian.PutUint32(result[0:LengthSize], uint32(len(filters)))
	pos := LengthSize
	for _, f := range filters {
		binary.LittleEndian.PutUint32(result[pos:pos+LengthSize], uint32(f.Offset))
		pos += LengthSize
		binary.LittleEndian.PutUint32(result[pos:pos+LengthSize], uint32(len(f.Bytes)))
		pos += LengthSize
		copy(result[pos:pos+len(f.Bytes)], f.Bytes)
		pos += len(f.Bytes)
	}
	return result
}

// DecodeFilters is the inverse of EncodeFilters.
func DecodeFilters(data []byte) ([]Filter, error) {
	if len(data) == 0 {
		return nil, nil
	}
	if len(data) < LengthSize {
		return nil, fmt.Errorf("filter blob too short (%d bytes)", len(data))
	}

	count := binary.LittleEndian.Uint32(data[0:LengthSize])

	// Each filter occupies at least its 8 header bytes. A count the blob
	// cannot possibly hold is rejected before it sizes an allocation.
	if uint64(count) > uint64(len(data)-LengthSize)/(2*LengthSize) {
		return nil, fmt.Errorf("filter blob of %d bytes cannot hold %d filters", len(data), count)
	}

	pos := LengthSize
	filters := make([]Filter, 0, count)
	for i := uint32(0); i < count; i++ {
		if pos+2*LengthSize > len(data) {
			return nil, fmt.Errorf("filter blob too short for filter %d header", i)
		}
		offset := binary.LittleEndian.Uint32(data[pos : pos+LengthSize])
		pos += LengthSize
		patternLen := binary.LittleEndian.Uint32(data[pos : pos+LengthSize])
		pos += LengthSize
		if uint64(pos)+uint64(patternLen) > uint64(len(data)) {
			return nil, fmt.Errorf("filter blob too short for filter %d pattern of length %d", i, patternLen)
		}
		pattern := make([]byte, patternLen)
		copy(pattern, data[pos:pos+int(patternLen)])
		pos += int(patternLen)
		filters = append(filters, Filter{Offset: int(offset), Bytes: pattern})
	}
	return filters, nil
}
