package record

import (
	"bytes"
	"encoding/binary"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func testIdentity(b byte) Identity {
	var id Identity
	for i := range id {
		id[i] = b
	}
	return id
}

// TestSizeBytes tests the SizeBytes method
func TestSizeBytes(t *testing.T) {
	tests := []struct {
		name     string
		record   Record
		expected int
	}{
		{
			name: "Record with topic and content",
			record: Record{
				Author:    testIdentity(1),
				Timestamp: 100,
				Topic:     "golang",
				Content:   "hello world",
			},
			expected: 8 + 32 + 8 + 4 + 6 + 4 + 11, // Tag + Author + Timestamp + TopicLen + Topic + ContentLen + Content
		},
		{
			name: "Record with empty topic and content",
			record: Record{
				Author:    testIdentity(1),
				Timestamp: 100,
			},
			expected: 8 + 32 + 8 + 4 + 0 + 4 + 0,
		},
		{
			name: "Record with multi-byte topic characters",
			record: Record{
				Author:    testIdentity(1),
				Timestamp: 100,
				Topic:     "héllo", // é is 2 bytes in UTF-8
				Content:   "x",
			},
			expected: 8 + 32 + 8 + 4 + 6 + 4 + 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if size := tt.record.SizeBytes(); size != tt.expected {
				t.Errorf("SizeBytes() = %v, want %v", size, tt.expected)
			}
			if got := len(tt.record.Encode()); got != tt.expected {
				t.Errorf("len(Encode()) = %v, want %v", got, tt.expected)
			}
		})
	}
}

// TestEncodeDecode tests that Decode is the exact inverse of Encode
func TestEncodeDecode(t *testing.T) {
	tests := []struct {
		name   string
		record Record
	}{
		{
			name: "Standard record",
			record: Record{
				Author:    testIdentity(7),
				Timestamp: 1735686000,
				Topic:     "golang",
				Content:   "generics are fine actually",
			},
		},
		{
			name: "Empty topic",
			record: Record{
				Author:    testIdentity(7),
				Timestamp: 1735686000,
				Content:   "no topic here",
			},
		},
		{
			name: "Empty content",
			record: Record{
				Author:    testIdentity(7),
				Timestamp: 1735686000,
				Topic:     "quiet",
			},
		},
		{
			name: "Empty topic and content",
			record: Record{
				Author:    testIdentity(7),
				Timestamp: 1,
			},
		},
		{
			name: "Single character topic",
			record: Record{
				Author:    testIdentity(0xff),
				Timestamp: -1,
				Topic:     "a",
				Content:   "b",
			},
		},
		{
			name: "Maximum length topic",
			record: Record{
				Author:    testIdentity(42),
				Timestamp: 1735686000,
				Topic:     strings.Repeat("t", 50),
				Content:   strings.Repeat("c", 1000),
			},
		},
		{
			name: "Multi-byte characters",
			record: Record{
				Author:    testIdentity(42),
				Timestamp: 1735686000,
				Topic:     "héllo wörld",
				Content:   "日本語のツイート",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			encoded := tt.record.Encode()

			var decoded Record
			if err := decoded.Decode(encoded); err != nil {
				t.Fatalf("Decode() failed: %v", err)
			}

			if diff := cmp.Diff(tt.record, decoded); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}

			// Encoding must be deterministic
			if !bytes.Equal(encoded, decoded.Encode()) {
				t.Errorf("re-encoding produced different bytes")
			}
		})
	}
}

// TestLayoutOffsets pins the external byte layout. These offsets are a
// published contract and must never shift.
func TestLayoutOffsets(t *testing.T) {
	author := testIdentity(9)
	r := Record{
		Author:    author,
		Timestamp: 0x0102030405060708,
		Topic:     "topic",
		Content:   "content",
	}
	encoded := r.Encode()

	if AuthorOffset != 8 || TimestampOffset != 40 || TopicLengthOffset != 48 || TopicOffset != 52 {
		t.Fatalf("layout constants changed: author=%d timestamp=%d topicLen=%d topic=%d",
			AuthorOffset, TimestampOffset, TopicLengthOffset, TopicOffset)
	}

	if !bytes.Equal(encoded[AuthorOffset:AuthorOffset+IdentitySize], author[:]) {
		t.Errorf("author bytes not at offset %d", AuthorOffset)
	}

	if got := binary.LittleEndian.Uint64(encoded[TimestampOffset : TimestampOffset+8]); got != 0x0102030405060708 {
		t.Errorf("timestamp at offset %d = %x, want %x", TimestampOffset, got, uint64(0x0102030405060708))
	}

	if got := binary.LittleEndian.Uint32(encoded[TopicLengthOffset:TopicOffset]); got != 5 {
		t.Errorf("topic length prefix = %d, want 5", got)
	}

	if got := string(encoded[TopicOffset : TopicOffset+5]); got != "topic" {
		t.Errorf("topic bytes at offset %d = %q, want %q", TopicOffset, got, "topic")
	}
}

// TestDecodeCorrupt tests structural failure detection
func TestDecodeCorrupt(t *testing.T) {
	valid := (&Record{Author: testIdentity(1), Timestamp: 42, Topic: "t", Content: "c"}).Encode()

	tests := []struct {
		name string
		data []byte
	}{
		{name: "Empty buffer", data: []byte{}},
		{name: "Nil buffer", data: nil},
		{name: "Truncated header", data: valid[:20]},
		{name: "Truncated topic", data: valid[:TopicOffset]},
		{
			name: "Wrong tag",
			data: append([]byte{'X', 'X', 'X', 'X', 'X', 'X', 'X', 'X'}, valid[TagSize:]...),
		},
		{
			name: "Topic length past end",
			data: func() []byte {
				b := bytes.Clone(valid)
				binary.LittleEndian.PutUint32(b[TopicLengthOffset:TopicOffset], 10000)
				return b
			}(),
		},
		{
			name: "Content length past end",
			data: func() []byte {
				b := bytes.Clone(valid)
				binary.LittleEndian.PutUint32(b[TopicOffset+1:TopicOffset+5], 10000)
				return b
			}(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var r Record
			err := r.Decode(tt.data)
			if err == nil {
				t.Fatalf("Decode() succeeded on corrupt input")
			}
			var corrupt *CorruptError
			if !errors.As(err, &corrupt) {
				t.Errorf("Decode() returned %T, want *CorruptError", err)
			}
		})
	}
}

// TestParseIdentity tests identity parsing
func TestParseIdentity(t *testing.T) {
	id := testIdentity(0xab)

	parsed, err := ParseIdentity(id.String())
	if err != nil {
		t.Fatalf("ParseIdentity(%q) failed: %v", id.String(), err)
	}
	if parsed != id {
		t.Errorf("ParseIdentity round trip mismatch")
	}

	if _, err := ParseIdentity("zz"); err == nil {
		t.Errorf("expected error for non-hex identity")
	}
	if _, err := ParseIdentity("abcd"); err == nil {
		t.Errorf("expected error for short identity")
	}

	if _, err := IdentityFromBytes(make([]byte, 31)); err == nil {
		t.Errorf("expected error for 31-byte identity")
	}
	if _, err := IdentityFromBytes(id[:]); err != nil {
		t.Errorf("IdentityFromBytes failed on valid input: %v", err)
	}
}
