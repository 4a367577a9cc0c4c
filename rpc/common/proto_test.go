package common

import (
	"testing"

	"github.com/chirpkv/chirp/lib/engine"
	"github.com/chirpkv/chirp/lib/record"
	"github.com/google/go-cmp/cmp"
)

// TestPackRecordsRoundTrip tests that a keyed record list survives packing
func TestPackRecordsRoundTrip(t *testing.T) {
	var author record.Identity
	for i := range author {
		author[i] = 7
	}

	tests := []struct {
		name    string
		records []record.Keyed
	}{
		{"empty", nil},
		{"single", []record.Keyed{
			{Key: "a", Record: record.Record{Author: author, Timestamp: 42, Topic: "go", Content: "hello"}},
		}},
		{"multiple", []record.Keyed{
			{Key: "a", Record: record.Record{Author: author, Timestamp: 1, Topic: "", Content: ""}},
			{Key: "long-key-with-dashes", Record: record.Record{Author: author, Timestamp: 2, Topic: "t", Content: "c"}},
			{Key: "", Record: record.Record{Author: author, Timestamp: 3, Topic: "日本語", Content: "multibyte"}},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			packed := PackRecords(tt.records)
			got, err := UnpackRecords(packed)
			if err != nil {
				t.Fatalf("UnpackRecords failed: %v", err)
			}
			if len(got) != len(tt.records) {
				t.Fatalf("got %d records, want %d", len(got), len(tt.records))
			}
			for i := range got {
				if diff := cmp.Diff(tt.records[i], got[i]); diff != "" {
					t.Errorf("record %d mismatch (-want +got):\n%s", i, diff)
				}
			}
		})
	}
}

// TestUnpackRecordsCorrupt tests that truncated blobs are rejected without panicking
func TestUnpackRecordsCorrupt(t *testing.T) {
	var author record.Identity
	packed := PackRecords([]record.Keyed{
		{Key: "a", Record: record.Record{Author: author, Timestamp: 1, Topic: "t", Content: "c"}},
	})

	// Every strict prefix must fail cleanly (the empty blob means "no records")
	for i := 1; i < len(packed); i++ {
		if _, err := UnpackRecords(packed[:i]); err == nil {
			t.Errorf("UnpackRecords accepted a %d byte prefix of a %d byte blob", i, len(packed))
		}
	}

	// A count field the blob cannot possibly hold must be rejected by
	// arithmetic, not by attempting an allocation sized from it.
	huge := []byte{0xff, 0xff, 0xff, 0xff, 0, 0, 0, 0, 0, 0, 0, 0}
	if _, err := UnpackRecords(huge); err == nil {
		t.Errorf("UnpackRecords accepted a 12 byte blob claiming %d entries", uint32(0xffffffff))
	}

	// Off by one: room for one entry header, count claims two.
	offByOne := []byte{2, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}
	if _, err := UnpackRecords(offByOne); err == nil {
		t.Errorf("UnpackRecords accepted a count exceeding the blob size by one entry")
	}
}

// TestMessageErrorRoundTrip tests that error codes survive the message fields
func TestMessageErrorRoundTrip(t *testing.T) {
	msg := NewDeleteResponse(engine.NewError(engine.RetCUnauthorized, "requester is not the author"))

	err := msg.AsError()
	if err == nil {
		t.Fatal("expected an error")
	}
	if got := engine.CodeOf(err); got != engine.RetCUnauthorized {
		t.Errorf("got code %v, want %v", got, engine.RetCUnauthorized)
	}

	// No error -> nil
	if err := NewDeleteResponse(nil).AsError(); err != nil {
		t.Errorf("expected nil error, got %v", err)
	}

	// An error message without a code maps to an internal error
	plain := &Message{MsgType: MsgTError, Err: "boom"}
	if got := engine.CodeOf(plain.AsError()); got != engine.RetCInternalError {
		t.Errorf("got code %v, want %v", got, engine.RetCInternalError)
	}
}
