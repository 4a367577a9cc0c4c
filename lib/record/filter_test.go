package record

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

// TestFilterMatches tests the raw offset+bytes primitive
func TestFilterMatches(t *testing.T) {
	author := testIdentity(3)
	encoded := (&Record{
		Author:    author,
		Timestamp: 100,
		Topic:     "golang",
		Content:   "some content",
	}).Encode()

	tests := []struct {
		name   string
		filter Filter
		want   bool
	}{
		{
			name:   "Author match",
			filter: Filter{Offset: AuthorOffset, Bytes: author[:]},
			want:   true,
		},
		{
			name:   "Author mismatch",
			filter: Filter{Offset: AuthorOffset, Bytes: make([]byte, IdentitySize)},
			want:   false,
		},
		{
			name:   "Topic prefix match",
			filter: Filter{Offset: TopicOffset, Bytes: []byte("go")},
			want:   true,
		},
		{
			name:   "Topic full match",
			filter: Filter{Offset: TopicOffset, Bytes: []byte("golang")},
			want:   true,
		},
		{
			name:   "Empty pattern matches anywhere",
			filter: Filter{Offset: 0, Bytes: nil},
			want:   true,
		},
		{
			name:   "Offset past end of record",
			filter: Filter{Offset: 100000, Bytes: []byte("x")},
			want:   false,
		},
		{
			name:   "Pattern runs past end of record",
			filter: Filter{Offset: len(encoded) - 1, Bytes: []byte("xy")},
			want:   false,
		},
		{
			name:   "Negative offset",
			filter: Filter{Offset: -1, Bytes: []byte("x")},
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filter.Matches(encoded); got != tt.want {
				t.Errorf("Matches() = %v, want %v", got, tt.want)
			}
		})
	}
}

// TestStructuredFilters tests ByAuthor and ByTopic against the layout
func TestStructuredFilters(t *testing.T) {
	alice := testIdentity(1)
	bob := testIdentity(2)

	aliceRec := (&Record{Author: alice, Timestamp: 1, Topic: "cooking", Content: "pasta"}).Encode()
	bobRec := (&Record{Author: bob, Timestamp: 2, Topic: "cycling", Content: "uphill"}).Encode()

	if !ByAuthor(alice).Matches(aliceRec) {
		t.Errorf("ByAuthor(alice) should match alice's record")
	}
	if ByAuthor(alice).Matches(bobRec) {
		t.Errorf("ByAuthor(alice) should not match bob's record")
	}

	if !ByTopic("cooking").Matches(aliceRec) {
		t.Errorf("ByTopic(cooking) should match")
	}
	if ByTopic("cooking").Matches(bobRec) {
		t.Errorf("ByTopic(cooking) should not match topic cycling")
	}

	// Same leading bytes, different topic: "c" prefix hits both
	if !ByTopic("c").Matches(aliceRec) || !ByTopic("c").Matches(bobRec) {
		t.Errorf("ByTopic(c) should prefix-match both records")
	}

	// MatchesAll is a logical AND
	if !MatchesAll(aliceRec, []Filter{ByAuthor(alice), ByTopic("cooking")}) {
		t.Errorf("MatchesAll should match when every filter matches")
	}
	if MatchesAll(aliceRec, []Filter{ByAuthor(alice), ByTopic("cycling")}) {
		t.Errorf("MatchesAll should fail when one filter fails")
	}
	if !MatchesAll(aliceRec, nil) {
		t.Errorf("MatchesAll with no filters should match everything")
	}
}

// TestFilterWireRoundTrip tests EncodeFilters/DecodeFilters
func TestFilterWireRoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		filters []Filter
	}{
		{name: "Nil list", filters: nil},
		{name: "Single author filter", filters: []Filter{ByAuthor(testIdentity(5))}},
		{
			name: "Multiple filters",
			filters: []Filter{
				ByAuthor(testIdentity(5)),
				ByTopic("golang"),
				{Offset: 0, Bytes: []byte{1, 2, 3}},
			},
		},
		{name: "Empty pattern", filters: []Filter{{Offset: 12, Bytes: []byte{}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blob := EncodeFilters(tt.filters)
			decoded, err := DecodeFilters(blob)
			if err != nil {
				t.Fatalf("DecodeFilters() failed: %v", err)
			}
			if len(decoded) != len(tt.filters) {
				t.Fatalf("got %d filters, want %d", len(decoded), len(tt.filters))
			}
			for i := range decoded {
				if decoded[i].Offset != tt.filters[i].Offset {
					t.Errorf("filter %d offset = %d, want %d", i, decoded[i].Offset, tt.filters[i].Offset)
				}
				if diff := cmp.Diff(tt.filters[i].Bytes, decoded[i].Bytes); len(tt.filters[i].Bytes) > 0 && diff != "" {
					t.Errorf("filter %d pattern mismatch (-want +got):\n%s", i, diff)
				}
			}
		})
	}
}

// TestDecodeFiltersCorrupt tests malformed filter blobs
func TestDecodeFiltersCorrupt(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{name: "Short header", data: []byte{1, 2}},
		{name: "Count without body", data: []byte{1, 0, 0, 0}},
		{name: "Pattern length past end", data: []byte{1, 0, 0, 0, 0, 0, 0, 0, 255, 0, 0, 0}},
		// The count must be rejected by arithmetic, not by attempting an
		// allocation sized from attacker-controlled bytes.
		{name: "Count larger than blob can hold", data: []byte{0xff, 0xff, 0xff, 0xff, 0, 0, 0, 0, 0, 0, 0, 0}},
		{name: "Count off by one", data: []byte{2, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeFilters(tt.data); err == nil {
				t.Errorf("DecodeFilters() succeeded on malformed input")
			}
		})
	}
}
