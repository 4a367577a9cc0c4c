package engine

import (
	"errors"
	"strings"
	"testing"

	"github.com/chirpkv/chirp/lib/record"
)

// TestValidateTopic tests the topic length rule
func TestValidateTopic(t *testing.T) {
	tests := []struct {
		name  string
		topic string
		valid bool
	}{
		{name: "Empty topic", topic: "", valid: true},
		{name: "Short topic", topic: "golang", valid: true},
		{name: "Exactly 50 characters", topic: strings.Repeat("a", 50), valid: true},
		{name: "51 characters", topic: strings.Repeat("a", 51), valid: false},
		{name: "Far too long", topic: strings.Repeat("a", 500), valid: false},
		// 50 two-byte characters are 100 bytes but still a valid topic:
		// the limit counts characters, not bytes.
		{name: "50 multi-byte characters", topic: strings.Repeat("é", 50), valid: true},
		{name: "51 multi-byte characters", topic: strings.Repeat("é", 51), valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTopic(tt.topic)
			if tt.valid && err != nil {
				t.Errorf("ValidateTopic(%d chars) = %v, want nil", len([]rune(tt.topic)), err)
			}
			if !tt.valid {
				if err == nil {
					t.Fatalf("ValidateTopic(%d chars) = nil, want error", len([]rune(tt.topic)))
				}
				if CodeOf(err) != RetCValidation {
					t.Errorf("CodeOf() = %s, want Validation", CodeOf(err))
				}
				if !strings.Contains(err.Error(), "50 characters long maximum") {
					t.Errorf("error %q does not state the limit", err.Error())
				}
			}
		})
	}
}

// TestAuthorize tests the identity comparison
func TestAuthorize(t *testing.T) {
	var alice, bob record.Identity
	alice[0] = 1
	bob[0] = 2

	rec := record.Record{Author: alice, Timestamp: 1, Topic: "t", Content: "c"}

	if err := Authorize(rec, alice); err != nil {
		t.Errorf("Authorize(author) = %v, want nil", err)
	}

	err := Authorize(rec, bob)
	if err == nil {
		t.Fatalf("Authorize(non-author) = nil, want error")
	}
	if CodeOf(err) != RetCUnauthorized {
		t.Errorf("CodeOf() = %s, want Unauthorized", CodeOf(err))
	}

	// Identities differing only in the last byte must not authorize.
	almostAlice := alice
	almostAlice[31] = 0xff
	if err := Authorize(rec, almostAlice); err == nil {
		t.Errorf("Authorize must compare the full identity")
	}
}

// TestCodeOf tests error code extraction
func TestCodeOf(t *testing.T) {
	if got := CodeOf(nil); got != RetCSuccess {
		t.Errorf("CodeOf(nil) = %s, want Success", got)
	}
	if got := CodeOf(NewError(RetCNotFound, "gone")); got != RetCNotFound {
		t.Errorf("CodeOf(engine error) = %s, want NotFound", got)
	}
	if got := CodeOf(&record.CorruptError{Reason: "bad tag"}); got != RetCCorruptRecord {
		t.Errorf("CodeOf(corrupt error) = %s, want CorruptRecord", got)
	}
	if got := CodeOf(errors.New("plain")); got != RetCInternalError {
		t.Errorf("CodeOf(plain error) = %s, want InternalError", got)
	}
}
