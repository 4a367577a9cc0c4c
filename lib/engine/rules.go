package engine

import (
	"fmt"
	"unicode/utf8"

	"github.com/chirpkv/chirp/lib/record"
)

// MaxTopicChars is the maximum topic length in characters (not bytes).
const MaxTopicChars = 50

// ValidateTopic checks a proposed topic value. The empty string is valid.
// The limit counts characters, so multi-byte UTF-8 topics are not penalized.
func ValidateTopic(topic string) error {
	if utf8.RuneCountInString(topic) > MaxTopicChars {
		return NewError(RetCValidation,
			fmt.Sprintf("the provided topic should be %d characters long maximum", MaxTopicChars))
	}
	return nil
}

// ValidateContent checks a proposed content value. The engine imposes no
// upper bound on content; it is constrained only by what the backend can
// hold.
func ValidateContent(content string) error {
	return nil
}

// Authorize checks that the requester is allowed to mutate an existing
// record. The comparison is a pure byte-for-byte identity check; proving
// control of the identity is the responsibility of the boundary layer that
// accepted the request.
func Authorize(existing record.Record, requester record.Identity) error {
	if existing.Author != requester {
		return NewError(RetCUnauthorized,
			fmt.Sprintf("requester %s is not the author of this record", requester))
	}
	return nil
}
