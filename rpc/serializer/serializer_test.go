package serializer

import (
	"reflect"
	"testing"

	"github.com/chirpkv/chirp/lib/engine"
	"github.com/chirpkv/chirp/lib/record"
	"github.com/chirpkv/chirp/rpc/common"
)

// testSerializers is a map of serializer name to factory function
var testSerializers = map[string]func() IRPCSerializer{
	"JSON":   NewJSONSerializer,
	"GOB":    NewGOBSerializer,
	"Binary": NewBinarySerializer,
}

// testMessages creates a set of test messages with different fields filled
func testMessages() []common.Message {
	var author record.Identity
	for i := range author {
		author[i] = byte(i)
	}

	encodedRecord := (&record.Record{
		Author:    author,
		Timestamp: 1735686000,
		Topic:     "golang",
		Content:   "tweet content",
	}).Encode()

	return []common.Message{
		// Basic message with just a type
		{MsgType: common.MsgTSuccess},

		// Create request
		*common.NewCreateRequest("tweet-1", author, "golang", "hello world"),

		// Update request with empty topic
		*common.NewUpdateRequest("tweet-1", "", "new content", author),

		// Delete request
		*common.NewDeleteRequest("tweet-1", author),

		// Get response
		{
			MsgType: common.MsgTPostGet,
			Record:  encodedRecord,
			Ok:      true,
		},

		// List request with filters
		*common.NewListRequest([]record.Filter{
			record.ByAuthor(author),
			record.ByTopic("golang"),
		}),

		// Error response with code
		{
			MsgType: common.MsgTError,
			Code:    4,
			Err:     "no record found under key \"tweet-2\"",
		},

		// Message with all fields filled
		{
			MsgType:   common.MsgTPostUpdate,
			Key:       "tweet-1",
			Author:    author[:],
			Requester: author[:],
			Topic:     "topic",
			Content:   "content",
			Filters:   record.EncodeFilters([]record.Filter{record.ByTopic("t")}),
			Record:    encodedRecord,
			Records:   []byte{1, 2, 3},
			Ok:        true,
			Code:      1,
			Err:       "some error",
		},
	}
}

// TestSerializerRoundTrip tests that messages can be serialized and deserialized correctly
func TestSerializerRoundTrip(t *testing.T) {
	messages := testMessages()

	for name, factory := range testSerializers {
		t.Run(name, func(t *testing.T) {
			serializer := factory()

			for i, msg := range messages {
				// Serialize
				data, err := serializer.Serialize(msg)
				if err != nil {
					t.Errorf("Failed to serialize message %d: %v", i, err)
					continue
				}

				// Deserialize
				var result common.Message
				if err := serializer.Deserialize(data, &result); err != nil {
					t.Errorf("Failed to deserialize message %d: %v", i, err)
					continue
				}

				// Compare (nil and empty byte slices are equivalent on the wire)
				normalize(&msg)
				normalize(&result)
				if !reflect.DeepEqual(msg, result) {
					t.Errorf("Message %d mismatch:\noriginal: %+v\nresult:   %+v", i, msg, result)
				}
			}
		})
	}
}

// normalize maps empty byte slices to nil so all serializers compare equal
func normalize(msg *common.Message) {
	if len(msg.Author) == 0 {
		msg.Author = nil
	}
	if len(msg.Requester) == 0 {
		msg.Requester = nil
	}
	if len(msg.Filters) == 0 {
		msg.Filters = nil
	}
	if len(msg.Record) == 0 {
		msg.Record = nil
	}
	if len(msg.Records) == 0 {
		msg.Records = nil
	}
}

// TestBinaryDeserializeTruncated tests that truncated binary input fails cleanly
func TestBinaryDeserializeTruncated(t *testing.T) {
	serializer := NewBinarySerializer()

	var author record.Identity
	author[0] = 1
	data, err := serializer.Serialize(*common.NewCreateRequest("key", author, "topic", "content"))
	if err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}

	for cut := 0; cut < len(data); cut++ {
		var msg common.Message
		// Every strict prefix either fails or at least must not panic.
		_ = serializer.Deserialize(data[:cut], &msg)
	}

	var msg common.Message
	if err := serializer.Deserialize([]byte{}, &msg); err == nil {
		t.Errorf("Deserialize of empty input should fail")
	}
}

// TestErrorRoundTrip tests that typed engine errors survive the wire
func TestErrorRoundTrip(t *testing.T) {
	resp := common.NewDeleteResponse(engine.NewError(engine.RetCNotFound, "no record found"))

	for name, factory := range testSerializers {
		t.Run(name, func(t *testing.T) {
			serializer := factory()
			data, err := serializer.Serialize(*resp)
			if err != nil {
				t.Fatalf("Serialize failed: %v", err)
			}

			var result common.Message
			if err := serializer.Deserialize(data, &result); err != nil {
				t.Fatalf("Deserialize failed: %v", err)
			}

			reconstructed := result.AsError()
			if reconstructed == nil {
				t.Fatalf("error lost on the wire")
			}
			if got := engine.CodeOf(reconstructed); got != engine.RetCNotFound {
				t.Errorf("error code after round trip = %s, want NotFound", got)
			}
		})
	}
}
