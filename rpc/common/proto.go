package common

import (
	"encoding/binary"
	"encoding/json"
	"fmt"

	"github.com/chirpkv/chirp/lib/engine"
	"github.com/chirpkv/chirp/lib/record"
)

// --------------------------------------------------------------------------
// Message Structure
// --------------------------------------------------------------------------

// Message represents a single message used for both requests and responses.
// Which fields are used depends on the type of message.
type Message struct {
	// Type of message
	MsgType MessageType `json:"msg_type"`

	// General fields
	Key       string `json:"key,omitempty"`       // Used for: Create, Update, Delete, Get
	Author    []byte `json:"author,omitempty"`    // Used for: Create (author identity)
	Requester []byte `json:"requester,omitempty"` // Used for: Update, Delete
	Topic     string `json:"topic,omitempty"`     // Used for: Create, Update
	Content   string `json:"content,omitempty"`   // Used for: Create, Update
	Filters   []byte `json:"filters,omitempty"`   // Used for: List requests (packed record.EncodeFilters blob)

	// Response only fields
	Record  []byte `json:"record,omitempty"`  // Used for: Create, Update, Get responses (encoded record)
	Records []byte `json:"records,omitempty"` // Used for: List responses (packed keyed record list)
	Ok      bool   `json:"ok,omitempty"`      // Used for: Get responses (record found)
	Code    uint64 `json:"code,omitempty"`    // engine.RetCode of the error, if any
	Err     string `json:"err,omitempty"`     // Empty if no error, otherwise contains the error message
}

// setError fills the error fields of a response message from an engine error.
func (m *Message) setError(err error) {
	if err == nil {
		return
	}
	m.Err = err.Error()
	m.Code = uint64(engine.CodeOf(err))
}

// AsError reconstructs the typed engine error carried by a response message.
// It returns nil if the message carries no error.
func (m *Message) AsError() error {
	if m.Err == "" {
		return nil
	}
	code := engine.RetCode(m.Code)
	if code == engine.RetCSuccess {
		code = engine.RetCInternalError
	}
	return engine.NewError(code, m.Err)
}

// --------------------------------------------------------------------------
// Message Factory Functions
// --------------------------------------------------------------------------

// NewCreateRequest creates a new Create request
func NewCreateRequest(key string, author record.Identity, topic, content string) *Message {
	return &Message{
		MsgType: MsgTPostCreate,
		Key:     key,
		Author:  author[:],
		Topic:   topic,
		Content: content,
	}
}

// NewCreateResponse creates a new Create response
func NewCreateResponse(encoded []byte, err error) *Message {
	msg := &Message{
		MsgType: MsgTPostCreate,
		Record:  encoded,
	}
	msg.setError(err)
	return msg
}

// NewUpdateRequest creates a new Update request
func NewUpdateRequest(key, topic, content string, requester record.Identity) *Message {
	return &Message{
		MsgType:   MsgTPostUpdate,
		Key:       key,
		Topic:     topic,
		Content:   content,
		Requester: requester[:],
	}
}

// NewUpdateResponse creates a new Update response
func NewUpdateResponse(encoded []byte, err error) *Message {
	msg := &Message{
		MsgType: MsgTPostUpdate,
		Record:  encoded,
	}
	msg.setError(err)
	return msg
}

// NewDeleteRequest creates a new Delete request
func NewDeleteRequest(key string, requester record.Identity) *Message {
	return &Message{
		MsgType:   MsgTPostDelete,
		Key:       key,
		Requester: requester[:],
	}
}

// NewDeleteResponse creates a new Delete response
func NewDeleteResponse(err error) *Message {
	msg := &Message{
		MsgType: MsgTPostDelete,
	}
	msg.setError(err)
	return msg
}

// NewGetRequest creates a new Get request
func NewGetRequest(key string) *Message {
	return &Message{
		MsgType: MsgTPostGet,
		Key:     key,
	}
}

// NewGetResponse creates a new Get response
func NewGetResponse(encoded []byte, ok bool, err error) *Message {
	msg := &Message{
		MsgType: MsgTPostGet,
		Record:  encoded,
		Ok:      ok,
	}
	msg.setError(err)
	return msg
}

// NewListRequest creates a new List request
func NewListRequest(filters []record.Filter) *Message {
	return &Message{
		MsgType: MsgTPostList,
		Filters: record.EncodeFilters(filters),
	}
}

// NewListResponse creates a new List response
func NewListResponse(records []byte, err error) *Message {
	msg := &Message{
		MsgType: MsgTPostList,
		Records: records,
	}
	msg.setError(err)
	return msg
}

// NewErrorResponse creates a new Error response
func NewErrorResponse(err string) *Message {
	return &Message{
		MsgType: MsgTError,
		Code:    uint64(engine.RetCInternalError),
		Err:     err,
	}
}

// --------------------------------------------------------------------------
// Keyed Record List Encoding
// --------------------------------------------------------------------------

// PackRecords serializes a keyed record list for a List response:
// 4-byte count, then per entry a length-prefixed key and a length-prefixed
// encoded record (all little-endian).
func PackRecords(records []record.Keyed) []byte {
	encoded := make([][]byte, len(records))
	size := 4
	for i, kr := range records {
		encoded[i] = kr.Record.Encode()
		size += 8 + len(kr.Key) + len(encoded[i])
	}

	result := make([]byte, size)
	binary.LittleEndian.PutUint32(result[0:4], uint32(len(records)))
	pos := 4
	for i, kr := range records {
		binary.LittleEndian.PutUint32(result[pos:pos+4], uint32(len(kr.Key)))
		pos += 4
		copy(result[pos:pos+len(kr.Key)], kr.Key)
		pos += len(kr.Key)
		binary.LittleEndian.PutUint32(result[pos:pos+4], uint32(len(encoded[i])))
		pos += 4
		copy(result[pos:pos+len(encoded[i])], encoded[i])
		pos += len(encoded[i])
	}
	return result
}

// UnpackRecords is the inverse of PackRecords.
func UnpackRecords(data []byte) ([]record.Keyed, error) {
	if len(data) == 0 {
		return nil, nil
	}
	if len(data) < 4 {
		return nil, fmt.Errorf("record list too short (%d bytes)", len(data))
	}

	count := binary.LittleEndian.Uint32(data[0:4])

	// Each entry occupies at least its two 4-byte length prefixes. A count
	// the blob cannot possibly hold is rejected before it sizes an
	// allocation.
	if uint64(count) > uint64(len(data)-4)/8 {
		return nil, fmt.Errorf("record list of %d bytes cannot hold %d entries", len(data), count)
	}

	pos := 4
	result := make([]record.Keyed, 0, count)
	for i := uint32(0); i < count; i++ {
		if pos+4 > len(data) {
			return nil, fmt.Errorf("record list too short for key length of entry %d", i)
		}
		keyLen := binary.LittleEndian.Uint32(data[pos : pos+4])
		pos += 4
		if uint64(pos)+uint64(keyLen)+4 > uint64(len(data)) {
			return nil, fmt.Errorf("record list too short for key of entry %d", i)
		}
		key := string(data[pos : pos+int(keyLen)])
		pos += int(keyLen)

		recLen := binary.LittleEndian.Uint32(data[pos : pos+4])
		pos += 4
		if uint64(pos)+uint64(recLen) > uint64(len(data)) {
			return nil, fmt.Errorf("record list too short for record of entry %d", i)
		}
		var rec record.Record
		if err := rec.Decode(data[pos : pos+int(recLen)]); err != nil {
			return nil, err
		}
		pos += int(recLen)

		result = append(result, record.Keyed{Key: key, Record: rec})
	}
	return result, nil
}

// --------------------------------------------------------------------------
// Message Type Definition
// --------------------------------------------------------------------------

// MessageType defines the type of message used in RPC communication.
type MessageType uint8

// String returns the string representation of a MessageType.
func (t MessageType) String() string {
	switch t {
	case MsgTPostCreate:
		return "create"
	case MsgTPostUpdate:
		return "update"
	case MsgTPostDelete:
		return "delete"
	case MsgTPostGet:
		return "get"
	case MsgTPostList:
		return "list"
	case MsgTError:
		return "error"
	case MsgTSuccess:
		return "success"
	default:
		return "unknown"
	}
}

// MarshalJSON implements the json.Marshaller interface for MessageType.
// This allows MessageType to be serialized as a string in JSON.
func (t MessageType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON implements the json.Unmarshaler interface for MessageType.
// This allows MessageType to be deserialized from a string in JSON.
func (t *MessageType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	// Convert string back to MessageType
	switch s {
	case "create":
		*t = MsgTPostCreate
	case "update":
		*t = MsgTPostUpdate
	case "delete":
		*t = MsgTPostDelete
	case "get":
		*t = MsgTPostGet
	case "list":
		*t = MsgTPostList
	case "error":
		*t = MsgTError
	case "success":
		*t = MsgTSuccess
	default:
		return fmt.Errorf("unknown message type: %s", s)
	}

	return nil
}

// --------------------------------------------------------------------------
// Message Type Constants
// --------------------------------------------------------------------------

const (
	// General message types

	MsgTUnknown MessageType = iota
	MsgTSuccess             // Indicates a successful operation
	MsgTError               // Indicates an error occurred

	// Record store operations

	MsgTPostCreate // Create a new record
	MsgTPostUpdate // Update topic/content of an existing record
	MsgTPostDelete // Delete a record
	MsgTPostGet    // Get a record by key
	MsgTPostList   // List records matching filters
)
