package serializer

import (
	"encoding/binary"
	"fmt"

	"github.com/chirpkv/chirp/rpc/common"
)

// NewBinarySerializer creates a new serializer using a custom binary format
// optimized for speed and efficiency
func NewBinarySerializer() IRPCSerializer {
	return &binarySerializerImpl{}
}

// binarySerializerImpl implements IRPCSerializer using a custom binary format
type binarySerializerImpl struct {
}

// Bit flags to indicate which optional fields are present
const (
	hasKey       uint16 = 1 << 0
	hasAuthor    uint16 = 1 << 1
	hasRequester uint16 = 1 << 2
	hasTopic     uint16 = 1 << 3
	hasContent   uint16 = 1 << 4
	hasFilters   uint16 = 1 << 5
	hasRecord    uint16 = 1 << 6
	hasRecords   uint16 = 1 << 7
	hasOk        uint16 = 1 << 8
	hasCode      uint16 = 1 << 9
	hasErr       uint16 = 1 << 10
)

// headerSize is 1 byte for MsgType plus 2 bytes for the flags
const headerSize = 3

// --------------------------------------------------------------------------
// Interface Methods (docu see serializer.IRPCSerializer)
// --------------------------------------------------------------------------

func (b binarySerializerImpl) Serialize(msg common.Message) ([]byte, error) {
	// Calculate total size needed
	totalSize := b.sizeBytes(msg)
	result := make([]byte, totalSize)

	// Write message type
	result[0] = byte(msg.MsgType)

	// Initialize flags
	var flags uint16 = 0

	// Set position for writing
	pos := headerSize

	writeBytes := func(flag uint16, data []byte) {
		if len(data) == 0 {
			return
		}
		flags |= flag
		binary.LittleEndian.PutUint32(result[pos:pos+4], uint32(len(data)))
		pos += 4
		copy(result[pos:pos+len(data)], data)
		pos += len(data)
	}

	writeBytes(hasKey, []byte(msg.Key))
	writeBytes(hasAuthor, msg.Author)
	writeBytes(hasRequester, msg.Requester)
	writeBytes(hasTopic, []byte(msg.Topic))
	writeBytes(hasContent, []byte(msg.Content))
	writeBytes(hasFilters, msg.Filters)
	writeBytes(hasRecord, msg.Record)
	writeBytes(hasRecords, msg.Records)

	// Handle Ok
	if msg.Ok {
		flags |= hasOk
		result[pos] = 1
		pos += 1
	}

	// Handle Code
	if msg.Code != 0 {
		flags |= hasCode
		binary.LittleEndian.PutUint64(result[pos:pos+8], msg.Code)
		pos += 8
	}

	writeBytes(hasErr, []byte(msg.Err))

	// Set flags after knowing which fields are present
	binary.LittleEndian.PutUint16(result[1:3], flags)

	return result, nil
}

func (b binarySerializerImpl) Deserialize(data []byte, msg *common.Message) error {
	// Check minimum size (MsgType + flags)
	if len(data) < headerSize {
		return fmt.Errorf("data too short for message header")
	}

	// Read message type and flags
	msg.MsgType = common.MessageType(data[0])
	flags := binary.LittleEndian.Uint16(data[1:3])

	// Initialize read position
	pos := headerSize

	readBytes := func(flag uint16, name string) ([]byte, error) {
		if flags&flag == 0 {
			return nil, nil
		}
		if pos+4 > len(data) {
			return nil, fmt.Errorf("data too short for %s length", name)
		}
		length := binary.LittleEndian.Uint32(data[pos : pos+4])
		pos += 4
		if uint64(pos)+uint64(length) > uint64(len(data)) {
			return nil, fmt.Errorf("data too short for %s data", name)
		}
		value := make([]byte, length)
		copy(value, data[pos:pos+int(length)])
		pos += int(length)
		return value, nil
	}

	key, err := readBytes(hasKey, "key")
	if err != nil {
		return err
	}
	msg.Key = string(key)

	if msg.Author, err = readBytes(hasAuthor, "author"); err != nil {
		return err
	}
	if msg.Requester, err = readBytes(hasRequester, "requester"); err != nil {
		return err
	}

	topic, err := readBytes(hasTopic, "topic")
	if err != nil {
		return err
	}
	msg.Topic = string(topic)

	content, err := readBytes(hasContent, "content")
	if err != nil {
		return err
	}
	msg.Content = string(content)

	if msg.Filters, err = readBytes(hasFilters, "filters"); err != nil {
		return err
	}
	if msg.Record, err = readBytes(hasRecord, "record"); err != nil {
		return err
	}
	if msg.Records, err = readBytes(hasRecords, "records"); err != nil {
		return err
	}

	// Read Ok if present
	if flags&hasOk != 0 {
		if pos+1 > len(data) {
			return fmt.Errorf("data too short for Ok flag")
		}
		msg.Ok = data[pos] != 0
		pos += 1
	} else {
		msg.Ok = false
	}

	// Read Code if present
	if flags&hasCode != 0 {
		if pos+8 > len(data) {
			return fmt.Errorf("data too short for Code")
		}
		msg.Code = binary.LittleEndian.Uint64(data[pos : pos+8])
		pos += 8
	} else {
		msg.Code = 0
	}

	errMsg, err := readBytes(hasErr, "error")
	if err != nil {
		return err
	}
	msg.Err = string(errMsg)

	return nil
}

// --------------------------------------------------------------------------
// Helper Methods
// --------------------------------------------------------------------------

// sizeBytes calculates the total size needed for serialization
func (b binarySerializerImpl) sizeBytes(msg common.Message) int {
	size := headerSize

	// Add sizes for fields that require length encoding
	addBytes := func(data []byte) {
		if len(data) > 0 {
			size += 4 + len(data)
		}
	}

	addBytes([]byte(msg.Key))
	addBytes(msg.Author)
	addBytes(msg.Requester)
	addBytes([]byte(msg.Topic))
	addBytes([]byte(msg.Content))
	addBytes(msg.Filters)
	addBytes(msg.Record)
	addBytes(msg.Records)

	if msg.Ok {
		size += 1 // 1 byte for boolean
	}
	if msg.Code != 0 {
		size += 8 // uint64
	}
	addBytes([]byte(msg.Err))

	return size
}
