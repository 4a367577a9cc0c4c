package serializer

import (
	"testing"

	"github.com/chirpkv/chirp/rpc/common"
)

// BenchmarkSerialize benchmarks the Serialize method of all serializers
func BenchmarkSerialize(b *testing.B) {
	messages := testMessages()

	for name, factory := range testSerializers {
		b.Run(name, func(b *testing.B) {
			serializer := factory()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				for _, msg := range messages {
					if _, err := serializer.Serialize(msg); err != nil {
						b.Fatalf("Serialize failed: %v", err)
					}
				}
			}
		})
	}
}

// BenchmarkDeserialize benchmarks the Deserialize method of all serializers
func BenchmarkDeserialize(b *testing.B) {
	messages := testMessages()

	for name, factory := range testSerializers {
		b.Run(name, func(b *testing.B) {
			serializer := factory()

			// Pre-serialize all messages
			serialized := make([][]byte, len(messages))
			for i, msg := range messages {
				data, err := serializer.Serialize(msg)
				if err != nil {
					b.Fatalf("Serialize failed: %v", err)
				}
				serialized[i] = data
			}

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				for _, data := range serialized {
					var msg common.Message
					if err := serializer.Deserialize(data, &msg); err != nil {
						b.Fatalf("Deserialize failed: %v", err)
					}
				}
			}
		})
	}
}
