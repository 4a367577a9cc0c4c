package lengine

import (
	"testing"

	"github.com/chirpkv/chirp/lib/engine"
	enginetesting "github.com/chirpkv/chirp/lib/engine/testing"
	"github.com/chirpkv/chirp/lib/record"
)

func Test(t *testing.T) {
	enginetesting.RunEngineTests(t, "LocalEngine", func() (engine.IEngine, error) {
		return NewLocalEngine(nil), nil
	})
}

func Benchmark(b *testing.B) {
	enginetesting.RunEngineBenchmarks(b, "LocalEngine", func() (engine.IEngine, error) {
		return NewLocalEngine(nil), nil
	})
}

// TestFixedClock checks that the engine binds timestamps from the injected clock.
func TestFixedClock(t *testing.T) {
	e := NewLocalEngine(&EngineOptions{Clock: func() int64 { return 1234567890 }})
	defer e.Close()

	var author record.Identity
	author[0] = 1

	created, err := e.Create("key", author, "topic", "content")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.Timestamp != 1234567890 {
		t.Errorf("Timestamp = %d, want 1234567890", created.Timestamp)
	}

	// The timestamp survives updates.
	updated, err := e.Update("key", "new", "new", author)
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.Timestamp != 1234567890 {
		t.Errorf("Timestamp after update = %d, want 1234567890", updated.Timestamp)
	}
}
