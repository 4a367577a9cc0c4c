package pengine

import (
	"os"
	"testing"

	"github.com/chirpkv/chirp/lib/engine"
	enginetesting "github.com/chirpkv/chirp/lib/engine/testing"
	"github.com/chirpkv/chirp/lib/record"
)

// factory returns an EngineFactory where every call opens a fresh database
// in its own directory, so suite tests get independent instances.
func factory(t testing.TB) engine.EngineFactory {
	base := t.TempDir()
	return func() (engine.IEngine, error) {
		dir, err := os.MkdirTemp(base, "pengine-*")
		if err != nil {
			return nil, err
		}
		return NewPebbleEngine(&EngineOptions{Dir: dir})
	}
}

func Test(t *testing.T) {
	enginetesting.RunEngineTests(t, "PebbleEngine", factory(t))
}

func Benchmark(b *testing.B) {
	enginetesting.RunEngineBenchmarks(b, "PebbleEngine", factory(b))
}

// TestPersistence checks that records survive a close/reopen cycle.
func TestPersistence(t *testing.T) {
	dir := t.TempDir()
	var alice record.Identity
	alice[0] = 1

	e, err := NewPebbleEngine(&EngineOptions{Dir: dir})
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	if _, err := e.Create("key", alice, "durable", "still here"); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := e.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	reopened, err := NewPebbleEngine(&EngineOptions{Dir: dir})
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer reopened.Close()

	rec, loaded, err := reopened.Get("key")
	if err != nil || !loaded {
		t.Fatalf("Get after reopen = loaded=%v err=%v", loaded, err)
	}
	if rec.Topic != "durable" || rec.Content != "still here" || rec.Author != alice {
		t.Errorf("record changed across restart: %+v", rec)
	}
}

// TestMissingDir checks option validation.
func TestMissingDir(t *testing.T) {
	if _, err := NewPebbleEngine(nil); err == nil {
		t.Errorf("expected error for nil options")
	}
	if _, err := NewPebbleEngine(&EngineOptions{}); err == nil {
		t.Errorf("expected error for empty directory")
	}
}
