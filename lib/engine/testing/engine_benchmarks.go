package testing

import (
	"fmt"
	"testing"

	"github.com/chirpkv/chirp/lib/engine"
	"github.com/chirpkv/chirp/lib/record"
)

// RunEngineBenchmarks runs a benchmark suite for an IEngine implementation.
func RunEngineBenchmarks(b *testing.B, name string, factory engine.EngineFactory) {
	b.Run(name, func(b *testing.B) {
		b.Run("Create", func(b *testing.B) {
			benchmarkCreate(b, mustCreate(b, factory))
		})

		b.Run("Get", func(b *testing.B) {
			benchmarkGet(b, mustCreate(b, factory))
		})

		b.Run("Update", func(b *testing.B) {
			benchmarkUpdate(b, mustCreate(b, factory))
		})

		b.Run("List", func(b *testing.B) {
			benchmarkList(b, mustCreate(b, factory))
		})
	})
}

func benchmarkCreate(b *testing.B, e engine.IEngine) {
	defer e.Close()
	author := identity(1)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = e.Create(fmt.Sprintf("key-%d", i), author, "topic", "some tweet content")
	}
}

func benchmarkGet(b *testing.B, e engine.IEngine) {
	defer e.Close()
	author := identity(1)
	if _, err := e.Create("key", author, "topic", "some tweet content"); err != nil {
		b.Fatalf("Create failed: %v", err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _, _ = e.Get("key")
	}
}

func benchmarkUpdate(b *testing.B, e engine.IEngine) {
	defer e.Close()
	author := identity(1)
	if _, err := e.Create("key", author, "topic", "some tweet content"); err != nil {
		b.Fatalf("Create failed: %v", err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = e.Update("key", "topic", fmt.Sprintf("content %d", i), author)
	}
}

func benchmarkList(b *testing.B, e engine.IEngine) {
	defer e.Close()
	author := identity(1)
	for i := 0; i < 1000; i++ {
		if _, err := e.Create(fmt.Sprintf("key-%d", i), author, "topic", "content"); err != nil {
			b.Fatalf("Create failed: %v", err)
		}
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = e.List(record.ByAuthor(author))
	}
}
