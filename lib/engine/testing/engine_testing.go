package testing

import (
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/chirpkv/chirp/lib/engine"
	"github.com/chirpkv/chirp/lib/record"
)

// RunEngineTests runs a comprehensive test suite for an IEngine implementation.
func RunEngineTests(t *testing.T, name string, factory engine.EngineFactory) {
	t.Run(name, func(t *testing.T) {
		t.Run("Create&Get", func(t *testing.T) {
			testCreateGet(t, mustCreate(t, factory))
		})

		t.Run("TopicValidation", func(t *testing.T) {
			testTopicValidation(t, mustCreate(t, factory))
		})

		t.Run("AlreadyExists", func(t *testing.T) {
			testAlreadyExists(t, mustCreate(t, factory))
		})

		t.Run("Update", func(t *testing.T) {
			testUpdate(t, mustCreate(t, factory))
		})

		t.Run("UpdateUnauthorized", func(t *testing.T) {
			testUpdateUnauthorized(t, mustCreate(t, factory))
		})

		t.Run("UpdateNotFound", func(t *testing.T) {
			testUpdateNotFound(t, mustCreate(t, factory))
		})

		t.Run("Delete", func(t *testing.T) {
			testDelete(t, mustCreate(t, factory))
		})

		t.Run("DeleteUnauthorized", func(t *testing.T) {
			testDeleteUnauthorized(t, mustCreate(t, factory))
		})

		t.Run("List", func(t *testing.T) {
			testList(t, mustCreate(t, factory))
		})

		t.Run("ListOffsetFilter", func(t *testing.T) {
			testListOffsetFilter(t, mustCreate(t, factory))
		})

		t.Run("KeyReuseAfterDelete", func(t *testing.T) {
			testKeyReuseAfterDelete(t, mustCreate(t, factory))
		})

		t.Run("ConcurrentDistinctKeys", func(t *testing.T) {
			testConcurrentDistinctKeys(t, mustCreate(t, factory))
		})

		t.Run("ConcurrentSameKey", func(t *testing.T) {
			testConcurrentSameKey(t, mustCreate(t, factory))
		})

		t.Run("IndependentInstances", func(t *testing.T) {
			testIndependentInstances(t, factory)
		})
	})
}

// --------------------------------------------------------------------------
// Helper functions
// --------------------------------------------------------------------------

func mustCreate(t testing.TB, factory engine.EngineFactory) engine.IEngine {
	e, err := factory()
	if err != nil {
		t.Fatalf("factory failed: %v", err)
	}
	return e
}

func identity(b byte) record.Identity {
	var id record.Identity
	for i := range id {
		id[i] = b
	}
	return id
}

func wantCode(t *testing.T, err error, code engine.RetCode) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error with code %s, got nil", code)
	}
	if got := engine.CodeOf(err); got != code {
		t.Fatalf("error code = %s, want %s (err: %v)", got, code, err)
	}
}

// --------------------------------------------------------------------------
// Test functions
// --------------------------------------------------------------------------

func testCreateGet(t *testing.T, e engine.IEngine) {
	defer e.Close()
	alice := identity(1)

	topics := []string{"", "g", "golang", strings.Repeat("x", 50), "héllo wörld"}
	for i, topic := range topics {
		key := fmt.Sprintf("tweet-%d", i)
		created, err := e.Create(key, alice, topic, "some content")
		if err != nil {
			t.Fatalf("Create(%q) failed: %v", topic, err)
		}
		if created.Author != alice {
			t.Errorf("created record has wrong author")
		}

		rec, loaded, err := e.Get(key)
		if err != nil || !loaded {
			t.Fatalf("Get(%q) = loaded=%v err=%v", key, loaded, err)
		}
		if rec.Topic != topic {
			t.Errorf("Get topic = %q, want %q", rec.Topic, topic)
		}
		if rec.Content != "some content" {
			t.Errorf("Get content = %q, want %q", rec.Content, "some content")
		}
		if rec.Author != alice {
			t.Errorf("Get author mismatch")
		}
		if rec.Timestamp != created.Timestamp {
			t.Errorf("Get timestamp = %d, want %d", rec.Timestamp, created.Timestamp)
		}
	}

	_, loaded, err := e.Get("nonexistent-key")
	if err != nil {
		t.Errorf("Get(nonexistent) returned error: %v", err)
	}
	if loaded {
		t.Errorf("Get(nonexistent) reported loaded=true")
	}
}

func testTopicValidation(t *testing.T, e engine.IEngine) {
	defer e.Close()
	alice := identity(1)

	_, err := e.Create("too-long", alice, strings.Repeat("a", 51), "content")
	wantCode(t, err, engine.RetCValidation)
	if !strings.Contains(err.Error(), "50 characters long maximum") {
		t.Errorf("validation error %q does not state the limit", err.Error())
	}

	// The failed create must not have stored anything.
	if _, loaded, _ := e.Get("too-long"); loaded {
		t.Errorf("record stored despite validation failure")
	}

	// A failed update must leave the record byte-for-byte unchanged.
	if _, err := e.Create("valid", alice, "before", "original"); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	_, err = e.Update("valid", strings.Repeat("a", 51), "replaced", alice)
	wantCode(t, err, engine.RetCValidation)

	rec, _, err := e.Get("valid")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if rec.Topic != "before" || rec.Content != "original" {
		t.Errorf("record mutated by failed update: topic=%q content=%q", rec.Topic, rec.Content)
	}
}

func testAlreadyExists(t *testing.T, e engine.IEngine) {
	defer e.Close()
	alice := identity(1)
	bob := identity(2)

	if _, err := e.Create("key", alice, "first", "content"); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	_, err := e.Create("key", bob, "second", "other content")
	wantCode(t, err, engine.RetCAlreadyExists)

	// The original record survives the collision.
	rec, _, _ := e.Get("key")
	if rec.Author != alice || rec.Topic != "first" {
		t.Errorf("original record lost after create collision")
	}
}

func testUpdate(t *testing.T, e engine.IEngine) {
	defer e.Close()
	alice := identity(1)

	created, err := e.Create("key", alice, "old topic", "old content")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	updated, err := e.Update("key", "new topic", "new content", alice)
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.Topic != "new topic" || updated.Content != "new content" {
		t.Errorf("Update returned stale record: %+v", updated)
	}

	rec, _, err := e.Get("key")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if rec.Topic != "new topic" || rec.Content != "new content" {
		t.Errorf("Get after Update = topic %q content %q", rec.Topic, rec.Content)
	}
	if rec.Author != created.Author {
		t.Errorf("Update changed the author")
	}
	if rec.Timestamp != created.Timestamp {
		t.Errorf("Update changed the timestamp")
	}

	// Updates may grow or shrink the record.
	if _, err := e.Update("key", "", strings.Repeat("c", 4096), alice); err != nil {
		t.Fatalf("growing Update failed: %v", err)
	}
	if _, err := e.Update("key", "", "", alice); err != nil {
		t.Fatalf("shrinking Update failed: %v", err)
	}
	rec, _, _ = e.Get("key")
	if rec.Topic != "" || rec.Content != "" {
		t.Errorf("shrunk record not reflected: %+v", rec)
	}
}

func testUpdateUnauthorized(t *testing.T, e engine.IEngine) {
	defer e.Close()
	alice := identity(1)
	bob := identity(2)

	if _, err := e.Create("key", alice, "topic", "content"); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	_, err := e.Update("key", "hijacked", "hijacked", bob)
	wantCode(t, err, engine.RetCUnauthorized)

	rec, _, _ := e.Get("key")
	if rec.Topic != "topic" || rec.Content != "content" {
		t.Errorf("record mutated by unauthorized update: %+v", rec)
	}
}

func testUpdateNotFound(t *testing.T, e engine.IEngine) {
	defer e.Close()

	_, err := e.Update("ghost", "topic", "content", identity(1))
	wantCode(t, err, engine.RetCNotFound)

	err = e.Delete("ghost", identity(1))
	wantCode(t, err, engine.RetCNotFound)
}

func testDelete(t *testing.T, e engine.IEngine) {
	defer e.Close()
	alice := identity(1)

	if _, err := e.Create("key", alice, "topic", "content"); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := e.Delete("key", alice); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	_, loaded, err := e.Get("key")
	if err != nil {
		t.Errorf("Get after Delete returned error: %v", err)
	}
	if loaded {
		t.Errorf("record still present after Delete")
	}
}

func testDeleteUnauthorized(t *testing.T, e engine.IEngine) {
	defer e.Close()
	alice := identity(1)
	bob := identity(2)

	if _, err := e.Create("key", alice, "topic", "content"); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	err := e.Delete("key", bob)
	wantCode(t, err, engine.RetCUnauthorized)

	if _, loaded, _ := e.Get("key"); !loaded {
		t.Errorf("record removed by unauthorized delete")
	}
}

func testList(t *testing.T, e engine.IEngine) {
	defer e.Close()
	alice := identity(1)
	bob := identity(2)

	mustCreateRecord(t, e, "a1", alice, "golang", "post one")
	mustCreateRecord(t, e, "a2", alice, "cooking", "post two")
	mustCreateRecord(t, e, "b1", bob, "golang", "post three")

	all, err := e.List()
	if err != nil {
		t.Fatalf("List() failed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("List() returned %d records, want 3", len(all))
	}

	byAlice, err := e.List(record.ByAuthor(alice))
	if err != nil {
		t.Fatalf("List(ByAuthor) failed: %v", err)
	}
	if len(byAlice) != 2 {
		t.Fatalf("List(ByAuthor alice) returned %d records, want 2", len(byAlice))
	}
	for _, kr := range byAlice {
		if kr.Record.Author != alice {
			t.Errorf("List(ByAuthor alice) returned record by %s", kr.Record.Author)
		}
	}

	byTopic, err := e.List(record.ByTopic("golang"))
	if err != nil {
		t.Fatalf("List(ByTopic) failed: %v", err)
	}
	if len(byTopic) != 2 {
		t.Fatalf("List(ByTopic golang) returned %d records, want 2", len(byTopic))
	}

	// Filters combine with logical AND.
	both, err := e.List(record.ByAuthor(alice), record.ByTopic("golang"))
	if err != nil {
		t.Fatalf("List(author, topic) failed: %v", err)
	}
	if len(both) != 1 || both[0].Key != "a1" {
		t.Errorf("List(author AND topic) = %+v, want only a1", both)
	}

	none, err := e.List(record.ByTopic("no such topic"))
	if err != nil {
		t.Fatalf("List(no match) failed: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("List(no match) returned %d records, want 0", len(none))
	}
}

func testListOffsetFilter(t *testing.T, e engine.IEngine) {
	defer e.Close()
	alice := identity(0xaa)

	mustCreateRecord(t, e, "key", alice, "topic", "content")

	// The structured filters are sugar over the raw offset primitive; the raw
	// form must behave identically.
	raw := record.Filter{Offset: record.AuthorOffset, Bytes: alice[:]}
	matches, err := e.List(raw)
	if err != nil {
		t.Fatalf("List(raw filter) failed: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("List(raw author filter) returned %d records, want 1", len(matches))
	}

	// A filter addressing bytes past the end of every record matches nothing
	// and must not error.
	past, err := e.List(record.Filter{Offset: 1 << 20, Bytes: []byte{1}})
	if err != nil {
		t.Fatalf("List(past-end filter) failed: %v", err)
	}
	if len(past) != 0 {
		t.Errorf("List(past-end filter) returned %d records, want 0", len(past))
	}
}

func testKeyReuseAfterDelete(t *testing.T, e engine.IEngine) {
	defer e.Close()
	alice := identity(1)
	bob := identity(2)

	mustCreateRecord(t, e, "key", alice, "first life", "content")
	if err := e.Delete("key", alice); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	// The slot is free again; a different author may claim the key.
	if _, err := e.Create("key", bob, "second life", "content"); err != nil {
		t.Fatalf("Create on freed key failed: %v", err)
	}
	rec, _, _ := e.Get("key")
	if rec.Author != bob || rec.Topic != "second life" {
		t.Errorf("reused slot holds wrong record: %+v", rec)
	}

	// And alice no longer has authority over it.
	wantCode(t, e.Delete("key", alice), engine.RetCUnauthorized)
}

func testConcurrentDistinctKeys(t *testing.T, e engine.IEngine) {
	defer e.Close()

	const goroutines = 16
	const perGoroutine = 50

	var wg sync.WaitGroup
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			author := identity(byte(g + 1))
			for i := 0; i < perGoroutine; i++ {
				key := fmt.Sprintf("w%d-k%d", g, i)
				if _, err := e.Create(key, author, "topic", "content"); err != nil {
					t.Errorf("concurrent Create(%s) failed: %v", key, err)
					return
				}
				if _, err := e.Update(key, "updated", "updated", author); err != nil {
					t.Errorf("concurrent Update(%s) failed: %v", key, err)
					return
				}
			}
		}(g)
	}
	wg.Wait()

	all, err := e.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(all) != goroutines*perGoroutine {
		t.Errorf("List returned %d records, want %d", len(all), goroutines*perGoroutine)
	}
}

func testConcurrentSameKey(t *testing.T, e engine.IEngine) {
	defer e.Close()

	// Many goroutines race to create the same key: exactly one must win.
	const goroutines = 16
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		wins int
	)
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			_, err := e.Create("contested", identity(byte(g+1)), "topic", "content")
			if err == nil {
				mu.Lock()
				wins++
				mu.Unlock()
			} else if engine.CodeOf(err) != engine.RetCAlreadyExists {
				t.Errorf("unexpected error from racing Create: %v", err)
			}
		}(g)
	}
	wg.Wait()

	if wins != 1 {
		t.Errorf("%d creates won the race, want exactly 1", wins)
	}
}

func testIndependentInstances(t *testing.T, factory engine.EngineFactory) {
	e1 := mustCreate(t, factory)
	defer e1.Close()
	e2 := mustCreate(t, factory)
	defer e2.Close()

	alice := identity(1)
	mustCreateRecord(t, e1, "key", alice, "topic", "content")

	if _, loaded, _ := e2.Get("key"); loaded {
		t.Errorf("record leaked between independent engine instances")
	}
}

func mustCreateRecord(t testing.TB, e engine.IEngine, key string, author record.Identity, topic, content string) {
	t.Helper()
	if _, err := e.Create(key, author, topic, content); err != nil {
		t.Fatalf("Create(%q) failed: %v", key, err)
	}
}
