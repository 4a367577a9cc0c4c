package pengine

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/chirpkv/chirp/lib/engine"
	"github.com/chirpkv/chirp/lib/record"
	"github.com/cockroachdb/pebble"
)

// EngineOptions configures the persistent engine during initialization.
type EngineOptions struct {
	// Dir is the directory holding the pebble database files.
	Dir string

	// Clock returns the timestamp bound to newly created records.
	// nil means unix seconds from the wall clock.
	Clock func() int64
}

type engineImpl struct {
	db    *pebble.DB
	mu    sync.RWMutex
	clock func() int64
}

// NewPebbleEngine opens (or creates) a pebble-backed engine at opts.Dir.
func NewPebbleEngine(opts *EngineOptions) (engine.IEngine, error) {
	if opts == nil || opts.Dir == "" {
		return nil, fmt.Errorf("pengine: no data directory configured")
	}

	db, err := pebble.Open(opts.Dir, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("pengine: failed to open database: %w", err)
	}

	clock := opts.Clock
	if clock == nil {
		clock = func() int64 { return time.Now().Unix() }
	}

	return &engineImpl{
		db:    db,
		clock: clock,
	}, nil
}

// load reads and returns the encoded record stored under key.
// Callers must hold at least a read lock.
func (e *engineImpl) load(key string) ([]byte, bool, error) {
	data, closer, err := e.db.Get([]byte(key))
	if errors.Is(err, pebble.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, engine.NewError(engine.RetCInternalError, err.Error())
	}
	defer closer.Close()

	// The returned slice is only valid until the closer is closed.
	encoded := make([]byte, len(data))
	copy(encoded, data)
	return encoded, true, nil
}

// --------------------------------------------------------------------------
// Interface Methods (docu see engine/interface.go)
// --------------------------------------------------------------------------

func (e *engineImpl) Create(key string, author record.Identity, topic, content string) (record.Record, error) {
	if err := engine.ValidateTopic(topic); err != nil {
		return record.Record{}, err
	}
	if err := engine.ValidateContent(content); err != nil {
		return record.Record{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if _, loaded, err := e.load(key); err != nil {
		return record.Record{}, err
	} else if loaded {
		return record.Record{}, engine.NewError(engine.RetCAlreadyExists,
			fmt.Sprintf("a record already exists under key %q", key))
	}

	rec := record.Record{
		Author:    author,
		Timestamp: e.clock(),
		Topic:     topic,
		Content:   content,
	}
	if err := e.db.Set([]byte(key), rec.Encode(), pebble.Sync); err != nil {
		return record.Record{}, engine.NewError(engine.RetCInternalError, err.Error())
	}
	return rec, nil
}

func (e *engineImpl) Update(key string, topic, content string, requester record.Identity) (record.Record, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	encoded, loaded, err := e.load(key)
	if err != nil {
		return record.Record{}, err
	}
	if !loaded {
		return record.Record{}, engine.NewError(engine.RetCNotFound,
			fmt.Sprintf("no record found under key %q", key))
	}

	var existing record.Record
	if err := existing.Decode(encoded); err != nil {
		return record.Record{}, err
	}
	if err := engine.Authorize(existing, requester); err != nil {
		return record.Record{}, err
	}
	if err := engine.ValidateTopic(topic); err != nil {
		return record.Record{}, err
	}
	if err := engine.ValidateContent(content); err != nil {
		return record.Record{}, err
	}

	// Author and timestamp carry over unchanged.
	existing.Topic = topic
	existing.Content = content
	if err := e.db.Set([]byte(key), existing.Encode(), pebble.Sync); err != nil {
		return record.Record{}, engine.NewError(engine.RetCInternalError, err.Error())
	}
	return existing, nil
}

func (e *engineImpl) Delete(key string, requester record.Identity) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	encoded, loaded, err := e.load(key)
	if err != nil {
		return err
	}
	if !loaded {
		return engine.NewError(engine.RetCNotFound,
			fmt.Sprintf("no record found under key %q", key))
	}

	var existing record.Record
	if err := existing.Decode(encoded); err != nil {
		return err
	}
	if err := engine.Authorize(existing, requester); err != nil {
		return err
	}

	if err := e.db.Delete([]byte(key), pebble.Sync); err != nil {
		return engine.NewError(engine.RetCInternalError, err.Error())
	}
	return nil
}

func (e *engineImpl) Get(key string) (record.Record, bool, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	encoded, loaded, err := e.load(key)
	if err != nil || !loaded {
		return record.Record{}, false, err
	}

	var rec record.Record
	if err := rec.Decode(encoded); err != nil {
		return record.Record{}, false, err
	}
	return rec, true, nil
}

func (e *engineImpl) List(filters ...record.Filter) ([]record.Keyed, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	iter, err := e.db.NewIter(nil)
	if err != nil {
		return nil, engine.NewError(engine.RetCInternalError, err.Error())
	}
	defer iter.Close()

	var result []record.Keyed
	for iter.First(); iter.Valid(); iter.Next() {
		encoded := iter.Value()
		if !record.MatchesAll(encoded, filters) {
			continue
		}

		var rec record.Record
		if err := rec.Decode(encoded); err != nil {
			return nil, err
		}
		result = append(result, record.Keyed{Key: string(iter.Key()), Record: rec})
	}
	if err := iter.Error(); err != nil {
		return nil, engine.NewError(engine.RetCInternalError, err.Error())
	}
	return result, nil
}

func (e *engineImpl) Close() error {
	return e.db.Close()
}
