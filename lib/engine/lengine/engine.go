package lengine

import (
	"fmt"
	"time"

	"github.com/chirpkv/chirp/lib/engine"
	"github.com/chirpkv/chirp/lib/record"
	"github.com/puzpuzpuz/xsync/v3"
)

// EngineOptions configures the local engine during initialization.
type EngineOptions struct {
	// Clock returns the timestamp bound to newly created records.
	// nil means unix seconds from the wall clock.
	Clock func() int64
}

// DefaultOptions returns the default local engine options.
func DefaultOptions() *EngineOptions {
	return &EngineOptions{
		Clock: func() int64 { return time.Now().Unix() },
	}
}

type engineImpl struct {
	records *xsync.MapOf[string, []byte] // encoded records, keyed by storage key
	clock   func() int64
}

// NewLocalEngine creates a new in-memory engine instance with the specified
// options (optional). Every instance owns an independent store; there is no
// process-wide shared state.
func NewLocalEngine(opts *EngineOptions) engine.IEngine {
	if opts == nil {
		opts = DefaultOptions()
	}
	clock := opts.Clock
	if clock == nil {
		clock = DefaultOptions().Clock
	}

	return &engineImpl{
		records: xsync.NewMapOf[string, []byte](),
		clock:   clock,
	}
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

	rec := record.Record{
		Author:    author,
		Timestamp: e.clock(),
		Topic:     topic,
		Content:   content,
	}

	var opErr error
	e.records.Compute(key, func(old []byte, loaded bool) ([]byte, bool) {
		if loaded {
			opErr = engine.NewError(engine.RetCAlreadyExists,
				fmt.Sprintf("a record already exists under key %q", key))
			return old, false
		}
		return rec.Encode(), false
	})
	if opErr != nil {
		return record.Record{}, opErr
	}
	return rec, nil
}

func (e *engineImpl) Update(key string, topic, content string, requester record.Identity) (record.Record, error) {
	var (
		opErr   error
		updated record.Record
	)
	e.records.Compute(key, func(old []byte, loaded bool) ([]byte, bool) {
		if !loaded {
			opErr = engine.NewError(engine.RetCNotFound,
				fmt.Sprintf("no record found under key %q", key))
			return nil, true
		}

		var existing record.Record
		if err := existing.Decode(old); err != nil {
			opErr = err
			return old, false
		}
		if err := engine.Authorize(existing, requester); err != nil {
			opErr = err
			return old, false
		}
		if err := engine.ValidateTopic(topic); err != nil {
			opErr = err
			return old, false
		}
		if err := engine.ValidateContent(content); err != nil {
			opErr = err
			return old, false
		}

		// Author and timestamp carry over unchanged.
		existing.Topic = topic
		existing.Content = content
		updated = existing
		return existing.Encode(), false
	})
	if opErr != nil {
		return record.Record{}, opErr
	}
	return updated, nil
}

func (e *engineImpl) Delete(key string, requester record.Identity) error {
	var opErr error
	e.records.Compute(key, func(old []byte, loaded bool) ([]byte, bool) {
		if !loaded {
			opErr = engine.NewError(engine.RetCNotFound,
				fmt.Sprintf("no record found under key %q", key))
			return nil, true
		}

		var existing record.Record
		if err := existing.Decode(old); err != nil {
			opErr = err
			return old, false
		}
		if err := engine.Authorize(existing, requester); err != nil {
			opErr = err
			return old, false
		}
		return nil, true
	})
	return opErr
}

func (e *engineImpl) Get(key string) (record.Record, bool, error) {
	encoded, loaded := e.records.Load(key)
	if !loaded {
		return record.Record{}, false, nil
	}

	var rec record.Record
	if err := rec.Decode(encoded); err != nil {
		return record.Record{}, false, err
	}
	return rec, true, nil
}

func (e *engineImpl) List(filters ...record.Filter) ([]record.Keyed, error) {
	var (
		result  []record.Keyed
		scanErr error
	)
	e.records.Range(func(key string, encoded []byte) bool {
		if !record.MatchesAll(encoded, filters) {
			return true
		}

		var rec record.Record
		if err := rec.Decode(encoded); err != nil {
			scanErr = err
			return false
		}
		result = append(result, record.Keyed{Key: key, Record: rec})
		return true
	})
	if scanErr != nil {
		return nil, scanErr
	}
	return result, nil
}

func (e *engineImpl) Close() error {
	e.records.Clear()
	return nil
}
