package testutil

import (
	"context"
	"encoding/json"
	"sync"
	"time"
)

// FakeCache is an in-memory SummaryCache implementation for tests. It stores
// JSON payloads like the Redis-backed store and records the TTL of each Set.
type FakeCache struct {
	mu      sync.Mutex
	entries map[string]fakeEntry

	// GetErr and SetErr, when non-nil, are returned by every Get/Set call.
	GetErr error
	SetErr error
}

type fakeEntry struct {
	payload []byte
	ttl     time.Duration
}

// NewFakeCache creates an empty FakeCache.
func NewFakeCache() *FakeCache {
	return &FakeCache{entries: make(map[string]fakeEntry)}
}

// Get unmarshals the stored payload for key into dest.
func (f *FakeCache) Get(_ context.Context, key string, dest any) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.GetErr != nil {
		return false, f.GetErr
	}

	entry, ok := f.entries[key]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(entry.payload, dest); err != nil {
		return false, err
	}
	return true, nil
}

// Set stores value as JSON under key, recording the TTL.
func (f *FakeCache) Set(_ context.Context, key string, value any, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.SetErr != nil {
		return f.SetErr
	}

	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.entries[key] = fakeEntry{payload: payload, ttl: ttl}
	return nil
}

// Delete removes key.
func (f *FakeCache) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	delete(f.entries, key)
	return nil
}

// Has reports whether key is present.
func (f *FakeCache) Has(key string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	_, ok := f.entries[key]
	return ok
}

// TTLOf returns the TTL recorded for key by the last Set.
func (f *FakeCache) TTLOf(key string) (time.Duration, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	entry, ok := f.entries[key]
	return entry.ttl, ok
}

// Corrupt overwrites the payload for key with bytes that will not unmarshal.
func (f *FakeCache) Corrupt(key string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.entries[key]; ok {
		f.entries[key] = fakeEntry{payload: []byte("{not json"), ttl: f.entries[key].ttl}
	}
}
