package blobstore

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"sync"
)

// MemoryStore is an in-memory Store for tests and for running the mock API
// without object-store credentials.
type MemoryStore struct {
	mu      sync.RWMutex
	objects map[string]json.RawMessage

	// FailPuts forces Put to fail, for exercising the write error path.
	FailPuts bool
}

// NewMemory creates an empty in-memory store.
func NewMemory() *MemoryStore {
	return &MemoryStore{objects: make(map[string]json.RawMessage)}
}

// Get retrieves a stored document.
func (s *MemoryStore) Get(_ context.Context, key string) (json.RawMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.objects[key]
	if !ok {
		return nil, &StoreError{
			Message: "could not retrieve and/or parse document: key does not exist",
			Bucket:  "memory",
			Key:     key,
		}
	}
	return data, nil
}

// Put stores a document.
func (s *MemoryStore) Put(_ context.Context, key string, doc any) error {
	if s.FailPuts {
		return &StoreError{Message: "could not save document: puts disabled", Bucket: "memory", Key: key}
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = data
	return nil
}

// List returns all keys under the prefix, sorted.
func (s *MemoryStore) List(_ context.Context, prefix string) (*Listing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	listing := &Listing{Entries: []Entry{}}
	for key := range s.objects {
		if strings.HasPrefix(key, prefix) {
			listing.Entries = append(listing.Entries, Entry{Key: key})
		}
	}
	sort.Slice(listing.Entries, func(i, j int) bool {
		return listing.Entries[i].Key < listing.Entries[j].Key
	})
	listing.MatchCount = len(listing.Entries)
	return listing, nil
}
