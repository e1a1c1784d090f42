// Package blobstore is a thin gateway over a namespaced key/value object
// store, used to persist and retrieve JSON documents for callback auditing.
//
// Read and list failures degrade to a typed error value the caller can
// surface structurally; write failures propagate to the caller.
package blobstore

import (
	"context"
	"encoding/json"
	"strings"
	"time"
)

// Entry is one listed object key.
type Entry struct {
	Key string `json:"key"`
}

// Listing is the result of a prefix listing.
type Listing struct {
	Entries    []Entry `json:"entries"`
	MatchCount int     `json:"matchCount"`
}

// StoreError is the structured error envelope for blob store failures.
// Field names are lowercase on the wire; this is the one canonical shape.
type StoreError struct {
	Message string `json:"message"`
	Bucket  string `json:"bucket"`
	Key     string `json:"key,omitempty"`
}

func (e *StoreError) Error() string {
	if e.Key != "" {
		return e.Message + " (bucket=" + e.Bucket + " key=" + e.Key + ")"
	}
	return e.Message + " (bucket=" + e.Bucket + ")"
}

// Store exposes the three operations the mock API needs from an object
// store. Implementations perform one network round-trip per call with no
// retry and no circuit breaking.
type Store interface {
	// Get retrieves a stored JSON document by key.
	Get(ctx context.Context, key string) (json.RawMessage, error)

	// Put stores a document as JSON under the key.
	Put(ctx context.Context, key string, doc any) error

	// List returns all keys under the prefix.
	List(ctx context.Context, prefix string) (*Listing, error)
}

// ObjectKey builds the audit record key for an instance:
// <instanceId>/<instanceId>_<ISO8601 timestamp with ':' and '.' replaced by '_'>.json
func ObjectKey(instanceID string, t time.Time) string {
	ts := t.UTC().Format("2006-01-02T15:04:05.000Z07:00")
	ts = strings.Map(func(r rune) rune {
		if r == ':' || r == '.' {
			return '_'
		}
		return r
	}, ts)
	return instanceID + "/" + instanceID + "_" + ts + ".json"
}
