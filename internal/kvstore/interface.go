// Package kvstore provides the persistent blob store underlying every RPAS
// collection: a durable mapping from string keys to serialized payloads.
// Collections are stored whole, one JSON array per key.
package kvstore

import "context"

// Store is the blob store contract.
//
// Get returns (nil, nil) when the key is absent; an absent key is not an
// error, callers treat it as an empty collection. Delete is idempotent.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
