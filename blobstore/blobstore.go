// Package blobstore persists opaque JSON snapshots under string keys.
//
// The journal never stores records individually: every mutation rewrites the
// whole collection under one key, so a backend only needs whole-value
// get/put/delete semantics.
package blobstore

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when the key has never been written or was
// deleted.
var ErrNotFound = errors.New("blob not found")

// Store is a key-value blob store. Put replaces the full value.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}
