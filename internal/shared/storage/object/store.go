package object

import (
	"context"
	"errors"
	"strings"
	"time"
)

var (
	// ErrNotFound is returned by Get when the key does not exist.
	ErrNotFound = errors.New("object not found")
	// ErrWrite wraps any failure of the underlying store during Put.
	ErrWrite = errors.New("object store write failed")
	// ErrRead wraps any non-not-found failure during List or Get.
	ErrRead = errors.New("object store read failed")
)

// ObjectInfo describes a stored object without its payload.
type ObjectInfo struct {
	Key          string
	Size         int64
	LastModified time.Time
}

// Object is a fully loaded stored object.
type Object struct {
	Key         string
	Data        []byte
	ContentType string
	Metadata    map[string]string
}

// Store defines the contract for saving, listing and retrieving objects by key.
type Store interface {
	Put(ctx context.Context, key string, data []byte, contentType string, metadata map[string]string) error
	List(ctx context.Context, prefix string) ([]ObjectInfo, error)
	Get(ctx context.Context, key string) (Object, error)
}

// NormalizeMetadata lower-cases metadata keys so callers see the same shape
// regardless of backend.
func NormalizeMetadata(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[strings.ToLower(k)] = v
	}
	return out
}
