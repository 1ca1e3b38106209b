package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"docstore-backend/internal/shared/storage/object"
)

type entry struct {
	data        []byte
	contentType string
	metadata    map[string]string
	modified    time.Time
}

// Store is an in-memory implementation of object.Store.
type Store struct {
	mu   sync.RWMutex
	data map[string]entry
	now  func() time.Time
}

// New constructs an empty Store.
func New() *Store {
	return &Store{
		data: make(map[string]entry),
		now:  time.Now,
	}
}

// Put stores a copy of data under key, overwriting any previous object.
func (s *Store) Put(ctx context.Context, key string, data []byte, contentType string, metadata map[string]string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", object.ErrWrite, err)
	}
	meta := make(map[string]string, len(metadata))
	for k, v := range metadata {
		meta[k] = v
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = entry{
		data:        append([]byte(nil), data...),
		contentType: contentType,
		metadata:    meta,
		modified:    s.now().UTC(),
	}
	return nil
}

// List returns objects under prefix ordered by key.
func (s *Store) List(ctx context.Context, prefix string) ([]object.ObjectInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", object.ErrRead, err)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []object.ObjectInfo{}
	for key, e := range s.data {
		if !strings.HasPrefix(key, prefix) {
			continue
		}
		out = append(out, object.ObjectInfo{
			Key:          key,
			Size:         int64(len(e.data)),
			LastModified: e.modified,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

// Get returns a copy of the object stored under key.
func (s *Store) Get(ctx context.Context, key string) (object.Object, error) {
	if err := ctx.Err(); err != nil {
		return object.Object{}, fmt.Errorf("%w: %v", object.ErrRead, err)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.data[key]
	if !ok {
		return object.Object{}, object.ErrNotFound
	}
	return object.Object{
		Key:         key,
		Data:        append([]byte(nil), e.data...),
		ContentType: e.contentType,
		Metadata:    object.NormalizeMetadata(e.metadata),
	}, nil
}

// Len reports the number of stored objects.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

var _ object.Store = (*Store)(nil)
