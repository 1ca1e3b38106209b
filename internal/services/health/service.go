package health

import (
	"context"
	"time"

	"docstore-backend/internal/shared/storage/object"
)

const probeTimeout = 2 * time.Second

// Status is the payload served on /health.
type Status struct {
	OK    bool   `json:"ok"`
	Store string `json:"store"`
	Error string `json:"error,omitempty"`
}

// Service encapsulates health-related checks.
type Service struct {
	store     object.Store
	storeType string
	prefix    string
}

// NewService constructs a health service that probes store with a listing under prefix.
func NewService(store object.Store, storeType, prefix string) *Service {
	return &Service{store: store, storeType: storeType, prefix: prefix}
}

// Status reports whether the object store answers a listing.
func (s *Service) Status(ctx context.Context) Status {
	st := Status{OK: true, Store: s.storeType}
	if s.store == nil {
		return st
	}
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()
	if _, err := s.store.List(ctx, s.prefix); err != nil {
		st.OK = false
		st.Error = err.Error()
	}
	return st
}
