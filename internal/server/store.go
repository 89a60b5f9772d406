package server

import (
	"context"
	"sync"
	"time"

	"github.com/matzehuels/boardfit/pkg/errors"
	"github.com/matzehuels/boardfit/pkg/pcb"
	"github.com/matzehuels/boardfit/pkg/pcb/constraint"
	"github.com/matzehuels/boardfit/pkg/pcb/score"
	"github.com/matzehuels/boardfit/pkg/pipeline"
)

// DefaultListLimit bounds list responses when the client does not ask
// for a specific page size.
const DefaultListLimit = 50

// Record is a stored solve result. Options keeps the request that
// produced it so later renders run under the same rule parameters.
type Record struct {
	ID        string            `json:"id" bson:"_id"`
	CreatedAt time.Time         `json:"created_at" bson:"created_at"`
	Hash      string            `json:"hash" bson:"hash"`
	Seed      uint64            `json:"seed" bson:"seed"`
	Seeded    bool              `json:"seeded" bson:"seeded"`
	Placement pcb.Placement     `json:"placement" bson:"placement"`
	Report    constraint.Report `json:"report" bson:"report"`
	Score     score.Breakdown   `json:"score" bson:"score"`
	Options   pipeline.Options  `json:"options" bson:"options"`
}

// Store is the interface for placement record storage backends.
type Store interface {
	// Insert stores a record.
	Insert(ctx context.Context, rec Record) error

	// Get retrieves a record by ID. Missing records return an error
	// with code NOT_FOUND.
	Get(ctx context.Context, id string) (Record, error)

	// List returns the most recent records, newest first. A limit of
	// zero or less means DefaultListLimit.
	List(ctx context.Context, limit int) ([]Record, error)

	// Close releases backend resources.
	Close(ctx context.Context) error
}

// MemoryStore keeps records in process memory. It is the default
// backend for development and tests; records do not survive restarts.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]Record
	order   []string
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]Record)}
}

// Insert stores a record.
func (s *MemoryStore) Insert(_ context.Context, rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.records[rec.ID]; !exists {
		s.order = append(s.order, rec.ID)
	}
	s.records[rec.ID] = rec
	return nil
}

// Get retrieves a record by ID.
func (s *MemoryStore) Get(_ context.Context, id string) (Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[id]
	if !ok {
		return Record{}, errors.New(errors.ErrCodeNotFound, "placement %s not found", id)
	}
	return rec, nil
}

// List returns the most recent records, newest first.
func (s *MemoryStore) List(_ context.Context, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Record, 0, limit)
	for i := len(s.order) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, s.records[s.order[i]])
	}
	return out, nil
}

// Close is a no-op for the in-memory store.
func (s *MemoryStore) Close(context.Context) error {
	return nil
}
