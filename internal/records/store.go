package records

import (
	"sync"

	"go.uber.org/zap"
)

// Store holds the typed record collections, one per domain. It is the single
// source of truth for the view layer; consumers never mutate records in
// place. Concurrent writers are tolerated last-write-wins with no ordering
// token.
type Store struct {
	mu          sync.RWMutex
	collections map[Domain][]Record
	logger      *zap.Logger
}

func NewStore(logger *zap.Logger) *Store {
	return &Store{
		collections: make(map[Domain][]Record),
		logger:      logger,
	}
}

// GetAll returns a copy of the domain's collection.
func (s *Store) GetAll(domain Domain) []Record {
	s.mu.RLock()
	defer s.mu.RUnlock()

	collection := s.collections[domain]
	out := make([]Record, len(collection))
	copy(out, collection)
	return out
}

// ReplaceAll swaps the domain's collection wholesale. Whichever writer lands
// last wins.
func (s *Store) ReplaceAll(domain Domain, recs []Record) {
	collection := make([]Record, len(recs))
	copy(collection, recs)

	s.mu.Lock()
	s.collections[domain] = collection
	s.mu.Unlock()
}

// PatchOne applies a partial update to the record with the given id. A
// missing id is a silent no-op: the call returns false and logs, callers
// check prior existence through the view.
func (s *Store) PatchOne(domain Domain, id string, p Patch) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	collection := s.collections[domain]
	for i, rec := range collection {
		if rec.RecordID() == id {
			collection[i] = rec.Apply(p)
			return true
		}
	}

	s.logger.Warn("patch target not found",
		zap.String("domain", string(domain)),
		zap.String("id", id))
	return false
}

// Count returns the size of the domain's collection.
func (s *Store) Count(domain Domain) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.collections[domain])
}
