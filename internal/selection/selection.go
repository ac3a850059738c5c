// Package selection tracks the record ids marked for bulk actions and
// applies bulk mutations across the selected set.
package selection

import (
	"sort"
	"sync"

	"github.com/opsdeck/backoffice/internal/records"
)

// Selection is a set of record ids scoped to one domain at a time.
type Selection struct {
	mu     sync.Mutex
	domain records.Domain
	ids    map[string]struct{}
}

func NewSelection(domain records.Domain) *Selection {
	return &Selection{
		domain: domain,
		ids:    make(map[string]struct{}),
	}
}

func (s *Selection) Domain() records.Domain {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.domain
}

// Reset switches the selection to another domain, dropping every selected
// id.
func (s *Selection) Reset(domain records.Domain) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.domain = domain
	s.ids = make(map[string]struct{})
}

// Toggle flips membership of an id and reports whether it is now selected.
func (s *Selection) Toggle(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.ids[id]; ok {
		delete(s.ids, id)
		return false
	}
	s.ids[id] = struct{}{}
	return true
}

// SelectAllVisible replaces the selection with exactly the ids of the
// currently visible page. This is deliberately page-scoped, not
// filtered-set-scoped.
func (s *Selection) SelectAllVisible(ids []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ids = make(map[string]struct{}, len(ids))
	for _, id := range ids {
		s.ids[id] = struct{}{}
	}
}

func (s *Selection) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ids = make(map[string]struct{})
}

func (s *Selection) Selected(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.ids[id]
	return ok
}

func (s *Selection) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.ids)
}

// IDs returns the selected ids in sorted order.
func (s *Selection) IDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]string, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
