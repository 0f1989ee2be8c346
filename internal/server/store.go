package server

import (
	"sync"

	"github.com/glasspane-dev/glasspane/internal/domain/values"
)

// documentStore keeps recently built documents in memory so the preview
// endpoint can serve them by ID. Old entries are evicted in insertion
// order once the cap is reached; a render result is disposable and the
// host can always re-render.
type documentStore struct {
	mu    sync.RWMutex
	max   int
	order []values.RenderID
	docs  map[string]string
}

func newDocumentStore(max int) *documentStore {
	if max <= 0 {
		max = 32
	}
	return &documentStore{
		max:  max,
		docs: make(map[string]string),
	}
}

func (s *documentStore) Put(id values.RenderID, doc string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.docs[id.String()]; !ok {
		s.order = append(s.order, id)
	}
	s.docs[id.String()] = doc

	for len(s.order) > s.max {
		oldest := s.order[0]
		s.order = s.order[1:]
		delete(s.docs, oldest.String())
	}
}

func (s *documentStore) Get(id values.RenderID) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[id.String()]
	return doc, ok
}

func (s *documentStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.docs)
}
