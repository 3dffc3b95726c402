package editor

import "sync"

// SandboxCollectionID addresses the demo store drag page instead of a real collection.
const SandboxCollectionID = 0

// CatalogFactory returns the catalog backing a collection.
type CatalogFactory func(collectionID int) Catalog

type key struct {
	session      string
	collectionID int
}

// Store owns the editors of every signed-in session.
type Store struct {
	mu      sync.Mutex
	editors map[key]*Editor
	factory CatalogFactory
}

func NewStore(factory CatalogFactory) *Store {
	return &Store{
		editors: make(map[key]*Editor),
		factory: factory,
	}
}

// Get returns the session's editor for collectionID, creating it on first use.
func (s *Store) Get(session string, collectionID int) *Editor {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := key{session, collectionID}
	if e, ok := s.editors[k]; ok {
		return e
	}
	e := New(s.factory(collectionID), collectionID)
	s.editors[k] = e
	return e
}

// Drop closes and forgets one editor.
func (s *Store) Drop(session string, collectionID int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := key{session, collectionID}
	if e, ok := s.editors[k]; ok {
		e.Close()
		delete(s.editors, k)
	}
}

// DropSession closes every editor of session.
func (s *Store) DropSession(session string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for k, e := range s.editors {
		if k.session == session {
			e.Close()
			delete(s.editors, k)
			n++
		}
	}
	return n
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.editors)
}
