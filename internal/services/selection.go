package services

import "sync"

// Selection tracks which project the user has open. The zero value has
// nothing selected.
type Selection struct {
	mu sync.Mutex
	id string
}

func (s *Selection) Select(id string) {
	s.mu.Lock()
	s.id = id
	s.mu.Unlock()
}

func (s *Selection) Selected() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.id
}

func (s *Selection) Clear() {
	s.Select("")
}

// Forget clears the selection when it points at the deleted project.
func (s *Selection) Forget(deletedID string) {
	s.mu.Lock()
	if s.id == deletedID {
		s.id = ""
	}
	s.mu.Unlock()
}
