package dialog

import "sync"

// Step names the single pending "awaiting one more input" state tracked per
// user. Every step returns to StepNone after one subsequent input.
type Step int

const (
	StepNone Step = iota
	StepRootName
	StepSublistName
	StepRename
	StepDeleteConfirm
	StepKPID
)

func (s Step) String() string {
	switch s {
	case StepNone:
		return "none"
	case StepRootName:
		return "root-name"
	case StepSublistName:
		return "sublist-name"
	case StepRename:
		return "rename"
	case StepDeleteConfirm:
		return "delete-confirm"
	case StepKPID:
		return "catalog-id"
	default:
		return "unknown"
	}
}

// Pending carries the step plus the scalars needed to complete it.
type Pending struct {
	Step     Step
	ListID   int
	ParentID int
}

// Store holds each user's pending conversation step. Entries are addressed by
// the opaque user token; last write wins.
type Store struct {
	mu      sync.RWMutex
	pending map[string]Pending
}

func NewStore() *Store {
	return &Store{pending: make(map[string]Pending)}
}

// Get returns the user's pending step, or a zero Pending (StepNone) when
// nothing is awaited.
func (s *Store) Get(user string) Pending {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pending[user]
}

func (s *Store) Set(user string, p Pending) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.Step == StepNone {
		delete(s.pending, user)
		return
	}
	s.pending[user] = p
}

func (s *Store) Clear(user string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.pending, user)
}
