package streak

import "sync"

// Store is the mutation surface for one board. MemoryStore owns its board;
// ControlledStore delegates every change to an external owner.
type Store interface {
	// Board returns a snapshot the caller may keep.
	Board() *Board
	Toggle(idx int) (bool, error)
	FreezeToday(todayIdx int) (bool, error)
	SetNote(idx int, text string) error
	SetDifficulty(idx int, d Difficulty) error
	Subscribe(fn func(Event)) *Subscription
}

// MemoryStore holds a board in memory.
type MemoryStore struct {
	mu    sync.Mutex
	board *Board
	hub   hub
}

func NewMemoryStore(b *Board) *MemoryStore {
	return &MemoryStore{board: b.Clone()}
}

func (s *MemoryStore) Board() *Board {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.board.Clone()
}

func (s *MemoryStore) Subscribe(fn func(Event)) *Subscription {
	return s.hub.subscribe(fn)
}

func (s *MemoryStore) apply(fn func(*Board) ([]Event, error)) error {
	s.mu.Lock()
	events, err := fn(s.board)
	s.mu.Unlock()
	if err != nil {
		return err
	}
	s.hub.emit(events...)
	return nil
}

func (s *MemoryStore) Toggle(idx int) (done bool, err error) {
	err = s.apply(func(b *Board) ([]Event, error) {
		done, err = b.Toggle(idx)
		return toggleEvents(b.ID, idx, done), err
	})
	return done, err
}

func (s *MemoryStore) FreezeToday(todayIdx int) (frozen bool, err error) {
	err = s.apply(func(b *Board) ([]Event, error) {
		frozen, err = b.FreezeToday(todayIdx)
		return freezeEvents(b.ID, todayIdx, frozen), err
	})
	return frozen, err
}

func (s *MemoryStore) SetNote(idx int, text string) error {
	return s.apply(func(b *Board) ([]Event, error) {
		if err := b.SetNote(idx, text); err != nil {
			return nil, err
		}
		return []Event{{Kind: NoteChanged, BoardID: b.ID, Idx: idx}}, nil
	})
}

func (s *MemoryStore) SetDifficulty(idx int, d Difficulty) error {
	return s.apply(func(b *Board) ([]Event, error) {
		completed, err := b.SetDifficulty(idx, d)
		return difficultyEvents(b.ID, idx, completed), err
	})
}

// Owner is the authority behind a ControlledStore, typically a persistence
// layer. Apply runs fn against the authoritative board and returns the
// updated board.
type Owner interface {
	Snapshot() (*Board, error)
	Apply(fn func(*Board) error) (*Board, error)
}

// ControlledStore forwards mutations to an Owner and caches the last board
// the owner returned.
type ControlledStore struct {
	owner Owner

	mu   sync.Mutex
	last *Board
	hub  hub
}

func NewControlledStore(owner Owner) (*ControlledStore, error) {
	b, err := owner.Snapshot()
	if err != nil {
		return nil, err
	}
	return &ControlledStore{owner: owner, last: b}, nil
}

func (s *ControlledStore) Board() *Board {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last.Clone()
}

func (s *ControlledStore) Subscribe(fn func(Event)) *Subscription {
	return s.hub.subscribe(fn)
}

func (s *ControlledStore) apply(fn func(*Board) ([]Event, error)) error {
	var events []Event
	b, err := s.owner.Apply(func(b *Board) error {
		var err error
		events, err = fn(b)
		return err
	})
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.last = b
	s.mu.Unlock()
	s.hub.emit(events...)
	return nil
}

func (s *ControlledStore) Toggle(idx int) (done bool, err error) {
	err = s.apply(func(b *Board) ([]Event, error) {
		done, err = b.Toggle(idx)
		return toggleEvents(b.ID, idx, done), err
	})
	return done, err
}

func (s *ControlledStore) FreezeToday(todayIdx int) (frozen bool, err error) {
	err = s.apply(func(b *Board) ([]Event, error) {
		frozen, err = b.FreezeToday(todayIdx)
		return freezeEvents(b.ID, todayIdx, frozen), err
	})
	return frozen, err
}

func (s *ControlledStore) SetNote(idx int, text string) error {
	return s.apply(func(b *Board) ([]Event, error) {
		if err := b.SetNote(idx, text); err != nil {
			return nil, err
		}
		return []Event{{Kind: NoteChanged, BoardID: b.ID, Idx: idx}}, nil
	})
}

func (s *ControlledStore) SetDifficulty(idx int, d Difficulty) error {
	return s.apply(func(b *Board) ([]Event, error) {
		completed, err := b.SetDifficulty(idx, d)
		return difficultyEvents(b.ID, idx, completed), err
	})
}

func toggleEvents(id string, idx int, done bool) []Event {
	if done {
		return []Event{{Kind: DayCompleted, BoardID: id, Idx: idx}}
	}
	return []Event{{Kind: DayCleared, BoardID: id, Idx: idx}}
}

func freezeEvents(id string, idx int, frozen bool) []Event {
	if !frozen {
		return nil
	}
	return []Event{{Kind: DayCompleted, BoardID: id, Idx: idx, Frozen: true}}
}

func difficultyEvents(id string, idx int, completed bool) []Event {
	events := []Event{{Kind: DifficultyChanged, BoardID: id, Idx: idx}}
	if completed {
		events = append(events, Event{Kind: DayCompleted, BoardID: id, Idx: idx})
	}
	return events
}

var (
	_ Store = (*MemoryStore)(nil)
	_ Store = (*ControlledStore)(nil)
)
