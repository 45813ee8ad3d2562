package streak

import "sync"

type EventKind int

const (
	DayCompleted EventKind = iota + 1
	DayCleared
	NoteChanged
	DifficultyChanged
)

func (k EventKind) String() string {
	switch k {
	case DayCompleted:
		return "day_completed"
	case DayCleared:
		return "day_cleared"
	case NoteChanged:
		return "note_changed"
	case DifficultyChanged:
		return "difficulty_changed"
	default:
		return "unknown"
	}
}

// Event describes a state change on a board. Presentation code subscribes
// to these for celebrations instead of hooking into the mutation itself.
type Event struct {
	Kind    EventKind
	BoardID string
	Idx     int
	Frozen  bool
}

// Subscription is a registered event handler. Close it on teardown.
type Subscription struct {
	once   sync.Once
	cancel func()
}

func (s *Subscription) Close() {
	if s == nil {
		return
	}
	s.once.Do(s.cancel)
}

type hub struct {
	mu   sync.Mutex
	next int
	subs map[int]func(Event)
}

func (h *hub) subscribe(fn func(Event)) *Subscription {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.subs == nil {
		h.subs = map[int]func(Event){}
	}
	id := h.next
	h.next++
	h.subs[id] = fn
	return &Subscription{cancel: func() {
		h.mu.Lock()
		delete(h.subs, id)
		h.mu.Unlock()
	}}
}

// emit calls handlers outside the lock so a handler may unsubscribe.
func (h *hub) emit(events ...Event) {
	h.mu.Lock()
	fns := make([]func(Event), 0, len(h.subs))
	for _, fn := range h.subs {
		fns = append(fns, fn)
	}
	h.mu.Unlock()
	for _, e := range events {
		for _, fn := range fns {
			fn(e)
		}
	}
}
