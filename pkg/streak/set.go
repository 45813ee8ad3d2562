package streak

import (
	"encoding/json"
	"slices"
)

// IndexSet is a set of day indices. It marshals as a sorted JSON array.
type IndexSet map[int]struct{}

func NewIndexSet(idx ...int) IndexSet {
	s := make(IndexSet, len(idx))
	for _, i := range idx {
		s[i] = struct{}{}
	}
	return s
}

func (s IndexSet) Has(idx int) bool {
	_, ok := s[idx]
	return ok
}

func (s IndexSet) Add(idx int) {
	s[idx] = struct{}{}
}

func (s IndexSet) Remove(idx int) {
	delete(s, idx)
}

func (s IndexSet) Len() int {
	return len(s)
}

// Sorted returns the members in ascending order.
func (s IndexSet) Sorted() []int {
	out := make([]int, 0, len(s))
	for i := range s {
		out = append(out, i)
	}
	slices.Sort(out)
	return out
}

func (s IndexSet) Clone() IndexSet {
	out := make(IndexSet, len(s))
	for i := range s {
		out[i] = struct{}{}
	}
	return out
}

// SubsetOf reports whether every member of s is in other.
func (s IndexSet) SubsetOf(other IndexSet) bool {
	for i := range s {
		if !other.Has(i) {
			return false
		}
	}
	return true
}

func (s IndexSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Sorted())
}

func (s *IndexSet) UnmarshalJSON(data []byte) error {
	var idx []int
	if err := json.Unmarshal(data, &idx); err != nil {
		return err
	}
	*s = NewIndexSet(idx...)
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}
