package streak

// Range is a maximal run of consecutive completed day indices.
type Range struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

func (r Range) Len() int {
	return r.End - r.Start + 1
}

func (r Range) Contains(idx int) bool {
	return idx >= r.Start && idx <= r.End
}

// Stats are the streak figures derived from a completed set.
type Stats struct {
	Current int     `json:"current"`
	Max     int     `json:"max"`
	Ranges  []Range `json:"ranges"`
}

// RangeFor returns the run containing idx, if any.
func (s Stats) RangeFor(idx int) (Range, bool) {
	for _, r := range s.Ranges {
		if r.Contains(idx) {
			return r, true
		}
		if r.Start > idx {
			break
		}
	}
	return Range{}, false
}

// ComputeStreaks walks the completed indices in ascending order collecting
// runs. Current is the length of the run containing todayIdx, or 0 when
// today is not completed.
func ComputeStreaks(completed IndexSet, todayIdx int) Stats {
	days := completed.Sorted()
	if len(days) == 0 {
		return Stats{}
	}

	var st Stats
	start, run := days[0], 1
	closeRun := func(end int) {
		r := Range{Start: start, End: end}
		st.Ranges = append(st.Ranges, r)
		st.Max = max(st.Max, run)
		if r.Contains(todayIdx) {
			st.Current = run
		}
	}

	for i := 1; i < len(days); i++ {
		if days[i]-days[i-1] == 1 {
			run++
			continue
		}
		closeRun(days[i-1])
		start, run = days[i], 1
	}
	closeRun(days[len(days)-1])

	return st
}

// RunEndingAt returns the length of the consecutive run that ends exactly at
// idx, or 0 when idx is not completed.
func RunEndingAt(completed IndexSet, idx int) int {
	n := 0
	for completed.Has(idx - n) {
		n++
	}
	return n
}
