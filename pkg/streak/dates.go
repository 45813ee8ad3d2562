package streak

import "time"

const day = 24 * time.Hour

// Day truncates t to its civil date, expressed as midnight UTC. All board
// dates use this form so day arithmetic never crosses a DST boundary.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func isWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

func daysBetween(a, b time.Time) int {
	return int(Day(b).Sub(Day(a)) / day)
}

// firstWeekday returns t itself when it is Mon-Fri, else the following Monday.
func firstWeekday(t time.Time) time.Time {
	t = Day(t)
	for isWeekend(t) {
		t = t.AddDate(0, 0, 1)
	}
	return t
}

// mondayOf returns the Monday of the Mon-Fri week containing weekday t.
func mondayOf(t time.Time) time.Time {
	return t.AddDate(0, 0, -(int(t.Weekday()) - 1))
}

// IndexToDate maps a 1-based day index onto a calendar date.
//
// With weekdaysOnly set, only Mon-Fri dates are counted. start counts as
// index 1 when it is a weekday; a weekend start is moved to the next Monday.
func IndexToDate(start time.Time, idx int, weekdaysOnly bool) time.Time {
	start = Day(start)
	if !weekdaysOnly {
		return start.AddDate(0, 0, idx-1)
	}
	first := firstWeekday(start)
	pos := int(first.Weekday()) - 1 + idx - 1
	return mondayOf(first).AddDate(0, 0, (pos/5)*7+pos%5)
}

// DateToIndex is the inverse of IndexToDate. It reports false when date has
// no index: before the first counted day, or a weekend on a weekdays-only
// board.
func DateToIndex(start, date time.Time, weekdaysOnly bool) (int, bool) {
	start, date = Day(start), Day(date)
	if !weekdaysOnly {
		idx := daysBetween(start, date) + 1
		return idx, idx >= 1
	}
	if isWeekend(date) {
		return 0, false
	}
	first := firstWeekday(start)
	if date.Before(first) {
		return 0, false
	}
	weeks := daysBetween(mondayOf(first), mondayOf(date)) / 7
	idx := weeks*5 + int(date.Weekday()) - int(first.Weekday()) + 1
	return idx, true
}

// TodayIndex returns the index of now's civil date on b. ok is false when
// today has no cell on the board.
func TodayIndex(b *Board, now time.Time) (idx int, ok bool) {
	idx, ok = DateToIndex(b.StartDate, now, b.WeekdaysOnly)
	if !ok || idx > b.Days {
		return idx, false
	}
	return idx, true
}
