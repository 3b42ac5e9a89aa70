// internal/daily/daily.go
//
// Day/puzzle selection for the daily game.
// Responsibilities:
//   - Truncate wall-clock time to local midnight in the configured location.
//   - Count whole days since the launch date (rounded, so DST shifts don't skew it).
//   - Map a day index onto the ordered answers list.
//   - Report when the next puzzle unlocks.
//
// The selected word only changes at local midnight. Callers that hold a day
// must re-derive it at NextPuzzleTime instead of caching it forever.

package daily

import (
	"math"
	"time"
)

// Clock is the source of "now". Tests substitute a fixed clock.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

// Now implements Clock.
func (SystemClock) Now() time.Time { return time.Now() }

// Selector maps calendar days to puzzle indexes and solutions.
type Selector struct {
	answers []string
	loc     *time.Location
	clock   Clock
	launch  time.Time
}

// NewSelector builds a Selector over answers. A nil loc means time.Local and
// a nil clock means SystemClock.
func NewSelector(answers []string, loc *time.Location, clock Clock) *Selector {
	if loc == nil {
		loc = time.Local
	}
	if clock == nil {
		clock = SystemClock{}
	}
	return &Selector{
		answers: answers,
		loc:     loc,
		clock:   clock,
		launch:  time.Date(2021, time.June, 19, 0, 0, 0, 0, loc),
	}
}

// Location is the time zone days are counted in.
func (s *Selector) Location() *time.Location { return s.loc }

// Now returns the clock's current time in the selector's location.
func (s *Selector) Now() time.Time { return s.clock.Now().In(s.loc) }

// Today returns the current date at local midnight.
func (s *Selector) Today() time.Time { return Midnight(s.clock.Now(), s.loc) }

// PuzzleIndex returns the number of days between the launch date and day.
func (s *Selector) PuzzleIndex(day time.Time) int {
	return DayDifference(s.launch, day, s.loc)
}

// Solution returns the answer for a puzzle index. Indexes wrap around the list;
// an empty list yields "".
func (s *Selector) Solution(index int) string {
	n := len(s.answers)
	if n == 0 {
		return ""
	}
	return s.answers[((index%n)+n)%n]
}

// SolutionFor is Solution(PuzzleIndex(day)).
func (s *Selector) SolutionFor(day time.Time) string {
	return s.Solution(s.PuzzleIndex(day))
}

// NextPuzzleTime is tomorrow at local midnight.
func (s *Selector) NextPuzzleTime() time.Time {
	return s.Today().AddDate(0, 0, 1)
}

// Midnight truncates t to the start of its calendar day in loc.
func Midnight(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// DayDifference returns the number of calendar days from a to b in loc,
// rounded to the nearest whole day.
func DayDifference(a, b time.Time, loc *time.Location) int {
	d := Midnight(b, loc).Sub(Midnight(a, loc))
	return int(math.Round(d.Hours() / 24))
}

// FromMillis converts epoch milliseconds to a time; 0 is the zero time.
func FromMillis(ms int64) time.Time {
	if ms == 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms)
}

// DateKey returns YYYY-MM-DD in loc.
func DateKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("2006-01-02")
}
