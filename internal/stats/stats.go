// Package stats aggregates per-round results into the persisted statistics.
//
// Record is pure: it takes the previous Statistics plus the round facts and
// returns the complete next value, so the caller can commit every field in a
// single write.
package stats

import (
	"math"
	"time"

	"github.com/robalobadob/wordle/apps/wordlestar/internal/daily"
)

// Guesses counts completed rounds by the number of guesses used, plus failures.
type Guesses struct {
	One   int `json:"1"`
	Two   int `json:"2"`
	Three int `json:"3"`
	Four  int `json:"4"`
	Five  int `json:"5"`
	Six   int `json:"6"`
	Fail  int `json:"fail"`
}

// bucket returns the counter for a winning round of n guesses, nil if out of range.
func (g *Guesses) bucket(n int) *int {
	switch n {
	case 1:
		return &g.One
	case 2:
		return &g.Two
	case 3:
		return &g.Three
	case 4:
		return &g.Four
	case 5:
		return &g.Five
	case 6:
		return &g.Six
	}
	return nil
}

// Distribution returns the win counts for 1..6 guesses, in order.
func (g Guesses) Distribution() [6]int {
	return [6]int{g.One, g.Two, g.Three, g.Four, g.Five, g.Six}
}

// Statistics is the persisted aggregate across all rounds.
type Statistics struct {
	Guesses       Guesses `json:"guesses"`
	CurrentStreak int     `json:"currentStreak"`
	MaxStreak     int     `json:"maxStreak"`
	AverageTime   int     `json:"averageTime"` // seconds
}

// Played is the number of completed rounds.
func (s Statistics) Played() int {
	total := s.Guesses.Fail
	for _, n := range s.Guesses.Distribution() {
		total += n
	}
	return total
}

// Won is the number of completed rounds that ended in a win.
func (s Statistics) Won() int { return s.Played() - s.Guesses.Fail }

// WinPercentage is the rounded share of wins, 0 when nothing was played.
func (s Statistics) WinPercentage() int {
	played := s.Played()
	if played == 0 {
		return 0
	}
	return int(math.Round(100 * float64(s.Won()) / float64(played)))
}

// AverageGuesses is the rounded mean number of guesses over won rounds, 0 without wins.
func (s Statistics) AverageGuesses() int {
	won := s.Won()
	if won == 0 {
		return 0
	}
	total := 0
	for i, n := range s.Guesses.Distribution() {
		total += (i + 1) * n
	}
	return int(math.Round(float64(total) / float64(won)))
}

// Round describes how a round ended.
type Round struct {
	IsWin      bool
	NumGuesses int
}

// Input carries the round result and the timestamps Record needs.
type Input struct {
	Round
	FirstPlayed   time.Time // first committed guess of the round
	LastCompleted time.Time // previous completion, zero if none
	Now           time.Time
}

// Outcome is the next value of every field Record touches.
type Outcome struct {
	Stats         Statistics
	LastCompleted time.Time
}

// Record folds one finished round into prev.
//
//   - The streak continues only if the previous completion was exactly one
//     calendar day before now.
//   - The average time is an incremental mean over all completed rounds; with no
//     prior average it is simply this round's time.
//   - Wins bump the bucket for NumGuesses, losses bump Fail and zero the streak.
func Record(prev Statistics, in Input, loc *time.Location) Outcome {
	next := prev
	priorPlayed := prev.Played()

	timeSpent := 0
	if !in.FirstPlayed.IsZero() && in.Now.After(in.FirstPlayed) {
		timeSpent = int(math.Round(in.Now.Sub(in.FirstPlayed).Seconds()))
	}
	finishedYesterday := !in.LastCompleted.IsZero() &&
		daily.DayDifference(in.LastCompleted, in.Now, loc) == 1

	if in.IsWin {
		if b := next.Guesses.bucket(in.NumGuesses); b != nil {
			*b++
		}
	} else {
		next.Guesses.Fail++
	}

	if priorPlayed == 0 || prev.AverageTime == 0 {
		next.AverageTime = timeSpent
	} else {
		sum := float64(prev.AverageTime)*float64(priorPlayed) + float64(timeSpent)
		next.AverageTime = int(math.Round(sum / float64(priorPlayed+1)))
	}

	switch {
	case !in.IsWin:
		next.CurrentStreak = 0
	case finishedYesterday:
		next.CurrentStreak = prev.CurrentStreak + 1
	default:
		next.CurrentStreak = 1
	}
	if next.CurrentStreak > next.MaxStreak {
		next.MaxStreak = next.CurrentStreak
	}

	return Outcome{Stats: next, LastCompleted: in.Now}
}
