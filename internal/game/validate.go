package game

import (
	"slices"
	"strconv"
	"strings"
)

// Rejection messages. Formatted ones take an ordinal and/or an upper-case letter.
const (
	MsgNotEnoughLetters = "Not enough letters"
	MsgNotInWordList    = "Not in word list"
	MsgUsedOpener       = "Already used as opening guess"
)

// Dictionary is the set of words accepted as guesses.
type Dictionary interface {
	Has(word string) bool
}

// Result is the outcome of validating a candidate guess.
// A zero Result is an acceptance.
type Result struct {
	Reason string
}

// Accepted reports whether the candidate may be committed.
func (r Result) Accepted() bool { return r.Reason == "" }

func reject(reason string) Result { return Result{Reason: reason} }

// Validator decides whether a candidate guess is legal for one puzzle.
type Validator struct {
	Dict     Dictionary
	Solution string
}

// Validate runs the checks in order and returns the first failure.
// history holds the committed guesses of the round in slot order (empty
// strings are ignored); openers is the list of previous hard-mode openers.
// It never mutates its arguments.
func (v Validator) Validate(candidate string, history []string, modes Modes, openers []string) Result {
	if len(candidate) != WordLength {
		return reject(MsgNotEnoughLetters)
	}
	if !isAlpha(candidate) || !v.Dict.Has(candidate) {
		return reject(MsgNotInWordList)
	}
	if !modes.Hard {
		return Result{}
	}

	past := committed(history)
	if len(past) == 0 {
		if slices.Contains(openers, candidate) {
			return reject(MsgUsedOpener)
		}
		return Result{}
	}

	if r := v.checkPrevious(candidate, past[len(past)-1]); !r.Accepted() {
		return r
	}
	if modes.Extreme {
		return v.checkExtreme(candidate, past)
	}
	return Result{}
}

// checkPrevious enforces hard mode against the immediately preceding guess:
// correct letters stay in place and every revealed letter is reused.
func (v Validator) checkPrevious(candidate, prev string) Result {
	row := Evaluate(v.Solution, prev)
	var revealed []byte
	for i := 0; i < WordLength; i++ {
		if row[i] != EvalAbsent && !slices.Contains(revealed, prev[i]) {
			revealed = append(revealed, prev[i])
		}
		if row[i] == EvalCorrect && candidate[i] != prev[i] {
			return reject(Ordinal(i+1) + " letter must be " + upper(prev[i]))
		}
	}
	for _, letter := range revealed {
		if strings.IndexByte(candidate, letter) < 0 {
			return reject("Guess must contain " + upper(letter))
		}
	}
	return Result{}
}

// checkExtreme enforces extreme mode against the whole history: present
// letters must move, and letters known to be absent may not be used.
func (v Validator) checkExtreme(candidate string, past []string) Result {
	for _, guess := range past {
		row := Evaluate(v.Solution, guess)
		for i := 0; i < WordLength; i++ {
			if row[i] == EvalPresent && guess[i] == candidate[i] {
				return reject(Ordinal(i+1) + " letter must not be " + upper(candidate[i]))
			}
		}
	}
	known := KeyEvaluations(v.Solution, past)
	for i := 0; i < len(candidate); i++ {
		if known[candidate[i]] == EvalAbsent {
			return reject("Word does not contain " + upper(candidate[i]))
		}
	}
	return Result{}
}

// committed drops empty slots, keeping slot order.
func committed(history []string) []string {
	out := make([]string, 0, len(history))
	for _, w := range history {
		if w != "" {
			out = append(out, w)
		}
	}
	return out
}

func upper(b byte) string { return strings.ToUpper(string(b)) }

// Ordinal formats n as an English ordinal: 1st, 2nd, 3rd, 4th, 11th, 22nd, 113th.
func Ordinal(n int) string {
	suffix := "th"
	switch d := n % 100; {
	case d >= 11 && d <= 13:
	case d%10 == 1:
		suffix = "st"
	case d%10 == 2:
		suffix = "nd"
	case d%10 == 3:
		suffix = "rd"
	}
	return strconv.Itoa(n) + suffix
}
