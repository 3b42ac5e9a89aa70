// internal/game/types.go
//
// Core type definitions for the rules engine.
// Defines:
//   - Evaluation: per-letter result of a guess (correct/present/absent).
//   - Row: the five evaluations of one committed guess.
//   - Status: derived round status (in progress/win/fail).
//   - Modes: the hard/extreme difficulty flags.

package game

// Board dimensions. The game is fixed at five letters and six guesses.
const (
	WordLength = 5
	MaxGuesses = 6
)

// Evaluation represents the classification of a single letter in a guess.
// Possible values:
//   - "correct": letter is in the solution at this position.
//   - "present": letter is in the solution at a different position.
//   - "absent":  letter has no remaining occurrence in the solution.
type Evaluation string

const (
	EvalCorrect Evaluation = "correct"
	EvalPresent Evaluation = "present"
	EvalAbsent  Evaluation = "absent"
)

// rank orders evaluations by how much they reveal; unknown letters rank 0.
func (e Evaluation) rank() int {
	switch e {
	case EvalCorrect:
		return 3
	case EvalPresent:
		return 2
	case EvalAbsent:
		return 1
	}
	return 0
}

// Row holds the evaluations of one committed guess, indexed by letter position.
type Row [WordLength]Evaluation

// Status is the derived state of the current round.
type Status string

const (
	StatusInProgress Status = "IN_PROGRESS"
	StatusWin        Status = "WIN"
	StatusFail       Status = "FAIL"
)

// Terminal reports whether no further guesses are accepted.
func (s Status) Terminal() bool { return s == StatusWin || s == StatusFail }

// Modes are the difficulty flags consulted by the validator.
// Extreme is only honoured together with Hard.
type Modes struct {
	Hard    bool
	Extreme bool
}

// IsLetter reports whether r is a lowercase ASCII letter.
func IsLetter(r rune) bool { return r >= 'a' && r <= 'z' }

// IsWord reports whether w is exactly WordLength lowercase letters.
func IsWord(w string) bool { return len(w) == WordLength && isAlpha(w) }

// isAlpha checks that a string consists only of lowercase a–z.
func isAlpha(s string) bool {
	for _, r := range s {
		if !IsLetter(r) {
			return false
		}
	}
	return true
}
