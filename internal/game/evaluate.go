// internal/game/evaluate.go
//
// Word evaluation for the rules engine.
// Responsibilities:
//   - Score a guess against the solution using the classic two‑pass algorithm.
//   - Aggregate the best-known evaluation of every letter across a history
//     of guesses (keyboard colouring, extreme-mode absent check).
//
// Inputs are assumed to be validated 5-letter lowercase words; anything else
// is a caller defect, not a runtime error.
package game

// Evaluate compares guess against solution and returns one Evaluation per position.
//
// Pass 1:
//   - Mark exact matches as correct and take them out of the solution's letter counts.
//
// Pass 2:
//   - For each remaining guess letter: if the solution still has an unused copy,
//     mark present and consume it; otherwise mark absent.
//
// The number of correct+present marks for any letter never exceeds its count
// in the solution, and exact matches always win over duplicate credit.
func Evaluate(solution, guess string) Row {
	var res Row
	available := NewCountingSet([]byte(solution)...)

	// First pass: correct letters.
	for i := 0; i < WordLength; i++ {
		if guess[i] == solution[i] {
			available.Sub(guess[i])
			res[i] = EvalCorrect
		}
	}

	// Second pass: presents and absents for the rest.
	for i := 0; i < WordLength; i++ {
		if res[i] != "" {
			continue
		}
		if available.Has(guess[i]) {
			available.Sub(guess[i])
			res[i] = EvalPresent
		} else {
			res[i] = EvalAbsent
		}
	}
	return res
}

// Solved reports whether every letter of r is correct.
func (r Row) Solved() bool {
	for _, e := range r {
		if e != EvalCorrect {
			return false
		}
	}
	return true
}

// KeyEvaluations folds the evaluations of every non-empty guess into one
// best-known evaluation per letter. correct beats present beats absent; among
// equal ranks the first assignment is kept.
func KeyEvaluations(solution string, guesses []string) map[byte]Evaluation {
	out := make(map[byte]Evaluation)
	for _, word := range guesses {
		if word == "" {
			continue
		}
		row := Evaluate(solution, word)
		for i := 0; i < WordLength; i++ {
			letter := word[i]
			if row[i].rank() > out[letter].rank() {
				out[letter] = row[i]
			}
		}
	}
	return out
}
