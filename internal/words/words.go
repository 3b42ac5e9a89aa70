// internal/words/words.go
//
// Word list management for the rules engine.
//
// Responsibilities:
//   - Load the answer and allowed-guess lists from configured files or fall back to the
//     embedded lists in the assets package.
//   - Keep lookup sets for the dictionary oracle (answers ∪ allowed).
//
// Word Lists:
//   - "answers": ordered daily solutions (exactly 5 lowercase letters). Order matters:
//     day N plays answers[N mod len].
//   - "allowed": valid guesses (always includes answers).
//
// Load behavior:
//   1. Both paths set: answers from the first, allowed guesses from the second.
//   2. Only the allowed path set: that file serves as both lists.
//   3. Neither set: embedded assets.
//
// Entries that are not 5 alphabetic letters are dropped.

package words

import (
	"errors"
	"fmt"
	"os"

	"github.com/robalobadob/wordle/apps/wordlestar/assets"
)

// ErrEmpty is returned when no usable answers were loaded.
var ErrEmpty = errors.New("words: answers list is empty")

// Lists holds the answers and the guess dictionary. It is read-only after
// construction and safe for concurrent use.
type Lists struct {
	answers    []string
	allowedSet map[string]struct{} // answers ∪ guesses
}

// New builds Lists from in-memory slices. Invalid entries are dropped.
func New(answers, allowed []string) *Lists {
	ans := filterWords(answers)
	l := &Lists{
		answers:    ans,
		allowedSet: toSet(ans),
	}
	for _, w := range filterWords(allowed) {
		l.allowedSet[w] = struct{}{}
	}
	return l
}

// Load reads the word lists as described in the package comment.
func Load(answersPath, allowedPath string) (*Lists, error) {
	var ansList, allowList []string
	var err error

	switch {
	case answersPath != "" && allowedPath != "":
		if ansList, err = readWordFile(answersPath); err != nil {
			return nil, err
		}
		if allowList, err = readWordFile(allowedPath); err != nil {
			return nil, err
		}

	case answersPath == "" && allowedPath != "":
		if allowList, err = readWordFile(allowedPath); err != nil {
			return nil, err
		}
		ansList = allowList

	default:
		if ansList, err = assets.AnswersList(); err != nil {
			return nil, fmt.Errorf("embedded answers: %w", err)
		}
		if allowList, err = assets.AllowedList(); err != nil {
			return nil, fmt.Errorf("embedded allowed: %w", err)
		}
	}

	l := New(ansList, allowList)
	if len(l.answers) == 0 {
		return nil, ErrEmpty
	}
	return l, nil
}

// readWordFile loads one word per line from a file.
func readWordFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open word list: %w", err)
	}
	defer f.Close()
	list, err := assets.ParseWords(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return list, nil
}

// filterWords keeps valid 5-letter lowercase words, preserving order and dropping duplicates.
func filterWords(list []string) []string {
	out := make([]string, 0, len(list))
	seen := make(map[string]struct{}, len(list))
	for _, w := range list {
		if len(w) != 5 || !isAlpha(w) {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	return out
}

// toSet converts a list of strings into a lookup set.
func toSet(list []string) map[string]struct{} {
	m := make(map[string]struct{}, len(list))
	for _, w := range list {
		m[w] = struct{}{}
	}
	return m
}

// isAlpha reports whether s is all lowercase ASCII letters.
func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}

// Answers returns the ordered answer list. Callers must not modify it.
func (l *Lists) Answers() []string { return l.answers }

// Has reports whether w is a valid guess (answers ∪ guesses).
func (l *Lists) Has(w string) bool {
	_, ok := l.allowedSet[w]
	return ok
}

// Stats returns counts of loaded words: (answers, allowed).
func (l *Lists) Stats() (answersCount int, allowedCount int) {
	return len(l.answers), len(l.allowedSet)
}
