package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const (
	C = EvalCorrect
	P = EvalPresent
	A = EvalAbsent
)

func TestEvaluate(t *testing.T) {
	t.Parallel()
	cases := []struct {
		solution, guess string
		want            Row
	}{
		{"focus", "focus", Row{C, C, C, C, C}},
		{"focus", "fools", Row{C, C, A, A, C}},
		{"focus", "cafes", Row{P, A, P, A, C}},
		{"focus", "bloom", Row{A, A, P, A, A}},
		{"focus", "blame", Row{A, A, A, A, A}},
		{"speed", "eerie", Row{P, P, A, A, A}},
		{"speed", "erase", Row{P, A, A, P, P}},
		{"crane", "eerie", Row{A, A, P, A, C}},
		{"hello", "llama", Row{P, P, A, A, A}},
		{"hello", "lolly", Row{A, P, C, C, A}},
	}
	for _, c := range cases {
		c := c
		t.Run(c.solution+"/"+c.guess, func(t *testing.T) {
			t.Parallel()
			got := Evaluate(c.solution, c.guess)
			require.Equal(t, c.want, got)
			require.Equal(t, got, Evaluate(c.solution, c.guess), "evaluation must be deterministic")
		})
	}
}

func TestEvaluateNeverOvercredits(t *testing.T) {
	t.Parallel()
	words := []string{"speed", "eerie", "erase", "hello", "lolly", "llama", "focus", "fools", "abbey", "babes", "geese"}
	for _, solution := range words {
		for _, guess := range words {
			row := Evaluate(solution, guess)
			credited := NewCountingSet[byte]()
			for i := 0; i < WordLength; i++ {
				if guess[i] == solution[i] {
					require.Equal(t, EvalCorrect, row[i], "%s/%s position %d", solution, guess, i)
				}
				if row[i] != EvalAbsent {
					credited.Add(guess[i], 1)
				}
			}
			inSolution := NewCountingSet([]byte(solution)...)
			for i := 0; i < WordLength; i++ {
				require.LessOrEqual(t, credited.Get(guess[i]), inSolution.Get(guess[i]), "%s/%s letter %c", solution, guess, guess[i])
			}
		}
	}
}

func TestRowSolved(t *testing.T) {
	t.Parallel()
	require.True(t, Row{C, C, C, C, C}.Solved())
	require.False(t, Row{C, C, C, C, P}.Solved())
	require.False(t, Row{}.Solved())
}

func TestKeyEvaluations(t *testing.T) {
	t.Parallel()

	t.Run("correct beats later absent", func(t *testing.T) {
		keys := KeyEvaluations("focus", []string{"fools"})
		require.Equal(t, EvalCorrect, keys['o'])
		require.Equal(t, EvalCorrect, keys['f'])
		require.Equal(t, EvalAbsent, keys['l'])
	})

	t.Run("present is not downgraded by absent", func(t *testing.T) {
		keys := KeyEvaluations("focus", []string{"ssxxx"})
		require.Equal(t, EvalPresent, keys['s'])
		require.Equal(t, EvalAbsent, keys['x'])
	})

	t.Run("present upgraded by later correct", func(t *testing.T) {
		keys := KeyEvaluations("focus", []string{"cafes", "focus"})
		require.Equal(t, EvalCorrect, keys['c'])
		require.Equal(t, EvalAbsent, keys['a'])
	})

	t.Run("empty slots ignored", func(t *testing.T) {
		keys := KeyEvaluations("focus", []string{"", "", ""})
		require.Empty(t, keys)
	})
}
