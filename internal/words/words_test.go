package words

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadEmbedded(t *testing.T) {
	t.Parallel()
	l, err := Load("", "")
	require.NoError(t, err)

	a, g := l.Stats()
	require.Greater(t, a, 0)
	require.Greater(t, g, a)
	for _, w := range l.Answers() {
		require.True(t, l.Has(w), "answer %q must be guessable", w)
	}
	require.True(t, l.Has("fools"))
	require.Equal(t, "focus", l.Answers()[267%a], "launch-day offset for 2022-03-13")
}

func TestLoadFiles(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	answers := filepath.Join(dir, "answers.txt")
	allowed := filepath.Join(dir, "allowed.txt")
	require.NoError(t, os.WriteFile(answers, []byte("# comment\nFocus\ncigar\nnope\ncigar\n\n"), 0o600))
	require.NoError(t, os.WriteFile(allowed, []byte("tools\nfools\nbad-1\n"), 0o600))

	l, err := Load(answers, allowed)
	require.NoError(t, err)
	require.Equal(t, []string{"focus", "cigar"}, l.Answers())
	require.True(t, l.Has("tools"))
	require.False(t, l.Has("bad-1"))

	l, err = Load("", allowed)
	require.NoError(t, err)
	require.Equal(t, []string{"tools", "fools"}, l.Answers())
}

func TestLoadErrors(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	empty := filepath.Join(dir, "empty.txt")
	require.NoError(t, os.WriteFile(empty, []byte("# nothing\n"), 0o600))

	_, err := Load("", empty)
	require.ErrorIs(t, err, ErrEmpty)

	_, err = Load(filepath.Join(dir, "missing.txt"), empty)
	require.ErrorIs(t, err, os.ErrNotExist)
}
