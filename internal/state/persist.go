package state

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/robalobadob/wordle/apps/wordlestar/internal/game"
	"github.com/robalobadob/wordle/apps/wordlestar/internal/stats"
	"github.com/robalobadob/wordle/apps/wordlestar/internal/store"
)

// Storage keys. Every persisted field has its own key so a write only touches
// what changed; the statistics aggregate is one document so it updates atomically.
const (
	keyFirstPlayed   = "firstPlayedTs"
	keyLastPlayed    = "lastPlayedTs"
	keyLastCompleted = "lastCompletedTs"
	keyHardMode      = "hardMode"
	keyExtremeMode   = "extremeMode"
	keyColorBlind    = "colorBlind"
	keyDarkTheme     = "darkTheme"
	keyFirstWords    = "first-words"
	keyStatistics    = "statistics"
)

// boardKey is the storage key of guess slot idx.
func boardKey(idx int) string { return fmt.Sprintf("boardState__%d", idx) }

// Facts are the persisted fields owned by the Store. Everything shown to the
// player is derived from these plus the session-only input.
type Facts struct {
	Board           [game.MaxGuesses]string
	FirstPlayedTs   int64 // epoch ms
	LastPlayedTs    int64
	LastCompletedTs int64
	HardMode        bool
	ExtremeMode     bool
	ColorBlind      bool
	DarkTheme       *bool // nil: follow the OS preference
	FirstWords      []string
	Stats           stats.Statistics
}

// clone returns a deep copy so a transaction can't leak into the committed facts.
func (f Facts) clone() Facts {
	out := f
	out.FirstWords = append([]string(nil), f.FirstWords...)
	if f.DarkTheme != nil {
		v := *f.DarkTheme
		out.DarkTheme = &v
	}
	return out
}

// field binds a storage key to the Facts member it persists.
type field struct {
	key string
	ptr func(f *Facts) any
}

// fields lists every persisted key, in the order they are loaded.
func fields() []field {
	out := make([]field, 0, game.MaxGuesses+9)
	for i := 0; i < game.MaxGuesses; i++ {
		i := i
		out = append(out, field{boardKey(i), func(f *Facts) any { return &f.Board[i] }})
	}
	return append(out,
		field{keyFirstPlayed, func(f *Facts) any { return &f.FirstPlayedTs }},
		field{keyLastPlayed, func(f *Facts) any { return &f.LastPlayedTs }},
		field{keyLastCompleted, func(f *Facts) any { return &f.LastCompletedTs }},
		field{keyHardMode, func(f *Facts) any { return &f.HardMode }},
		field{keyExtremeMode, func(f *Facts) any { return &f.ExtremeMode }},
		field{keyColorBlind, func(f *Facts) any { return &f.ColorBlind }},
		field{keyDarkTheme, func(f *Facts) any { return &f.DarkTheme }},
		field{keyFirstWords, func(f *Facts) any { return &f.FirstWords }},
		field{keyStatistics, func(f *Facts) any { return &f.Stats }},
	)
}

// fieldByKey returns the binding for key.
func fieldByKey(key string) (field, bool) {
	for _, f := range fields() {
		if f.key == key {
			return f, true
		}
	}
	return field{}, false
}

// loadFacts reads every persisted field. Missing keys keep their defaults;
// unreadable or corrupt values are logged and also fall back to defaults.
func (s *Store) loadFacts(ctx context.Context) Facts {
	var f Facts
	for _, fd := range fields() {
		raw, err := s.storage.Get(ctx, fd.key)
		if errors.Is(err, store.ErrNotFound) {
			continue
		}
		if err != nil {
			s.log.Warn().Err(err).Str("key", fd.key).Msg("read persisted field")
			continue
		}
		// Decode into scratch first so a half-decoded value never lands in f.
		var scratch Facts
		if err := json.Unmarshal(raw, fd.ptr(&scratch)); err != nil {
			s.log.Warn().Err(err).Str("key", fd.key).Msg("parse persisted field")
			continue
		}
		_ = json.Unmarshal(raw, fd.ptr(&f))
	}
	if f.FirstWords == nil {
		f.FirstWords = []string{}
	}
	if !validBoard(f.Board) {
		s.log.Warn().Strs("board", f.Board[:]).Msg("discard persisted board")
		f.Board = [game.MaxGuesses]string{}
		f.FirstPlayedTs = 0
		s.boardDiscarded = true
	}
	return f
}

// validBoard reports whether every slot is empty or a word, with no gap
// before a committed guess.
func validBoard(b [game.MaxGuesses]string) bool {
	gap := false
	for _, w := range b {
		switch {
		case w == "":
			gap = true
		case gap || !game.IsWord(w):
			return false
		}
	}
	return true
}

// encode builds the storage batch for the given dirty keys.
func encode(f *Facts, dirty map[string]struct{}) (store.Batch, error) {
	b := store.Batch{}
	for key := range dirty {
		fd, ok := fieldByKey(key)
		if !ok {
			return nil, fmt.Errorf("state: unknown field %q", key)
		}
		if key == keyDarkTheme && f.DarkTheme == nil {
			b.Delete(key)
			continue
		}
		v, err := json.Marshal(fd.ptr(f))
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", key, err)
		}
		b.Put(key, v)
	}
	return b, nil
}
