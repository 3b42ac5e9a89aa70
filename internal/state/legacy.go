package state

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/robalobadob/wordle/apps/wordlestar/internal/game"
	"github.com/robalobadob/wordle/apps/wordlestar/internal/store"
)

// keyLegacy holds the single-blob game state written by older releases.
const keyLegacy = "gameState"

// legacyFields maps blob fields onto the per-field keys. The board is
// handled separately because it depends on the stored solution.
var legacyFields = []struct{ from, to string }{
	{"hardMode", keyHardMode},
	{"lastPlayedTs", keyLastPlayed},
	{"lastCompletedTs", keyLastCompleted},
}

// importLegacy moves a legacy blob into the per-field layout within tx and
// schedules the blob for deletion. It reports whether a blob was found.
func (tx *txn) importLegacy(ctx context.Context) bool {
	lg := tx.s.log.With().Str("key", keyLegacy).Logger()

	raw, err := tx.s.storage.Get(ctx, keyLegacy)
	if errors.Is(err, store.ErrNotFound) {
		return false
	}
	if err != nil {
		lg.Warn().Err(err).Msg("read legacy state")
		return false
	}
	tx.drop = append(tx.drop, keyLegacy)

	var blob map[string]json.RawMessage
	if err := json.Unmarshal(raw, &blob); err != nil || blob == nil {
		lg.Warn().Err(err).Msg("parse legacy state, discarding")
		return false
	}

	for _, m := range legacyFields {
		v, ok := blob[m.from]
		if !ok || isNull(v) {
			continue
		}
		fd, _ := fieldByKey(m.to)
		var scratch Facts
		if err := json.Unmarshal(v, fd.ptr(&scratch)); err != nil {
			lg.Warn().Err(err).Str("field", m.from).Msg("skip legacy field")
			continue
		}
		_ = json.Unmarshal(v, fd.ptr(&tx.facts))
		tx.touch(m.to)
	}

	var solution string
	if v, ok := blob["solution"]; ok {
		_ = json.Unmarshal(v, &solution)
	}
	if !strings.EqualFold(solution, tx.snapshot().solution()) {
		// Stored for another day: the board and the opener history can't be trusted.
		tx.resetBoard()
		tx.facts.FirstWords = []string{}
		tx.touch(keyFirstWords)
		return true
	}

	var board []string
	if v, ok := blob["boardState"]; ok {
		if err := json.Unmarshal(v, &board); err != nil {
			lg.Warn().Err(err).Str("field", "boardState").Msg("skip legacy field")
		}
	}
	var slots [game.MaxGuesses]string
	for i := 0; i < len(board) && i < game.MaxGuesses; i++ {
		slots[i] = strings.ToLower(board[i])
	}
	if !validBoard(slots) {
		lg.Warn().Strs("board", board).Msg("discard legacy board")
		tx.resetBoard()
		return true
	}
	for i, w := range slots {
		tx.setBoard(i, w)
	}
	return true
}

func isNull(v json.RawMessage) bool { return bytes.Equal(bytes.TrimSpace(v), []byte("null")) }
