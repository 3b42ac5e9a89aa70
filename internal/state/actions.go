package state

import (
	"context"
	"strings"
	"time"
	"unicode"

	"github.com/robalobadob/wordle/apps/wordlestar/internal/daily"
	"github.com/robalobadob/wordle/apps/wordlestar/internal/game"
	"github.com/robalobadob/wordle/apps/wordlestar/internal/stats"
)

// Message texts and lifetimes.
const (
	MsgHardModeLocked = "Hard mode can only be enabled at the start of a round"
	MsgShareCopied    = "Copied results to clipboard"
	MsgShareFailed    = "Share failed"

	invalidGuessTTL = time.Second
	winTTL          = 2500 * time.Millisecond
	systemTTL       = 1500 * time.Millisecond
	shareTTL        = 2 * time.Second
)

// winMessages is indexed by the slot of the winning guess.
var winMessages = [game.MaxGuesses]string{"Lucker Dog", "Magnificent", "Impressive", "Splendid", "Great", "Phew"}

// Action is a player or system intent. The set of intents is closed: every
// variant is declared in this file.
type Action interface {
	apply(ctx context.Context, tx *txn)
}

type (
	// Boot starts a session, or rolls it over to a new day.
	Boot struct{}
	// AddLetter appends a letter to the word in progress.
	AddLetter struct{ Letter rune }
	// DeleteLetter drops the last letter of the word in progress.
	DeleteLetter struct{}
	// SubmitGuess validates and commits the word in progress.
	SubmitGuess struct{}
	// Share hands the share text of a finished round to the Sharer.
	Share struct{}
	// SetHardMode toggles hard mode. Turning it off also turns off extreme mode.
	SetHardMode struct{ On bool }
	// SetExtremeMode toggles extreme mode. Turning it on also turns on hard mode.
	SetExtremeMode struct{ On bool }
	// SetDarkTheme sets the theme; nil follows the OS preference.
	SetDarkTheme struct{ Dark *bool }
	// SetColorBlind toggles the high-contrast palette.
	SetColorBlind struct{ On bool }
	// ClearFeedback resets the active row's feedback once its animation ends.
	ClearFeedback struct{}
)

func (Boot) apply(ctx context.Context, tx *txn) {
	s := tx.s
	first := !s.booted
	s.booted = true
	tx.day = s.selector.Today()
	lg := s.log.With().Str("day", daily.DateKey(tx.day, s.selector.Location())).Logger()

	if s.boardDiscarded {
		s.boardDiscarded = false
		tx.resetBoard()
	}

	if first && tx.importLegacy(ctx) {
		lg.Info().Msg("imported legacy game state")
		return
	}

	if tx.facts.LastPlayedTs == 0 {
		tx.resetBoard()
		if first {
			n := s.notifier
			tx.after(func(context.Context) { n.ShowHelp() })
		}
		lg.Debug().Msg("boot: first run")
		return
	}

	last := daily.FromMillis(tx.facts.LastPlayedTs)
	if daily.DayDifference(last, tx.now, s.selector.Location()) >= 1 {
		tx.resetBoard()
		lg.Info().Msg("boot: new day")
		return
	}
	if tx.snapshot().status().Terminal() {
		n := s.notifier
		tx.after(func(context.Context) { n.ShowStats() })
	}
	lg.Debug().Msg("boot: resume")
}

func (a AddLetter) apply(_ context.Context, tx *txn) {
	r := unicode.ToLower(a.Letter)
	if !game.IsLetter(r) {
		return
	}
	if tx.snapshot().status() != game.StatusInProgress || len(tx.input) >= game.WordLength {
		return
	}
	tx.input += string(r)
}

func (DeleteLetter) apply(_ context.Context, tx *txn) {
	if len(tx.input) == 0 {
		return
	}
	tx.input = tx.input[:len(tx.input)-1]
}

func (SubmitGuess) apply(_ context.Context, tx *txn) {
	sn := tx.snapshot()
	if sn.status() != game.StatusInProgress {
		return
	}
	solution := sn.solution()
	guess := tx.input
	v := game.Validator{Dict: tx.s.dict, Solution: solution}
	modes := game.Modes{Hard: tx.facts.HardMode, Extreme: tx.facts.ExtremeMode}
	if res := v.Validate(guess, tx.facts.Board[:], modes, tx.facts.FirstWords); !res.Accepted() {
		tx.feedback = FeedbackInvalid
		tx.notify(Message{Text: res.Reason, Kind: KindGame, Duration: invalidGuessTTL})
		tx.s.log.Debug().Str("reason", res.Reason).Msg("guess rejected")
		return
	}

	idx := len(sn.guesses())
	now := tx.now.UnixMilli()
	if idx == 0 {
		tx.facts.FirstPlayedTs = now
		tx.touch(keyFirstPlayed)
		if tx.facts.HardMode {
			tx.facts.FirstWords = append(tx.facts.FirstWords, guess)
			tx.touch(keyFirstWords)
		}
	}
	tx.setBoard(idx, guess)
	tx.input = ""
	tx.feedback = FeedbackIdle
	tx.facts.LastPlayedTs = now
	tx.touch(keyLastPlayed)

	switch {
	case guess == solution:
		tx.feedback = FeedbackWin
		tx.notify(Message{Text: winMessages[idx], Kind: KindGame, Duration: winTTL})
		tx.record(stats.Round{IsWin: true, NumGuesses: idx + 1})
	case idx == game.MaxGuesses-1:
		tx.notify(Message{Text: strings.ToUpper(solution), Kind: KindGame})
		tx.record(stats.Round{IsWin: false, NumGuesses: game.MaxGuesses})
	}
}

// record folds the finished round into the statistics within tx.
func (tx *txn) record(r stats.Round) {
	out := stats.Record(tx.facts.Stats, stats.Input{
		Round:         r,
		FirstPlayed:   daily.FromMillis(tx.facts.FirstPlayedTs),
		LastCompleted: daily.FromMillis(tx.facts.LastCompletedTs),
		Now:           tx.now,
	}, tx.s.selector.Location())
	tx.facts.Stats = out.Stats
	tx.facts.LastCompletedTs = out.LastCompleted.UnixMilli()
	tx.touch(keyStatistics, keyLastCompleted)
	tx.s.log.Info().
		Bool("win", r.IsWin).
		Int("guesses", r.NumGuesses).
		Int("streak", out.Stats.CurrentStreak).
		Msg("round complete")
}

func (Share) apply(_ context.Context, tx *txn) {
	text := tx.snapshot().shareText()
	if text == "" {
		return
	}
	sharer, n, lg := tx.s.sharer, tx.s.notifier, tx.s.log
	tx.after(func(ctx context.Context) {
		if err := sharer.Share(ctx, text); err != nil {
			lg.Warn().Err(err).Msg("share")
			n.ShowMessage(Message{Text: MsgShareFailed, Kind: KindSystem, Duration: shareTTL})
			return
		}
		n.ShowMessage(Message{Text: MsgShareCopied, Kind: KindSystem, Duration: shareTTL})
	})
}

func (a SetHardMode) apply(_ context.Context, tx *txn) {
	if a.On == tx.facts.HardMode {
		return
	}
	if tx.snapshot().lockHardMode() {
		tx.notify(Message{Text: MsgHardModeLocked, Kind: KindSystem, Duration: systemTTL})
		return
	}
	tx.facts.HardMode = a.On
	tx.touch(keyHardMode)
	if !a.On && tx.facts.ExtremeMode {
		tx.facts.ExtremeMode = false
		tx.touch(keyExtremeMode)
	}
}

func (a SetExtremeMode) apply(_ context.Context, tx *txn) {
	if a.On == tx.facts.ExtremeMode {
		return
	}
	if tx.snapshot().lockHardMode() {
		tx.notify(Message{Text: MsgHardModeLocked, Kind: KindSystem, Duration: systemTTL})
		return
	}
	tx.facts.ExtremeMode = a.On
	tx.touch(keyExtremeMode)
	if a.On && !tx.facts.HardMode {
		tx.facts.HardMode = true
		tx.touch(keyHardMode)
	}
}

func (a SetDarkTheme) apply(_ context.Context, tx *txn) {
	if a.Dark == nil {
		tx.facts.DarkTheme = nil
	} else {
		v := *a.Dark
		tx.facts.DarkTheme = &v
	}
	tx.touch(keyDarkTheme)
}

func (a SetColorBlind) apply(_ context.Context, tx *txn) {
	tx.facts.ColorBlind = a.On
	tx.touch(keyColorBlind)
}

func (ClearFeedback) apply(_ context.Context, tx *txn) { tx.feedback = FeedbackIdle }
