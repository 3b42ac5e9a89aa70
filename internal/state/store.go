// internal/state/store.go
//
// Game state store for the daily puzzle.
// Responsibilities:
//   - Own every persisted fact of the player (board, timestamps, settings,
//     first words, statistics) plus the session-only word in progress.
//   - Apply player intents as transactions: all facts an intent changes are
//     committed together and flushed to storage as one batch.
//   - Derive read-only views (status, row index, evaluations, share text).
//
// Notes:
//   - Intents are serialized by a mutex. Collaborator calls (notifier, sharer)
//     run after the lock is released, so a collaborator may read the View.
//   - A storage failure never rolls back the in-memory state; it is logged.

package state

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/wordlestar/internal/daily"
	"github.com/robalobadob/wordle/apps/wordlestar/internal/game"
	"github.com/robalobadob/wordle/apps/wordlestar/internal/store"
)

// MessageKind tells the presentation layer who a message is about.
type MessageKind string

const (
	KindGame   MessageKind = "game"   // about the current guess or round
	KindSystem MessageKind = "system" // about settings or sharing
)

// Message is a short-lived notification. A zero Duration means it stays until dismissed.
type Message struct {
	Text     string
	Kind     MessageKind
	Duration time.Duration
}

// Notifier shows messages and opens the help and statistics panels.
type Notifier interface {
	ShowMessage(m Message)
	ShowHelp()
	ShowStats()
}

// Sharer hands the share text to the platform (share sheet or clipboard).
type Sharer interface {
	Share(ctx context.Context, text string) error
}

// Feedback is the transient state of the row currently being edited.
type Feedback string

const (
	FeedbackIdle    Feedback = "idle"
	FeedbackInvalid Feedback = "invalid"
	FeedbackWin     Feedback = "win"
)

// Deps are the collaborators of a Store. Storage, Selector and Dict are required.
type Deps struct {
	Storage     store.Store
	Selector    *daily.Selector
	Dict        game.Dictionary
	Notifier    Notifier
	Sharer      Sharer
	PrefersDark bool
	Logger      *zerolog.Logger
}

// Store is the single owner of the game state. Safe for concurrent use.
type Store struct {
	mu sync.Mutex

	storage     store.Store
	selector    *daily.Selector
	dict        game.Dictionary
	notifier    Notifier
	sharer      Sharer
	prefersDark bool
	log         zerolog.Logger

	facts    Facts
	input    string
	feedback Feedback
	day      time.Time // pinned by Boot
	booted   bool

	boardDiscarded bool // loadFacts dropped an unusable board; Boot rewrites it
}

// Open creates a Store and loads the persisted facts. Call Dispatch(ctx, Boot{})
// before any other intent.
func Open(ctx context.Context, d Deps) *Store {
	lg := log.Logger
	if d.Logger != nil {
		lg = *d.Logger
	}
	s := &Store{
		storage:     d.Storage,
		selector:    d.Selector,
		dict:        d.Dict,
		notifier:    d.Notifier,
		sharer:      d.Sharer,
		prefersDark: d.PrefersDark,
		log:         lg.With().Str("component", "state").Str("session", uuid.NewString()).Logger(),
		feedback:    FeedbackIdle,
	}
	if s.notifier == nil {
		s.notifier = nopNotifier{}
	}
	if s.sharer == nil {
		s.sharer = nopSharer{}
	}
	s.facts = s.loadFacts(ctx)
	s.day = s.selector.Today()
	return s
}

// Dispatch applies one intent. Intents are applied one at a time, in call order.
func (s *Store) Dispatch(ctx context.Context, a Action) {
	s.mu.Lock()
	tx := s.begin()
	a.apply(ctx, tx)
	effects := s.commit(ctx, tx)
	s.mu.Unlock()

	for _, fx := range effects {
		fx(ctx)
	}
}

// View returns a snapshot of every derived value.
func (s *Store) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot().view()
}

// Facts returns a copy of the persisted facts.
func (s *Store) Facts() Facts {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.facts.clone()
}

// Day is the date the store is currently playing.
func (s *Store) Day() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.day
}

// NextPuzzleTime is when the next puzzle unlocks.
func (s *Store) NextPuzzleTime() time.Time { return s.selector.NextPuzzleTime() }

// ---------------------------- transactions --------------------------------

// txn is a pending change set. Intents mutate it freely; nothing is visible
// to readers until commit.
type txn struct {
	s        *Store
	now      time.Time
	facts    Facts
	input    string
	feedback Feedback
	day      time.Time
	dirty    map[string]struct{}
	drop     []string // keys outside Facts to delete
	effects  []func(context.Context)
}

func (s *Store) begin() *txn {
	return &txn{
		s:        s,
		now:      s.selector.Now(),
		facts:    s.facts.clone(),
		input:    s.input,
		feedback: s.feedback,
		day:      s.day,
		dirty:    map[string]struct{}{},
	}
}

// commit publishes tx and writes its dirty keys as one batch.
func (s *Store) commit(ctx context.Context, tx *txn) []func(context.Context) {
	s.facts = tx.facts
	s.input = tx.input
	s.feedback = tx.feedback
	s.day = tx.day

	if len(tx.dirty) == 0 && len(tx.drop) == 0 {
		return tx.effects
	}
	b, err := encode(&s.facts, tx.dirty)
	if err == nil {
		for _, k := range tx.drop {
			b.Delete(k)
		}
		err = s.storage.Apply(ctx, b)
	}
	if err != nil {
		s.log.Warn().Err(err).Strs("keys", b.Keys()).Msg("persist state")
	}
	return tx.effects
}

// touch marks keys for the commit batch.
func (tx *txn) touch(keys ...string) {
	for _, k := range keys {
		tx.dirty[k] = struct{}{}
	}
}

// setBoard writes one slot.
func (tx *txn) setBoard(idx int, word string) {
	tx.facts.Board[idx] = word
	tx.touch(boardKey(idx))
}

// resetBoard clears every slot and the round start time.
func (tx *txn) resetBoard() {
	for i := range tx.facts.Board {
		tx.setBoard(i, "")
	}
	tx.facts.FirstPlayedTs = 0
	tx.touch(keyFirstPlayed)
	tx.input = ""
	tx.feedback = FeedbackIdle
}

// after queues a collaborator call to run once the lock is released.
func (tx *txn) after(fx func(context.Context)) { tx.effects = append(tx.effects, fx) }

// notify queues a message for the notifier.
func (tx *txn) notify(m Message) {
	n := tx.s.notifier
	tx.after(func(context.Context) { n.ShowMessage(m) })
}

// snapshot sees tx as if it were committed.
func (tx *txn) snapshot() snapshot {
	return snapshot{
		facts:       tx.facts,
		input:       tx.input,
		feedback:    tx.feedback,
		day:         tx.day,
		selector:    tx.s.selector,
		prefersDark: tx.s.prefersDark,
	}
}

func (s *Store) snapshot() snapshot {
	return snapshot{
		facts:       s.facts,
		input:       s.input,
		feedback:    s.feedback,
		day:         s.day,
		selector:    s.selector,
		prefersDark: s.prefersDark,
	}
}

type nopNotifier struct{}

func (nopNotifier) ShowMessage(Message) {}
func (nopNotifier) ShowHelp()           {}
func (nopNotifier) ShowStats()          {}

type nopSharer struct{}

func (nopSharer) Share(context.Context, string) error { return nil }
