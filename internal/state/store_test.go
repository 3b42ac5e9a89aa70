package state

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle/apps/wordlestar/internal/daily"
	"github.com/robalobadob/wordle/apps/wordlestar/internal/game"
	"github.com/robalobadob/wordle/apps/wordlestar/internal/store"
	"github.com/robalobadob/wordle/apps/wordlestar/internal/words"
)

// 2022-03-13 is puzzle 267 when days are counted in UTC.
var t0 = time.Date(2022, time.March, 13, 10, 0, 0, 0, time.UTC)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

type recorder struct {
	mu       sync.Mutex
	messages []Message
	help     int
	stats    int
}

func (r *recorder) ShowMessage(m Message) {
	r.mu.Lock()
	r.messages = append(r.messages, m)
	r.mu.Unlock()
}
func (r *recorder) ShowHelp()  { r.mu.Lock(); r.help++; r.mu.Unlock() }
func (r *recorder) ShowStats() { r.mu.Lock(); r.stats++; r.mu.Unlock() }

func (r *recorder) last() Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.messages) == 0 {
		return Message{}
	}
	return r.messages[len(r.messages)-1]
}

type fakeSharer struct {
	texts []string
	err   error
}

func (f *fakeSharer) Share(_ context.Context, text string) error {
	f.texts = append(f.texts, text)
	return f.err
}

// applyCounter records every batch written.
type applyCounter struct {
	store.Store
	batches []store.Batch
	fail    bool
}

func (a *applyCounter) Apply(ctx context.Context, b store.Batch) error {
	a.batches = append(a.batches, b)
	if a.fail {
		return errors.New("disk full")
	}
	return a.Store.Apply(ctx, b)
}

type harness struct {
	s       *Store
	clock   *fakeClock
	notes   *recorder
	sharer  *fakeSharer
	storage store.Store
}

var testDict = words.New([]string{"focus"}, []string{
	"crane", "hello", "bonus", "fools", "boxes", "cocks", "focal", "scoff", "forum",
})

func newHarness(t *testing.T, storage store.Store, clock *fakeClock) *harness {
	t.Helper()
	if storage == nil {
		storage = store.NewMemoryStore()
	}
	if clock == nil {
		clock = &fakeClock{t: t0}
	}
	h := &harness{clock: clock, notes: &recorder{}, sharer: &fakeSharer{}, storage: storage}
	nop := zerolog.Nop()
	h.s = Open(context.Background(), Deps{
		Storage:  storage,
		Selector: daily.NewSelector(testDict.Answers(), time.UTC, clock),
		Dict:     testDict,
		Notifier: h.notes,
		Sharer:   h.sharer,
		Logger:   &nop,
	})
	h.s.Dispatch(context.Background(), Boot{})
	return h
}

func (h *harness) typeWord(word string) {
	for _, r := range word {
		h.s.Dispatch(context.Background(), AddLetter{Letter: r})
	}
}

func (h *harness) guess(word string) {
	h.typeWord(word)
	h.s.Dispatch(context.Background(), SubmitGuess{})
}

func TestLetters(t *testing.T) {
	h := newHarness(t, nil, nil)

	h.typeWord("Cr4anes")
	require.Equal(t, "crane", h.s.View().Rows[0].Word, "uppercase folded, digits ignored, capped at five")

	h.s.Dispatch(context.Background(), DeleteLetter{})
	require.Equal(t, "cran", h.s.View().Rows[0].Word)

	for i := 0; i < 6; i++ {
		h.s.Dispatch(context.Background(), DeleteLetter{})
	}
	require.Equal(t, "", h.s.View().Rows[0].Word)
}

func TestSubmitRejected(t *testing.T) {
	h := newHarness(t, nil, nil)

	h.guess("cra")
	v := h.s.View()
	require.Equal(t, Message{Text: game.MsgNotEnoughLetters, Kind: KindGame, Duration: time.Second}, h.notes.last())
	require.Equal(t, FeedbackInvalid, v.Rows[0].Feedback)
	require.Equal(t, "cra", v.Rows[0].Word, "input is kept")
	require.Equal(t, 0, v.RowIndex)

	h.s.Dispatch(context.Background(), ClearFeedback{})
	require.Equal(t, FeedbackIdle, h.s.View().Rows[0].Feedback)

	h.typeWord("zz")
	h.s.Dispatch(context.Background(), SubmitGuess{})
	require.Equal(t, game.MsgNotInWordList, h.notes.last().Text)
	require.Empty(t, h.s.Facts().Board[0])
	require.Zero(t, h.s.Facts().FirstPlayedTs)
}

func TestWin(t *testing.T) {
	h := newHarness(t, nil, nil)

	h.guess("crane")
	v := h.s.View()
	require.Equal(t, game.StatusInProgress, v.Status)
	require.Equal(t, 1, v.RowIndex)
	require.Equal(t, []game.Evaluation{game.EvalPresent, game.EvalAbsent, game.EvalAbsent, game.EvalAbsent, game.EvalAbsent}, v.Rows[0].Evaluation)
	require.Nil(t, v.Rows[1].Evaluation)
	require.Equal(t, game.EvalPresent, v.Keys["c"])
	require.Equal(t, game.EvalAbsent, v.Keys["r"])

	h.clock.Advance(125 * time.Second)
	h.guess("focus")

	v = h.s.View()
	require.Equal(t, game.StatusWin, v.Status)
	require.Equal(t, 1, v.RowIndex, "row index stays on the winning row")
	require.Equal(t, FeedbackWin, v.Rows[1].Feedback)
	require.Equal(t, "focus", v.Solution)
	require.Equal(t, Message{Text: "Magnificent", Kind: KindGame, Duration: 2500 * time.Millisecond}, h.notes.last())

	f := h.s.Facts()
	require.Equal(t, 1, f.Stats.Guesses.Two)
	require.Equal(t, 1, f.Stats.CurrentStreak)
	require.Equal(t, 1, f.Stats.MaxStreak)
	require.Equal(t, 125, f.Stats.AverageTime)
	require.Equal(t, t0.Add(125*time.Second).UnixMilli(), f.LastCompletedTs)
	require.Equal(t, t0.UnixMilli(), f.FirstPlayedTs)

	h.typeWord("hello")
	require.Equal(t, "focus", h.s.View().Rows[1].Word, "no input after the round ends")
	h.s.Dispatch(context.Background(), SubmitGuess{})
	require.Equal(t, 1, h.s.Facts().Stats.Played(), "statistics recorded once")

	require.Equal(t, "Wordle* 267 2/6 in 0:02:05\n\n🟨⬜⬜⬜⬜\n🟩🟩🟩🟩🟩", v.ShareText)
}

func TestFail(t *testing.T) {
	h := newHarness(t, nil, nil)

	for _, w := range []string{"crane", "hello", "bonus", "fools", "boxes", "cocks"} {
		h.guess(w)
	}
	v := h.s.View()
	require.Equal(t, game.StatusFail, v.Status)
	require.Equal(t, 6, v.RowIndex)
	require.Equal(t, Message{Text: "FOCUS", Kind: KindGame}, h.notes.last())

	st := h.s.Facts().Stats
	require.Equal(t, 1, st.Guesses.Fail)
	require.Equal(t, 0, st.CurrentStreak)
	require.Contains(t, v.ShareText, "Wordle* 267 X/6 in 0:00:00\n\n")
}

func TestStatisticsCommittedInOneBatch(t *testing.T) {
	storage := &applyCounter{Store: store.NewMemoryStore()}
	h := newHarness(t, storage, nil)
	storage.batches = nil

	h.guess("focus")
	require.Equal(t, "Lucker Dog", h.notes.last().Text)
	require.Len(t, storage.batches, 1)
	require.ElementsMatch(t, []string{
		"boardState__0", keyFirstPlayed, keyLastPlayed, keyLastCompleted, keyStatistics,
	}, storage.batches[0].Keys())

	var saved map[string]any
	require.NoError(t, json.Unmarshal(storage.batches[0][keyStatistics], &saved))
	require.Equal(t, map[string]any{"1": 1.0, "2": 0.0, "3": 0.0, "4": 0.0, "5": 0.0, "6": 0.0, "fail": 0.0}, saved["guesses"])
}

func TestPersistFailureKeepsSession(t *testing.T) {
	storage := &applyCounter{Store: store.NewMemoryStore(), fail: true}
	h := newHarness(t, storage, nil)

	h.guess("crane")
	require.Equal(t, "crane", h.s.View().Rows[0].Word)
	require.Equal(t, 1, h.s.View().RowIndex)
}

func TestRestartRestoresState(t *testing.T) {
	storage := store.NewMemoryStore()
	clock := &fakeClock{t: t0}

	h := newHarness(t, storage, clock)
	h.s.Dispatch(context.Background(), SetHardMode{On: true})
	h.s.Dispatch(context.Background(), SetColorBlind{On: true})
	h.guess("crane")
	h.typeWord("fo")
	before := h.s.Facts()

	clock.Advance(time.Hour)
	again := newHarness(t, storage, clock)
	require.Equal(t, before, again.s.Facts())
	require.Equal(t, []string{"crane"}, again.s.Facts().FirstWords)

	v := again.s.View()
	require.Equal(t, "crane", v.Rows[0].Word)
	require.Equal(t, "", v.Rows[1].Word, "input is session-only")
	require.True(t, v.HardMode)
	require.True(t, v.LockHardMode)
	require.Zero(t, again.notes.help)
}

func TestBootRollover(t *testing.T) {
	storage := store.NewMemoryStore()
	clock := &fakeClock{t: t0}
	h := newHarness(t, storage, clock)
	h.s.Dispatch(context.Background(), SetHardMode{On: true})
	h.guess("focus")
	require.Equal(t, game.StatusWin, h.s.View().Status)

	clock.Advance(24 * time.Hour)
	h.s.Dispatch(context.Background(), Boot{})

	v := h.s.View()
	require.Equal(t, game.StatusInProgress, v.Status)
	require.Equal(t, 268, v.PuzzleIndex)
	require.Equal(t, "2022-03-14", v.Day)
	require.Equal(t, time.Date(2022, time.March, 14, 0, 0, 0, 0, time.UTC), h.s.Day())
	require.False(t, v.LockHardMode)

	f := h.s.Facts()
	require.Equal(t, [game.MaxGuesses]string{}, f.Board)
	require.Zero(t, f.FirstPlayedTs)
	require.Equal(t, []string{"focus"}, f.FirstWords, "openers survive the day")
	require.Equal(t, 1, f.Stats.Played())

	// The next session sees the reset too.
	again := newHarness(t, storage, clock)
	require.Equal(t, [game.MaxGuesses]string{}, again.s.Facts().Board)
}

func TestBootSignals(t *testing.T) {
	storage := store.NewMemoryStore()
	clock := &fakeClock{t: t0}

	h := newHarness(t, storage, clock)
	require.Equal(t, 1, h.notes.help)
	require.Zero(t, h.notes.stats)

	h.s.Dispatch(context.Background(), Boot{})
	require.Equal(t, 1, h.notes.help, "help is only offered on the first boot")

	h.guess("focus")
	again := newHarness(t, storage, clock)
	require.Zero(t, again.notes.help)
	require.Equal(t, 1, again.notes.stats)
}

func TestModeSettings(t *testing.T) {
	h := newHarness(t, nil, nil)
	ctx := context.Background()

	h.s.Dispatch(ctx, SetExtremeMode{On: true})
	v := h.s.View()
	require.True(t, v.ExtremeMode)
	require.True(t, v.HardMode, "extreme implies hard")

	h.s.Dispatch(ctx, SetHardMode{On: false})
	v = h.s.View()
	require.False(t, v.HardMode)
	require.False(t, v.ExtremeMode, "dropping hard drops extreme")

	h.guess("crane")
	h.s.Dispatch(ctx, SetHardMode{On: true})
	require.False(t, h.s.View().HardMode)
	require.Equal(t, Message{Text: MsgHardModeLocked, Kind: KindSystem, Duration: 1500 * time.Millisecond}, h.notes.last())
}

func TestHardModeRules(t *testing.T) {
	storage := store.NewMemoryStore()
	require.NoError(t, storage.Apply(context.Background(), store.Batch{keyFirstWords: []byte(`["crane"]`)}))
	h := newHarness(t, storage, nil)
	h.s.Dispatch(context.Background(), SetHardMode{On: true})

	h.guess("crane")
	require.Equal(t, game.MsgUsedOpener, h.notes.last().Text)
	h.s.Dispatch(context.Background(), DeleteLetter{})
	for i := 0; i < 4; i++ {
		h.s.Dispatch(context.Background(), DeleteLetter{})
	}

	h.guess("forum")
	h.guess("fools")
	require.Equal(t, "4th letter must be U", h.notes.last().Text)
	require.Equal(t, []string{"crane", "forum"}, h.s.Facts().FirstWords)
}

func TestShare(t *testing.T) {
	h := newHarness(t, nil, nil)
	ctx := context.Background()

	h.s.Dispatch(ctx, Share{})
	require.Empty(t, h.sharer.texts, "nothing to share mid-round")

	h.s.Dispatch(ctx, SetExtremeMode{On: true})
	h.s.Dispatch(ctx, SetColorBlind{On: true})
	dark := true
	h.s.Dispatch(ctx, SetDarkTheme{Dark: &dark})
	h.guess("scoff")
	h.clock.Advance(time.Hour + 61*time.Second)
	h.guess("focus")

	h.s.Dispatch(ctx, Share{})
	require.Equal(t, []string{"Wordle* 267 2/6** in 1:01:01\n\n🟦🟦🟦🟦⬛\n🟧🟧🟧🟧🟧"}, h.sharer.texts)
	require.Equal(t, MsgShareCopied, h.notes.last().Text)

	h.sharer.err = errors.New("no clipboard")
	h.s.Dispatch(ctx, Share{})
	require.Equal(t, Message{Text: MsgShareFailed, Kind: KindSystem, Duration: 2 * time.Second}, h.notes.last())
}

func TestDarkTheme(t *testing.T) {
	storage := store.NewMemoryStore()
	h := newHarness(t, storage, nil)
	ctx := context.Background()
	require.False(t, h.s.View().DarkTheme)

	dark := true
	h.s.Dispatch(ctx, SetDarkTheme{Dark: &dark})
	require.True(t, h.s.View().DarkTheme)
	raw, err := storage.Get(ctx, keyDarkTheme)
	require.NoError(t, err)
	require.Equal(t, "true", string(raw))

	h.s.Dispatch(ctx, SetDarkTheme{})
	require.False(t, h.s.View().DarkTheme)
	_, err = storage.Get(ctx, keyDarkTheme)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestCorruptFieldFallsBack(t *testing.T) {
	storage := store.NewMemoryStore()
	require.NoError(t, storage.Apply(context.Background(), store.Batch{
		keyHardMode:   []byte(`"yes"`),
		keyColorBlind: []byte(`true`),
		keyStatistics: []byte(`{"guesses":`),
	}))
	h := newHarness(t, storage, nil)

	f := h.s.Facts()
	require.False(t, f.HardMode)
	require.True(t, f.ColorBlind)
	require.Zero(t, f.Stats.Played())
}

func TestCorruptBoardFallsBack(t *testing.T) {
	for name, batch := range map[string]store.Batch{
		"short word": {"boardState__0": []byte(`"abc"`)},
		"uppercase":  {"boardState__0": []byte(`"CRANE"`)},
		"gap":        {"boardState__0": []byte(`""`), "boardState__1": []byte(`"crane"`)},
	} {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			storage := store.NewMemoryStore()
			batch[keyFirstPlayed] = []byte(`1647165600000`)
			batch[keyLastPlayed] = []byte(`1647165600000`)
			require.NoError(t, storage.Apply(ctx, batch))

			h := newHarness(t, storage, nil)

			require.Equal(t, [game.MaxGuesses]string{}, h.s.Facts().Board)
			require.Zero(t, h.s.Facts().FirstPlayedTs)
			require.NotPanics(t, func() { h.s.View() })
			require.Equal(t, 0, h.s.View().RowIndex)

			// The reset is written back, so the next session starts clean.
			again := newHarness(t, storage, nil)
			require.Equal(t, [game.MaxGuesses]string{}, again.s.Facts().Board)
			raw, err := storage.Get(ctx, "boardState__1")
			require.NoError(t, err)
			require.Equal(t, `""`, string(raw))
		})
	}
}
