package state

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/enescakir/emoji"

	"github.com/robalobadob/wordle/apps/wordlestar/internal/daily"
	"github.com/robalobadob/wordle/apps/wordlestar/internal/game"
	"github.com/robalobadob/wordle/apps/wordlestar/internal/stats"
)

// snapshot is a consistent read of the owned state. All derived values are
// pure functions of it.
type snapshot struct {
	facts       Facts
	input       string
	feedback    Feedback
	day         time.Time
	selector    *daily.Selector
	prefersDark bool
}

func (sn snapshot) puzzleIndex() int { return sn.selector.PuzzleIndex(sn.day) }

func (sn snapshot) solution() string { return sn.selector.SolutionFor(sn.day) }

// guesses returns the committed words in slot order.
func (sn snapshot) guesses() []string {
	out := make([]string, 0, game.MaxGuesses)
	for _, w := range sn.facts.Board {
		if w == "" {
			break
		}
		out = append(out, w)
	}
	return out
}

func (sn snapshot) status() game.Status {
	guesses := sn.guesses()
	solution := sn.solution()
	for _, w := range guesses {
		if w == solution {
			return game.StatusWin
		}
	}
	if len(guesses) == game.MaxGuesses {
		return game.StatusFail
	}
	return game.StatusInProgress
}

// rowIndex is the slot being edited; after a win it stays on the winning row.
func (sn snapshot) rowIndex() int {
	n := len(sn.guesses())
	if sn.status() == game.StatusWin {
		n--
	}
	return n
}

// wordInRow is the committed word of slot idx, or the live input on the active row.
func (sn snapshot) wordInRow(idx int) string {
	if idx == sn.rowIndex() && sn.status() == game.StatusInProgress {
		return sn.input
	}
	if idx < 0 || idx >= game.MaxGuesses {
		return ""
	}
	return sn.facts.Board[idx]
}

// evaluation is nil until slot idx is committed.
func (sn snapshot) evaluation(idx int) *game.Row {
	if idx < 0 || idx >= game.MaxGuesses || sn.facts.Board[idx] == "" {
		return nil
	}
	row := game.Evaluate(sn.solution(), sn.facts.Board[idx])
	return &row
}

func (sn snapshot) keyEvaluations() map[byte]game.Evaluation {
	return game.KeyEvaluations(sn.solution(), sn.guesses())
}

// lockHardMode is true once the round has any committed guess or has ended.
func (sn snapshot) lockHardMode() bool {
	return sn.status() != game.StatusInProgress || sn.rowIndex() > 0
}

func (sn snapshot) rowFeedback(idx int) Feedback {
	if idx == sn.rowIndex() {
		return sn.feedback
	}
	return FeedbackIdle
}

func (sn snapshot) displayDarkTheme() bool {
	if sn.facts.DarkTheme != nil {
		return *sn.facts.DarkTheme
	}
	return sn.prefersDark
}

// shareText renders the finished round; "" while it is still in progress.
func (sn snapshot) shareText() string {
	status := sn.status()
	if status == game.StatusInProgress {
		return ""
	}

	count := "X"
	if status == game.StatusWin {
		count = strconv.Itoa(sn.rowIndex() + 1)
	}
	marker := ""
	switch {
	case sn.facts.ExtremeMode:
		marker = "**"
	case sn.facts.HardMode:
		marker = "*"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Wordle* %d %s/%d%s in %s\n", sn.puzzleIndex(), count, game.MaxGuesses, marker,
		formatElapsed(sn.facts.LastPlayedTs-sn.facts.FirstPlayedTs))

	solution := sn.solution()
	for _, w := range sn.guesses() {
		b.WriteByte('\n')
		for _, e := range game.Evaluate(solution, w) {
			b.WriteString(sn.square(e))
		}
	}
	return b.String()
}

func (sn snapshot) square(e game.Evaluation) string {
	switch e {
	case game.EvalCorrect:
		if sn.facts.ColorBlind {
			return emoji.OrangeSquare.String()
		}
		return emoji.GreenSquare.String()
	case game.EvalPresent:
		if sn.facts.ColorBlind {
			return emoji.BlueSquare.String()
		}
		return emoji.YellowSquare.String()
	}
	if sn.displayDarkTheme() {
		return emoji.BlackLargeSquare.String()
	}
	return emoji.WhiteLargeSquare.String()
}

// formatElapsed renders epoch-ms durations as H:MM:SS.
func formatElapsed(ms int64) string {
	if ms < 0 {
		ms = 0
	}
	secs := ms / 1000
	return fmt.Sprintf("%d:%02d:%02d", secs/3600, secs/60%60, secs%60)
}

// ------------------------------ views -------------------------------------

// RowView is one board row as presented.
type RowView struct {
	Word       string            `json:"word"`
	Evaluation []game.Evaluation `json:"evaluation"` // null until committed
	Feedback   Feedback          `json:"feedback"`
}

// StatsView is the statistics panel.
type StatsView struct {
	stats.Statistics
	Played         int    `json:"played"`
	Won            int    `json:"won"`
	WinPercentage  int    `json:"winPercentage"`
	AverageGuesses int    `json:"averageGuesses"`
	Distribution   [6]int `json:"distribution"`
}

// NewStatsView derives the panel values from st.
func NewStatsView(st stats.Statistics) StatsView {
	return StatsView{
		Statistics:     st,
		Played:         st.Played(),
		Won:            st.Won(),
		WinPercentage:  st.WinPercentage(),
		AverageGuesses: st.AverageGuesses(),
		Distribution:   st.Guesses.Distribution(),
	}
}

// View is every value the presentation layer reads.
type View struct {
	PuzzleIndex  int                        `json:"puzzleIndex"`
	Day          string                     `json:"day"`
	Status       game.Status                `json:"status"`
	RowIndex     int                        `json:"rowIndex"`
	Rows         [game.MaxGuesses]RowView   `json:"rows"`
	Keys         map[string]game.Evaluation `json:"keys"`
	HardMode     bool                       `json:"hardMode"`
	ExtremeMode  bool                       `json:"extremeMode"`
	LockHardMode bool                       `json:"lockHardMode"`
	ColorBlind   bool                       `json:"colorBlind"`
	DarkTheme    bool                       `json:"darkTheme"`
	Solution     string                     `json:"solution,omitempty"` // only once the round is over
	ShareText    string                     `json:"shareText,omitempty"`
	Statistics   StatsView                  `json:"statistics"`
	NextPuzzle   time.Time                  `json:"nextPuzzle"`
}

func (sn snapshot) view() View {
	v := View{
		PuzzleIndex:  sn.puzzleIndex(),
		Day:          daily.DateKey(sn.day, sn.selector.Location()),
		Status:       sn.status(),
		RowIndex:     sn.rowIndex(),
		Keys:         map[string]game.Evaluation{},
		HardMode:     sn.facts.HardMode,
		ExtremeMode:  sn.facts.ExtremeMode,
		LockHardMode: sn.lockHardMode(),
		ColorBlind:   sn.facts.ColorBlind,
		DarkTheme:    sn.displayDarkTheme(),
		ShareText:    sn.shareText(),
		Statistics:   NewStatsView(sn.facts.Stats),
		NextPuzzle:   sn.selector.NextPuzzleTime(),
	}
	for i := range v.Rows {
		v.Rows[i] = RowView{Word: sn.wordInRow(i), Feedback: sn.rowFeedback(i)}
		if row := sn.evaluation(i); row != nil {
			v.Rows[i].Evaluation = row[:]
		}
	}
	for letter, e := range sn.keyEvaluations() {
		v.Keys[string(letter)] = e
	}
	if v.Status.Terminal() {
		v.Solution = sn.solution()
	}
	return v
}
