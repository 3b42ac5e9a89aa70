package httpserver

import (
	"context"
	"sync"

	"github.com/robalobadob/wordle/apps/wordlestar/internal/state"
)

// Outbox collects what the game store asks the presentation layer to do.
// It is both the store's Notifier and its Sharer: on this API "sharing"
// hands the text back to the client, which owns the clipboard.
type Outbox struct {
	mu        sync.Mutex
	messages  []message
	showHelp  bool
	showStats bool
	shared    string
}

// message is the wire form of state.Message.
type message struct {
	Text       string `json:"text"`
	Kind       string `json:"kind"`
	DurationMs int64  `json:"durationMs"` // 0: until dismissed
}

// NewOutbox returns an empty Outbox.
func NewOutbox() *Outbox { return &Outbox{} }

// ShowMessage implements state.Notifier.
func (o *Outbox) ShowMessage(m state.Message) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.messages = append(o.messages, message{Text: m.Text, Kind: string(m.Kind), DurationMs: m.Duration.Milliseconds()})
}

// ShowHelp implements state.Notifier.
func (o *Outbox) ShowHelp() {
	o.mu.Lock()
	o.showHelp = true
	o.mu.Unlock()
}

// ShowStats implements state.Notifier.
func (o *Outbox) ShowStats() {
	o.mu.Lock()
	o.showStats = true
	o.mu.Unlock()
}

// Share implements state.Sharer.
func (o *Outbox) Share(_ context.Context, text string) error {
	o.mu.Lock()
	o.shared = text
	o.mu.Unlock()
	return nil
}

// drained is everything queued since the last drain.
type drained struct {
	Messages  []message `json:"messages"`
	ShowHelp  bool      `json:"showHelp,omitempty"`
	ShowStats bool      `json:"showStats,omitempty"`
	Shared    string    `json:"shared,omitempty"`
}

func (o *Outbox) drain() drained {
	o.mu.Lock()
	defer o.mu.Unlock()
	d := drained{Messages: o.messages, ShowHelp: o.showHelp, ShowStats: o.showStats, Shared: o.shared}
	if d.Messages == nil {
		d.Messages = []message{}
	}
	o.messages, o.showHelp, o.showStats, o.shared = nil, false, false, ""
	return d
}
