// internal/httpserver/routes_game.go
//
// HTTP routes for the daily game.
//   - GET  /state                 → current view plus queued messages/signals
//   - GET  /stats                 → statistics panel
//   - POST /intent/letter         → {"letter":"a"}
//   - POST /intent/delete         → drop last letter
//   - POST /intent/guess          → submit the word in progress
//   - POST /intent/share          → share text of a finished round
//   - POST /intent/feedback/clear → row animation finished
//   - POST /settings              → partial {"hardMode","extremeMode","darkTheme","colorBlind"}
//
// Every intent is applied to the single game store; rejected guesses are not
// HTTP errors, they come back as messages.

package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/wordlestar/internal/state"
)

// mountGame registers the game routes.
func (s *Server) mountGame(r chi.Router) {
	r.Get("/state", s.handleState)
	r.Get("/stats", s.handleStats)
	r.Route("/intent", func(r chi.Router) {
		r.Post("/letter", s.handleLetter)
		r.Post("/delete", s.intent(state.DeleteLetter{}))
		r.Post("/guess", s.intent(state.SubmitGuess{}))
		r.Post("/share", s.intent(state.Share{}))
		r.Post("/feedback/clear", s.intent(state.ClearFeedback{}))
	})
	r.Post("/settings", s.handleSettings)
}

// intentRes is the response of every intent and of GET /state.
type intentRes struct {
	View state.View `json:"view"`
	drained
}

// dispatch applies actions in order and returns what they queued.
func (s *Server) dispatch(ctx context.Context, actions ...state.Action) drained {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range actions {
		s.game.Dispatch(ctx, a)
	}
	return s.outbox.drain()
}

func (s *Server) respond(w http.ResponseWriter, d drained) {
	_ = json.NewEncoder(w).Encode(intentRes{View: s.game.View(), drained: d})
}

// intent returns a handler for a body-less intent.
func (s *Server) intent(a state.Action) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.respond(w, s.dispatch(r.Context(), a))
	}
}

// handleState returns the view and drains anything queued outside a request
// (boot signals, rollover).
func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	s.respond(w, s.dispatch(r.Context()))
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	_ = json.NewEncoder(w).Encode(s.game.View().Statistics)
}

// letterReq is the payload for /intent/letter.
type letterReq struct {
	Letter string `json:"letter"`
}

func (s *Server) handleLetter(w http.ResponseWriter, r *http.Request) {
	var req letterReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	ch, size := utf8.DecodeRuneInString(req.Letter)
	if size == 0 || size != len(req.Letter) || ch == utf8.RuneError {
		http.Error(w, `{"error":"bad_letter"}`, http.StatusBadRequest)
		return
	}
	s.respond(w, s.dispatch(r.Context(), state.AddLetter{Letter: ch}))
}

// settingsReq is the payload for /settings. Absent fields are left alone;
// "darkTheme": null returns the theme to the OS preference.
type settingsReq struct {
	HardMode    *bool           `json:"hardMode"`
	ExtremeMode *bool           `json:"extremeMode"`
	DarkTheme   json.RawMessage `json:"darkTheme"`
	ColorBlind  *bool           `json:"colorBlind"`
}

func (s *Server) handleSettings(w http.ResponseWriter, r *http.Request) {
	var req settingsReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}

	var actions []state.Action
	if req.HardMode != nil {
		actions = append(actions, state.SetHardMode{On: *req.HardMode})
	}
	if req.ExtremeMode != nil {
		actions = append(actions, state.SetExtremeMode{On: *req.ExtremeMode})
	}
	if len(req.DarkTheme) > 0 {
		var dark *bool
		if !bytes.Equal(req.DarkTheme, []byte("null")) {
			dark = new(bool)
			if err := json.Unmarshal(req.DarkTheme, dark); err != nil {
				http.Error(w, `{"error":"bad_dark_theme"}`, http.StatusBadRequest)
				return
			}
		}
		actions = append(actions, state.SetDarkTheme{Dark: dark})
	}
	if req.ColorBlind != nil {
		actions = append(actions, state.SetColorBlind{On: *req.ColorBlind})
	}

	log.Debug().Int("changes", len(actions)).Msg("settings")
	s.respond(w, s.dispatch(r.Context(), actions...))
}
