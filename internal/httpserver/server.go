// internal/httpserver/server.go
//
// HTTP server wiring for the Wordle* presentation API.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health".
//   - Game endpoints: GET /state, GET /stats, POST /intent/*, POST /settings.
//   - Rollover: re-boots the game state at every local midnight.
//
// Notes:
//   - One server plays one session; there are no accounts.
//   - Messages and help/stats signals raised by the engine are queued in an
//     Outbox and drained into the next response.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/wordlestar/internal/state"
)

// Options tune the server.
type Options struct {
	ClientOrigin   string        // CORS origin, default http://localhost:5173
	RequestTimeout time.Duration // default 10s
	WordCounts     func() (answers, allowed int)
}

// Server bundles router, game state and the outbox it reports through.
type Server struct {
	r      *chi.Mux
	game   *state.Store
	outbox *Outbox
	mu     sync.Mutex // pairs each intent with the outbox entries it produced
}

// New constructs a Server, installs middleware, and registers routes.
// outbox must be the Notifier and Sharer the game store was opened with.
func New(game *state.Store, outbox *Outbox, opts Options) *Server {
	if opts.ClientOrigin == "" {
		opts.ClientOrigin = "http://localhost:5173"
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 10 * time.Second
	}
	s := &Server{r: chi.NewRouter(), game: game, outbox: outbox}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                    // add X-Request-ID
	s.r.Use(chimw.RealIP)                       // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(chimw.Recoverer)                    // recover from panics
	s.r.Use(chimw.Timeout(opts.RequestTimeout)) // bound handler time
	s.r.Use(jsonContentType)                    // default JSON responses
	s.r.Use(cors(opts.ClientOrigin))

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"wordlestar","endpoints":["/health","/state","/stats","POST /intent/*","POST /settings"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	if opts.WordCounts != nil {
		s.r.Get("/debug/words", func(w http.ResponseWriter, r *http.Request) {
			a, g := opts.WordCounts()
			_ = json.NewEncoder(w).Encode(map[string]int{"answers": a, "allowed": g})
		})
	}

	s.mountGame(s.r)

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"not_found","path":"`+r.URL.Path+`"}`, http.StatusNotFound)
	})

	return s
}

// Start serves HTTP on addr and runs the midnight rollover until ctx ends,
// then shuts down gracefully.
func (s *Server) Start(ctx context.Context, addr string) error {
	hs := &http.Server{Addr: addr, Handler: s.r, ReadHeaderTimeout: 5 * time.Second}

	go s.runRollover(ctx)

	errc := make(chan error, 1)
	go func() { errc <- hs.ListenAndServe() }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := hs.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// runRollover dispatches Boot at each local midnight so a long-lived session
// moves on to the next puzzle.
func (s *Server) runRollover(ctx context.Context) {
	for {
		next := s.game.NextPuzzleTime()
		timer := time.NewTimer(time.Until(next))
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}
		s.rollover(ctx)
		log.Info().Time("at", next).Str("day", s.game.Day().Format("2006-01-02")).Msg("puzzle rollover")
	}
}

// rollover boots the store without draining, so whatever Boot queues is
// delivered with the next response.
func (s *Server) rollover(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.game.Dispatch(ctx, state.Boot{})
}

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables CORS for a single origin.
func cors(origin string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
