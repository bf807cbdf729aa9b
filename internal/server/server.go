package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"ticketdesk-backend/internal/config"
	"ticketdesk-backend/internal/db"
	"ticketdesk-backend/internal/log"
	"ticketdesk-backend/internal/session"
	"ticketdesk-backend/internal/types"
)

const (
	maxChatBodyBytes = 64 << 10
	healthTimeout    = 2 * time.Second
)

// TurnHandler processes one chat turn. A non-nil error comes with a
// response that is still safe to send.
type TurnHandler interface {
	HandleTurn(ctx context.Context, req types.ChatTurnRequest) (types.ChatTurnResponse, error)
}

// Deps are the collaborators the HTTP layer serves.
type Deps struct {
	Engine TurnHandler
	// Cache is optional; nil disables server-side session state.
	Cache session.Cache
	// Database is nil when the in-memory store is used.
	Database *db.DB
	// StoreBackend names the data store for the health report.
	StoreBackend string
}

type Server struct {
	router   *chi.Mux
	cfg      config.Config
	engine   TurnHandler
	cache    session.Cache
	database *db.DB
	backend  string
}

func NewServer(cfg config.Config, deps Deps) *Server {
	r := chi.NewRouter()

	r.Use(recoverer)
	r.Use(requestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.AllowedOrigin},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Requested-With", SessionHeader, requestIDHeader},
		ExposedHeaders:   []string{SessionHeader, requestIDHeader},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(accessLog)

	s := &Server{
		router:   r,
		cfg:      cfg,
		engine:   deps.Engine,
		cache:    deps.Cache,
		database: deps.Database,
		backend:  deps.StoreBackend,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.Get("/api/health", s.handleHealth)
	s.router.Handle("/metrics", promhttp.Handler())

	s.router.Group(func(r chi.Router) {
		if s.cfg.ChatRateLimit > 0 {
			r.Use(rateLimit(s.cfg.ChatRateLimit, time.Minute))
		}
		r.Post("/api/chat-turn", s.handleChatTurn)
		r.Post("/chat-turn", s.handleChatTurn)
	})
}

func (s *Server) Router() http.Handler { return s.router }

type healthResponse struct {
	Status       string `json:"status"`
	Store        string `json:"store"`
	Database     string `json:"database,omitempty"`
	SessionCache string `json:"sessionCache"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{
		Status:       "ok",
		Store:        s.backend,
		SessionCache: s.cfg.SessionCache,
	}
	code := http.StatusOK
	if s.database != nil {
		ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
		defer cancel()
		if err := s.database.HealthCheck(ctx); err != nil {
			logger := log.FromContext(r.Context(), "server")
			logger.Warn().Err(err).Msg("database health check failed")
			resp.Status = "degraded"
			resp.Database = "unreachable"
			code = http.StatusServiceUnavailable
		} else {
			resp.Database = "ok"
		}
	}
	writeJSON(w, code, resp)
}

func (s *Server) handleChatTurn(w http.ResponseWriter, r *http.Request) {
	logger := log.FromContext(r.Context(), "server")

	var req types.ChatTurnRequest
	body := http.MaxBytesReader(w, r.Body, maxChatBodyBytes)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	var sid string
	ctx := r.Context()
	if s.cache != nil {
		sid = s.getOrCreateSessionID(w, r)
		ctx = log.ContextWithSessionID(ctx, sid)
		if req.SessionState == nil {
			req.SessionState = s.restoreState(ctx, sid)
		}
	}

	resp, err := s.engine.HandleTurn(ctx, req)
	if err != nil {
		// The engine already logged the cause; the client keeps its last good state.
		logger.Warn().Err(err).Msg("chat turn failed")
		writeJSON(w, http.StatusInternalServerError, resp)
		return
	}

	if s.cache != nil {
		s.persistState(ctx, w, r, sid, resp.NewState)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) writeError(w http.ResponseWriter, code int, msg string) {
	writeError(w, code, msg)
}

// getSessionID retrieves the session ID from cookie or header
func getSessionID(r *http.Request) string {
	if cookie, err := GetSessionCookie(r); err == nil && cookie != "" {
		return cookie
	}
	return r.Header.Get(SessionHeader)
}

// getOrCreateSessionID gets an existing session ID or issues a new one,
// echoing it as a cookie and a header.
func (s *Server) getOrCreateSessionID(w http.ResponseWriter, r *http.Request) string {
	sid := getSessionID(r)
	if !session.ValidID(sid) {
		sid = session.NewID()
		logger := log.FromContext(r.Context(), "server")
		logger.Debug().Str(log.FieldSessionID, sid).Msg("issued new chat session")
	}
	SetSessionCookie(w, r, sid, s.cfg.SessionTTL)
	w.Header().Set(SessionHeader, sid)
	return sid
}

// restoreState returns the cached state for sid, or nil. Cache failures
// degrade to a fresh conversation.
func (s *Server) restoreState(ctx context.Context, sid string) *types.SessionState {
	st, err := s.cache.Load(ctx, sid)
	switch {
	case err != nil:
		sessionCacheOps.WithLabelValues("load", "error").Inc()
		logger := log.FromContext(ctx, "server")
		logger.Warn().Err(err).Msg("failed to load session state")
		return nil
	case st == nil:
		sessionCacheOps.WithLabelValues("load", "miss").Inc()
		return nil
	default:
		sessionCacheOps.WithLabelValues("load", "hit").Inc()
		return st
	}
}

// persistState saves a continuing state and forgets a terminated one.
func (s *Server) persistState(ctx context.Context, w http.ResponseWriter, r *http.Request, sid string, st *types.SessionState) {
	logger := log.FromContext(ctx, "server")
	if st == nil {
		if err := s.cache.Delete(ctx, sid); err != nil {
			sessionCacheOps.WithLabelValues("delete", "error").Inc()
			logger.Warn().Err(err).Msg("failed to delete session state")
			return
		}
		sessionCacheOps.WithLabelValues("delete", "ok").Inc()
		ClearSessionCookie(w, r)
		return
	}
	if err := s.cache.Save(ctx, sid, *st); err != nil {
		sessionCacheOps.WithLabelValues("save", "error").Inc()
		logger.Warn().Err(err).Msg("failed to save session state")
		return
	}
	sessionCacheOps.WithLabelValues("save", "ok").Inc()
}
