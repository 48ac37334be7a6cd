package transport

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// RPCHandler dispatches a tool method by name.
type RPCHandler interface {
	Handle(ctx context.Context, method string, params json.RawMessage) (any, error)
}

// Server wires HTTP handlers.
type Server struct {
	handler RPCHandler
	logger  *slog.Logger
}

// NewServer creates a router serving POST /rpc and GET /health. The auth
// middleware, when given, guards /rpc only so other handlers mounted on the
// router keep their own auth.
func NewServer(handler RPCHandler, authMiddleware func(http.Handler) http.Handler, logger *slog.Logger) *chi.Mux {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	srv := &Server{handler: handler, logger: logger}

	r.Group(func(r chi.Router) {
		if authMiddleware != nil {
			r.Use(authMiddleware)
		}
		r.Post("/rpc", srv.handleRPC)
	})
	r.Get("/health", srv.handleHealth)

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleRPC(w http.ResponseWriter, r *http.Request) {
	req, err := ParseRequest(r.Body)
	if err != nil {
		rpcErr, _ := ErrorFor(err)
		writeError(w, nil, rpcErr)
		return
	}

	caller, _ := CallerFromContext(r.Context())
	s.logger.Debug("rpc request", "method", req.Method, "caller", caller)

	result, err := s.handler.Handle(r.Context(), req.Method, req.Params)
	if err != nil {
		if errors.Is(err, ErrUnauthorized) {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		rpcErr, known := ErrorFor(err)
		if !known {
			s.logger.Error("rpc request failed", "method", req.Method, "error", err)
		}
		writeError(w, req.ID, rpcErr)
		return
	}

	writeResult(w, req.ID, result)
}
