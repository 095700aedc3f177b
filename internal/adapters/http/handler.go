package httpadapter

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/reubstahh/cf-ai-chat/internal/app/chat"
	"github.com/reubstahh/cf-ai-chat/internal/domain"
)

const (
	errMessageRequired = "Message is required"
	errChatFailed      = "Failed to process chat request"
)

type Server struct {
	svc *chat.Service
}

func NewServer(svc *chat.Service) http.Handler {
	s := &Server{svc: svc}
	mux := http.NewServeMux()

	mux.HandleFunc("/api/chat", s.handleChat)
	mux.HandleFunc("/api/history", s.handleHistory)
	mux.HandleFunc("/api/clear", s.handleClear)
	mux.HandleFunc("/api/health", s.handleHealth)

	// Static assets are served upstream; anything reaching this mux that no
	// route matched gets a plain 404.
	mux.HandleFunc("/", s.handleNotFound)

	return chainMiddlewares(mux, withCORS, withLogging, withRequestID)
}

// ─────────────────────────────────────────────
// DTOs (request/response)
// ─────────────────────────────────────────────

type chatRequest struct {
	// any, not string: a non-string message is a validation error, not a
	// decoding error.
	Message   any    `json:"message"`
	SessionID string `json:"sessionId"`
}

type chatResponse struct {
	Response  string `json:"response"`
	SessionID string `json:"sessionId"`
}

type historyMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type historyResponse struct {
	History   []historyMessage `json:"history"`
	SessionID string           `json:"sessionId"`
}

type clearResponse struct {
	Success   bool   `json:"success"`
	SessionID string `json:"sessionId"`
}

type healthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// ─────────────────────────────────────────────
// Concrete handlers
// ─────────────────────────────────────────────

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.handleNotFound(w, r)
		return
	}

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, errMessageRequired)
		return
	}

	message, ok := req.Message.(string)
	if !ok || message == "" {
		badRequest(w, errMessageRequired)
		return
	}

	sessionID := resolveSessionID(req.SessionID)

	reply, err := s.svc.Chat(r.Context(), sessionID, message)
	if err != nil {
		if errors.Is(err, domain.ErrEmptyMessage) {
			badRequest(w, errMessageRequired)
			return
		}
		internalError(w, errChatFailed)
		return
	}

	writeJSON(w, http.StatusOK, chatResponse{
		Response:  reply,
		SessionID: string(sessionID),
	})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.handleNotFound(w, r)
		return
	}

	sessionID := resolveSessionID(r.URL.Query().Get("sessionId"))

	msgs, err := s.svc.History(r.Context(), sessionID)
	if err != nil {
		internalError(w, "Failed to load history")
		return
	}

	history := make([]historyMessage, 0, len(msgs))
	for _, m := range msgs {
		history = append(history, historyMessage{
			Role:    string(m.Role),
			Content: m.Content,
		})
	}

	writeJSON(w, http.StatusOK, historyResponse{
		History:   history,
		SessionID: string(sessionID),
	})
}

func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		s.handleNotFound(w, r)
		return
	}

	sessionID := resolveSessionID(r.URL.Query().Get("sessionId"))

	if err := s.svc.Clear(r.Context(), sessionID); err != nil {
		internalError(w, "Failed to clear history")
		return
	}

	writeJSON(w, http.StatusOK, clearResponse{
		Success:   true,
		SessionID: string(sessionID),
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.handleNotFound(w, r)
		return
	}

	writeJSON(w, http.StatusOK, healthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	http.Error(w, "Not Found", http.StatusNotFound)
}

// ─────────────────────────────────────────────
// HTTP Helpers
// ─────────────────────────────────────────────

func resolveSessionID(raw string) domain.SessionID {
	if raw == "" {
		return domain.DefaultSessionID
	}
	return domain.SessionID(raw)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, map[string]string{
		"error": msg,
	})
}

func internalError(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusInternalServerError, map[string]string{
		"error": msg,
	})
}
