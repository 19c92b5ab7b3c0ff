package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/jaganathg/expence-tracker/internal/core"
)

// handleExpenses dispatches /expenses by method: POST creates a record,
// GET lists all records newest-first.
func (s *Server) handleExpenses(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		s.handleCreateExpense(w, r)
	case http.MethodGet:
		s.handleListExpenses(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	var req core.CreateExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.ErrorContext(r.Context(), "Parse request body error", "error", err, "url", r.URL.Path)
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	expense, err := s.service.AddExpense(r.Context(), req)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, expense)
}

func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	expenses, err := s.service.GetAllExpenses(r.Context())
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, expenses)
}

// handleHighestExpense serves /expenses/highest: the single record with
// the greatest amount, or 404 when no records exist.
func (s *Server) handleHighestExpense(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	expense, err := s.service.GetHighestExpense(r.Context())
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	if expense == nil {
		writeError(w, http.StatusNotFound, "no expenses recorded")
		return
	}

	writeJSON(w, http.StatusOK, expense)
}

// writeServiceError translates domain errors into transport responses.
// This is the only place internal errors become public status codes;
// storage detail never reaches the client.
func (s *Server) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *core.ValidationError
	if errors.As(err, &verr) {
		writeError(w, http.StatusBadRequest, verr.Message)
		return
	}

	slog.ErrorContext(r.Context(), "Request failed",
		"error", err,
		"method", r.Method,
		"url", r.URL.Path)
	writeError(w, http.StatusInternalServerError, "internal server error")
}
