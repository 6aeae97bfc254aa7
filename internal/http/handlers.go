package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"iuran/internal/amqp"
	"iuran/internal/auth"
	"iuran/internal/core"
	applog "iuran/internal/log"
	"iuran/internal/store"
)

func (s *Server) handleData(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.handleSnapshot(w, r)
	case http.MethodPost:
		s.handleMutation(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		writeJSON(w, http.StatusMethodNotAllowed, errorBody{Message: "method not allowed"})
	}
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	snapshot, err := s.ledger.Snapshot(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Snapshot read failed", applog.FieldError, err)
		writeServerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snapshot)
}

func (s *Server) handleMutation(w http.ResponseWriter, r *http.Request) {
	var m store.Mutation
	if err := json.NewDecoder(r.Body).Decode(&m); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Message: "invalid JSON body", Error: err.Error()})
		return
	}

	ack, err := s.ledger.Apply(r.Context(), m)
	switch {
	case err == nil:
		s.publishEvent(r, m, ack)
		writeJSON(w, http.StatusOK, ack)
	case errors.Is(err, store.ErrUnknownAction):
		writeJSON(w, http.StatusBadRequest, errorBody{Message: "unknown action"})
	case errors.Is(err, store.ErrNotFound):
		writeJSON(w, http.StatusNotFound, store.Ack{Success: false, Message: err.Error()})
	case errors.Is(err, store.ErrInvalidInput):
		writeJSON(w, http.StatusUnprocessableEntity, store.Ack{Success: false, Message: err.Error()})
	default:
		slog.ErrorContext(r.Context(), "Mutation failed",
			applog.FieldAction, m.Action, applog.FieldError, err)
		writeServerError(w, err)
	}
}

// publishEvent sends the audit event for a completed mutation. Best-effort:
// a publish failure is logged and the response stays successful.
func (s *Server) publishEvent(r *http.Request, m store.Mutation, ack store.Ack) {
	if s.publisher == nil {
		return
	}
	event := amqp.NewLedgerEvent(m.Action, mutationKey(m), ack.Message)
	if err := s.publisher.PublishLedgerEvent(r.Context(), event); err != nil {
		slog.WarnContext(r.Context(), "Audit event publish failed",
			applog.FieldAction, m.Action, applog.FieldError, err)
	}
}

func mutationKey(m store.Mutation) string {
	if m.Action == store.ActionTogglePayment {
		if m.PaymentKey != "" {
			return m.PaymentKey
		}
		return core.PaymentKey(m.MemberID, m.Month)
	}
	return strconv.FormatInt(m.ID, 10)
}

type summaryResponse struct {
	core.Totals
	MonthlyAmount int64         `json:"monthlyAmount"`
	Month         int           `json:"month"`
	UnpaidMembers []core.Member `json:"unpaidMembers"`
}

// handleSummary derives the dashboard numbers from a fresh snapshot; nothing
// is cached between calls.
func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		writeJSON(w, http.StatusMethodNotAllowed, errorBody{Message: "method not allowed"})
		return
	}
	snapshot, err := s.ledger.Snapshot(r.Context())
	if err != nil {
		writeServerError(w, err)
		return
	}
	month := int(time.Now().Month()) - 1
	unpaid := core.Unpaid(snapshot, month)
	if unpaid == nil {
		unpaid = []core.Member{}
	}
	writeJSON(w, http.StatusOK, summaryResponse{
		Totals:        core.Summarize(snapshot),
		MonthlyAmount: snapshot.MonthlyAmount,
		Month:         month,
		UnpaidMembers: unpaid,
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		writeJSON(w, http.StatusMethodNotAllowed, errorBody{Message: "method not allowed"})
		return
	}
	var creds auth.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Message: "invalid JSON body", Error: err.Error()})
		return
	}
	session, err := s.authenticator.Authenticate(r.Context(), creds)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, session)
	case errors.Is(err, auth.ErrInvalidCredentials):
		slog.WarnContext(r.Context(), "Login rejected", applog.FieldClientIP, clientIP(r))
		writeJSON(w, http.StatusUnauthorized, errorBody{Message: "invalid credentials"})
	default:
		writeServerError(w, err)
	}
}
