package admin

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/engrdod-prog/outagelog"
	"github.com/engrdod-prog/outagelog/internal/state"
	"github.com/engrdod-prog/outagelog/internal/validate"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

type Server struct {
	w   state.Writer
	log zerolog.Logger
}

func NewServer(w state.Writer, log zerolog.Logger) *Server {
	return &Server{
		w:   w,
		log: log,
	}
}

func (s *Server) RegisterRoutes(authToken string, r *mux.Router) {
	// Require operator access for all admin routes
	r.Use(func(next http.Handler) http.Handler {
		return RequireToken(authToken, next)
	})

	r.Path("/records").Methods("POST").HandlerFunc(s.handleCreateRecord)
	r.Path("/records/{id}").Methods("PATCH").HandlerFunc(s.handleUpdateRecord)
	r.Path("/records/{id}").Methods("DELETE").HandlerFunc(s.handleDeleteRecord)
}

// RequireToken rejects requests that don't carry the configured bearer token.
func RequireToken(token string, next http.Handler) http.Handler {
	want := fmt.Sprintf("Bearer %s", token)
	return http.HandlerFunc(func(res http.ResponseWriter, req *http.Request) {
		if token == "" || req.Header.Get("Authorization") != want {
			http.Error(res, "access denied", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(res, req)
	})
}

// recordPayload is the JSON body for create and update requests. Times are
// "HH:MM"; duration is derived server-side and not accepted from the client.
type recordPayload struct {
	Date        string `json:"date"` // YYYY-MM-DD
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	FailureType string `json:"failureType"`
	Remarks     string `json:"remarks"`
}

func (p *recordPayload) toParams() (state.RecordParams, error) {
	params := state.RecordParams{
		FailureType: outagelog.FailureType(p.FailureType),
		Remarks:     p.Remarks,
	}
	if p.Date != "" {
		date, err := time.Parse("2006-01-02", p.Date)
		if err != nil {
			return state.RecordParams{}, fmt.Errorf("invalid date %q: want YYYY-MM-DD", p.Date)
		}
		params.Date = date
	}
	if p.StartTime != "" {
		start, err := outagelog.ParseMinuteOfDay(p.StartTime)
		if err != nil {
			return state.RecordParams{}, err
		}
		params.StartTime = start
	}
	if p.EndTime != "" {
		end, err := outagelog.ParseMinuteOfDay(p.EndTime)
		if err != nil {
			return state.RecordParams{}, err
		}
		params.EndTime = end
	}
	return params, nil
}

func (s *Server) handleCreateRecord(res http.ResponseWriter, req *http.Request) {
	var payload recordPayload
	if err := json.NewDecoder(req.Body).Decode(&payload); err != nil {
		http.Error(res, "invalid request body", http.StatusBadRequest)
		return
	}
	params, err := payload.toParams()
	if err != nil {
		http.Error(res, err.Error(), http.StatusBadRequest)
		return
	}

	record, err := s.w.RecordOutage(req.Context(), params)
	if err != nil {
		s.writeError(res, err)
		return
	}
	s.log.Info().
		Str("recordId", record.Id.String()).
		Str("date", record.Date.Format("2006-01-02")).
		Int("durationMinutes", record.DurationMinutes).
		Msg("Recorded outage")

	res.Header().Set("Content-Type", "application/json")
	res.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(res).Encode(record); err != nil {
		s.log.Error().Err(err).Msg("Failed to encode response")
	}
}

func (s *Server) handleUpdateRecord(res http.ResponseWriter, req *http.Request) {
	id, ok := s.recordId(res, req)
	if !ok {
		return
	}

	var payload recordPayload
	if err := json.NewDecoder(req.Body).Decode(&payload); err != nil {
		http.Error(res, "invalid request body", http.StatusBadRequest)
		return
	}
	params, err := payload.toParams()
	if err != nil {
		http.Error(res, err.Error(), http.StatusBadRequest)
		return
	}

	record, err := s.w.UpdateOutage(req.Context(), id, params)
	if err != nil {
		s.writeError(res, err)
		return
	}
	s.log.Info().Str("recordId", id.String()).Msg("Updated outage record")

	res.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(res).Encode(record); err != nil {
		s.log.Error().Err(err).Msg("Failed to encode response")
	}
}

func (s *Server) handleDeleteRecord(res http.ResponseWriter, req *http.Request) {
	id, ok := s.recordId(res, req)
	if !ok {
		return
	}

	if err := s.w.DeleteOutage(req.Context(), id); err != nil {
		s.writeError(res, err)
		return
	}
	s.log.Info().Str("recordId", id.String()).Msg("Deleted outage record")
	res.WriteHeader(http.StatusNoContent)
}

func (s *Server) recordId(res http.ResponseWriter, req *http.Request) (uuid.UUID, bool) {
	idStr, ok := mux.Vars(req)["id"]
	if !ok || idStr == "" {
		http.Error(res, "failed to parse 'id' from URL", http.StatusInternalServerError)
		return uuid.Nil, false
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		http.Error(res, "record ID must be a UUID", http.StatusBadRequest)
		return uuid.Nil, false
	}
	return id, true
}

// writeError maps writer errors onto HTTP statuses: validation failures are
// 400s with the rejection reason as the body, unknown records are 404s, and
// anything else is a 500.
func (s *Server) writeError(res http.ResponseWriter, err error) {
	var recordErr *validate.RecordError
	if errors.As(err, &recordErr) {
		http.Error(res, recordErr.Reason, http.StatusBadRequest)
		return
	}
	if errors.Is(err, state.ErrRecordNotFound) {
		http.Error(res, err.Error(), http.StatusNotFound)
		return
	}
	http.Error(res, err.Error(), http.StatusInternalServerError)
}
