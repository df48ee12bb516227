package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/engrdod-prog/outagelog"
	"github.com/engrdod-prog/outagelog/gen/queries"
	"github.com/engrdod-prog/outagelog/internal/summary"
	"github.com/gorilla/mux"
)

type Queries interface {
	GetOutageRecordsEx(ctx context.Context, arg queries.GetOutageRecordsParams) ([]outagelog.OutageRecord, error)
}

type Server struct {
	q   Queries
	now func() time.Time
}

func NewServer(q *queries.Queries) *Server {
	return &Server{
		q:   q,
		now: time.Now,
	}
}

func (s *Server) RegisterRoutes(r *mux.Router) {
	r.Path("/records").Methods("GET").HandlerFunc(s.handleGetRecords)
	r.Path("/summary").Methods("GET").HandlerFunc(s.handleGetSummary)
}

// recordsList wraps the record array so that the response is always a JSON
// object, and an empty log serializes as an empty array rather than null.
type recordsList struct {
	Records []outagelog.OutageRecord `json:"records"`
}

func (s *Server) handleGetRecords(res http.ResponseWriter, req *http.Request) {
	params, ok := parseFilters(res, req)
	if !ok {
		return
	}

	records, err := s.q.GetOutageRecordsEx(req.Context(), params)
	if err != nil {
		http.Error(res, err.Error(), http.StatusInternalServerError)
		return
	}

	res.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(res).Encode(recordsList{Records: records}); err != nil {
		http.Error(res, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) handleGetSummary(res http.ResponseWriter, req *http.Request) {
	// Summaries are always derived from the full record set on demand; they
	// are never persisted independently of the log
	records, err := s.q.GetOutageRecordsEx(req.Context(), queries.GetOutageRecordsParams{})
	if err != nil {
		http.Error(res, err.Error(), http.StatusInternalServerError)
		return
	}
	report := summary.Compute(records, s.now())

	res.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(res).Encode(report); err != nil {
		http.Error(res, err.Error(), http.StatusInternalServerError)
	}
}

func parseFilters(res http.ResponseWriter, req *http.Request) (queries.GetOutageRecordsParams, bool) {
	var params queries.GetOutageRecordsParams
	if yearStr := req.URL.Query().Get("year"); yearStr != "" {
		year, err := strconv.Atoi(yearStr)
		if err != nil {
			http.Error(res, "'year' must be an integer", http.StatusBadRequest)
			return params, false
		}
		params.FilterYear = sql.NullInt32{Valid: true, Int32: int32(year)}
	}
	if monthStr := req.URL.Query().Get("month"); monthStr != "" {
		month, err := strconv.Atoi(monthStr)
		if err != nil || month < 1 || month > 12 {
			http.Error(res, "'month' must be an integer from 1 to 12", http.StatusBadRequest)
			return params, false
		}
		params.FilterMonth = sql.NullInt32{Valid: true, Int32: int32(month)}
	}
	return params, true
}
