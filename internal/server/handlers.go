package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/leapstack-labs/duckbridge/internal/db"
)

type initRequest struct {
	Path string `json:"path"`
}

type importRequest struct {
	FilePath  string `json:"file_path"`
	TableName string `json:"table_name"`
}

type queryRequest struct {
	Query string `json:"query"`
}

type indexRequest struct {
	TableName  string `json:"table_name"`
	ColumnName string `json:"column_name"`
}

type successResponse struct {
	Success bool `json:"success"`
}

type importResponse struct {
	Success bool   `json:"success"`
	Table   string `json:"table"`
	Rows    int64  `json:"rows"`
}

type indexResponse struct {
	Success bool   `json:"success"`
	Index   string `json:"index"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleInit(w http.ResponseWriter, r *http.Request) {
	var req initRequest
	if !s.decode(w, r, &req) {
		return
	}

	start := time.Now()
	err := s.db.Open(r.Context(), req.Path)
	s.record(r, "init_database", req.Path, start, err)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, successResponse{Success: true})
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	var req importRequest
	if !s.decode(w, r, &req) {
		return
	}

	start := time.Now()
	summary, err := s.db.ImportParquet(r.Context(), req.FilePath, req.TableName)
	s.record(r, "import_parquet_file", req.FilePath, start, err)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, importResponse{
		Success: true,
		Table:   summary.Table,
		Rows:    summary.Rows,
	})
}

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	var req queryRequest
	if !s.decode(w, r, &req) {
		return
	}

	start := time.Now()
	result, err := s.db.Query(r.Context(), req.Query)
	s.record(r, "run_query", req.Query, start, err)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleTables(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	tables, err := s.db.Tables(r.Context())
	s.record(r, "get_all_tables", "", start, err)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, tables)
}

func (s *Server) handleIndexes(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	indexes, err := s.db.Indexes(r.Context())
	s.record(r, "get_all_indices", "", start, err)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, indexes)
}

func (s *Server) handleCreateIndex(w http.ResponseWriter, r *http.Request) {
	var req indexRequest
	if !s.decode(w, r, &req) {
		return
	}

	start := time.Now()
	name, err := s.db.CreateIndex(r.Context(), req.TableName, req.ColumnName)
	s.record(r, "create_table_index", req.TableName+"."+req.ColumnName, start, err)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, indexResponse{Success: true, Index: name})
}

// decode reads the JSON request body. On failure it writes a 400 and
// returns false.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body: " + err.Error()})
		return false
	}
	return true
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("failed to encode response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	s.writeJSON(w, statusFor(err), errorResponse{Error: err.Error()})
}

// statusFor maps access-layer errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, db.ErrNotInitialized):
		return http.StatusConflict
	case errors.Is(err, db.ErrNameCollision):
		return http.StatusConflict
	default:
		var sqlErr *db.SQLError
		if errors.As(err, &sqlErr) {
			return http.StatusBadRequest
		}
		return http.StatusInternalServerError
	}
}

// record appends the operation to the history store, if configured.
func (s *Server) record(r *http.Request, op, detail string, start time.Time, err error) {
	if s.history == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	s.history.Record(r.Context(), op, detail, status, start, time.Since(start))
}
