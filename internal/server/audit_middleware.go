package server

import (
	"bytes"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// auditResponseRecorder tees the status code and body written by a handler so
// the audit entry carries the response the client actually saw.
type auditResponseRecorder struct {
	http.ResponseWriter
	status int
	body   bytes.Buffer
}

func (w *auditResponseRecorder) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func (w *auditResponseRecorder) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (s *Server) auditMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		entry := AuditLogEntry{
			EventID:   uuid.NewString(),
			Timestamp: time.Now().UTC(),
			Method:    r.Method,
			Path:      r.URL.Path,
		}

		if username, _, ok := r.BasicAuth(); ok {
			entry.Operator = username
		}

		vars := mux.Vars(r)
		entry.Domain = vars["domain"]
		entry.Identity = vars["identity"]

		if r.Body != nil {
			requestBody, _ := io.ReadAll(r.Body)
			r.Body = io.NopCloser(bytes.NewBuffer(requestBody))
			entry.Request = string(requestBody)
		}

		rec := &auditResponseRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		entry.StatusCode = rec.status
		entry.Response = rec.body.String()

		s.auditManager.LogEntry(entry)
	})
}
