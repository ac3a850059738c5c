package server

import (
	"time"
)

// AuditLogEntry captures one console request for the audit trail.
type AuditLogEntry struct {
	EventID    string    `json:"event_id"`
	Timestamp  time.Time `json:"timestamp"`
	Operator   string    `json:"operator,omitempty"`
	Method     string    `json:"method"`
	Path       string    `json:"path"`
	Domain     string    `json:"domain,omitempty"`
	Identity   string    `json:"identity,omitempty"`
	StatusCode int       `json:"status_code"`
	Request    string    `json:"request,omitempty"`
	Response   string    `json:"response,omitempty"`
}
