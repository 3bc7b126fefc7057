// Package audit appends immutable records of admin-surface decisions. The
// core only ever writes them; review happens out of band.
package audit

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"satspots.org/internal/ids"
	"satspots.org/internal/kv"
	"satspots.org/internal/obs"
)

// Retention is how long audit records stay in the store.
const Retention = 365 * 24 * time.Hour

const keyPrefix = "audit:"

type ctxKey string

const requestIDKey ctxKey = "audit_request_id"

// WithRequestID attaches the request identifier to the context for audit
// enrichment.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	requestID = strings.TrimSpace(requestID)
	if requestID == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey, requestID)
}

func requestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(requestIDKey).(string); ok {
		return v
	}
	return ""
}

// Entry is the persisted record shape.
type Entry struct {
	Timestamp  time.Time         `json:"timestamp"`
	Action     string            `json:"action"`
	Details    map[string]string `json:"details,omitempty"`
	ClientAddr string            `json:"clientAddr,omitempty"`
	RequestID  string            `json:"requestId,omitempty"`
}

// Logger writes audit entries to the key-value store under ulid-keyed
// records and mirrors them as JSON log lines.
type Logger struct {
	store kv.Store
	now   func() time.Time
}

// NewLogger wraps the shared key-value store.
func NewLogger(store kv.Store) *Logger {
	return &Logger{store: store, now: time.Now}
}

// SetClock overrides the logger clock; test use only.
func (l *Logger) SetClock(now func() time.Time) { l.now = now }

// Record appends one entry. A store failure is logged and swallowed: the
// admin response must not hinge on audit durability, and the log line still
// carries the event.
func (l *Logger) Record(ctx context.Context, action, clientAddr string, details map[string]string) {
	entry := Entry{
		Timestamp:  l.now().UTC(),
		Action:     action,
		ClientAddr: clientAddr,
		RequestID:  requestIDFromContext(ctx),
	}
	if len(details) > 0 {
		entry.Details = make(map[string]string, len(details))
		for k, v := range details {
			entry.Details[k] = v
		}
	}

	data, err := json.Marshal(entry)
	if err != nil {
		obs.LogWarn("audit entry marshal failed", map[string]any{"action": action, "err": err.Error()})
		return
	}

	logLine := map[string]any{
		"ts":     entry.Timestamp.Format(time.RFC3339Nano),
		"type":   "audit",
		"action": action,
	}
	if entry.RequestID != "" {
		logLine["request_id"] = entry.RequestID
	}
	if entry.ClientAddr != "" {
		logLine["client_addr"] = entry.ClientAddr
	}
	obs.LogRequest(logLine)

	if err := l.store.Put(ctx, keyPrefix+ids.New(), string(data), Retention); err != nil {
		obs.LogWarn("audit entry not persisted", map[string]any{"action": action, "err": err.Error()})
	}
}
