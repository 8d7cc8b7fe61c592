// Package clientlog accepts log entries reported by browser clients.
package clientlog

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/familytree/gallery-api/internal/middleware"
	"github.com/familytree/gallery-api/internal/pkg/logger"
	"github.com/familytree/gallery-api/internal/pkg/response"
)

const maxEntrySize = 64 << 10

// Handler writes client log entries to the server log
type Handler struct {
	log zerolog.Logger
}

// NewHandler creates client log handler
func NewHandler() *Handler {
	return &Handler{log: logger.Component("client_log")}
}

// Create handles POST /logs. The body is any JSON object.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(io.LimitReader(r.Body, maxEntrySize+1))
	if err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if len(raw) > maxEntrySize {
		response.BadRequest(w, "Log entry too large")
		return
	}

	var entry map[string]json.RawMessage
	if err := json.Unmarshal(raw, &entry); err != nil || entry == nil {
		response.BadRequest(w, "Log entry must be a JSON object")
		return
	}

	h.log.WithLevel(levelOf(entry)).
		RawJSON("entry", raw).
		Str("client_ip", middleware.ClientIP(r)).
		Str("user_agent", userAgent(r)).
		Time("server_timestamp", time.Now().UTC()).
		Str("request_id", middleware.GetRequestID(r.Context())).
		Msg("client_log")

	response.OK(w, nil)
}

// levelOf maps the entry's "level" field onto zerolog; unknown levels log as info
func levelOf(entry map[string]json.RawMessage) zerolog.Level {
	var level string
	if raw, ok := entry["level"]; ok {
		_ = json.Unmarshal(raw, &level)
	}
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "error", "fatal":
		return zerolog.ErrorLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "debug":
		return zerolog.DebugLevel
	default:
		return zerolog.InfoLevel
	}
}

func userAgent(r *http.Request) string {
	if ua := r.UserAgent(); ua != "" {
		return ua
	}
	return "unknown"
}
