// package shared defines shared helpers
package shared

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/sosodev/duration"
)

// NewLogger creates a new [log.Logger] instance with the specified [io.Writer], with timestamps and caller reporting enabled.
//
// The writer defaults to [os.Stderr]
func NewLogger(w io.Writer) *log.Logger {
	if w == nil {
		w = os.Stderr
	}
	opts := log.Options{ReportTimestamp: true, ReportCaller: true}
	return log.NewWithOptions(w, opts)
}

// WithLogger creates a child [log.Logger] with the specified key-value pairs added to all log entries.
func WithLogger(l *log.Logger, kv ...any) *log.Logger {
	return l.With(kv...)
}

// SetLogLevel sets the [log.Level] for the given [log.Logger].
func SetLogLevel(l *log.Logger, ll log.Level) {
	l.SetLevel(ll)
}

// SetLogLevelString parses a level name ("debug", "info", "warn", "error") and applies it.
//
// Unknown names leave the logger at [log.InfoLevel].
func SetLogLevelString(l *log.Logger, level string) {
	ll, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		ll = log.InfoLevel
	}
	SetLogLevel(l, ll)
}

// GenerateID generates a new v4 [uuid.UUID] as a string
func GenerateID() string {
	return uuid.New().String()
}

// MarshalJSON marshals v, indenting with two spaces when pretty is set.
func MarshalJSON(v any, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}

// ParseISODuration converts an ISO-8601 video duration to whole seconds.
// Week, day and fractional components are accepted; negative durations are rejected.
func ParseISODuration(d string) (int, error) {
	if !strings.HasPrefix(d, "P") || d == "P" || d == "PT" {
		return 0, fmt.Errorf("%w: duration %q", ErrInvalidInput, d)
	}

	parsed, err := duration.Parse(d)
	if err != nil {
		return 0, fmt.Errorf("%w: duration %q: %v", ErrInvalidInput, d, err)
	}

	td := parsed.ToTimeDuration()
	if td < 0 {
		return 0, fmt.Errorf("%w: negative duration %q", ErrInvalidInput, d)
	}
	return int(td / time.Second), nil
}

// FormatDuration renders seconds as m:ss, or h:mm:ss past the hour.
func FormatDuration(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

// HumanizeISODuration formats an ISO-8601 duration for display, returning the raw value when it cannot be parsed.
func HumanizeISODuration(d string) string {
	seconds, err := ParseISODuration(d)
	if err != nil {
		return d
	}
	return FormatDuration(seconds)
}
