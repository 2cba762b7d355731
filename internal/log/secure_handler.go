package log

import (
	"context"
	"encoding/hex"
	"io"
	"log/slog"
	"regexp"
	"strings"

	"golang.org/x/crypto/sha3"
)

// credentialKeys are attribute keys whose values are always masked.
// "session" is deliberately absent: the session id is a random uuid that
// only correlates lines within one run.
var credentialKeys = map[string]bool{
	"authorization":       true,
	"proxy-authorization": true,
	"proxy_auth":          true,
	"cookie":              true,
	"set-cookie":          true,
	"x-api-key":           true,
	"api_key":             true,
	"apikey":              true,
	"token":               true,
	"access_token":        true,
	"password":            true,
	"passwd":              true,
	"secret":              true,
}

// fingerprintKeys are attribute keys that carry tag serial numbers.
var fingerprintKeys = map[string]bool{
	"serial":        true,
	"serial_number": true,
	"serialnumber":  true,
	"uid":           true,
	"tag":           true,
}

// credentialPatterns match values that are masked regardless of key.
var credentialPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^bearer\s+.+`),
	regexp.MustCompile(`(?i)^basic\s+[A-Za-z0-9+/=]+$`),
	// Proxy or API URLs with embedded credentials.
	regexp.MustCompile(`^[A-Za-z][A-Za-z0-9+.-]*://[^/@\s:]+:[^/@\s]+@`),
}

// MaskValue is the string used to replace credential values.
const MaskValue = "***REDACTED***"

// fingerprintPrefix marks fingerprinted serials in log output.
const fingerprintPrefix = "tag:"

// fingerprintLen is the number of hex characters kept.
const fingerprintLen = 12

// Fingerprint returns a short, stable digest of a tag serial number.
// Serials are compared case-insensitively. An empty serial stays empty.
//
// Design decision: Serials are hashed rather than masked because:
//  1. A tag serial is a stable hardware identifier that can be tied to a
//     person who carries the tag, so it must not land in log files
//  2. Unlike credentials, serials are useful when debugging: the same tag
//     always yields the same fingerprint, so reads can still be correlated
//  3. SHA3-256 truncated to 48 bits keeps lines short while collisions stay
//     unlikely for the handful of tags one reader sees
//
// The user-facing session log shows the raw serial; only slog output is
// fingerprinted.
func Fingerprint(serial string) string {
	s := strings.ToLower(strings.TrimSpace(serial))
	if s == "" {
		return ""
	}
	sum := sha3.Sum256([]byte(s))
	return fingerprintPrefix + hex.EncodeToString(sum[:])[:fingerprintLen]
}

// SecureHandler wraps an slog.Handler and fingerprints serials and masks
// credentials before records reach it.
//
// Design decision: We use a handler wrapper rather than a custom logger so
// that every component keeps using the standard slog API, and attributes
// added with Logger.With (the session id, for example) are sanitized too.
type SecureHandler struct {
	// handler is the underlying slog handler that receives sanitized records.
	handler slog.Handler
}

// NewSecureHandler creates a new SecureHandler wrapping the given handler.
// If handler is nil, slog.Default().Handler() is used.
func NewSecureHandler(handler slog.Handler) *SecureHandler {
	if handler == nil {
		handler = slog.Default().Handler()
	}
	return &SecureHandler{handler: handler}
}

// Enabled delegates to the underlying handler.
func (h *SecureHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle rewrites the record's attributes and passes it on.
func (h *SecureHandler) Handle(ctx context.Context, r slog.Record) error {
	sanitized := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)
	r.Attrs(func(a slog.Attr) bool {
		sanitized.AddAttrs(sanitizeAttr(a))
		return true
	})
	return h.handler.Handle(ctx, sanitized)
}

// WithAttrs returns a new handler with the given attributes sanitized and added.
func (h *SecureHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	sanitized := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		sanitized[i] = sanitizeAttr(a)
	}
	return &SecureHandler{handler: h.handler.WithAttrs(sanitized)}
}

// WithGroup returns a new handler with the given group name.
func (h *SecureHandler) WithGroup(name string) slog.Handler {
	return &SecureHandler{handler: h.handler.WithGroup(name)}
}

func sanitizeAttr(a slog.Attr) slog.Attr {
	a.Value = a.Value.Resolve()
	if a.Value.Kind() == slog.KindGroup {
		attrs := a.Value.Group()
		sanitized := make([]slog.Attr, len(attrs))
		for i, ga := range attrs {
			sanitized[i] = sanitizeAttr(ga)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(sanitized...)}
	}

	key := strings.ToLower(a.Key)
	switch {
	case fingerprintKeys[key]:
		return slog.String(a.Key, Fingerprint(a.Value.String()))
	case credentialKeys[key], containsCredentialKeyword(key):
		return slog.String(a.Key, MaskValue)
	}

	if a.Value.Kind() == slog.KindString && isCredentialValue(a.Value.String()) {
		return slog.String(a.Key, MaskValue)
	}
	return a
}

// containsCredentialKeyword catches composite keys such as "api_token".
func containsCredentialKeyword(key string) bool {
	for _, keyword := range []string{"password", "passwd", "secret", "token", "auth"} {
		if strings.Contains(key, keyword) {
			return true
		}
	}
	return false
}

func isCredentialValue(value string) bool {
	for _, pattern := range credentialPatterns {
		if pattern.MatchString(value) {
			return true
		}
	}
	return false
}

// NewSecureLogger creates a JSON logger behind a SecureHandler.
// verbose selects Debug; otherwise only warnings and errors are written.
func NewSecureLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	jsonHandler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(NewSecureHandler(jsonHandler))
}
