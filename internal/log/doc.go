// Package log provides the Pokédex slog handler.
//
// SecureHandler wraps any slog.Handler and rewrites attributes before they
// reach it:
//   - tag serial numbers (keys serial, serial_number, uid, tag) become a
//     short SHA3-256 fingerprint, so log lines about the same tag can be
//     correlated without recording the tag itself
//   - credential keys (authorization, cookie, token, password, proxy_auth
//     and similar) and values that look like credentials are masked
//
// # Usage
//
//	logger := log.NewSecureLogger(os.Stderr, verbose)
//	slog.SetDefault(logger)
//	logger.Info("tag read", "serial", "04:a2:1b:3c") // serial=tag:5f0c3e...
package log
