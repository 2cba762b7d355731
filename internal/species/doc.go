// Package species retrieves species records from the remote API and keeps
// them in a session-scoped, read-through cache.
//
// Client performs single HTTP lookups, optionally through a SOCKS5 proxy.
// Cache wraps any Fetcher with per-ID request deduplication, a bounded fetch
// timeout and a failure hook that fires once per failed attempt.
package species
