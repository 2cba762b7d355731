// Package capture owns the persisted set of captured species.
//
// Store is the single source of truth for "owned" status. Every mutation is
// written through to a Backend before it returns. When the backend fails the
// store keeps working in memory for the rest of the session.
package capture
