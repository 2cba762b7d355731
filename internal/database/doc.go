// Package database provides SQLite-based durable storage for the Pokédex.
//
// The store holds named records: small opaque values addressed by a string
// key, each with its last update time. The capture set is one such record,
// stored under capture.RecordKey.
//
// Design decision: We use SQLite (via modernc.org/sqlite) rather than a
// plain JSON file because:
//  1. Writes are atomic, so a crash mid-save never leaves a torn record
//  2. The CGO-free driver keeps cross-compilation for reader hosts simple
//  3. updated_at comes for free and backs the "Saved:" line of the CLI
//  4. WAL mode lets the HTTP surface read while a capture is being written
package database
