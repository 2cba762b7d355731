// Package model defines the core data structures shared by the pokedex.
//
// This package contains the following main types:
//   - ID: A species number in [1, MaxID] with its grid page arithmetic
//   - Species: A species record as returned by the remote API
//   - Record and ScanEvent: One tag read and its payload records
//   - Origin: Why an identification happened (scan, manual, link, revisit)
//   - LogEntry: One line of the session log
//
// Models live in their own package so that the resolver, capture, species
// and controller packages can share them without import cycles.
package model
