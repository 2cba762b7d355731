// Package controller orchestrates captures.
//
// Controller receives identified species from scans, manual entry, search
// and navigation. It records captures in the capture store, fetches species
// records through the cache, keeps the location in step with the open
// detail view, and schedules grid highlights. After every transition it
// hands an immutable View to the Renderer.
//
// Every failure path ends in a session log line and an error cue. No error
// leaves the controller in a partially updated state.
//
// The controller guards its own state with a mutex and never holds it while
// fetching, looking up names, rendering or playing sounds.
package controller
