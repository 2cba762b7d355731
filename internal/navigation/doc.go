// Package navigation keeps the address/history state in step with the
// species being viewed.
//
// A Location is the path and query of the current address. History is the
// collaborator that stores locations; MemoryHistory is an in-process
// implementation with browser-like back and forward. Sync binds a History to
// species IDs: it reads the ID encoded in the current location, pushes the
// canonical /pokemon/<id> form, and turns external changes into revisit or
// dismiss callbacks.
package navigation
