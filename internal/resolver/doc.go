// Package resolver turns ambiguous external signals into validated species IDs.
//
// Inputs come in four shapes:
//   - free text from a tag payload or manual entry (FromText)
//   - a location path and query (FromLocation)
//   - a search query that may need a name lookup (FromQuery)
//   - a tag serial number looked up in a configured table (FromSerial)
//
// Every function returns an (ID, bool) pair and never returns an ID outside
// [1, model.MaxID]. Apart from FromQuery, which may call a NameLookup, all
// functions are pure.
//
// DecodeRecord converts a tagged payload record into text before it is
// handed to FromText.
package resolver
