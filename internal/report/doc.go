// Package report draws Pokédex state for people and exports the collection
// for tools.
//
// TerminalRenderer draws controller views: the grid page, the open detail
// and the tail of the session log. The Writer implementations export a
// Collection:
//   - SimpleWriter: plain text for the terminal
//   - MarkdownWriter: Markdown with tables and a progress chart
//   - JSONWriter: structured JSON for tool integration
//
// Writers implement the Writer interface and can be composed with
// MultiWriter.
package report
