// Package main provides the entry point for the pokedex CLI.
//
// pokedex records species captured by scanning NFC tags, by typing an id,
// or by entering the app on a species URL, and shows the collection as a
// paged grid with a detail view.
//
// Usage:
//
//	pokedex scan
//	pokedex capture 25
//	pokedex serve
//
// See --help for all available options.
package main

func main() {
	Execute()
}
