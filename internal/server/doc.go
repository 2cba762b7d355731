// Package server exposes the Pokédex controller over HTTP.
//
// The server stands in for a browser address bar for one local user:
// GET /pokemon/{id} and GET /?id= enter the app on a species, and the
// /api routes drive scanning, search, paging and history navigation.
// Every route answers with the current controller.View as JSON.
package server
