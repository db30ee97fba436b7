// Package server answers design queries over socket.io.
//
// A client emits `find` with a query document and receives either `designs`
// with the search result or `find_error` with a message. A plain HTTP
// `/health` endpoint is served next to the socket.io endpoint.
package server
