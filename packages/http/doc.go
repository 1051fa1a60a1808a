// Package http contains the request builder and the thin transport adapter
// around net/http. The builder turns normalized config into a wire-ready
// request (method override, header layering, cookie injection); the client
// performs the single exchange, buffered or streaming.
package http
