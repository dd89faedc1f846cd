package clientdist

import _ "embed"

// LiveJS is the browser client for the live server.
//
// It is served at "/_smallie/client.js".
//
//go:embed live.js
var LiveJS []byte
