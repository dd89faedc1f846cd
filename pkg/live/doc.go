// Package live serves a smallie app to browsers.
//
// Every WebSocket connection gets its own dom.Document, built by the AppFunc
// on the goroutine that serves the connection. Browser events arrive as JSON
// messages naming a node id; the session mirrors any reported form state into
// the node, dispatches the event, and answers with one patch frame holding
// every mutation the dispatch caused.
//
// # Routes
//
//	GET /                   server-rendered page with the client script
//	GET /_smallie/client.js browser client
//	GET /_smallie/ws        WebSocket session
//	GET /metrics            Prometheus metrics
//	GET /healthz            liveness and session count
//
// # Frames
//
// The first frame is "init" and carries the body subtree with node ids.
// Later frames are "patch" frames whose ops are insert, move, remove, attr,
// rmattr, prop, text and on. Ids listed in "drop" belong to nodes that left
// the document and will not be referenced again. Failures are reported with
// "error" frames carrying an error code.
package live
