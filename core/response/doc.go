// Package response provides HTTP responses that stream broadcaster
// subscriptions to clients.
//
// A Response is a plain function over http.ResponseWriter and *http.Request,
// so it plugs into any router:
//
//	sub := b.Subscribe()
//	if err := response.SSE(sub)(w, r); err != nil {
//		// handle
//	}
//
// # Server-Sent Events
//
// SSE writes each frame verbatim to a text/event-stream body and flushes it.
// The stream ends when the broadcaster closes the subscription (eviction,
// unsubscribe, shutdown) or when the client disconnects. CORS headers default
// to any origin with credentials; use WithCORS or WithoutCORS to change that.
//
// # WebSocket
//
// WebSocketStream upgrades the connection and sends one text message per
// frame. Incoming messages are discarded. When the subscription ends the peer
// receives a normal closure control frame. WebSocket is the lower-level
// upgrade helper both are built on.
//
// Both responses release the subscription when they return.
package response
