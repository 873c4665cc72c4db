package response

import "net/http"

// Response renders an HTTP response. It sets headers, status and body.
// Returned errors are handled by the caller's error handler.
type Response func(w http.ResponseWriter, r *http.Request) error
