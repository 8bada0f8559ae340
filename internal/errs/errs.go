// Package errs defines the error types the API returns to its clients.
//
// Every failure a handler can produce ends up as an *HTTPError, so the
// client always receives the same JSON shape:
//
//	{ "code": "NOT_FOUND", "error": "User not found", "status": 404 }
package errs
