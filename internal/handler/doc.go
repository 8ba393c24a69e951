// Package handler implements the HTTP API of rhiza.
//
// Routes are served by chi. Every container route addresses one configured
// mount point by id; interaction routes reply with the frame that results
// from the gesture so a client can redraw without a second request.
//
// # Errors
//
// Errors are returned as JSON {error, details}. Invalid graph data maps to
// 422, an unknown container to 404, a container with no running
// visualization to 409, and backend errors keep their status (5xx as 502).
//
// # Streaming
//
// GET /events?container=<id> streams frames and lifecycle events as
// Server-Sent Events; /metrics exposes Prometheus collectors.
package handler
