// Package server wires the HTTP API and the WebSocket notification endpoint
// onto Echo. Handlers delegate to the service layer and return structured
// errors; the errors middleware maps them to JSON responses.
package server
