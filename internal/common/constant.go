// Package common contains constants shared by the timecard client packages.
package common

// RequestIDHeaderName carries the per-request id on outbound service calls.
const RequestIDHeaderName = "X-Request-ID"

// DefaultServiceBaseURL is where the timecard service listens in development.
const DefaultServiceBaseURL = "http://localhost:5000"
