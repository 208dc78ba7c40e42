// Package client talks to the remote timecard service.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic contract (see the Client interface): Upload an
//     image for extraction, Recalculate edited days, Ping the health check.
//  2. An HTTP implementation (see HTTPClient):
//     POST {base}/upload_timecard  multipart, one image field named "file"
//     PUT  {base}/edit_timecard    JSON array of {day, time_in, time_out}
//     GET  {base}/                 health check
//
// Every response body is validated against an embedded JSON schema before it
// is decoded. Upload accepts either an array of timecards or a single
// {entries, total_hours_worked} object, which becomes one unnamed timecard.
//
// # Error Handling
//
//   - *ServiceError: non-2xx status ("HTTP error! status: N") or an "error"
//     field in the body. Match with errors.As.
//   - ErrMalformedResponse: the body is not JSON or does not match the schema.
//   - ErrUnavailable: no response arrived (refused connection, DNS, timeout).
//
// No call is retried. Callers keep at most one request in flight.
package client
