// Package cli provides the interactive timecard command-line client.
//
// The user opens a timecard photo (a local path or s3://bucket/key), fixes
// its orientation, optionally renders a preview file, and uploads it for
// extraction. Extracted timecards can then be reviewed, edited one at a time
// and saved, which has the service recompute the hours, and exported to XLSX.
//
// All state lives in a session.State value; App.commit is the only place it
// changes. The REPL is started with App.Run and blocks until EOF, "exit",
// or cancellation of its context.
package cli
