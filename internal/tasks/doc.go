// package tasks implements the long-running operations behind the CLI and UI.
//
// DanceEngine orchestrates catalog lookups: searches, staged detail loads, and
// collection exports. SessionManager owns the sign-in lifecycle and keeps the
// collection store mirrored against the remote per-user document. Operations
// emit progress updates via channels for non-blocking status reporting.
package tasks
