// Package guard evaluates navigation intents against per-destination
// policies using nothing but a read-only view of the live session.
//
// # Evaluation order
//
// For every requested destination the guard applies, in order: the
// already-authenticated login-page redirect, the authentication
// requirement, the role requirement, and finally admission. Redirects to
// the login destination carry the originally requested path in a
// "redirect" query parameter so the navigation can be resumed after a
// successful login.
//
// # Architecture boundaries
//
// This package is a pure decision layer with no I/O. It reads session
// state through the narrow [Session] interface and never mutates it; a
// role mismatch produces a redirect plus a queued [Notice], not an error.
//
// # What this package must NOT do
//
//   - Write session state or persisted credentials.
//   - Perform network calls or block.
//   - Return errors from [Guard.Evaluate]; an absent policy admits.
package guard
