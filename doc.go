// Package campusfound is the client SDK for the campus lost-and-found
// service. It owns the session — who is logged in, as which of three mutually
// exclusive roles, under which bearer token — and routes every network call
// through a resilient request pipeline with uniform failure classification,
// notification, and opt-in retry with exponential backoff.
//
// The package is designed for concurrent application use: Client methods are
// safe to call from multiple goroutines after construction through
// [Builder.Build].
//
// # Architecture boundaries
//
// campusfound is the public surface. It exposes [Client], [Builder], [Config],
// and the session value types. Supporting concerns live in subpackages:
// apierror (failure taxonomy and classifier), transport (request pipeline and
// retry executor), credstore (persisted session record), signal (the
// auth:logout broadcast), guard (navigation authorization), and lostfound
// (thin wrappers over the domain endpoints).
//
// # What this package must NOT do
//
//   - Verify credentials — authentication happens server-side; the SDK only
//     manages the issued token, identity, and role artifact.
//   - Let any component other than Client write session fields. The pipeline
//     reaches the session only through the auth:logout signal.
//   - Leave the deprecated persisted layout in place: initialization migrates
//     it into the current layout exactly once and deletes it.
package campusfound
