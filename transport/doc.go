// Package transport is the resilient request pipeline every network call of
// the SDK goes through. [Pipeline.Send] attaches the bearer credential,
// normalizes the server's {code, message, data} envelope, classifies every
// failure through the apierror taxonomy, records it in the ring log, and
// notifies the user sized to severity. [Pipeline.SendWithRetry] wraps a call
// in the exponential-backoff retry executor.
//
// # The 401 side effect
//
// An HTTP 401 response, regardless of call site, publishes signal.AuthLogout
// on the hub exactly once, synchronously, before the caller observes the
// call's failure. This is the sole path by which the pipeline touches session
// state, and it is indirect: the session manager clears itself from its own
// subscription.
//
// # Architecture boundaries
//
// The pipeline reads the credential through a [TokenSource] and never holds
// session state of its own. Notification rendering is behind [Notifier];
// the library default only logs.
//
// # What this package must NOT do
//
//   - Write session or store state directly.
//   - Interpret response data beyond the envelope contract.
//   - Retry without an explicit policy — the default is a single attempt.
package transport
