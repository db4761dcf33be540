// Package apierror defines the fixed failure taxonomy shared by every network
// call the SDK makes: a severity-ranked error [Record], the deterministic
// [Classify] mapping from raw transport failures and HTTP statuses into that
// taxonomy, and a capped in-memory [Log] ring of classified records.
//
// # Taxonomy
//
//   - no response / offline        → TypeNetwork, SeverityHigh
//   - client timeout               → TypeTimeout, SeverityMedium
//   - HTTP 400, 422                → TypeValidation, SeverityLow
//   - HTTP 401, 403                → TypePermission, SeverityHigh
//   - HTTP 404                     → TypeAPI, SeverityMedium
//   - HTTP 500                     → TypeSystem, SeverityCritical
//   - HTTP 502, 503, 504           → TypeSystem, SeverityHigh
//   - any other response status    → TypeAPI, SeverityMedium
//   - nothing matched              → TypeUnknown, SeverityMedium
//
// Business-rule failures carried inside a 200-wrapped envelope are constructed
// with [NewBusiness] and never pass through the status branches above.
//
// # Architecture boundaries
//
// This package is a leaf. It performs no I/O, holds no session state, and
// never decides what to do about a failure — retry, notification, and session
// invalidation policy all live in the transport layer.
//
// # What this package must NOT do
//
//   - Import any other package of this module.
//   - Mutate a Record after construction.
//   - Emit logs or user notifications itself.
package apierror
