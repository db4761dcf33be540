// Package credstore persists the session record — token, identity blob, and
// role — behind a small batch key/value [Store] contract.
//
// # Key layout
//
// The current layout uses the keys [KeyToken], [KeyIdentity], and [KeyRole].
// Older releases stored admin sessions under the prefixed legacy keys
// [LegacyKeyToken], [LegacyKeyIdentity], and [LegacyKeyRole]; the session
// manager migrates a legacy record into the current layout exactly once at
// initialization and then deletes the legacy keys. This package only defines
// the keys and moves bytes — the migration decision lives with the session
// manager.
//
// # Backends
//
//   - [Memory] — ephemeral, for tests and throwaway sessions.
//   - [File]   — a JSON document in the user's configuration directory, the
//     durable default for CLI and desktop clients.
//   - [Redis]  — prefix-keyed entries in Redis, for shared kiosk deployments
//     where several terminals present the same operator session.
//
// # What this package must NOT do
//
//   - Interpret the stored values (the identity blob is opaque here).
//   - Decide when to migrate, clear, or refuse a record.
package credstore
