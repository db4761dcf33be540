// Package lostfound exposes the lost-and-found service surface: items,
// users, admins, and client-side statistics derived from fetched lists.
//
// Every call is one thin pass through the request pipeline. Input
// validation is limited to what the server cannot express an error for
// (missing required fields, non-positive ids); everything else is the
// server's verdict, surfaced as a classified error.
//
// # Architecture boundaries
//
// This package owns the wire shapes of the domain (items, claims, users,
// page results) and the enum vocabulary (item types, colors, claim
// status). It does not manage sessions or credentials.
//
// # What this package must NOT do
//
//   - Read or write the persisted session record.
//   - Retry on its own; callers pick a retry policy at the pipeline level.
//   - Interpret envelope codes; the pipeline already did.
package lostfound
