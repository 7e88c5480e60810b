// Package models defines the core domain types for Hearth.
//
// Every entity is a flat row owned by a user (user_id foreign key) with a
// plain CRUD lifecycle. There are no cross-entity invariants beyond
// foreign-key existence: milestones belong to a goal, list items to a
// shopping list, everything else hangs directly off the user.
//
// Conventions:
//   - IDs are UUID strings, generated by the store on insert.
//   - CreatedAt is a Unix timestamp (seconds).
//   - Money fields use decimal.Decimal and are persisted as TEXT so that
//     amounts round-trip exactly.
//   - Calendar fields (event start/end, target dates, birth dates) are
//     time.Time in memory and RFC 3339 / ISO date TEXT in storage, which
//     keeps SQLite range queries lexicographic.
package models
