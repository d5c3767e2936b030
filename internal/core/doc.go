// Package core holds the roster import service: the caller that owns what
// the extractor in package roster produces.
//
// # Imports
//
// [Service.ImportRoster] takes a slot from the [ImportLimiter], runs the
// extractor and hands the employees to a [RosterStore], which swaps them in
// for the previous roster in one step and records an [ImportRecord]. A file
// that yields nothing leaves the stored roster untouched.
//
// # Storage
//
// [PgStore] keeps the roster in PostgreSQL and bulk-loads employees with the
// COPY protocol. [MemStore] keeps it in memory for development and tests.
//
// # Error Handling
//
// Technical errors are mapped to admin-facing messages with [MapError].
// Each category has a code for support reference:
//
//   - ROS001-ROS003: extraction (no records, unreadable workbook)
//   - FILE001-FILE005: upload (size, format, missing, empty)
//   - DB001-DB006: database
//   - IMP001-IMP004: import lifecycle (busy, unknown ID, cancelled)
package core
