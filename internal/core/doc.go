// Package core computes all-time driver statistics for a league.
//
// This package holds the statistics logic independent of where league data
// comes from or where the result table goes. It can be used by the CLI or by
// tests without modification.
//
// # Flow
//
// A run folds seasons oldest to newest into a running collection of
// [StatRow] values, one per driver:
//
//  1. Each result row of an event becomes a fresh per-event row ([BuildResultStats]).
//  2. The event rows of a season are folded in event order with [Merge].
//  3. Standings add season positions, titles and champion flags.
//  4. The season rows are folded into the all-time rows with [Merge].
//  5. After the last season every row is classified ([ClassifyRank],
//     [FairPlayRating]).
//
// An optional legacy table seeds the all-time rows before the first season.
//
// # Ownership
//
// [Merge] mutates the rows of its first operand in place and never mutates
// the rows of the second one; unmatched rows of the second operand are
// copied. The caller owns the running collection exclusively, so no locking
// is involved.
//
// # Identity
//
// Rows of the two operands are matched by member id (when non-zero), then by
// racing id (when non-empty), then by exact name. Two rows with the same
// non-zero member id inside one operand fail the merge with a
// [*DuplicateIdentityError].
package core
