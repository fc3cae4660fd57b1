// Package board implements the chain ordering engine for stacked
// whiteboard stickers.
//
// A board is an unordered set of sticker records whose stacking order is
// encoded implicitly: each record optionally references the id of the
// record directly below it (LowerID). The engine validates the structural
// integrity of such a set, linearizes it into a canonical bottom-to-top
// sequence, and exposes query, append, and extraction operations over
// that sequence.
//
// VALIDATION (construction-time, fail-fast):
//  1. Identity uniqueness - no two records share an id (DUPLICATE_ID)
//  2. Referential integrity - every LowerID resolves (DANGLING_REFERENCE)
//  3. Acyclicity - following LowerID links always terminates (CYCLE_DETECTED)
//  4. Linearization - the unique topological order consistent with the
//     LowerID relation, bottom first
//
// All traversal is iterative (explicit worklists, no recursion), so the
// engine has no depth limit on long chains.
//
// OWNERSHIP MODEL:
// The engine is the sole owner of its ordered sequence. Readers receive
// fresh containers, Extract returns freshly built records, and the engine
// never mutates records handed to it by callers.
//
// ABSENT LOWER ID:
// "No record below" is expressed only by a nil LowerID pointer. An empty
// string is a (degenerate but legal) id value, never an absence marker.
//
// CONCURRENCY:
// Engine instances are not safe for concurrent use. Callers that share an
// engine across goroutines (e.g., one engine per whiteboard session) must
// serialize access themselves.
package board
