// Package divisions classifies free-text college names into athletic
// divisions (NCAA D1/D2/D3, NAIA, NJCAA).
//
// A Table holds five disjoint tiers of canonical institution names. A
// Classifier looks a name up in two passes: an exact match on the raw
// string in tier priority order, then a bidirectional substring match on
// normalized names in the same order. Anything unmatched classifies as
// Unknown, which callers display rather than treat as an error.
//
// A name that normalizes to nothing, such as "College" or "&", classifies
// as Unknown. The earlier web client's mapper let such input substring-match
// the first D1 name instead.
//
// Tables are immutable once built and a Classifier holds no mutable state,
// so both are safe for concurrent use.
package divisions
