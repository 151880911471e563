// Package crossref pairs native audio devices with browser-reported devices.
//
// The two sides share no identifier space, so each (native, foreign) pair is
// scored by an ordered strategy chain: ID relation, default-device sentinel,
// exact name, substring containment, keyword overlap, bigram similarity, and
// brand tokens, with positional correlation available as an opt-in fallback.
// The first strategy that produces a nonzero score decides the pair.
//
// Assignment is one-to-one. The default greedy mode walks candidates in a
// fixed order (score, then confidence, then input position) and claims both
// sides of each accepted pair. The optimal mode solves a maximum-score
// assignment over the same candidates instead. Every record that is not
// claimed lands in the matching unmatched list, so the report always
// partitions both inputs.
//
// Matching is pure and allocation-local; a Matcher may be shared across
// goroutines.
package crossref
