// Package dissimilarity scores how different annotators' units are.
//
// Responsibilities: the positional, categorical and sequence metrics,
// their weighted combinations, and the batch evaluation path that scores
// many correspondence tuples drawn from one shared pool of units.
// Key types: Metric, Alphabet, Pool, IndexMatrix.
//
// Every metric scores a tuple of slots as the mean pairwise dissimilarity
// over all slot pairs. A real unit against an absent slot costs exactly
// the metric's delta_empty; two absent slots cost nothing. Tuples shorter
// than two are padded with absent slots, so a lone unit costs delta_empty.
//
// Dependency rule: dissimilarity may depend on continuum, never on
// alignment.
package dissimilarity
