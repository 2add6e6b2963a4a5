// Package alignment groups units across annotators into correspondence
// sets and aggregates their disorder.
//
// Responsibilities: unitary alignments (one slot per annotator), full
// alignments validated as exact partitions of a continuum's units, and the
// Unscored/Scored disorder cache both keep between scoring passes.
// Key types: UnitaryAlignment, Alignment, Score, PartitionError.
//
// Dependency rule: alignment depends on continuum and dissimilarity. It
// never enumerates or optimises candidate alignments; that is the caller's
// search loop.
package alignment
