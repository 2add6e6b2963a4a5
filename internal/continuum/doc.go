// Package continuum owns the annotated timeline consumed by the disorder
// engine.
//
// Responsibilities: time segments, immutable annotated units (category or
// symbol-sequence payload), the Present/Absent slot variant used by
// correspondence tuples, and a minimal multi-annotator container.
// Key types: Segment, Unit, Slot, Continuum, View.
//
// Dependency rule: continuum depends on nothing else in this module.
// Loading annotation files is the caller's job.
package continuum
