// Package artifact defines the value types shared across the analysis
// pipeline: file formats, color spaces, the normalized Metadata snapshot
// produced by extraction, and the standard print-size predicate.
//
// Everything here is an immutable value. A Metadata record is produced once
// per uploaded artifact and passed by value through detection, ranking, and
// costing; re-analysis produces a fresh record rather than mutating an old
// one.
package artifact
