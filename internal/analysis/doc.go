// Package analysis composes extraction, defect detection, material ranking,
// and cost estimation into one report per artifact.
//
// Single-artifact analysis is synchronous and idempotent. Batches run
// artifacts independently on a bounded worker pool with fractional progress
// reporting; a failure on one artifact degrades that artifact's report and
// never aborts the rest of the batch.
package analysis
