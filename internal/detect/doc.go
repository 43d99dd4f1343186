// Package detect runs the print-production rule set against extracted
// artifact metadata, producing the ordered issue list, the print-readiness
// score, and the severity-weighted risk score.
//
// Every rule is an independent, deterministic threshold check; rules that
// cannot evaluate because metadata is missing are skipped rather than
// raised, since partial metadata is expected for degraded inputs.
package detect
