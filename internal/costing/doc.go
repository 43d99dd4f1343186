// Package costing estimates production cost from product-type base costs,
// a complexity multiplier, nonlinear quantity discount tiers, and material
// surcharges. Estimation is a pure function: the returned Estimate has no
// identity or lifecycle beyond the call that produced it.
package costing
