// Package materials ranks a catalog of production materials against a
// user-weighted priority vector. Catalogs are read-only TOML documents, a
// built-in default catalog ships embedded, and ranking is a pure function:
// the caller owns the weights and the ranked list is replaced wholesale on
// every recomputation.
package materials
