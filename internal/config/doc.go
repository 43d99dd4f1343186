// Package config loads, normalizes, and validates prepress configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and validates cross-field constraints such
// as the priority weights summing to 100. Always obtain settings through
// this package so downstream code receives sanitized paths and canonical
// log formats.
package config
