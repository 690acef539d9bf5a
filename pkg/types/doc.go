// Package types defines the Collection contract, value type descriptors,
// keys, the plain Array structure, and the standard errors for typed
// collections.
//
// Concrete collections live in package collection; this package holds only
// what callers need to describe, validate, and consume them.
package types
