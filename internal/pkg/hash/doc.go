// Package hash abstracts secret hashing.
//
// Callers store only the hash and check user input against it through the
// Hash interface; the bcrypt implementation lives alongside it.
package hash
