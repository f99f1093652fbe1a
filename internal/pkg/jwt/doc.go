// Package jwt issues and verifies the session tokens used by the API.
//
// It wraps golang-jwt with a typed Claims payload, an HS512 symmetric
// implementation, and context helpers for carrying authenticated claims
// through a request.
package jwt
