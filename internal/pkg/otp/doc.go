// Package otp generates short-lived numeric one-time passcodes.
//
// Codes are delivered out-of-band (email) and checked against a stored
// record, so generation is the only concern here: uniform random digits from
// a crypto-grade source.
package otp
