// Package clock abstracts the current time.
//
// Code that needs "now" depends on Clocker instead of time.Now so tests
// can pin the clock to a fixed instant.
package clock
