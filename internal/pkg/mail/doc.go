// Package mail defines the outbound email contract.
//
// Handlers and use cases depend on the Mail interface and the Message
// payload only; the SMTP implementation in this package is the concrete
// delivery mechanism, and swapping in an API provider is a local change.
package mail
