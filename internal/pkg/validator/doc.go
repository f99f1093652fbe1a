// Package validator defines struct validation for request and domain types.
//
// Use cases depend on the Validator interface; the go-playground/validator
// v10 implementation with this service's custom rules lives here.
package validator
