// Package errs contains sentinel errors used across layers for stable error mapping.
package errs

import "errors"

var (
	// ErrInvalidCredentials indicates authentication failed. Unknown CPF and
	// wrong password both collapse to this to avoid account enumeration.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidToken indicates a malformed or forged token (structural or
	// signature failure).
	ErrInvalidToken = errors.New("invalid token")

	// ErrTokenExpired indicates the token's expiry is in the past.
	ErrTokenExpired = errors.New("token expired")

	// ErrSubjectMismatch indicates the token subject no longer matches the
	// freshly resolved identity it was checked against.
	ErrSubjectMismatch = errors.New("token subject mismatch")

	// ErrRateLimited indicates a temporary login lock after repeated failures.
	ErrRateLimited = errors.New("rate limited")
)
