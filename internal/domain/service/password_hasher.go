// Package service declares the ports the usecases call for work that lives
// outside the domain: hashing, tokens, identity providers, QR rendering,
// event publishing and query caching.
package service

// PasswordHasher hashes account passwords and enforces the strength policy
// applied at sign-up.
type PasswordHasher interface {
	Hash(password string) (string, error)
	// Check reports whether password matches hash. It never errors; a malformed hash simply fails.
	Check(password, hash string) bool
	ValidatePasswordStrength(password string) error
}
