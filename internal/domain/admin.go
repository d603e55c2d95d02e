package domain

import "context"

// PasswordChecker verifies a plain password against a stored hash.
// Implementations may use bcrypt, argon2, etc.
type PasswordChecker interface {
	Compare(hash, password string) error
}

// AdminAuthService exchanges the admin password for the admin gate token.
// The gate is a placeholder: the token is the configured secret itself and never expires.
type AdminAuthService interface {
	Login(ctx context.Context, password string) (token string, err error)
}
