package auth

import (
	"eventlisting/internal/domain"

	"golang.org/x/crypto/bcrypt"
)

type bcryptChecker struct{}

// NewBcryptChecker returns a PasswordChecker for hashes produced by bcrypt,
// e.g. `htpasswd -bnBC 10 "" secret | tr -d ':'`.
func NewBcryptChecker() domain.PasswordChecker {
	return bcryptChecker{}
}

func (bcryptChecker) Compare(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
