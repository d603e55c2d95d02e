package services

import (
	"context"
	"strings"

	"eventlisting/internal/domain"
)

type adminAuthService struct {
	checker      domain.PasswordChecker
	passwordHash string
	adminToken   string
}

// NewAdminAuthService creates an AdminAuthService that checks passwords against passwordHash and
// hands out adminToken on success. Login always fails when either value is empty.
func NewAdminAuthService(checker domain.PasswordChecker, passwordHash, adminToken string) domain.AdminAuthService {
	return &adminAuthService{
		checker:      checker,
		passwordHash: strings.TrimSpace(passwordHash),
		adminToken:   adminToken,
	}
}

func (s *adminAuthService) Login(ctx context.Context, password string) (string, error) {
	if s.passwordHash == "" || s.adminToken == "" || password == "" {
		return "", domain.ErrInvalidCredentials
	}
	if err := s.checker.Compare(s.passwordHash, password); err != nil {
		return "", domain.ErrInvalidCredentials
	}
	return s.adminToken, nil
}
