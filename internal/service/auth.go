package service

import (
	"context"
	"errors"

	"rentaldesk-backend/internal/domain"
	"rentaldesk-backend/internal/repository"
	"rentaldesk-backend/internal/security"

	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned for both unknown emails and wrong
// passwords so login failures do not reveal which admins exist.
var ErrInvalidCredentials = errors.New("invalid email or password")

type authService struct {
	adminRepo repository.AdminRepository
	tokens    security.TokenManager
}

func NewAuthService(adminRepo repository.AdminRepository, tokens security.TokenManager) AuthService {
	return &authService{
		adminRepo: adminRepo,
		tokens:    tokens,
	}
}

func (s *authService) Login(ctx context.Context, email, password string) (string, *domain.Admin, error) {
	admin, err := s.adminRepo.GetByEmail(ctx, email)
	if err != nil {
		var nf *domain.NotFoundError
		if errors.As(err, &nf) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, domain.Dependency("login: load admin", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateAccessToken(admin.ID, admin.Email)
	if err != nil {
		return "", nil, domain.Dependency("login: sign token", err)
	}
	return token, admin, nil
}
