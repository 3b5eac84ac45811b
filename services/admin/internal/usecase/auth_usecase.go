package usecase

import (
	"fmt"

	"pressroom/pkg/jwt"
	"pressroom/pkg/models"
	"pressroom/services/admin/internal/repo/persistent"

	"golang.org/x/crypto/bcrypt"
)

type AuthUseCase interface {
	Login(email, password string) (string, *models.User, error)
}

type authUseCase struct {
	userRepo   persistent.UserRepository
	jwtService *jwt.Service
}

func NewAuthUseCase(userRepo persistent.UserRepository, jwtService *jwt.Service) AuthUseCase {
	return &authUseCase{userRepo: userRepo, jwtService: jwtService}
}

func (uc *authUseCase) Login(email, password string) (string, *models.User, error) {
	user, err := uc.userRepo.GetByEmail(email)
	if err != nil {
		return "", nil, fmt.Errorf("invalid credentials")
	}

	if !user.IsActive {
		return "", nil, fmt.Errorf("account is deactivated")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, fmt.Errorf("invalid credentials")
	}

	token, err := uc.jwtService.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return "", nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return token, user, nil
}
