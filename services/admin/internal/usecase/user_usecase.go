package usecase

import (
	"fmt"

	"pressroom/pkg/models"
	"pressroom/pkg/visibility"
	"pressroom/services/admin/internal/bulk"
	"pressroom/services/admin/internal/repo/persistent"

	"golang.org/x/crypto/bcrypt"
)

type UserInput struct {
	Email    string
	Username string
	Password string
	Role     models.UserRole
}

type UserUseCase interface {
	ListUsers(viewer visibility.Viewer, limit, offset int) ([]*models.User, int64, error)
	CreateUser(viewer visibility.Viewer, input UserInput) (*models.User, error)
	UpdateUser(viewer visibility.Viewer, id int64, input UserInput) (*models.User, error)
	SetActive(viewer visibility.Viewer, id int64, active bool) (*models.User, error)
}

type userUseCase struct {
	userRepo persistent.UserRepository
}

func NewUserUseCase(userRepo persistent.UserRepository) UserUseCase {
	return &userUseCase{userRepo: userRepo}
}

func (uc *userUseCase) ListUsers(viewer visibility.Viewer, limit, offset int) ([]*models.User, int64, error) {
	if viewer.Role != visibility.RoleAdmin {
		return nil, 0, bulk.ErrNotAuthorized
	}
	return uc.userRepo.List(limit, offset)
}

func (uc *userUseCase) CreateUser(viewer visibility.Viewer, input UserInput) (*models.User, error) {
	if viewer.Role != visibility.RoleAdmin {
		return nil, bulk.ErrNotAuthorized
	}
	if input.Email == "" || input.Username == "" || len(input.Password) < 8 {
		return nil, fmt.Errorf("%w: email, username and a password of at least 8 characters are required", bulk.ErrValidation)
	}

	role := input.Role
	if role == "" {
		role = models.RoleSubscriber
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:    input.Email,
		Username: input.Username,
		Password: string(hashed),
		Role:     role,
		IsActive: true,
	}
	if err := uc.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

func (uc *userUseCase) UpdateUser(viewer visibility.Viewer, id int64, input UserInput) (*models.User, error) {
	if viewer.Role != visibility.RoleAdmin {
		return nil, bulk.ErrNotAuthorized
	}

	user, err := uc.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if input.Email != "" {
		user.Email = input.Email
	}
	if input.Username != "" {
		user.Username = input.Username
	}
	if input.Role != "" {
		user.Role = input.Role
	}
	if input.Password != "" {
		if len(input.Password) < 8 {
			return nil, fmt.Errorf("%w: password must be at least 8 characters", bulk.ErrValidation)
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.Password = string(hashed)
	}

	if err := uc.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

func (uc *userUseCase) SetActive(viewer visibility.Viewer, id int64, active bool) (*models.User, error) {
	if viewer.Role != visibility.RoleAdmin {
		return nil, bulk.ErrNotAuthorized
	}

	user, err := uc.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user.IsActive == active {
		return user, nil
	}

	user.IsActive = active
	if err := uc.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}
