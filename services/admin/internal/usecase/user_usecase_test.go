package usecase

import (
	"testing"

	"pressroom/pkg/models"
	"pressroom/pkg/visibility"
	"pressroom/services/admin/internal/bulk"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

func TestCreateUser_HashesPassword(t *testing.T) {
	repo := new(MockUserRepository)
	uc := NewUserUseCase(repo)
	admin := visibility.Viewer{Role: visibility.RoleAdmin, UserID: 1}

	repo.On("Create", mock.Anything).Return(nil)

	user, err := uc.CreateUser(admin, UserInput{
		Email:    "writer@example.com",
		Username: "writer",
		Password: "longenough",
		Role:     models.RoleAuthor,
	})

	assert.NoError(t, err)
	assert.NotEqual(t, "longenough", user.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("longenough")))
	assert.Equal(t, models.RoleAuthor, user.Role)
	assert.True(t, user.IsActive)
}

func TestCreateUser_DefaultsToSubscriber(t *testing.T) {
	repo := new(MockUserRepository)
	uc := NewUserUseCase(repo)
	admin := visibility.Viewer{Role: visibility.RoleAdmin, UserID: 1}

	repo.On("Create", mock.Anything).Return(nil)

	user, err := uc.CreateUser(admin, UserInput{
		Email:    "reader@example.com",
		Username: "reader",
		Password: "longenough",
	})

	assert.NoError(t, err)
	assert.Equal(t, models.RoleSubscriber, user.Role)
}

func TestCreateUser_ShortPassword(t *testing.T) {
	repo := new(MockUserRepository)
	uc := NewUserUseCase(repo)
	admin := visibility.Viewer{Role: visibility.RoleAdmin, UserID: 1}

	_, err := uc.CreateUser(admin, UserInput{
		Email:    "writer@example.com",
		Username: "writer",
		Password: "short",
	})

	assert.ErrorIs(t, err, bulk.ErrValidation)
	repo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestCreateUser_AdminOnly(t *testing.T) {
	uc := NewUserUseCase(new(MockUserRepository))

	_, err := uc.CreateUser(visibility.Viewer{Role: visibility.RoleAuthor, UserID: 5}, UserInput{
		Email:    "writer@example.com",
		Username: "writer",
		Password: "longenough",
	})

	assert.ErrorIs(t, err, bulk.ErrNotAuthorized)
}

func TestUpdateUser_PartialInput(t *testing.T) {
	repo := new(MockUserRepository)
	uc := NewUserUseCase(repo)
	admin := visibility.Viewer{Role: visibility.RoleAdmin, UserID: 1}

	repo.On("GetByID", int64(7)).Return(&models.User{
		ID:       7,
		Email:    "old@example.com",
		Username: "old",
		Password: "hash",
		Role:     models.RoleSubscriber,
		IsActive: true,
	}, nil)
	repo.On("Update", mock.Anything).Return(nil)

	user, err := uc.UpdateUser(admin, 7, UserInput{Role: models.RoleAuthor})

	assert.NoError(t, err)
	assert.Equal(t, models.RoleAuthor, user.Role)
	// Fields left empty in the input stay untouched.
	assert.Equal(t, "old@example.com", user.Email)
	assert.Equal(t, "hash", user.Password)
}

func TestSetActive_Idempotent(t *testing.T) {
	repo := new(MockUserRepository)
	uc := NewUserUseCase(repo)
	admin := visibility.Viewer{Role: visibility.RoleAdmin, UserID: 1}

	repo.On("GetByID", int64(7)).Return(&models.User{ID: 7, IsActive: true}, nil)

	user, err := uc.SetActive(admin, 7, true)

	assert.NoError(t, err)
	assert.True(t, user.IsActive)
	repo.AssertNotCalled(t, "Update", mock.Anything)
}

func TestSetActive_Deactivates(t *testing.T) {
	repo := new(MockUserRepository)
	uc := NewUserUseCase(repo)
	admin := visibility.Viewer{Role: visibility.RoleAdmin, UserID: 1}

	repo.On("GetByID", int64(7)).Return(&models.User{ID: 7, IsActive: true}, nil)
	repo.On("Update", mock.Anything).Return(nil)

	user, err := uc.SetActive(admin, 7, false)

	assert.NoError(t, err)
	assert.False(t, user.IsActive)
	repo.AssertExpectations(t)
}

func TestListUsers_AdminOnly(t *testing.T) {
	uc := NewUserUseCase(new(MockUserRepository))

	_, _, err := uc.ListUsers(visibility.Viewer{Role: visibility.RoleAuthor, UserID: 5}, 10, 0)

	assert.ErrorIs(t, err, bulk.ErrNotAuthorized)
}
