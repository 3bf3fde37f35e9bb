package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	apperrors "contactbook/internal/errors"
	"contactbook/internal/model"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByToken(ctx context.Context, token string) (*model.User, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) UpdateProfile(ctx context.Context, id uint, columns map[string]interface{}) error {
	args := m.Called(ctx, id, columns)
	return args.Error(0)
}

func (m *MockUserRepository) SetToken(ctx context.Context, id uint, token *string) error {
	args := m.Called(ctx, id, token)
	return args.Error(0)
}

// MockTokenStore is a mock implementation of auth.TokenStoreInterface.
type MockTokenStore struct {
	mock.Mock
}

func (m *MockTokenStore) Save(ctx context.Context, token string, user *model.User) error {
	args := m.Called(ctx, token, user)
	return args.Error(0)
}

func (m *MockTokenStore) Get(ctx context.Context, token string) (*model.User, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockTokenStore) Delete(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func hashOf(t *testing.T, password string) string {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	assert.NoError(t, err)
	return string(hashed)
}

func TestUserService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("creates user with hashed password", func(t *testing.T) {
		users := new(MockUserRepository)
		tokens := new(MockTokenStore)
		svc := NewUserService(users, tokens)

		users.On("FindByUsername", ctx, "khannedy").Return(nil, gorm.ErrRecordNotFound)
		users.On("Create", ctx, mock.AnythingOfType("*model.User")).Return(nil)

		user, err := svc.Register(ctx, "khannedy", "rahasia", "Eko Khannedy")

		assert.NoError(t, err)
		assert.Equal(t, "khannedy", user.Username)
		assert.Equal(t, "Eko Khannedy", user.Name)
		assert.NotEqual(t, "rahasia", user.Password)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("rahasia")))
		assert.Nil(t, user.Token)
		users.AssertExpectations(t)
	})

	t.Run("rejects duplicate username", func(t *testing.T) {
		users := new(MockUserRepository)
		tokens := new(MockTokenStore)
		svc := NewUserService(users, tokens)

		users.On("FindByUsername", ctx, "khannedy").Return(&model.User{ID: 1, Username: "khannedy"}, nil)

		user, err := svc.Register(ctx, "khannedy", "rahasia", "Someone Else")

		assert.Nil(t, user)
		assert.ErrorIs(t, err, apperrors.ErrUsernameTaken)
		users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestUserService_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("issues and persists a fresh token", func(t *testing.T) {
		users := new(MockUserRepository)
		tokens := new(MockTokenStore)
		svc := NewUserService(users, tokens)

		stored := &model.User{ID: 7, Username: "test", Password: hashOf(t, "test")}
		users.On("FindByUsername", ctx, "test").Return(stored, nil)
		users.On("SetToken", ctx, uint(7), mock.AnythingOfType("*string")).Return(nil)
		tokens.On("Save", ctx, mock.AnythingOfType("string"), mock.AnythingOfType("*model.User")).Return(nil)

		user, err := svc.Login(ctx, "test", "test")

		assert.NoError(t, err)
		assert.NotNil(t, user.Token)
		assert.NotEmpty(t, *user.Token)
		users.AssertExpectations(t)
		tokens.AssertExpectations(t)
	})

	t.Run("replaces the previous session token", func(t *testing.T) {
		users := new(MockUserRepository)
		tokens := new(MockTokenStore)
		svc := NewUserService(users, tokens)

		old := "old-token"
		stored := &model.User{ID: 7, Username: "test", Password: hashOf(t, "test"), Token: &old}
		users.On("FindByUsername", ctx, "test").Return(stored, nil)
		users.On("SetToken", ctx, uint(7), mock.AnythingOfType("*string")).Return(nil)
		tokens.On("Delete", ctx, "old-token").Return(nil)
		tokens.On("Save", ctx, mock.AnythingOfType("string"), mock.AnythingOfType("*model.User")).Return(nil)

		user, err := svc.Login(ctx, "test", "test")

		assert.NoError(t, err)
		assert.NotEqual(t, "old-token", *user.Token)
		tokens.AssertExpectations(t)
	})

	t.Run("wrong password and unknown user fail identically", func(t *testing.T) {
		users := new(MockUserRepository)
		tokens := new(MockTokenStore)
		svc := NewUserService(users, tokens)

		stored := &model.User{ID: 7, Username: "test", Password: hashOf(t, "test")}
		users.On("FindByUsername", ctx, "test").Return(stored, nil)
		users.On("FindByUsername", ctx, "nobody").Return(nil, gorm.ErrRecordNotFound)

		_, errWrongPassword := svc.Login(ctx, "test", "salah")
		_, errUnknownUser := svc.Login(ctx, "nobody", "test")

		assert.ErrorIs(t, errWrongPassword, apperrors.ErrInvalidCredentials)
		assert.ErrorIs(t, errUnknownUser, apperrors.ErrInvalidCredentials)
		assert.Equal(t, errWrongPassword, errUnknownUser)
		users.AssertNotCalled(t, "SetToken", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestUserService_Update(t *testing.T) {
	ctx := context.Background()
	token := "session-token"

	t.Run("password only leaves name untouched", func(t *testing.T) {
		users := new(MockUserRepository)
		tokens := new(MockTokenStore)
		svc := NewUserService(users, tokens)

		current := &model.User{ID: 3, Username: "test", Name: "Before", Token: &token}
		reloaded := &model.User{ID: 3, Username: "test", Name: "Before", Password: "new-hash", Token: &token}

		users.On("UpdateProfile", ctx, uint(3), mock.MatchedBy(func(cols map[string]interface{}) bool {
			_, hasName := cols["name"]
			hashed, hasPassword := cols["password"]
			if hasName || !hasPassword {
				return false
			}
			return bcrypt.CompareHashAndPassword([]byte(hashed.(string)), []byte("baru")) == nil
		})).Return(nil)
		users.On("FindByID", ctx, uint(3)).Return(reloaded, nil)
		tokens.On("Save", ctx, token, reloaded).Return(nil)

		updated, err := svc.Update(ctx, current, nil, strPtr("baru"))

		assert.NoError(t, err)
		assert.Equal(t, "Before", updated.Name)
		users.AssertExpectations(t)
	})

	t.Run("name only leaves password untouched", func(t *testing.T) {
		users := new(MockUserRepository)
		tokens := new(MockTokenStore)
		svc := NewUserService(users, tokens)

		current := &model.User{ID: 3, Username: "test", Name: "Before", Token: &token}
		reloaded := &model.User{ID: 3, Username: "test", Name: "After", Token: &token}

		users.On("UpdateProfile", ctx, uint(3), mock.MatchedBy(func(cols map[string]interface{}) bool {
			_, hasPassword := cols["password"]
			return cols["name"] == "After" && !hasPassword
		})).Return(nil)
		users.On("FindByID", ctx, uint(3)).Return(reloaded, nil)
		tokens.On("Save", ctx, token, reloaded).Return(nil)

		updated, err := svc.Update(ctx, current, strPtr("After"), nil)

		assert.NoError(t, err)
		assert.Equal(t, "After", updated.Name)
		users.AssertExpectations(t)
	})
}

func TestUserService_Logout(t *testing.T) {
	ctx := context.Background()
	token := "session-token"

	users := new(MockUserRepository)
	tokens := new(MockTokenStore)
	svc := NewUserService(users, tokens)

	user := &model.User{ID: 5, Username: "test", Token: &token}
	users.On("SetToken", ctx, uint(5), (*string)(nil)).Return(nil)
	tokens.On("Delete", ctx, token).Return(nil)

	err := svc.Logout(ctx, user)

	assert.NoError(t, err)
	users.AssertExpectations(t)
	tokens.AssertExpectations(t)
}

func strPtr(s string) *string {
	return &s
}
