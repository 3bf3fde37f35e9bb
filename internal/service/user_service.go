package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"contactbook/internal/auth"
	apperrors "contactbook/internal/errors"
	"contactbook/internal/model"
	"contactbook/internal/repository"
)

const bcryptCost = 10

// UserService handles registration, login and session management. The
// authenticated user is always an explicit argument, never ambient state.
type UserService interface {
	Register(ctx context.Context, username, password, name string) (*model.User, error)
	Login(ctx context.Context, username, password string) (*model.User, error)
	Update(ctx context.Context, user *model.User, name, password *string) (*model.User, error)
	Logout(ctx context.Context, user *model.User) error
}

type userService struct {
	users  repository.UserRepository
	tokens auth.TokenStoreInterface
}

// NewUserService creates a new user service.
func NewUserService(users repository.UserRepository, tokens auth.TokenStoreInterface) UserService {
	return &userService{users: users, tokens: tokens}
}

// Register creates a new user with a hashed password.
func (s *userService) Register(ctx context.Context, username, password, name string) (*model.User, error) {
	_, err := s.users.FindByUsername(ctx, username)
	if err == nil {
		return nil, apperrors.ErrUsernameTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check username: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Username: username,
		Name:     name,
		Password: string(hashed),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// Login verifies credentials and issues a fresh session token. The error is
// the same for an unknown username and a wrong password.
func (s *userService) Login(ctx context.Context, username, password string) (*model.User, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	// single-session model: the new token replaces any previous one, which
	// must stop working immediately
	if user.Token != nil {
		_ = s.tokens.Delete(ctx, *user.Token)
	}

	token := auth.NewToken()
	if err := s.users.SetToken(ctx, user.ID, &token); err != nil {
		return nil, fmt.Errorf("store token: %w", err)
	}
	user.Token = &token
	_ = s.tokens.Save(ctx, token, user)

	return user, nil
}

// Update applies a partial profile update. Omitted fields are left untouched;
// a new password is re-hashed before persisting.
func (s *userService) Update(ctx context.Context, user *model.User, name, password *string) (*model.User, error) {
	columns := map[string]interface{}{}
	if name != nil {
		columns["name"] = *name
	}
	if password != nil {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*password), bcryptCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		columns["password"] = string(hashed)
	}

	if err := s.users.UpdateProfile(ctx, user.ID, columns); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}

	updated, err := s.users.FindByID(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("reload user: %w", err)
	}
	// refresh the cached session snapshot so the gate does not serve a stale name
	if updated.Token != nil {
		_ = s.tokens.Save(ctx, *updated.Token, updated)
	}
	return updated, nil
}

// Logout clears the session token. Repeated logouts re-null the column, so
// the effect is idempotent; reaching here at all requires a valid token.
func (s *userService) Logout(ctx context.Context, user *model.User) error {
	if err := s.users.SetToken(ctx, user.ID, nil); err != nil {
		return fmt.Errorf("clear token: %w", err)
	}
	if user.Token != nil {
		_ = s.tokens.Delete(ctx, *user.Token)
	}
	return nil
}
