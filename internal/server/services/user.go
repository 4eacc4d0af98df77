// Package services contains server-side business logic. Services receive
// their repositories and collaborators explicitly and speak in terms of
// models and the sentinel errors of package common.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/server/auth"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
	"github.com/dmitrijs2005/taskkeeper/internal/server/repositories/users"
)

// LoginResult is what a successful login hands back to the caller.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      *models.User
}

// UserService handles registration, login and the caller's own profile.
type UserService struct {
	users    users.Repository
	tokens   *auth.TokenManager
	hashCost int
}

// NewUserService constructs a UserService. hashCost is the bcrypt cost used
// for new passwords.
func NewUserService(repo users.Repository, tokens *auth.TokenManager, hashCost int) *UserService {
	return &UserService{users: repo, tokens: tokens, hashCost: hashCost}
}

// Register validates input and creates a user. A taken email yields
// common.ErrorConflict.
func (s *UserService) Register(ctx context.Context, fullName, email, password string) (*models.User, error) {
	fullName = strings.TrimSpace(fullName)
	email = common.NormalizeEmail(email)

	if fullName == "" || email == "" || password == "" {
		return nil, common.NewValidationError("Full name, email and password are required")
	}
	if !common.LooksLikeEmail(email) {
		return nil, common.NewValidationError("Invalid email address")
	}
	if len([]rune(password)) < common.MinPasswordLength {
		return nil, common.NewValidationError(fmt.Sprintf("Password must be at least %d characters", common.MinPasswordLength))
	}

	hash, err := auth.HashPassword(password, s.hashCost)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	u, err := s.users.Create(ctx, &models.User{FullName: fullName, Email: email, PasswordHash: hash})
	if err != nil {
		if errors.Is(err, common.ErrorConflict) {
			return nil, err
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}
	return u, nil
}

// Login checks the credentials and issues a token. Unknown email and wrong
// password both yield common.ErrorUnauthorized.
func (s *UserService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = common.NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, common.NewValidationError("Email and password are required")
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, fmt.Errorf("error loading user: %w", err)
	}

	if err := auth.CheckPassword(user.PasswordHash, password); err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			return nil, err
		}
		return nil, fmt.Errorf("error checking password: %w", err)
	}

	token, expiresAt, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, fmt.Errorf("error issuing token: %w", err)
	}

	return &LoginResult{Token: token, ExpiresAt: expiresAt, User: user}, nil
}

// GetProfile returns the user with the given id.
func (s *UserService) GetProfile(ctx context.Context, userID string) (*models.User, error) {
	return s.users.GetByID(ctx, userID)
}

// UpdateProfile changes full name and/or email. Empty values count as not
// provided; an email that is provided is normalised and validated first.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, fullName, email *string) (*models.User, error) {
	var patch models.UserPatch

	if fullName != nil {
		if v := strings.TrimSpace(*fullName); v != "" {
			patch.FullName = &v
		}
	}
	if email != nil {
		if v := common.NormalizeEmail(*email); v != "" {
			if !common.LooksLikeEmail(v) {
				return nil, common.NewValidationError("Invalid email address")
			}
			patch.Email = &v
		}
	}

	if patch.IsEmpty() {
		return s.users.GetByID(ctx, userID)
	}

	return s.users.Update(ctx, userID, patch)
}
