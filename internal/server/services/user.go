// Package services contains server-side business logic. This file implements
// UserService, which handles registration, the email-uniqueness probe, and
// login with JWT issuance.
package services

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/Adam9898/pw-manager-backend/internal/common"
	"github.com/Adam9898/pw-manager-backend/internal/logging"
	"github.com/Adam9898/pw-manager-backend/internal/server/auth"
	"github.com/Adam9898/pw-manager-backend/internal/server/models"
	"github.com/Adam9898/pw-manager-backend/internal/server/repositories/users"
)

// bcryptCost matches the work factor the original deployment used for its
// stored hashes.
const bcryptCost = 14

// dummyHash is compared against when login hits an unknown email, so the
// unknown-email and wrong-password paths cost roughly the same.
var dummyHash = []byte("$2a$14$uDl0BMMu55K5QJdkc7rT9uFmFTWINhYqGBMDR7PytGYhGsTlBzM1q")

// UserService provides authentication-related operations:
//   - Register: create accounts and mint a first token
//   - Login: verify credentials and mint tokens
//   - EmailAvailable: registration-form uniqueness probe
type UserService struct {
	users  users.Repository
	tokens *auth.TokenService
	logger logging.Logger
}

// NewUserService constructs a UserService from its collaborators.
func NewUserService(users users.Repository, tokens *auth.TokenService, logger logging.Logger) *UserService {
	return &UserService{
		users:  users,
		tokens: tokens,
		logger: logger.With("module", "user_service"),
	}
}

// Register hashes the password, creates the account with the default regular
// role, and returns the created account together with a signed session
// token. A duplicate email surfaces as common.ErrorAlreadyExists.
func (s *UserService) Register(ctx context.Context, email, password string) (*models.User, string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, "", common.ErrorInternal
	}

	user, err := models.NewUser(email, string(hash), models.RoleRegular)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", common.ErrorValidation, err)
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, "", common.ErrorAlreadyExists
		}
		s.logger.Error(ctx, "account creation failed", "error", err)
		return nil, "", common.ErrorInternal
	}

	token, err := s.tokens.Issue(created.ID)
	if err != nil {
		return nil, "", common.ErrorInternal
	}

	return created, token, nil
}

// Login verifies the credentials and, on success, returns a fresh session
// token. Unknown email and wrong password both come back as
// common.ErrorUnauthorized: callers must not learn which one was wrong.
func (s *UserService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			return "", common.ErrorUnauthorized
		}
		s.logger.Error(ctx, "login lookup failed", "error", err)
		return "", common.ErrorInternal
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return "", common.ErrorUnauthorized
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", common.ErrorInternal
	}

	return token, nil
}

// EmailAvailable reports whether no account is registered under email.
func (s *UserService) EmailAvailable(ctx context.Context, email string) (bool, error) {
	_, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return true, nil
		}
		return false, common.ErrorInternal
	}
	return false, nil
}
