package services

import (
	"context"
	"fmt"

	"github.com/Adam9898/pw-manager-backend/internal/common"
	"github.com/Adam9898/pw-manager-backend/internal/logging"
	"github.com/Adam9898/pw-manager-backend/internal/server/models"
	"github.com/Adam9898/pw-manager-backend/internal/server/repositories/secrets"
)

// SecretService implements the vault operations. Every method takes the
// owner id of the authenticated subject; the service never trusts an owner
// id from a request payload. Field validation runs before any repository
// call, so an invalid payload has no storage side effect.
type SecretService struct {
	secrets secrets.Repository
	logger  logging.Logger
}

// NewSecretService constructs a SecretService from its collaborators.
func NewSecretService(secrets secrets.Repository, logger logging.Logger) *SecretService {
	return &SecretService{
		secrets: secrets,
		logger:  logger.With("module", "secret_service"),
	}
}

// Create validates and appends a new secret to the owner's vault, returning
// it with its assigned identifier.
func (s *SecretService) Create(ctx context.Context, ownerID string, secret *models.Secret) (*models.Secret, error) {
	if err := secret.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorValidation, err)
	}
	return s.secrets.Insert(ctx, ownerID, secret)
}

// Get returns one secret from the owner's vault.
func (s *SecretService) Get(ctx context.Context, ownerID, secretID string) (*models.Secret, error) {
	return s.secrets.Get(ctx, ownerID, secretID)
}

// Update full-replaces the secret matching (ownerID, secret.ID). Applying
// the same update twice yields the same stored record.
func (s *SecretService) Update(ctx context.Context, ownerID string, secret *models.Secret) error {
	if secret.ID == "" {
		return fmt.Errorf("%w: missing secret id", common.ErrorValidation)
	}
	if err := secret.Validate(); err != nil {
		return fmt.Errorf("%w: %v", common.ErrorValidation, err)
	}
	return s.secrets.Update(ctx, ownerID, secret)
}

// Delete removes one secret from the owner's vault.
func (s *SecretService) Delete(ctx context.Context, ownerID, secretID string) error {
	return s.secrets.Delete(ctx, ownerID, secretID)
}

// ListSummaries returns the redacted {id, name} listing of the owner's
// vault in creation order.
func (s *SecretService) ListSummaries(ctx context.Context, ownerID string) ([]*models.SecretSummary, error) {
	return s.secrets.ListSummaries(ctx, ownerID)
}
