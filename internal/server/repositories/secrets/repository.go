package secrets

import (
	"context"

	"github.com/Adam9898/pw-manager-backend/internal/server/models"
)

// Repository is the vault store: CRUD over one owner's secrets. Every
// operation takes the owner id resolved by the auth middleware, never a
// client-supplied one, and a secret belonging to a different owner is
// indistinguishable from a nonexistent one (common.ErrorNotFound either way).
type Repository interface {
	Insert(ctx context.Context, ownerID string, secret *models.Secret) (*models.Secret, error)
	Get(ctx context.Context, ownerID, secretID string) (*models.Secret, error)
	Update(ctx context.Context, ownerID string, secret *models.Secret) error
	Delete(ctx context.Context, ownerID, secretID string) error
	ListSummaries(ctx context.Context, ownerID string) ([]*models.SecretSummary, error)
}
