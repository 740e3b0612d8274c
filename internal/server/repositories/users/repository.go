package users

import (
	"context"

	"github.com/Adam9898/pw-manager-backend/internal/server/models"
)

// Repository is the identity store: account lookup and creation. It owns no
// business logic.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	// DeleteAll clears every account. Test support only.
	DeleteAll(ctx context.Context) error
}
