// Package secrets provides the PostgreSQL-backed vault store. Every mutation
// is a single statement filtered on (user_id, id), so ownership isolation
// and atomicity both come from the database, not from application locking.
package secrets

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/Adam9898/pw-manager-backend/internal/common"
	"github.com/Adam9898/pw-manager-backend/internal/dbx"
	"github.com/Adam9898/pw-manager-backend/internal/server/models"
)

// PostgresRepository implements vault storage over a dbx.DBTX
// (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Insert appends a secret to the owner's vault, assigning a fresh identifier.
func (r *PostgresRepository) Insert(ctx context.Context, ownerID string, secret *models.Secret) (*models.Secret, error) {
	secret.ID = uuid.NewString()

	query :=
		`INSERT INTO secrets (id, user_id, name, username, password)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		secret.ID, ownerID, secret.Name, secret.Username, secret.Password).Scan(&secret.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return secret, nil
}

// Get returns the secret matching (ownerID, secretID), or
// common.ErrorNotFound when no such row exists under this owner.
func (r *PostgresRepository) Get(ctx context.Context, ownerID, secretID string) (*models.Secret, error) {
	query :=
		`SELECT id, name, username, password, created_at FROM secrets
		 WHERE user_id = $1 AND id = $2
		 `

	secret := &models.Secret{}
	err := r.db.QueryRowContext(ctx, query, ownerID, secretID).
		Scan(&secret.ID, &secret.Name, &secret.Username, &secret.Password, &secret.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return secret, nil
}

// Update overwrites every client-owned field of the secret matching
// (ownerID, secret.ID). Zero rows affected means the compound match failed,
// reported as common.ErrorNotFound; the statement never partially applies.
func (r *PostgresRepository) Update(ctx context.Context, ownerID string, secret *models.Secret) error {
	query :=
		`UPDATE secrets
		 SET name = $3, username = $4, password = $5
		 WHERE user_id = $1 AND id = $2
		 `

	res, err := r.db.ExecContext(ctx, query,
		ownerID, secret.ID, secret.Name, secret.Username, secret.Password)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return checkAffected(res)
}

// Delete removes the secret matching (ownerID, secretID);
// common.ErrorNotFound when nothing was removed.
func (r *PostgresRepository) Delete(ctx context.Context, ownerID, secretID string) error {
	query :=
		`DELETE FROM secrets
		 WHERE user_id = $1 AND id = $2
		 `

	res, err := r.db.ExecContext(ctx, query, ownerID, secretID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return checkAffected(res)
}

// ListSummaries returns the owner's secrets in creation order, projected to
// id and name. The projection lives in the SELECT list: username and
// password never leave the database for this query.
func (r *PostgresRepository) ListSummaries(ctx context.Context, ownerID string) ([]*models.SecretSummary, error) {
	query :=
		`SELECT id, name FROM secrets
		 WHERE user_id = $1
		 ORDER BY created_at, id
		 `

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []*models.SecretSummary{}
	for rows.Next() {
		var item models.SecretSummary
		if err := rows.Scan(&item.ID, &item.Name); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func checkAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	switch n {
	case 1:
		return nil
	case 0:
		return common.ErrorNotFound
	default:
		return fmt.Errorf("unexpected rows affected: %d", n)
	}
}
