// Package repomanager wires the database handle to the concrete
// repositories. Components receive repositories from a manager instance at
// construction; there is no package-level database state.
package repomanager

import (
	"database/sql"

	"github.com/Adam9898/pw-manager-backend/internal/server/repositories/secrets"
	"github.com/Adam9898/pw-manager-backend/internal/server/repositories/users"
)

// RepositoryManager hands out repository instances sharing one connection
// pool.
type RepositoryManager interface {
	Conn() *sql.DB
	Users() users.Repository
	Secrets() secrets.Repository
	Close() error
}
