package postgres

import (
	"database/sql"
	"strings"

	"gorm.io/gorm"

	"github.com/ronaldsalazarvasquez/Inventario-Taller/internal"
	"github.com/ronaldsalazarvasquez/Inventario-Taller/internal/auth"
	"github.com/ronaldsalazarvasquez/Inventario-Taller/internal/user"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) GetCredentials(userID string) (string, string, error) {
	var passwordHash string
	var role string
	query := `SELECT password_hash, role FROM users WHERE id = ?`

	row := r.db.Raw(query, userID).Row()
	if err := row.Scan(&passwordHash, &role); err != nil {
		if err == sql.ErrNoRows {
			return "", "", internal.ErrUserNotFound
		}
		return "", "", err
	}
	return passwordHash, role, nil
}

func (r *Repository) GetUser(userID string) (*auth.User, error) {
	var principal auth.User
	var zones string
	query := `SELECT id, name, role, access_zones FROM users WHERE id = ?`

	row := r.db.Raw(query, userID).Row()
	if err := row.Scan(&principal.ID, &principal.Name, &principal.Role, &zones); err != nil {
		if err == sql.ErrNoRows {
			return nil, internal.ErrUserNotFound
		}
		return nil, err
	}

	if zones != "" {
		principal.AccessZones = strings.Split(zones, ",")
	}
	principal.Permissions = user.PermissionsForRole(user.Role(principal.Role))
	return &principal, nil
}
