package user

import (
	"strings"
	"time"

	"github.com/ronaldsalazarvasquez/Inventario-Taller/internal"
	userDatamodel "github.com/ronaldsalazarvasquez/Inventario-Taller/internal/core/datamodel/user"
)

type Role string

const (
	RoleAdministrator      Role = "administrator"
	RoleSupervisor         Role = "supervisor"
	RoleMechanicTechnician Role = "mechanic_technician"
	RoleElectricTechnician Role = "electric_technician"
	RoleOperator           Role = "operator"
)

func ParseRole(raw string) (Role, error) {
	switch Role(raw) {
	case RoleAdministrator, RoleSupervisor, RoleMechanicTechnician, RoleElectricTechnician, RoleOperator:
		return Role(raw), nil
	}
	return "", internal.NewValidationError("unknown role", internal.ErrCodeValidationFailed)
}

// rolePermissions maps each role onto the operations it may perform. Every
// role can borrow tools and use lockout devices; mutation authority over the
// registry itself narrows toward administrators.
var rolePermissions = map[Role][]string{
	RoleAdministrator: {
		"manage_tools", "checkout_tool", "manage_maintenance",
		"decommission_tool", "advance_replacement",
		"manage_loto", "use_loto",
		"manage_users", "view_reports", "manage_settings",
	},
	RoleSupervisor: {
		"manage_tools", "checkout_tool", "manage_maintenance",
		"decommission_tool", "advance_replacement",
		"manage_loto", "use_loto",
		"view_reports",
	},
	RoleMechanicTechnician: {"checkout_tool", "use_loto", "view_reports"},
	RoleElectricTechnician: {"checkout_tool", "use_loto", "view_reports"},
	RoleOperator:           {"checkout_tool", "use_loto"},
}

func PermissionsForRole(role Role) []string {
	return rolePermissions[role]
}

type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Role         Role      `json:"role"`
	AvatarURL    *string   `json:"avatar_url,omitempty"`
	AccessZones  []string  `json:"access_zones"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (u *User) Permissions() []string {
	return PermissionsForRole(u.Role)
}

func (u *User) HasPermission(permission string) bool {
	for _, p := range u.Permissions() {
		if p == permission {
			return true
		}
	}
	return false
}

// CanAccessZone honors the "*" wildcard.
func (u *User) CanAccessZone(zone string) bool {
	for _, z := range u.AccessZones {
		if z == "*" || z == zone {
			return true
		}
	}
	return false
}

func ToDataModel(u *User) *userDatamodel.User {
	return &userDatamodel.User{
		ID:           u.ID,
		Name:         u.Name,
		Role:         string(u.Role),
		AvatarURL:    u.AvatarURL,
		AccessZones:  strings.Join(u.AccessZones, ","),
		PasswordHash: u.PasswordHash,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func FromDataModel(dm *userDatamodel.User) *User {
	var zones []string
	if dm.AccessZones != "" {
		zones = strings.Split(dm.AccessZones, ",")
	}
	return &User{
		ID:           dm.ID,
		Name:         dm.Name,
		Role:         Role(dm.Role),
		AvatarURL:    dm.AvatarURL,
		AccessZones:  zones,
		PasswordHash: dm.PasswordHash,
		CreatedAt:    dm.CreatedAt,
		UpdatedAt:    dm.UpdatedAt,
	}
}
