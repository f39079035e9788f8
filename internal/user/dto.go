package user

import (
	errors "github.com/ronaldsalazarvasquez/Inventario-Taller/internal"
	"github.com/ronaldsalazarvasquez/Inventario-Taller/internal/core/common/validation"
)

type CreateUserDTO struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Role        string   `json:"role"`
	Password    string   `json:"password"`
	AccessZones []string `json:"access_zones"`
	AvatarURL   *string  `json:"avatar_url,omitempty"`
}

func (d CreateUserDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("id", d.ID).Required().MaxLength(50)
	v.Field("name", d.Name).Required().MaxLength(200)
	v.Field("password", d.Password).Required().MinLength(8)
	v.Field("role", d.Role).Required().Custom(func(value interface{}) *errors.AppError {
		if raw, ok := value.(string); ok && raw != "" {
			if _, err := ParseRole(raw); err != nil {
				return err.(*errors.AppError)
			}
		}
		return nil
	})
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

type UpdateUserDTO struct {
	Name        *string  `json:"name,omitempty"`
	Role        *string  `json:"role,omitempty"`
	Password    *string  `json:"password,omitempty"`
	AccessZones []string `json:"access_zones,omitempty"`
	AvatarURL   *string  `json:"avatar_url,omitempty"`
}
