package auth

import (
	"github.com/ronaldsalazarvasquez/Inventario-Taller/internal/core/common/validation"
)

// LoginDTO is the transport shape used by the HTTP handler to accept login
// requests. Users sign in with their employee code.
type LoginDTO struct {
	UserID   string `json:"user_id"`
	Password string `json:"password"`
}

func (d LoginDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("user_id", d.UserID).Required()
	v.Field("password", d.Password).Required()
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

type RefreshTokenDTO struct {
	RefreshToken string `json:"refresh_token"`
}

func (d RefreshTokenDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("refresh_token", d.RefreshToken).Required()
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}
