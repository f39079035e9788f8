package user

import (
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/ronaldsalazarvasquez/Inventario-Taller/internal"
)

type Repository interface {
	Create(u *User) error
	GetByID(id string) (*User, error)
	List() ([]*User, error)
	Save(u *User) error
	Delete(id string) error
}

type Service struct {
	repo       Repository
	bcryptCost int
	logger     *slog.Logger
}

func NewService(repo Repository, bcryptCost int, logger *slog.Logger) *Service {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{
		repo:       repo,
		bcryptCost: bcryptCost,
		logger:     logger,
	}
}

func (s *Service) Create(dto CreateUserDTO) (*User, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("user validation failed", "error", err, "user_id", dto.ID)
		return nil, err
	}

	role, err := ParseRole(dto.Role)
	if err != nil {
		return nil, err
	}

	if existing, _ := s.repo.GetByID(dto.ID); existing != nil {
		return nil, internal.ErrUserAlreadyRegistered
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(dto.Password), s.bcryptCost)
	if err != nil {
		return nil, internal.NewInternalError("failed to hash password", err)
	}

	now := time.Now()
	u := &User{
		ID:           dto.ID,
		Name:         dto.Name,
		Role:         role,
		AvatarURL:    dto.AvatarURL,
		AccessZones:  dto.AccessZones,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(u); err != nil {
		s.logger.Error("failed to create user", "error", err, "user_id", dto.ID)
		return nil, err
	}

	s.logger.Info("user created", "user_id", u.ID, "role", u.Role)
	return u, nil
}

func (s *Service) Update(id string, dto UpdateUserDTO) (*User, error) {
	u, err := s.repo.GetByID(id)
	if err != nil {
		return nil, internal.ErrUserNotFound
	}

	if dto.Name != nil {
		u.Name = *dto.Name
	}
	if dto.Role != nil {
		role, err := ParseRole(*dto.Role)
		if err != nil {
			return nil, err
		}
		u.Role = role
	}
	if dto.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*dto.Password), s.bcryptCost)
		if err != nil {
			return nil, internal.NewInternalError("failed to hash password", err)
		}
		u.PasswordHash = string(hash)
	}
	if dto.AccessZones != nil {
		u.AccessZones = dto.AccessZones
	}
	if dto.AvatarURL != nil {
		u.AvatarURL = dto.AvatarURL
	}
	u.UpdatedAt = time.Now()

	if err := s.repo.Save(u); err != nil {
		s.logger.Error("failed to update user", "error", err, "user_id", id)
		return nil, err
	}

	return u, nil
}

func (s *Service) GetByID(id string) (*User, error) {
	u, err := s.repo.GetByID(id)
	if err != nil {
		return nil, internal.ErrUserNotFound
	}
	return u, nil
}

func (s *Service) List() ([]*User, error) {
	return s.repo.List()
}

func (s *Service) Delete(id string) error {
	if _, err := s.repo.GetByID(id); err != nil {
		return internal.ErrUserNotFound
	}

	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete user", "error", err, "user_id", id)
		return err
	}

	s.logger.Info("user removed", "user_id", id)
	return nil
}

// Lookup implements the user directory used by the ledger services.
func (s *Service) Lookup(id string) (string, error) {
	u, err := s.repo.GetByID(id)
	if err != nil {
		return "", internal.ErrUserNotFound
	}
	return u.Name, nil
}
