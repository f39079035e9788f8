package postgres

import (
	"gorm.io/gorm"

	"github.com/ronaldsalazarvasquez/Inventario-Taller/internal"
	userDatamodel "github.com/ronaldsalazarvasquez/Inventario-Taller/internal/core/datamodel/user"
	userDomain "github.com/ronaldsalazarvasquez/Inventario-Taller/internal/user"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) userDomain.Repository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(u *userDomain.User) error {
	return r.db.Create(userDomain.ToDataModel(u)).Error
}

func (r *UserRepository) GetByID(id string) (*userDomain.User, error) {
	var dm userDatamodel.User
	err := r.db.Where("id = ?", id).First(&dm).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, internal.ErrUserNotFound
		}
		return nil, err
	}
	return userDomain.FromDataModel(&dm), nil
}

func (r *UserRepository) List() ([]*userDomain.User, error) {
	var dms []*userDatamodel.User
	if err := r.db.Order("name ASC").Find(&dms).Error; err != nil {
		return nil, err
	}

	users := make([]*userDomain.User, len(dms))
	for i, dm := range dms {
		users[i] = userDomain.FromDataModel(dm)
	}
	return users, nil
}

func (r *UserRepository) Save(u *userDomain.User) error {
	return r.db.Save(userDomain.ToDataModel(u)).Error
}

func (r *UserRepository) Delete(id string) error {
	result := r.db.Where("id = ?", id).Delete(&userDatamodel.User{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return internal.ErrUserNotFound
	}
	return nil
}
