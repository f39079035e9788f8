package postgres

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	settingsDatamodel "github.com/ronaldsalazarvasquez/Inventario-Taller/internal/core/datamodel/settings"
	settingsDomain "github.com/ronaldsalazarvasquez/Inventario-Taller/internal/settings"
)

type SettingsRepository struct {
	db *gorm.DB
}

func NewSettingsRepository(db *gorm.DB) settingsDomain.Repository {
	return &SettingsRepository{db: db}
}

func (r *SettingsRepository) Get() (*settingsDomain.Settings, error) {
	var dm settingsDatamodel.Settings
	if err := r.db.Where("id = ?", 1).First(&dm).Error; err != nil {
		return nil, err
	}
	return &settingsDomain.Settings{
		CalibrationWarningDays: dm.CalibrationWarningDays,
		UpdatedAt:              dm.UpdatedAt,
	}, nil
}

func (r *SettingsRepository) Save(s *settingsDomain.Settings) error {
	dm := &settingsDatamodel.Settings{
		ID:                     1,
		CalibrationWarningDays: s.CalibrationWarningDays,
		UpdatedAt:              s.UpdatedAt,
	}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(dm).Error
}
