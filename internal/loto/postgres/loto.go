package postgres

import (
	"time"

	"gorm.io/gorm"

	"github.com/ronaldsalazarvasquez/Inventario-Taller/internal"
	"github.com/ronaldsalazarvasquez/Inventario-Taller/internal/core/datamodel/loto"
	lotoDomain "github.com/ronaldsalazarvasquez/Inventario-Taller/internal/loto"
)

// DeviceRepository implements the loto.Repository interface using GORM.
type DeviceRepository struct {
	db *gorm.DB
}

func NewDeviceRepository(db *gorm.DB) lotoDomain.Repository {
	return &DeviceRepository{db: db}
}

func (r *DeviceRepository) CreateDevice(d *lotoDomain.LockoutDevice) error {
	return r.db.Create(lotoDomain.DeviceToDataModel(d)).Error
}

func (r *DeviceRepository) GetDevice(id string) (*lotoDomain.LockoutDevice, error) {
	var dm loto.LockoutDevice
	err := r.db.Where("id = ?", id).First(&dm).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, internal.ErrDeviceNotFound
		}
		return nil, err
	}
	return lotoDomain.DeviceFromDataModel(&dm), nil
}

func (r *DeviceRepository) ListDevices(f lotoDomain.DeviceFilter) ([]*lotoDomain.LockoutDevice, error) {
	var dms []*loto.LockoutDevice
	q := r.db.Order("name ASC")
	if f.Status != nil {
		q = q.Where("status = ?", string(*f.Status))
	}
	if f.Type != nil {
		q = q.Where("type = ?", string(*f.Type))
	}
	if f.Search != "" {
		pattern := "%" + f.Search + "%"
		q = q.Where("name ILIKE ? OR brand ILIKE ?", pattern, pattern)
	}
	if err := q.Find(&dms).Error; err != nil {
		return nil, err
	}

	devices := make([]*lotoDomain.LockoutDevice, len(dms))
	for i, dm := range dms {
		devices[i] = lotoDomain.DeviceFromDataModel(dm)
	}
	return devices, nil
}

func (r *DeviceRepository) SaveDevice(d *lotoDomain.LockoutDevice) error {
	return r.db.Save(lotoDomain.DeviceToDataModel(d)).Error
}

func (r *DeviceRepository) DeleteDevice(id string) error {
	result := r.db.Where("id = ?", id).Delete(&loto.LockoutDevice{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return internal.ErrDeviceNotFound
	}
	return nil
}

// StartUsage writes the device's in_use state and the new usage record in one
// transaction.
func (r *DeviceRepository) StartUsage(d *lotoDomain.LockoutDevice, rec *lotoDomain.UsageRecord) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(lotoDomain.DeviceToDataModel(d)).Error; err != nil {
			return err
		}
		dm := lotoDomain.UsageToDataModel(rec)
		dm.CreatedAt = rec.StartDate
		return tx.Create(dm).Error
	})
}

// EndUsage frees the device and stamps the record's end date in one
// transaction.
func (r *DeviceRepository) EndUsage(d *lotoDomain.LockoutDevice, recordID string, at time.Time) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(lotoDomain.DeviceToDataModel(d)).Error; err != nil {
			return err
		}
		result := tx.Model(&loto.LockoutUsageRecord{}).
			Where("id = ? AND end_date IS NULL", recordID).
			Update("end_date", at)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return internal.ErrUsageNotFound
		}
		return nil
	})
}

func (r *DeviceRepository) GetUsage(recordID string) (*lotoDomain.UsageRecord, error) {
	var dm loto.LockoutUsageRecord
	err := r.db.Where("id = ?", recordID).First(&dm).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, internal.ErrUsageNotFound
		}
		return nil, err
	}
	return lotoDomain.UsageFromDataModel(&dm), nil
}

func (r *DeviceRepository) ListUsage(f lotoDomain.UsageFilter) ([]*lotoDomain.UsageRecord, error) {
	var dms []*loto.LockoutUsageRecord
	q := r.db.Order("start_date DESC")
	if f.DeviceID != "" {
		q = q.Where("device_id = ?", f.DeviceID)
	}
	if f.UserID != "" {
		q = q.Where("user_id = ?", f.UserID)
	}
	if f.OnlyOpen {
		q = q.Where("end_date IS NULL")
	}
	if err := q.Find(&dms).Error; err != nil {
		return nil, err
	}

	records := make([]*lotoDomain.UsageRecord, len(dms))
	for i, dm := range dms {
		records[i] = lotoDomain.UsageFromDataModel(dm)
	}
	return records, nil
}
