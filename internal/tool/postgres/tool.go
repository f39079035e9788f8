package postgres

import (
	"time"

	"gorm.io/gorm"

	"github.com/ronaldsalazarvasquez/Inventario-Taller/internal"
	"github.com/ronaldsalazarvasquez/Inventario-Taller/internal/core/datamodel/tool"
	toolDomain "github.com/ronaldsalazarvasquez/Inventario-Taller/internal/tool"
)

// ToolRepository implements the tool.Repository interface using GORM.
type ToolRepository struct {
	db *gorm.DB
}

func NewToolRepository(db *gorm.DB) toolDomain.Repository {
	return &ToolRepository{db: db}
}

func (r *ToolRepository) CreateTool(t *toolDomain.Tool) error {
	return r.db.Create(toolDomain.ToDataModel(t)).Error
}

func (r *ToolRepository) GetTool(id string) (*toolDomain.Tool, error) {
	var dm tool.Tool
	err := r.db.Where("id = ?", id).First(&dm).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, internal.ErrToolNotFound
		}
		return nil, err
	}
	return toolDomain.FromDataModel(&dm), nil
}

func (r *ToolRepository) ListTools(f toolDomain.Filter) ([]*toolDomain.Tool, error) {
	var dms []*tool.Tool
	q := r.db.Order("name ASC")
	if f.Status != nil {
		q = q.Where("status = ?", string(*f.Status))
	}
	if f.Category != nil {
		q = q.Where("category = ?", string(*f.Category))
	}
	if f.Search != "" {
		pattern := "%" + f.Search + "%"
		q = q.Where("name ILIKE ? OR brand ILIKE ?", pattern, pattern)
	}
	if err := q.Find(&dms).Error; err != nil {
		return nil, err
	}
	return toolDomain.FromDataModelSlice(dms), nil
}

func (r *ToolRepository) SaveTool(t *toolDomain.Tool) error {
	return r.db.Save(toolDomain.ToDataModel(t)).Error
}

// CheckOut writes the custody columns and the new loan record in one
// transaction.
func (r *ToolRepository) CheckOut(t *toolDomain.Tool, rec *toolDomain.LoanRecord) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(toolDomain.ToDataModel(t)).Error; err != nil {
			return err
		}
		dm := toolDomain.LoanToDataModel(rec)
		dm.CreatedAt = rec.CheckoutDate
		return tx.Create(dm).Error
	})
}

// CheckIn clears custody and stamps the loan's check-in date in one
// transaction.
func (r *ToolRepository) CheckIn(t *toolDomain.Tool, loanID string, at time.Time) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(toolDomain.ToDataModel(t)).Error; err != nil {
			return err
		}
		result := tx.Model(&tool.LoanRecord{}).
			Where("id = ? AND checkin_date IS NULL", loanID).
			Update("checkin_date", at)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return internal.ErrLoanNotFound
		}
		return nil
	})
}

func (r *ToolRepository) OpenLoan(toolID string) (*toolDomain.LoanRecord, error) {
	var dm tool.LoanRecord
	err := r.db.Where("tool_id = ? AND checkin_date IS NULL", toolID).
		Order("checkout_date DESC").
		First(&dm).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, internal.ErrLoanNotFound
		}
		return nil, err
	}
	return toolDomain.LoanFromDataModel(&dm), nil
}

func (r *ToolRepository) ListLoans(f toolDomain.LoanFilter) ([]*toolDomain.LoanRecord, error) {
	var dms []*tool.LoanRecord
	q := r.db.Order("checkout_date DESC")
	if f.ToolID != "" {
		q = q.Where("tool_id = ?", f.ToolID)
	}
	if f.UserID != "" {
		q = q.Where("user_id = ?", f.UserID)
	}
	if f.OnlyOpen {
		q = q.Where("checkin_date IS NULL")
	}
	if f.OnlyClosed {
		q = q.Where("checkin_date IS NOT NULL")
	}
	if err := q.Find(&dms).Error; err != nil {
		return nil, err
	}

	records := make([]*toolDomain.LoanRecord, len(dms))
	for i, dm := range dms {
		records[i] = toolDomain.LoanFromDataModel(dm)
	}
	return records, nil
}

func (r *ToolRepository) AddMaintenance(t *toolDomain.Tool, rec *toolDomain.MaintenanceRecord) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(toolDomain.ToDataModel(t)).Error; err != nil {
			return err
		}
		dm := toolDomain.MaintenanceToDataModel(rec)
		dm.CreatedAt = rec.Date
		return tx.Create(dm).Error
	})
}

func (r *ToolRepository) ListMaintenance(toolID string) ([]*toolDomain.MaintenanceRecord, error) {
	var dms []*tool.MaintenanceRecord
	err := r.db.Where("tool_id = ?", toolID).
		Order("date DESC").
		Find(&dms).Error
	if err != nil {
		return nil, err
	}

	records := make([]*toolDomain.MaintenanceRecord, len(dms))
	for i, dm := range dms {
		records[i] = toolDomain.MaintenanceFromDataModel(dm)
	}
	return records, nil
}

func (r *ToolRepository) AllMaintenance() ([]*toolDomain.MaintenanceRecord, error) {
	var dms []*tool.MaintenanceRecord
	if err := r.db.Order("date DESC").Find(&dms).Error; err != nil {
		return nil, err
	}

	records := make([]*toolDomain.MaintenanceRecord, len(dms))
	for i, dm := range dms {
		records[i] = toolDomain.MaintenanceFromDataModel(dm)
	}
	return records, nil
}

// Decommission writes the tool's terminal state, the decommission record and,
// when the tool was out on loan, the loan closure in a single transaction.
func (r *ToolRepository) Decommission(t *toolDomain.Tool, rec *toolDomain.DecommissionRecord, closeOpenLoanAt *time.Time) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(toolDomain.ToDataModel(t)).Error; err != nil {
			return err
		}
		dm := toolDomain.DecommissionToDataModel(rec)
		dm.UpdatedAt = rec.Date
		if err := tx.Create(dm).Error; err != nil {
			return err
		}
		if closeOpenLoanAt != nil {
			return tx.Model(&tool.LoanRecord{}).
				Where("tool_id = ? AND checkin_date IS NULL", t.ID).
				Update("checkin_date", *closeOpenLoanAt).Error
		}
		return nil
	})
}

func (r *ToolRepository) GetDecommission(toolID string) (*toolDomain.DecommissionRecord, error) {
	var dm tool.DecommissionRecord
	err := r.db.Where("tool_id = ?", toolID).First(&dm).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, internal.ErrDecommissionNotFound
		}
		return nil, err
	}
	return toolDomain.DecommissionFromDataModel(&dm), nil
}

func (r *ToolRepository) ListDecommissions() ([]*toolDomain.DecommissionRecord, error) {
	var dms []*tool.DecommissionRecord
	if err := r.db.Order("date DESC").Find(&dms).Error; err != nil {
		return nil, err
	}

	records := make([]*toolDomain.DecommissionRecord, len(dms))
	for i, dm := range dms {
		records[i] = toolDomain.DecommissionFromDataModel(dm)
	}
	return records, nil
}

func (r *ToolRepository) SaveReplacementStatus(toolID string, status toolDomain.ReplacementStatus) error {
	result := r.db.Model(&tool.DecommissionRecord{}).
		Where("tool_id = ?", toolID).
		Updates(map[string]interface{}{
			"replacement_status": string(status),
			"updated_at":         time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return internal.ErrDecommissionNotFound
	}
	return nil
}
