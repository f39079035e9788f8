package postgres

import (
	"gorm.io/gorm"

	notifDatamodel "github.com/ronaldsalazarvasquez/Inventario-Taller/internal/core/datamodel/notification"
	notifDomain "github.com/ronaldsalazarvasquez/Inventario-Taller/internal/notification"
)

type NotificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) notifDomain.Repository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Append(n *notifDomain.Notification) error {
	return r.db.Create(notifDomain.ToDataModel(n)).Error
}

func (r *NotificationRepository) List(unreadOnly bool, limit int) ([]*notifDomain.Notification, error) {
	var dms []*notifDatamodel.Notification
	q := r.db.Order("timestamp DESC").Limit(limit)
	if unreadOnly {
		q = q.Where("read = ?", false)
	}
	if err := q.Find(&dms).Error; err != nil {
		return nil, err
	}

	notifications := make([]*notifDomain.Notification, len(dms))
	for i, dm := range dms {
		notifications[i] = notifDomain.FromDataModel(dm)
	}
	return notifications, nil
}

func (r *NotificationRepository) MarkAllRead() (int64, error) {
	result := r.db.Model(&notifDatamodel.Notification{}).
		Where("read = ?", false).
		Update("read", true)
	return result.RowsAffected, result.Error
}

func (r *NotificationRepository) HasForRef(t notifDomain.Type, refID string) (bool, error) {
	var count int64
	err := r.db.Model(&notifDatamodel.Notification{}).
		Where("type = ? AND ref_id = ?", string(t), refID).
		Count(&count).Error
	return count > 0, err
}
