package notification

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
)

type Repository interface {
	Append(n *Notification) error
	List(unreadOnly bool, limit int) ([]*Notification, error)
	MarkAllRead() (int64, error)
	// HasForRef reports whether a notification of the given type already
	// points at refID. Used to dedupe overdue alerts per loan.
	HasForRef(t Type, refID string) (bool, error)
}

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// Append writes a new unread notification to the log.
func (s *Service) Append(t Type, message string, refID *string) (*Notification, error) {
	n := &Notification{
		ID:        uuid.New().String(),
		Type:      t,
		Message:   message,
		Timestamp: time.Now(),
		Read:      false,
		RefID:     refID,
	}

	if err := s.repo.Append(n); err != nil {
		s.logger.Error("failed to append notification", "error", err, "type", t)
		return nil, err
	}

	return n, nil
}

// AppendOverdueOnce appends an overdue notification for a loan unless one
// already exists. Returns the notification, or nil when deduped.
func (s *Service) AppendOverdueOnce(message, loanID string) (*Notification, error) {
	exists, err := s.repo.HasForRef(TypeOverdue, loanID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, nil
	}
	return s.Append(TypeOverdue, message, &loanID)
}

func (s *Service) List(unreadOnly bool, limit int) ([]*Notification, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return s.repo.List(unreadOnly, limit)
}

func (s *Service) MarkAllRead() (int64, error) {
	count, err := s.repo.MarkAllRead()
	if err != nil {
		s.logger.Error("failed to mark notifications read", "error", err)
		return 0, err
	}
	s.logger.Info("notifications marked read", "count", count)
	return count, nil
}
