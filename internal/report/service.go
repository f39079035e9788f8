package report

import (
	"log/slog"
	"sort"
	"time"

	"github.com/ronaldsalazarvasquez/Inventario-Taller/internal/schedule"
	"github.com/ronaldsalazarvasquez/Inventario-Taller/internal/tool"
)

// LedgerReader is the read-only slice of the tool repository the aggregator
// consumes.
type LedgerReader interface {
	ListTools(f tool.Filter) ([]*tool.Tool, error)
	ListLoans(f tool.LoanFilter) ([]*tool.LoanRecord, error)
	AllMaintenance() ([]*tool.MaintenanceRecord, error)
	ListDecommissions() ([]*tool.DecommissionRecord, error)
}

// SettingsProvider supplies the calibration warning horizon.
type SettingsProvider interface {
	CalibrationWarningDays() int
}

type Service struct {
	ledger   LedgerReader
	users    tool.UserDirectory
	settings SettingsProvider
	logger   *slog.Logger
}

func NewService(ledger LedgerReader, users tool.UserDirectory, settings SettingsProvider, logger *slog.Logger) *Service {
	return &Service{
		ledger:   ledger,
		users:    users,
		settings: settings,
		logger:   logger,
	}
}

// Overdue lists open loans whose estimated return has passed at the given
// instant. The boundary is strict: a loan due exactly at now is not overdue.
func (s *Service) Overdue(now time.Time) ([]*OverdueEntry, error) {
	open, err := s.ledger.ListLoans(tool.LoanFilter{OnlyOpen: true})
	if err != nil {
		return nil, err
	}

	tools, err := s.toolIndex()
	if err != nil {
		return nil, err
	}

	var entries []*OverdueEntry
	for _, loan := range open {
		t, ok := tools[loan.ToolID]
		if !ok || t.Custody == nil {
			continue
		}
		if !t.Custody.EstimatedReturnAt.Before(now) {
			continue
		}

		userName, _ := s.users.Lookup(loan.UserID)
		entries = append(entries, &OverdueEntry{
			LoanID:            loan.ID,
			ToolID:            loan.ToolID,
			ToolName:          t.Name,
			UserID:            loan.UserID,
			UserName:          userName,
			CheckoutDate:      loan.CheckoutDate,
			EstimatedReturnAt: t.Custody.EstimatedReturnAt,
			OverdueFor:        now.Sub(t.Custody.EstimatedReturnAt),
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].OverdueFor > entries[j].OverdueFor
	})
	return entries, nil
}

// CalibrationStatus classifies every tracked measuring instrument against
// the warning horizon. Decommissioned instruments are left out.
func (s *Service) CalibrationStatus(now time.Time) ([]*CalibrationEntry, error) {
	tools, err := s.ledger.ListTools(tool.Filter{})
	if err != nil {
		return nil, err
	}

	horizon := now.AddDate(0, 0, s.settings.CalibrationWarningDays())

	var entries []*CalibrationEntry
	for _, t := range tools {
		if t.Status == tool.StatusDecommissioned || !t.Calibration.Tracked() {
			continue
		}

		next := *t.Calibration.NextDate
		state := CalibrationValid
		switch {
		case next.Before(now):
			state = CalibrationExpired
		case next.Before(horizon):
			state = CalibrationExpiringSoon
		}

		entries = append(entries, &CalibrationEntry{
			ToolID:              t.ID,
			ToolName:            t.Name,
			NextCalibrationDate: next,
			State:               state,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].NextCalibrationDate.Before(entries[j].NextCalibrationDate)
	})
	return entries, nil
}

// Shift replays the loan ledger over one shift window of the given day.
// A loan is open at window end when it was checked out by then and either
// never checked in or checked in after the window closed.
func (s *Service) Shift(day time.Time, shift schedule.Shift) (*ShiftReport, error) {
	start, end := schedule.Window(day, shift)

	loans, err := s.ledger.ListLoans(tool.LoanFilter{})
	if err != nil {
		return nil, err
	}

	rep := &ShiftReport{
		Date:      start.Format("2006-01-02"),
		Shift:     shift,
		Start:     start,
		End:       end,
		Checkouts: []*tool.LoanRecord{},
		Checkins:  []*tool.LoanRecord{},
		OpenAtEnd: []*tool.LoanRecord{},
	}

	for _, loan := range loans {
		if inWindow(loan.CheckoutDate, start, end) {
			rep.Checkouts = append(rep.Checkouts, loan)
		}
		if loan.CheckinDate != nil && inWindow(*loan.CheckinDate, start, end) {
			rep.Checkins = append(rep.Checkins, loan)
		}
		if loan.CheckoutDate.Before(end) &&
			(loan.CheckinDate == nil || loan.CheckinDate.After(end) || loan.CheckinDate.Equal(end)) {
			rep.OpenAtEnd = append(rep.OpenAtEnd, loan)
		}
	}

	sortLoans(rep.Checkouts)
	sortLoans(rep.Checkins)
	sortLoans(rep.OpenAtEnd)
	return rep, nil
}

// Activity is the union of loan, maintenance and decommission events sorted
// newest first.
func (s *Service) Activity(typeFilter ActivityType, limit int) ([]*ActivityEntry, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}

	tools, err := s.toolIndex()
	if err != nil {
		return nil, err
	}

	toolName := func(id string) string {
		if t, ok := tools[id]; ok {
			return t.Name
		}
		return id
	}

	var entries []*ActivityEntry

	loans, err := s.ledger.ListLoans(tool.LoanFilter{})
	if err != nil {
		return nil, err
	}
	for _, loan := range loans {
		entries = append(entries, &ActivityEntry{
			Type:      ActivityLoanOpened,
			Timestamp: loan.CheckoutDate,
			ToolID:    loan.ToolID,
			ToolName:  toolName(loan.ToolID),
			UserID:    loan.UserID,
		})
		if loan.CheckinDate != nil {
			entries = append(entries, &ActivityEntry{
				Type:      ActivityLoanClosed,
				Timestamp: *loan.CheckinDate,
				ToolID:    loan.ToolID,
				ToolName:  toolName(loan.ToolID),
				UserID:    loan.UserID,
			})
		}
	}

	maintenance, err := s.ledger.AllMaintenance()
	if err != nil {
		return nil, err
	}
	for _, rec := range maintenance {
		entries = append(entries, &ActivityEntry{
			Type:      ActivityMaintenance,
			Timestamp: rec.Date,
			ToolID:    rec.ToolID,
			ToolName:  toolName(rec.ToolID),
			Detail:    rec.Company,
		})
	}

	decommissions, err := s.ledger.ListDecommissions()
	if err != nil {
		return nil, err
	}
	for _, rec := range decommissions {
		entries = append(entries, &ActivityEntry{
			Type:      ActivityDecommission,
			Timestamp: rec.Date,
			ToolID:    rec.ToolID,
			ToolName:  toolName(rec.ToolID),
			UserID:    rec.ResponsibleUserID,
			Detail:    rec.Reason,
		})
	}

	if typeFilter != "" {
		filtered := entries[:0]
		for _, e := range entries {
			if e.Type == typeFilter {
				filtered = append(filtered, e)
			}
		}
		entries = filtered
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Timestamp.After(entries[j].Timestamp)
	})

	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

// UserActivity ranks users by how many loans they have opened.
func (s *Service) UserActivity() ([]*UserActivity, error) {
	loans, err := s.ledger.ListLoans(tool.LoanFilter{})
	if err != nil {
		return nil, err
	}

	byUser := make(map[string]*UserActivity)
	for _, loan := range loans {
		entry, ok := byUser[loan.UserID]
		if !ok {
			name, _ := s.users.Lookup(loan.UserID)
			entry = &UserActivity{UserID: loan.UserID, UserName: name}
			byUser[loan.UserID] = entry
		}
		entry.LoanCount++
		if loan.Open() {
			entry.OpenLoans++
		}
	}

	ranking := make([]*UserActivity, 0, len(byUser))
	for _, entry := range byUser {
		ranking = append(ranking, entry)
	}
	sort.Slice(ranking, func(i, j int) bool {
		if ranking[i].LoanCount != ranking[j].LoanCount {
			return ranking[i].LoanCount > ranking[j].LoanCount
		}
		return ranking[i].UserID < ranking[j].UserID
	})
	return ranking, nil
}

// Summary counts the registry by status and category.
func (s *Service) Summary() (*InventorySummary, error) {
	tools, err := s.ledger.ListTools(tool.Filter{})
	if err != nil {
		return nil, err
	}

	summary := &InventorySummary{
		ByStatus:   make(map[tool.Status]int),
		ByCategory: make(map[tool.Category]int),
		Total:      len(tools),
	}
	for _, t := range tools {
		summary.ByStatus[t.Status]++
		summary.ByCategory[t.Category]++
	}
	return summary, nil
}

func (s *Service) toolIndex() (map[string]*tool.Tool, error) {
	tools, err := s.ledger.ListTools(tool.Filter{})
	if err != nil {
		return nil, err
	}
	index := make(map[string]*tool.Tool, len(tools))
	for _, t := range tools {
		index[t.ID] = t
	}
	return index, nil
}

func inWindow(t, start, end time.Time) bool {
	return !t.Before(start) && t.Before(end)
}

func sortLoans(loans []*tool.LoanRecord) {
	sort.Slice(loans, func(i, j int) bool {
		return loans[i].CheckoutDate.Before(loans[j].CheckoutDate)
	})
}
