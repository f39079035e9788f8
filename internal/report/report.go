// Package report derives read-only views from the registry, the loan ledger
// and the decommission workflow. Nothing here is cached; every query
// recomputes from current state.
package report

import (
	"time"

	"github.com/ronaldsalazarvasquez/Inventario-Taller/internal/schedule"
	"github.com/ronaldsalazarvasquez/Inventario-Taller/internal/tool"
)

type OverdueEntry struct {
	LoanID            string        `json:"loan_id"`
	ToolID            string        `json:"tool_id"`
	ToolName          string        `json:"tool_name"`
	UserID            string        `json:"user_id"`
	UserName          string        `json:"user_name"`
	CheckoutDate      time.Time     `json:"checkout_date"`
	EstimatedReturnAt time.Time     `json:"estimated_return_at"`
	OverdueFor        time.Duration `json:"overdue_for"`
}

type CalibrationState string

const (
	CalibrationValid        CalibrationState = "valid"
	CalibrationExpiringSoon CalibrationState = "expiring_soon"
	CalibrationExpired      CalibrationState = "expired"
)

type CalibrationEntry struct {
	ToolID              string           `json:"tool_id"`
	ToolName            string           `json:"tool_name"`
	NextCalibrationDate time.Time        `json:"next_calibration_date"`
	State               CalibrationState `json:"state"`
}

// ShiftReport is a replay of the loan ledger over one shift window. The
// open-at-end set is reconstructed from the records, so a tool returned and
// re-borrowed inside the window is counted correctly.
type ShiftReport struct {
	Date      string             `json:"date"`
	Shift     schedule.Shift     `json:"shift"`
	Start     time.Time          `json:"start"`
	End       time.Time          `json:"end"`
	Checkouts []*tool.LoanRecord `json:"checkouts"`
	Checkins  []*tool.LoanRecord `json:"checkins"`
	OpenAtEnd []*tool.LoanRecord `json:"open_at_end"`
}

type ActivityType string

const (
	ActivityLoanOpened   ActivityType = "loan_opened"
	ActivityLoanClosed   ActivityType = "loan_closed"
	ActivityMaintenance  ActivityType = "maintenance"
	ActivityDecommission ActivityType = "decommission"
)

type ActivityEntry struct {
	Type      ActivityType `json:"type"`
	Timestamp time.Time    `json:"timestamp"`
	ToolID    string       `json:"tool_id"`
	ToolName  string       `json:"tool_name"`
	UserID    string       `json:"user_id,omitempty"`
	Detail    string       `json:"detail,omitempty"`
}

type UserActivity struct {
	UserID    string `json:"user_id"`
	UserName  string `json:"user_name"`
	LoanCount int    `json:"loan_count"`
	OpenLoans int    `json:"open_loans"`
}

type InventorySummary struct {
	ByStatus   map[tool.Status]int   `json:"by_status"`
	ByCategory map[tool.Category]int `json:"by_category"`
	Total      int                   `json:"total"`
}
