package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventTypeToolCheckedOut     = "tool.checked_out"
	EventTypeToolCheckedIn      = "tool.checked_in"
	EventTypeToolMaintenance    = "tool.maintenance"
	EventTypeToolBackInService  = "tool.back_in_service"
	EventTypeToolDecommissioned = "tool.decommissioned"
	EventTypeLoanOverdue        = "loan.overdue"
	EventTypeLockoutStarted     = "lockout.started"
	EventTypeLockoutEnded       = "lockout.ended"
)

type ToolCheckedOutEvent struct {
	BaseEvent
	ToolID            string    `json:"tool_id"`
	ToolName          string    `json:"tool_name"`
	UserID            string    `json:"user_id"`
	UserName          string    `json:"user_name"`
	EstimatedReturnAt time.Time `json:"estimated_return_at"`
}

func NewToolCheckedOutEvent(toolID, toolName, userID, userName string, estimatedReturnAt time.Time) *ToolCheckedOutEvent {
	return &ToolCheckedOutEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeToolCheckedOut,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"tool_id":   toolID,
				"tool_name": toolName,
				"user_id":   userID,
			},
		},
		ToolID:            toolID,
		ToolName:          toolName,
		UserID:            userID,
		UserName:          userName,
		EstimatedReturnAt: estimatedReturnAt,
	}
}

type ToolCheckedInEvent struct {
	BaseEvent
	ToolID   string `json:"tool_id"`
	ToolName string `json:"tool_name"`
	UserID   string `json:"user_id"`
	UserName string `json:"user_name"`
}

func NewToolCheckedInEvent(toolID, toolName, userID, userName string) *ToolCheckedInEvent {
	return &ToolCheckedInEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeToolCheckedIn,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"tool_id":   toolID,
				"tool_name": toolName,
				"user_id":   userID,
			},
		},
		ToolID:   toolID,
		ToolName: toolName,
		UserID:   userID,
		UserName: userName,
	}
}

type ToolMaintenanceEvent struct {
	BaseEvent
	ToolID        string `json:"tool_id"`
	ToolName      string `json:"tool_name"`
	Company       string `json:"company"`
	Maintenance   string `json:"maintenance_type"`
	BackInService bool   `json:"back_in_service"`
}

func NewToolMaintenanceEvent(toolID, toolName, company, maintenanceType string) *ToolMaintenanceEvent {
	return &ToolMaintenanceEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeToolMaintenance,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"tool_id": toolID,
				"company": company,
			},
		},
		ToolID:      toolID,
		ToolName:    toolName,
		Company:     company,
		Maintenance: maintenanceType,
	}
}

func NewToolBackInServiceEvent(toolID, toolName string) *ToolMaintenanceEvent {
	return &ToolMaintenanceEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeToolBackInService,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"tool_id": toolID,
			},
		},
		ToolID:        toolID,
		ToolName:      toolName,
		BackInService: true,
	}
}

type ToolDecommissionedEvent struct {
	BaseEvent
	ToolID        string `json:"tool_id"`
	ToolName      string `json:"tool_name"`
	Reason        string `json:"reason"`
	ResponsibleID string `json:"responsible_user_id"`
}

func NewToolDecommissionedEvent(toolID, toolName, reason, responsibleID string) *ToolDecommissionedEvent {
	return &ToolDecommissionedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeToolDecommissioned,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"tool_id":             toolID,
				"reason":              reason,
				"responsible_user_id": responsibleID,
			},
		},
		ToolID:        toolID,
		ToolName:      toolName,
		Reason:        reason,
		ResponsibleID: responsibleID,
	}
}

type LoanOverdueEvent struct {
	BaseEvent
	LoanID            string    `json:"loan_id"`
	ToolID            string    `json:"tool_id"`
	ToolName          string    `json:"tool_name"`
	UserID            string    `json:"user_id"`
	UserName          string    `json:"user_name"`
	EstimatedReturnAt time.Time `json:"estimated_return_at"`
}

func NewLoanOverdueEvent(loanID, toolID, toolName, userID, userName string, estimatedReturnAt time.Time) *LoanOverdueEvent {
	return &LoanOverdueEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeLoanOverdue,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"loan_id": loanID,
				"tool_id": toolID,
				"user_id": userID,
			},
		},
		LoanID:            loanID,
		ToolID:            toolID,
		ToolName:          toolName,
		UserID:            userID,
		UserName:          userName,
		EstimatedReturnAt: estimatedReturnAt,
	}
}

type LockoutEvent struct {
	BaseEvent
	DeviceID     string `json:"device_id"`
	DeviceName   string `json:"device_name"`
	UserID       string `json:"user_id"`
	LockLocation string `json:"lock_location"`
}

func NewLockoutStartedEvent(deviceID, deviceName, userID, lockLocation string) *LockoutEvent {
	return &LockoutEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeLockoutStarted,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"device_id":     deviceID,
				"user_id":       userID,
				"lock_location": lockLocation,
			},
		},
		DeviceID:     deviceID,
		DeviceName:   deviceName,
		UserID:       userID,
		LockLocation: lockLocation,
	}
}

func NewLockoutEndedEvent(deviceID, deviceName, userID string) *LockoutEvent {
	return &LockoutEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeLockoutEnded,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"device_id": deviceID,
				"user_id":   userID,
			},
		},
		DeviceID:   deviceID,
		DeviceName: deviceName,
		UserID:     userID,
	}
}
