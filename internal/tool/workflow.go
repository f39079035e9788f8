package tool

import (
	"time"

	"github.com/ronaldsalazarvasquez/Inventario-Taller/internal"
	toolDatamodel "github.com/ronaldsalazarvasquez/Inventario-Taller/internal/core/datamodel/tool"
)

// ReplacementStatus is the five-stage procurement progression that follows a
// decommission. It only moves forward, one stage at a time.
type ReplacementStatus string

const (
	ReplacementGenerated  ReplacementStatus = "generated"
	ReplacementSeen       ReplacementStatus = "seen"
	ReplacementInProgress ReplacementStatus = "in_progress"
	ReplacementDelivered  ReplacementStatus = "delivered"
	ReplacementReceived   ReplacementStatus = "received"
)

var replacementOrder = map[ReplacementStatus]int{
	ReplacementGenerated:  0,
	ReplacementSeen:       1,
	ReplacementInProgress: 2,
	ReplacementDelivered:  3,
	ReplacementReceived:   4,
}

func (s ReplacementStatus) Valid() bool {
	_, ok := replacementOrder[s]
	return ok
}

// Next returns the following stage, or false when s is terminal.
func (s ReplacementStatus) Next() (ReplacementStatus, bool) {
	switch s {
	case ReplacementGenerated:
		return ReplacementSeen, true
	case ReplacementSeen:
		return ReplacementInProgress, true
	case ReplacementInProgress:
		return ReplacementDelivered, true
	case ReplacementDelivered:
		return ReplacementReceived, true
	}
	return "", false
}

type DecommissionRecord struct {
	ToolID            string            `json:"tool_id"`
	Date              time.Time         `json:"date"`
	Reason            string            `json:"reason"`
	Description       string            `json:"description"`
	EvidenceImageURL  *string           `json:"evidence_image_url,omitempty"`
	ResponsibleUserID string            `json:"responsible_user_id"`
	ReplacementReason string            `json:"replacement_reason"`
	ReplacementStatus ReplacementStatus `json:"replacement_status"`
}

// AdvanceTo moves the replacement workflow to target. Only the immediate
// next stage is accepted; past the final stage there is nowhere to go.
func (r *DecommissionRecord) AdvanceTo(target ReplacementStatus) error {
	if !target.Valid() {
		return internal.NewValidationError("unknown replacement status", internal.ErrCodeValidationFailed)
	}
	next, ok := r.ReplacementStatus.Next()
	if !ok {
		return internal.ErrReplacementComplete
	}
	if target != next {
		return internal.ErrReplacementOutOfOrder
	}
	r.ReplacementStatus = target
	return nil
}

func DecommissionToDataModel(r *DecommissionRecord) *toolDatamodel.DecommissionRecord {
	return &toolDatamodel.DecommissionRecord{
		ToolID:            r.ToolID,
		Date:              r.Date,
		Reason:            r.Reason,
		Description:       r.Description,
		EvidenceImageURL:  r.EvidenceImageURL,
		ResponsibleUserID: r.ResponsibleUserID,
		ReplacementReason: r.ReplacementReason,
		ReplacementStatus: string(r.ReplacementStatus),
	}
}

func DecommissionFromDataModel(dm *toolDatamodel.DecommissionRecord) *DecommissionRecord {
	return &DecommissionRecord{
		ToolID:            dm.ToolID,
		Date:              dm.Date,
		Reason:            dm.Reason,
		Description:       dm.Description,
		EvidenceImageURL:  dm.EvidenceImageURL,
		ResponsibleUserID: dm.ResponsibleUserID,
		ReplacementReason: dm.ReplacementReason,
		ReplacementStatus: ReplacementStatus(dm.ReplacementStatus),
	}
}
