package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Pass types a student may request.
const (
	PassTypeOut       = "out_pass"
	PassTypeOD        = "od_pass"
	PassTypeEmergency = "emergency"
	PassTypeOther     = "other"
)

// Approval states, used for the advisor stage, the hod stage and the
// aggregate status alike.
const (
	PassPending  = "pending"
	PassApproved = "approved"
	PassRejected = "rejected"
)

var (
	ErrInvalidDecision = errors.New("decision must be approved or rejected")
	ErrAlreadyDecided  = errors.New("pass already decided")
	ErrNotAtHodStage   = errors.New("pass is not awaiting hod decision")
)

var passTypes = map[string]struct{}{
	PassTypeOut: {}, PassTypeOD: {}, PassTypeEmergency: {}, PassTypeOther: {},
}

func IsValidPassType(t string) bool {
	_, ok := passTypes[t]
	return ok
}

// OutPass is a leave/out-pass request with a two-stage approval:
// class advisor first, then department head. AdvisorStatus and
// HodStatus track the stages independently; Status is the aggregate
// the student sees. A principal or admin may set Status directly,
// bypassing both stages.
type OutPass struct {
	ID              string `gorm:"type:uuid;primaryKey" json:"id"`
	RequesterUserID string `gorm:"index" json:"requester_user_id"`
	RequesterName   string `json:"requester_name"`
	RollNo          string `json:"rollno"`
	Department      string `json:"department"`
	PassType        string `json:"pass_type"`
	Reason          string `json:"reason"`
	FromDatetime    string `json:"from_datetime"`
	ToDatetime      string `json:"to_datetime"`
	ODDuration      string `json:"od_duration"`
	ODDays          int    `json:"od_days"`
	OtherHours      string `json:"other_hours"`

	Status        string `gorm:"default:pending" json:"status"`
	AdvisorStatus string `gorm:"default:pending" json:"advisor_status"`
	HodStatus     string `gorm:"default:pending" json:"hod_status"`

	AdvisorUserID  string `json:"advisor_user_id"`
	AdvisorRemarks string `json:"advisor_remarks"`
	HodUserID      string `json:"hod_user_id"`
	HodRemarks     string `json:"hod_remarks"`

	// Set only on a principal/admin override.
	ApproverUserID string `json:"approver_user_id"`
	Remarks        string `json:"remarks"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *OutPass) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

func validDecision(d string) bool {
	return d == PassApproved || d == PassRejected
}

func (p *OutPass) terminal() bool {
	return p.Status == PassApproved || p.Status == PassRejected
}

// ApplyAdvisorDecision records the advisor stage. A rejection is
// terminal; an approval leaves the aggregate pending for the hod.
// newFrom/newTo overwrite the requested time window only when
// non-blank, so an advisor can tweak one side of the window.
func (p *OutPass) ApplyAdvisorDecision(decision, advisorUserID, remarks, newFrom, newTo string) error {
	if !validDecision(decision) {
		return ErrInvalidDecision
	}
	if p.terminal() || p.AdvisorStatus != PassPending {
		return ErrAlreadyDecided
	}
	if newFrom != "" {
		p.FromDatetime = newFrom
	}
	if newTo != "" {
		p.ToDatetime = newTo
	}
	p.AdvisorStatus = decision
	p.AdvisorUserID = advisorUserID
	p.AdvisorRemarks = remarks
	if decision == PassRejected {
		p.Status = PassRejected
	}
	return nil
}

// ApplyHodDecision records the final stage and sets the aggregate.
func (p *OutPass) ApplyHodDecision(decision, hodUserID, remarks string) error {
	if !validDecision(decision) {
		return ErrInvalidDecision
	}
	if p.terminal() {
		return ErrAlreadyDecided
	}
	if p.AdvisorStatus != PassApproved || p.HodStatus != PassPending {
		return ErrNotAtHodStage
	}
	p.HodStatus = decision
	p.HodUserID = hodUserID
	p.HodRemarks = remarks
	p.Status = decision
	return nil
}

// ApplyOverride lets a principal or admin decide the aggregate status
// directly. The stage sub-statuses are left as they were.
func (p *OutPass) ApplyOverride(decision, approverUserID, remarks string) error {
	if !validDecision(decision) {
		return ErrInvalidDecision
	}
	if p.terminal() {
		return ErrAlreadyDecided
	}
	p.Status = decision
	p.ApproverUserID = approverUserID
	p.Remarks = remarks
	return nil
}
