package entities

import (
	"time"

	"gearguard/pkg/types"
)

// Request statuses.
const (
	StatusNew        = "New"
	StatusInProgress = "In Progress"
	StatusRepaired   = "Repaired"
	StatusRejected   = "Rejected"
	StatusScrap      = "Scrap"
)

// Statuses lists all request statuses in kanban column order.
var Statuses = []string{
	StatusNew,
	StatusInProgress,
	StatusRepaired,
	StatusRejected,
	StatusScrap,
}

// Request types.
const (
	TypeCorrective = "Corrective"
	TypePreventive = "Preventive"
)

var RequestTypes = []string{TypeCorrective, TypePreventive}

// Priorities.
const (
	PriorityLow      = "Low"
	PriorityMedium   = "Medium"
	PriorityHigh     = "High"
	PriorityCritical = "Critical"
)

var Priorities = []string{PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical}

func ValidStatus(s string) bool {
	for _, known := range Statuses {
		if known == s {
			return true
		}
	}
	return false
}

func ValidRequestType(t string) bool {
	return t == TypeCorrective || t == TypePreventive
}

func ValidPriority(p string) bool {
	for _, known := range Priorities {
		if known == p {
			return true
		}
	}
	return false
}

// AllowedTransitions is the explicit transition table. The workflow is
// deliberately permissive: any status may follow any other, including
// re-opening a Repaired request. Tightening the workflow later (for example
// disallowing New -> Repaired) is an edit here, not a scattered rewrite.
var AllowedTransitions = map[string][]string{
	StatusNew:        {StatusNew, StatusInProgress, StatusRepaired, StatusRejected, StatusScrap},
	StatusInProgress: {StatusNew, StatusInProgress, StatusRepaired, StatusRejected, StatusScrap},
	StatusRepaired:   {StatusNew, StatusInProgress, StatusRepaired, StatusRejected, StatusScrap},
	StatusRejected:   {StatusNew, StatusInProgress, StatusRepaired, StatusRejected, StatusScrap},
	StatusScrap:      {StatusNew, StatusInProgress, StatusRepaired, StatusRejected, StatusScrap},
}

// CanTransition consults the transition table.
func CanTransition(from, to string) bool {
	for _, allowed := range AllowedTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// MaintenanceRequest is the central entity: a corrective or preventive
// maintenance job filed against a piece of equipment.
type MaintenanceRequest struct {
	ID                uint64     `json:"id" db:"id"`
	Subject           string     `json:"subject" db:"subject"`
	Description       string     `json:"description,omitempty" db:"description"`
	EquipmentID       uint64     `json:"equipment_id" db:"equipment_id"`
	MaintenanceTeamID *uint64    `json:"maintenance_team_id,omitempty" db:"maintenance_team_id"`
	RequestType       string     `json:"request_type" db:"request_type"`
	Status            string     `json:"status" db:"status"`
	Priority          string     `json:"priority" db:"priority"`
	AssignedToID      *uint64    `json:"assigned_to_id,omitempty" db:"assigned_to_id"`
	ScheduledDate     *time.Time `json:"scheduled_date,omitempty" db:"scheduled_date"`
	DueDate           *time.Time `json:"due_date,omitempty" db:"due_date"`
	DurationCentiHrs  *int64     `json:"-" db:"duration_centihours"`
	CompletedAt       *time.Time `json:"completed_at,omitempty" db:"completed_at"`
	CreatedByID       *uint64    `json:"created_by_id,omitempty" db:"created_by_id"`

	types.BaseEntity
}

// IsOverdue is the single source of truth for the overdue predicate, used
// identically by the dashboard counts, the calendar coloring and list
// badges: a Preventive request whose scheduled date has passed without the
// request reaching Repaired.
func (r *MaintenanceRequest) IsOverdue(now time.Time) bool {
	if r.RequestType != TypePreventive || r.ScheduledDate == nil {
		return false
	}
	if r.Status == StatusRepaired {
		return false
	}
	return r.ScheduledDate.Before(now)
}

// Calendar event colors, keyed off status and the overdue predicate.
const (
	colorOverdue    = "#dc3545"
	colorRepaired   = "#198754"
	colorInProgress = "#ffc107"
	colorDefault    = "#0dcaf0"
)

// StatusColor returns the calendar color class for the request.
func (r *MaintenanceRequest) StatusColor(now time.Time) string {
	switch {
	case r.IsOverdue(now):
		return colorOverdue
	case r.Status == StatusRepaired:
		return colorRepaired
	case r.Status == StatusInProgress:
		return colorInProgress
	default:
		return colorDefault
	}
}
