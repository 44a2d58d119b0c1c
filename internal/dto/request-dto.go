package dto

import "github.com/aarondl/null/v8"

type CreateMaintenanceRequestDTO struct {
	Subject           string    `json:"subject" validate:"required,min=3,max=200"`
	Description       string    `json:"description,omitempty"`
	EquipmentID       uint64    `json:"equipment_id" validate:"required,gt=0"`
	RequestType       string    `json:"request_type" validate:"omitempty,oneof=Corrective Preventive"`
	Priority          string    `json:"priority" validate:"omitempty,oneof=Low Medium High Critical"`
	MaintenanceTeamID *uint64   `json:"maintenance_team_id,omitempty" validate:"omitempty,gt=0"`
	AssignedToID      *uint64   `json:"assigned_to_id,omitempty" validate:"omitempty,gt=0"`
	ScheduledDate     null.Time `json:"scheduled_date,omitempty"`
	DueDate           null.Time `json:"due_date,omitempty"`
}

type UpdateMaintenanceRequestDTO struct {
	Subject           *string   `json:"subject,omitempty" validate:"omitempty,min=3,max=200"`
	Description       *string   `json:"description,omitempty"`
	Priority          *string   `json:"priority,omitempty" validate:"omitempty,oneof=Low Medium High Critical"`
	MaintenanceTeamID *uint64   `json:"maintenance_team_id,omitempty" validate:"omitempty,gt=0"`
	AssignedToID      *uint64   `json:"assigned_to_id,omitempty" validate:"omitempty,gt=0"`
	ScheduledDate     null.Time `json:"scheduled_date,omitempty"`
	DueDate           null.Time `json:"due_date,omitempty"`
	DurationHours     *string   `json:"duration_hours,omitempty"`
}

type TransitionStatusDTO struct {
	Status string `json:"status" validate:"required,oneof=New 'In Progress' Repaired Rejected Scrap"`
}

type AssignTechnicianDTO struct {
	UserID uint64 `json:"user_id" validate:"required,gt=0"`
}

type MaintenanceRequestDTO struct {
	ID              uint64             `json:"id"`
	Subject         string             `json:"subject"`
	Description     string             `json:"description,omitempty"`
	Equipment       ShortEquipmentDTO  `json:"equipment"`
	RequestType     string             `json:"request_type"`
	Status          string             `json:"status"`
	Priority        string             `json:"priority"`
	MaintenanceTeam *ShortTeamDTO      `json:"maintenance_team,omitempty"`
	AssignedTo      *ShortUserDTO      `json:"assigned_to,omitempty"`
	CreatedBy       *ShortUserDTO      `json:"created_by,omitempty"`
	ScheduledDate   *string            `json:"scheduled_date,omitempty"`
	DueDate         *string            `json:"due_date,omitempty"`
	CompletedAt     *string            `json:"completed_at,omitempty"`
	DurationHours   *string            `json:"duration_hours,omitempty"`
	IsOverdue       bool               `json:"is_overdue"`
	CreatedAt       string             `json:"created_at"`
	UpdatedAt       *string            `json:"updated_at,omitempty"`
}

// KanbanBoardDTO always carries every status column, empty ones included.
type KanbanBoardDTO struct {
	Columns map[string][]MaintenanceRequestDTO `json:"columns"`
	Order   []string                           `json:"order"`
}

type CalendarEventExtendedProps struct {
	Equipment  string `json:"equipment"`
	Team       string `json:"team"`
	Status     string `json:"status"`
	AssignedTo string `json:"assigned_to"`
	Overdue    bool   `json:"overdue"`
}

type CalendarEventDTO struct {
	ID            uint64                     `json:"id"`
	Title         string                     `json:"title"`
	Start         string                     `json:"start"`
	End           string                     `json:"end,omitempty"`
	URL           string                     `json:"url"`
	Color         string                     `json:"color"`
	ExtendedProps CalendarEventExtendedProps `json:"extendedProps"`
}
