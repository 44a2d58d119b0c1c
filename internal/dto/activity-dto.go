package dto

import "github.com/aarondl/null/v8"

type CreateActivityDTO struct {
	WorkOrderID  uint64    `json:"work_order_id" validate:"required,gt=0"`
	ActivityType string    `json:"activity_type" validate:"required,oneof=Inspection Repair Replacement Cleaning Calibration Testing Other"`
	Description  string    `json:"description,omitempty"`
	StartTime    null.Time `json:"start_time,omitempty"`
	EndTime      null.Time `json:"end_time,omitempty"`
	Cost         string    `json:"cost,omitempty"`
	PartsUsed    string    `json:"parts_used,omitempty"`
	Notes        string    `json:"notes,omitempty"`
}

type UpdateActivityDTO struct {
	ActivityType *string   `json:"activity_type,omitempty" validate:"omitempty,oneof=Inspection Repair Replacement Cleaning Calibration Testing Other"`
	Description  *string   `json:"description,omitempty"`
	StartTime    null.Time `json:"start_time,omitempty"`
	EndTime      null.Time `json:"end_time,omitempty"`
	Cost         *string   `json:"cost,omitempty"`
	PartsUsed    *string   `json:"parts_used,omitempty"`
	Notes        *string   `json:"notes,omitempty"`
}

type ActivityDTO struct {
	ID            uint64  `json:"id"`
	WorkOrderID   uint64  `json:"work_order_id"`
	ActivityType  string  `json:"activity_type"`
	Description   string  `json:"description,omitempty"`
	StartTime     string  `json:"start_time"`
	EndTime       *string `json:"end_time,omitempty"`
	DurationHours *string `json:"duration_hours,omitempty"`
	Cost          string  `json:"cost"`
	PartsUsed     string  `json:"parts_used,omitempty"`
	Notes         string  `json:"notes,omitempty"`
	CreatedAt     string  `json:"created_at"`
}
