package dto

import "github.com/aarondl/null/v8"

type CreateEquipmentDTO struct {
	Name               string    `json:"name" validate:"required,min=2,max=200"`
	SerialNumber       *string   `json:"serial_number,omitempty" validate:"omitempty,max=100"`
	Department         string    `json:"department" validate:"required,max=100"`
	Location           string    `json:"location" validate:"required,max=200"`
	CategoryID         *uint64   `json:"category_id,omitempty" validate:"omitempty,gt=0"`
	Company            string    `json:"company" validate:"omitempty,max=200"`
	UsedFor            string    `json:"used_for,omitempty" validate:"omitempty,max=200"`
	AcquisitionDate    null.Time `json:"acquisition_date,omitempty"`
	Condition          string    `json:"condition" validate:"omitempty,oneof=Excellent Good Fair Poor Critical"`
	Description        string    `json:"description,omitempty"`
	MaintenanceTeamID  *uint64   `json:"maintenance_team_id,omitempty" validate:"omitempty,gt=0"`
	AssignedEmployeeID *uint64   `json:"assigned_employee_id,omitempty" validate:"omitempty,gt=0"`
}

type UpdateEquipmentDTO struct {
	Name               *string   `json:"name,omitempty" validate:"omitempty,min=2,max=200"`
	SerialNumber       *string   `json:"serial_number,omitempty" validate:"omitempty,max=100"`
	Department         *string   `json:"department,omitempty" validate:"omitempty,max=100"`
	Location           *string   `json:"location,omitempty" validate:"omitempty,max=200"`
	CategoryID         *uint64   `json:"category_id,omitempty" validate:"omitempty,gt=0"`
	Company            *string   `json:"company,omitempty" validate:"omitempty,max=200"`
	UsedFor            *string   `json:"used_for,omitempty" validate:"omitempty,max=200"`
	AcquisitionDate    null.Time `json:"acquisition_date,omitempty"`
	Condition          *string   `json:"condition,omitempty" validate:"omitempty,oneof=Excellent Good Fair Poor Critical"`
	Description        *string   `json:"description,omitempty"`
	MaintenanceTeamID  *uint64   `json:"maintenance_team_id,omitempty" validate:"omitempty,gt=0"`
	AssignedEmployeeID *uint64   `json:"assigned_employee_id,omitempty" validate:"omitempty,gt=0"`
}

type EquipmentDTO struct {
	ID                 uint64            `json:"id"`
	Name               string            `json:"name"`
	SerialNumber       *string           `json:"serial_number,omitempty"`
	Department         string            `json:"department"`
	Location           string            `json:"location"`
	Category           *ShortCategoryDTO `json:"category,omitempty"`
	Company            string            `json:"company"`
	UsedFor            string            `json:"used_for,omitempty"`
	AcquisitionDate    *string           `json:"acquisition_date,omitempty"`
	Condition          string            `json:"condition"`
	Description        string            `json:"description,omitempty"`
	MaintenanceTeam    *ShortTeamDTO     `json:"maintenance_team,omitempty"`
	AssignedEmployee   *ShortUserDTO     `json:"assigned_employee,omitempty"`
	IsScrapped         bool              `json:"is_scrapped"`
	ActiveRequestCount int64             `json:"active_request_count"`
	CreatedAt          string            `json:"created_at"`
}

type CreateEquipmentCategoryDTO struct {
	Name string `json:"name" validate:"required,min=2,max=100"`
}
