package entities

import (
	"time"

	"gearguard/pkg/types"
)

// Equipment conditions.
const (
	ConditionExcellent = "Excellent"
	ConditionGood      = "Good"
	ConditionFair      = "Fair"
	ConditionPoor      = "Poor"
	ConditionCritical  = "Critical"
)

var Conditions = []string{
	ConditionExcellent,
	ConditionGood,
	ConditionFair,
	ConditionPoor,
	ConditionCritical,
}

func ValidCondition(c string) bool {
	for _, known := range Conditions {
		if known == c {
			return true
		}
	}
	return false
}

type EquipmentCategory struct {
	ID   uint64 `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

// Equipment is a physical asset under maintenance. IsScrapped is one-way:
// it flips to true only when a request reaches the Scrap status, and no
// un-scrap operation exists.
type Equipment struct {
	ID                 uint64     `json:"id" db:"id"`
	Name               string     `json:"name" db:"name"`
	SerialNumber       *string    `json:"serial_number,omitempty" db:"serial_number"`
	Department         string     `json:"department" db:"department"`
	Location           string     `json:"location" db:"location"`
	CategoryID         *uint64    `json:"category_id,omitempty" db:"category_id"`
	Company            string     `json:"company" db:"company"`
	UsedFor            string     `json:"used_for,omitempty" db:"used_for"`
	AcquisitionDate    *time.Time `json:"acquisition_date,omitempty" db:"acquisition_date"`
	Condition          string     `json:"condition" db:"condition"`
	Description        string     `json:"description,omitempty" db:"description"`
	MaintenanceTeamID  *uint64    `json:"maintenance_team_id,omitempty" db:"maintenance_team_id"`
	AssignedEmployeeID *uint64    `json:"assigned_employee_id,omitempty" db:"assigned_employee_id"`
	IsScrapped         bool       `json:"is_scrapped" db:"is_scrapped"`

	types.BaseEntity
}
