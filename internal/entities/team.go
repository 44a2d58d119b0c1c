package entities

import "gearguard/pkg/types"

// MaintenanceTeam is a named group of technicians. Membership is
// many-to-many; a technician can serve on several teams.
type MaintenanceTeam struct {
	ID      uint64 `json:"id" db:"id"`
	Name    string `json:"name" db:"name"`
	Company string `json:"company" db:"company"`

	types.BaseEntity
}
