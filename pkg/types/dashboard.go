package types

import "time"

// DashboardStats is the aggregate payload for the dashboard page. Breakdown
// maps always contain every enumerated status/type so consumers never branch
// on missing keys.
type DashboardStats struct {
	TotalEquipment    int64 `json:"total_equipment"`
	ScrappedEquipment int64 `json:"scrapped_equipment"`
	TotalRequests     int64 `json:"total_requests"`
	OpenRequests      int64 `json:"open_requests"`
	OverdueRequests   int64 `json:"overdue_requests"`
	CompletedToday    int64 `json:"completed_today"`

	StatusBreakdown map[string]int64 `json:"status_breakdown"`
	TypeBreakdown   map[string]int64 `json:"type_breakdown"`

	TeamStats             []DashboardTeamStat       `json:"team_stats,omitempty"`
	EquipmentByDepartment []DashboardDepartmentStat `json:"equipment_by_department"`

	RecentRequests  []DashboardRecentRequest `json:"recent_requests"`
	RecentCompleted []DashboardRecentRequest `json:"recent_completed"`

	IsManager    bool `json:"is_manager"`
	IsTechnician bool `json:"is_technician"`
}

type DashboardTeamStat struct {
	TeamID             uint64 `json:"team_id" db:"team_id"`
	Name               string `json:"name" db:"name"`
	RequestCount       int64  `json:"request_count" db:"request_count"`
	ActiveRequestCount int64  `json:"active_request_count" db:"active_request_count"`
}

type DashboardDepartmentStat struct {
	Department string `json:"department" db:"department"`
	Count      int64  `json:"count" db:"count"`
}

type DashboardRecentRequest struct {
	ID            uint64     `json:"id" db:"id"`
	Subject       string     `json:"subject" db:"subject"`
	EquipmentName string     `json:"equipment_name" db:"equipment_name"`
	Status        string     `json:"status" db:"status"`
	Priority      string     `json:"priority" db:"priority"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
	CompletedAt   *time.Time `json:"completed_at,omitempty" db:"completed_at"`
}
