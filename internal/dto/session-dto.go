package dto

type CreateSessionDTO struct {
	WorkOrderID uint64 `json:"work_order_id" validate:"required,gt=0"`
	Date        string `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime   string `json:"start_time" validate:"required,datetime=15:04"`
	EndTime     string `json:"end_time,omitempty" validate:"omitempty,datetime=15:04"`
	CostPerHour string `json:"cost_per_hour,omitempty"`
	Duration    string `json:"duration,omitempty"`
	Notes       string `json:"notes,omitempty"`
}

type UpdateSessionDTO struct {
	Date        *string `json:"date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	StartTime   *string `json:"start_time,omitempty" validate:"omitempty,datetime=15:04"`
	EndTime     *string `json:"end_time,omitempty" validate:"omitempty,datetime=15:04"`
	CostPerHour *string `json:"cost_per_hour,omitempty"`
	Duration    *string `json:"duration,omitempty"`
	Notes       *string `json:"notes,omitempty"`
}

type SessionDTO struct {
	ID          uint64  `json:"id"`
	WorkOrderID uint64  `json:"work_order_id"`
	Date        string  `json:"date"`
	StartTime   string  `json:"start_time"`
	EndTime     *string `json:"end_time,omitempty"`
	CostPerHour string  `json:"cost_per_hour"`
	Duration    *string `json:"duration,omitempty"`
	TotalCost   string  `json:"total_cost"`
	Notes       string  `json:"notes,omitempty"`
	CreatedAt   string  `json:"created_at"`
}
