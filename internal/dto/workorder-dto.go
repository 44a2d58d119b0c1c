package dto

type CreateWorkOrderDTO struct {
	EquipmentID          uint64  `json:"equipment_id" validate:"required,gt=0"`
	MaintenanceRequestID *uint64 `json:"maintenance_request_id,omitempty" validate:"omitempty,gt=0"`
	Date                 string  `json:"date" validate:"required,datetime=2006-01-02"`
	Time                 string  `json:"time" validate:"omitempty,datetime=15:04"`
	Priority             string  `json:"priority" validate:"omitempty,oneof=Low Medium High Critical"`
	AssignedToID         *uint64 `json:"assigned_to_id,omitempty" validate:"omitempty,gt=0"`
	Description          string  `json:"description,omitempty"`
}

type UpdateWorkOrderDTO struct {
	Date         *string `json:"date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Time         *string `json:"time,omitempty" validate:"omitempty,datetime=15:04"`
	Status       *string `json:"status,omitempty" validate:"omitempty,oneof=Open 'In Progress' Completed Cancelled"`
	Priority     *string `json:"priority,omitempty" validate:"omitempty,oneof=Low Medium High Critical"`
	AssignedToID *uint64 `json:"assigned_to_id,omitempty" validate:"omitempty,gt=0"`
	Description  *string `json:"description,omitempty"`
}

type WorkOrderDTO struct {
	ID                   uint64            `json:"id"`
	WorkOrderNumber      string            `json:"work_order_number"`
	Equipment            ShortEquipmentDTO `json:"equipment"`
	MaintenanceRequestID *uint64           `json:"maintenance_request_id,omitempty"`
	Date                 string            `json:"date"`
	Time                 string            `json:"time,omitempty"`
	Status               string            `json:"status"`
	Priority             string            `json:"priority"`
	AssignedTo           *ShortUserDTO     `json:"assigned_to,omitempty"`
	Description          string            `json:"description,omitempty"`
	TotalCost            string            `json:"total_cost"`
	CreatedAt            string            `json:"created_at"`
	UpdatedAt            *string           `json:"updated_at,omitempty"`
}
