package entities

import (
	"fmt"
	"strconv"
	"strings"

	"gearguard/pkg/types"
)

// Work order statuses.
const (
	WorkOrderOpen       = "Open"
	WorkOrderInProgress = "In Progress"
	WorkOrderCompleted  = "Completed"
	WorkOrderCancelled  = "Cancelled"
)

var WorkOrderStatuses = []string{
	WorkOrderOpen,
	WorkOrderInProgress,
	WorkOrderCompleted,
	WorkOrderCancelled,
}

func ValidWorkOrderStatus(s string) bool {
	for _, known := range WorkOrderStatuses {
		if known == s {
			return true
		}
	}
	return false
}

const workOrderNumberPrefix = "WO-"

// WorkOrder is a numbered unit of planned work, optionally linked to the
// maintenance request it originated from.
type WorkOrder struct {
	ID                   uint64  `json:"id" db:"id"`
	WorkOrderNumber      string  `json:"work_order_number" db:"work_order_number"`
	EquipmentID          uint64  `json:"equipment_id" db:"equipment_id"`
	MaintenanceRequestID *uint64 `json:"maintenance_request_id,omitempty" db:"maintenance_request_id"`
	Date                 string  `json:"date" db:"date"`
	Time                 string  `json:"time" db:"time"`
	Status               string  `json:"status" db:"status"`
	Priority             string  `json:"priority" db:"priority"`
	AssignedToID         *uint64 `json:"assigned_to_id,omitempty" db:"assigned_to_id"`
	Description          string  `json:"description,omitempty" db:"description"`

	types.BaseEntity
}

// ParseWorkOrderNumber extracts the numeric suffix of a WO-%04d number.
func ParseWorkOrderNumber(number string) (int, bool) {
	idx := strings.LastIndexByte(number, '-')
	if idx < 0 {
		return 0, false
	}
	n, err := strconv.Atoi(number[idx+1:])
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// NextWorkOrderNumber computes the next sequential number: max existing
// numeric suffix + 1. When no existing number parses cleanly the sequence
// falls back to total row count + 1.
func NextWorkOrderNumber(existing []string, total uint64) string {
	max := -1
	for _, number := range existing {
		if n, ok := ParseWorkOrderNumber(number); ok && n > max {
			max = n
		}
	}
	if max < 0 {
		return fmt.Sprintf("%s%04d", workOrderNumberPrefix, total+1)
	}
	return fmt.Sprintf("%s%04d", workOrderNumberPrefix, max+1)
}
