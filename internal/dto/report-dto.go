package dto

import "github.com/aarondl/null/v8"

type ReportFilterDTO struct {
	DateFrom null.Time `query:"date_from"`
	DateTo   null.Time `query:"date_to"`
	Status   string    `query:"status" validate:"omitempty,oneof=New 'In Progress' Repaired Rejected Scrap"`
	TeamID   *uint64   `query:"team_id" validate:"omitempty,gt=0"`
}
