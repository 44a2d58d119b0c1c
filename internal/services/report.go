package services

import (
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"gearguard/internal/dto"
	"gearguard/internal/repositories"
	"gearguard/pkg/types"
	"gearguard/pkg/utils"
)

type ReportServiceInterface interface {
	ExportRequestsXLSX(ctx context.Context, filter dto.ReportFilterDTO) (*excelize.File, string, error)
}

type ReportService struct {
	requestRepo repositories.RequestRepositoryInterface
	logger      *zap.Logger
}

func NewReportService(requestRepo repositories.RequestRepositoryInterface, logger *zap.Logger) ReportServiceInterface {
	return &ReportService{requestRepo: requestRepo, logger: logger}
}

var reportHeaders = []string{
	"ID", "Subject", "Equipment", "Type", "Status", "Priority",
	"Team", "Assigned To", "Created By", "Scheduled", "Due", "Completed",
	"Overdue", "Created",
}

// ExportRequestsXLSX renders the visible requests into a spreadsheet. The
// export respects the same visibility scope as the list endpoints.
func (s *ReportService) ExportRequestsXLSX(ctx context.Context, filter dto.ReportFilterDTO) (*excelize.File, string, error) {
	actor, err := utils.ActorFromCtx(ctx)
	if err != nil {
		return nil, "", err
	}

	listFilter := types.Filter{WithPagination: false, Filter: map[string]interface{}{}}
	if filter.Status != "" {
		listFilter.Filter["status"] = filter.Status
	}
	if filter.TeamID != nil {
		listFilter.Filter["maintenance_team_id"] = *filter.TeamID
	}

	items, _, err := s.requestRepo.GetRequests(ctx, repositories.ScopeForActor(actor), listFilter)
	if err != nil {
		return nil, "", err
	}

	now := time.Now()
	f := excelize.NewFile()
	sheet := "Requests"
	f.SetSheetName("Sheet1", sheet)

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, "", err
	}
	for col, header := range reportHeaders {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(sheet, cell, header)
		f.SetCellStyle(sheet, cell, cell, headerStyle)
	}

	rowNum := 2
	for _, item := range items {
		// Date-window filtering happens here rather than in SQL so the
		// window applies to the creation timestamp consistently with the
		// dashboard's counters.
		if filter.DateFrom.Valid && item.CreatedAt.Before(filter.DateFrom.Time) {
			continue
		}
		if filter.DateTo.Valid && item.CreatedAt.After(filter.DateTo.Time) {
			continue
		}

		values := []interface{}{
			item.ID, item.Subject, item.EquipmentName, item.RequestType,
			item.Status, item.Priority,
			deref(item.TeamName), deref(item.AssigneeName), deref(item.CreatorName),
			formatDatePtr(item.ScheduledDate, dateFormat),
			formatDatePtr(item.DueDate, dateFormat),
			formatDatePtr(item.CompletedAt, dateTimeFormat),
			item.IsOverdue(now),
			item.CreatedAt.Format(dateTimeFormat),
		}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, rowNum)
			f.SetCellValue(sheet, cell, value)
		}
		rowNum++
	}

	filename := fmt.Sprintf("maintenance-requests-%s.xlsx", now.Format("2006-01-02"))
	return f, filename, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func formatDatePtr(t *time.Time, layout string) string {
	if t == nil {
		return ""
	}
	return t.Format(layout)
}
