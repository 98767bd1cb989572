package service

import (
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/spec-kit/shift-planner/internal/domain"
	apperrors "github.com/spec-kit/shift-planner/pkg/util/errorutil"
)

// ExportService renders the stored week schedule as an xlsx workbook.
type ExportService struct {
	planner *PlannerService
}

// NewExportService constructs the service.
func NewExportService(planner *PlannerService) *ExportService {
	return &ExportService{planner: planner}
}

// ExportWeek produces an xlsx file for the week containing ref. Rows are
// grouped by department and shift in catalog order; one column per date.
func (s *ExportService) ExportWeek(ctx context.Context, ref time.Time) ([]byte, string, error) {
	view, err := s.planner.WeekViewFor(ctx, ref)
	if err != nil {
		return nil, "", err
	}

	file := excelize.NewFile()
	defer func() { _ = file.Close() }()

	const sheet = "Schedule"
	file.SetSheetName(file.GetSheetName(0), sheet)

	headers := []interface{}{"Department", "Shift", "Slot"}
	for _, date := range view.Week {
		headers = append(headers, fmt.Sprintf("%s (%s)", date, date.Weekday().String()[:3]))
	}
	if err := file.SetSheetRow(sheet, "A1", &headers); err != nil {
		return nil, "", apperrors.NewInternalError(err)
	}

	rowNum := 2
	for _, dept := range view.Departments {
		for _, shift := range view.Shifts[dept.ID] {
			for index := 0; index < shift.Headcount(); index++ {
				row := []interface{}{
					dept.Name,
					fmt.Sprintf("%s %s", shift.Name, shift.Window()),
					index + 1,
				}
				for _, date := range view.Week {
					slot := domain.Slot{
						Date:         date,
						ShiftID:      shift.ID,
						DepartmentID: dept.ID,
						Index:        index,
					}
					cell := ""
					if staffID, ok := view.Ledger.StaffFor(slot); ok {
						if member, found := view.StaffByID[staffID]; found {
							cell = member.Name
						} else {
							cell = staffID
						}
					}
					row = append(row, cell)
				}
				if err := file.SetSheetRow(sheet, fmt.Sprintf("A%d", rowNum), &row); err != nil {
					return nil, "", apperrors.NewInternalError(err)
				}
				rowNum++
			}
		}
	}

	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, "", apperrors.NewInternalError(err)
	}
	filename := fmt.Sprintf("schedule-%s.xlsx", view.Week[0])
	return buf.Bytes(), filename, nil
}
