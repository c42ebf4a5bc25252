package services

import (
	"io"

	"github.com/xuri/excelize/v2"

	"pathways-backend-go/internal/models"
)

const rosterSheet = "Roster"

var rosterHeader = []interface{}{
	"Last name", "First name", "Email", "Student ID", "Year level", "Major", "Profile completion (%)", "Active",
}

func optional(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}

// WriteRosterXLSX renders a class roster as a single-sheet workbook.
func WriteRosterXLSX(w io.Writer, class models.Class, students []models.StudentSummary) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", rosterSheet); err != nil {
		return err
	}
	if err := f.SetCellValue(rosterSheet, "A1", class.Name+" ("+class.Code+")"); err != nil {
		return err
	}
	if err := f.SetSheetRow(rosterSheet, "A3", &rosterHeader); err != nil {
		return err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(rosterSheet, "A1", "A1", bold); err != nil {
		return err
	}
	if err := f.SetCellStyle(rosterSheet, "A3", "H3", bold); err != nil {
		return err
	}

	for i, s := range students {
		cell, err := excelize.CoordinatesToCellName(1, i+4)
		if err != nil {
			return err
		}
		active := "yes"
		if !s.IsActive {
			active = "no"
		}
		row := []interface{}{
			s.LastName, s.FirstName, s.Email, optional(s.StudentIDNum),
			optional(s.YearLevel), optional(s.Major), s.ProfileCompletion, active,
		}
		if err := f.SetSheetRow(rosterSheet, cell, &row); err != nil {
			return err
		}
	}
	if err := f.SetColWidth(rosterSheet, "A", "F", 22); err != nil {
		return err
	}
	if err := f.SetColWidth(rosterSheet, "G", "H", 14); err != nil {
		return err
	}
	return f.Write(w)
}
