// Package report renders the fixed-layout PDF activity report.
package report

import (
	"fmt"
	"io"
	"time"

	"github.com/jung-kurt/gofpdf"

	"usermetrics/internal/model"
)

// Data is everything the renderer needs; it carries no database access.
type Data struct {
	User        model.Profile
	GeneratedAt time.Time
	WindowStart time.Time
	Summary     []model.ActivityTypeSummary
	Recent      []model.UserActivity
}

// Layout colors, carried over from the dashboard styling.
var (
	headingBlue = [3]int{30, 64, 175}   // #1e40af
	mutedGray   = [3]int{107, 114, 128} // #6b7280
	headerFill  = [3]int{243, 244, 246} // #f3f4f6
	rowFill     = [3]int{249, 250, 251} // #f9fafb
)

const (
	timestampFormat = "Jan 2, 2006 3:04:05 PM"
	dateFormat      = "01/02/2006"
)

// Render writes the report as PDF to w. Bytes are streamed out as the
// document is finalized.
func Render(w io.Writer, d *Data) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Activity Report - %s", d.User.Name), true)
	pdf.SetAuthor("User Management System", true)
	pdf.AddPage()

	// Title
	pdf.SetFont("Helvetica", "B", 24)
	pdf.SetTextColor(headingBlue[0], headingBlue[1], headingBlue[2])
	pdf.CellFormat(0, 12, "User Activity Report", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	// Generation timestamp and report window
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(mutedGray[0], mutedGray[1], mutedGray[2])
	pdf.CellFormat(0, 5, "Generated on: "+d.GeneratedAt.Format(timestampFormat), "", 1, "R", false, 0, "")
	pdf.CellFormat(0, 5, fmt.Sprintf("Report Duration: %s - %s",
		d.WindowStart.Format(dateFormat), d.GeneratedAt.Format(dateFormat)), "", 1, "R", false, 0, "")
	pdf.Ln(6)

	// User info block
	sectionHeader(pdf, "User Information")
	pdf.SetFont("Helvetica", "", 12)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(0, 6, "Name: "+d.User.Name, "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, "Email: "+d.User.Email, "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, "Role: "+string(d.User.Role), "", 1, "L", false, 0, "")
	pdf.Ln(6)

	// Activity summary, one block per type
	sectionHeader(pdf, "Activity Summary")
	for _, s := range d.Summary {
		pdf.SetFont("Helvetica", "", 12)
		pdf.SetTextColor(0, 0, 0)
		pdf.CellFormat(0, 6, fmt.Sprintf("%s: %d times", s.ActivityType, s.ActivityCount), "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.SetTextColor(mutedGray[0], mutedGray[1], mutedGray[2])
		pdf.CellFormat(0, 5, "Last activity: "+s.LastUpdated.Format(timestampFormat), "", 1, "L", false, 0, "")
		pdf.Ln(2)
	}
	pdf.Ln(6)

	// Recent activity table, newest first, capped upstream at 10 rows
	sectionHeader(pdf, "Recent Activities")
	colWidths := [3]float64{55, 70, 65}

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetTextColor(headingBlue[0], headingBlue[1], headingBlue[2])
	pdf.SetFillColor(headerFill[0], headerFill[1], headerFill[2])
	pdf.CellFormat(colWidths[0], 8, "Activity Type", "", 0, "L", true, 0, "")
	pdf.CellFormat(colWidths[1], 8, "Timestamp", "", 0, "L", true, 0, "")
	pdf.CellFormat(colWidths[2], 8, "Details", "", 1, "L", true, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFillColor(rowFill[0], rowFill[1], rowFill[2])
	for i, a := range d.Recent {
		details := a.Details
		if details == "" {
			details = "-"
		}
		fill := i%2 == 0
		pdf.CellFormat(colWidths[0], 8, a.ActivityType, "", 0, "L", fill, 0, "")
		pdf.CellFormat(colWidths[1], 8, a.ActivityTimestamp.Format(timestampFormat), "", 0, "L", fill, 0, "")
		pdf.CellFormat(colWidths[2], 8, details, "", 1, "L", fill, 0, "")
	}

	return pdf.Output(w)
}

func sectionHeader(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetTextColor(headingBlue[0], headingBlue[1], headingBlue[2])
	pdf.CellFormat(0, 9, title, "", 1, "L", false, 0, "")
	pdf.Ln(2)
}
