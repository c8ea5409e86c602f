package notifications

import (
	"bytes"
	"fmt"

	"care-connect/models"

	"github.com/jung-kurt/gofpdf"
)

// GenerateReceiptPDF renders the booking confirmation attached to the
// patient's email.
func GenerateReceiptPDF(appointment *models.Appointment) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	pdf.SetTextColor(128, 0, 128)
	pdf.CellFormat(0, 10, "Care Connect - Appointment Booking", "", 1, "C", false, 0, "")

	pdf.SetFont("Arial", "B", 12)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(0, 10, "Booking Receipt", "1", 1, "C", false, 0, "")
	addDetail(pdf, "Appointment ID", fmt.Sprintf("%d", appointment.AppointmentID), true)
	addDetail(pdf, "Doctor Name", appointment.DocData.Name, true)
	addDetail(pdf, "Speciality", appointment.DocData.Speciality, true)
	addDetail(pdf, "Patient Name", appointment.UserData.Name, true)
	addDetail(pdf, "Date", appointment.SlotDate, false)
	addDetail(pdf, "Time Slot", appointment.SlotTime, false)
	addDetail(pdf, "Booked On", appointment.Date.Format("2006-01-02"), false)

	pdf.SetFont("Arial", "B", 13)
	addDetail(pdf, "Consultation Fee", fmt.Sprintf("%.2f", appointment.Amount), true)

	pdf.SetFont("Arial", "", 10)
	pdf.MultiCell(0, 5, "Please arrive 10 minutes before your time slot. The fee can be paid online from your appointments page.", "", "L", false)

	pdf.SetY(pdf.GetY() + 12)
	pdf.CellFormat(0, 10, "This is a computer generated receipt", "", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// addDetail adds a labeled row to the receipt.
func addDetail(pdf *gofpdf.Fpdf, label, value string, isHeader bool) {
	if isHeader {
		pdf.SetFont("Arial", "B", 12)
		pdf.SetFillColor(255, 255, 255)
	} else {
		pdf.SetFont("Arial", "", 10)
		pdf.SetFillColor(240, 240, 240)
	}
	pdf.CellFormat(45, 10, label, "1", 0, "", false, 0, "")
	pdf.CellFormat(0, 10, value, "1", 1, "", false, 0, "")
}
