package notifications

import (
	"fmt"
	"io"

	"care-connect/models"

	"github.com/go-gomail/gomail"
)

// EmailNotifier mails patients about booking and cancellation, with a
// PDF receipt attached to booking confirmations.
type EmailNotifier struct {
	from     string
	password string
	host     string
	port     int
}

func NewEmailNotifier(from, password string) *EmailNotifier {
	return &EmailNotifier{
		from:     from,
		password: password,
		host:     "smtp.gmail.com",
		port:     587,
	}
}

func (n *EmailNotifier) AppointmentBooked(appointment *models.Appointment) error {
	receipt, err := GenerateReceiptPDF(appointment)
	if err != nil {
		return fmt.Errorf("generate receipt: %w", err)
	}
	msg := fmt.Sprintf(
		"Your appointment with Dr. %s on %s at %s has been booked. The consultation fee is %.2f.",
		appointment.DocData.Name, appointment.SlotDate, appointment.SlotTime, appointment.Amount,
	)
	return n.send("Appointment Confirmation", appointment.UserData.Email, msg, "receipt.pdf", receipt)
}

func (n *EmailNotifier) AppointmentCancelled(appointment *models.Appointment) error {
	msg := fmt.Sprintf(
		"Your appointment with Dr. %s on %s at %s has been cancelled.",
		appointment.DocData.Name, appointment.SlotDate, appointment.SlotTime,
	)
	return n.send("Appointment Cancelled", appointment.UserData.Email, msg, "", nil)
}

func (n *EmailNotifier) send(subject, to, msg, attachmentName string, attachmentData []byte) error {
	m := gomail.NewMessage()
	m.SetHeader("From", n.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", msg)

	if attachmentName != "" {
		m.Attach(attachmentName, gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(attachmentData)
			return err
		}))
	}

	d := gomail.NewDialer(n.host, n.port, n.from, n.password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("error sending email: %v", err)
	}
	return nil
}
