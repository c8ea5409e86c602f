package models

import "time"

// PaymentOrder records a payment-provider order created for an
// appointment, so a later status fetch can be tied back to the ledger.
type PaymentOrder struct {
	OrderID       string    `json:"orderId" gorm:"primaryKey"`
	AppointmentID uint      `json:"appointmentId" gorm:"index;not null"`
	Amount        float64   `json:"amount"`
	ReferenceID   string    `json:"referenceId"`
	CreatedAt     time.Time `gorm:"autoCreateTime"`
}
