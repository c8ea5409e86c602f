package service

import "errors"

// Workflow failures surface as one of these sentinels so the transport
// layer can answer each with its own message. Anything else that comes
// out of a workflow is an upstream store or provider failure.
var (
	ErrUserNotFound        = errors.New("user not found")
	ErrDoctorNotFound      = errors.New("doctor not found")
	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrNotAvailable        = errors.New("doctor is not available")
	ErrSlotTaken           = errors.New("slot is not available")
	ErrUnauthorized        = errors.New("unauthorized action")
	ErrInvalidAppointment  = errors.New("appointment cancelled or not found")
	ErrPaymentFailed       = errors.New("payment failed")
)
