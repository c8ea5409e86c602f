package controllers

import (
	"errors"
	"net/http"

	"care-connect/service"

	"github.com/gin-gonic/gin"
)

// Every handler answers HTTP 200; success or failure is flagged in the
// body so web clients read one envelope shape everywhere.

func ok(c *gin.Context, payload gin.H) {
	body := gin.H{"success": true}
	for k, v := range payload {
		body[k] = v
	}
	c.JSON(http.StatusOK, body)
}

func okMessage(c *gin.Context, message string) {
	c.JSON(http.StatusOK, gin.H{"success": true, "message": message})
}

func fail(c *gin.Context, message string) {
	c.JSON(http.StatusOK, gin.H{"success": false, "message": message})
}

// failErr translates workflow sentinels into their user-facing message.
// Anything unexpected is reported generically; the detail stays in the
// server log, not in the response.
func failErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		fail(c, "user not found")
	case errors.Is(err, service.ErrDoctorNotFound):
		fail(c, "doctor not found")
	case errors.Is(err, service.ErrAppointmentNotFound):
		fail(c, "appointment not found")
	case errors.Is(err, service.ErrNotAvailable):
		fail(c, "doctor is not available")
	case errors.Is(err, service.ErrSlotTaken):
		fail(c, "slot is not available")
	case errors.Is(err, service.ErrUnauthorized):
		fail(c, "unauthorized action")
	case errors.Is(err, service.ErrInvalidAppointment):
		fail(c, "appointment cancelled or not found")
	case errors.Is(err, service.ErrPaymentFailed):
		fail(c, "payment failed")
	default:
		fail(c, "something went wrong")
	}
}
