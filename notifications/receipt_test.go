package notifications

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"care-connect/models"
)

func TestGenerateReceiptPDF(t *testing.T) {
	appointment := &models.Appointment{
		AppointmentID: 7,
		SlotDate:      "10_5_2024",
		SlotTime:      "10:00 AM",
		UserData:      models.UserSnapshot{Name: "Alice", Email: "alice@example.com"},
		DocData:       models.DoctorSnapshot{Name: "Dr. Brown", Speciality: "General physician"},
		Amount:        50,
		Date:          time.Now(),
	}

	data, err := GenerateReceiptPDF(appointment)
	require.NoError(t, err)
	require.NotEmpty(t, data)
	assert.Equal(t, "%PDF", string(data[:4]))
}
