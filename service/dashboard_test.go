package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"care-connect/models"
	"care-connect/repository"
	"care-connect/service"
)

func TestReduce(t *testing.T) {
	appointments := []models.Appointment{
		{AppointmentID: 1, UserID: 1, Amount: 50, IsCompleted: true},
		{AppointmentID: 2, UserID: 2, Amount: 60, Payment: true},
		{AppointmentID: 3, UserID: 1, Amount: 70},
		{AppointmentID: 4, UserID: 3, Amount: 80, IsCompleted: true, Payment: true},
		{AppointmentID: 5, UserID: 2, Amount: 90, Cancelled: true},
		{AppointmentID: 6, UserID: 4, Amount: 10},
	}

	data := service.Reduce(appointments)

	// completed-or-paid entries count once each, even when both flags are set
	assert.Equal(t, 190.0, data.Earnings)
	assert.Equal(t, 6, data.Appointments)
	assert.Equal(t, 4, data.Patients)

	require.Len(t, data.LatestAppointments, 5)
	assert.Equal(t, uint(6), data.LatestAppointments[0].AppointmentID)
	assert.Equal(t, uint(2), data.LatestAppointments[4].AppointmentID)
}

func TestReduceEmptyLedger(t *testing.T) {
	data := service.Reduce(nil)

	assert.Zero(t, data.Earnings)
	assert.Zero(t, data.Appointments)
	assert.Zero(t, data.Patients)
	assert.NotNil(t, data.LatestAppointments)
	assert.Empty(t, data.LatestAppointments)
}

func TestDoctorDashboardScopedToDoctor(t *testing.T) {
	store := repository.NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Appointments().Create(ctx, &models.Appointment{UserID: 1, DocID: 1, Amount: 50, IsCompleted: true}))
	require.NoError(t, store.Appointments().Create(ctx, &models.Appointment{UserID: 2, DocID: 2, Amount: 60, IsCompleted: true}))
	require.NoError(t, store.Appointments().Create(ctx, &models.Appointment{UserID: 2, DocID: 1, Amount: 70}))

	dashboard := service.NewDashboardService(store, store.Doctors(), store.Appointments())

	data, err := dashboard.DoctorDashboard(ctx, 1)
	require.NoError(t, err)

	assert.Equal(t, 50.0, data.Earnings)
	assert.Equal(t, 2, data.Appointments)
	assert.Equal(t, 2, data.Patients)
	require.Len(t, data.LatestAppointments, 2)
	assert.Equal(t, uint(3), data.LatestAppointments[0].AppointmentID)
}

func TestAdminDashboardCounts(t *testing.T) {
	store := repository.NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, &models.User{Name: "Alice", Email: "alice@example.com"}))
	require.NoError(t, store.Create(ctx, &models.User{Name: "Bob", Email: "bob@example.com"}))
	require.NoError(t, store.Doctors().Create(ctx, &models.Doctor{Name: "Dr. Brown", Email: "brown@example.com"}))
	require.NoError(t, store.Appointments().Create(ctx, &models.Appointment{UserID: 1, DocID: 1, Amount: 50, Payment: true}))

	dashboard := service.NewDashboardService(store, store.Doctors(), store.Appointments())

	data, err := dashboard.AdminDashboard(ctx)
	require.NoError(t, err)

	assert.Equal(t, int64(2), data.Users)
	assert.Equal(t, int64(1), data.Doctors)
	assert.Equal(t, 50.0, data.Earnings)
	assert.Equal(t, 1, data.Appointments)
}
