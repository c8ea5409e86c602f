package service_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"care-connect/models"
	"care-connect/repository"
	"care-connect/service"
)

func newBookingFixture(t *testing.T) (*service.BookingService, *repository.MemoryStore) {
	t.Helper()
	store := repository.NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, &models.User{
		Name:  "Alice",
		Email: "alice@example.com",
	}))
	require.NoError(t, store.Doctors().Create(ctx, &models.Doctor{
		Name:       "Dr. Brown",
		Email:      "brown@example.com",
		Speciality: "General physician",
		Fees:       50,
		Available:  true,
	}))

	booking := service.NewBookingService(store, store.Doctors(), store.Appointments(), nil, zap.NewNop())
	return booking, store
}

func TestBookCreatesAppointment(t *testing.T) {
	booking, store := newBookingFixture(t)
	ctx := context.Background()

	appointment, err := booking.Book(ctx, 1, 1, "10_5_2024", "10:00 AM")
	require.NoError(t, err)
	require.NotNil(t, appointment)

	assert.Equal(t, uint(1), appointment.UserID)
	assert.Equal(t, uint(1), appointment.DocID)
	assert.Equal(t, 50.0, appointment.Amount)
	assert.Equal(t, "Alice", appointment.UserData.Name)
	assert.Equal(t, "Dr. Brown", appointment.DocData.Name)

	doctor, err := store.Doctors().GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"10:00 AM"}, doctor.SlotBooked["10_5_2024"])

	appointments, err := store.Appointments().ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, appointments, 1)
}

func TestBookSlotTaken(t *testing.T) {
	booking, store := newBookingFixture(t)
	ctx := context.Background()

	_, err := booking.Book(ctx, 1, 1, "10_5_2024", "10:00 AM")
	require.NoError(t, err)

	_, err = booking.Book(ctx, 1, 1, "10_5_2024", "10:00 AM")
	assert.ErrorIs(t, err, service.ErrSlotTaken)

	// the losing attempt must not leave a ledger entry behind
	appointments, err := store.Appointments().ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, appointments, 1)

	// a different time on the same date is still free
	_, err = booking.Book(ctx, 1, 1, "10_5_2024", "11:00 AM")
	assert.NoError(t, err)
}

func TestBookDoctorUnavailable(t *testing.T) {
	booking, store := newBookingFixture(t)
	ctx := context.Background()

	doctor, err := store.Doctors().GetByID(ctx, 1)
	require.NoError(t, err)
	doctor.Available = false
	require.NoError(t, store.Doctors().Update(ctx, doctor))

	_, err = booking.Book(ctx, 1, 1, "10_5_2024", "10:00 AM")
	assert.ErrorIs(t, err, service.ErrNotAvailable)
}

func TestBookMissingParties(t *testing.T) {
	booking, _ := newBookingFixture(t)
	ctx := context.Background()

	_, err := booking.Book(ctx, 1, 99, "10_5_2024", "10:00 AM")
	assert.ErrorIs(t, err, service.ErrDoctorNotFound)

	_, err = booking.Book(ctx, 99, 1, "10_5_2024", "10:00 AM")
	assert.ErrorIs(t, err, service.ErrUserNotFound)
}

func TestBookAmountFixedAtBookingTime(t *testing.T) {
	booking, store := newBookingFixture(t)
	ctx := context.Background()

	appointment, err := booking.Book(ctx, 1, 1, "10_5_2024", "10:00 AM")
	require.NoError(t, err)

	doctor, err := store.Doctors().GetByID(ctx, 1)
	require.NoError(t, err)
	doctor.Fees = 80
	require.NoError(t, store.Doctors().Update(ctx, doctor))

	stored, err := store.Appointments().GetByID(ctx, appointment.AppointmentID)
	require.NoError(t, err)
	assert.Equal(t, 50.0, stored.Amount)
}

func TestCancelReleasesSlot(t *testing.T) {
	booking, store := newBookingFixture(t)
	ctx := context.Background()

	appointment, err := booking.Book(ctx, 1, 1, "10_5_2024", "10:00 AM")
	require.NoError(t, err)

	require.NoError(t, booking.CancelByUser(ctx, 1, appointment.AppointmentID))

	stored, err := store.Appointments().GetByID(ctx, appointment.AppointmentID)
	require.NoError(t, err)
	assert.True(t, stored.Cancelled)

	doctor, err := store.Doctors().GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, doctor.SlotBooked["10_5_2024"])

	// the slot is bookable again
	_, err = booking.Book(ctx, 1, 1, "10_5_2024", "10:00 AM")
	assert.NoError(t, err)
}

func TestCancelTwiceIsNoOp(t *testing.T) {
	booking, store := newBookingFixture(t)
	ctx := context.Background()

	appointment, err := booking.Book(ctx, 1, 1, "10_5_2024", "10:00 AM")
	require.NoError(t, err)

	// someone else books the slot between the two cancellations
	require.NoError(t, booking.CancelByUser(ctx, 1, appointment.AppointmentID))
	_, err = booking.Book(ctx, 1, 1, "10_5_2024", "10:00 AM")
	require.NoError(t, err)

	// the repeat cancel succeeds but must not release the new booking
	require.NoError(t, booking.CancelByUser(ctx, 1, appointment.AppointmentID))

	doctor, err := store.Doctors().GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"10:00 AM"}, doctor.SlotBooked["10_5_2024"])
}

func TestCancelAuthorization(t *testing.T) {
	booking, store := newBookingFixture(t)
	ctx := context.Background()

	appointment, err := booking.Book(ctx, 1, 1, "10_5_2024", "10:00 AM")
	require.NoError(t, err)

	assert.ErrorIs(t, booking.CancelByUser(ctx, 2, appointment.AppointmentID), service.ErrUnauthorized)
	assert.ErrorIs(t, booking.CancelByDoctor(ctx, 2, appointment.AppointmentID), service.ErrUnauthorized)
	assert.ErrorIs(t, booking.CancelByUser(ctx, 1, 99), service.ErrAppointmentNotFound)

	// admin may cancel anything
	require.NoError(t, booking.CancelByAdmin(ctx, appointment.AppointmentID))

	stored, err := store.Appointments().GetByID(ctx, appointment.AppointmentID)
	require.NoError(t, err)
	assert.True(t, stored.Cancelled)
}

func TestCompleteAppointment(t *testing.T) {
	booking, store := newBookingFixture(t)
	ctx := context.Background()

	appointment, err := booking.Book(ctx, 1, 1, "10_5_2024", "10:00 AM")
	require.NoError(t, err)

	assert.ErrorIs(t, booking.Complete(ctx, 2, appointment.AppointmentID), service.ErrUnauthorized)
	assert.ErrorIs(t, booking.Complete(ctx, 1, 99), service.ErrAppointmentNotFound)

	require.NoError(t, booking.Complete(ctx, 1, appointment.AppointmentID))

	stored, err := store.Appointments().GetByID(ctx, appointment.AppointmentID)
	require.NoError(t, err)
	assert.True(t, stored.IsCompleted)
}

func TestProfileWriteBackKeepsBookedSlots(t *testing.T) {
	booking, store := newBookingFixture(t)
	ctx := context.Background()

	// a profile handler reads the row, a booking lands, then the stale
	// row is written back; the booked slot must survive the write-back
	stale, err := store.Doctors().GetByID(ctx, 1)
	require.NoError(t, err)

	_, err = booking.Book(ctx, 1, 1, "10_5_2024", "10:00 AM")
	require.NoError(t, err)

	stale.Available = false
	stale.Fees = 80
	require.NoError(t, store.Doctors().Update(ctx, stale))

	after, err := store.Doctors().GetByID(ctx, 1)
	require.NoError(t, err)
	assert.False(t, after.Available)
	assert.Equal(t, 80.0, after.Fees)
	assert.Equal(t, []string{"10:00 AM"}, after.SlotBooked["10_5_2024"])
}

// rebookNotifier books a second slot from inside the booking callback.
// That only works when the notifier runs after the doctor's lock is
// released; otherwise this deadlocks.
type rebookNotifier struct {
	booking *service.BookingService
	fired   bool
	err     error
}

func (n *rebookNotifier) AppointmentBooked(a *models.Appointment) error {
	if n.fired {
		return nil
	}
	n.fired = true
	_, n.err = n.booking.Book(context.Background(), a.UserID, a.DocID, a.SlotDate, "11:00 AM")
	return nil
}

func (n *rebookNotifier) AppointmentCancelled(*models.Appointment) error { return nil }

func TestNotifierRunsAfterSlotWrite(t *testing.T) {
	store := repository.NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, &models.User{Name: "Alice", Email: "alice@example.com"}))
	require.NoError(t, store.Doctors().Create(ctx, &models.Doctor{
		Name: "Dr. Brown", Email: "brown@example.com", Fees: 50, Available: true,
	}))

	notifier := &rebookNotifier{}
	notifier.booking = service.NewBookingService(store, store.Doctors(), store.Appointments(), notifier, zap.NewNop())

	_, err := notifier.booking.Book(ctx, 1, 1, "10_5_2024", "10:00 AM")
	require.NoError(t, err)
	require.True(t, notifier.fired)
	require.NoError(t, notifier.err)

	doctor, err := store.Doctors().GetByID(ctx, 1)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"10:00 AM", "11:00 AM"}, doctor.SlotBooked["10_5_2024"])
}

func TestConcurrentBookingSingleWinner(t *testing.T) {
	booking, store := newBookingFixture(t)
	ctx := context.Background()

	const attempts = 16
	for i := 2; i <= attempts; i++ {
		require.NoError(t, store.Create(ctx, &models.User{
			Name:  "Patient",
			Email: "patient" + string(rune('a'+i)) + "@example.com",
		}))
	}

	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = booking.Book(ctx, uint(i+1), 1, "10_5_2024", "10:00 AM")
		}(i)
	}
	wg.Wait()

	winners := 0
	for _, err := range errs {
		if err == nil {
			winners++
		} else {
			assert.ErrorIs(t, err, service.ErrSlotTaken)
		}
	}
	assert.Equal(t, 1, winners)

	appointments, err := store.Appointments().ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, appointments, 1)

	doctor, err := store.Doctors().GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"10:00 AM"}, doctor.SlotBooked["10_5_2024"])
}
