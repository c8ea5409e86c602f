package service

import (
	"context"
	"fmt"
	"time"

	"care-connect/models"

	"go.uber.org/zap"
)

// Notifier delivers booking and cancellation mail. Failures are logged,
// never propagated; mail is not part of the booking contract.
type Notifier interface {
	AppointmentBooked(appointment *models.Appointment) error
	AppointmentCancelled(appointment *models.Appointment) error
}

// BookingService owns the appointment lifecycle: creation against a
// doctor's slot map, cancellation with slot release, and completion.
type BookingService struct {
	users        UserStore
	doctors      DoctorStore
	appointments AppointmentStore
	locks        *slotLocker
	notifier     Notifier
	logger       *zap.Logger
}

func NewBookingService(
	users UserStore,
	doctors DoctorStore,
	appointments AppointmentStore,
	notifier Notifier,
	logger *zap.Logger,
) *BookingService {
	return &BookingService{
		users:        users,
		doctors:      doctors,
		appointments: appointments,
		locks:        newSlotLocker(),
		notifier:     notifier,
		logger:       logger,
	}
}

// Book creates an appointment for the given doctor, date and time slot.
// The whole check-then-write sequence runs under the doctor's lock, so
// concurrent attempts on the same slot resolve to one winner and
// ErrSlotTaken for the rest. Mail goes out after the lock is released;
// a slow mail server must not stall other bookings for the doctor.
func (s *BookingService) Book(ctx context.Context, userID, docID uint, slotDate, slotTime string) (*models.Appointment, error) {
	appointment, err := s.book(ctx, userID, docID, slotDate, slotTime)
	if err != nil {
		return nil, err
	}

	s.logger.Info("appointment booked",
		zap.Uint("appointment_id", appointment.AppointmentID),
		zap.Uint("user_id", userID),
		zap.Uint("doctor_id", docID),
		zap.String("slot_date", slotDate),
		zap.String("slot_time", slotTime),
	)
	if s.notifier != nil {
		if err := s.notifier.AppointmentBooked(appointment); err != nil {
			s.logger.Warn("booking notification failed",
				zap.Uint("appointment_id", appointment.AppointmentID),
				zap.Error(err),
			)
		}
	}

	return appointment, nil
}

// book holds the doctor's lock across the check-then-write sequence.
func (s *BookingService) book(ctx context.Context, userID, docID uint, slotDate, slotTime string) (*models.Appointment, error) {
	mu := s.locks.acquire(docID)
	defer mu.Unlock()

	doctor, err := s.doctors.GetByID(ctx, docID)
	if err != nil {
		return nil, fmt.Errorf("get doctor: %w", err)
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}
	if !doctor.Available {
		return nil, ErrNotAvailable
	}

	slots := doctor.SlotBooked
	if slots == nil {
		slots = models.SlotMap{}
	}
	if slots.Booked(slotDate, slotTime) {
		return nil, ErrSlotTaken
	}
	slots.Book(slotDate, slotTime)

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	// Amount is fixed at the doctor's current fee; later fee changes
	// must not affect existing appointments.
	appointment := &models.Appointment{
		UserID:   userID,
		DocID:    docID,
		SlotDate: slotDate,
		SlotTime: slotTime,
		UserData: models.SnapshotUser(user),
		DocData:  models.SnapshotDoctor(doctor),
		Amount:   doctor.Fees,
		Date:     time.Now(),
	}
	if err := s.appointments.Create(ctx, appointment); err != nil {
		return nil, fmt.Errorf("create appointment: %w", err)
	}
	if err := s.doctors.UpdateSlotBooked(ctx, docID, slots); err != nil {
		return nil, fmt.Errorf("save slot map: %w", err)
	}

	return appointment, nil
}

// CancelByUser cancels an appointment on behalf of the patient who
// booked it.
func (s *BookingService) CancelByUser(ctx context.Context, userID, appointmentID uint) error {
	return s.cancel(ctx, appointmentID, func(a *models.Appointment) bool {
		return a.UserID == userID
	})
}

// CancelByDoctor cancels an appointment on behalf of the doctor it was
// booked with.
func (s *BookingService) CancelByDoctor(ctx context.Context, docID, appointmentID uint) error {
	return s.cancel(ctx, appointmentID, func(a *models.Appointment) bool {
		return a.DocID == docID
	})
}

// CancelByAdmin cancels any appointment.
func (s *BookingService) CancelByAdmin(ctx context.Context, appointmentID uint) error {
	return s.cancel(ctx, appointmentID, func(*models.Appointment) bool {
		return true
	})
}

// cancel flags the ledger entry and releases the slot back to the
// doctor's map. The authorization predicate is the only thing that
// differs between the user, doctor and admin call sites.
func (s *BookingService) cancel(ctx context.Context, appointmentID uint, authorized func(*models.Appointment) bool) error {
	appointment, err := s.appointments.GetByID(ctx, appointmentID)
	if err != nil {
		return fmt.Errorf("get appointment: %w", err)
	}
	if appointment == nil {
		return ErrAppointmentNotFound
	}
	if !authorized(appointment) {
		return ErrUnauthorized
	}

	appointment, err = s.release(ctx, appointmentID, appointment.DocID)
	if err != nil {
		return err
	}
	if appointment == nil {
		// Already cancelled: treated as a no-op, the slot was released
		// exactly once when the flag was first set.
		return nil
	}

	s.logger.Info("appointment cancelled",
		zap.Uint("appointment_id", appointment.AppointmentID),
		zap.Uint("doctor_id", appointment.DocID),
		zap.String("slot_date", appointment.SlotDate),
		zap.String("slot_time", appointment.SlotTime),
	)
	if s.notifier != nil {
		if err := s.notifier.AppointmentCancelled(appointment); err != nil {
			s.logger.Warn("cancellation notification failed",
				zap.Uint("appointment_id", appointment.AppointmentID),
				zap.Error(err),
			)
		}
	}

	return nil
}

// release flags the ledger entry and frees the slot under the doctor's
// lock. It returns nil when the appointment was already cancelled.
func (s *BookingService) release(ctx context.Context, appointmentID, docID uint) (*models.Appointment, error) {
	mu := s.locks.acquire(docID)
	defer mu.Unlock()

	// Re-read under the lock: two racing cancellations must not both
	// see cancelled=false and release the slot twice.
	appointment, err := s.appointments.GetByID(ctx, appointmentID)
	if err != nil {
		return nil, fmt.Errorf("get appointment: %w", err)
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}
	if appointment.Cancelled {
		return nil, nil
	}

	appointment.Cancelled = true
	if err := s.appointments.Update(ctx, appointment); err != nil {
		return nil, fmt.Errorf("update appointment: %w", err)
	}

	doctor, err := s.doctors.GetByID(ctx, appointment.DocID)
	if err != nil {
		return nil, fmt.Errorf("get doctor: %w", err)
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	slots := doctor.SlotBooked
	if slots == nil {
		slots = models.SlotMap{}
	}
	slots.Release(appointment.SlotDate, appointment.SlotTime)
	if err := s.doctors.UpdateSlotBooked(ctx, appointment.DocID, slots); err != nil {
		return nil, fmt.Errorf("save slot map: %w", err)
	}

	return appointment, nil
}

// Complete marks an appointment completed. Only the doctor it belongs
// to may do so; the slot map is not touched.
func (s *BookingService) Complete(ctx context.Context, docID, appointmentID uint) error {
	appointment, err := s.appointments.GetByID(ctx, appointmentID)
	if err != nil {
		return fmt.Errorf("get appointment: %w", err)
	}
	if appointment == nil {
		return ErrAppointmentNotFound
	}
	if appointment.DocID != docID {
		return ErrUnauthorized
	}

	appointment.IsCompleted = true
	if err := s.appointments.Update(ctx, appointment); err != nil {
		return fmt.Errorf("update appointment: %w", err)
	}

	s.logger.Info("appointment completed",
		zap.Uint("appointment_id", appointmentID),
		zap.Uint("doctor_id", docID),
	)
	return nil
}
