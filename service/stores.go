package service

import (
	"context"

	"care-connect/models"
)

// Store lookups return (nil, nil) when the record does not exist; a
// non-nil error always means the store itself failed.

type UserStore interface {
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	Count(ctx context.Context) (int64, error)
}

type DoctorStore interface {
	GetByID(ctx context.Context, id uint) (*models.Doctor, error)
	GetByEmail(ctx context.Context, email string) (*models.Doctor, error)
	GetAll(ctx context.Context) ([]models.Doctor, error)
	Create(ctx context.Context, doctor *models.Doctor) error
	// Update writes profile fields only and must never touch the slot
	// map; the slot map changes exclusively through UpdateSlotBooked.
	Update(ctx context.Context, doctor *models.Doctor) error
	UpdateSlotBooked(ctx context.Context, id uint, slots models.SlotMap) error
	Count(ctx context.Context) (int64, error)
}

type AppointmentStore interface {
	GetByID(ctx context.Context, id uint) (*models.Appointment, error)
	Create(ctx context.Context, appointment *models.Appointment) error
	Update(ctx context.Context, appointment *models.Appointment) error
	ListByUser(ctx context.Context, userID uint) ([]models.Appointment, error)
	ListByDoctor(ctx context.Context, docID uint) ([]models.Appointment, error)
	ListAll(ctx context.Context) ([]models.Appointment, error)
}

type PaymentOrderStore interface {
	Create(ctx context.Context, order *models.PaymentOrder) error
	GetByOrderID(ctx context.Context, orderID string) (*models.PaymentOrder, error)
}
