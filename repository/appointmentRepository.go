package repository

import (
	"context"
	"errors"

	"care-connect/models"

	"gorm.io/gorm"
)

type AppointmentRepository struct {
	db *gorm.DB
}

func NewAppointmentRepository(db *gorm.DB) *AppointmentRepository {
	return &AppointmentRepository{db: db}
}

func (r *AppointmentRepository) GetByID(ctx context.Context, id uint) (*models.Appointment, error) {
	var appointment models.Appointment
	if err := r.db.WithContext(ctx).First(&appointment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *AppointmentRepository) Create(ctx context.Context, appointment *models.Appointment) error {
	return r.db.WithContext(ctx).Create(appointment).Error
}

func (r *AppointmentRepository) Update(ctx context.Context, appointment *models.Appointment) error {
	return r.db.WithContext(ctx).Save(appointment).Error
}

// Listings keep ledger order (ascending id), which is what the
// dashboard's "latest appointments" reversal relies on.

func (r *AppointmentRepository) ListByUser(ctx context.Context, userID uint) ([]models.Appointment, error) {
	var appointments []models.Appointment
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("appointment_id").
		Find(&appointments).Error
	return appointments, err
}

func (r *AppointmentRepository) ListByDoctor(ctx context.Context, docID uint) ([]models.Appointment, error) {
	var appointments []models.Appointment
	err := r.db.WithContext(ctx).
		Where("doc_id = ?", docID).
		Order("appointment_id").
		Find(&appointments).Error
	return appointments, err
}

func (r *AppointmentRepository) ListAll(ctx context.Context) ([]models.Appointment, error) {
	var appointments []models.Appointment
	err := r.db.WithContext(ctx).Order("appointment_id").Find(&appointments).Error
	return appointments, err
}
