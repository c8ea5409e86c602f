package repository

import (
	"context"
	"errors"

	"care-connect/models"

	"gorm.io/gorm"
)

type DoctorRepository struct {
	db *gorm.DB
}

func NewDoctorRepository(db *gorm.DB) *DoctorRepository {
	return &DoctorRepository{db: db}
}

func (r *DoctorRepository) GetByID(ctx context.Context, id uint) (*models.Doctor, error) {
	var doctor models.Doctor
	if err := r.db.WithContext(ctx).First(&doctor, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &doctor, nil
}

func (r *DoctorRepository) GetByEmail(ctx context.Context, email string) (*models.Doctor, error) {
	var doctor models.Doctor
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&doctor).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &doctor, nil
}

func (r *DoctorRepository) GetAll(ctx context.Context) ([]models.Doctor, error) {
	var doctors []models.Doctor
	if err := r.db.WithContext(ctx).Order("doctor_id").Find(&doctors).Error; err != nil {
		return nil, err
	}
	return doctors, nil
}

func (r *DoctorRepository) Create(ctx context.Context, doctor *models.Doctor) error {
	return r.db.WithContext(ctx).Create(doctor).Error
}

// Update persists profile fields only. The slot map is excluded: it
// belongs to the booking workflow and may have changed since the caller
// read the row, so writing it back here would erase bookings.
func (r *DoctorRepository) Update(ctx context.Context, doctor *models.Doctor) error {
	return r.db.WithContext(ctx).Omit("slot_booked").Save(doctor).Error
}

// UpdateSlotBooked writes back only the slot map column; booking and
// cancellation never touch the rest of the doctor row.
func (r *DoctorRepository) UpdateSlotBooked(ctx context.Context, id uint, slots models.SlotMap) error {
	return r.db.WithContext(ctx).
		Model(&models.Doctor{}).
		Where("doctor_id = ?", id).
		Update("slot_booked", slots).Error
}

func (r *DoctorRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Doctor{}).Count(&count).Error
	return count, err
}
