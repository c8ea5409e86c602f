package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// UserSnapshot is the patient profile copied onto an appointment at
// booking time. It is never refreshed afterwards so the record stays
// historically accurate even if the profile changes.
type UserSnapshot struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Image   string `json:"image"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Gender  string `json:"gender"`
	DOB     string `json:"dob"`
}

func (s UserSnapshot) Value() (driver.Value, error) {
	return json.Marshal(s)
}

func (s *UserSnapshot) Scan(value interface{}) error {
	return scanJSON(value, s)
}

// DoctorSnapshot is the doctor profile copied onto an appointment at
// booking time. The slot map is deliberately left out.
type DoctorSnapshot struct {
	Name       string  `json:"name"`
	Email      string  `json:"email"`
	Image      string  `json:"image"`
	Speciality string  `json:"speciality"`
	Degree     string  `json:"degree"`
	Experience string  `json:"experience"`
	About      string  `json:"about"`
	Fees       float64 `json:"fees"`
	Address    string  `json:"address"`
}

func (s DoctorSnapshot) Value() (driver.Value, error) {
	return json.Marshal(s)
}

func (s *DoctorSnapshot) Scan(value interface{}) error {
	return scanJSON(value, s)
}

func scanJSON(value, dest interface{}) error {
	if value == nil {
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, dest)
	case string:
		return json.Unmarshal([]byte(v), dest)
	default:
		return errors.New("unsupported source type for jsonb column")
	}
}

// SnapshotUser captures the denormalized patient data for an appointment.
func SnapshotUser(user *User) UserSnapshot {
	return UserSnapshot{
		Name:    user.Name,
		Email:   user.Email,
		Image:   user.Image,
		Phone:   user.Phone,
		Address: user.Address,
		Gender:  user.Gender,
		DOB:     user.DOB,
	}
}

// SnapshotDoctor captures the denormalized doctor data for an appointment.
func SnapshotDoctor(doctor *Doctor) DoctorSnapshot {
	return DoctorSnapshot{
		Name:       doctor.Name,
		Email:      doctor.Email,
		Image:      doctor.Image,
		Speciality: doctor.Speciality,
		Degree:     doctor.Degree,
		Experience: doctor.Experience,
		About:      doctor.About,
		Fees:       doctor.Fees,
		Address:    doctor.Address,
	}
}

// Appointment is one ledger entry. Rows are never deleted; lifecycle is
// tracked by the three flags, and Cancelled is never reset once set.
type Appointment struct {
	AppointmentID uint           `json:"appointmentId" gorm:"primaryKey"`
	UserID        uint           `json:"userId" gorm:"index;not null"`
	DocID         uint           `json:"docId" gorm:"index;not null"`
	SlotDate      string         `json:"slotDate" gorm:"not null"`
	SlotTime      string         `json:"slotTime" gorm:"not null"`
	UserData      UserSnapshot   `json:"userData" gorm:"type:jsonb"`
	DocData       DoctorSnapshot `json:"docData" gorm:"type:jsonb"`
	Amount        float64        `json:"amount"`
	Date          time.Time      `json:"date"`
	Cancelled     bool           `json:"cancelled"`
	Payment       bool           `json:"payment"`
	IsCompleted   bool           `json:"isCompleted"`
}
