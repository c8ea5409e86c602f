package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

// SlotMap holds the time labels already booked for a doctor, keyed by
// date string (e.g. "10_5_2024" -> ["10:00 AM"]). Stored as a jsonb
// column on the doctor row. Invariant: a time label appears at most
// once per date key.
type SlotMap map[string][]string

// Value implements driver.Valuer so GORM can persist the map as jsonb.
func (m SlotMap) Value() (driver.Value, error) {
	if m == nil {
		m = SlotMap{}
	}
	return json.Marshal(m)
}

// Scan implements sql.Scanner.
func (m *SlotMap) Scan(value interface{}) error {
	if value == nil {
		*m = SlotMap{}
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return errors.New("unsupported source type for SlotMap")
	}
	return json.Unmarshal(data, m)
}

// Booked reports whether the time label is already taken on the date.
func (m SlotMap) Booked(date, slot string) bool {
	for _, t := range m[date] {
		if t == slot {
			return true
		}
	}
	return false
}

// Book appends the time label to the date's list, creating the list if
// the date has no bookings yet. Callers must check Booked first.
func (m SlotMap) Book(date, slot string) {
	m[date] = append(m[date], slot)
}

// Release removes the time label from the date's list. It filters by
// value rather than by index, so releasing a slot that is already gone
// is a no-op and a duplicate entry can never survive a cancellation.
func (m SlotMap) Release(date, slot string) {
	kept := make([]string, 0, len(m[date]))
	for _, t := range m[date] {
		if t != slot {
			kept = append(kept, t)
		}
	}
	m[date] = kept
}

// Clone returns a deep copy of the map.
func (m SlotMap) Clone() SlotMap {
	out := make(SlotMap, len(m))
	for date, slots := range m {
		out[date] = append([]string(nil), slots...)
	}
	return out
}

type Doctor struct {
	DoctorID   uint    `json:"doctorId" gorm:"primaryKey"`
	Name       string  `json:"name" gorm:"not null"`
	Email      string  `json:"email,omitempty" gorm:"unique;not null"`
	Password   string  `json:"password,omitempty" gorm:"not null"`
	Image      string  `json:"image"`
	Speciality string  `json:"speciality"`
	Degree     string  `json:"degree"`
	Experience string  `json:"experience"`
	About      string  `json:"about"`
	Fees       float64 `json:"fees"`
	Address    string  `json:"address"`
	Available  bool    `json:"available"`
	SlotBooked SlotMap `json:"slot_booked" gorm:"type:jsonb"`
}

type DoctorClaims struct {
	Id          uint   `json:"id"`
	DoctorEmail string `json:"email"`
	jwt.RegisteredClaims
}
