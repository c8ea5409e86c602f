package service

import (
	"context"
	"fmt"

	"care-connect/models"
)

// DashData is the summary a doctor sees on their panel.
type DashData struct {
	Earnings           float64              `json:"earnings"`
	Appointments       int                  `json:"appointments"`
	Patients           int                  `json:"patients"`
	LatestAppointments []models.Appointment `json:"latestAppointments"`
}

// AdminDashData adds the global counts the admin panel shows.
type AdminDashData struct {
	DashData
	Doctors int64 `json:"doctors"`
	Users   int64 `json:"users"`
}

// DashboardService derives summary statistics from the appointment
// ledger. It only ever reads.
type DashboardService struct {
	users        UserStore
	doctors      DoctorStore
	appointments AppointmentStore
}

func NewDashboardService(users UserStore, doctors DoctorStore, appointments AppointmentStore) *DashboardService {
	return &DashboardService{users: users, doctors: doctors, appointments: appointments}
}

// DoctorDashboard reduces one doctor's appointments.
func (s *DashboardService) DoctorDashboard(ctx context.Context, docID uint) (*DashData, error) {
	appointments, err := s.appointments.ListByDoctor(ctx, docID)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	data := Reduce(appointments)
	return &data, nil
}

// AdminDashboard reduces the whole ledger and adds entity counts.
func (s *DashboardService) AdminDashboard(ctx context.Context) (*AdminDashData, error) {
	appointments, err := s.appointments.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	doctors, err := s.doctors.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count doctors: %w", err)
	}
	users, err := s.users.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}
	return &AdminDashData{
		DashData: Reduce(appointments),
		Doctors:  doctors,
		Users:    users,
	}, nil
}

// Reduce computes the dashboard figures from a ledger snapshot:
// earnings sum over completed-or-paid appointments, distinct patient
// count, total count, and the five most recent entries newest first.
func Reduce(appointments []models.Appointment) DashData {
	data := DashData{
		Appointments:       len(appointments),
		LatestAppointments: make([]models.Appointment, 0, 5),
	}

	seen := make(map[uint]struct{})
	for _, a := range appointments {
		if a.IsCompleted || a.Payment {
			data.Earnings += a.Amount
		}
		seen[a.UserID] = struct{}{}
	}
	data.Patients = len(seen)

	for i := len(appointments) - 1; i >= 0 && len(data.LatestAppointments) < 5; i-- {
		data.LatestAppointments = append(data.LatestAppointments, appointments[i])
	}
	return data
}
