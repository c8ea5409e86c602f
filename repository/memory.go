package repository

import (
	"context"
	"sync"

	"care-connect/models"
)

// MemoryStore is an in-memory implementation of every store interface,
// backing the test suite. Reads hand out copies so callers can never
// mutate stored state through an aliased pointer.
type MemoryStore struct {
	mu           sync.RWMutex
	users        map[uint]models.User
	doctors      map[uint]models.Doctor
	appointments map[uint]models.Appointment
	orders       map[string]models.PaymentOrder

	nextUserID        uint
	nextDoctorID      uint
	nextAppointmentID uint
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:        make(map[uint]models.User),
		doctors:      make(map[uint]models.Doctor),
		appointments: make(map[uint]models.Appointment),
		orders:       make(map[string]models.PaymentOrder),
	}
}

// Users

func (s *MemoryStore) GetByID(ctx context.Context, id uint) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	return &user, nil
}

func (s *MemoryStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, user := range s.users {
		if user.Email == email {
			u := user
			return &u, nil
		}
	}
	return nil, nil
}

func (s *MemoryStore) Create(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if user.UserID == 0 {
		s.nextUserID++
		user.UserID = s.nextUserID
	} else if user.UserID > s.nextUserID {
		s.nextUserID = user.UserID
	}
	s.users[user.UserID] = *user
	return nil
}

func (s *MemoryStore) Update(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[user.UserID] = *user
	return nil
}

func (s *MemoryStore) Count(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.users)), nil
}

// UserStore and DoctorStore share method names, so the doctor side
// lives on a dedicated view over the same data.

// Doctors returns the DoctorStore view.
func (s *MemoryStore) Doctors() *MemoryDoctorStore {
	return &MemoryDoctorStore{store: s}
}

// Appointments returns the AppointmentStore view.
func (s *MemoryStore) Appointments() *MemoryAppointmentStore {
	return &MemoryAppointmentStore{store: s}
}

// Orders returns the PaymentOrderStore view.
func (s *MemoryStore) Orders() *MemoryPaymentOrderStore {
	return &MemoryPaymentOrderStore{store: s}
}

type MemoryDoctorStore struct {
	store *MemoryStore
}

func (d *MemoryDoctorStore) GetByID(ctx context.Context, id uint) (*models.Doctor, error) {
	d.store.mu.RLock()
	defer d.store.mu.RUnlock()
	doctor, ok := d.store.doctors[id]
	if !ok {
		return nil, nil
	}
	doctor.SlotBooked = doctor.SlotBooked.Clone()
	return &doctor, nil
}

func (d *MemoryDoctorStore) GetByEmail(ctx context.Context, email string) (*models.Doctor, error) {
	d.store.mu.RLock()
	defer d.store.mu.RUnlock()
	for _, doctor := range d.store.doctors {
		if doctor.Email == email {
			doc := doctor
			doc.SlotBooked = doc.SlotBooked.Clone()
			return &doc, nil
		}
	}
	return nil, nil
}

func (d *MemoryDoctorStore) GetAll(ctx context.Context) ([]models.Doctor, error) {
	d.store.mu.RLock()
	defer d.store.mu.RUnlock()
	doctors := make([]models.Doctor, 0, len(d.store.doctors))
	for id := uint(1); id <= d.store.nextDoctorID; id++ {
		if doctor, ok := d.store.doctors[id]; ok {
			doctor.SlotBooked = doctor.SlotBooked.Clone()
			doctors = append(doctors, doctor)
		}
	}
	return doctors, nil
}

func (d *MemoryDoctorStore) Create(ctx context.Context, doctor *models.Doctor) error {
	d.store.mu.Lock()
	defer d.store.mu.Unlock()
	if doctor.DoctorID == 0 {
		d.store.nextDoctorID++
		doctor.DoctorID = d.store.nextDoctorID
	} else if doctor.DoctorID > d.store.nextDoctorID {
		d.store.nextDoctorID = doctor.DoctorID
	}
	if doctor.SlotBooked == nil {
		doctor.SlotBooked = models.SlotMap{}
	}
	stored := *doctor
	stored.SlotBooked = doctor.SlotBooked.Clone()
	d.store.doctors[doctor.DoctorID] = stored
	return nil
}

// Update persists profile fields only; the stored slot map is kept so a
// stale read written back here cannot erase bookings made in between.
func (d *MemoryDoctorStore) Update(ctx context.Context, doctor *models.Doctor) error {
	d.store.mu.Lock()
	defer d.store.mu.Unlock()
	stored := *doctor
	if existing, ok := d.store.doctors[doctor.DoctorID]; ok {
		stored.SlotBooked = existing.SlotBooked.Clone()
	} else {
		stored.SlotBooked = doctor.SlotBooked.Clone()
	}
	d.store.doctors[doctor.DoctorID] = stored
	return nil
}

func (d *MemoryDoctorStore) UpdateSlotBooked(ctx context.Context, id uint, slots models.SlotMap) error {
	d.store.mu.Lock()
	defer d.store.mu.Unlock()
	doctor := d.store.doctors[id]
	doctor.SlotBooked = slots.Clone()
	d.store.doctors[id] = doctor
	return nil
}

func (d *MemoryDoctorStore) Count(ctx context.Context) (int64, error) {
	d.store.mu.RLock()
	defer d.store.mu.RUnlock()
	return int64(len(d.store.doctors)), nil
}

type MemoryAppointmentStore struct {
	store *MemoryStore
}

func (a *MemoryAppointmentStore) GetByID(ctx context.Context, id uint) (*models.Appointment, error) {
	a.store.mu.RLock()
	defer a.store.mu.RUnlock()
	appointment, ok := a.store.appointments[id]
	if !ok {
		return nil, nil
	}
	return &appointment, nil
}

func (a *MemoryAppointmentStore) Create(ctx context.Context, appointment *models.Appointment) error {
	a.store.mu.Lock()
	defer a.store.mu.Unlock()
	if appointment.AppointmentID == 0 {
		a.store.nextAppointmentID++
		appointment.AppointmentID = a.store.nextAppointmentID
	} else if appointment.AppointmentID > a.store.nextAppointmentID {
		a.store.nextAppointmentID = appointment.AppointmentID
	}
	a.store.appointments[appointment.AppointmentID] = *appointment
	return nil
}

func (a *MemoryAppointmentStore) Update(ctx context.Context, appointment *models.Appointment) error {
	a.store.mu.Lock()
	defer a.store.mu.Unlock()
	a.store.appointments[appointment.AppointmentID] = *appointment
	return nil
}

func (a *MemoryAppointmentStore) ListByUser(ctx context.Context, userID uint) ([]models.Appointment, error) {
	return a.list(func(appointment models.Appointment) bool {
		return appointment.UserID == userID
	})
}

func (a *MemoryAppointmentStore) ListByDoctor(ctx context.Context, docID uint) ([]models.Appointment, error) {
	return a.list(func(appointment models.Appointment) bool {
		return appointment.DocID == docID
	})
}

func (a *MemoryAppointmentStore) ListAll(ctx context.Context) ([]models.Appointment, error) {
	return a.list(func(models.Appointment) bool { return true })
}

// list walks ids in ascending order to preserve ledger order.
func (a *MemoryAppointmentStore) list(keep func(models.Appointment) bool) ([]models.Appointment, error) {
	a.store.mu.RLock()
	defer a.store.mu.RUnlock()
	appointments := make([]models.Appointment, 0)
	for id := uint(1); id <= a.store.nextAppointmentID; id++ {
		if appointment, ok := a.store.appointments[id]; ok && keep(appointment) {
			appointments = append(appointments, appointment)
		}
	}
	return appointments, nil
}

type MemoryPaymentOrderStore struct {
	store *MemoryStore
}

func (o *MemoryPaymentOrderStore) Create(ctx context.Context, order *models.PaymentOrder) error {
	o.store.mu.Lock()
	defer o.store.mu.Unlock()
	o.store.orders[order.OrderID] = *order
	return nil
}

func (o *MemoryPaymentOrderStore) GetByOrderID(ctx context.Context, orderID string) (*models.PaymentOrder, error) {
	o.store.mu.RLock()
	defer o.store.mu.RUnlock()
	order, ok := o.store.orders[orderID]
	if !ok {
		return nil, nil
	}
	return &order, nil
}
