package controllers

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"care-connect/authentication"
	"care-connect/models"
	"care-connect/service"
)

const (
	doctorListCacheKey = "doctors:list"
	doctorListCacheTTL = 5 * time.Minute
)

type DoctorController struct {
	doctors      service.DoctorStore
	appointments service.AppointmentStore
	booking      *service.BookingService
	dashboard    *service.DashboardService
	cache        *redis.Client
	logger       *zap.Logger
}

func NewDoctorController(
	doctors service.DoctorStore,
	appointments service.AppointmentStore,
	booking *service.BookingService,
	dashboard *service.DashboardService,
	cache *redis.Client,
	logger *zap.Logger,
) *DoctorController {
	return &DoctorController{
		doctors:      doctors,
		appointments: appointments,
		booking:      booking,
		dashboard:    dashboard,
		cache:        cache,
		logger:       logger,
	}
}

// List returns every doctor with credentials stripped. The result is
// cached in Redis for a few minutes; cache trouble falls back to the
// database, it never fails the request.
func (ctl *DoctorController) List(c *gin.Context) {
	if ctl.cache != nil {
		cached, err := ctl.cache.Get(c.Request.Context(), doctorListCacheKey).Result()
		if err == nil {
			var doctors []models.Doctor
			if err := json.Unmarshal([]byte(cached), &doctors); err == nil {
				ok(c, gin.H{"doctors": doctors})
				return
			}
		}
	}

	doctors, err := ctl.doctors.GetAll(c.Request.Context())
	if err != nil {
		ctl.logger.Error("list doctors", zap.Error(err))
		failErr(c, err)
		return
	}
	for i := range doctors {
		doctors[i].Password = ""
		doctors[i].Email = ""
	}

	if ctl.cache != nil {
		if data, err := json.Marshal(doctors); err == nil {
			if err := ctl.cache.Set(c.Request.Context(), doctorListCacheKey, data, doctorListCacheTTL).Err(); err != nil {
				ctl.logger.Warn("cache doctor list", zap.Error(err))
			}
		}
	}
	ok(c, gin.H{"doctors": doctors})
}

// Login checks doctor credentials and returns a doctor token.
func (ctl *DoctorController) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, "missing details")
		return
	}

	doctor, err := ctl.doctors.GetByEmail(c.Request.Context(), req.Email)
	if err != nil {
		ctl.logger.Error("lookup doctor", zap.Error(err))
		failErr(c, err)
		return
	}
	if doctor == nil {
		fail(c, "invalid credentials")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(doctor.Password), []byte(req.Password)); err != nil {
		fail(c, "invalid credentials")
		return
	}

	token, err := authentication.GenerateDoctorToken(doctor.Email, doctor.DoctorID)
	if err != nil {
		fail(c, "failed to generate token")
		return
	}
	ok(c, gin.H{"token": token})
}

// Appointments returns the doctor's appointment history.
func (ctl *DoctorController) Appointments(c *gin.Context) {
	docID := c.GetUint("doctorID")

	appointments, err := ctl.appointments.ListByDoctor(c.Request.Context(), docID)
	if err != nil {
		ctl.logger.Error("list appointments", zap.Error(err))
		failErr(c, err)
		return
	}
	ok(c, gin.H{"appointments": appointments})
}

// CompleteAppointment marks one of the doctor's appointments completed.
func (ctl *DoctorController) CompleteAppointment(c *gin.Context) {
	var req cancelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, "missing details")
		return
	}

	docID := c.GetUint("doctorID")
	if err := ctl.booking.Complete(c.Request.Context(), docID, req.AppointmentID); err != nil {
		failErr(c, err)
		return
	}
	okMessage(c, "appointment completed")
}

// CancelAppointment cancels one of the doctor's appointments.
func (ctl *DoctorController) CancelAppointment(c *gin.Context) {
	var req cancelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, "missing details")
		return
	}

	docID := c.GetUint("doctorID")
	if err := ctl.booking.CancelByDoctor(c.Request.Context(), docID, req.AppointmentID); err != nil {
		failErr(c, err)
		return
	}
	okMessage(c, "appointment cancelled")
}

// Dashboard returns the doctor-scoped summary.
func (ctl *DoctorController) Dashboard(c *gin.Context) {
	docID := c.GetUint("doctorID")

	dashData, err := ctl.dashboard.DoctorDashboard(c.Request.Context(), docID)
	if err != nil {
		ctl.logger.Error("doctor dashboard", zap.Error(err))
		failErr(c, err)
		return
	}
	ok(c, gin.H{"dashData": dashData})
}

// Profile returns the doctor's own profile.
func (ctl *DoctorController) Profile(c *gin.Context) {
	docID := c.GetUint("doctorID")

	doctor, err := ctl.doctors.GetByID(c.Request.Context(), docID)
	if err != nil {
		ctl.logger.Error("get doctor", zap.Error(err))
		failErr(c, err)
		return
	}
	if doctor == nil {
		fail(c, "doctor not found")
		return
	}

	doctor.Password = ""
	ok(c, gin.H{"profileData": doctor})
}

type updateDoctorRequest struct {
	Fees      float64 `json:"fees"`
	Address   string  `json:"address"`
	Available bool    `json:"available"`
}

// UpdateProfile changes the doctor's fee, address and availability flag.
// Existing appointments keep the amount they were booked at.
func (ctl *DoctorController) UpdateProfile(c *gin.Context) {
	var req updateDoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, "missing details")
		return
	}

	docID := c.GetUint("doctorID")
	doctor, err := ctl.doctors.GetByID(c.Request.Context(), docID)
	if err != nil {
		ctl.logger.Error("get doctor", zap.Error(err))
		failErr(c, err)
		return
	}
	if doctor == nil {
		fail(c, "doctor not found")
		return
	}

	doctor.Fees = req.Fees
	doctor.Address = req.Address
	doctor.Available = req.Available
	if err := ctl.doctors.Update(c.Request.Context(), doctor); err != nil {
		ctl.logger.Error("update doctor", zap.Error(err))
		failErr(c, err)
		return
	}

	dropDoctorCache(ctl.cache)
	okMessage(c, "profile updated")
}

// dropDoctorCache invalidates the cached doctor list after any doctor
// mutation; a failed delete only shortens the staleness window to the TTL.
func dropDoctorCache(cache *redis.Client) {
	if cache == nil {
		return
	}
	cache.Del(context.Background(), doctorListCacheKey)
}
