package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"care-connect/authentication"
	"care-connect/models"
	"care-connect/service"
)

type AdminController struct {
	users        service.UserStore
	doctors      service.DoctorStore
	appointments service.AppointmentStore
	booking      *service.BookingService
	dashboard    *service.DashboardService
	cache        *redis.Client
	logger       *zap.Logger

	email    string
	password string
}

func NewAdminController(
	users service.UserStore,
	doctors service.DoctorStore,
	appointments service.AppointmentStore,
	booking *service.BookingService,
	dashboard *service.DashboardService,
	cache *redis.Client,
	logger *zap.Logger,
	email, password string,
) *AdminController {
	return &AdminController{
		users:        users,
		doctors:      doctors,
		appointments: appointments,
		booking:      booking,
		dashboard:    dashboard,
		cache:        cache,
		logger:       logger,
		email:        email,
		password:     password,
	}
}

// Login checks the configured admin credentials and returns a token.
// Unset credentials disable admin login entirely; an empty comparison
// must never mint a token.
func (ctl *AdminController) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, "missing details")
		return
	}

	if ctl.email == "" || ctl.password == "" {
		ctl.logger.Warn("admin login attempted but no admin credentials are configured")
		fail(c, "invalid credentials")
		return
	}

	if req.Email != ctl.email || req.Password != ctl.password {
		fail(c, "invalid credentials")
		return
	}

	token, err := authentication.GenerateAdminToken(req.Email)
	if err != nil {
		fail(c, "failed to generate token")
		return
	}
	ok(c, gin.H{"token": token})
}

type addDoctorRequest struct {
	Name       string  `json:"name" validate:"required"`
	Email      string  `json:"email" validate:"required,email"`
	Password   string  `json:"password" validate:"required,min=8"`
	Image      string  `json:"image"`
	Speciality string  `json:"speciality" validate:"required"`
	Degree     string  `json:"degree"`
	Experience string  `json:"experience"`
	About      string  `json:"about"`
	Fees       float64 `json:"fees" validate:"required"`
	Address    string  `json:"address"`
}

// AddDoctor onboards a doctor, available by default with an empty slot map.
func (ctl *AdminController) AddDoctor(c *gin.Context) {
	var req addDoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, "missing details")
		return
	}
	if err := validate.Struct(req); err != nil {
		fail(c, "please fill all the mandatory fields")
		return
	}

	existing, err := ctl.doctors.GetByEmail(c.Request.Context(), req.Email)
	if err != nil {
		ctl.logger.Error("lookup doctor", zap.Error(err))
		failErr(c, err)
		return
	}
	if existing != nil {
		fail(c, "doctor already exists")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		fail(c, "failed to hash password")
		return
	}

	doctor := &models.Doctor{
		Name:       req.Name,
		Email:      req.Email,
		Password:   string(hashedPassword),
		Image:      req.Image,
		Speciality: req.Speciality,
		Degree:     req.Degree,
		Experience: req.Experience,
		About:      req.About,
		Fees:       req.Fees,
		Address:    req.Address,
		Available:  true,
		SlotBooked: models.SlotMap{},
	}
	if err := ctl.doctors.Create(c.Request.Context(), doctor); err != nil {
		ctl.logger.Error("create doctor", zap.Error(err))
		failErr(c, err)
		return
	}

	dropDoctorCache(ctl.cache)
	okMessage(c, "doctor added")
}

// AllDoctors returns every doctor with passwords stripped.
func (ctl *AdminController) AllDoctors(c *gin.Context) {
	doctors, err := ctl.doctors.GetAll(c.Request.Context())
	if err != nil {
		ctl.logger.Error("list doctors", zap.Error(err))
		failErr(c, err)
		return
	}
	for i := range doctors {
		doctors[i].Password = ""
	}
	ok(c, gin.H{"doctors": doctors})
}

type changeAvailabilityRequest struct {
	DocID uint `json:"docId"`
}

// ChangeAvailability toggles whether a doctor accepts bookings.
func (ctl *AdminController) ChangeAvailability(c *gin.Context) {
	var req changeAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, "missing details")
		return
	}

	doctor, err := ctl.doctors.GetByID(c.Request.Context(), req.DocID)
	if err != nil {
		ctl.logger.Error("get doctor", zap.Error(err))
		failErr(c, err)
		return
	}
	if doctor == nil {
		fail(c, "doctor not found")
		return
	}

	doctor.Available = !doctor.Available
	if err := ctl.doctors.Update(c.Request.Context(), doctor); err != nil {
		ctl.logger.Error("update doctor", zap.Error(err))
		failErr(c, err)
		return
	}

	dropDoctorCache(ctl.cache)
	okMessage(c, "availability changed")
}

// Appointments returns the whole ledger.
func (ctl *AdminController) Appointments(c *gin.Context) {
	appointments, err := ctl.appointments.ListAll(c.Request.Context())
	if err != nil {
		ctl.logger.Error("list appointments", zap.Error(err))
		failErr(c, err)
		return
	}
	ok(c, gin.H{"appointments": appointments})
}

// CancelAppointment cancels any appointment.
func (ctl *AdminController) CancelAppointment(c *gin.Context) {
	var req cancelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, "missing details")
		return
	}

	if err := ctl.booking.CancelByAdmin(c.Request.Context(), req.AppointmentID); err != nil {
		failErr(c, err)
		return
	}
	okMessage(c, "appointment cancelled")
}

// Dashboard returns the global summary.
func (ctl *AdminController) Dashboard(c *gin.Context) {
	dashData, err := ctl.dashboard.AdminDashboard(c.Request.Context())
	if err != nil {
		ctl.logger.Error("admin dashboard", zap.Error(err))
		failErr(c, err)
		return
	}
	ok(c, gin.H{"dashData": dashData})
}
