package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"care-connect/authentication"
	"care-connect/models"
	"care-connect/service"
)

var validate = validator.New()

type UserController struct {
	users        service.UserStore
	appointments service.AppointmentStore
	booking      *service.BookingService
	payments     *service.PaymentService
	logger       *zap.Logger
}

func NewUserController(
	users service.UserStore,
	appointments service.AppointmentStore,
	booking *service.BookingService,
	payments *service.PaymentService,
	logger *zap.Logger,
) *UserController {
	return &UserController{
		users:        users,
		appointments: appointments,
		booking:      booking,
		payments:     payments,
		logger:       logger,
	}
}

type registerRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// Register creates a patient account and logs it in.
func (ctl *UserController) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, "missing details")
		return
	}
	if err := validate.Struct(req); err != nil {
		fail(c, "enter a valid email and a password of at least 8 characters")
		return
	}

	existing, err := ctl.users.GetByEmail(c.Request.Context(), req.Email)
	if err != nil {
		ctl.logger.Error("lookup user", zap.Error(err))
		failErr(c, err)
		return
	}
	if existing != nil {
		fail(c, "user already exists")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		fail(c, "failed to hash password")
		return
	}

	user := &models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hashedPassword),
	}
	if err := ctl.users.Create(c.Request.Context(), user); err != nil {
		ctl.logger.Error("create user", zap.Error(err))
		failErr(c, err)
		return
	}

	token, err := authentication.GenerateUserToken(user.UserID)
	if err != nil {
		fail(c, "failed to generate token")
		return
	}
	ok(c, gin.H{"token": token})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login checks credentials and returns a patient token.
func (ctl *UserController) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, "missing details")
		return
	}

	user, err := ctl.users.GetByEmail(c.Request.Context(), req.Email)
	if err != nil {
		ctl.logger.Error("lookup user", zap.Error(err))
		failErr(c, err)
		return
	}
	if user == nil {
		fail(c, "user does not exist")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		fail(c, "invalid credentials")
		return
	}

	token, err := authentication.GenerateUserToken(user.UserID)
	if err != nil {
		fail(c, "failed to generate token")
		return
	}
	ok(c, gin.H{"token": token})
}

// GetProfile returns the authenticated patient's profile.
func (ctl *UserController) GetProfile(c *gin.Context) {
	userID := c.GetUint("userID")

	user, err := ctl.users.GetByID(c.Request.Context(), userID)
	if err != nil {
		ctl.logger.Error("get user", zap.Error(err))
		failErr(c, err)
		return
	}
	if user == nil {
		fail(c, "user not found")
		return
	}

	user.Password = ""
	ok(c, gin.H{"userData": user})
}

type updateProfileRequest struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	DOB     string `json:"dob"`
	Gender  string `json:"gender"`
	Image   string `json:"image"`
}

// UpdateProfile overwrites the editable profile fields.
func (ctl *UserController) UpdateProfile(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, "missing details")
		return
	}
	if req.Name == "" || req.Phone == "" || req.DOB == "" || req.Gender == "" {
		fail(c, "data missing")
		return
	}

	userID := c.GetUint("userID")
	user, err := ctl.users.GetByID(c.Request.Context(), userID)
	if err != nil {
		ctl.logger.Error("get user", zap.Error(err))
		failErr(c, err)
		return
	}
	if user == nil {
		fail(c, "user not found")
		return
	}

	user.Name = req.Name
	user.Phone = req.Phone
	user.Address = req.Address
	user.DOB = req.DOB
	user.Gender = req.Gender
	if req.Image != "" {
		user.Image = req.Image
	}
	if err := ctl.users.Update(c.Request.Context(), user); err != nil {
		ctl.logger.Error("update user", zap.Error(err))
		failErr(c, err)
		return
	}
	okMessage(c, "profile updated")
}

type bookRequest struct {
	DocID    uint   `json:"docId"`
	SlotDate string `json:"slotDate"`
	SlotTime string `json:"slotTime"`
}

// BookAppointment runs the booking workflow for the logged-in patient.
func (ctl *UserController) BookAppointment(c *gin.Context) {
	var req bookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, "missing details")
		return
	}
	if req.DocID == 0 || req.SlotDate == "" || req.SlotTime == "" {
		fail(c, "missing details")
		return
	}

	userID := c.GetUint("userID")
	if _, err := ctl.booking.Book(c.Request.Context(), userID, req.DocID, req.SlotDate, req.SlotTime); err != nil {
		failErr(c, err)
		return
	}
	okMessage(c, "appointment booked")
}

// ListAppointments returns the patient's appointment history.
func (ctl *UserController) ListAppointments(c *gin.Context) {
	userID := c.GetUint("userID")

	appointments, err := ctl.appointments.ListByUser(c.Request.Context(), userID)
	if err != nil {
		ctl.logger.Error("list appointments", zap.Error(err))
		failErr(c, err)
		return
	}
	ok(c, gin.H{"appointments": appointments})
}

type cancelRequest struct {
	AppointmentID uint `json:"appointmentId"`
}

// CancelAppointment cancels one of the patient's own appointments.
func (ctl *UserController) CancelAppointment(c *gin.Context) {
	var req cancelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, "missing details")
		return
	}

	userID := c.GetUint("userID")
	if err := ctl.booking.CancelByUser(c.Request.Context(), userID, req.AppointmentID); err != nil {
		failErr(c, err)
		return
	}
	okMessage(c, "appointment cancelled")
}

type paymentRequest struct {
	AppointmentID uint `json:"appointmentId"`
}

// PaymentRazorpay opens a payment order for an appointment.
func (ctl *UserController) PaymentRazorpay(c *gin.Context) {
	var req paymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, "missing details")
		return
	}

	order, err := ctl.payments.CreateOrder(c.Request.Context(), req.AppointmentID)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, gin.H{"order": order})
}

type verifyRequest struct {
	OrderID string `json:"order_id"`
}

// VerifyRazorpay confirms a payment order and flags the appointment paid.
func (ctl *UserController) VerifyRazorpay(c *gin.Context) {
	var req verifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, "missing details")
		return
	}

	if err := ctl.payments.VerifyOrder(c.Request.Context(), req.OrderID); err != nil {
		failErr(c, err)
		return
	}
	okMessage(c, "payment successful")
}
