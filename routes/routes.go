package routes

import (
	"care-connect/authentication"
	"care-connect/controllers"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Setup wires every endpoint onto a new Gin engine. The patient and
// admin web clients run on their own origins, hence CORS.
func Setup(user *controllers.UserController, doctor *controllers.DoctorController, admin *controllers.AdminController) *gin.Engine {
	r := gin.Default()
	r.Use(cors.Default())

	// user routes
	userAPI := r.Group("/api/user")
	{
		userAPI.POST("/register", user.Register)
		userAPI.POST("/login", user.Login)
	}

	userAuth := r.Group("/api/user")
	userAuth.Use(authentication.UserAuthMiddleware())
	{
		userAuth.GET("/get-profile", user.GetProfile)
		userAuth.POST("/update-profile", user.UpdateProfile)
		userAuth.POST("/book-appointment", user.BookAppointment)
		userAuth.GET("/appointments", user.ListAppointments)
		userAuth.POST("/cancel-appointment", user.CancelAppointment)
		userAuth.POST("/payment-razorpay", user.PaymentRazorpay)
		userAuth.POST("/verify-razorpay", user.VerifyRazorpay)
	}

	// doctor routes
	doctorAPI := r.Group("/api/doctor")
	{
		doctorAPI.GET("/list", doctor.List)
		doctorAPI.POST("/login", doctor.Login)
	}

	doctorAuth := r.Group("/api/doctor")
	doctorAuth.Use(authentication.DoctorAuthMiddleware())
	{
		doctorAuth.GET("/appointments", doctor.Appointments)
		doctorAuth.POST("/complete-appointment", doctor.CompleteAppointment)
		doctorAuth.POST("/cancel-appointment", doctor.CancelAppointment)
		doctorAuth.GET("/dashboard", doctor.Dashboard)
		doctorAuth.GET("/profile", doctor.Profile)
		doctorAuth.POST("/update-profile", doctor.UpdateProfile)
	}

	// admin routes
	adminAPI := r.Group("/api/admin")
	adminAPI.POST("/login", admin.Login)

	adminAuth := r.Group("/api/admin")
	adminAuth.Use(authentication.AdminAuthMiddleware())
	{
		adminAuth.POST("/add-doctor", admin.AddDoctor)
		adminAuth.GET("/all-doctors", admin.AllDoctors)
		adminAuth.POST("/change-availablity", admin.ChangeAvailability)
		adminAuth.GET("/appointments", admin.Appointments)
		adminAuth.POST("/cancel-appointment", admin.CancelAppointment)
		adminAuth.GET("/dashboard", admin.Dashboard)
	}

	return r
}
