package main

import (
	"log"
	"os"

	"go.uber.org/zap"

	"care-connect/configuration"
	"care-connect/controllers"
	"care-connect/notifications"
	"care-connect/repository"
	"care-connect/routes"
	"care-connect/service"
)

func main() {
	db, err := configuration.ConfigDB()
	if err != nil {
		log.Fatalf("database setup failed: %v", err)
	}

	logger := configuration.NewLogger(os.Getenv("ENV"))
	defer logger.Sync()

	// The doctor-list cache is optional; the API serves from the
	// database when redis is down.
	cache, err := configuration.InitRedis()
	if err != nil {
		logger.Warn("redis unavailable, doctor list cache disabled", zap.Error(err))
		cache = nil
	}

	users := repository.NewUserRepository(db)
	doctors := repository.NewDoctorRepository(db)
	appointments := repository.NewAppointmentRepository(db)
	orders := repository.NewPaymentOrderRepository(db)

	var notifier service.Notifier
	if email := os.Getenv("EMAIL"); email != "" {
		notifier = notifications.NewEmailNotifier(email, os.Getenv("EMAIL_PASSWORD"))
	}

	currency := os.Getenv("CURRENCY")
	if currency == "" {
		currency = "INR"
	}
	provider := service.NewRazorpayProvider(os.Getenv("RAZORPAY_KEY_ID"), os.Getenv("RAZORPAY_KEY_SECRET"))

	booking := service.NewBookingService(users, doctors, appointments, notifier, logger)
	dashboard := service.NewDashboardService(users, doctors, appointments)
	payments := service.NewPaymentService(appointments, orders, provider, currency, logger)

	adminEmail := os.Getenv("ADMIN_EMAIL")
	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminEmail == "" || adminPassword == "" {
		logger.Warn("ADMIN_EMAIL/ADMIN_PASSWORD not set, admin login disabled")
	}

	userCtl := controllers.NewUserController(users, appointments, booking, payments, logger)
	doctorCtl := controllers.NewDoctorController(doctors, appointments, booking, dashboard, cache, logger)
	adminCtl := controllers.NewAdminController(users, doctors, appointments, booking, dashboard, cache, logger,
		adminEmail, adminPassword)

	r := routes.Setup(userCtl, doctorCtl, adminCtl)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	logger.Info("server starting", zap.String("port", port))
	if err := r.Run(":" + port); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
