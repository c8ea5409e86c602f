package service

import (
	"context"
	"fmt"
	"strconv"

	"care-connect/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PaymentProvider is the slice of the payment gateway this service
// needs: create an order for an amount, and report an order's status
// together with the receipt it was created with.
type PaymentProvider interface {
	CreateOrder(amount float64, currency, receipt string) (orderID string, err error)
	OrderStatus(orderID string) (status, receipt string, err error)
}

// PaymentService maps provider order state onto the appointment ledger.
// The order receipt carries the appointment id, so verification needs
// nothing but the provider's order id.
type PaymentService struct {
	appointments AppointmentStore
	orders       PaymentOrderStore
	provider     PaymentProvider
	currency     string
	logger       *zap.Logger
}

func NewPaymentService(
	appointments AppointmentStore,
	orders PaymentOrderStore,
	provider PaymentProvider,
	currency string,
	logger *zap.Logger,
) *PaymentService {
	return &PaymentService{
		appointments: appointments,
		orders:       orders,
		provider:     provider,
		currency:     currency,
		logger:       logger,
	}
}

// CreateOrder opens a provider order for an active appointment.
func (s *PaymentService) CreateOrder(ctx context.Context, appointmentID uint) (*models.PaymentOrder, error) {
	appointment, err := s.appointments.GetByID(ctx, appointmentID)
	if err != nil {
		return nil, fmt.Errorf("get appointment: %w", err)
	}
	if appointment == nil || appointment.Cancelled {
		return nil, ErrInvalidAppointment
	}

	receipt := strconv.FormatUint(uint64(appointmentID), 10)
	orderID, err := s.provider.CreateOrder(appointment.Amount, s.currency, receipt)
	if err != nil {
		return nil, fmt.Errorf("create provider order: %w", err)
	}

	order := &models.PaymentOrder{
		OrderID:       orderID,
		AppointmentID: appointmentID,
		Amount:        appointment.Amount,
		ReferenceID:   uuid.NewString(),
	}
	if err := s.orders.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("save payment order: %w", err)
	}

	s.logger.Info("payment order created",
		zap.String("order_id", orderID),
		zap.Uint("appointment_id", appointmentID),
		zap.Float64("amount", appointment.Amount),
	)
	return order, nil
}

// VerifyOrder fetches the order from the provider and, if it is paid,
// flags the appointment. The provider's receipt must agree with the
// order record saved at creation time; an order this service never
// opened, a missing or cancelled appointment, all fail with
// ErrInvalidAppointment, and an unpaid order with ErrPaymentFailed.
func (s *PaymentService) VerifyOrder(ctx context.Context, orderID string) error {
	status, receipt, err := s.provider.OrderStatus(orderID)
	if err != nil {
		return fmt.Errorf("fetch provider order: %w", err)
	}

	id, err := strconv.ParseUint(receipt, 10, 64)
	if err != nil {
		return ErrInvalidAppointment
	}

	order, err := s.orders.GetByOrderID(ctx, orderID)
	if err != nil {
		return fmt.Errorf("get payment order: %w", err)
	}
	if order == nil || order.AppointmentID != uint(id) {
		return ErrInvalidAppointment
	}

	appointment, err := s.appointments.GetByID(ctx, uint(id))
	if err != nil {
		return fmt.Errorf("get appointment: %w", err)
	}
	if appointment == nil || appointment.Cancelled {
		return ErrInvalidAppointment
	}

	if status != "paid" {
		return ErrPaymentFailed
	}

	appointment.Payment = true
	if err := s.appointments.Update(ctx, appointment); err != nil {
		return fmt.Errorf("update appointment: %w", err)
	}

	s.logger.Info("payment confirmed",
		zap.String("order_id", orderID),
		zap.Uint("appointment_id", appointment.AppointmentID),
	)
	return nil
}
