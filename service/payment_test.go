package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"care-connect/models"
	"care-connect/repository"
	"care-connect/service"
)

// fakeProvider records created orders and serves a fixed status.
type fakeProvider struct {
	status   string
	receipts map[string]string
	nextID   int
}

func newFakeProvider(status string) *fakeProvider {
	return &fakeProvider{status: status, receipts: make(map[string]string)}
}

func (p *fakeProvider) CreateOrder(amount float64, currency, receipt string) (string, error) {
	p.nextID++
	orderID := "order_" + string(rune('A'+p.nextID))
	p.receipts[orderID] = receipt
	return orderID, nil
}

func (p *fakeProvider) OrderStatus(orderID string) (string, string, error) {
	return p.status, p.receipts[orderID], nil
}

func newPaymentFixture(t *testing.T, status string) (*service.PaymentService, *repository.MemoryStore, *fakeProvider) {
	t.Helper()
	store := repository.NewMemoryStore()
	provider := newFakeProvider(status)
	payments := service.NewPaymentService(store.Appointments(), store.Orders(), provider, "INR", zap.NewNop())
	return payments, store, provider
}

func TestCreateOrder(t *testing.T) {
	payments, store, _ := newPaymentFixture(t, "created")
	ctx := context.Background()

	require.NoError(t, store.Appointments().Create(ctx, &models.Appointment{UserID: 1, DocID: 1, Amount: 50}))

	order, err := payments.CreateOrder(ctx, 1)
	require.NoError(t, err)

	assert.Equal(t, uint(1), order.AppointmentID)
	assert.Equal(t, 50.0, order.Amount)
	assert.NotEmpty(t, order.OrderID)
	assert.NotEmpty(t, order.ReferenceID)

	stored, err := store.Orders().GetByOrderID(ctx, order.OrderID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, order.AppointmentID, stored.AppointmentID)
}

func TestCreateOrderRejectsCancelledOrMissing(t *testing.T) {
	payments, store, _ := newPaymentFixture(t, "created")
	ctx := context.Background()

	require.NoError(t, store.Appointments().Create(ctx, &models.Appointment{UserID: 1, DocID: 1, Amount: 50, Cancelled: true}))

	_, err := payments.CreateOrder(ctx, 1)
	assert.ErrorIs(t, err, service.ErrInvalidAppointment)

	_, err = payments.CreateOrder(ctx, 99)
	assert.ErrorIs(t, err, service.ErrInvalidAppointment)
}

func TestVerifyOrderPaid(t *testing.T) {
	payments, store, _ := newPaymentFixture(t, "paid")
	ctx := context.Background()

	require.NoError(t, store.Appointments().Create(ctx, &models.Appointment{UserID: 1, DocID: 1, Amount: 50}))

	order, err := payments.CreateOrder(ctx, 1)
	require.NoError(t, err)

	require.NoError(t, payments.VerifyOrder(ctx, order.OrderID))

	appointment, err := store.Appointments().GetByID(ctx, 1)
	require.NoError(t, err)
	assert.True(t, appointment.Payment)
}

func TestVerifyOrderUnpaid(t *testing.T) {
	payments, store, _ := newPaymentFixture(t, "created")
	ctx := context.Background()

	require.NoError(t, store.Appointments().Create(ctx, &models.Appointment{UserID: 1, DocID: 1, Amount: 50}))

	order, err := payments.CreateOrder(ctx, 1)
	require.NoError(t, err)

	assert.ErrorIs(t, payments.VerifyOrder(ctx, order.OrderID), service.ErrPaymentFailed)

	appointment, err := store.Appointments().GetByID(ctx, 1)
	require.NoError(t, err)
	assert.False(t, appointment.Payment)
}

func TestVerifyOrderCancelledAppointment(t *testing.T) {
	payments, store, _ := newPaymentFixture(t, "paid")
	ctx := context.Background()

	require.NoError(t, store.Appointments().Create(ctx, &models.Appointment{UserID: 1, DocID: 1, Amount: 50}))

	order, err := payments.CreateOrder(ctx, 1)
	require.NoError(t, err)

	appointment, err := store.Appointments().GetByID(ctx, 1)
	require.NoError(t, err)
	appointment.Cancelled = true
	require.NoError(t, store.Appointments().Update(ctx, appointment))

	assert.ErrorIs(t, payments.VerifyOrder(ctx, order.OrderID), service.ErrInvalidAppointment)
}

func TestVerifyOrderUnknownOrder(t *testing.T) {
	payments, store, provider := newPaymentFixture(t, "paid")
	ctx := context.Background()

	require.NoError(t, store.Appointments().Create(ctx, &models.Appointment{UserID: 1, DocID: 1, Amount: 50}))

	// the provider reports a plausible receipt, but this service never
	// opened the order, so verification must refuse it
	provider.receipts["order_X"] = "1"
	assert.ErrorIs(t, payments.VerifyOrder(ctx, "order_X"), service.ErrInvalidAppointment)

	appointment, err := store.Appointments().GetByID(ctx, 1)
	require.NoError(t, err)
	assert.False(t, appointment.Payment)
}

func TestVerifyOrderBadReceipt(t *testing.T) {
	payments, _, provider := newPaymentFixture(t, "paid")
	ctx := context.Background()

	provider.receipts["order_X"] = "not-a-number"
	assert.ErrorIs(t, payments.VerifyOrder(ctx, "order_X"), service.ErrInvalidAppointment)
}
