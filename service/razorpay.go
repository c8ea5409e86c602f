package service

import (
	"errors"

	"github.com/razorpay/razorpay-go"
)

// RazorpayProvider adapts the Razorpay client to PaymentProvider.
type RazorpayProvider struct {
	client *razorpay.Client
}

func NewRazorpayProvider(keyID, keySecret string) *RazorpayProvider {
	return &RazorpayProvider{client: razorpay.NewClient(keyID, keySecret)}
}

func (p *RazorpayProvider) CreateOrder(amount float64, currency, receipt string) (string, error) {
	// Razorpay takes the amount in the currency's smallest unit.
	data := map[string]interface{}{
		"amount":   int64(amount * 100),
		"currency": currency,
		"receipt":  receipt,
	}
	body, err := p.client.Order.Create(data, nil)
	if err != nil {
		return "", err
	}
	orderID, ok := body["id"].(string)
	if !ok {
		return "", errors.New("razorpay order response has no id")
	}
	return orderID, nil
}

func (p *RazorpayProvider) OrderStatus(orderID string) (string, string, error) {
	body, err := p.client.Order.Fetch(orderID, nil, nil)
	if err != nil {
		return "", "", err
	}
	status, _ := body["status"].(string)
	receipt, _ := body["receipt"].(string)
	return status, receipt, nil
}
