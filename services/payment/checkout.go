// File: services/payment/checkout.go
package payment

import (
	"context"
	"fmt"

	"uprocket/models"
	"uprocket/utils"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
	"go.uber.org/zap"
)

// CheckoutService creates the payment intent for a held pre-booking. The
// calendar event is only confirmed after this payment succeeds, so a failed
// payment never leaves a confirmed event behind.
type CheckoutService interface {
	CreatePaymentIntent(ctx context.Context, pending models.PendingBooking) (*CheckoutIntent, error)
}

// CheckoutIntent is what the client needs to complete payment.
type CheckoutIntent struct {
	ClientSecret string `json:"client_secret"`
	AmountCents  int64  `json:"amount_cents"`
	Currency     string `json:"currency"`
}

// StripeCheckoutService implements CheckoutService with Stripe payment intents.
type StripeCheckoutService struct {
	Logger *zap.Logger
}

// CreatePaymentIntent prices the pending booking by duration and opens a
// Stripe payment intent tagged with the booking id.
func (s *StripeCheckoutService) CreatePaymentIntent(ctx context.Context, pending models.PendingBooking) (*CheckoutIntent, error) {
	priceUSD, ok := utils.DurationPriceUSD[pending.Duration]
	if !ok {
		return nil, fmt.Errorf("no price for a %d minute consultation", pending.Duration)
	}
	amountCents := priceUSD * 100

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amountCents),
		Currency: stripe.String(string(stripe.CurrencyUSD)),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.AddMetadata("booking_id", pending.BookingID)
	params.AddMetadata("contractor_id", pending.ContractorID)

	intent, err := paymentintent.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment intent: %w", err)
	}

	s.Logger.Info("Opened checkout payment intent",
		zap.String("bookingId", pending.BookingID),
		zap.Int64("amountCents", amountCents))

	return &CheckoutIntent{
		ClientSecret: intent.ClientSecret,
		AmountCents:  amountCents,
		Currency:     string(intent.Currency),
	}, nil
}
