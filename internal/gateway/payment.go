package gateway

import (
	"context"
	"errors"
	"fmt"

	"driver-montblanc/internal/data/entity"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
	"go.uber.org/zap"
)

// CardInput is the raw card data captured by the payment form. It is passed
// straight to the gateway for tokenization and never stored.
type CardInput struct {
	Number   string
	ExpMonth int64
	ExpYear  int64
	CVC      string
}

// CardError carries a reason the visitor can be shown inline (invalid
// number, expired card, decline). The session must not advance on it.
type CardError struct {
	Message string
}

func (e *CardError) Error() string {
	return fmt.Sprintf("card declined: %s", e.Message)
}

// PaymentGateway converts raw card input into an opaque payment-method
// token. Tokenization only; the charge itself is settled elsewhere.
type PaymentGateway interface {
	Tokenize(ctx context.Context, card CardInput) (string, error)
}

type stripeGateway struct {
	sc  *client.API
	log *zap.Logger
}

func NewStripeGateway(secretKey string, log *zap.Logger) PaymentGateway {
	sc := &client.API{}
	sc.Init(secretKey, nil)
	return &stripeGateway{
		sc:  sc,
		log: log.With(zap.String("gateway", "stripe")),
	}
}

func (g *stripeGateway) Tokenize(ctx context.Context, card CardInput) (string, error) {
	params := &stripe.PaymentMethodParams{
		Type: stripe.String(string(stripe.PaymentMethodTypeCard)),
		Card: &stripe.PaymentMethodCardParams{
			Number:   stripe.String(card.Number),
			ExpMonth: stripe.Int64(card.ExpMonth),
			ExpYear:  stripe.Int64(card.ExpYear),
			CVC:      stripe.String(card.CVC),
		},
	}
	params.Context = ctx

	pm, err := g.sc.PaymentMethods.New(params)
	if err != nil {
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) {
			g.log.Warn("Card tokenization rejected",
				zap.String("code", string(stripeErr.Code)),
				zap.String("type", string(stripeErr.Type)),
			)
			return "", &CardError{Message: stripeErr.Msg}
		}

		g.log.Error("Card tokenization failed", zap.Error(err))
		return "", fmt.Errorf("tokenize card: %w", err)
	}

	g.log.Info("Card tokenized", zap.String("payment_method_id", pm.ID))
	return pm.ID, nil
}

// Notifier delivers the completed booking to the operator channel.
// Implementations never return an error: delivery failure is reported as
// false and must not block the confirmation.
type Notifier interface {
	Notify(ctx context.Context, session *entity.BookingSession) bool
}
