package gateway

import (
	"context"

	"driver-montblanc/pkg/utils"

	"go.uber.org/zap"
)

// Set groups the external collaborators of the checkout flow. Fields stay
// nil when the matching credential is absent; the services degrade instead
// of failing at startup.
type Set struct {
	Payment PaymentGateway
	Notify  Notifier
	Travel  TravelEstimator
	Quotes  QuoteGenerator
}

func New(ctx context.Context, config *utils.Config, log *zap.Logger) *Set {
	set := &Set{}

	if config.Stripe.SecretKey != "" {
		set.Payment = NewStripeGateway(config.Stripe.SecretKey, log)
	} else {
		log.Warn("STRIPE_SECRET_KEY not set, payment gateway disabled")
	}

	if config.Telegram.BotToken != "" && config.Telegram.ChatID != "" {
		set.Notify = NewTelegramNotifier(config.Telegram.BotToken, config.Telegram.ChatID, log)
	} else {
		log.Warn("Telegram credentials not set, operator notifications disabled")
	}

	if config.Maps.APIKey != "" {
		travel, err := NewMapsEstimator(config.Maps.APIKey, log)
		if err != nil {
			log.Error("Failed to init maps client, travel estimates disabled", zap.Error(err))
		} else {
			set.Travel = travel
		}
	}

	if config.AI.GeminiKey != "" {
		quotes, err := NewGeminiQuoter(ctx, config.AI.GeminiKey, log)
		if err != nil {
			log.Error("Failed to init gemini client, AI quotes disabled", zap.Error(err))
		} else {
			set.Quotes = quotes
		}
	}

	return set
}

// Close releases gateway clients that hold connections.
func (s *Set) Close() {
	if s.Quotes != nil {
		s.Quotes.Close()
	}
}
