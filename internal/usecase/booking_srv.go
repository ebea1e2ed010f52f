package usecase

import (
	"context"
	"fmt"
	"time"

	"driver-montblanc/internal/data/entity"
	"driver-montblanc/internal/data/repository"
	"driver-montblanc/internal/dto/request"
	"driver-montblanc/internal/dto/response"
	"driver-montblanc/internal/gateway"
	"driver-montblanc/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BookingService interface {
	// Session lifecycle
	Create(ctx context.Context) (*response.SessionResponse, error)
	Get(ctx context.Context, sessionID string) (*response.SessionResponse, error)
	Restart(ctx context.Context, sessionID string) (*response.SessionResponse, error)

	// Checkout steps
	SubmitTrip(ctx context.Context, sessionID string, req *request.TripRequest) (*response.SessionResponse, error)
	SubmitClient(ctx context.Context, sessionID string, req *request.ClientProfileRequest) (*response.SessionResponse, error)
	ConfirmPayment(ctx context.Context, sessionID string, req *request.PaymentRequest) (*response.ReceiptResponse, error)
	Back(ctx context.Context, sessionID string) (*response.SessionResponse, error)

	// Quotes and receipts
	QuoteAI(ctx context.Context, sessionID string) (*response.AIQuoteResponse, error)
	Receipt(ctx context.Context, sessionID string) (*response.ReceiptResponse, error)
	ReceiptPDF(ctx context.Context, sessionID string) ([]byte, error)
}

type bookingService struct {
	repo    *repository.Repository
	pricing PricingService
	payment gateway.PaymentGateway
	notify  gateway.Notifier
	log     *zap.Logger
}

func NewBookingService(repo *repository.Repository, pricing PricingService, gw *gateway.Set, log *zap.Logger) BookingService {
	return &bookingService{
		repo:    repo,
		pricing: pricing,
		payment: gw.Payment,
		notify:  gw.Notify,
		log:     log.With(zap.String("service", "booking")),
	}
}

func (s *bookingService) Create(ctx context.Context) (*response.SessionResponse, error) {
	session := entity.NewBookingSession(utils.GenerateSessionID())

	if err := s.repo.Session.Create(ctx, session); err != nil {
		s.log.Error("Failed to create session", zap.Error(err))
		return nil, fmt.Errorf("create session: %w", err)
	}

	s.log.Info("Booking session created", zap.String("session_id", session.ID.String()))
	return response.SessionToResponse(session), nil
}

func (s *bookingService) Get(ctx context.Context, sessionID string) (*response.SessionResponse, error) {
	session, err := s.find(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return response.SessionToResponse(session), nil
}

// Restart discards the whole session and hands back a fresh one at the first
// step, keeping the id so the visitor's tab stays bound to it.
func (s *bookingService) Restart(ctx context.Context, sessionID string) (*response.SessionResponse, error) {
	id, err := uuid.Parse(sessionID)
	if err != nil {
		return nil, fmt.Errorf("invalid session ID format %s: %w", sessionID, err)
	}

	_ = s.repo.Session.Delete(ctx, id)

	session := entity.NewBookingSession(id)
	if err := s.repo.Session.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("restart session: %w", err)
	}

	s.log.Info("Booking session restarted", zap.String("session_id", sessionID))
	return response.SessionToResponse(session), nil
}

func (s *bookingService) SubmitTrip(ctx context.Context, sessionID string, req *request.TripRequest) (*response.SessionResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Trip submission validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	session, err := s.find(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if !entity.CanTransition(session.Step, entity.StepEstimateAndInfo) {
		return nil, fmt.Errorf("cannot submit trip details at step %s", session.Step)
	}

	trip := &entity.TripRequest{
		Pickup:     req.Pickup,
		Dropoff:    req.Dropoff,
		Date:       req.Date,
		Time:       req.Time,
		Passengers: req.Passengers,
		Vehicle:    entity.VehicleClass(req.VehicleType),
		RoundTrip:  req.ReturnTrip,
	}
	// Return fields only exist on a round trip.
	if req.ReturnTrip {
		trip.ReturnDate = req.ReturnDate
		trip.ReturnTime = req.ReturnTime
	}

	// The engine cannot fail; an unknown route yields an approximate fare.
	estimate := s.pricing.Estimate(ctx, trip)

	session.Trip = trip
	session.Estimate = estimate
	session.Step = entity.StepEstimateAndInfo
	session.UpdatedAt = time.Now()

	if err := s.repo.Session.Update(ctx, session); err != nil {
		return nil, fmt.Errorf("store trip: %w", err)
	}

	return response.SessionToResponse(session), nil
}

func (s *bookingService) SubmitClient(ctx context.Context, sessionID string, req *request.ClientProfileRequest) (*response.SessionResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Client profile validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	session, err := s.find(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if !entity.CanTransition(session.Step, entity.StepPayment) {
		return nil, fmt.Errorf("cannot submit client details at step %s", session.Step)
	}
	if session.Estimate == nil {
		// Guarded by the step machine already; kept as an invariant check.
		return nil, fmt.Errorf("cannot submit client details without a price estimate")
	}

	session.Client = &entity.ClientProfile{
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Email:         req.Email,
		Phone:         req.Phone,
		PickupAddress: req.PickupAddress,
		FlightNumber:  req.FlightNumber,
		Comments:      req.Comments,
	}
	session.Step = entity.StepPayment
	session.UpdatedAt = time.Now()

	if err := s.repo.Session.Update(ctx, session); err != nil {
		return nil, fmt.Errorf("store client profile: %w", err)
	}

	return response.SessionToResponse(session), nil
}

// ConfirmPayment tokenizes the card, commits the CONFIRMED transition and
// then dispatches the operator notification. Notification failure is logged
// and swallowed: the payment already succeeded at the gateway, so it must
// never roll the confirmation back.
func (s *bookingService) ConfirmPayment(ctx context.Context, sessionID string, req *request.PaymentRequest) (*response.ReceiptResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Payment validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	session, err := s.find(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if !entity.CanTransition(session.Step, entity.StepConfirmed) {
		return nil, fmt.Errorf("cannot process payment at step %s", session.Step)
	}
	if s.payment == nil {
		return nil, fmt.Errorf("payment gateway not configured")
	}

	token, err := s.payment.Tokenize(ctx, gateway.CardInput{
		Number:   req.CardNumber,
		ExpMonth: req.ExpMonth,
		ExpYear:  req.ExpYear,
		CVC:      req.CVC,
	})
	if err != nil {
		// Card validation errors pass through so the visitor can retry;
		// the session stays at the payment step.
		return nil, err
	}

	now := time.Now()
	session.PaymentToken = token
	session.Reference = utils.GenerateBookingRef()
	session.ConfirmedAt = &now
	session.Step = entity.StepConfirmed
	session.UpdatedAt = now

	if err := s.repo.Session.Update(ctx, session); err != nil {
		return nil, fmt.Errorf("store confirmation: %w", err)
	}

	s.log.Info("Booking confirmed",
		zap.String("session_id", sessionID),
		zap.String("reference", session.Reference),
		zap.Int("amount", session.Estimate.Amount),
	)

	if s.notify == nil {
		s.log.Warn("No notifier configured, operator not informed",
			zap.String("reference", session.Reference))
	} else if !s.notify.Notify(ctx, session) {
		s.log.Warn("Operator notification failed, booking stays confirmed",
			zap.String("reference", session.Reference))
	}

	return buildReceipt(session), nil
}

// Back returns from the estimate step to the trip step, discarding the
// stored estimate. One level only, and never once payment is entered.
func (s *bookingService) Back(ctx context.Context, sessionID string) (*response.SessionResponse, error) {
	session, err := s.find(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if !entity.CanTransition(session.Step, entity.StepTrip) {
		return nil, fmt.Errorf("cannot go back at step %s", session.Step)
	}

	session.Estimate = nil
	session.Step = entity.StepTrip
	session.UpdatedAt = time.Now()

	if err := s.repo.Session.Update(ctx, session); err != nil {
		return nil, fmt.Errorf("store step change: %w", err)
	}

	return response.SessionToResponse(session), nil
}

func (s *bookingService) QuoteAI(ctx context.Context, sessionID string) (*response.AIQuoteResponse, error) {
	session, err := s.find(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Trip == nil {
		return nil, fmt.Errorf("cannot quote a session without trip details")
	}

	return s.pricing.QuoteAI(ctx, session.Trip), nil
}

func (s *bookingService) Receipt(ctx context.Context, sessionID string) (*response.ReceiptResponse, error) {
	session, err := s.find(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Step != entity.StepConfirmed {
		return nil, fmt.Errorf("cannot render receipt at step %s", session.Step)
	}

	return buildReceipt(session), nil
}

func (s *bookingService) ReceiptPDF(ctx context.Context, sessionID string) ([]byte, error) {
	receipt, err := s.Receipt(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return renderReceiptPDF(receipt)
}

func (s *bookingService) find(ctx context.Context, sessionID string) (*entity.BookingSession, error) {
	id, err := uuid.Parse(sessionID)
	if err != nil {
		return nil, fmt.Errorf("invalid session ID format %s: %w", sessionID, err)
	}

	session, err := s.repo.Session.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return session, nil
}
