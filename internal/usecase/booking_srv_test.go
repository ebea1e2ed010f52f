package usecase

import (
	"context"
	"testing"
	"time"

	"driver-montblanc/internal/data/entity"
	"driver-montblanc/internal/data/repository"
	"driver-montblanc/internal/dto/request"
	"driver-montblanc/internal/gateway"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakePaymentGateway struct {
	token string
	err   error
	calls int
}

func (f *fakePaymentGateway) Tokenize(ctx context.Context, card gateway.CardInput) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.token, nil
}

type fakeNotifier struct {
	ok    bool
	calls int
	last  *entity.BookingSession
}

func (f *fakeNotifier) Notify(ctx context.Context, session *entity.BookingSession) bool {
	f.calls++
	f.last = session
	return f.ok
}

func newTestBooking(t *testing.T, payment gateway.PaymentGateway, notify gateway.Notifier) BookingService {
	t.Helper()
	repo := repository.NewRepository(time.Hour, zap.NewNop())
	gw := &gateway.Set{Payment: payment, Notify: notify}
	pricing := NewPricingService(repo, gw, zap.NewNop())
	return NewBookingService(repo, pricing, gw, zap.NewNop())
}

func validTrip() *request.TripRequest {
	return &request.TripRequest{
		Pickup:      "Aéroport Genève (GVA)",
		Dropoff:     "Chamonix Mont-Blanc",
		Date:        "2026-03-15",
		Time:        "10:30",
		Passengers:  2,
		VehicleType: "sedan",
	}
}

func validClient() *request.ClientProfileRequest {
	return &request.ClientProfileRequest{
		FirstName:     "Marie",
		LastName:      "Dupont",
		Email:         "marie.dupont@example.com",
		Phone:         "+33612345678",
		PickupAddress: "Terminal 1, porte 4",
		FlightNumber:  "LX1234",
	}
}

func validCard() *request.PaymentRequest {
	return &request.PaymentRequest{
		CardNumber: "4242424242424242",
		ExpMonth:   12,
		ExpYear:    2030,
		CVC:        "123",
	}
}

func TestBookingService_HappyPath(t *testing.T) {
	payment := &fakePaymentGateway{token: "pm_test_123"}
	notify := &fakeNotifier{ok: true}
	svc := newTestBooking(t, payment, notify)
	ctx := context.Background()

	created, err := svc.Create(ctx)
	require.NoError(t, err)
	assert.Equal(t, entity.StepTrip, created.Step)

	afterTrip, err := svc.SubmitTrip(ctx, created.ID, validTrip())
	require.NoError(t, err)
	assert.Equal(t, entity.StepEstimateAndInfo, afterTrip.Step)
	require.NotNil(t, afterTrip.Estimate)
	assert.Equal(t, 220, afterTrip.Estimate.Amount)
	assert.True(t, afterTrip.Estimate.IsFixedTariff)

	afterClient, err := svc.SubmitClient(ctx, created.ID, validClient())
	require.NoError(t, err)
	assert.Equal(t, entity.StepPayment, afterClient.Step)

	receipt, err := svc.ConfirmPayment(ctx, created.ID, validCard())
	require.NoError(t, err)
	assert.Equal(t, 1, payment.calls)
	assert.Equal(t, 1, notify.calls)
	assert.Equal(t, "Marie Dupont", receipt.ClientName)
	assert.Equal(t, 220, receipt.AmountPaid)
	assert.Equal(t, "EUR", receipt.Currency)
	assert.NotEmpty(t, receipt.Reference)
	assert.Equal(t, "Aéroport Genève (GVA)", receipt.Outbound.Pickup)
	assert.Equal(t, "15/03/2026", receipt.Outbound.Date)
	assert.Nil(t, receipt.Return)

	// Session is now confirmed and the receipt stays retrievable
	state, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StepConfirmed, state.Step)

	again, err := svc.Receipt(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, receipt.Reference, again.Reference)
}

func TestBookingService_RoundTripReceiptHasReturnLeg(t *testing.T) {
	payment := &fakePaymentGateway{token: "pm_test_123"}
	svc := newTestBooking(t, payment, &fakeNotifier{ok: true})
	ctx := context.Background()

	created, err := svc.Create(ctx)
	require.NoError(t, err)

	tripReq := validTrip()
	tripReq.ReturnTrip = true
	tripReq.ReturnDate = "2026-03-20"
	tripReq.ReturnTime = "08:00"

	afterTrip, err := svc.SubmitTrip(ctx, created.ID, tripReq)
	require.NoError(t, err)
	assert.Equal(t, 418, afterTrip.Estimate.Amount)

	_, err = svc.SubmitClient(ctx, created.ID, validClient())
	require.NoError(t, err)

	receipt, err := svc.ConfirmPayment(ctx, created.ID, validCard())
	require.NoError(t, err)
	require.NotNil(t, receipt.Return)
	assert.Equal(t, "Chamonix Mont-Blanc", receipt.Return.Pickup)
	assert.Equal(t, "Aéroport Genève (GVA)", receipt.Return.Dropoff)
	assert.Equal(t, "20/03/2026", receipt.Return.Date)
}

func TestBookingService_IllegalTransitions(t *testing.T) {
	svc := newTestBooking(t, &fakePaymentGateway{token: "pm"}, &fakeNotifier{ok: true})
	ctx := context.Background()

	created, err := svc.Create(ctx)
	require.NoError(t, err)

	// Client details before any trip
	_, err = svc.SubmitClient(ctx, created.ID, validClient())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot submit client details")

	// Payment straight from the first step
	_, err = svc.ConfirmPayment(ctx, created.ID, validCard())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot process payment")

	// Back from the first step
	_, err = svc.Back(ctx, created.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot go back")

	// Receipt without a confirmed booking
	_, err = svc.Receipt(ctx, created.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot render receipt")

	// None of the rejected calls moved the session
	state, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StepTrip, state.Step)
}

func TestBookingService_NoResubmitAfterConfirmation(t *testing.T) {
	svc := newTestBooking(t, &fakePaymentGateway{token: "pm"}, &fakeNotifier{ok: true})
	ctx := context.Background()

	created, err := svc.Create(ctx)
	require.NoError(t, err)
	_, err = svc.SubmitTrip(ctx, created.ID, validTrip())
	require.NoError(t, err)
	_, err = svc.SubmitClient(ctx, created.ID, validClient())
	require.NoError(t, err)
	_, err = svc.ConfirmPayment(ctx, created.ID, validCard())
	require.NoError(t, err)

	_, err = svc.SubmitTrip(ctx, created.ID, validTrip())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot submit trip details")

	_, err = svc.ConfirmPayment(ctx, created.ID, validCard())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot process payment")
}

func TestBookingService_DeclinedCardKeepsPaymentStep(t *testing.T) {
	payment := &fakePaymentGateway{err: &gateway.CardError{Message: "Your card was declined."}}
	notify := &fakeNotifier{ok: true}
	svc := newTestBooking(t, payment, notify)
	ctx := context.Background()

	created, err := svc.Create(ctx)
	require.NoError(t, err)
	_, err = svc.SubmitTrip(ctx, created.ID, validTrip())
	require.NoError(t, err)
	_, err = svc.SubmitClient(ctx, created.ID, validClient())
	require.NoError(t, err)

	_, err = svc.ConfirmPayment(ctx, created.ID, validCard())
	require.Error(t, err)

	var cardErr *gateway.CardError
	require.ErrorAs(t, err, &cardErr)
	assert.Equal(t, "Your card was declined.", cardErr.Message)
	assert.Zero(t, notify.calls)

	// The visitor can retry from the same step
	state, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StepPayment, state.Step)

	payment.err = nil
	payment.token = "pm_retry"
	receipt, err := svc.ConfirmPayment(ctx, created.ID, validCard())
	require.NoError(t, err)
	assert.NotEmpty(t, receipt.Reference)
}

func TestBookingService_FailedNotificationStaysConfirmed(t *testing.T) {
	svc := newTestBooking(t, &fakePaymentGateway{token: "pm"}, &fakeNotifier{ok: false})
	ctx := context.Background()

	created, err := svc.Create(ctx)
	require.NoError(t, err)
	_, err = svc.SubmitTrip(ctx, created.ID, validTrip())
	require.NoError(t, err)
	_, err = svc.SubmitClient(ctx, created.ID, validClient())
	require.NoError(t, err)

	receipt, err := svc.ConfirmPayment(ctx, created.ID, validCard())
	require.NoError(t, err)
	assert.NotEmpty(t, receipt.Reference)

	state, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StepConfirmed, state.Step)
}

func TestBookingService_BackDiscardsEstimate(t *testing.T) {
	svc := newTestBooking(t, nil, nil)
	ctx := context.Background()

	created, err := svc.Create(ctx)
	require.NoError(t, err)
	afterTrip, err := svc.SubmitTrip(ctx, created.ID, validTrip())
	require.NoError(t, err)
	require.NotNil(t, afterTrip.Estimate)

	back, err := svc.Back(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StepTrip, back.Step)
	assert.Nil(t, back.Estimate)
	// The trip entries stay prefilled for editing
	require.NotNil(t, back.Trip)
	assert.Equal(t, "Chamonix Mont-Blanc", back.Trip.Dropoff)
}

func TestBookingService_RestartYieldsFreshSession(t *testing.T) {
	svc := newTestBooking(t, &fakePaymentGateway{token: "pm"}, &fakeNotifier{ok: true})
	ctx := context.Background()

	created, err := svc.Create(ctx)
	require.NoError(t, err)
	_, err = svc.SubmitTrip(ctx, created.ID, validTrip())
	require.NoError(t, err)
	_, err = svc.SubmitClient(ctx, created.ID, validClient())
	require.NoError(t, err)
	_, err = svc.ConfirmPayment(ctx, created.ID, validCard())
	require.NoError(t, err)

	fresh, err := svc.Restart(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, fresh.ID)
	assert.Equal(t, entity.StepTrip, fresh.Step)
	assert.Nil(t, fresh.Trip)
	assert.Nil(t, fresh.Estimate)
}

func TestBookingService_UnknownSession(t *testing.T) {
	svc := newTestBooking(t, nil, nil)
	ctx := context.Background()

	_, err := svc.Get(ctx, "9f1c7e1a-0000-4000-8000-000000000000")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")

	_, err = svc.Get(ctx, "not-a-uuid")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid session ID format")
}

func TestBookingService_TripValidation(t *testing.T) {
	svc := newTestBooking(t, nil, nil)
	ctx := context.Background()

	created, err := svc.Create(ctx)
	require.NoError(t, err)

	// Round trip without return date fails validation
	tripReq := validTrip()
	tripReq.ReturnTrip = true

	_, err = svc.SubmitTrip(ctx, created.ID, tripReq)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")

	state, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StepTrip, state.Step)
	assert.Nil(t, state.Trip)
}

func TestBookingService_ReceiptPDF(t *testing.T) {
	svc := newTestBooking(t, &fakePaymentGateway{token: "pm"}, &fakeNotifier{ok: true})
	ctx := context.Background()

	created, err := svc.Create(ctx)
	require.NoError(t, err)
	_, err = svc.SubmitTrip(ctx, created.ID, validTrip())
	require.NoError(t, err)
	_, err = svc.SubmitClient(ctx, created.ID, validClient())
	require.NoError(t, err)
	_, err = svc.ConfirmPayment(ctx, created.ID, validCard())
	require.NoError(t, err)

	pdf, err := svc.ReceiptPDF(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, len(pdf) > 0)
	assert.Equal(t, "%PDF", string(pdf[:4]))
}
