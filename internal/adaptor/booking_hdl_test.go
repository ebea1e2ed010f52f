package adaptor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"driver-montblanc/internal/data/repository"
	"driver-montblanc/internal/gateway"
	"driver-montblanc/internal/usecase"
	"driver-montblanc/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubPayment struct {
	err error
}

func (s *stubPayment) Tokenize(ctx context.Context, card gateway.CardInput) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return "pm_test_123", nil
}

func setupTestRouter(t *testing.T, payment gateway.PaymentGateway) *chi.Mux {
	t.Helper()

	repo := repository.NewRepository(time.Hour, zap.NewNop())
	gw := &gateway.Set{Payment: payment}
	service := usecase.NewService(repo, gw, &utils.Config{}, zap.NewNop())
	handler := NewHandler(service, zap.NewNop())

	r := chi.NewRouter()
	r.Get("/api/locations", handler.Catalog.GetLocations)
	r.Post("/api/bookings", handler.Booking.CreateSession)
	r.Route("/api/bookings/{id}", func(r chi.Router) {
		r.Get("/", handler.Booking.GetSession)
		r.Post("/trip", handler.Booking.SubmitTrip)
		r.Post("/client", handler.Booking.SubmitClient)
		r.Post("/payment", handler.Booking.ConfirmPayment)
		r.Post("/back", handler.Booking.GoBack)
		r.Post("/restart", handler.Booking.Restart)
		r.Get("/receipt", handler.Booking.GetReceipt)
		r.Get("/receipt.pdf", handler.Booking.GetReceiptPDF)
	})
	return r
}

func doJSON(t *testing.T, router *chi.Mux, method, url string, payload any) *httptest.ResponseRecorder {
	t.Helper()

	var body *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, url, body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&env))
	return env
}

func createSession(t *testing.T, router *chi.Mux) string {
	t.Helper()

	rec := doJSON(t, router, http.MethodPost, "/api/bookings", nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	var session struct {
		ID string `json:"id"`
	}
	env := decodeEnvelope(t, rec)
	require.NoError(t, json.Unmarshal(env.Data, &session))
	require.NotEmpty(t, session.ID)
	return session.ID
}

func tripPayload() map[string]any {
	return map[string]any{
		"pickup":       "Aéroport Genève (GVA)",
		"dropoff":      "Chamonix Mont-Blanc",
		"date":         "2026-03-15",
		"time":         "10:30",
		"passengers":   2,
		"vehicle_type": "sedan",
	}
}

func clientPayload() map[string]any {
	return map[string]any{
		"first_name":     "Marie",
		"last_name":      "Dupont",
		"email":          "marie.dupont@example.com",
		"phone":          "+33612345678",
		"pickup_address": "Terminal 1, porte 4",
	}
}

func cardPayload() map[string]any {
	return map[string]any{
		"card_number": "4242424242424242",
		"exp_month":   12,
		"exp_year":    2030,
		"cvc":         "123",
	}
}

func TestGetLocations(t *testing.T) {
	router := setupTestRouter(t, &stubPayment{})

	rec := doJSON(t, router, http.MethodGet, "/api/locations", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var data struct {
		Locations []string `json:"locations"`
	}
	env := decodeEnvelope(t, rec)
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.NotEmpty(t, data.Locations)
	assert.Contains(t, data.Locations, "Chamonix Mont-Blanc")
}

func TestCheckoutFlow(t *testing.T) {
	router := setupTestRouter(t, &stubPayment{})
	id := createSession(t, router)
	base := "/api/bookings/" + id

	rec := doJSON(t, router, http.MethodPost, base+"/trip", tripPayload())
	require.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope(t, rec)
	var session struct {
		Step     string `json:"step"`
		Estimate *struct {
			Amount   int    `json:"amount"`
			Currency string `json:"currency"`
		} `json:"estimate"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &session))
	assert.Equal(t, "ESTIMATE_AND_INFO", session.Step)
	require.NotNil(t, session.Estimate)
	assert.Equal(t, 220, session.Estimate.Amount)
	assert.Equal(t, "EUR", session.Estimate.Currency)

	rec = doJSON(t, router, http.MethodPost, base+"/client", clientPayload())
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodPost, base+"/payment", cardPayload())
	require.Equal(t, http.StatusOK, rec.Code)
	env = decodeEnvelope(t, rec)
	var receipt struct {
		Reference  string `json:"reference"`
		AmountPaid int    `json:"amount_paid"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &receipt))
	assert.NotEmpty(t, receipt.Reference)
	assert.Equal(t, 220, receipt.AmountPaid)

	rec = doJSON(t, router, http.MethodGet, base+"/receipt", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodGet, base+"/receipt.pdf", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF")))
}

func TestSubmitTripValidation(t *testing.T) {
	router := setupTestRouter(t, &stubPayment{})
	id := createSession(t, router)

	payload := tripPayload()
	payload["passengers"] = 12

	rec := doJSON(t, router, http.MethodPost, "/api/bookings/"+id+"/trip", payload)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStepConflictReturns409(t *testing.T) {
	router := setupTestRouter(t, &stubPayment{})
	id := createSession(t, router)

	// Client details before the trip was ever submitted
	rec := doJSON(t, router, http.MethodPost, "/api/bookings/"+id+"/client", clientPayload())
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestUnknownSessionReturns404(t *testing.T) {
	router := setupTestRouter(t, &stubPayment{})

	rec := doJSON(t, router, http.MethodGet, "/api/bookings/9f1c7e1a-0000-4000-8000-000000000000", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeclinedCardReturns402(t *testing.T) {
	router := setupTestRouter(t, &stubPayment{err: &gateway.CardError{Message: "Your card was declined."}})
	id := createSession(t, router)
	base := "/api/bookings/" + id

	rec := doJSON(t, router, http.MethodPost, base+"/trip", tripPayload())
	require.Equal(t, http.StatusOK, rec.Code)
	rec = doJSON(t, router, http.MethodPost, base+"/client", clientPayload())
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodPost, base+"/payment", cardPayload())
	assert.Equal(t, http.StatusPaymentRequired, rec.Code)

	env := decodeEnvelope(t, rec)
	assert.Equal(t, "Your card was declined.", env.Message)

	// Session survives the decline at the payment step
	rec = doJSON(t, router, http.MethodGet, base, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var session struct {
		Step string `json:"step"`
	}
	env = decodeEnvelope(t, rec)
	require.NoError(t, json.Unmarshal(env.Data, &session))
	assert.Equal(t, "PAYMENT", session.Step)
}

func TestBackAndRestart(t *testing.T) {
	router := setupTestRouter(t, &stubPayment{})
	id := createSession(t, router)
	base := "/api/bookings/" + id

	rec := doJSON(t, router, http.MethodPost, base+"/trip", tripPayload())
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodPost, base+"/back", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var session struct {
		Step     string          `json:"step"`
		Trip     json.RawMessage `json:"trip"`
		Estimate json.RawMessage `json:"estimate"`
	}
	env := decodeEnvelope(t, rec)
	require.NoError(t, json.Unmarshal(env.Data, &session))
	assert.Equal(t, "TRIP", session.Step)
	assert.NotEmpty(t, session.Trip)
	assert.Empty(t, session.Estimate)

	rec = doJSON(t, router, http.MethodPost, base+"/restart", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	env = decodeEnvelope(t, rec)
	session.Trip, session.Estimate = nil, nil
	require.NoError(t, json.Unmarshal(env.Data, &session))
	assert.Equal(t, "TRIP", session.Step)
	assert.Empty(t, session.Trip)
}

func TestInvalidJSONBody(t *testing.T) {
	router := setupTestRouter(t, &stubPayment{})
	id := createSession(t, router)

	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/api/bookings/%s/trip", id), bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
