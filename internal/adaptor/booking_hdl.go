package adaptor

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"driver-montblanc/internal/dto/request"
	"driver-montblanc/internal/gateway"
	"driver-montblanc/internal/usecase"
	"driver-montblanc/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type BookingHandler struct {
	service usecase.BookingService
	log     *zap.Logger
}

func NewBookingHandler(service usecase.BookingService, log *zap.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		log:     log.With(zap.String("handler", "booking")),
	}
}

// CreateSession handles POST /api/bookings
func (h *BookingHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	session, err := h.service.Create(r.Context())
	if err != nil {
		h.handleServiceError(w, err, "create session")
		return
	}

	utils.ResponseCreated(w, "success", session)
}

// GetSession handles GET /api/bookings/{id}
func (h *BookingHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	if sessionID == "" {
		utils.ResponseBadRequest(w, "Session ID is required", nil)
		return
	}

	session, err := h.service.Get(r.Context(), sessionID)
	if err != nil {
		h.handleServiceError(w, err, "get session")
		return
	}

	utils.ResponseSuccess(w, "success", session)
}

// SubmitTrip handles POST /api/bookings/{id}/trip
func (h *BookingHandler) SubmitTrip(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")

	var req request.TripRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	// Validate request
	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	session, err := h.service.SubmitTrip(r.Context(), sessionID, &req)
	if err != nil {
		h.handleServiceError(w, err, "submit trip")
		return
	}

	utils.ResponseSuccess(w, "success", session)
}

// SubmitClient handles POST /api/bookings/{id}/client
func (h *BookingHandler) SubmitClient(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")

	var req request.ClientProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	// Validate request
	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	session, err := h.service.SubmitClient(r.Context(), sessionID, &req)
	if err != nil {
		h.handleServiceError(w, err, "submit client")
		return
	}

	utils.ResponseSuccess(w, "success", session)
}

// ConfirmPayment handles POST /api/bookings/{id}/payment
func (h *BookingHandler) ConfirmPayment(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")

	var req request.PaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	// Validate request
	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	receipt, err := h.service.ConfirmPayment(r.Context(), sessionID, &req)
	if err != nil {
		h.handleServiceError(w, err, "confirm payment")
		return
	}

	utils.ResponseSuccess(w, "success", receipt)
}

// GoBack handles POST /api/bookings/{id}/back
func (h *BookingHandler) GoBack(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")

	session, err := h.service.Back(r.Context(), sessionID)
	if err != nil {
		h.handleServiceError(w, err, "go back")
		return
	}

	utils.ResponseSuccess(w, "success", session)
}

// Restart handles POST /api/bookings/{id}/restart
func (h *BookingHandler) Restart(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")

	session, err := h.service.Restart(r.Context(), sessionID)
	if err != nil {
		h.handleServiceError(w, err, "restart session")
		return
	}

	utils.ResponseSuccess(w, "success", session)
}

// QuoteAI handles POST /api/bookings/{id}/quote/ai
func (h *BookingHandler) QuoteAI(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")

	quote, err := h.service.QuoteAI(r.Context(), sessionID)
	if err != nil {
		h.handleServiceError(w, err, "AI quote")
		return
	}

	utils.ResponseSuccess(w, "success", quote)
}

// GetReceipt handles GET /api/bookings/{id}/receipt
func (h *BookingHandler) GetReceipt(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")

	receipt, err := h.service.Receipt(r.Context(), sessionID)
	if err != nil {
		h.handleServiceError(w, err, "get receipt")
		return
	}

	utils.ResponseSuccess(w, "success", receipt)
}

// GetReceiptPDF handles GET /api/bookings/{id}/receipt.pdf
func (h *BookingHandler) GetReceiptPDF(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")

	pdf, err := h.service.ReceiptPDF(r.Context(), sessionID)
	if err != nil {
		h.handleServiceError(w, err, "get receipt PDF")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="reservation-%s.pdf"`, sessionID))
	w.WriteHeader(http.StatusOK)
	w.Write(pdf)
}

// handleServiceError maps service errors onto HTTP statuses
func (h *BookingHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	// Declined or rejected cards carry a dedicated error type
	var cardErr *gateway.CardError
	if errors.As(err, &cardErr) {
		h.log.Warn(operation+" failed - card declined",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponsePaymentRequired(w, cardErr.Message)
		return
	}

	errMsg := err.Error()

	switch {
	case strings.Contains(errMsg, "not found"):
		h.log.Warn(operation+" failed - not found",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseNotFound(w, errMsg)

	case strings.Contains(errMsg, "validation failed"):
		h.log.Warn(operation+" validation failed",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, errMsg, nil)

	case strings.Contains(errMsg, "invalid"):
		h.log.Warn("Invalid input for "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, errMsg, nil)

	case strings.Contains(errMsg, "cannot"):
		h.log.Warn(operation+" failed - invalid state",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseConflict(w, errMsg)

	default:
		h.log.Error(operation+" failed",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
