package response

import (
	"time"

	"driver-montblanc/internal/data/entity"
)

type EstimateResponse struct {
	Amount        int    `json:"amount"`
	Currency      string `json:"currency"`
	Duration      string `json:"duration"`
	Distance      string `json:"distance"`
	Message       string `json:"message"`
	IsFixedTariff bool   `json:"is_fixed_tariff"`
}

type TripResponse struct {
	Pickup      string `json:"pickup"`
	Dropoff     string `json:"dropoff"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Passengers  int    `json:"passengers"`
	VehicleType string `json:"vehicle_type"`
	ReturnTrip  bool   `json:"return_trip"`
	ReturnDate  string `json:"return_date,omitempty"`
	ReturnTime  string `json:"return_time,omitempty"`
}

type SessionResponse struct {
	ID        string            `json:"id"`
	Step      entity.Step       `json:"step"`
	Trip      *TripResponse     `json:"trip,omitempty"`
	Estimate  *EstimateResponse `json:"estimate,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// AIQuoteResponse is advisory only: the price is a free-form range or the
// "Sur devis" sentinel, never an amount the checkout charges.
type AIQuoteResponse struct {
	Price    string `json:"price"`
	Duration string `json:"duration"`
	Distance string `json:"distance"`
	Message  string `json:"message"`
}

// ReceiptLeg is one leg of the trip as printed on the ticket, with the date
// already in French form (dd/mm/yyyy).
type ReceiptLeg struct {
	Pickup  string `json:"pickup"`
	Dropoff string `json:"dropoff"`
	Date    string `json:"date"`
	Time    string `json:"time"`
}

type ReceiptResponse struct {
	Reference   string      `json:"reference"`
	ClientName  string      `json:"client_name"`
	Email       string      `json:"email"`
	Phone       string      `json:"phone"`
	AmountPaid  int         `json:"amount_paid"`
	Currency    string      `json:"currency"`
	VehicleType string      `json:"vehicle_type"`
	Outbound    ReceiptLeg  `json:"outbound"`
	Return      *ReceiptLeg `json:"return,omitempty"`
	ConfirmedAt time.Time   `json:"confirmed_at"`
}

// Helper converters

func EstimateToResponse(est *entity.PriceEstimate) *EstimateResponse {
	if est == nil {
		return nil
	}
	return &EstimateResponse{
		Amount:        est.Amount,
		Currency:      "EUR",
		Duration:      est.Duration,
		Distance:      est.Distance,
		Message:       est.Message,
		IsFixedTariff: est.IsFixedTariff,
	}
}

func TripToResponse(trip *entity.TripRequest) *TripResponse {
	if trip == nil {
		return nil
	}
	return &TripResponse{
		Pickup:      trip.Pickup,
		Dropoff:     trip.Dropoff,
		Date:        trip.Date,
		Time:        trip.Time,
		Passengers:  trip.Passengers,
		VehicleType: string(trip.Vehicle),
		ReturnTrip:  trip.RoundTrip,
		ReturnDate:  trip.ReturnDate,
		ReturnTime:  trip.ReturnTime,
	}
}

func SessionToResponse(session *entity.BookingSession) *SessionResponse {
	return &SessionResponse{
		ID:        session.ID.String(),
		Step:      session.Step,
		Trip:      TripToResponse(session.Trip),
		Estimate:  EstimateToResponse(session.Estimate),
		CreatedAt: session.CreatedAt,
		UpdatedAt: session.UpdatedAt,
	}
}
