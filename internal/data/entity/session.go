package entity

import (
	"time"

	"github.com/google/uuid"
)

type Step string

const (
	StepTrip            Step = "TRIP"
	StepEstimateAndInfo Step = "ESTIMATE_AND_INFO"
	StepPayment         Step = "PAYMENT"
	StepConfirmed       Step = "CONFIRMED"
)

type VehicleClass string

const (
	VehicleSedan  VehicleClass = "sedan"
	VehicleVan    VehicleClass = "van"
	VehicleLuxury VehicleClass = "luxury"
)

// TripRequest is the outbound (and optional return) trip as entered in step 1.
// Dates and times keep their wire format ("2006-01-02" / "15:04"); the DTO
// layer validates them before they reach the domain.
type TripRequest struct {
	Pickup     string
	Dropoff    string
	Date       string
	Time       string
	Passengers int
	Vehicle    VehicleClass
	RoundTrip  bool
	ReturnDate string
	ReturnTime string
}

// PriceEstimate is produced once per trip submission and never mutated
// afterwards; a new submission replaces it wholesale.
type PriceEstimate struct {
	Amount        int // EUR, rounded to the nearest unit
	Duration      string
	Distance      string
	Message       string
	IsFixedTariff bool
}

type ClientProfile struct {
	FirstName     string
	LastName      string
	Email         string
	Phone         string
	PickupAddress string
	FlightNumber  string
	Comments      string
}

// BookingSession is the aggregate root of one checkout flow. It lives only in
// the in-memory session store for the duration of one browsing session.
type BookingSession struct {
	ID           uuid.UUID
	Step         Step
	Trip         *TripRequest
	Estimate     *PriceEstimate
	Client       *ClientProfile
	PaymentToken string
	Reference    string
	ConfirmedAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewBookingSession returns a fresh session at the first step.
func NewBookingSession(id uuid.UUID) *BookingSession {
	now := time.Now()
	return &BookingSession{
		ID:        id,
		Step:      StepTrip,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// allowedTransitions captures the checkout step flow. Backward navigation is
// allowed one level only, and only before payment is entered.
var allowedTransitions = map[Step][]Step{
	StepTrip:            {StepEstimateAndInfo},
	StepEstimateAndInfo: {StepPayment, StepTrip},
	StepPayment:         {StepConfirmed},
}

func CanTransition(from, to Step) bool {
	for _, s := range allowedTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Clone returns a deep copy so the session store never hands out aliased
// pointers to concurrent requests.
func (s *BookingSession) Clone() *BookingSession {
	c := *s
	if s.Trip != nil {
		trip := *s.Trip
		c.Trip = &trip
	}
	if s.Estimate != nil {
		est := *s.Estimate
		c.Estimate = &est
	}
	if s.Client != nil {
		client := *s.Client
		c.Client = &client
	}
	if s.ConfirmedAt != nil {
		at := *s.ConfirmedAt
		c.ConfirmedAt = &at
	}
	return &c
}
