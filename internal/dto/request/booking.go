package request

type TripRequest struct {
	Pickup      string `json:"pickup" validate:"required"`
	Dropoff     string `json:"dropoff" validate:"required"`
	Date        string `json:"date" validate:"required,datetime=2006-01-02"`
	Time        string `json:"time" validate:"required,datetime=15:04"`
	Passengers  int    `json:"passengers" validate:"required,min=1,max=8"`
	VehicleType string `json:"vehicle_type" validate:"required,oneof=sedan van luxury"`
	ReturnTrip  bool   `json:"return_trip"`
	ReturnDate  string `json:"return_date" validate:"required_if=ReturnTrip true,omitempty,datetime=2006-01-02"`
	ReturnTime  string `json:"return_time" validate:"required_if=ReturnTrip true,omitempty,datetime=15:04"`
}

type ClientProfileRequest struct {
	FirstName     string `json:"first_name" validate:"required"`
	LastName      string `json:"last_name" validate:"required"`
	Email         string `json:"email" validate:"required,email"`
	Phone         string `json:"phone" validate:"required"`
	PickupAddress string `json:"pickup_address" validate:"required"`
	FlightNumber  string `json:"flight_number,omitempty" validate:"omitempty,max=10"`
	Comments      string `json:"comments,omitempty" validate:"omitempty,max=500"`
}

// PaymentRequest carries the card data captured by the payment form. It is
// handed to the gateway for tokenization and never logged or stored.
type PaymentRequest struct {
	CardNumber string `json:"card_number" validate:"required,min=12,max=19"`
	ExpMonth   int64  `json:"exp_month" validate:"required,min=1,max=12"`
	ExpYear    int64  `json:"exp_year" validate:"required,min=2000"`
	CVC        string `json:"cvc" validate:"required,min=3,max=4"`
}
