package wire

import (
	"driver-montblanc/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireBooking(r chi.Router, bookingHandler *adaptor.BookingHandler) {
	// POST /api/bookings - Open a new booking session
	r.Post("/api/bookings", bookingHandler.CreateSession)

	r.Route("/api/bookings/{id}", func(r chi.Router) {
		// GET /api/bookings/{id} - Current state of the session
		r.Get("/", bookingHandler.GetSession)

		// POST /api/bookings/{id}/trip - Submit trip details, returns the estimate
		r.Post("/trip", bookingHandler.SubmitTrip)

		// POST /api/bookings/{id}/quote/ai - Advisory AI quote for the stored trip
		r.Post("/quote/ai", bookingHandler.QuoteAI)

		// POST /api/bookings/{id}/client - Submit client contact details
		r.Post("/client", bookingHandler.SubmitClient)

		// POST /api/bookings/{id}/payment - Tokenize the card and confirm
		r.Post("/payment", bookingHandler.ConfirmPayment)

		// POST /api/bookings/{id}/back - Return from the estimate to the trip form
		r.Post("/back", bookingHandler.GoBack)

		// POST /api/bookings/{id}/restart - Discard everything, fresh session
		r.Post("/restart", bookingHandler.Restart)

		// GET /api/bookings/{id}/receipt - Confirmation data for the final screen
		r.Get("/receipt", bookingHandler.GetReceipt)

		// GET /api/bookings/{id}/receipt.pdf - Printable ticket
		r.Get("/receipt.pdf", bookingHandler.GetReceiptPDF)
	})
}
