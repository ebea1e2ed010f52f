package usecase

import (
	"bytes"
	"fmt"

	"driver-montblanc/internal/data/entity"
	"driver-montblanc/internal/dto/response"
	"driver-montblanc/internal/gateway"

	"github.com/phpdave11/gofpdf"
)

// buildReceipt flattens a confirmed session into the printable receipt.
// Only called once the session reached the confirmed step, so the trip,
// estimate and client pointers are all set.
func buildReceipt(session *entity.BookingSession) *response.ReceiptResponse {
	trip := session.Trip

	receipt := &response.ReceiptResponse{
		Reference:   session.Reference,
		ClientName:  fmt.Sprintf("%s %s", session.Client.FirstName, session.Client.LastName),
		Email:       session.Client.Email,
		Phone:       session.Client.Phone,
		AmountPaid:  session.Estimate.Amount,
		Currency:    "EUR",
		VehicleType: gateway.VehicleLabelFR(trip.Vehicle),
		Outbound: response.ReceiptLeg{
			Pickup:  trip.Pickup,
			Dropoff: trip.Dropoff,
			Date:    gateway.FormatDateFR(trip.Date),
			Time:    trip.Time,
		},
		ConfirmedAt: *session.ConfirmedAt,
	}

	if trip.RoundTrip {
		receipt.Return = &response.ReceiptLeg{
			Pickup:  trip.Dropoff,
			Dropoff: trip.Pickup,
			Date:    gateway.FormatDateFR(trip.ReturnDate),
			Time:    trip.ReturnTime,
		}
	}

	return receipt
}

// renderReceiptPDF produces the A4 ticket handed to the client after payment.
func renderReceiptPDF(receipt *response.ReceiptResponse) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 20)
	pdf.CellFormat(0, 12, tr("Driver Mont Blanc"), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(0, 8, tr("Confirmation de réservation"), "", 1, "C", false, 0, "")
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, tr(fmt.Sprintf("Référence : %s", receipt.Reference)), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	section := func(title string) {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.SetFillColor(230, 230, 230)
		pdf.CellFormat(0, 7, tr(title), "", 1, "L", true, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		pdf.Ln(1)
	}
	row := func(label, value string) {
		pdf.CellFormat(45, 6, tr(label), "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 6, tr(value), "", 1, "L", false, 0, "")
	}

	section("Client")
	row("Nom", receipt.ClientName)
	row("Email", receipt.Email)
	row("Téléphone", receipt.Phone)
	pdf.Ln(3)

	section("Trajet aller")
	row("Départ", receipt.Outbound.Pickup)
	row("Arrivée", receipt.Outbound.Dropoff)
	row("Date", fmt.Sprintf("%s à %s", receipt.Outbound.Date, receipt.Outbound.Time))
	row("Véhicule", receipt.VehicleType)
	pdf.Ln(3)

	if receipt.Return != nil {
		section("Trajet retour")
		row("Départ", receipt.Return.Pickup)
		row("Arrivée", receipt.Return.Dropoff)
		row("Date", fmt.Sprintf("%s à %s", receipt.Return.Date, receipt.Return.Time))
		pdf.Ln(3)
	}

	section("Paiement")
	row("Montant réglé", fmt.Sprintf("%d %s", receipt.AmountPaid, receipt.Currency))
	row("Confirmé le", receipt.ConfirmedAt.Format("02/01/2006 15:04"))
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "I", 9)
	pdf.CellFormat(0, 6, tr("Merci de votre confiance. À bientôt sur les routes du Mont Blanc."), "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render receipt PDF: %w", err)
	}
	return buf.Bytes(), nil
}
