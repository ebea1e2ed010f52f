package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"driver-montblanc/internal/data/entity"

	"go.uber.org/zap"
)

const telegramAPIBase = "https://api.telegram.org"

// httpClient is shared by all Telegram requests; the timeout guards against
// stalled connections while context cancellation is still honoured via
// NewRequestWithContext.
var httpClient = &http.Client{Timeout: 15 * time.Second}

type sendMessageRequest struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode"`
}

type telegramNotifier struct {
	apiBase  string
	botToken string
	chatID   string
	log      *zap.Logger
}

// NewTelegramNotifier dispatches booking summaries to the operator chat via
// the Telegram Bot API.
func NewTelegramNotifier(botToken, chatID string, log *zap.Logger) Notifier {
	return &telegramNotifier{
		apiBase:  telegramAPIBase,
		botToken: botToken,
		chatID:   chatID,
		log:      log.With(zap.String("gateway", "telegram")),
	}
}

func (n *telegramNotifier) Notify(ctx context.Context, session *entity.BookingSession) bool {
	body, err := json.Marshal(sendMessageRequest{
		ChatID:    n.chatID,
		Text:      FormatBookingMessage(session),
		ParseMode: "Markdown",
	})
	if err != nil {
		n.log.Error("Failed to marshal notification", zap.Error(err))
		return false
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", n.apiBase, n.botToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		n.log.Error("Failed to build notification request", zap.Error(err))
		return false
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := httpClient.Do(req)
	if err != nil {
		n.log.Error("Notification delivery failed", zap.Error(err))
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		n.log.Error("Telegram API rejected notification",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", respBody),
		)
		return false
	}

	n.log.Info("Operator notified",
		zap.String("session_id", session.ID.String()),
		zap.String("reference", session.Reference),
	)
	return true
}

// FormatBookingMessage renders the operator summary: amount, payment token
// reference, client identity, outbound trip, optional return leg and the
// free-text extras. Markdown, laid out for reading on a phone.
func FormatBookingMessage(session *entity.BookingSession) string {
	trip := session.Trip
	client := session.Client
	estimate := session.Estimate

	var b strings.Builder
	b.WriteString("🚖 *NOUVELLE RÉSERVATION PAYÉE* 🚖\n")
	b.WriteString("--------------------------------\n")
	fmt.Fprintf(&b, "💰 *Montant : %d €*\n", estimate.Amount)
	fmt.Fprintf(&b, "💳 ID Stripe : `%s`\n", session.PaymentToken)
	fmt.Fprintf(&b, "🎫 Référence : %s\n", session.Reference)
	b.WriteString("--------------------------------\n\n")

	b.WriteString("👤 *CLIENT*\n")
	fmt.Fprintf(&b, "👤 Nom : %s %s\n", client.FirstName, client.LastName)
	fmt.Fprintf(&b, "📞 Tel : %s\n", client.Phone)
	fmt.Fprintf(&b, "📧 Email : %s\n\n", client.Email)

	b.WriteString("📍 *TRAJET ALLER*\n")
	fmt.Fprintf(&b, "🚩 Départ : %s\n", trip.Pickup)
	fmt.Fprintf(&b, "🏁 Arrivée : %s\n", trip.Dropoff)
	fmt.Fprintf(&b, "📅 Date : %s\n", FormatDateFR(trip.Date))
	fmt.Fprintf(&b, "🕒 Heure : %s\n", trip.Time)
	fmt.Fprintf(&b, "👥 Pax : %d\n", trip.Passengers)
	fmt.Fprintf(&b, "🚗 Véhicule : %s\n\n", VehicleLabelFR(trip.Vehicle))

	if trip.RoundTrip {
		b.WriteString("🔄 *TRAJET RETOUR*\n")
		fmt.Fprintf(&b, "📅 Date : %s\n", FormatDateFR(trip.ReturnDate))
		fmt.Fprintf(&b, "🕒 Heure : %s\n\n", trip.ReturnTime)
	} else {
		b.WriteString("🚫 Pas de retour\n\n")
	}

	b.WriteString("ℹ️ *INFOS COMPLÉMENTAIRES*\n")
	fmt.Fprintf(&b, "🏠 Adresse précise : %s\n", client.PickupAddress)
	fmt.Fprintf(&b, "✈️ Vol : %s\n", orDefault(client.FlightNumber, "Non renseigné"))
	fmt.Fprintf(&b, "💬 Notes : %s\n\n", orDefault(client.Comments, "Aucune"))

	b.WriteString("--------------------------------\n")
	b.WriteString("✅ _Paiement validé via Stripe_")
	return b.String()
}

// FormatDateFR converts a "2006-01-02" date to the French dd/mm/yyyy form,
// leaving unparsable input untouched.
func FormatDateFR(date string) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return t.Format("02/01/2006")
}

func VehicleLabelFR(v entity.VehicleClass) string {
	switch v {
	case entity.VehicleVan:
		return "Van"
	case entity.VehicleLuxury:
		return "Luxe"
	default:
		return "Berline"
	}
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
