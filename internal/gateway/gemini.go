package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"driver-montblanc/internal/data/entity"

	"github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

// AIQuote is the advisory estimate composed by the model for trips outside
// the fixed-tariff table. The price is a free-form range ("220-260"), never
// a checkout amount.
type AIQuote struct {
	Price    string `json:"price"`
	Duration string `json:"duration"`
	Distance string `json:"distance"`
	Message  string `json:"message"`
}

// QuoteGenerator produces an advisory quote for a trip request.
type QuoteGenerator interface {
	Quote(ctx context.Context, trip *entity.TripRequest) (*AIQuote, error)
	Close()
}

type geminiQuoter struct {
	client *genai.Client
	model  *genai.GenerativeModel
	log    *zap.Logger
}

func NewGeminiQuoter(ctx context.Context, apiKey string, log *zap.Logger) (QuoteGenerator, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	model := client.GenerativeModel("gemini-2.0-flash")
	// Force JSON output so the quote can be parsed structurally.
	model.ResponseMIMEType = "application/json"
	model.SetTemperature(0.4)

	return &geminiQuoter{
		client: client,
		model:  model,
		log:    log.With(zap.String("gateway", "gemini")),
	}, nil
}

func (q *geminiQuoter) Close() {
	q.client.Close()
}

func (q *geminiQuoter) Quote(ctx context.Context, trip *entity.TripRequest) (*AIQuote, error) {
	resp, err := q.model.GenerateContent(ctx, genai.Text(buildQuotePrompt(trip)))
	if err != nil {
		return nil, fmt.Errorf("gemini generation: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, fmt.Errorf("no response candidates from gemini")
	}

	var text strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			text.WriteString(string(txt))
		}
	}

	var quote AIQuote
	if err := json.Unmarshal([]byte(cleanJSONString(text.String())), &quote); err != nil {
		return nil, fmt.Errorf("parse gemini response: %w", err)
	}

	q.log.Info("AI quote generated",
		zap.String("pickup", trip.Pickup),
		zap.String("dropoff", trip.Dropoff),
	)
	return &quote, nil
}

func buildQuotePrompt(trip *entity.TripRequest) string {
	retour := "NON"
	if trip.RoundTrip {
		retour = fmt.Sprintf("OUI (Le %s à %s)", trip.ReturnDate, trip.ReturnTime)
	}

	return fmt.Sprintf(`Tu es l'IA de réservation pour "Driver Mont Blanc", un service de VTC de luxe dans les Alpes.

Détails de la demande :
- Départ : %s
- Arrivée : %s
- Date : %s à %s
- Retour : %s
- Passagers : %d
- Véhicule : %s

Tâche :
Estime le prix, la durée et la distance pour ce trajet spécifique dans les Alpes.
Si le lieu est ambigu, fais une supposition logique basée sur la région du Mont-Blanc / Genève.
Le prix doit être réaliste pour un service premium (ex: Genève-Chamonix ~200-250€ en Berline).

Réponds en JSON avec les champs :
{"price": "prix estimé sans symbole € (ex: 220-260)", "duration": "durée estimée (ex: 1h 10min)", "distance": "distance estimée (ex: 88 km)", "message": "message court et courtois"}`,
		trip.Pickup, trip.Dropoff, trip.Date, trip.Time, retour, trip.Passengers, trip.Vehicle)
}

// cleanJSONString strips markdown code fences the model sometimes wraps
// around the payload even in JSON mode.
func cleanJSONString(input string) string {
	input = strings.TrimSpace(input)
	input = strings.TrimPrefix(input, "```json")
	input = strings.TrimPrefix(input, "```")
	input = strings.TrimSuffix(input, "```")
	return strings.TrimSpace(input)
}
