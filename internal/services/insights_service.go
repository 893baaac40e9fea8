package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"auro-gold/internal/models"
)

const insightsFallback = "Our AI market analyst is currently analyzing high-frequency data. Please check back in a moment."

// InsightsService generates natural-language market commentary from the
// current quote and history. It degrades gracefully: every failure path
// returns a static fallback string, never an error.
type InsightsService struct {
	client *genai.Client
	model  string
	prices *PriceService
}

// NewInsightsService creates a new InsightsService. An empty API key yields
// a degraded service that always serves the fallback text.
func NewInsightsService(apiKey, model string, prices *PriceService) (*InsightsService, error) {
	svc := &InsightsService{model: model, prices: prices}
	if apiKey == "" {
		log.Println("GEMINI_API_KEY not set, market insights will serve fallback text")
		return svc, nil
	}

	client, err := genai.NewClient(context.Background(), option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	svc.client = client
	return svc, nil
}

// MarketInsights returns commentary on the current market
func (s *InsightsService) MarketInsights(ctx context.Context) string {
	if s.client == nil {
		return insightsFallback
	}

	quote, err := s.prices.Quote()
	if err != nil {
		log.Printf("Insights: failed to load quote: %v", err)
		return insightsFallback
	}
	history, err := s.prices.History()
	if err != nil {
		log.Printf("Insights: failed to load history: %v", err)
		return insightsFallback
	}

	m := s.client.GenerativeModel(s.model)
	m.SetTemperature(0.3)
	m.SetMaxOutputTokens(512)

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	resp, err := m.GenerateContent(ctx, genai.Text(s.buildPrompt(quote, history)))
	if err != nil {
		log.Printf("Insights: Gemini call failed: %v", err)
		return insightsFallback
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return insightsFallback
	}

	text := strings.TrimSpace(fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0]))
	if text == "" {
		return insightsFallback
	}
	return text
}

func (s *InsightsService) buildPrompt(quote *models.GoldPrice, history []models.PricePoint) string {
	var b strings.Builder
	for _, h := range history {
		fmt.Fprintf(&b, "%s: ৳%s\n", h.Date, h.Price.StringFixed(2))
	}

	return fmt.Sprintf(`You are a senior financial analyst for Auro, a premium gold investment platform in Bangladesh.

Current Market Data (in BDT/Taka):
- Buy Price: ৳%s / gram
- Sell Price: ৳%s / gram
- Trend: %s

Recent Price History (Last few days):
%s
Please provide a concise, professional market analysis (max 150 words).
Focus on whether now is a good time to buy or sell based on the trend.
Use a sophisticated, reassuring tone suitable for high-net-worth individuals.
Format the output with Markdown. Use bolding for key figures.
Remember to use the ৳ symbol for prices in your response.`,
		quote.Buy.StringFixed(2), quote.Sell.StringFixed(2), quote.Trend, b.String())
}

// Close releases the underlying Gemini client
func (s *InsightsService) Close() {
	if s.client != nil {
		s.client.Close()
	}
}
