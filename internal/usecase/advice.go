package usecase

import (
	"context"
	"fmt"
	"math/rand"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/stylist/backend/internal/domain"
)

const adviceSystemPrompt = "You are a knowledgeable and friendly fashion stylist who gives practical, personalized advice."

const adviceFallbackFormat = "I'd love to help with styling advice, but I can't reach my AI assistant right now. " +
	"Please check that the OpenAI API key is configured correctly. Error: %v"

// AdviceConfig holds configuration for the advice service.
// Zero MaxTokens or SampleSize pick the defaults (400, 5). Temperature 0 is a
// valid deterministic setting and is sent as is; a negative value picks 0.7.
type AdviceConfig struct {
	MaxTokens   int
	Temperature float32
	SampleSize  int
}

// Advice is the styling answer returned to the user.
// When Fallback is set, Text is the apologetic fallback and Failure names the cause.
type Advice struct {
	Text     string             `json:"text"`
	Fallback bool               `json:"fallback"`
	Failure  domain.FailureKind `json:"-"`
}

// AdviceService answers free-text styling questions grounded on a catalog sample
type AdviceService struct {
	generator   domain.TextGenerator
	maxTokens   int
	temperature float32
	sampleSize  int
	perm        func(n int) []int
}

// NewAdviceService creates a new advice service
func NewAdviceService(generator domain.TextGenerator, config AdviceConfig) *AdviceService {
	maxTokens := config.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 400
	}
	sampleSize := config.SampleSize
	if sampleSize <= 0 {
		sampleSize = 5
	}
	temperature := config.Temperature
	if temperature < 0 {
		temperature = 0.7
	}

	return &AdviceService{
		generator:   generator,
		maxTokens:   maxTokens,
		temperature: temperature,
		sampleSize:  sampleSize,
		perm:        rand.Perm,
	}
}

// Advise samples up to SampleSize records as context and asks the
// text-generation service for advice. It never fails: service errors are
// turned into a fallback message carrying the error detail.
func (s *AdviceService) Advise(ctx context.Context, catalog *domain.Catalog, question string) Advice {
	sample := s.sample(catalog)
	req := domain.GenerationRequest{
		SystemPrompt: adviceSystemPrompt,
		UserPrompt:   buildAdvicePrompt(question, BuildProductContext(sample)),
		MaxTokens:    s.maxTokens,
		Temperature:  s.temperature,
	}

	result := s.generator.Generate(ctx, req)
	if !result.OK() {
		log.Warn().
			Str("component", "advice").
			Str("failure", result.Failure.String()).
			Err(result.Err).
			Msg("styling advice fell back")
		return Advice{
			Text:     fmt.Sprintf(adviceFallbackFormat, result.Err),
			Fallback: true,
			Failure:  result.Failure,
		}
	}

	return Advice{Text: strings.TrimSpace(result.Text)}
}

// sample draws min(SampleSize, catalog size) distinct records uniformly
func (s *AdviceService) sample(catalog *domain.Catalog) []domain.Product {
	n := min(s.sampleSize, catalog.Len())
	if n == 0 {
		return nil
	}
	return catalog.Select(s.perm(catalog.Len())[:n])
}

// BuildProductContext renders one bullet line per product
func BuildProductContext(products []domain.Product) string {
	lines := make([]string, 0, len(products))
	for _, p := range products {
		lines = append(lines, fmt.Sprintf("- %s by %s (%s): %s",
			orUnknown(p.Name()), orUnknown(p.Brand()), orUnknown(p.Category()), p.Description()))
	}
	return strings.Join(lines, "\n")
}

func buildAdvicePrompt(question, productContext string) string {
	return fmt.Sprintf(`You are a professional fashion stylist. A user is asking for styling advice.

User request: %s

Available products in our catalog include:
%s

Provide helpful, personalized styling advice. Be specific about:
1. Style recommendations
2. How to mix and match items
3. Occasion-appropriate suggestions
4. Color coordination tips

Keep your response conversational and helpful, around 2-3 paragraphs.`, question, productContext)
}

func orUnknown(v string) string {
	if v == "" {
		return "Unknown"
	}
	return v
}
