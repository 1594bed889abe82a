package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/stylist/backend/internal/domain"
)

const enrichmentSystemPrompt = "You are a fashion expert who categorizes clothing items with style and occasion tags. Always respond with valid JSON only."

// EnrichmentConfig holds configuration for the enrichment service.
// Zero MaxTokens or RequestsPerSecond pick the defaults (200, 1). Temperature 0
// is sent as is; a negative value picks 0.3.
type EnrichmentConfig struct {
	InputPath         string
	OutputPath        string
	MaxTokens         int
	Temperature       float32
	RequestsPerSecond float64
}

// EnrichmentReport summarizes an enrichment run
type EnrichmentReport struct {
	Total     int    `json:"total"`
	Enriched  int    `json:"enriched"`
	Defaulted int    `json:"defaulted"`
	Output    string `json:"output"`
}

// EnrichmentService attaches generated style and occasion tags to every record
type EnrichmentService struct {
	generator   domain.TextGenerator
	files       domain.CatalogFiles
	limiter     *rate.Limiter
	inputPath   string
	outputPath  string
	maxTokens   int
	temperature float32
}

// NewEnrichmentService creates a new enrichment service.
// Requests are paced to RequestsPerSecond (default one per second).
func NewEnrichmentService(generator domain.TextGenerator, files domain.CatalogFiles, config EnrichmentConfig) *EnrichmentService {
	rps := config.RequestsPerSecond
	if rps <= 0 {
		rps = 1
	}
	maxTokens := config.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 200
	}
	temperature := config.Temperature
	if temperature < 0 {
		temperature = 0.3
	}

	return &EnrichmentService{
		generator:   generator,
		files:       files,
		limiter:     rate.NewLimiter(rate.Limit(rps), 1),
		inputPath:   config.InputPath,
		outputPath:  config.OutputPath,
		maxTokens:   maxTokens,
		temperature: temperature,
	}
}

// GenerateTags asks the service for tags describing one product.
// On any failure the default tags are returned together with the error.
func (s *EnrichmentService) GenerateTags(ctx context.Context, p domain.Product) (domain.Tags, error) {
	result := s.generator.Generate(ctx, domain.GenerationRequest{
		SystemPrompt: enrichmentSystemPrompt,
		UserPrompt:   buildTagPrompt(p),
		MaxTokens:    s.maxTokens,
		Temperature:  s.temperature,
	})
	if !result.OK() {
		return domain.DefaultTags(), fmt.Errorf("%w (%s): %v", domain.ErrGenerationFailed, result.Failure, result.Err)
	}

	tags, err := ParseTags(result.Text)
	if err != nil {
		return domain.DefaultTags(), err
	}
	return tags, nil
}

// EnrichProducts returns enriched copies of products in input order.
// Failures for a single record are logged and replaced with default tags;
// only cancellation of ctx stops the run.
func (s *EnrichmentService) EnrichProducts(ctx context.Context, products []domain.Product) ([]domain.Product, EnrichmentReport, error) {
	report := EnrichmentReport{Total: len(products)}
	enriched := make([]domain.Product, 0, len(products))

	log.Info().Str("component", "enrichment").Int("products", len(products)).Msg("enriching catalog")

	for i, p := range products {
		if err := s.limiter.Wait(ctx); err != nil {
			return nil, report, fmt.Errorf("enrichment interrupted: %w", err)
		}

		log.Info().
			Str("component", "enrichment").
			Int("index", i+1).
			Int("total", len(products)).
			Str("name", orUnknown(p.Name())).
			Msg("processing product")

		tags, err := s.GenerateTags(ctx, p)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, report, fmt.Errorf("enrichment interrupted: %w", ctxErr)
			}
			log.Warn().
				Str("component", "enrichment").
				Str("name", p.Name()).
				Err(err).
				Msg("using default tags")
			report.Defaulted++
		} else {
			report.Enriched++
		}

		enriched = append(enriched, p.WithTags(tags))
	}

	return enriched, report, nil
}

// EnrichFile reads the input catalog, enriches it and writes the output file
func (s *EnrichmentService) EnrichFile(ctx context.Context) (EnrichmentReport, error) {
	products, err := s.files.Read(s.inputPath)
	if err != nil {
		if errors.Is(err, domain.ErrCatalogNotFound) {
			return EnrichmentReport{}, fmt.Errorf("%w: %s (run an import first)", err, s.inputPath)
		}
		return EnrichmentReport{}, err
	}

	enriched, report, err := s.EnrichProducts(ctx, products)
	if err != nil {
		return report, err
	}

	if err := s.files.Write(s.outputPath, enriched); err != nil {
		return report, fmt.Errorf("failed to write enriched catalog: %w", err)
	}
	report.Output = s.outputPath

	log.Info().
		Str("component", "enrichment").
		Str("output", s.outputPath).
		Int("enriched", report.Enriched).
		Int("defaulted", report.Defaulted).
		Msg("enriched catalog saved")
	return report, nil
}

// ParseTags decodes a completion of the exact shape
// {"style_tags": [...], "occasion_tags": [...]}. A surrounding markdown code
// fence is tolerated; unknown keys or a missing list are not.
func ParseTags(text string) (domain.Tags, error) {
	body := trimCodeFence(text)

	var payload struct {
		StyleTags    *[]string `json:"style_tags"`
		OccasionTags *[]string `json:"occasion_tags"`
	}
	dec := json.NewDecoder(bytes.NewReader([]byte(body)))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&payload); err != nil {
		return domain.Tags{}, fmt.Errorf("%w: %v", domain.ErrMalformedResponse, err)
	}
	if dec.More() {
		return domain.Tags{}, fmt.Errorf("%w: trailing data after tags object", domain.ErrMalformedResponse)
	}
	if payload.StyleTags == nil || payload.OccasionTags == nil {
		return domain.Tags{}, fmt.Errorf("%w: style_tags and occasion_tags are required", domain.ErrMalformedResponse)
	}

	return domain.Tags{
		StyleTags:    *payload.StyleTags,
		OccasionTags: *payload.OccasionTags,
	}, nil
}

func trimCodeFence(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}

func buildTagPrompt(p domain.Product) string {
	return fmt.Sprintf(`Given this fashion product information:

Product Name: %s
Brand: %s
Category: %s
Description: %s

Analyze this product and assign appropriate style and occasion tags.

Style tags should describe the aesthetic/vibe (e.g., "minimal", "athleisure", "sporty", "casual", "elegant", "boho", "edgy", "classic", "trendy", "vintage")

Occasion tags should describe when/where to wear it (e.g., "gym", "yoga", "running", "work", "casual", "date night", "travel", "lounging", "outdoor", "studio")

Return ONLY a valid JSON object in this exact format:
{
  "style_tags": ["tag1", "tag2"],
  "occasion_tags": ["tag1", "tag2"]
}`, p.Name(), p.Brand(), p.Category(), p.Description())
}
