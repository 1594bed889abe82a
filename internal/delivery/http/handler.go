package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/stylist/backend/internal/domain"
	"github.com/stylist/backend/internal/usecase"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	session     *usecase.Session
	recommender *usecase.Recommender
	advice      *usecase.AdviceService
	enrichment  *usecase.EnrichmentService
	importer    *usecase.ImportService
}

// NewHandler creates a new HTTP handler.
// A nil enrichment or import service turns the matching endpoint into 501.
func NewHandler(
	session *usecase.Session,
	recommender *usecase.Recommender,
	advice *usecase.AdviceService,
	enrichment *usecase.EnrichmentService,
	importer *usecase.ImportService,
) *Handler {
	return &Handler{
		session:     session,
		recommender: recommender,
		advice:      advice,
		enrichment:  enrichment,
		importer:    importer,
	}
}

// RecommendationRequest is the body of POST /recommendations
type RecommendationRequest struct {
	Styles     []string `json:"styles"`
	Occasions  []string `json:"occasions"`
	Categories []string `json:"categories"`
	Brands     []string `json:"brands"`
	MaxItems   *int     `json:"max_items"`
}

// OutfitRequest is the body of POST /outfits
type OutfitRequest struct {
	Style    string `json:"style"`
	Occasion string `json:"occasion"`
	MaxItems *int   `json:"max_items"`
}

// AdviceRequest is the body of POST /advice
type AdviceRequest struct {
	Question string `json:"question" binding:"required"`
}

// ProductsResponse wraps a list of product records
type ProductsResponse struct {
	Count    int              `json:"count"`
	Products []domain.Product `json:"products"`
}

// AdviceResponse is the body returned by POST /advice
type AdviceResponse struct {
	Advice   string `json:"advice"`
	Fallback bool   `json:"fallback"`
	Failure  string `json:"failure,omitempty"`
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "healthy",
		"service":  "stylist-backend",
		"version":  "1.0.0",
		"products": h.session.Catalog().Len(),
	})
}

// ListFacets returns the distinct style, occasion, category and brand values
func (h *Handler) ListFacets(c *gin.Context) {
	c.JSON(http.StatusOK, usecase.AvailableFacets(h.session.Catalog()))
}

// FilterProducts applies one facet filter with the repeated "value" query parameter
func (h *Handler) FilterProducts(c *gin.Context) {
	facet, err := domain.ParseFacet(c.Param("facet"))
	if err != nil {
		respondError(c, err)
		return
	}

	products, err := usecase.Filter(h.session.Catalog(), facet, c.QueryArray("value"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, ProductsResponse{Count: len(products), Products: products})
}

// Recommend returns a shuffled selection matching every requested facet
func (h *Handler) Recommend(c *gin.Context) {
	var req RecommendationRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		respondError(c, err)
		return
	}

	maxItems, err := maxItemsOrDefault(req.MaxItems, usecase.DefaultMaxRecommendations)
	if err != nil {
		respondError(c, err)
		return
	}

	products := h.recommender.Recommend(h.session.Catalog(), usecase.RecommendationRequest{
		Styles:     req.Styles,
		Occasions:  req.Occasions,
		Categories: req.Categories,
		Brands:     req.Brands,
		MaxItems:   maxItems,
	})

	c.JSON(http.StatusOK, ProductsResponse{Count: len(products), Products: products})
}

// AssembleOutfit builds an outfit for one style and occasion
func (h *Handler) AssembleOutfit(c *gin.Context) {
	var req OutfitRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		respondError(c, err)
		return
	}

	outfit := usecase.DefaultOutfitRequest()
	if req.Style != "" {
		outfit.Style = req.Style
	}
	if req.Occasion != "" {
		outfit.Occasion = req.Occasion
	}
	maxItems, err := maxItemsOrDefault(req.MaxItems, usecase.DefaultOutfitSize)
	if err != nil {
		respondError(c, err)
		return
	}
	outfit.MaxItems = maxItems

	products := h.recommender.AssembleOutfit(h.session.Catalog(), outfit)

	c.JSON(http.StatusOK, gin.H{
		"style":    outfit.Style,
		"occasion": outfit.Occasion,
		"count":    len(products),
		"products": products,
	})
}

// GetAdvice answers a free-text styling question.
// Service failures still return 200 with the fallback text.
func (h *Handler) GetAdvice(c *gin.Context) {
	var req AdviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "question is required"})
		return
	}

	advice := h.advice.Advise(c.Request.Context(), h.session.Catalog(), req.Question)

	resp := AdviceResponse{Advice: advice.Text, Fallback: advice.Fallback}
	if advice.Fallback {
		resp.Failure = advice.Failure.String()
	}
	c.JSON(http.StatusOK, resp)
}

// ReloadCatalog swaps in a freshly loaded catalog snapshot
func (h *Handler) ReloadCatalog(c *gin.Context) {
	catalog, err := h.session.Reload(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"products": catalog.Len()})
}

// ImportCatalog fetches the configured spreadsheet, writes the catalog file and reloads
func (h *Handler) ImportCatalog(c *gin.Context) {
	if h.importer == nil {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "catalog import is not configured"})
		return
	}

	result, err := h.importer.ImportSheet(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	catalog, err := h.session.Reload(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"import": result, "products": catalog.Len()})
}

// EnrichCatalog tags every record of the imported catalog and reloads
func (h *Handler) EnrichCatalog(c *gin.Context) {
	if h.enrichment == nil {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "catalog enrichment is not configured"})
		return
	}

	report, err := h.enrichment.EnrichFile(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	catalog, err := h.session.Reload(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"enrichment": report, "products": catalog.Len()})
}

// bindOptionalJSON decodes the body when one was sent; an empty body keeps defaults
func bindOptionalJSON(c *gin.Context, obj any) error {
	if c.Request.ContentLength == 0 {
		return nil
	}
	if err := c.ShouldBindJSON(obj); err != nil {
		return errors.Join(domain.ErrInvalidRequest, err)
	}
	return nil
}

func maxItemsOrDefault(v *int, def int) (int, error) {
	if v == nil {
		return def, nil
	}
	if *v < 0 {
		return 0, errors.Join(domain.ErrInvalidRequest, errors.New("max_items must not be negative"))
	}
	return *v, nil
}

// respondError maps domain errors onto status codes
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrInvalidRequest), errors.Is(err, domain.ErrUnknownFacet):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrCatalogNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrMalformedCatalog):
		status = http.StatusUnprocessableEntity
	}

	if status >= http.StatusInternalServerError {
		log.Error().Str("component", "http").Str("path", c.FullPath()).Err(err).Msg("request failed")
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
