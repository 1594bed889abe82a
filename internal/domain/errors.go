package domain

import "errors"

var (
	// ErrCatalogNotFound is returned when a catalog file does not exist
	ErrCatalogNotFound = errors.New("catalog file not found")

	// ErrMalformedCatalog is returned when a catalog file is not a JSON array of objects
	ErrMalformedCatalog = errors.New("malformed catalog file")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrUnknownFacet is returned for a facet name outside style/occasion/category/brand
	ErrUnknownFacet = errors.New("unknown facet")

	// ErrMissingAPIKey is returned when the text-generation service has no credentials
	ErrMissingAPIKey = errors.New("text-generation API key is not configured")

	// ErrGenerationFailed is returned when the text-generation service request fails
	ErrGenerationFailed = errors.New("text-generation request failed")

	// ErrMalformedResponse is returned when a completion does not have the expected shape
	ErrMalformedResponse = errors.New("malformed text-generation response")

	// ErrImportFailed is returned when tabular data cannot be fetched or parsed
	ErrImportFailed = errors.New("catalog import failed")
)
