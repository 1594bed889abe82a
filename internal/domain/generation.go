package domain

// FailureKind tells callers why a text-generation call fell back
type FailureKind int

const (
	FailureNone FailureKind = iota
	FailureNetwork
	FailureAuth
	FailureMalformedResponse
	FailureService
)

func (k FailureKind) String() string {
	switch k {
	case FailureNone:
		return "none"
	case FailureNetwork:
		return "network_error"
	case FailureAuth:
		return "auth_error"
	case FailureMalformedResponse:
		return "malformed_response"
	case FailureService:
		return "service_error"
	default:
		return "unknown"
	}
}

// GenerationRequest is a single chat exchange: one system instruction and one user message
type GenerationRequest struct {
	SystemPrompt string
	UserPrompt   string
	MaxTokens    int
	Temperature  float32
}

// GenerationResult carries either the completion text or the failure reason
type GenerationResult struct {
	Text    string
	Failure FailureKind
	Err     error
}

// OK reports whether the call produced a completion
func (r GenerationResult) OK() bool {
	return r.Failure == FailureNone && r.Err == nil
}

// Succeeded builds a successful result
func Succeeded(text string) GenerationResult {
	return GenerationResult{Text: text}
}

// Failed builds a failed result
func Failed(kind FailureKind, err error) GenerationResult {
	return GenerationResult{Failure: kind, Err: err}
}
