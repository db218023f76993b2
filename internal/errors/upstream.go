package errors

import "fmt"

// UpstreamError is returned for any non-success HTTP response from a provider.
type UpstreamError struct {
	Provider   string
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s responded with status %d: %s", TypeUpstream, e.Provider, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s: %s responded with status %d", TypeUpstream, e.Provider, e.StatusCode)
}

func NewUpstreamError(provider string, statusCode int, message string) *UpstreamError {
	return &UpstreamError{
		Provider:   provider,
		StatusCode: statusCode,
		Message:    message,
	}
}

// PromptTooLargeError is raised before any network call when the estimated
// prompt size exceeds the configured token budget.
type PromptTooLargeError struct {
	Estimated int
	Limit     int
}

func (e *PromptTooLargeError) Error() string {
	return fmt.Sprintf("%s: token estimate %d exceeds limit of %d tokens", TypePromptTooLarge, e.Estimated, e.Limit)
}

func NewPromptTooLargeError(estimated, limit int) *PromptTooLargeError {
	return &PromptTooLargeError{Estimated: estimated, Limit: limit}
}

// MalformedResponseError marks a success response that lacks the expected structure.
type MalformedResponseError struct {
	Provider string
	Reason   string
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("%s: %s returned an unexpected payload: %s", TypeMalformedResponse, e.Provider, e.Reason)
}

func NewMalformedResponseError(provider, reason string) *MalformedResponseError {
	return &MalformedResponseError{Provider: provider, Reason: reason}
}

// SchemaValidationError reports a commit record that does not satisfy the closed schema.
type SchemaValidationError struct {
	Field  string
	Reason string
}

func (e *SchemaValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", TypeSchemaValidation, e.Reason)
	}
	return fmt.Sprintf("%s: field %q %s", TypeSchemaValidation, e.Field, e.Reason)
}

func NewSchemaValidationError(field, reason string) *SchemaValidationError {
	return &SchemaValidationError{Field: field, Reason: reason}
}
