package errors

import "fmt"

// ErrorType defines the category of the error
type ErrorType string

const (
	TypeConfiguration     ErrorType = "CONFIGURATION"
	TypeUpstream          ErrorType = "UPSTREAM"
	TypePromptTooLarge    ErrorType = "PROMPT_TOO_LARGE"
	TypeMalformedResponse ErrorType = "MALFORMED_RESPONSE"
	TypeSchemaValidation  ErrorType = "SCHEMA_VALIDATION"
	TypeInternal          ErrorType = "INTERNAL"
)

// AppError represents a domain-level error with a type and an underlying error
type AppError struct {
	Type       ErrorType
	Message    string
	Context    map[string]interface{}
	Err        error
	Suggestion string
}

func (e *AppError) Error() string {
	var msg string
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %s (%v)", e.Type, e.Message, e.Err)
	} else {
		msg = fmt.Sprintf("%s: %s", e.Type, e.Message)
	}

	if e.Context != nil {
		if detail, ok := e.Context["detail"].(string); ok && detail != "" {
			msg += fmt.Sprintf(" - %s", detail)
		}
	}

	return msg
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches two AppErrors by type and message so that sentinel values keep
// matching after WithError/WithContext produced a copy.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Type == t.Type && e.Message == t.Message
}

// WithError creates a new AppError with an underlying error
func (e *AppError) WithError(err error) *AppError {
	return &AppError{
		Type:       e.Type,
		Message:    e.Message,
		Context:    e.Context,
		Err:        err,
		Suggestion: e.Suggestion,
	}
}

// WithContext creates a new AppError with additional context
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	ctx := make(map[string]interface{})
	for k, v := range e.Context {
		ctx[k] = v
	}
	ctx[key] = value
	return &AppError{
		Type:       e.Type,
		Message:    e.Message,
		Context:    ctx,
		Err:        e.Err,
		Suggestion: e.Suggestion,
	}
}

func (e *AppError) WithSuggestion(suggestion string) *AppError {
	return &AppError{
		Type:       e.Type,
		Message:    e.Message,
		Context:    e.Context,
		Err:        e.Err,
		Suggestion: suggestion,
	}
}

// NewAppError creates a new AppError
func NewAppError(t ErrorType, msg string, err error) *AppError {
	return &AppError{
		Type:    t,
		Message: msg,
		Err:     err,
	}
}

// Configuration errors
var (
	ErrGitHubTokenMissing = NewAppError(TypeConfiguration, "GitHub token is missing", nil).
				WithSuggestion("Export GITHUB_API_KEY or add it to your .env file")

	ErrOpenAIKeyMissing = NewAppError(TypeConfiguration, "OpenAI API key is missing", nil).
				WithSuggestion("Export OPENAI_API_KEY or add it to your .env file")

	ErrGeminiKeyMissing = NewAppError(TypeConfiguration, "Gemini API key is missing", nil).
				WithSuggestion("Export GEMINI_API_KEY or add it to your .env file")

	ErrRepositoryMissing = NewAppError(TypeConfiguration, "repository owner and name are required", nil).
				WithSuggestion("Set REPO_OWNER and REPO_NAME, or run inside a clone whose origin is on GitHub")

	ErrCommitSHAMissing = NewAppError(TypeConfiguration, "commit identifier is required", nil).
				WithSuggestion("Pass --sha or set COMMIT_SHA")

	ErrInvalidDateRange = NewAppError(TypeConfiguration, "invalid date range", nil).
				WithSuggestion("Use YYYY-MM-DD or RFC3339 dates with start before end")

	ErrUnsupportedProvider = NewAppError(TypeConfiguration, "AI provider not supported", nil).
				WithSuggestion("Set AI_PROVIDER to openai or gemini")

	ErrUnknownModel = NewAppError(TypeConfiguration, "token limit unknown for model", nil).
			WithSuggestion("Set AI_TOKEN_LIMIT to the model's input budget")
)

// Git errors
var (
	ErrGetRepoURL      = NewAppError(TypeConfiguration, "failed to read the origin remote", nil)
	ErrExtractRepoInfo = NewAppError(TypeConfiguration, "failed to extract repository info from remote URL", nil)
)

// Range errors
var (
	ErrNoCommitsInRange = NewAppError(TypeInternal, "no commits found in the requested range", nil).
		WithSuggestion("Widen the date range or drop the author filter")
)
