package ai

import (
	"math"
	"unicode/utf8"

	domainErrors "github.com/thomas-vilte/commitsage/internal/errors"
)

// DefaultCharsPerToken leaves some room below the usual 4 characters per token
// so the estimate errs on the side of rejecting.
const DefaultCharsPerToken = 3.9

// TokenBudget approximates the token count of a prompt from its length.
type TokenBudget struct {
	CharsPerToken float64
	Limit         int
}

func NewTokenBudget(charsPerToken float64, limit int) TokenBudget {
	if charsPerToken <= 0 {
		charsPerToken = DefaultCharsPerToken
	}
	return TokenBudget{
		CharsPerToken: charsPerToken,
		Limit:         limit,
	}
}

// Estimate returns floor(chars / CharsPerToken), counting characters, not bytes.
func (b TokenBudget) Estimate(prompt string) int {
	cpt := b.CharsPerToken
	if cpt <= 0 {
		cpt = DefaultCharsPerToken
	}
	return int(math.Floor(float64(utf8.RuneCountInString(prompt)) / cpt))
}

// Check returns a *PromptTooLargeError when the estimate exceeds the limit.
// A non-positive limit disables the check.
func (b TokenBudget) Check(prompt string) error {
	if b.Limit <= 0 {
		return nil
	}
	if estimated := b.Estimate(prompt); estimated > b.Limit {
		return domainErrors.NewPromptTooLargeError(estimated, b.Limit)
	}
	return nil
}
