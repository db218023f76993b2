package cost

import (
	"fmt"
	"strings"
)

type PricingTable struct {
	InputPricePerMillion  float64
	OutputPricePerMillion float64
}

type ProviderPricing map[string]map[string]PricingTable

// https://openai.com/api/pricing and https://ai.google.dev/gemini-api/docs/pricing
func defaultPricing() ProviderPricing {
	return ProviderPricing{
		"openai": {
			"gpt-3.5-turbo-1106": {InputPricePerMillion: 1.00, OutputPricePerMillion: 2.00},
			"gpt-4o":             {InputPricePerMillion: 2.50, OutputPricePerMillion: 10.00},
			"gpt-4o-mini":        {InputPricePerMillion: 0.15, OutputPricePerMillion: 0.60},
		},
		"gemini": {
			"gemini-2.5-flash": {InputPricePerMillion: 0.30, OutputPricePerMillion: 2.50},
			"gemini-2.5-pro":   {InputPricePerMillion: 1.25, OutputPricePerMillion: 10.00},
		},
	}
}

type Calculator struct {
	pricing ProviderPricing
}

func NewCalculator() *Calculator {
	return &Calculator{pricing: defaultPricing()}
}

// EstimateCost returns the USD cost of a call, or 0 when the model is unknown.
// Dated model names such as gpt-4o-2024-08-06 use the longest matching prefix.
func (c *Calculator) EstimateCost(provider, model string, inputTokens, outputTokens int) float64 {
	prices, ok := c.lookup(strings.ToLower(provider), strings.ToLower(model))
	if !ok {
		return 0
	}

	inputCost := (float64(inputTokens) / 1_000_000) * prices.InputPricePerMillion
	outputCost := (float64(outputTokens) / 1_000_000) * prices.OutputPricePerMillion

	return inputCost + outputCost
}

// GetPricing returns the pricing table for an exact provider and model.
func (c *Calculator) GetPricing(provider, model string) (PricingTable, error) {
	provider = strings.ToLower(provider)
	model = strings.ToLower(model)

	providerPricing, exists := c.pricing[provider]
	if !exists {
		return PricingTable{}, fmt.Errorf("provider %s not found", provider)
	}

	modelPricing, exists := providerPricing[model]
	if !exists {
		return PricingTable{}, fmt.Errorf("model %s not found for provider %s", model, provider)
	}

	return modelPricing, nil
}

// AddPricing registers or replaces the prices of a model.
func (c *Calculator) AddPricing(provider, model string, table PricingTable) {
	provider = strings.ToLower(provider)
	model = strings.ToLower(model)

	if _, exists := c.pricing[provider]; !exists {
		c.pricing[provider] = make(map[string]PricingTable)
	}
	c.pricing[provider][model] = table
}

func (c *Calculator) lookup(provider, model string) (PricingTable, bool) {
	providerPricing, exists := c.pricing[provider]
	if !exists {
		return PricingTable{}, false
	}
	if prices, exists := providerPricing[model]; exists {
		return prices, true
	}

	var (
		best    PricingTable
		bestLen int
	)
	for name, prices := range providerPricing {
		if strings.HasPrefix(model, name) && len(name) > bestLen {
			best, bestLen = prices, len(name)
		}
	}
	return best, bestLen > 0
}
