package config

type AI string

const (
	AIOpenAI AI = "openai"
	AIGemini AI = "gemini"
)

type Model string

const (
	ModelGPT35Turbo     Model = "gpt-3.5-turbo-1106"
	ModelGPTV4o         Model = "gpt-4o"
	ModelGPTV4oMini     Model = "gpt-4o-mini"
	ModelGeminiV25Flash Model = "gemini-2.5-flash"
	ModelGeminiV25Pro   Model = "gemini-2.5-pro"
)

// ModelLimits holds the published throughput and context limits of a model, in tokens.
type ModelLimits struct {
	TPM           int
	ContextWindow int
}

// InputBudget is the largest prompt estimate accepted for the model.
func (l ModelLimits) InputBudget() int {
	return min(l.TPM, l.ContextWindow)
}

var modelLimits = map[Model]ModelLimits{
	ModelGPT35Turbo:     {TPM: 60_000, ContextWindow: 16_385},
	ModelGPTV4o:         {TPM: 30_000, ContextWindow: 128_000},
	ModelGPTV4oMini:     {TPM: 200_000, ContextWindow: 128_000},
	ModelGeminiV25Flash: {TPM: 1_000_000, ContextWindow: 1_048_576},
	ModelGeminiV25Pro:   {TPM: 2_000_000, ContextWindow: 1_048_576},
}

func SupportedAIs() []AI {
	return []AI{
		AIOpenAI,
		AIGemini,
	}
}

func IsSupportedAI(ai AI) bool {
	for _, supported := range SupportedAIs() {
		if ai == supported {
			return true
		}
	}
	return false
}

func ModelsForAI(ai AI) []Model {
	switch ai {
	case AIOpenAI:
		return []Model{
			ModelGPT35Turbo,
			ModelGPTV4oMini,
			ModelGPTV4o,
		}
	case AIGemini:
		return []Model{
			ModelGeminiV25Flash,
			ModelGeminiV25Pro,
		}
	default:
		return []Model{}
	}
}

func DefaultModelForAI(ai AI) Model {
	models := ModelsForAI(ai)
	if len(models) == 0 {
		return ""
	}
	return models[0]
}

func LimitsForModel(model Model) (ModelLimits, bool) {
	limits, ok := modelLimits[model]
	return limits, ok
}
