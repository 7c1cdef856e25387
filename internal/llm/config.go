// Package llm describes the text-generation backends and how requests are shaped for each of them.
// Model descriptors are plain values; the ordered chain of models is owned by the dispatcher.
package llm

import "fmt"

// ModelTier represents the cost/capability level of a model
type ModelTier string

const (
	// TierLite is the cheapest tier
	TierLite ModelTier = "lite"
	// TierStandard is the default tier
	TierStandard ModelTier = "standard"
	// TierAdvanced is the most capable and most expensive tier
	TierAdvanced ModelTier = "advanced"
)

// Provider identifies the service a model is invoked through
type Provider string

const (
	// ProviderBedrock is AWS Bedrock InvokeModel with raw JSON bodies
	ProviderBedrock Provider = "bedrock"
	// ProviderGemini is the Google Gemini API
	ProviderGemini Provider = "gemini"
)

// ShapeTag names a request-shape variant: how the request body is built and the response parsed.
type ShapeTag string

const (
	// ShapeCompletion is a raw-prompt completion body with no separate system field
	ShapeCompletion ShapeTag = "completion"
	// ShapeMessages is a chat body with a system instruction and a list of messages
	ShapeMessages ShapeTag = "messages"
)

// ModelSpec describes one backend model. Values are built once at startup and never mutated.
type ModelSpec struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Provider  Provider  `json:"provider"`
	MaxTokens int       `json:"max_tokens"`
	CostTier  ModelTier `json:"cost_tier"`
	Shape     ShapeTag  `json:"shape"`
}

// String returns the display name, falling back to the ID.
func (m ModelSpec) String() string {
	if m.Name != "" {
		return m.Name
	}
	return m.ID
}

// Validate checks that the descriptor can be dispatched.
func (m ModelSpec) Validate() error {
	if m.ID == "" {
		return fmt.Errorf("model id is required")
	}
	switch m.Provider {
	case ProviderBedrock, ProviderGemini:
	default:
		return fmt.Errorf("model %s: unknown provider %q", m.ID, m.Provider)
	}
	if _, err := LookupShape(m.Shape); err != nil {
		return fmt.Errorf("model %s: %w", m.ID, err)
	}
	if m.MaxTokens <= 0 {
		return fmt.Errorf("model %s: max_tokens must be positive", m.ID)
	}
	return nil
}

// DefaultModels returns the default fallback chain, most capable first.
// A new slice is returned on every call.
func DefaultModels() []ModelSpec {
	return []ModelSpec{
		{
			ID:        "anthropic.claude-3-5-sonnet-20240620-v1:0",
			Name:      "Claude 3.5 Sonnet",
			Provider:  ProviderBedrock,
			MaxTokens: 4096,
			CostTier:  TierAdvanced,
			Shape:     ShapeMessages,
		},
		{
			ID:        "anthropic.claude-3-haiku-20240307-v1:0",
			Name:      "Claude 3 Haiku",
			Provider:  ProviderBedrock,
			MaxTokens: 4096,
			CostTier:  TierLite,
			Shape:     ShapeMessages,
		},
		{
			ID:        "gemini-2.5-flash",
			Name:      "Gemini 2.5 Flash",
			Provider:  ProviderGemini,
			MaxTokens: 8192,
			CostTier:  TierStandard,
			Shape:     ShapeMessages,
		},
		{
			ID:        "amazon.titan-text-express-v1",
			Name:      "Titan Text Express",
			Provider:  ProviderBedrock,
			MaxTokens: 4096,
			CostTier:  TierLite,
			Shape:     ShapeCompletion,
		},
	}
}

// Providers returns the distinct providers used by models, in first-seen order.
func Providers(models []ModelSpec) []Provider {
	seen := make(map[Provider]bool)
	var out []Provider
	for _, m := range models {
		if !seen[m.Provider] {
			seen[m.Provider] = true
			out = append(out, m.Provider)
		}
	}
	return out
}
