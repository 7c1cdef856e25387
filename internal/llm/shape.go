package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

const (
	// DefaultTemperature keeps generations close to deterministic
	DefaultTemperature = 0.1

	anthropicVersion = "bedrock-2023-05-31"
	defaultTopP      = 0.9
)

// Request is a provider-neutral generation request.
type Request struct {
	System      string
	Prompt      string
	MaxTokens   int     // 0 uses the model's budget
	Temperature float64 // 0 uses DefaultTemperature
}

// MergedPrompt folds the system instruction into the prompt for shapes without a system field.
func (r Request) MergedPrompt() string {
	if strings.TrimSpace(r.System) == "" {
		return r.Prompt
	}
	return strings.TrimSpace(r.System) + "\n\n" + r.Prompt
}

func (r Request) tokens(spec ModelSpec) int {
	if r.MaxTokens > 0 && (spec.MaxTokens == 0 || r.MaxTokens < spec.MaxTokens) {
		return r.MaxTokens
	}
	return spec.MaxTokens
}

func (r Request) temperature() float64 {
	if r.Temperature > 0 {
		return r.Temperature
	}
	return DefaultTemperature
}

// ShapeCodec builds request bodies and parses response bodies for one request-shape variant.
type ShapeCodec interface {
	Encode(spec ModelSpec, req Request) ([]byte, error)
	Decode(body []byte) (string, error)
}

var shapeCodecs = map[ShapeTag]ShapeCodec{
	ShapeCompletion: completionCodec{},
	ShapeMessages:   messagesCodec{},
}

// LookupShape returns the codec registered for tag.
func LookupShape(tag ShapeTag) (ShapeCodec, error) {
	codec, ok := shapeCodecs[tag]
	if !ok {
		return nil, fmt.Errorf("unknown request shape %q", tag)
	}
	return codec, nil
}

// --- completion shape ---

type completionRequest struct {
	InputText            string                   `json:"inputText"`
	TextGenerationConfig completionGenerationConf `json:"textGenerationConfig"`
}

type completionGenerationConf struct {
	MaxTokenCount int     `json:"maxTokenCount"`
	Temperature   float64 `json:"temperature"`
	TopP          float64 `json:"topP"`
}

type completionResponse struct {
	Results []struct {
		OutputText       string `json:"outputText"`
		CompletionReason string `json:"completionReason"`
	} `json:"results"`
}

type completionCodec struct{}

func (completionCodec) Encode(spec ModelSpec, req Request) ([]byte, error) {
	return json.Marshal(completionRequest{
		InputText: req.MergedPrompt(),
		TextGenerationConfig: completionGenerationConf{
			MaxTokenCount: req.tokens(spec),
			Temperature:   req.temperature(),
			TopP:          defaultTopP,
		},
	})
}

func (completionCodec) Decode(body []byte) (string, error) {
	var resp completionResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", &MalformedOutputError{Message: "undecodable completion response", Cause: err}
	}
	if len(resp.Results) == 0 {
		return "", &MalformedOutputError{Message: "completion response has no results"}
	}
	text := strings.TrimSpace(resp.Results[0].OutputText)
	if text == "" {
		return "", &MalformedOutputError{Message: "completion response is empty"}
	}
	return text, nil
}

// --- messages shape ---

type messagesRequest struct {
	AnthropicVersion string           `json:"anthropic_version"`
	MaxTokens        int              `json:"max_tokens"`
	System           string           `json:"system,omitempty"`
	Messages         []messageContent `json:"messages"`
	Temperature      float64          `json:"temperature"`
}

type messageContent struct {
	Role    string        `json:"role"`
	Content []contentPart `json:"content"`
}

type contentPart struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type messagesResponse struct {
	Content    []contentPart `json:"content"`
	StopReason string        `json:"stop_reason"`
}

type messagesCodec struct{}

func (messagesCodec) Encode(spec ModelSpec, req Request) ([]byte, error) {
	return json.Marshal(messagesRequest{
		AnthropicVersion: anthropicVersion,
		MaxTokens:        req.tokens(spec),
		System:           strings.TrimSpace(req.System),
		Messages: []messageContent{{
			Role:    "user",
			Content: []contentPart{{Type: "text", Text: req.Prompt}},
		}},
		Temperature: req.temperature(),
	})
}

func (messagesCodec) Decode(body []byte) (string, error) {
	var resp messagesResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", &MalformedOutputError{Message: "undecodable messages response", Cause: err}
	}

	var sb strings.Builder
	for _, part := range resp.Content {
		if part.Type == "text" {
			sb.WriteString(part.Text)
		}
	}
	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", &MalformedOutputError{Message: "messages response has no text content"}
	}
	return text, nil
}
