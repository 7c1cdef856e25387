package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// GeminiBackend invokes Google Gemini models.
type GeminiBackend struct {
	client *genai.Client
}

// NewGeminiBackend creates a new Gemini backend
func NewGeminiBackend(ctx context.Context, apiKey string) (*GeminiBackend, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiBackend{client: client}, nil
}

// Invoke implements Backend.
func (g *GeminiBackend) Invoke(ctx context.Context, spec ModelSpec, req Request) (string, error) {
	prompt, system, err := geminiContent(spec, req)
	if err != nil {
		return "", &TerminalBackendError{Model: spec.ID, Cause: err}
	}

	model := g.client.GenerativeModel(spec.ID)
	model.SetTemperature(float32(req.temperature()))
	if tokens := req.tokens(spec); tokens > 0 {
		model.SetMaxOutputTokens(int32(tokens))
	}
	model.ResponseMIMEType = "application/json"
	if system != "" {
		model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(system)}}
	}

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", classifyGeminiError(spec.ID, err)
	}

	return extractTextFromResponse(resp)
}

// geminiContent maps a request shape onto Gemini's prompt and system instruction.
// The messages shape keeps the system text separate; the completion shape merges it.
func geminiContent(spec ModelSpec, req Request) (prompt, system string, err error) {
	switch spec.Shape {
	case ShapeMessages:
		return req.Prompt, strings.TrimSpace(req.System), nil
	case ShapeCompletion:
		return req.MergedPrompt(), "", nil
	default:
		return "", "", fmt.Errorf("unknown request shape %q", spec.Shape)
	}
}

// Close releases resources held by the client
func (g *GeminiBackend) Close() error {
	if g.client != nil {
		return g.client.Close()
	}
	return nil
}

// extractTextFromResponse extracts text from Gemini API response
func extractTextFromResponse(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", &MalformedOutputError{Message: "no candidates in response"}
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", &MalformedOutputError{Message: "no content in response"}
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}

	text := strings.TrimSpace(strings.Join(parts, ""))
	if text == "" {
		return "", &MalformedOutputError{Message: "no text parts in response"}
	}
	return text, nil
}

// classifyGeminiError maps HTTP and gRPC failures onto the backend error taxonomy.
// Unrecognized failures are treated as transient.
func classifyGeminiError(model string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return &TransientBackendError{Model: model, Cause: err}
	}

	var gErr *googleapi.Error
	if errors.As(err, &gErr) {
		code := http.StatusText(gErr.Code)
		switch {
		case gErr.Code == http.StatusRequestTimeout, gErr.Code == http.StatusTooManyRequests, gErr.Code >= 500:
			return &TransientBackendError{Model: model, Code: code, Cause: err}
		case gErr.Code >= 400:
			return &TerminalBackendError{Model: model, Code: code, Cause: err}
		}
	}

	if st, ok := status.FromError(err); ok {
		switch st.Code() {
		case codes.PermissionDenied, codes.Unauthenticated, codes.InvalidArgument, codes.NotFound, codes.FailedPrecondition:
			return &TerminalBackendError{Model: model, Code: st.Code().String(), Cause: err}
		case codes.Unknown:
		default:
			return &TransientBackendError{Model: model, Code: st.Code().String(), Cause: err}
		}
	}

	return &TransientBackendError{Model: model, Cause: err}
}
