package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/googleapi"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestNewGeminiBackend_RequiresKey(t *testing.T) {
	_, err := NewGeminiBackend(context.Background(), "")
	require.Error(t, err)
}

func TestClassifyGeminiError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		terminal bool
	}{
		{"rate limited", &googleapi.Error{Code: 429}, false},
		{"server error", &googleapi.Error{Code: 503}, false},
		{"request timeout", &googleapi.Error{Code: 408}, false},
		{"forbidden", &googleapi.Error{Code: 403}, true},
		{"bad request", &googleapi.Error{Code: 400}, true},
		{"grpc unavailable", status.Error(codes.Unavailable, "down"), false},
		{"grpc exhausted", status.Error(codes.ResourceExhausted, "quota"), false},
		{"grpc permission", status.Error(codes.PermissionDenied, "no"), true},
		{"grpc invalid", status.Error(codes.InvalidArgument, "bad"), true},
		{"deadline", context.DeadlineExceeded, false},
		{"plain", errors.New("boom"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := classifyGeminiError("gemini-2.5-flash", tt.err)
			assert.Equal(t, tt.terminal, IsTerminal(err))
			if !tt.terminal {
				var transient *TransientBackendError
				assert.ErrorAs(t, err, &transient)
			}
		})
	}
}

func TestExtractTextFromResponse(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []genai.Part{genai.Text(`{"a":`), genai.Text(`1}`)}},
		}},
	}
	text, err := extractTextFromResponse(resp)
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, text)

	_, err = extractTextFromResponse(&genai.GenerateContentResponse{})
	assert.True(t, IsMalformed(err))
}

func TestGeminiContent(t *testing.T) {
	req := Request{System: "You are a recruiter.", Prompt: "Rewrite this."}

	prompt, system, err := geminiContent(ModelSpec{Shape: ShapeMessages}, req)
	require.NoError(t, err)
	assert.Equal(t, "Rewrite this.", prompt)
	assert.Equal(t, "You are a recruiter.", system)

	prompt, system, err = geminiContent(ModelSpec{Shape: ShapeCompletion}, req)
	require.NoError(t, err)
	assert.Equal(t, "You are a recruiter.\n\nRewrite this.", prompt)
	assert.Empty(t, system)

	_, _, err = geminiContent(ModelSpec{Shape: "xml"}, req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown request shape "xml"`)
}

func TestGeminiBackend_UnknownShapeIsTerminal(t *testing.T) {
	_, err := (&GeminiBackend{}).Invoke(context.Background(), ModelSpec{ID: "gemini-x", Shape: "xml"}, Request{Prompt: "p"})

	var terminal *TerminalBackendError
	require.ErrorAs(t, err, &terminal)
	assert.Equal(t, "gemini-x", terminal.Model)
}
