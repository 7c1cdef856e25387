package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/aws/smithy-go"
)

// InvokeModelAPI is the slice of the Bedrock runtime client this package uses.
type InvokeModelAPI interface {
	InvokeModel(ctx context.Context, params *bedrockruntime.InvokeModelInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.InvokeModelOutput, error)
}

// BedrockBackend sends raw JSON bodies to Bedrock InvokeModel.
type BedrockBackend struct {
	api InvokeModelAPI
}

// NewBedrockBackend loads the default AWS credential chain for region.
func NewBedrockBackend(ctx context.Context, region string) (*BedrockBackend, error) {
	var optFns []func(*config.LoadOptions) error
	if region != "" {
		optFns = append(optFns, config.WithRegion(region))
	}
	cfg, err := config.LoadDefaultConfig(ctx, optFns...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return NewBedrockBackendWithAPI(bedrockruntime.NewFromConfig(cfg)), nil
}

// NewBedrockBackendWithAPI wraps an existing client.
func NewBedrockBackendWithAPI(api InvokeModelAPI) *BedrockBackend {
	return &BedrockBackend{api: api}
}

// Invoke implements Backend.
func (b *BedrockBackend) Invoke(ctx context.Context, spec ModelSpec, req Request) (string, error) {
	codec, err := LookupShape(spec.Shape)
	if err != nil {
		return "", &TerminalBackendError{Model: spec.ID, Cause: err}
	}

	body, err := codec.Encode(spec, req)
	if err != nil {
		return "", &TerminalBackendError{Model: spec.ID, Cause: fmt.Errorf("failed to encode request: %w", err)}
	}

	out, err := b.api.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     aws.String(spec.ID),
		Body:        body,
		ContentType: aws.String("application/json"),
		Accept:      aws.String("application/json"),
	})
	if err != nil {
		return "", classifyBedrockError(spec.ID, err)
	}

	return codec.Decode(out.Body)
}

var (
	bedrockTransientCodes = map[string]bool{
		"ThrottlingException":         true,
		"ModelTimeoutException":       true,
		"ServiceUnavailableException": true,
		"InternalServerException":     true,
		"ModelNotReadyException":      true,
		"ModelStreamErrorException":   true,
		"RequestTimeout":              true,
	}
	bedrockTerminalCodes = map[string]bool{
		"AccessDeniedException":         true,
		"ValidationException":           true,
		"ResourceNotFoundException":     true,
		"ServiceQuotaExceededException": true,
		"ModelErrorException":           true,
		"UnrecognizedClientException":   true,
		"ExpiredTokenException":         true,
	}
)

// classifyBedrockError maps a Bedrock failure onto the backend error taxonomy.
// Unrecognized failures are treated as transient.
func classifyBedrockError(model string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return &TransientBackendError{Model: model, Cause: err}
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		code := apiErr.ErrorCode()
		switch {
		case bedrockTerminalCodes[code]:
			return &TerminalBackendError{Model: model, Code: code, Cause: err}
		case bedrockTransientCodes[code]:
			return &TransientBackendError{Model: model, Code: code, Cause: err}
		}
		return &TransientBackendError{Model: model, Code: code, Cause: err}
	}

	return &TransientBackendError{Model: model, Cause: err}
}
