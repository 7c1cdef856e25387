package llm

import (
	"context"
	"errors"
	"fmt"
)

// Backend invokes one model on one provider. Implementations classify every failure as
// *TransientBackendError, *TerminalBackendError or *MalformedOutputError.
type Backend interface {
	Invoke(ctx context.Context, spec ModelSpec, req Request) (string, error)
}

// BackendOptions carries provider credentials and locations.
type BackendOptions struct {
	AWSRegion    string
	GeminiAPIKey string
}

// Backends maps each provider to its backend.
type Backends map[Provider]Backend

// Close releases any backend that holds resources.
func (b Backends) Close() error {
	var errs []error
	for _, backend := range b {
		if c, ok := backend.(interface{ Close() error }); ok {
			if err := c.Close(); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

// NewBackends builds a backend for every provider referenced by models and nothing else.
func NewBackends(ctx context.Context, models []ModelSpec, opts BackendOptions) (Backends, error) {
	backends := make(Backends)
	for _, provider := range Providers(models) {
		switch provider {
		case ProviderBedrock:
			b, err := NewBedrockBackend(ctx, opts.AWSRegion)
			if err != nil {
				_ = backends.Close()
				return nil, err
			}
			backends[provider] = b
		case ProviderGemini:
			b, err := NewGeminiBackend(ctx, opts.GeminiAPIKey)
			if err != nil {
				_ = backends.Close()
				return nil, err
			}
			backends[provider] = b
		default:
			_ = backends.Close()
			return nil, fmt.Errorf("unknown provider %q", provider)
		}
	}
	return backends, nil
}
