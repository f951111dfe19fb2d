package answerkey

import (
	"context"

	"github.com/jonathan/sheet-scorer/internal/admin"
	"github.com/jonathan/sheet-scorer/internal/types"
)

// Fetcher retrieves the raw body of a URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Provider loads answer keys for administrations known to its registry.
type Provider struct {
	registry *Registry
	fetcher  Fetcher
}

// NewProvider creates a Provider over an immutable registry.
func NewProvider(registry *Registry, fetcher Fetcher) *Provider {
	return &Provider{registry: registry, fetcher: fetcher}
}

// Registry returns the registry the provider was built with.
func (p *Provider) Registry() *Registry {
	return p.registry
}

// Load retrieves and parses the answer key for key. Unregistered
// administrations fail without any network call. The source is fetched once.
func (p *Provider) Load(ctx context.Context, key admin.Key) (types.AnswerKey, error) {
	canonical := key.String()

	sourceURL, ok := p.registry.Lookup(canonical)
	if !ok {
		return nil, &ProviderError{Kind: KindKeyNotRegistered, Key: canonical}
	}

	body, err := p.fetcher.Fetch(ctx, sourceURL)
	if err != nil {
		return nil, &ProviderError{Kind: KindFetchFailed, Key: canonical, URL: sourceURL, Cause: err}
	}

	answers, err := Parse(body)
	if err != nil {
		return nil, &ProviderError{Kind: KindParseFailed, Key: canonical, URL: sourceURL, Cause: err}
	}

	return answers, nil
}
