// Package catalog talks to the remote product catalog API.
//
// The rest of the system depends only on the Client contract and the error
// taxonomy in errors.go; URL layout, headers and retries stay private to the
// HTTP implementation.
package catalog

import (
	"context"
	"io"
	"net/http"
	"net/url"

	"github.com/go-faster/errors"

	"github.com/storekit/shopcore/internal/domain/product"
)

// Client fetches the product catalog.
type Client interface {
	FetchProducts(ctx context.Context) ([]product.Product, error)
}

// HTTPClient implements Client against the storefront HTTP API.
type HTTPClient struct {
	base string
	http *http.Client
}

var _ Client = (*HTTPClient)(nil)

// NewHTTPClient creates an HTTPClient for the given base URL. When client is
// nil, http.DefaultClient is used.
func NewHTTPClient(baseURL string, client *http.Client) *HTTPClient {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPClient{base: baseURL, http: client}
}

// FetchProducts performs GET <base>/products and decodes the JSON array.
//
// Failures map onto the package taxonomy: an unbuildable URL yields
// ErrInvalidRequest, a non-2xx status yields *StatusError, an empty body
// yields ErrMalformedResponse, an undecodable body yields ErrDecode and
// anything network-level yields ErrUnknown.
func (c *HTTPClient) FetchProducts(ctx context.Context) ([]product.Product, error) {
	u, err := url.JoinPath(c.base, "products")
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidRequest, "join %q: %s", c.base, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidRequest, "build request: %s", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.Wrapf(ErrUnknown, "do request: %s", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Code: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrapf(ErrUnknown, "read body: %s", err)
	}
	if len(body) == 0 {
		return nil, ErrMalformedResponse
	}

	products, err := product.DecodeList(body)
	if err != nil {
		return nil, errors.Wrapf(ErrDecode, "%s", err)
	}
	return products, nil
}
