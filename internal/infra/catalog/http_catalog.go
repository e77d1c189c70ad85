package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"cartservice/internal/domain/model"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// 商品サービス（GET {baseURL}/products/{id}）
type HTTPCatalog struct {
	baseURL    string
	httpClient *http.Client
}

func NewHTTPCatalog(baseURL string, timeout time.Duration) *HTTPCatalog {
	return &HTTPCatalog{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

func (c *HTTPCatalog) Product(ctx context.Context, id string) (model.Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/products/"+url.PathEscape(id), nil)
	if err != nil {
		return model.Product{}, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return model.Product{}, fmt.Errorf("product service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return model.Product{}, ErrProductNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return model.Product{}, fmt.Errorf("product service returned status %d", resp.StatusCode)
	}

	var p model.Product
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		return model.Product{}, fmt.Errorf("decode product: %w", err)
	}
	if p.ID == "" {
		p.ID = id
	}
	return p, nil
}

var _ Source = (*HTTPCatalog)(nil)
