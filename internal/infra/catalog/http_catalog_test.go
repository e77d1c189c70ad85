package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPCatalog_Product(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/products/p-1":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"id":"p-1","title":"Book","description":"paper","price":12.5}`))
		case "/products/missing":
			w.WriteHeader(http.StatusNotFound)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer srv.Close()

	c := NewHTTPCatalog(srv.URL, time.Second)

	t.Run("ok", func(t *testing.T) {
		p, err := c.Product(context.Background(), "p-1")
		require.NoError(t, err)
		assert.Equal(t, "p-1", p.ID)
		assert.Equal(t, "Book", p.Title)
		assert.True(t, decimal.RequireFromString("12.5").Equal(p.Price))
	})

	t.Run("not found", func(t *testing.T) {
		_, err := c.Product(context.Background(), "missing")
		assert.ErrorIs(t, err, ErrProductNotFound)
	})

	t.Run("upstream error", func(t *testing.T) {
		_, err := c.Product(context.Background(), "boom")
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrProductNotFound)
		assert.Contains(t, err.Error(), "status 500")
	})
}

func TestNoSource(t *testing.T) {
	_, err := NoSource().Product(context.Background(), "x")
	assert.ErrorIs(t, err, ErrProductNotFound)
}
