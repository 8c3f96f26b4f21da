package embedding

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeVector(t *testing.T) {
	tests := []struct {
		name string
		in   []float32
		want []float32
	}{
		{name: "3-4-5", in: []float32{3, 4}, want: []float32{0.6, 0.8}},
		{name: "already unit", in: []float32{1, 0, 0}, want: []float32{1, 0, 0}},
		{name: "zero stays zero", in: []float32{0, 0}, want: []float32{0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := normalizeVector(tt.in)
			require.Len(t, got, len(tt.want))
			for i := range got {
				assert.InDelta(t, tt.want[i], got[i], 1e-6)
			}
		})
	}
}

func TestOllamaProviderGenerateBatch(t *testing.T) {
	var gotModel string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/embed", r.URL.Path)

		var req struct {
			Model string   `json:"model"`
			Input []string `json:"input"`
		}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		gotModel = req.Model

		out := make([][]float32, len(req.Input))
		for i := range req.Input {
			out[i] = []float32{float32(i + 1), 0, 0}
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"model": req.Model, "embeddings": out})
	}))
	defer srv.Close()

	p, err := NewOllamaProvider(srv.URL, "")
	require.NoError(t, err)

	vectors, err := p.GenerateBatch(context.Background(), []string{"plumber", "nurse"}, TaskRetrievalDocument)
	require.NoError(t, err)

	assert.Equal(t, "nomic-embed-text", gotModel)
	require.Len(t, vectors, 2)
	for _, v := range vectors {
		var mag float64
		for _, x := range v {
			mag += float64(x) * float64(x)
		}
		assert.InDelta(t, 1.0, math.Sqrt(mag), 1e-6)
	}
}

func TestOllamaProviderSurfacesServerErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"model not loaded"}`))
	}))
	defer srv.Close()

	p, err := NewOllamaProvider(srv.URL, "nomic-embed-text")
	require.NoError(t, err)

	_, err = p.Generate(context.Background(), "plumber", TaskRetrievalQuery)
	assert.Error(t, err)
}

func TestNewEmbeddingProvider(t *testing.T) {
	p, err := NewEmbeddingProvider(context.Background(), Config{Provider: "ollama"})
	require.NoError(t, err)
	assert.IsType(t, &OllamaProvider{}, p)

	_, err = NewEmbeddingProvider(context.Background(), Config{Provider: "gemini"})
	assert.Error(t, err)

	_, err = NewEmbeddingProvider(context.Background(), Config{Provider: "jina"})
	assert.Error(t, err)
}
