package feed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MikeSquared-Agency/Advisor/internal/catalog"
)

const csvBody = "Company Names,Cars Names,Cars Prices,Fuel Types\nToyota,Corolla,\"$21,500\",Petrol\nTesla,Model 3,\"$39,990\",Electric\n"

func TestFetchRowsCSV(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Write([]byte(csvBody))
	}))
	defer srv.Close()

	rows, err := NewHTTPClient(srv.URL, "secret", catalog.EncodingUTF8).FetchRows(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Toyota", rows[0].Brand)
	assert.Equal(t, "$39,990", rows[1].Price)
}

func TestFetchRowsJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"brand":"Kia","name":"Rio","price":"17000","seats":"5"}]`))
	}))
	defer srv.Close()

	rows, err := NewHTTPClient(srv.URL, "", catalog.EncodingLatin1).FetchRows(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, catalog.Row{Brand: "Kia", Name: "Rio", Price: "17000", Seats: "5"}, rows[0])
}

func TestFetchRowsErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/missing":
			http.Error(w, "gone", http.StatusNotFound)
		case "/badjson":
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{not json`))
		default:
			w.Write([]byte("Cars Names\nCorolla\n"))
		}
	}))
	defer srv.Close()

	ctx := context.Background()
	_, err := NewHTTPClient(srv.URL+"/missing", "", catalog.EncodingUTF8).FetchRows(ctx)
	assert.ErrorContains(t, err, "404")

	_, err = NewHTTPClient(srv.URL+"/badjson", "", catalog.EncodingUTF8).FetchRows(ctx)
	assert.ErrorContains(t, err, "decode catalog feed")

	_, err = NewHTTPClient(srv.URL+"/nobrand", "", catalog.EncodingUTF8).FetchRows(ctx)
	assert.ErrorIs(t, err, catalog.ErrMissingColumn)
}
