package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExchangeSendsSessionIDInHeader(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "sess-123", r.Header.Get("X-Session-ID"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"email":"ada@example.com","name":"Ada","picture":"https://img.example.com/ada.png"}`))
	}))
	defer server.Close()

	idp := NewHTTPIdentityProvider(server.URL)
	identity, err := idp.Exchange(context.Background(), "sess-123")
	require.NoError(t, err)
	require.Equal(t, "ada@example.com", identity.Email)
	require.Equal(t, "Ada", identity.Name)
}

func TestExchangeRejectedSession(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	idp := NewHTTPIdentityProvider(server.URL)
	_, err := idp.Exchange(context.Background(), "bad-session")
	require.Error(t, err)
}

func TestExchangeMissingEmail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"name":"No Email"}`))
	}))
	defer server.Close()

	idp := NewHTTPIdentityProvider(server.URL)
	_, err := idp.Exchange(context.Background(), "sess-456")
	require.Error(t, err)
}
