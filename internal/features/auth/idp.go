package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Identity is the profile the identity provider returns for a valid
// session handoff.
type Identity struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// IdentityProvider exchanges an opaque session ID from the login
// redirect for the user's profile.
type IdentityProvider interface {
	Exchange(ctx context.Context, sessionID string) (*Identity, error)
}

// HTTPIdentityProvider talks to the hosted OAuth broker. The session ID
// travels in a header, never in the URL, so it stays out of access logs.
type HTTPIdentityProvider struct {
	baseURL string
	client  *http.Client
}

func NewHTTPIdentityProvider(baseURL string) *HTTPIdentityProvider {
	return &HTTPIdentityProvider{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (p *HTTPIdentityProvider) Exchange(ctx context.Context, sessionID string) (*Identity, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-Session-ID", sessionID)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("identity provider unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("identity provider rejected session: status %d", resp.StatusCode)
	}

	var identity Identity
	if err := json.NewDecoder(resp.Body).Decode(&identity); err != nil {
		return nil, fmt.Errorf("decoding identity response: %w", err)
	}
	if identity.Email == "" {
		return nil, fmt.Errorf("identity response missing email")
	}

	return &identity, nil
}
