// Package identity abstracts the external identity provider. Credential
// issuance and verification internals live in that service; this package
// only resolves an inbound bearer credential to a principal.
package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	apperrors "bokning/pkg/errors"
	"bokning/pkg/model"
)

type Provider interface {
	// Resolve maps a bearer credential to an identity. It returns an
	// UNAUTHORIZED AppError for missing or invalid credentials.
	Resolve(ctx context.Context, credential string) (model.Identity, error)
}

type httpProvider struct {
	baseURL string
	client  *http.Client
}

// NewHTTPProvider talks to the identity provider's verify endpoint.
func NewHTTPProvider(baseURL string, timeout time.Duration) Provider {
	return &httpProvider{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

type verifyResponse struct {
	ID   string `json:"id"`
	Role string `json:"role"`
}

func (p *httpProvider) Resolve(ctx context.Context, credential string) (model.Identity, error) {
	if credential == "" {
		return model.Identity{}, apperrors.Unauthorized("No credential provided")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/verify", nil)
	if err != nil {
		return model.Identity{}, apperrors.Internal("Failed to build identity request", err)
	}
	req.Header.Set("Authorization", "Bearer "+credential)

	resp, err := p.client.Do(req)
	if err != nil {
		return model.Identity{}, apperrors.Unavailable("Identity provider")
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized, http.StatusForbidden:
		return model.Identity{}, apperrors.Unauthorized("Invalid credential")
	default:
		return model.Identity{}, apperrors.Internal(
			fmt.Sprintf("Identity provider returned status %d", resp.StatusCode), nil)
	}

	var body verifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return model.Identity{}, apperrors.Internal("Failed to decode identity response", err)
	}
	if body.ID == "" {
		return model.Identity{}, apperrors.Unauthorized("Invalid credential")
	}

	role := body.Role
	if role != model.RoleAdmin {
		role = model.RoleUser
	}

	return model.Identity{ID: body.ID, Role: role}, nil
}
