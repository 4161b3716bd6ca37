package hubsdk

import (
	"context"
	"net/http"
)

// Login authenticates with email and password, returning the session payload.
func (c *SDKClient) Login(ctx context.Context, email, password string) (*SessionResponse, error) {
	resp, err := c.doJSON(ctx, http.MethodPost, "/v1/auth/login", LoginRequest{
		Email:    email,
		Password: password,
	})
	if err != nil {
		return nil, err
	}

	var session SessionResponse
	if err := decodeJSON(resp, &session, http.StatusOK); err != nil {
		return nil, err
	}

	return &session, nil
}

// Bootstrap creates the first admin account. Only succeeds while the service
// has no users and the setup token matches the server's configuration.
func (c *SDKClient) Bootstrap(ctx context.Context, req BootstrapRequest) (*SessionResponse, error) {
	resp, err := c.doJSON(ctx, http.MethodPost, "/v1/bootstrap", req)
	if err != nil {
		return nil, err
	}

	var session SessionResponse
	if err := decodeJSON(resp, &session, http.StatusCreated); err != nil {
		return nil, err
	}

	return &session, nil
}
