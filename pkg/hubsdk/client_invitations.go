package hubsdk

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// LookupInvitation resolves a raw invitation token to its public view.
// Unknown, used and expired tokens all return the same invalid_or_expired
// error.
func (c *SDKClient) LookupInvitation(ctx context.Context, token string) (*InvitationLookupResponse, error) {
	resp, err := c.doJSON(ctx, http.MethodGet, "/v1/invitations/token/"+url.PathEscape(token), nil)
	if err != nil {
		return nil, err
	}

	var lookup InvitationLookupResponse
	if err := decodeJSON(resp, &lookup, http.StatusOK); err != nil {
		return nil, err
	}

	return &lookup, nil
}

// AcceptInvitation redeems a token, creating the account and signing it in.
func (c *SDKClient) AcceptInvitation(ctx context.Context, token string, req AcceptInvitationRequest) (*SessionResponse, error) {
	resp, err := c.doJSON(ctx, http.MethodPost, "/v1/invitations/accept/"+url.PathEscape(token), req)
	if err != nil {
		return nil, err
	}

	var session SessionResponse
	if err := decodeJSON(resp, &session, http.StatusCreated); err != nil {
		return nil, err
	}

	return &session, nil
}

// DeclineInvitation declines an invitation. Terminal; the token stops
// resolving afterwards.
func (c *SDKClient) DeclineInvitation(ctx context.Context, token string) error {
	resp, err := c.doJSON(ctx, http.MethodPost, "/v1/invitations/decline/"+url.PathEscape(token), nil)
	if err != nil {
		return err
	}

	return checkStatusNoContent(resp)
}

// CreateInvitation mints an invitation. Admin or manager only. The response
// carries the raw token; it is not retrievable afterwards.
func (s *Session) CreateInvitation(ctx context.Context, req CreateInvitationRequest) (*InvitationTokenResponse, error) {
	resp, err := s.doJSON(ctx, http.MethodPost, "/v1/invitations", req)
	if err != nil {
		return nil, err
	}

	var created InvitationTokenResponse
	if err := decodeJSON(resp, &created, http.StatusCreated); err != nil {
		return nil, err
	}

	return &created, nil
}

// ListInvitations returns a page of invitations, newest first. Status filters
// on the effective status; empty means all.
func (s *Session) ListInvitations(ctx context.Context, status string, limit, offset int) (*InvitationListResponse, error) {
	query := url.Values{}
	if status != "" {
		query.Set("status", status)
	}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}
	if offset > 0 {
		query.Set("offset", strconv.Itoa(offset))
	}

	path := "/v1/invitations"
	if encoded := query.Encode(); encoded != "" {
		path += "?" + encoded
	}

	resp, err := s.doJSON(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var list InvitationListResponse
	if err := decodeJSON(resp, &list, http.StatusOK); err != nil {
		return nil, err
	}

	return &list, nil
}

// CancelInvitation withdraws a pending invitation.
func (s *Session) CancelInvitation(ctx context.Context, id string) error {
	resp, err := s.doJSON(ctx, http.MethodDelete, "/v1/invitations/"+url.PathEscape(id), nil)
	if err != nil {
		return err
	}

	return checkStatusNoContent(resp)
}

// ResendInvitation rotates the invitation's token and expiry and re-emails
// the invitee. Allowed while the invitation is pending or expired.
func (s *Session) ResendInvitation(ctx context.Context, id string) (*InvitationTokenResponse, error) {
	resp, err := s.doJSON(ctx, http.MethodPost, fmt.Sprintf("/v1/invitations/%s/resend", url.PathEscape(id)), nil)
	if err != nil {
		return nil, err
	}

	var resent InvitationTokenResponse
	if err := decodeJSON(resp, &resent, http.StatusOK); err != nil {
		return nil, err
	}

	return &resent, nil
}
