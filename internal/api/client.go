// ABOUTME: HTTP client for the PlanVenture API
// ABOUTME: Injects the Bearer credential and funnels 401s into a forced logout

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// CredentialSource supplies the current access token. An empty string
// means no credential; the request goes out anonymous.
type CredentialSource interface {
	AccessToken() string
}

// Client is the API client for the PlanVenture backend.
type Client struct {
	baseURL        string
	httpClient     *http.Client
	creds          CredentialSource
	onUnauthorized func()
}

// New creates a new API client with the given base URL.
func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// SetCredentialSource installs the source of the access token. Set after
// construction because the session manager needs the client first.
func (c *Client) SetCredentialSource(src CredentialSource) {
	c.creds = src
}

// SetUnauthorizedHandler installs the callback invoked when the backend
// rejects an attached credential. It runs synchronously before the error
// is returned to the caller, so session state is already invalidated by
// the time anyone can observe the failure.
func (c *Client) SetUnauthorizedHandler(fn func()) {
	c.onUnauthorized = fn
}

// errorBody is the backend's error envelope.
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// do dispatches a request and decodes the response into out (when out is
// non-nil). Every request picks up the current credential; a 401 on a
// credentialed request triggers the unauthorized handler exactly once.
func (c *Client) do(ctx context.Context, method, path string, in, out interface{}) error {
	var body *bytes.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	attached := false
	if c.creds != nil {
		if token := c.creds.AccessToken(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
			attached = true
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.handleRequestError(ctx, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := c.decodeError(resp)
		if resp.StatusCode == http.StatusUnauthorized && attached && c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return apiErr
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("invalid response from backend: %w", err)
		}
	}
	return nil
}

// handleRequestError converts context errors to user-friendly messages.
func (c *Client) handleRequestError(ctx context.Context, err error) error {
	if ctx.Err() == context.Canceled {
		return fmt.Errorf("request canceled")
	}
	if ctx.Err() == context.DeadlineExceeded {
		return fmt.Errorf("request timed out")
	}
	return fmt.Errorf("cannot connect to backend at %s: %w", c.baseURL, err)
}

// decodeError parses an API error response into *Error.
func (c *Client) decodeError(resp *http.Response) error {
	var body errorBody
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return &Error{Status: resp.StatusCode}
	}
	return &Error{Status: resp.StatusCode, Message: body.Error}
}

// Register calls POST /auth/register. Success is an implicit login: the
// returned tokens are ready to use.
func (c *Client) Register(ctx context.Context, email, password string) (*AuthResult, error) {
	in := map[string]string{"email": email, "password": password}
	var result AuthResult
	if err := c.do(ctx, http.MethodPost, "/auth/register", in, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Login calls POST /auth/login.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	in := map[string]string{"email": email, "password": password}
	var result AuthResult
	if err := c.do(ctx, http.MethodPost, "/auth/login", in, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ListTripsOptions are the query parameters for GET /trips.
type ListTripsOptions struct {
	Page        int
	PerPage     int
	Destination string
}

// ListTrips calls GET /trips with pagination and optional destination
// filtering.
func (c *Client) ListTrips(ctx context.Context, opts ListTripsOptions) (*TripPage, error) {
	q := url.Values{}
	if opts.Page > 0 {
		q.Set("page", strconv.Itoa(opts.Page))
	}
	if opts.PerPage > 0 {
		q.Set("per_page", strconv.Itoa(opts.PerPage))
	}
	if opts.Destination != "" {
		q.Set("destination", opts.Destination)
	}
	path := "/trips"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var page TripPage
	if err := c.do(ctx, http.MethodGet, path, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// tripEnvelope wraps single-trip responses.
type tripEnvelope struct {
	Trip Trip `json:"trip"`
}

// GetTrip calls GET /trips/{id}. A 404 means not-found-or-not-authorized
// and surfaces as ErrNotFound either way.
func (c *Client) GetTrip(ctx context.Context, id int) (*Trip, error) {
	var env tripEnvelope
	if err := c.do(ctx, http.MethodGet, "/trips/"+strconv.Itoa(id), nil, &env); err != nil {
		return nil, err
	}
	return &env.Trip, nil
}

// CreateTrip calls POST /trips.
func (c *Client) CreateTrip(ctx context.Context, in CreateTripInput) (*Trip, error) {
	var env tripEnvelope
	if err := c.do(ctx, http.MethodPost, "/trips", in, &env); err != nil {
		return nil, err
	}
	return &env.Trip, nil
}

// UpdateTrip calls PATCH /trips/{id} with the minimal patch computed by
// the diff engine. Omitted fields are unchanged on the server.
func (c *Client) UpdateTrip(ctx context.Context, id int, patch TripPatch) (*Trip, error) {
	var env tripEnvelope
	if err := c.do(ctx, http.MethodPatch, "/trips/"+strconv.Itoa(id), patch, &env); err != nil {
		return nil, err
	}
	return &env.Trip, nil
}

// DeleteTrip calls DELETE /trips/{id}.
func (c *Client) DeleteTrip(ctx context.Context, id int) (*DeletedTrip, error) {
	var env struct {
		Message     string      `json:"message"`
		DeletedTrip DeletedTrip `json:"deleted_trip"`
	}
	if err := c.do(ctx, http.MethodDelete, "/trips/"+strconv.Itoa(id), nil, &env); err != nil {
		return nil, err
	}
	return &env.DeletedTrip, nil
}

// Health calls GET /health/simple.
func (c *Client) Health(ctx context.Context) (*HealthStatus, error) {
	var status HealthStatus
	if err := c.do(ctx, http.MethodGet, "/health/simple", nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}
