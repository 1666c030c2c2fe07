// ABOUTME: Tests for the PlanVenture API client
// ABOUTME: Uses httptest to mock backend responses

package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/oapi-codegen/nullable"
)

// staticCreds is a fixed-token CredentialSource for tests.
type staticCreds string

func (s staticCreds) AccessToken() string { return string(s) }

func TestLogin_SendsCredentialsAndDecodesTokens(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/login" {
			t.Errorf("expected path /auth/login, got %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "" {
			t.Error("login must go out anonymous")
		}
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("failed to decode body: %v", err)
		}
		if body["email"] != "a@b.com" || body["password"] != "pw" {
			t.Errorf("unexpected body: %v", body)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(AuthResult{
			User:   UserProfile{ID: 1, EmailAddress: "a@b.com"},
			Tokens: Tokens{AccessToken: "at", RefreshToken: "rt"},
		})
	}))
	defer server.Close()

	c := New(server.URL)
	result, err := c.Login(context.Background(), "a@b.com", "pw")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Tokens.AccessToken != "at" || result.Tokens.RefreshToken != "rt" {
		t.Errorf("unexpected tokens: %+v", result.Tokens)
	}
}

func TestGetTrip_InjectsBearerCredential(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer token-1" {
			t.Errorf("expected bearer header, got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]Trip{"trip": {ID: 7, Destination: "Paris"}})
	}))
	defer server.Close()

	c := New(server.URL)
	c.SetCredentialSource(staticCreds("token-1"))

	trip, err := c.GetTrip(context.Background(), 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if trip.ID != 7 || trip.Destination != "Paris" {
		t.Errorf("unexpected trip: %+v", trip)
	}
}

func TestGetTrip_NoCredentialMeansNoHeader(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "" {
			t.Error("expected no Authorization header without a credential")
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]Trip{"trip": {ID: 1}})
	}))
	defer server.Close()

	c := New(server.URL)
	c.SetCredentialSource(staticCreds(""))
	if _, err := c.GetTrip(context.Background(), 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestGetTrip_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"error": "Trip not found"})
	}))
	defer server.Close()

	c := New(server.URL)
	_, err := c.GetTrip(context.Background(), 99)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	var apiErr *Error
	if !errors.As(err, &apiErr) || apiErr.Message != "Trip not found" {
		t.Errorf("expected verbatim server message, got %v", err)
	}
}

func TestUnauthorized_HandlerRunsBeforeReturn(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"error": "Token has expired"})
	}))
	defer server.Close()

	c := New(server.URL)
	c.SetCredentialSource(staticCreds("stale"))

	invoked := false
	c.SetUnauthorizedHandler(func() { invoked = true })

	_, err := c.GetTrip(context.Background(), 1)
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if !invoked {
		t.Error("expected unauthorized handler invoked")
	}
}

func TestUnauthorized_AnonymousRequestDoesNotForceLogout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"error": "Invalid email or password"})
	}))
	defer server.Close()

	c := New(server.URL)
	invoked := false
	c.SetUnauthorizedHandler(func() { invoked = true })

	_, err := c.Login(context.Background(), "a@b.com", "wrong")
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if invoked {
		t.Error("a rejected login is not a session event")
	}
}

func TestUpdateTrip_SendsExactPatchBody(t *testing.T) {
	var received []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch {
			t.Errorf("expected PATCH, got %s", r.Method)
		}
		if r.URL.Path != "/trips/5" {
			t.Errorf("expected path /trips/5, got %s", r.URL.Path)
		}
		received, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]Trip{"trip": {ID: 5, Destination: "Lyon"}})
	}))
	defer server.Close()

	destination := "Lyon"
	patch := TripPatch{Destination: &destination}
	patch.Coordinates.SetNull()

	c := New(server.URL)
	c.SetCredentialSource(staticCreds("t"))
	trip, err := c.UpdateTrip(context.Background(), 5, patch)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if trip.Destination != "Lyon" {
		t.Errorf("unexpected trip: %+v", trip)
	}

	var sent map[string]json.RawMessage
	if err := json.Unmarshal(received, &sent); err != nil {
		t.Fatalf("failed to parse sent body %q: %v", received, err)
	}
	if len(sent) != 2 {
		t.Errorf("expected exactly destination and coordinates, got %v", sent)
	}
	if string(sent["coordinates"]) != "null" {
		t.Errorf("expected explicit null coordinates, got %s", sent["coordinates"])
	}
}

func TestListTrips_QueryParameters(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("page") != "2" || q.Get("per_page") != "25" || q.Get("destination") != "paris" {
			t.Errorf("unexpected query: %v", q)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(TripPage{
			Trips:      []Trip{{ID: 1}},
			Pagination: Pagination{Page: 2, Total: 30},
		})
	}))
	defer server.Close()

	c := New(server.URL)
	page, err := c.ListTrips(context.Background(), ListTripsOptions{Page: 2, PerPage: 25, Destination: "paris"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(page.Trips) != 1 || page.Pagination.Total != 30 {
		t.Errorf("unexpected page: %+v", page)
	}
}

func TestPatchMarshal_OmitsUnspecifiedFields(t *testing.T) {
	var patch TripPatch
	patch.Itinerary = nullable.NewNullableWithValue(`{"notes":"x"}`)

	data, err := json.Marshal(patch)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var m map[string]interface{}
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("failed to parse: %v", err)
	}
	if len(m) != 1 {
		t.Errorf("expected only itinerary present, got %v", m)
	}
}

func TestConnectionError(t *testing.T) {
	c := New("http://127.0.0.1:1")
	_, err := c.Health(context.Background())
	if err == nil {
		t.Error("expected connection error, got nil")
	}
}

func TestContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer server.Close()

	c := New(server.URL)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := c.Health(ctx); err == nil {
		t.Error("expected error for canceled context, got nil")
	}
}
