// ABOUTME: Wire types for the PlanVenture API
// ABOUTME: Field names mirror the backend's JSON contract exactly

package api

import "github.com/oapi-codegen/nullable"

// UserProfile is the user object returned by the auth endpoints. It is
// cached locally for display only; authorization is server-enforced.
type UserProfile struct {
	ID           int    `json:"user_id"`
	EmailAddress string `json:"email_address"`
	CreatedAt    string `json:"account_created_at"`
	UpdatedAt    string `json:"last_updated_at,omitempty"`
	IsActive     bool   `json:"is_active"`
}

// Tokens is the credential pair issued on login and register. Opaque to
// the client beyond presence.
type Tokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// AuthResult is the response body of /auth/login and /auth/register.
type AuthResult struct {
	Message string      `json:"message"`
	User    UserProfile `json:"user"`
	Tokens  Tokens      `json:"tokens"`
}

// Coordinates is the optional geographic location of a trip. The pair is
// always written and cleared as a unit.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Trip is a trip resource as returned by the backend. Itinerary is a
// JSON document serialized as a string, or empty when unset.
type Trip struct {
	ID          int          `json:"id"`
	UserID      int          `json:"user_id"`
	Destination string       `json:"destination"`
	StartDate   string       `json:"start_date"`
	EndDate     string       `json:"end_date"`
	Coordinates *Coordinates `json:"coordinates"`
	Itinerary   string       `json:"itinerary,omitempty"`
	CreatedAt   string       `json:"created_at"`
	UpdatedAt   string       `json:"updated_at"`
}

// CreateTripInput is the request body for POST /trips.
type CreateTripInput struct {
	Destination string   `json:"destination"`
	StartDate   string   `json:"start_date"`
	EndDate     string   `json:"end_date"`
	Latitude    *float64 `json:"latitude,omitempty"`
	Longitude   *float64 `json:"longitude,omitempty"`
	Itinerary   string   `json:"itinerary,omitempty"`
}

// TripPatch is the request body for PATCH /trips/{id}. Omitted fields
// are contractually "unchanged"; the nullable fields distinguish
// omission from an explicit clearing null.
type TripPatch struct {
	Destination *string                        `json:"destination,omitempty"`
	StartDate   *string                        `json:"start_date,omitempty"`
	EndDate     *string                        `json:"end_date,omitempty"`
	Coordinates nullable.Nullable[Coordinates] `json:"coordinates,omitempty"`
	Itinerary   nullable.Nullable[string]      `json:"itinerary,omitempty"`
}

// IsZero reports whether the patch carries no fields at all.
func (p TripPatch) IsZero() bool {
	return p.Destination == nil &&
		p.StartDate == nil &&
		p.EndDate == nil &&
		!p.Coordinates.IsSpecified() &&
		!p.Itinerary.IsSpecified()
}

// Pagination describes the paging metadata on trip listings.
type Pagination struct {
	Page    int  `json:"page"`
	Pages   int  `json:"pages"`
	PerPage int  `json:"per_page"`
	Total   int  `json:"total"`
	HasNext bool `json:"has_next"`
	HasPrev bool `json:"has_prev"`
}

// TripPage is the response body of GET /trips.
type TripPage struct {
	Trips      []Trip     `json:"trips"`
	Pagination Pagination `json:"pagination"`
}

// DeletedTrip is the summary echoed back by DELETE /trips/{id}.
type DeletedTrip struct {
	ID          int    `json:"id"`
	Destination string `json:"destination"`
	StartDate   string `json:"start_date"`
}

// HealthStatus is the response body of GET /health/simple.
type HealthStatus struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}
