// ABOUTME: Edit diff engine computing the minimal PATCH for a trip
// ABOUTME: Compares an immutable original against a user-edited draft

package trip

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/planventure/planventure-cli/internal/api"
)

// ErrNoChanges is the explicit outcome when the draft equals the
// original. Callers must surface it to the user instead of submitting an
// empty patch.
var ErrNoChanges = errors.New("no changes to save")

// ValidationError is a draft rejected before any comparison (malformed
// date, half-filled coordinates, out-of-range values).
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Draft is an in-progress edit of a trip. Coordinate fields are kept as
// raw form input so "cleared" and "zero" stay distinguishable.
type Draft struct {
	Destination string
	StartDate   string
	EndDate     string
	Latitude    string
	Longitude   string
	Itinerary   string
}

// DraftOf builds an editable draft prefilled from a fetched trip.
func DraftOf(t api.Trip) Draft {
	d := Draft{
		Destination: t.Destination,
		StartDate:   t.StartDate,
		EndDate:     t.EndDate,
		Itinerary:   t.Itinerary,
	}
	if t.Coordinates != nil {
		d.Latitude = strconv.FormatFloat(t.Coordinates.Latitude, 'f', -1, 64)
		d.Longitude = strconv.FormatFloat(t.Coordinates.Longitude, 'f', -1, 64)
	}
	return d
}

// Diff computes the minimal patch between the original and the draft.
// The original is never mutated. Scalar fields are compared trimmed with
// dates normalized to ISO form; coordinates are an atomic pair whose
// removal is an explicit null; itineraries are compared by canonical
// serialization so formatting and key order never produce a patch.
func Diff(original api.Trip, draft Draft) (api.TripPatch, error) {
	var patch api.TripPatch

	destination := strings.TrimSpace(draft.Destination)
	if destination == "" {
		return patch, &ValidationError{Message: "Destination is required"}
	}
	if destination != strings.TrimSpace(original.Destination) {
		patch.Destination = &destination
	}

	startDate, err := normalizeDate(draft.StartDate)
	if err != nil {
		return patch, &ValidationError{Message: "Start date must be in YYYY-MM-DD format"}
	}
	endDate, err := normalizeDate(draft.EndDate)
	if err != nil {
		return patch, &ValidationError{Message: "End date must be in YYYY-MM-DD format"}
	}
	if endDate <= startDate {
		return patch, &ValidationError{Message: "End date must be after start date"}
	}
	if startDate != normalizeDateLoose(original.StartDate) {
		patch.StartDate = &startDate
	}
	if endDate != normalizeDateLoose(original.EndDate) {
		patch.EndDate = &endDate
	}

	if err := diffCoordinates(&patch, original.Coordinates, draft); err != nil {
		return patch, err
	}
	diffItinerary(&patch, original.Itinerary, draft.Itinerary)

	if patch.IsZero() {
		return patch, ErrNoChanges
	}
	return patch, nil
}

// diffCoordinates compares the coordinate pair as a unit. Clearing both
// inputs while the original had coordinates produces an explicit null so
// the backend never reads the omission as "keep existing value".
func diffCoordinates(patch *api.TripPatch, original *api.Coordinates, draft Draft) error {
	lat := strings.TrimSpace(draft.Latitude)
	lng := strings.TrimSpace(draft.Longitude)

	if lat == "" && lng == "" {
		if original != nil {
			patch.Coordinates.SetNull()
		}
		return nil
	}
	if lat == "" || lng == "" {
		return &ValidationError{Message: "Coordinates require both latitude and longitude"}
	}

	latVal, err := strconv.ParseFloat(lat, 64)
	if err != nil {
		return &ValidationError{Message: "Latitude must be a valid number"}
	}
	lngVal, err := strconv.ParseFloat(lng, 64)
	if err != nil {
		return &ValidationError{Message: "Longitude must be a valid number"}
	}
	if latVal < -90 || latVal > 90 {
		return &ValidationError{Message: "Latitude must be between -90 and 90"}
	}
	if lngVal < -180 || lngVal > 180 {
		return &ValidationError{Message: "Longitude must be between -180 and 180"}
	}

	// Exact equality: values come from discrete user input, not computation.
	if original == nil || original.Latitude != latVal || original.Longitude != lngVal {
		patch.Coordinates.Set(api.Coordinates{Latitude: latVal, Longitude: lngVal})
	}
	return nil
}

// diffItinerary compares canonical serializations of the itinerary.
func diffItinerary(patch *api.TripPatch, original, draft string) {
	draftCanonical := canonicalItinerary(draft)
	originalCanonical := canonicalItinerary(original)

	if draftCanonical == originalCanonical {
		return
	}
	if draftCanonical == "" {
		patch.Itinerary.SetNull()
		return
	}
	patch.Itinerary.Set(draftCanonical)
}

// canonicalItinerary reduces an itinerary to a canonical JSON string:
// valid JSON is re-serialized through a generic value (map keys sorted),
// anything else is wrapped as a single free-text note. Empty input
// canonicalizes to the empty string.
func canonicalItinerary(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	var v interface{}
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		v = map[string]interface{}{"notes": s}
	}
	out, err := json.Marshal(v)
	if err != nil {
		return s
	}
	return string(out)
}

// normalizeDate trims and normalizes a date to ISO YYYY-MM-DD.
func normalizeDate(s string) (string, error) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	if err != nil {
		return "", err
	}
	return t.Format("2006-01-02"), nil
}

// normalizeDateLoose normalizes a server-provided date, falling back to
// the trimmed raw value when it does not parse.
func normalizeDateLoose(s string) string {
	if normalized, err := normalizeDate(s); err == nil {
		return normalized
	}
	return strings.TrimSpace(s)
}
