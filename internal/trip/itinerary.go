// ABOUTME: Default itinerary scaffold for new trips
// ABOUTME: Generates a day-by-day template from destination, dates, and trip type

package trip

import (
	"encoding/json"
	"fmt"
	"time"
)

// TripType selects the activity template used for the middle days.
type TripType string

const (
	TypeLeisure   TripType = "leisure"
	TypeBusiness  TripType = "business"
	TypeAdventure TripType = "adventure"
	TypeCultural  TripType = "cultural"
)

// TripTypes lists the supported trip types for form options.
var TripTypes = []TripType{TypeLeisure, TypeBusiness, TypeAdventure, TypeCultural}

// dayPlan is the morning/afternoon/evening block for one day.
type dayPlan struct {
	Morning   string `json:"morning"`
	Afternoon string `json:"afternoon"`
	Evening   string `json:"evening"`
}

// scaffold is the generated itinerary document.
type scaffold struct {
	Destination  string             `json:"destination"`
	TripType     TripType           `json:"trip_type"`
	DurationDays int                `json:"duration_days"`
	Itinerary    map[string]dayPlan `json:"itinerary"`
	Packing      []string           `json:"packing_checklist"`
}

// ScaffoldItinerary generates a default day-by-day itinerary as a JSON
// string ready to attach to a new trip. The first day covers arrival,
// the last departure, and the days between follow the trip type.
func ScaffoldItinerary(destination, startDate, endDate string, tripType TripType) (string, error) {
	start, err := time.Parse("2006-01-02", startDate)
	if err != nil {
		return "", &ValidationError{Message: "Start date must be in YYYY-MM-DD format"}
	}
	end, err := time.Parse("2006-01-02", endDate)
	if err != nil {
		return "", &ValidationError{Message: "End date must be in YYYY-MM-DD format"}
	}
	if !end.After(start) {
		return "", &ValidationError{Message: "End date must be after start date"}
	}

	duration := int(end.Sub(start).Hours() / 24)
	days := make(map[string]dayPlan, duration)
	current := start
	for i := 0; i < duration; i++ {
		key := fmt.Sprintf("Day %d (%s)", i+1, current.Format("2006-01-02"))
		switch {
		case i == 0:
			days[key] = dayPlan{
				Morning:   "Arrival and hotel check-in",
				Afternoon: fmt.Sprintf("Explore %s city center", destination),
				Evening:   "Welcome dinner at local restaurant",
			}
		case i == duration-1:
			days[key] = dayPlan{
				Morning:   "Final sightseeing and souvenir shopping",
				Afternoon: "Pack and prepare for departure",
				Evening:   "Departure",
			}
		default:
			days[key] = dayTemplate(destination, tripType)
		}
		current = current.AddDate(0, 0, 1)
	}

	doc := scaffold{
		Destination:  destination,
		TripType:     tripType,
		DurationDays: duration,
		Itinerary:    days,
		Packing:      packingChecklist(tripType),
	}
	out, err := json.Marshal(doc)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// dayTemplate returns the middle-day activities for a trip type,
// defaulting to leisure for unknown types.
func dayTemplate(destination string, tripType TripType) dayPlan {
	switch tripType {
	case TypeBusiness:
		return dayPlan{
			Morning:   "Business meetings",
			Afternoon: "Lunch meeting and conference sessions",
			Evening:   "Networking dinner",
		}
	case TypeAdventure:
		return dayPlan{
			Morning:   fmt.Sprintf("Outdoor activity in %s", destination),
			Afternoon: "Adventure sports or hiking",
			Evening:   "Rest and local cuisine",
		}
	case TypeCultural:
		return dayPlan{
			Morning:   fmt.Sprintf("Visit museums in %s", destination),
			Afternoon: "Cultural sites and historical landmarks",
			Evening:   "Local cultural show or performance",
		}
	default:
		return dayPlan{
			Morning:   fmt.Sprintf("Visit main attraction in %s", destination),
			Afternoon: "Lunch and explore local neighborhoods",
			Evening:   "Dinner and local entertainment",
		}
	}
}

// packingChecklist returns base items plus trip-type extras.
func packingChecklist(tripType TripType) []string {
	items := []string{
		"Passport/ID",
		"Travel insurance documents",
		"Comfortable walking shoes",
		"Weather-appropriate clothing",
		"Medications",
		"Phone charger and travel adapter",
	}
	switch tripType {
	case TypeBusiness:
		items = append(items, "Business attire", "Laptop and charger", "Business cards")
	case TypeAdventure:
		items = append(items, "Hiking boots", "Rain jacket", "First aid kit")
	case TypeCultural:
		items = append(items, "Guidebook", "Camera", "Modest clothing for religious sites")
	}
	return items
}
