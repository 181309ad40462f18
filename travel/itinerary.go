package travel

import (
	"fmt"
	"hash/fnv"
	"math/rand"
	"strings"
)

// ItineraryDay is one day of a generated travel plan.
type ItineraryDay struct {
	Title         string `json:"title"`
	Morning       string `json:"morning"`
	Afternoon     string `json:"afternoon"`
	Evening       string `json:"evening"`
	Accommodation string `json:"accommodation,omitempty"`
	Notes         string `json:"notes,omitempty"`
}

// BuildItinerary generates a day-by-day plan for a destination. Interests,
// when provided, steer which activities land on each day. Output is stable
// for the same destination, duration, and interests.
func BuildItinerary(destination string, duration int, interests []string) []ItineraryDay {
	if duration < 1 {
		duration = 1
	}
	destination = titleCase(strings.TrimSpace(destination))

	info := LookupDestination(destination)
	rng := rand.New(rand.NewSource(itinerarySeed(destination, duration, interests)))

	pickFrom := func(options []string, fallback string) string {
		if len(options) == 0 {
			return fallback
		}
		return options[rng.Intn(len(options))]
	}

	var days []ItineraryDay
	usedHighlights := map[string]bool{}
	usedActivities := map[string]bool{}

	takeHighlight := func() string {
		var remaining []string
		for _, h := range info.Highlights {
			if !usedHighlights[h] {
				remaining = append(remaining, h)
			}
		}
		if len(remaining) == 0 {
			remaining = info.Highlights
		}
		h := pickFrom(remaining, "local attractions")
		usedHighlights[h] = true
		return h
	}

	for day := 1; day <= duration; day++ {
		var d ItineraryDay
		switch {
		case day == 1:
			d = ItineraryDay{
				Title:         fmt.Sprintf("Arrival in %s", destination),
				Morning:       fmt.Sprintf("Arrival in %s. Check-in to your %s.", destination, strings.ToLower(pickFrom(info.Accommodation, "hotel"))),
				Afternoon:     fmt.Sprintf("Rest and refresh. Have lunch at a local restaurant sampling %s.", pickFrom(info.Cuisine, "local cuisine")),
				Evening:       "Brief orientation walk around your accommodation area. Dinner at a recommended local restaurant.",
				Accommodation: fmt.Sprintf("%s in %s", pickFrom(info.Accommodation, "Hotel"), destination),
				Notes:         "Take it easy on your first day to acclimatize to the new surroundings.",
			}
		case day == duration:
			d = ItineraryDay{
				Title:     fmt.Sprintf("Departure from %s", destination),
				Morning:   "Last-minute shopping for souvenirs and gifts.",
				Afternoon: "Check-out from accommodation. Enjoy a farewell lunch.",
				Evening:   fmt.Sprintf("Departure from %s with wonderful memories.", destination),
				Notes:     "Keep some buffer time for unexpected delays before your departure.",
			}
		default:
			var morning, afternoon string

			// Match stated interests against the destination's activities
			// so the plan reflects them first.
			for _, interest := range interests {
				for _, activity := range info.Activities {
					if usedActivities[activity] {
						continue
					}
					if strings.Contains(strings.ToLower(activity), strings.ToLower(interest)) {
						if morning == "" {
							morning = fmt.Sprintf("Visit %s - %s", takeHighlight(), activity)
							usedActivities[activity] = true
							continue
						}
						if afternoon == "" {
							afternoon = fmt.Sprintf("Experience %s at %s", activity, takeHighlight())
							usedActivities[activity] = true
						}
					}
				}
			}

			if morning == "" {
				morning = fmt.Sprintf("Visit %s", takeHighlight())
			}
			if afternoon == "" {
				afternoon = fmt.Sprintf("Explore %s. Try %s", takeHighlight(), pickFrom(info.Activities, "local experiences"))
			}

			d = ItineraryDay{
				Title:         fmt.Sprintf("Exploring %s", destination),
				Morning:       morning,
				Afternoon:     afternoon,
				Evening:       fmt.Sprintf("Enjoy %s for dinner. Experience the local nightlife or relax at your accommodation.", pickFrom(info.Cuisine, "local cuisine")),
				Accommodation: fmt.Sprintf("%s in %s", pickFrom(info.Accommodation, "Hotel"), destination),
				Notes:         "Adjust this day's schedule based on weather conditions and your energy level.",
			}
		}
		days = append(days, d)
	}

	return days
}

func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func itinerarySeed(destination string, duration int, interests []string) int64 {
	h := fnv.New64a()
	h.Write([]byte(strings.ToLower(destination)))
	fmt.Fprintf(h, "|%d", duration)
	for _, i := range interests {
		h.Write([]byte{'|'})
		h.Write([]byte(strings.ToLower(i)))
	}
	return int64(h.Sum64())
}

// FormatItinerary renders an itinerary the way the chat agent presents it.
func FormatItinerary(destination string, days []ItineraryDay) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Travel Itinerary for %s - %d days\n\n", destination, len(days))
	for i, d := range days {
		fmt.Fprintf(&b, "Day %d: %s\n", i+1, d.Title)
		fmt.Fprintf(&b, "Morning: %s\n", d.Morning)
		fmt.Fprintf(&b, "Afternoon: %s\n", d.Afternoon)
		fmt.Fprintf(&b, "Evening: %s\n", d.Evening)
		if d.Accommodation != "" {
			fmt.Fprintf(&b, "Accommodation: %s\n", d.Accommodation)
		}
		if d.Notes != "" {
			fmt.Fprintf(&b, "Notes: %s\n", d.Notes)
		}
		b.WriteString("\n")
	}
	b.WriteString("This itinerary is customized based on your interests and the destination's highlights. You can adjust the activities based on your preferences and travel pace.")
	return b.String()
}
