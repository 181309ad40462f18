package travel

import (
	"fmt"
	"strings"
)

// DestinationInfo describes what a destination offers a traveler.
type DestinationInfo struct {
	Name            string   `json:"name"`
	Highlights      []string `json:"highlights"`
	BestSeason      string   `json:"best_season"`
	Cuisine         []string `json:"cuisine"`
	Activities      []string `json:"activities"`
	TypicalDuration string   `json:"typical_duration"`
	Accommodation   []string `json:"accommodation"`
}

// destinationKB covers the destinations the playground knows deeply.
var destinationKB = []DestinationInfo{
	{
		Name:            "Kashmir",
		Highlights:      []string{"Dal Lake", "Gulmarg", "Pahalgam", "Sonamarg", "Mughal Gardens", "Shalimar Bagh"},
		BestSeason:      "April to October",
		Cuisine:         []string{"Rogan Josh", "Yakhni", "Dum Aloo", "Kahwa"},
		Activities:      []string{"Shikara Ride", "Skiing", "Trekking", "Cable Car Ride", "Shopping for Pashmina", "Houseboat Stay"},
		TypicalDuration: "5-7 days",
		Accommodation:   []string{"Houseboat on Dal Lake", "Luxury Resorts in Gulmarg", "Hotels in Srinagar"},
	},
	{
		Name:            "Goa",
		Highlights:      []string{"Baga Beach", "Calangute Beach", "Anjuna Beach", "Dudhsagar Falls", "Fort Aguada", "Basilica of Bom Jesus"},
		BestSeason:      "November to February",
		Cuisine:         []string{"Seafood", "Vindaloo", "Xacuti", "Feni"},
		Activities:      []string{"Beach Activities", "Water Sports", "Nightlife", "Spice Plantation Tour", "Church Visits", "Beach Shack Dining"},
		TypicalDuration: "3-5 days",
		Accommodation:   []string{"Beach Resorts", "Boutique Hotels", "Luxury Villas"},
	},
	{
		Name:            "Kerala",
		Highlights:      []string{"Alleppey Backwaters", "Munnar", "Kovalam Beach", "Thekkady", "Wayanad", "Kochi"},
		BestSeason:      "September to March",
		Cuisine:         []string{"Appam with Stew", "Kerala Fish Curry", "Puttu", "Avial"},
		Activities:      []string{"Houseboat Stay", "Ayurvedic Treatments", "Wildlife Safari", "Tea Gardens Visit", "Cultural Performances", "Backwater Cruise"},
		TypicalDuration: "6-8 days",
		Accommodation:   []string{"Houseboats", "Beach Resorts", "Plantation Stays", "Ayurvedic Retreats"},
	},
	{
		Name:            "Rajasthan",
		Highlights:      []string{"Jaipur", "Udaipur", "Jodhpur", "Jaisalmer", "Pushkar", "Ranthambore"},
		BestSeason:      "October to March",
		Cuisine:         []string{"Dal Baati Churma", "Laal Maas", "Ker Sangri", "Ghevar"},
		Activities:      []string{"Palace Tours", "Desert Safari", "Elephant Ride", "City Tours", "Shopping for Handicrafts", "Cultural Performances"},
		TypicalDuration: "7-10 days",
		Accommodation:   []string{"Heritage Hotels", "Palace Hotels", "Desert Camps", "Luxury Resorts"},
	},
	{
		Name:            "Himachal Pradesh",
		Highlights:      []string{"Shimla", "Manali", "Dharamshala", "Dalhousie", "Kasol", "Spiti Valley"},
		BestSeason:      "March to June and September to November",
		Cuisine:         []string{"Sidu", "Dham", "Chha Gosht", "Babru"},
		Activities:      []string{"Trekking", "Paragliding", "River Rafting", "Camping", "Cultural Exploration", "Hot Springs"},
		TypicalDuration: "5-7 days",
		Accommodation:   []string{"Mountain Resorts", "Cottages", "Homestays", "Luxury Hotels"},
	},
}

// LookupDestination returns what is known about a destination. Unknown
// destinations get a generic template so itinerary planning never fails.
func LookupDestination(destination string) DestinationInfo {
	lower := strings.ToLower(strings.TrimSpace(destination))
	for _, info := range destinationKB {
		kb := strings.ToLower(info.Name)
		if strings.Contains(lower, kb) || (lower != "" && strings.Contains(kb, lower)) {
			return info
		}
	}

	name := strings.TrimSpace(destination)
	return DestinationInfo{
		Name: name,
		Highlights: []string{
			fmt.Sprintf("Popular attractions in %s", name),
			fmt.Sprintf("Cultural experiences in %s", name),
			fmt.Sprintf("Natural beauty of %s", name),
		},
		BestSeason:      "Varies by specific location",
		Cuisine:         []string{"Local specialties", "Regional delicacies", "Traditional dishes"},
		Activities:      []string{"Sightseeing", "Cultural Experiences", "Local Adventures", "Shopping", "Relaxation"},
		TypicalDuration: "3-7 days",
		Accommodation:   []string{"Hotels", "Resorts", "Local Stays"},
	}
}

// PopularDestinations lists well known Indian tourist destinations, used to
// spot a destination mention in free text.
func PopularDestinations() []string {
	return []string{
		"Kashmir", "Goa", "Kerala", "Rajasthan", "Himachal Pradesh",
		"Uttarakhand", "Andaman and Nicobar", "Ladakh", "Delhi",
		"Agra", "Jaipur", "Varanasi", "Amritsar", "Rishikesh",
		"Darjeeling", "Ooty", "Munnar", "Coorg", "Hampi", "Puducherry",
		"Mumbai", "Kolkata", "Bangalore", "Chennai", "Hyderabad",
		"Udaipur", "Jaisalmer", "Manali", "Shimla", "Dharamshala",
		"Kovalam", "Alleppey", "Wayanad", "Mysore", "Khajuraho",
	}
}

// FindDestination spots the first popular destination mentioned in text.
func FindDestination(text string) (string, bool) {
	return ExtractLocation(text, PopularDestinations())
}
