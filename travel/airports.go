// Package travel holds the domain logic for the playground's travel agents:
// airport lookup, date parsing, synthetic flight inventory, destination
// knowledge, and itinerary generation. It has no provider or transport
// dependencies so the tool and server layers can build on it freely.
package travel

import (
	"sort"
	"strings"
)

// cityToAirport maps common Indian cities to their IATA airport codes.
var cityToAirport = map[string]string{
	"delhi":              "DEL",
	"new delhi":          "DEL",
	"mumbai":             "BOM",
	"bangalore":          "BLR",
	"bengaluru":          "BLR",
	"hyderabad":          "HYD",
	"chennai":            "MAA",
	"kolkata":            "CCU",
	"ahmedabad":          "AMD",
	"pune":               "PNQ",
	"jaipur":             "JAI",
	"goa":                "GOI",
	"lucknow":            "LKO",
	"kochi":              "COK",
	"cochin":             "COK",
	"thiruvananthapuram": "TRV",
	"trivandrum":         "TRV",
	"bhubaneswar":        "BBI",
	"indore":             "IDR",
	"nagpur":             "NAG",
	"patna":              "PAT",
	"chandigarh":         "IXC",
	"srinagar":           "SXR",
	"kashmir":            "SXR",
}

// AirportCode resolves a city name to its IATA code. Inputs that already
// look like a code (three uppercase letters) pass through unchanged, as do
// cities the table does not know.
func AirportCode(city string) string {
	if len(city) == 3 && city == strings.ToUpper(city) && !strings.ContainsAny(city, "0123456789") {
		return city
	}

	normalized := strings.ToLower(strings.TrimSpace(city))
	if normalized == "" {
		return city
	}
	if code, ok := cityToAirport[normalized]; ok {
		return code
	}

	// Partial match covers inputs like "Goa airport" or truncations. Sorted
	// keys keep ambiguous inputs resolving to the same code on every call.
	for _, name := range sortedCityNames() {
		if strings.Contains(normalized, name) || strings.Contains(name, normalized) {
			return cityToAirport[name]
		}
	}

	return city
}

func sortedCityNames() []string {
	names := make([]string, 0, len(cityToAirport))
	for name := range cityToAirport {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// KnownCities returns the city names with airport mappings, in sorted
// order, for building search context and prompts.
func KnownCities() []string {
	return sortedCityNames()
}
