package travel

import (
	"fmt"
	"hash/fnv"
	"math/rand"
	"sort"
	"strings"
)

// Flight is one synthetic inventory entry on an Indian domestic route.
type Flight struct {
	Airline        string `json:"airline"`
	FlightNumber   string `json:"flight_number"`
	Origin         string `json:"origin"`
	Destination    string `json:"destination"`
	DepartureDate  string `json:"departure_date"`
	DepartureTime  string `json:"departure_time"`
	ArrivalTime    string `json:"arrival_time"`
	Duration       string `json:"duration"`
	PriceINR       int    `json:"price"`
	SeatsAvailable int    `json:"seats_available"`
	Stops          int    `json:"stops"`
}

type airlineSpec struct {
	name   string
	prefix string
	step   int
}

// Indian carriers with their flight number series.
var airlines = []airlineSpec{
	{"Air India", "AI", 1},
	{"IndiGo", "6E", 10},
	{"SpiceJet", "SG", 5},
	{"Vistara", "UK", 8},
	{"Air Asia India", "I5", 7},
	{"Go Air", "G8", 6},
	{"Alliance Air", "9I", 4},
}

// GenerateFlights produces a plausible inventory for a route and date,
// sorted cheapest first. The same (date, origin, destination) always yields
// the same flights so searches, bookings, and lookups agree with each other.
func GenerateFlights(date, origin, destination string) []Flight {
	rng := rand.New(rand.NewSource(routeSeed(date, origin, destination)))
	count := 5 + rng.Intn(6)

	flights := make([]Flight, 0, count)
	for i := 0; i < count; i++ {
		spec := airlines[i%len(airlines)]

		depHour := (6+i*2)%15 + 6
		depMinute := (i * 13) % 60
		durHours := 1 + i%3
		durMinutes := (i * 10) % 60
		arrHour := (depHour + durHours) % 24
		arrMinute := (depMinute + durMinutes) % 60

		stops := 0
		if float64(i) >= float64(count)*0.7 {
			stops = 1
		}

		price := float64(2500 + i*500)
		if stops > 0 {
			price *= 0.9
		}
		if durHours > 2 {
			price *= 1.2
		}
		if spec.name == "Vistara" || spec.name == "Air India" {
			price *= 1.15
		}
		price *= 0.95 + rng.Float64()*0.2

		flights = append(flights, Flight{
			Airline:        spec.name,
			FlightNumber:   fmt.Sprintf("%s%d", spec.prefix, 100+i*spec.step),
			Origin:         origin,
			Destination:    destination,
			DepartureDate:  date,
			DepartureTime:  fmt.Sprintf("%02d:%02d", depHour, depMinute),
			ArrivalTime:    fmt.Sprintf("%02d:%02d", arrHour, arrMinute),
			Duration:       fmt.Sprintf("%dh %dm", durHours, durMinutes),
			PriceINR:       int(price),
			SeatsAvailable: 5 + (i*2)%20,
			Stops:          stops,
		})
	}

	sort.SliceStable(flights, func(a, b int) bool {
		return flights[a].PriceINR < flights[b].PriceINR
	})
	return flights
}

func routeSeed(date, origin, destination string) int64 {
	h := fnv.New64a()
	h.Write([]byte(strings.ToUpper(origin)))
	h.Write([]byte{'|'})
	h.Write([]byte(strings.ToUpper(destination)))
	h.Write([]byte{'|'})
	h.Write([]byte(date))
	return int64(h.Sum64())
}

// FindFlight returns the flight with the given number on a route and date.
func FindFlight(date, origin, destination, flightNumber string) (Flight, bool) {
	want := strings.ToUpper(strings.ReplaceAll(flightNumber, " ", ""))
	for _, f := range GenerateFlights(date, origin, destination) {
		if strings.ToUpper(f.FlightNumber) == want {
			return f, true
		}
	}
	return Flight{}, false
}

// PriceCategory buckets a fare in INR as Budget, Moderate, or Premium.
func PriceCategory(priceINR int) string {
	switch {
	case priceINR < 3000:
		return "Budget"
	case priceINR < 6000:
		return "Moderate"
	default:
		return "Premium"
	}
}

// FormatINR formats an amount as Indian Rupees with thousands separators
// and two decimal places.
func FormatINR(amount float64) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}

	whole := int64(amount)
	frac := int64(amount*100+0.5) - whole*100
	if frac >= 100 {
		whole++
		frac -= 100
	}

	digits := fmt.Sprintf("%d", whole)
	var b strings.Builder
	for i, c := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}

	sign := ""
	if negative {
		sign = "-"
	}
	return fmt.Sprintf("%s₹%s.%02d", sign, b.String(), frac)
}
