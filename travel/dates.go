package travel

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// dateLayouts are the formats users commonly type. Tried in order.
var dateLayouts = []string{
	"2 January 2006",
	"January 2 2006",
	"2 Jan 2006",
	"Jan 2 2006",
	"2006-01-02",
	"01/02/2006",
	"02/01/2006",
	"2-1-2006",
	"2006/01/02",
}

var monthsByName = map[string]time.Month{
	"january": time.January, "jan": time.January,
	"february": time.February, "feb": time.February,
	"march": time.March, "mar": time.March,
	"april": time.April, "apr": time.April,
	"may":  time.May,
	"june": time.June, "jun": time.June,
	"july": time.July, "jul": time.July,
	"august": time.August, "aug": time.August,
	"september": time.September, "sep": time.September, "sept": time.September,
	"october": time.October, "oct": time.October,
	"november": time.November, "nov": time.November,
	"december": time.December, "dec": time.December,
}

var (
	yearRe     = regexp.MustCompile(`\b(20\d{2})\b`)
	dayRe      = regexp.MustCompile(`\b([0-3]?[0-9])(st|nd|rd|th)?\b`)
	numericRe  = regexp.MustCompile(`\b([0-1]?[0-9])[/.-]([0-3]?[0-9])\b`)
	durationRe = regexp.MustCompile(`(?i)(\d+)\s*-?\s*(?:days?|nights?)`)
)

// ParseDate parses a user-supplied travel date in any supported layout,
// falling back to loose component extraction for inputs like "4th april 2026".
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	day, month, year := extractDateComponents(s)
	if day > 0 && month > 0 && year > 0 {
		t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.Local)
		// reject overflow like 31 February
		if t.Day() == day && t.Month() == time.Month(month) {
			return t, true
		}
	}

	return time.Time{}, false
}

// extractDateComponents pulls day, month, and year out of free text.
// Numeric day/month pairs are read as DD/MM, the common Indian ordering.
func extractDateComponents(s string) (day, month, year int) {
	s = strings.ToLower(s)

	if m := yearRe.FindStringSubmatch(s); m != nil {
		year, _ = strconv.Atoi(m[1])
	}
	if m := dayRe.FindStringSubmatch(s); m != nil {
		d, _ := strconv.Atoi(m[1])
		if d >= 1 && d <= 31 {
			day = d
		}
	}

	for name, num := range monthsByName {
		if strings.Contains(s, name) {
			if month == 0 || len(name) > 3 {
				month = int(num)
			}
		}
	}

	if month == 0 {
		if m := numericRe.FindStringSubmatch(s); m != nil {
			first, _ := strconv.Atoi(m[1])
			second, _ := strconv.Atoi(m[2])
			if second <= 12 {
				day, month = first, second
			} else if first <= 12 {
				day, month = second, first
			}
		}
	}

	return day, month, year
}

// IsPastDate reports whether t falls before today (time portion ignored).
func IsPastDate(t time.Time, now time.Time) bool {
	ty, tm, td := t.Date()
	ny, nm, nd := now.Date()
	return time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC).
		Before(time.Date(ny, nm, nd, 0, 0, 0, 0, time.UTC))
}

var inTextDateRes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(\d{1,2})\s+(january|february|march|april|may|june|july|august|september|october|november|december)\s+(\d{4})\b`),
	regexp.MustCompile(`(?i)\b(january|february|march|april|may|june|july|august|september|october|november|december)\s+(\d{1,2})[,\s]+(\d{4})\b`),
	regexp.MustCompile(`\b(\d{1,2})[/-](\d{1,2})[/-](\d{4})\b`),
	regexp.MustCompile(`\b(\d{4})[/-](\d{1,2})[/-](\d{1,2})\b`),
}

// FindPastDate scans free text for a date and returns its original wording
// if it is in the past, guarding searches against stale travel dates.
func FindPastDate(text string, now time.Time) (string, bool) {
	for i, re := range inTextDateRes {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			var day, month, year int
			switch i {
			case 0: // dd Month yyyy
				day, _ = strconv.Atoi(m[1])
				month = int(monthsByName[strings.ToLower(m[2])])
				year, _ = strconv.Atoi(m[3])
			case 1: // Month dd yyyy
				month = int(monthsByName[strings.ToLower(m[1])])
				day, _ = strconv.Atoi(m[2])
				year, _ = strconv.Atoi(m[3])
			case 2: // dd/mm/yyyy, Indian ordering
				day, _ = strconv.Atoi(m[1])
				month, _ = strconv.Atoi(m[2])
				year, _ = strconv.Atoi(m[3])
			case 3: // yyyy/mm/dd
				year, _ = strconv.Atoi(m[1])
				month, _ = strconv.Atoi(m[2])
				day, _ = strconv.Atoi(m[3])
			}
			if month < 1 || month > 12 || day < 1 || day > 31 {
				continue
			}
			t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.Local)
			if t.Day() != day {
				continue
			}
			if IsPastDate(t, now) {
				return m[0], true
			}
		}
	}
	return "", false
}

// NextWeekend returns the upcoming Saturday and Sunday after now. If today
// is Saturday it skips ahead to the following weekend.
func NextWeekend(now time.Time) (saturday, sunday time.Time) {
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, now.Location())

	daysUntil := (int(time.Saturday) - int(today.Weekday()) + 7) % 7
	if daysUntil == 0 {
		daysUntil = 7
	}
	saturday = today.AddDate(0, 0, daysUntil)
	sunday = saturday.AddDate(0, 0, 1)
	return saturday, sunday
}

// DateRange returns days consecutive dates starting at start.
func DateRange(start time.Time, days int) []time.Time {
	out := make([]time.Time, 0, days)
	for i := 0; i < days; i++ {
		out = append(out, start.AddDate(0, 0, i))
	}
	return out
}

// ExtractDuration finds a trip length in days from free text, recognizing
// "5 days", "3 nights", "a week", and "weekend".
func ExtractDuration(text string) (int, bool) {
	if m := durationRe.FindStringSubmatch(text); m != nil {
		n, _ := strconv.Atoi(m[1])
		return n, true
	}

	lower := strings.ToLower(text)
	if strings.Contains(lower, "week") && !strings.Contains(lower, "weekend") {
		if strings.Contains(lower, "two week") || strings.Contains(lower, "2 week") {
			return 14, true
		}
		return 7, true
	}
	if strings.Contains(lower, "weekend") {
		return 2, true
	}

	return 0, false
}

// commonInterests are travel themes worth matching against activities.
var commonInterests = []string{
	"adventure", "trekking", "hiking", "nature", "wildlife", "beach", "beaches",
	"shopping", "food", "cuisine", "culinary", "history", "historical", "cultural",
	"culture", "architecture", "photography", "relaxation", "spa", "ayurveda",
	"spiritual", "religious", "pilgrimage", "nightlife", "party", "family",
	"romantic", "honeymoon", "luxury", "budget", "backpacking", "sightseeing",
}

// ExtractInterests pulls recognized travel interests from free text.
func ExtractInterests(text string) []string {
	lower := strings.ToLower(text)
	var found []string
	for _, interest := range commonInterests {
		if strings.Contains(lower, interest) {
			found = append(found, interest)
		}
	}
	return found
}

// ExtractLocation returns the first location from candidates mentioned in text.
func ExtractLocation(text string, candidates []string) (string, bool) {
	lower := strings.ToLower(text)
	for _, loc := range candidates {
		if strings.Contains(lower, strings.ToLower(loc)) {
			return loc, true
		}
	}
	return "", false
}
