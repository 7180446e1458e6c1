package chatbot

import (
	"regexp"
	"strings"
	"time"
)

var frenchMonths = map[string]time.Month{
	"janvier":   time.January,
	"février":   time.February,
	"fevrier":   time.February,
	"mars":      time.March,
	"avril":     time.April,
	"mai":       time.May,
	"juin":      time.June,
	"juillet":   time.July,
	"août":      time.August,
	"aout":      time.August,
	"septembre": time.September,
	"octobre":   time.October,
	"novembre":  time.November,
	"décembre":  time.December,
	"decembre":  time.December,
}

var dayMonthRe = regexp.MustCompile(`^(\d{1,2})\s+(\p{L}+)$`)

var dateLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	"02-01-2006",
}

// ResolveDate maps a small relative vocabulary to calendar dates, then
// falls back to a general parse. It returns nil when nothing resolves,
// never an error.
func ResolveDate(raw string, now time.Time) *time.Time {
	text := strings.ToLower(strings.TrimSpace(raw))
	text = strings.ReplaceAll(text, "’", "'")

	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	switch text {
	case "aujourd'hui", "today":
		return &day
	case "demain", "tomorrow":
		d := day.AddDate(0, 0, 1)
		return &d
	case "hier", "yesterday":
		d := day.AddDate(0, 0, -1)
		return &d
	case "cette semaine", "this week", "this_week":
		d := startOfWeek(day)
		return &d
	}

	if m := dayMonthRe.FindStringSubmatch(text); m != nil {
		if month, ok := frenchMonths[m[2]]; ok {
			dayNum := atoiSafe(m[1])
			if dayNum >= 1 && dayNum <= 31 {
				d := time.Date(now.Year(), month, dayNum, 0, 0, 0, 0, now.Location())
				return &d
			}
		}
	}

	for _, layout := range dateLayouts {
		if d, err := time.ParseInLocation(layout, text, now.Location()); err == nil {
			return &d
		}
	}

	return nil
}

// ResolveDateISO is ResolveDate formatted as an ISO calendar date.
func ResolveDateISO(raw string, now time.Time) *string {
	d := ResolveDate(raw, now)
	if d == nil {
		return nil
	}
	iso := d.Format("2006-01-02")
	return &iso
}

// startOfWeek returns the Monday of the week containing t.
func startOfWeek(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	return t.AddDate(0, 0, -offset)
}

func atoiSafe(s string) int {
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return -1
		}
		n = n*10 + int(r-'0')
	}
	return n
}
