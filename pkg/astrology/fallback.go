package astrology

import (
	"fmt"
	"time"
)

type sunSignRange struct {
	sign       string
	startMonth time.Month
	startDay   int
}

// Tropical zodiac boundaries, keyed by the first day of each sign.
var sunSignTable = []sunSignRange{
	{"Capricorn", time.January, 1},
	{"Aquarius", time.January, 20},
	{"Pisces", time.February, 19},
	{"Aries", time.March, 21},
	{"Taurus", time.April, 20},
	{"Gemini", time.May, 21},
	{"Cancer", time.June, 21},
	{"Leo", time.July, 23},
	{"Virgo", time.August, 23},
	{"Libra", time.September, 23},
	{"Scorpio", time.October, 23},
	{"Sagittarius", time.November, 22},
	{"Capricorn", time.December, 22},
}

// SunSignFor computes the tropical sun sign from a birth date alone. This is
// the only chart field a fallback can derive honestly without an ephemeris.
func SunSignFor(birthDate time.Time) string {
	month, day := birthDate.Month(), birthDate.Day()
	sign := sunSignTable[0].sign
	for _, r := range sunSignTable {
		if month > r.startMonth || (month == r.startMonth && day >= r.startDay) {
			sign = r.sign
		}
	}
	return sign
}

// FallbackChart builds a deterministic substitute chart. Fields that need an
// ephemeris or an exact birth time are marked unknown instead of invented.
func FallbackChart(details BirthDetails) *Chart {
	chart := &Chart{
		SunSign:   FieldUnknown,
		MoonSign:  FieldUnknown,
		Nakshatra: FieldUnknown,
		Ascendant: FieldUnknown,
	}

	if details.HasDate() {
		if birthDate, err := time.Parse("2006-01-02", details.Date); err == nil {
			chart.SunSign = SunSignFor(birthDate)
		}
	}

	return chart
}

// missingFields names what keeps a detail set from a full provider call.
func missingFields(details BirthDetails) []string {
	var missing []string
	if !details.HasDate() {
		missing = append(missing, "date")
	}
	if !details.HasTime() {
		missing = append(missing, "time")
	}
	if !details.HasLocation() {
		missing = append(missing, "location")
	}
	return missing
}

func insufficientDataReason(missing []string) string {
	return fmt.Sprintf("insufficient birth data: missing %v", missing)
}
