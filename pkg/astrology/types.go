package astrology

import "time"

// FieldUnknown marks chart fields a fallback cannot compute honestly.
// Downstream composers and validators branch on this literal, do not change it.
const FieldUnknown = "Unable to calculate"

// BirthDetails is the normalized input for a chart calculation.
// Date uses "2006-01-02", Time uses "15:04" (local to the birth place).
type BirthDetails struct {
	Date      string
	Time      string
	Latitude  float64
	Longitude float64
	Location  string
}

func (d BirthDetails) HasDate() bool     { return d.Date != "" }
func (d BirthDetails) HasTime() bool     { return d.Time != "" }
func (d BirthDetails) HasLocation() bool { return d.Location != "" || d.Latitude != 0 || d.Longitude != 0 }

// Chart is the canonical structure every provider response is mapped into.
type Chart struct {
	SunSign   string            `json:"sun_sign"`
	MoonSign  string            `json:"moon_sign"`
	Nakshatra string            `json:"nakshatra"`
	Ascendant string            `json:"ascendant"`
	Planets   map[string]string `json:"planets,omitempty"`
}

// IsComplete reports whether every core field carries a real value.
func (c *Chart) IsComplete() bool {
	if c == nil {
		return false
	}
	for _, v := range []string{c.SunSign, c.MoonSign, c.Nakshatra, c.Ascendant} {
		if v == "" || v == FieldUnknown {
			return false
		}
	}
	return true
}

type ChartKind string

const (
	ChartSuccess     ChartKind = "success"
	ChartFallback    ChartKind = "fallback"
	ChartUnavailable ChartKind = "unavailable"
)

// ChartResult is a tagged variant: a provider chart, a locally computed
// fallback with the reason it was needed, or nothing at all.
type ChartResult struct {
	Kind         ChartKind
	Chart        *Chart
	Reason       string
	Provider     string
	ResponseTime time.Duration
}

func Success(chart *Chart, provider string, elapsed time.Duration) ChartResult {
	return ChartResult{Kind: ChartSuccess, Chart: chart, Provider: provider, ResponseTime: elapsed}
}

func Fallback(chart *Chart, reason string) ChartResult {
	return ChartResult{Kind: ChartFallback, Chart: chart, Reason: reason, Provider: "fallback"}
}

func Unavailable(reason string) ChartResult {
	return ChartResult{Kind: ChartUnavailable, Reason: reason}
}

// ToMap flattens the result for jsonb persistence on the session row.
func (r ChartResult) ToMap() map[string]interface{} {
	out := map[string]interface{}{
		"source": string(r.Kind),
	}
	if r.Reason != "" {
		out["reason"] = r.Reason
	}
	if r.Chart != nil {
		out["sun_sign"] = r.Chart.SunSign
		out["moon_sign"] = r.Chart.MoonSign
		out["nakshatra"] = r.Chart.Nakshatra
		out["ascendant"] = r.Chart.Ascendant
	}
	return out
}
