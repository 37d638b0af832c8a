package astrology

import (
	"context"
	"time"
)

// Provider is an external chart source.
type Provider interface {
	Name() string
	Fetch(ctx context.Context, details BirthDetails) (*Chart, error)
}

// HealthRecorder lets the adapter skip a provider that just failed instead of
// paying the timeout again on every request.
type HealthRecorder interface {
	Record(provider string, healthy bool, latency time.Duration, errMsg string)
	MarkedUnhealthy(provider string) bool
}

// Adapter normalizes provider output into a ChartResult and owns the fallback
// decision. It never touches the database.
type Adapter struct {
	provider Provider
	health   HealthRecorder
	timeout  time.Duration
}

func NewAdapter(provider Provider, health HealthRecorder, timeout time.Duration) *Adapter {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Adapter{
		provider: provider,
		health:   health,
		timeout:  timeout,
	}
}

// Fetch validates the birth details, calls the provider under a bounded
// timeout, and degrades to a deterministic fallback on any failure. A date is
// the minimum needed to say anything at all.
func (a *Adapter) Fetch(ctx context.Context, details BirthDetails) ChartResult {
	missing := missingFields(details)

	if !details.HasDate() {
		return Unavailable(insufficientDataReason(missing))
	}
	if len(missing) > 0 {
		return Fallback(FallbackChart(details), insufficientDataReason(missing))
	}

	if a.provider == nil {
		return Fallback(FallbackChart(details), "no chart provider configured")
	}
	if a.health != nil && a.health.MarkedUnhealthy(a.provider.Name()) {
		return Fallback(FallbackChart(details), "provider recently unhealthy, skipped")
	}

	callCtx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	start := time.Now()
	chart, err := a.provider.Fetch(callCtx, details)
	elapsed := time.Since(start)

	if err != nil {
		if a.health != nil {
			a.health.Record(a.provider.Name(), false, elapsed, err.Error())
		}
		return Fallback(FallbackChart(details), "provider call failed: "+err.Error())
	}

	if a.health != nil {
		a.health.Record(a.provider.Name(), true, elapsed, "")
	}

	if !chart.IsComplete() {
		// Keep what the provider did return, mark the rest unknown.
		merged := FallbackChart(details)
		if chart != nil {
			if chart.SunSign != "" {
				merged.SunSign = chart.SunSign
			}
			if chart.MoonSign != "" {
				merged.MoonSign = chart.MoonSign
			}
			if chart.Nakshatra != "" {
				merged.Nakshatra = chart.Nakshatra
			}
			if chart.Ascendant != "" {
				merged.Ascendant = chart.Ascendant
			}
		}
		return Fallback(merged, "incomplete provider response")
	}

	return Success(chart, a.provider.Name(), elapsed)
}
