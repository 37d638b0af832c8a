package astrology

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSunSignFor(t *testing.T) {
	tests := []struct {
		name string
		date string
		want string
	}{
		{"early january is capricorn", "1990-01-05", "Capricorn"},
		{"aquarius boundary", "1990-01-20", "Aquarius"},
		{"day before aquarius", "1990-01-19", "Capricorn"},
		{"mid aries", "1990-04-01", "Aries"},
		{"leo", "1990-08-10", "Leo"},
		{"scorpio boundary", "1990-10-23", "Scorpio"},
		{"late december wraps to capricorn", "1990-12-25", "Capricorn"},
		{"day before capricorn", "1990-12-21", "Sagittarius"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			birthDate, err := time.Parse("2006-01-02", tt.date)
			require.NoError(t, err)
			assert.Equal(t, tt.want, SunSignFor(birthDate))
		})
	}
}

func TestFallbackChart(t *testing.T) {
	t.Run("computes sun sign from date, marks the rest unknown", func(t *testing.T) {
		chart := FallbackChart(BirthDetails{Date: "1990-08-10"})

		assert.Equal(t, "Leo", chart.SunSign)
		assert.Equal(t, FieldUnknown, chart.MoonSign)
		assert.Equal(t, FieldUnknown, chart.Nakshatra)
		assert.Equal(t, FieldUnknown, chart.Ascendant)
	})

	t.Run("unparseable date leaves everything unknown", func(t *testing.T) {
		chart := FallbackChart(BirthDetails{Date: "10/08/1990"})
		assert.Equal(t, FieldUnknown, chart.SunSign)
	})
}

type stubProvider struct {
	chart  *Chart
	err    error
	called bool
}

func (s *stubProvider) Name() string { return "stub" }

func (s *stubProvider) Fetch(ctx context.Context, details BirthDetails) (*Chart, error) {
	s.called = true
	return s.chart, s.err
}

func completeDetails() BirthDetails {
	return BirthDetails{
		Date:      "1990-08-10",
		Time:      "14:30",
		Latitude:  28.61,
		Longitude: 77.20,
		Location:  "New Delhi",
	}
}

func TestAdapterFetch(t *testing.T) {
	ctx := context.Background()

	t.Run("missing date is unavailable, provider never called", func(t *testing.T) {
		provider := &stubProvider{}
		adapter := NewAdapter(provider, nil, time.Second)

		result := adapter.Fetch(ctx, BirthDetails{Time: "14:30", Location: "New Delhi"})

		assert.Equal(t, ChartUnavailable, result.Kind)
		assert.Contains(t, result.Reason, "date")
		assert.False(t, provider.called)
	})

	t.Run("missing time falls back without calling provider", func(t *testing.T) {
		provider := &stubProvider{}
		adapter := NewAdapter(provider, nil, time.Second)

		result := adapter.Fetch(ctx, BirthDetails{Date: "1990-08-10", Location: "New Delhi"})

		assert.Equal(t, ChartFallback, result.Kind)
		assert.Contains(t, result.Reason, "time")
		assert.Equal(t, FieldUnknown, result.Chart.MoonSign)
		assert.Equal(t, "Leo", result.Chart.SunSign)
		assert.False(t, provider.called)
	})

	t.Run("provider error degrades to fallback", func(t *testing.T) {
		provider := &stubProvider{err: errors.New("connection refused")}
		adapter := NewAdapter(provider, nil, time.Second)

		result := adapter.Fetch(ctx, completeDetails())

		assert.Equal(t, ChartFallback, result.Kind)
		assert.Contains(t, result.Reason, "provider call failed")
		assert.Equal(t, "Leo", result.Chart.SunSign)
	})

	t.Run("incomplete provider response keeps returned fields", func(t *testing.T) {
		provider := &stubProvider{chart: &Chart{MoonSign: "Aries", Nakshatra: "Bharani"}}
		adapter := NewAdapter(provider, nil, time.Second)

		result := adapter.Fetch(ctx, completeDetails())

		assert.Equal(t, ChartFallback, result.Kind)
		assert.Equal(t, "Aries", result.Chart.MoonSign)
		assert.Equal(t, "Bharani", result.Chart.Nakshatra)
		assert.Equal(t, FieldUnknown, result.Chart.Ascendant)
		assert.Equal(t, "Leo", result.Chart.SunSign)
	})

	t.Run("complete provider response is success", func(t *testing.T) {
		provider := &stubProvider{chart: &Chart{
			SunSign:   "Leo",
			MoonSign:  "Aries",
			Nakshatra: "Bharani",
			Ascendant: "Libra",
		}}
		adapter := NewAdapter(provider, nil, time.Second)

		result := adapter.Fetch(ctx, completeDetails())

		assert.Equal(t, ChartSuccess, result.Kind)
		assert.Equal(t, "stub", result.Provider)
		assert.True(t, result.Chart.IsComplete())
	})

	t.Run("nil provider falls back", func(t *testing.T) {
		adapter := NewAdapter(nil, nil, time.Second)

		result := adapter.Fetch(ctx, completeDetails())

		assert.Equal(t, ChartFallback, result.Kind)
	})
}
