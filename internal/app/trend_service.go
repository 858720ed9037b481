package app

import (
	"context"
	"fmt"
	"math"
	"time"

	"heartcare/internal/domain"
)

// Trend window bounds.
const (
	DefaultTrendWindow = 7
	MaxTrendWindow     = 90
)

// weightAlertKg is the gain over base weight that raises an alert.
const weightAlertKg = 2.0

// WeightPoint is one day on the weight chart.
type WeightPoint struct {
	Day    string  `json:"day"`
	Weight float64 `json:"weight"`
	Intake int     `json:"intake"`
	Output int     `json:"output"`
}

// WeightTrend is the rolling weight read model.
type WeightTrend struct {
	Unit       string        `json:"unit"`
	Points     []WeightPoint `json:"points"`
	BaseWeight float64       `json:"baseWeight"`
	Latest     *float64      `json:"latest,omitempty"`
	Delta      *float64      `json:"delta,omitempty"`
	Alert      bool          `json:"alert"`
}

// TrendService derives chart data from the health log ledger.
type TrendService struct {
	logs     domain.HealthLogRepository
	profiles domain.ProfileRepository
	window   int
}

// NewTrendService creates a TrendService. window is the default number of
// logs shown when the caller does not ask for one.
func NewTrendService(logs domain.HealthLogRepository, profiles domain.ProfileRepository, window int) *TrendService {
	return &TrendService{logs: logs, profiles: profiles, window: clampWindow(window, DefaultTrendWindow)}
}

// Weight returns the last window logs as weight points in unit. A window
// of 0 uses the service default; larger windows are capped.
func (s *TrendService) Weight(ctx context.Context, window int, unit string) (WeightTrend, error) {
	if unit == "" {
		unit = domain.UnitKg
	}
	if !domain.ValidWeightUnit(unit) {
		return WeightTrend{}, fmt.Errorf("unit %q: %w", unit, domain.ErrValidation)
	}
	if window < 0 {
		return WeightTrend{}, fmt.Errorf("window %d: %w", window, domain.ErrValidation)
	}
	window = clampWindow(window, s.window)

	logs, err := s.logs.ListHealthLogs(ctx, window)
	if err != nil {
		return WeightTrend{}, err
	}
	profile, err := s.profiles.GetProfile(ctx)
	if err != nil {
		return WeightTrend{}, err
	}

	t := WeightTrend{
		Unit:       unit,
		Points:     make([]WeightPoint, 0, len(logs)),
		BaseWeight: round1(domain.ConvertWeight(profile.BaseWeightKg, domain.UnitKg, unit)),
	}
	for _, l := range logs {
		t.Points = append(t.Points, WeightPoint{
			Day:    shortDay(l.Date),
			Weight: round1(domain.ConvertWeight(l.Weight, domain.UnitKg, unit)),
			Intake: l.FluidIntakeTotal,
			Output: l.FluidOutputTotal,
		})
	}
	if len(logs) == 0 {
		return t, nil
	}

	last := logs[len(logs)-1].Weight
	deltaKg := last - profile.BaseWeightKg
	latest := round1(domain.ConvertWeight(last, domain.UnitKg, unit))
	delta := round1(domain.ConvertWeight(deltaKg, domain.UnitKg, unit))
	t.Latest = &latest
	t.Delta = &delta
	t.Alert = round1(deltaKg) >= weightAlertKg
	return t, nil
}

func clampWindow(n, def int) int {
	if n <= 0 {
		n = def
	}
	return min(n, MaxTrendWindow)
}

// shortDay renders a YYYY-MM-DD date as MM-DD. Dates in any other shape
// are returned unchanged.
func shortDay(date string) string {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return d.Format("01-02")
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
