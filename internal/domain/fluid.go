package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FoodIntakeEntry is one food or drink item converted to its water volume.
type FoodIntakeEntry struct {
	Food        string  `json:"food"`
	WeightGrams float64 `json:"weightGrams"`
	Ml          int     `json:"ml"`
}

// FluidOutput holds the four excretion buckets of a daily log, in ml.
type FluidOutput struct {
	Urine    int `json:"urine"`
	Vomit    int `json:"vomit"`
	Drainage int `json:"drainage"`
	Other    int `json:"other"`
}

// Total returns the sum of the four buckets.
func (o FluidOutput) Total() int {
	return OutputTotal(o.Urine, o.Vomit, o.Drainage, o.Other)
}

// FoodWater is one row of the water-content table: the ml of water
// contained in 100 g of the food.
type FoodWater struct {
	Label   string `json:"label"`
	Percent int    `json:"percent"`
}

// WaterTable maps food labels to water content, keeping display order.
type WaterTable struct {
	rows  []FoodWater
	index map[string]int
}

// NewWaterTable builds and validates a table. Labels must be non-empty and
// unique; percentages must lie within [1, 100].
func NewWaterTable(rows []FoodWater) (*WaterTable, error) {
	t := &WaterTable{
		rows:  make([]FoodWater, len(rows)),
		index: make(map[string]int, len(rows)),
	}
	copy(t.rows, rows)
	for i, r := range t.rows {
		if strings.TrimSpace(r.Label) == "" {
			return nil, fmt.Errorf("water table row %d: empty label: %w", i, ErrValidation)
		}
		if r.Percent < 1 || r.Percent > 100 {
			return nil, fmt.Errorf("water table %q: percent %d outside [1,100]: %w", r.Label, r.Percent, ErrValidation)
		}
		if _, dup := t.index[r.Label]; dup {
			return nil, fmt.Errorf("water table %q: duplicate label: %w", r.Label, ErrValidation)
		}
		t.index[r.Label] = i
	}
	return t, nil
}

// Rows returns a copy of the table in display order.
func (t *WaterTable) Rows() []FoodWater {
	out := make([]FoodWater, len(t.rows))
	copy(out, t.rows)
	return out
}

// Percent returns the water content for label.
func (t *WaterTable) Percent(label string) (int, bool) {
	i, ok := t.index[label]
	if !ok {
		return 0, false
	}
	return t.rows[i].Percent, true
}

// DeriveIntake converts weightGrams of food into a FoodIntakeEntry.
// The volume is round(weight / 100 * percent), halves rounded up.
func (t *WaterTable) DeriveIntake(label string, weightGrams float64) (FoodIntakeEntry, error) {
	pct, ok := t.Percent(label)
	if !ok {
		return FoodIntakeEntry{}, fmt.Errorf("%q: %w", label, ErrUnknownFood)
	}
	if math.IsNaN(weightGrams) || math.IsInf(weightGrams, 0) || weightGrams <= 0 {
		return FoodIntakeEntry{}, fmt.Errorf("weight must be a positive number: %w", ErrValidation)
	}
	ml := math.Floor(weightGrams/100*float64(pct) + 0.5)
	return FoodIntakeEntry{Food: label, WeightGrams: weightGrams, Ml: int(ml)}, nil
}

// IntakeTotal sums the derived volumes of entries.
func IntakeTotal(entries []FoodIntakeEntry) int {
	total := 0
	for _, e := range entries {
		total += e.Ml
	}
	return total
}

// OutputTotal sums the four output buckets. Negative values are summed as
// given; range checks belong to the caller.
func OutputTotal(urine, vomit, drainage, other int) int {
	return urine + vomit + drainage + other
}

// MaxVolumeMl bounds a single output bucket.
const MaxVolumeMl = 100000

// ParseVolume parses a raw ml form field. Fractional volumes are truncated
// toward zero; blank or non-numeric input yields 0. Volumes whose magnitude
// exceeds MaxVolumeMl fail with ErrValidation.
func ParseVolume(raw string) (int, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, nil
	}
	v = math.Trunc(v)
	if math.Abs(v) > MaxVolumeMl {
		return 0, fmt.Errorf("volume %q exceeds %d ml: %w", raw, MaxVolumeMl, ErrValidation)
	}
	return int(v), nil
}
