package domain

import (
	"context"
	"time"
)

// HealthLog is one committed daily check-in. It is never edited after
// creation.
type HealthLog struct {
	ID                 string            `json:"id"`
	Date               string            `json:"date"`
	Weight             float64           `json:"weight"`
	Systolic           int               `json:"systolic"`
	Diastolic          int               `json:"diastolic"`
	HeartRate          int               `json:"heartRate"`
	FluidIntakeTotal   int               `json:"fluidIntakeTotal"`
	FluidIntakeDetails []FoodIntakeEntry `json:"fluidIntakeDetails"`
	FluidOutputTotal   int               `json:"fluidOutputTotal"`
	FluidOutput        FluidOutput       `json:"fluidOutputDetails"`
	Symptoms           []string          `json:"symptoms"`
	OtherSymptomText   string            `json:"otherSymptomText,omitempty"`
	CreatedAt          time.Time         `json:"createdAt"`
}

// Balance returns intake minus output for the day.
func (l HealthLog) Balance() int {
	return l.FluidIntakeTotal - l.FluidOutputTotal
}

// HealthLogRepository is the port for the append-only log ledger.
type HealthLogRepository interface {
	AppendHealthLog(ctx context.Context, log HealthLog) error
	// DeleteHealthLog removes the log with id and reports whether it existed.
	// It only backs out an append whose follow-up step failed.
	DeleteHealthLog(ctx context.Context, id string) (bool, error)
	// ListHealthLogs returns the last limit logs in submission order;
	// limit <= 0 returns all of them.
	ListHealthLogs(ctx context.Context, limit int) ([]HealthLog, error)
}
