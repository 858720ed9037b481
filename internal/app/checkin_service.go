package app

import (
	"context"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"heartcare/internal/domain"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Draft is the pending daily check-in form with running totals.
type Draft struct {
	Intake      []domain.FoodIntakeEntry `json:"intake"`
	IntakeTotal int                      `json:"intakeTotal"`
	Output      domain.FluidOutput       `json:"output"`
	OutputTotal int                      `json:"outputTotal"`
	Balance     int                      `json:"balance"`
	Symptoms    []string                 `json:"symptoms"`
	SymptomNote string                   `json:"otherSymptomText"`
}

// VitalsForm carries the raw vital-sign fields of a submission.
type VitalsForm struct {
	Weight    string `json:"weight"`
	Systolic  string `json:"systolic"`
	Diastolic string `json:"diastolic"`
	HeartRate string `json:"heartRate"`
}

// OutputForm carries the raw excretion fields of the draft.
type OutputForm struct {
	Urine    string `json:"urine"`
	Vomit    string `json:"vomit"`
	Drainage string `json:"drainage"`
	Other    string `json:"other"`
}

// CheckInService collects one daily check-in at a time and commits it to
// the health log ledger.
type CheckInService struct {
	foods  *domain.WaterTable
	logs   domain.HealthLogRepository
	points *PointsService
	reward int
	log    logrus.FieldLogger
	now    func() time.Time
	newID  func() (uuid.UUID, error)

	mu     sync.Mutex
	intake []domain.FoodIntakeEntry
	output domain.FluidOutput
	syms   []string
	note   string
}

// NewCheckInService creates a CheckInService. reward is credited for
// every committed log.
func NewCheckInService(foods *domain.WaterTable, logs domain.HealthLogRepository, points *PointsService, reward int, log logrus.FieldLogger) *CheckInService {
	return &CheckInService{
		foods:  foods,
		logs:   logs,
		points: points,
		reward: reward,
		log:    log,
		now:    time.Now,
		newID:  uuid.NewV7,
		syms:   []string{domain.NoSymptoms},
	}
}

// Foods returns the water-content table.
func (s *CheckInService) Foods() []domain.FoodWater {
	return s.foods.Rows()
}

// Draft returns a snapshot of the pending form.
func (s *CheckInService) Draft() Draft {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

// AddIntake converts rawWeight grams of food to water and appends it to
// the pending intake list. Invalid input appends nothing.
func (s *CheckInService) AddIntake(food, rawWeight string) (domain.FoodIntakeEntry, error) {
	w, err := strconv.ParseFloat(strings.TrimSpace(rawWeight), 64)
	if err != nil {
		return domain.FoodIntakeEntry{}, fmt.Errorf("weight %q: %w", rawWeight, domain.ErrValidation)
	}
	entry, err := s.foods.DeriveIntake(food, w)
	if err != nil {
		return domain.FoodIntakeEntry{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.intake = append(s.intake, entry)
	return entry, nil
}

// SetOutput replaces the excretion buckets. Blank or non-numeric fields
// count as 0; negative or oversized volumes are rejected.
func (s *CheckInService) SetOutput(f OutputForm) (Draft, error) {
	var out domain.FluidOutput
	for _, field := range []struct {
		name string
		raw  string
		dst  *int
	}{
		{"urine", f.Urine, &out.Urine},
		{"vomit", f.Vomit, &out.Vomit},
		{"drainage", f.Drainage, &out.Drainage},
		{"other", f.Other, &out.Other},
	} {
		v, err := domain.ParseVolume(field.raw)
		if err != nil {
			return Draft{}, fmt.Errorf("%s: %w", field.name, err)
		}
		if v < 0 {
			return Draft{}, fmt.Errorf("%s: output volumes must be >= 0: %w", field.name, domain.ErrValidation)
		}
		*field.dst = v
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.output = out
	return s.snapshot(), nil
}

// ToggleSymptom applies one tap on the symptom checklist.
func (s *CheckInService) ToggleSymptom(symptom string) (Draft, error) {
	if !domain.KnownSymptom(symptom) {
		return Draft{}, fmt.Errorf("symptom %q: %w", symptom, domain.ErrValidation)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.syms = domain.ToggleSymptom(s.syms, symptom)
	return s.snapshot(), nil
}

// SetSymptomNote stores the free-text description used with the "other"
// symptom.
func (s *CheckInService) SetSymptomNote(note string) Draft {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.note = strings.TrimSpace(note)
	return s.snapshot()
}

// Reset discards the pending form.
func (s *CheckInService) Reset() Draft {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reset()
	return s.snapshot()
}

// Finalize validates the vitals, commits the draft as a HealthLog, credits
// the daily-log reward and clears the draft. On error nothing changes.
func (s *CheckInService) Finalize(ctx context.Context, f VitalsForm) (domain.HealthLog, error) {
	if err := ctx.Err(); err != nil {
		return domain.HealthLog{}, err
	}
	weight, err := parsePositiveFloat(f.Weight)
	if err != nil {
		return domain.HealthLog{}, fmt.Errorf("weight: %w", err)
	}
	systolic, err := parsePositiveInt(f.Systolic)
	if err != nil {
		return domain.HealthLog{}, fmt.Errorf("systolic: %w", err)
	}
	diastolic, err := parsePositiveInt(f.Diastolic)
	if err != nil {
		return domain.HealthLog{}, fmt.Errorf("diastolic: %w", err)
	}
	heartRate, err := parsePositiveInt(f.HeartRate)
	if err != nil {
		return domain.HealthLog{}, fmt.Errorf("heart rate: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := s.newID()
	if err != nil {
		return domain.HealthLog{}, fmt.Errorf("log id: %w", err)
	}
	now := s.now()
	entry := domain.HealthLog{
		ID:                 id.String(),
		Date:               now.In(time.Local).Format("2006-01-02"),
		Weight:             weight,
		Systolic:           systolic,
		Diastolic:          diastolic,
		HeartRate:          heartRate,
		FluidIntakeTotal:   domain.IntakeTotal(s.intake),
		FluidIntakeDetails: slices.Clone(s.intake),
		FluidOutputTotal:   s.output.Total(),
		FluidOutput:        s.output,
		Symptoms:           slices.Clone(s.syms),
		CreatedAt:          now.UTC(),
	}
	if entry.FluidIntakeDetails == nil {
		entry.FluidIntakeDetails = []domain.FoodIntakeEntry{}
	}
	if slices.Contains(s.syms, domain.OtherSymptom) {
		entry.OtherSymptomText = s.note
	}

	if err := s.logs.AppendHealthLog(ctx, entry); err != nil {
		return domain.HealthLog{}, err
	}
	if _, err := s.points.Credit(ctx, s.reward, "daily-log"); err != nil {
		if _, derr := s.logs.DeleteHealthLog(ctx, entry.ID); derr != nil {
			s.log.WithError(derr).WithField("log", entry.ID).Error("back out health log")
		}
		return domain.HealthLog{}, err
	}
	s.reset()

	s.log.WithFields(logrus.Fields{
		"log":     entry.ID,
		"intake":  entry.FluidIntakeTotal,
		"output":  entry.FluidOutputTotal,
		"balance": entry.Balance(),
	}).Info("health log committed")
	return entry, nil
}

// ListLogs returns the last limit logs in submission order.
func (s *CheckInService) ListLogs(ctx context.Context, limit int) ([]domain.HealthLog, error) {
	return s.logs.ListHealthLogs(ctx, limit)
}

func (s *CheckInService) reset() {
	s.intake = nil
	s.output = domain.FluidOutput{}
	s.syms = []string{domain.NoSymptoms}
	s.note = ""
}

func (s *CheckInService) snapshot() Draft {
	intake := slices.Clone(s.intake)
	if intake == nil {
		intake = []domain.FoodIntakeEntry{}
	}
	in, out := domain.IntakeTotal(s.intake), s.output.Total()
	return Draft{
		Intake:      intake,
		IntakeTotal: in,
		Output:      s.output,
		OutputTotal: out,
		Balance:     in - out,
		Symptoms:    slices.Clone(s.syms),
		SymptomNote: s.note,
	}
}

func parsePositiveFloat(raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, domain.ErrIncompleteSubmission
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return 0, fmt.Errorf("%q: %w", raw, domain.ErrIncompleteSubmission)
	}
	return v, nil
}

func parsePositiveInt(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, domain.ErrIncompleteSubmission
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("%q: %w", raw, domain.ErrIncompleteSubmission)
	}
	return v, nil
}
