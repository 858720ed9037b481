package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"heartcare/internal/domain"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// MedicationInput is a new reminder as entered by the user.
type MedicationInput struct {
	Name   string `json:"name"`
	Time   string `json:"time"`
	Dosage string `json:"dosage"`
}

// MedicationService manages the medication reminder list.
type MedicationService struct {
	repo domain.MedicationRepository
	log  logrus.FieldLogger
}

// NewMedicationService creates a MedicationService.
func NewMedicationService(repo domain.MedicationRepository, log logrus.FieldLogger) *MedicationService {
	return &MedicationService{repo: repo, log: log}
}

// List returns the reminders ordered by time of day.
func (s *MedicationService) List(ctx context.Context) ([]domain.Medication, error) {
	return s.repo.ListMedications(ctx)
}

// Add validates and stores a new reminder. Time must be HH:mm.
func (s *MedicationService) Add(ctx context.Context, in MedicationInput) (domain.Medication, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return domain.Medication{}, fmt.Errorf("medication name required: %w", domain.ErrValidation)
	}
	t, err := time.Parse("15:04", strings.TrimSpace(in.Time))
	if err != nil {
		return domain.Medication{}, fmt.Errorf("time %q must be HH:mm: %w", in.Time, domain.ErrValidation)
	}
	m := domain.Medication{
		ID:     uuid.NewString(),
		Name:   name,
		Time:   t.Format("15:04"),
		Dosage: strings.TrimSpace(in.Dosage),
	}
	if err := s.repo.AddMedication(ctx, m); err != nil {
		return domain.Medication{}, err
	}
	s.log.WithFields(logrus.Fields{"medication": m.ID, "time": m.Time}).Info("medication added")
	return m, nil
}

// Remove deletes reminder id.
func (s *MedicationService) Remove(ctx context.Context, id string) error {
	ok, err := s.repo.RemoveMedication(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("medication %q: %w", id, domain.ErrNotFound)
	}
	return nil
}

// ToggleTaken flips today's taken flag of reminder id.
func (s *MedicationService) ToggleTaken(ctx context.Context, id string) (domain.Medication, error) {
	m, err := s.repo.ToggleMedicationTaken(ctx, id)
	if err != nil {
		return domain.Medication{}, err
	}
	if m == nil {
		return domain.Medication{}, fmt.Errorf("medication %q: %w", id, domain.ErrNotFound)
	}
	return *m, nil
}
