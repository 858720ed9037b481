package domain

import "context"

// Medication is a daily reminder entry. Time is "HH:mm".
type Medication struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Time         string `json:"time"`
	Dosage       string `json:"dosage"`
	IsTakenToday bool   `json:"isTakenToday"`
}

// DefaultMedications seeds the reminder list.
func DefaultMedications() []Medication {
	return []Medication{
		{ID: "m1", Name: "地高辛", Time: "08:00", Dosage: "1片"},
		{ID: "m2", Name: "呋塞米", Time: "09:30", Dosage: "0.5片"},
	}
}

// MedicationRepository is the port for medication reminders. Lists are
// ordered by Time.
type MedicationRepository interface {
	AddMedication(ctx context.Context, m Medication) error
	RemoveMedication(ctx context.Context, id string) (bool, error)
	ToggleMedicationTaken(ctx context.Context, id string) (*Medication, error)
	ListMedications(ctx context.Context) ([]Medication, error)
}
