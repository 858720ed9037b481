package domain

import "context"

// NYHAClass is the New York Heart Association functional class. It is
// patient metadata only.
type NYHAClass string

// NYHA functional classes.
const (
	NYHAI   NYHAClass = "I级"
	NYHAII  NYHAClass = "II级"
	NYHAIII NYHAClass = "III级"
	NYHAIV  NYHAClass = "IV级"
)

// Profile describes the enrolled patient.
type Profile struct {
	Name         string    `json:"name"`
	Avatar       string    `json:"avatar"`
	Gender       string    `json:"gender"`
	Age          int       `json:"age"`
	Phone        string    `json:"phone"`
	NYHA         NYHAClass `json:"functionLevel"`
	History      string    `json:"history"`
	BaseWeightKg float64   `json:"baseWeight"`
	Points       int       `json:"points"`
}

// DefaultProfile is the demo patient the store starts with.
func DefaultProfile() Profile {
	return Profile{
		Name:         "张大爷",
		Avatar:       "https://picsum.photos/200",
		Gender:       "男",
		Age:          72,
		Phone:        "138****8888",
		NYHA:         NYHAII,
		History:      "心衰病史3年",
		BaseWeightKg: 70.5,
		Points:       120,
	}
}

// ProfileRepository is the port for the patient profile and the points
// balance stored on it.
type ProfileRepository interface {
	GetProfile(ctx context.Context) (Profile, error)
	// CreditPoints adds amount and returns the new balance.
	CreditPoints(ctx context.Context, amount int) (int, error)
	// DebitPoints subtracts amount only if the balance covers it. It
	// returns whether it did and the balance afterwards.
	DebitPoints(ctx context.Context, amount int) (bool, int, error)
	// MarkSignedIn records a sign-in for localDay and reports whether it is
	// the first one that day.
	MarkSignedIn(ctx context.Context, localDay string) (bool, error)
	// UnmarkSignedIn forgets the sign-in for localDay. It only backs out a
	// MarkSignedIn whose reward could not be credited.
	UnmarkSignedIn(ctx context.Context, localDay string) error
}
