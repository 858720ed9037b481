// Package memory implements the in-memory store that owns all application
// state for the lifetime of the process.
package memory

import (
	"context"
	"errors"
	"slices"
	"sort"
	"sync"
	"time"

	"heartcare/internal/domain"

	"github.com/google/uuid"
)

// Seed is the initial content of a Store.
type Seed struct {
	Profile     domain.Profile
	Logs        []domain.HealthLog
	Medications []domain.Medication
	Education   []domain.EduContent
}

// DefaultSeed returns the demo patient with one historical log.
func DefaultSeed() Seed {
	created := time.Date(2023, 10, 20, 8, 0, 0, 0, time.Local)
	intake := []domain.FoodIntakeEntry{
		{Food: "饮水/茶", WeightGrams: 1060, Ml: 1060},
		{Food: "大米粥", WeightGrams: 500, Ml: 440},
	}
	return Seed{
		Profile: domain.DefaultProfile(),
		Logs: []domain.HealthLog{{
			ID:                 timeOrderedID(created),
			Date:               "2023-10-20",
			Weight:             70.8,
			Systolic:           130,
			Diastolic:          85,
			HeartRate:          72,
			FluidIntakeTotal:   domain.IntakeTotal(intake),
			FluidIntakeDetails: intake,
			FluidOutputTotal:   1400,
			FluidOutput:        domain.FluidOutput{Urine: 1400},
			Symptoms:           []string{domain.NoSymptoms},
			CreatedAt:          created,
		}},
		Medications: domain.DefaultMedications(),
		Education:   domain.DefaultEducation(),
	}
}

// Store implements every repository port over process memory. All
// mutations go through its methods and are serialised by mu.
type Store struct {
	mu          sync.Mutex
	profile     domain.Profile
	logs        []domain.HealthLog
	medications []domain.Medication
	education   []domain.EduContent
	favorites   map[string]bool
	signedInDay string

	account  *domain.Account
	sessions map[string]*domain.Session
}

// New creates a Store holding seed.
func New(seed Seed) *Store {
	s := &Store{
		profile:   seed.Profile,
		favorites: make(map[string]bool),
		sessions:  make(map[string]*domain.Session),
	}
	for _, l := range seed.Logs {
		s.logs = append(s.logs, copyLog(l))
	}
	s.medications = slices.Clone(seed.Medications)
	sortMedications(s.medications)
	s.education = slices.Clone(seed.Education)
	return s
}

// Ensure interfaces are met.
var _ domain.ProfileRepository = (*Store)(nil)
var _ domain.HealthLogRepository = (*Store)(nil)
var _ domain.MedicationRepository = (*Store)(nil)
var _ domain.EducationRepository = (*Store)(nil)
var _ domain.AccountRepository = (*Store)(nil)
var _ domain.SessionRepository = (*SessionRepo)(nil)

// --- ProfileRepository ---

// GetProfile returns the patient profile including the points balance.
func (s *Store) GetProfile(ctx context.Context) (domain.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profile, nil
}

// CreditPoints adds amount to the balance.
func (s *Store) CreditPoints(ctx context.Context, amount int) (int, error) {
	if amount < 0 {
		return 0, errors.New("credit amount must be >= 0")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile.Points += amount
	return s.profile.Points, nil
}

// DebitPoints subtracts amount when the balance allows it.
func (s *Store) DebitPoints(ctx context.Context, amount int) (bool, int, error) {
	if amount < 0 {
		return false, 0, errors.New("debit amount must be >= 0")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.profile.Points < amount {
		return false, s.profile.Points, nil
	}
	s.profile.Points -= amount
	return true, s.profile.Points, nil
}

// MarkSignedIn records the daily sign-in.
func (s *Store) MarkSignedIn(ctx context.Context, localDay string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.signedInDay == localDay {
		return false, nil
	}
	s.signedInDay = localDay
	return true, nil
}

// UnmarkSignedIn clears the sign-in record if it is for localDay.
func (s *Store) UnmarkSignedIn(ctx context.Context, localDay string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.signedInDay == localDay {
		s.signedInDay = ""
	}
	return nil
}

// --- HealthLogRepository ---

// AppendHealthLog appends l to the ledger.
func (s *Store) AppendHealthLog(ctx context.Context, l domain.HealthLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.logs {
		if existing.ID == l.ID {
			return errors.New("duplicate health log id")
		}
	}
	s.logs = append(s.logs, copyLog(l))
	return nil
}

// ListHealthLogs returns the last limit logs in submission order.
func (s *Store) ListHealthLogs(ctx context.Context, limit int) ([]domain.HealthLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	src := s.logs
	if limit > 0 && len(src) > limit {
		src = src[len(src)-limit:]
	}
	out := make([]domain.HealthLog, len(src))
	for i, l := range src {
		out[i] = copyLog(l)
	}
	return out, nil
}

// DeleteHealthLog removes the log with id.
func (s *Store) DeleteHealthLog(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, l := range s.logs {
		if l.ID == id {
			s.logs = slices.Delete(s.logs, i, i+1)
			return true, nil
		}
	}
	return false, nil
}

func copyLog(l domain.HealthLog) domain.HealthLog {
	l.FluidIntakeDetails = append([]domain.FoodIntakeEntry{}, l.FluidIntakeDetails...)
	l.Symptoms = append([]string{}, l.Symptoms...)
	return l
}

// timeOrderedID returns a version 7 UUID for t with a zero random part, so
// seeded logs sort before logs created later.
func timeOrderedID(t time.Time) string {
	var u uuid.UUID
	ms := uint64(t.UnixMilli())
	for i := range 6 {
		u[i] = byte(ms >> (40 - 8*i))
	}
	u[6] = 0x70 // version 7
	u[8] = 0x80 // RFC 4122 variant
	return u.String()
}

// --- MedicationRepository ---

// AddMedication inserts m keeping the list ordered by time.
func (s *Store) AddMedication(ctx context.Context, m domain.Medication) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.medications {
		if existing.ID == m.ID {
			return errors.New("duplicate medication id")
		}
	}
	s.medications = append(s.medications, m)
	sortMedications(s.medications)
	return nil
}

// RemoveMedication deletes a medication by ID.
func (s *Store) RemoveMedication(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, m := range s.medications {
		if m.ID == id {
			s.medications = append(s.medications[:i], s.medications[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

// ToggleMedicationTaken flips the taken flag and returns the updated entry,
// or nil for unknown ids.
func (s *Store) ToggleMedicationTaken(ctx context.Context, id string) (*domain.Medication, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.medications {
		if s.medications[i].ID == id {
			s.medications[i].IsTakenToday = !s.medications[i].IsTakenToday
			m := s.medications[i]
			return &m, nil
		}
	}
	return nil, nil
}

// ListMedications returns all reminders ordered by time.
func (s *Store) ListMedications(ctx context.Context) ([]domain.Medication, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.medications), nil
}

func sortMedications(ms []domain.Medication) {
	sort.SliceStable(ms, func(i, j int) bool {
		return ms[i].Time < ms[j].Time
	})
}

// --- EducationRepository ---

// ListEducation returns the catalog with read and favourite flags.
func (s *Store) ListEducation(ctx context.Context) ([]domain.EduContent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := slices.Clone(s.education)
	for i := range out {
		out[i].Favorite = s.favorites[out[i].ID]
	}
	return out, nil
}

// MarkEducationRead flips the read flag of id.
func (s *Store) MarkEducationRead(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.education {
		if s.education[i].ID == id {
			if s.education[i].IsRead {
				return false, nil
			}
			s.education[i].IsRead = true
			return true, nil
		}
	}
	return false, domain.ErrNotFound
}

// UnmarkEducationRead clears the read flag of id.
func (s *Store) UnmarkEducationRead(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.education {
		if s.education[i].ID == id {
			s.education[i].IsRead = false
			return nil
		}
	}
	return domain.ErrNotFound
}

// ToggleFavorite flips the favourite flag of id.
func (s *Store) ToggleFavorite(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	known := false
	for _, c := range s.education {
		if c.ID == id {
			known = true
			break
		}
	}
	if !known {
		return false, domain.ErrNotFound
	}
	if s.favorites[id] {
		delete(s.favorites, id)
		return false, nil
	}
	s.favorites[id] = true
	return true, nil
}

// --- AccountRepository ---

// GetAccount returns the patient account, or nil before setup.
func (s *Store) GetAccount(ctx context.Context) (*domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.account == nil {
		return nil, nil
	}
	a := *s.account
	return &a, nil
}

// CreateAccount creates the patient account.
func (s *Store) CreateAccount(ctx context.Context, username, passwordHash string) (*domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.account != nil {
		return nil, errors.New("account already exists")
	}
	s.account = &domain.Account{
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
	a := *s.account
	return &a, nil
}

// --- SessionRepository ---

// SessionRepo implements session persistence.
type SessionRepo struct {
	store *Store
}

// NewSessionRepo creates a new session repository.
func (s *Store) NewSessionRepo() *SessionRepo {
	return &SessionRepo{store: s}
}

// Create stores a new session.
func (r *SessionRepo) Create(ctx context.Context, sess domain.Session) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if sess.CreatedAt.IsZero() {
		sess.CreatedAt = time.Now().UTC()
	}
	r.store.sessions[sess.Token] = &sess
	return nil
}

// GetByToken retrieves a session by token.
func (r *SessionRepo) GetByToken(ctx context.Context, token string) (*domain.Session, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if s, ok := r.store.sessions[token]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, nil
}

// Delete deletes a session.
func (r *SessionRepo) Delete(ctx context.Context, token string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	delete(r.store.sessions, token)
	return nil
}

// DeleteExpired deletes all sessions expired at now.
func (r *SessionRepo) DeleteExpired(ctx context.Context, now time.Time) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for k, v := range r.store.sessions {
		if now.After(v.ExpiresAt) {
			delete(r.store.sessions, k)
		}
	}
	return nil
}
