package app

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"heartcare/internal/adapter/memory"
	"heartcare/internal/domain"

	"github.com/sirupsen/logrus"
)

func testLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func newStore(points int) *memory.Store {
	seed := memory.DefaultSeed()
	seed.Profile.Points = points
	return memory.New(seed)
}

type mockProfileRepo struct {
	getProfileFn   func(ctx context.Context) (domain.Profile, error)
	creditPointsFn func(ctx context.Context, amount int) (int, error)
	debitPointsFn  func(ctx context.Context, amount int) (bool, int, error)
	markSignedInFn func(ctx context.Context, localDay string) (bool, error)
	unmarkSignedFn func(ctx context.Context, localDay string) error
}

func (m *mockProfileRepo) GetProfile(ctx context.Context) (domain.Profile, error) {
	if m.getProfileFn != nil {
		return m.getProfileFn(ctx)
	}
	return domain.DefaultProfile(), nil
}

func (m *mockProfileRepo) CreditPoints(ctx context.Context, amount int) (int, error) {
	if m.creditPointsFn != nil {
		return m.creditPointsFn(ctx, amount)
	}
	return amount, nil
}

func (m *mockProfileRepo) DebitPoints(ctx context.Context, amount int) (bool, int, error) {
	if m.debitPointsFn != nil {
		return m.debitPointsFn(ctx, amount)
	}
	return true, 0, nil
}

func (m *mockProfileRepo) MarkSignedIn(ctx context.Context, localDay string) (bool, error) {
	if m.markSignedInFn != nil {
		return m.markSignedInFn(ctx, localDay)
	}
	return true, nil
}

func (m *mockProfileRepo) UnmarkSignedIn(ctx context.Context, localDay string) error {
	if m.unmarkSignedFn != nil {
		return m.unmarkSignedFn(ctx, localDay)
	}
	return nil
}

func TestPointsService_CreditDebit(t *testing.T) {
	ctx := context.Background()
	svc := NewPointsService(newStore(120), DefaultRewards(), testLogger())

	ok, bal, err := svc.Debit(ctx, 100)
	if err != nil || !ok || bal != 20 {
		t.Fatalf("Debit(100) = %v, %d, %v; want true, 20", ok, bal, err)
	}
	ok, bal, err = svc.Debit(ctx, 50)
	if err != nil || ok || bal != 20 {
		t.Fatalf("Debit(50) = %v, %d, %v; want false, 20", ok, bal, err)
	}
	bal, err = svc.Credit(ctx, 30, "test")
	if err != nil || bal != 50 {
		t.Fatalf("Credit(30) = %d, %v; want 50", bal, err)
	}
	bal, err = svc.Credit(ctx, 0, "test")
	if err != nil || bal != 50 {
		t.Fatalf("Credit(0) = %d, %v; want 50", bal, err)
	}
}

func TestPointsService_RejectsNegativeAmounts(t *testing.T) {
	ctx := context.Background()
	called := false
	repo := &mockProfileRepo{
		creditPointsFn: func(ctx context.Context, amount int) (int, error) {
			called = true
			return 0, nil
		},
		debitPointsFn: func(ctx context.Context, amount int) (bool, int, error) {
			called = true
			return true, 0, nil
		},
	}
	svc := NewPointsService(repo, DefaultRewards(), testLogger())

	if _, err := svc.Credit(ctx, -1, "test"); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("Credit(-1): expected ErrValidation, got %v", err)
	}
	if _, _, err := svc.Debit(ctx, -1); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("Debit(-1): expected ErrValidation, got %v", err)
	}
	if called {
		t.Error("repository should not be touched")
	}
}

func TestPointsService_ConcurrentDebitNeverOverdraws(t *testing.T) {
	ctx := context.Background()
	svc := NewPointsService(newStore(100), DefaultRewards(), testLogger())

	var wg sync.WaitGroup
	var mu sync.Mutex
	paid := 0
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, _, err := svc.Debit(ctx, 30)
			if err != nil {
				t.Error(err)
				return
			}
			if ok {
				mu.Lock()
				paid++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	bal, _ := svc.Balance(ctx)
	if paid != 3 || bal != 10 {
		t.Errorf("paid %d times, balance %d; want 3 and 10", paid, bal)
	}
}

func TestPointsService_Redeem(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		balance   int
		item      string
		ok        bool
		after     int
		shortfall int
	}{
		{"affordable", 120, "item3", true, 40, 0},
		{"exact", 30, "item6", true, 0, 0},
		{"insufficient", 120, "item2", false, 120, 180},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewPointsService(newStore(tt.balance), DefaultRewards(), testLogger())
			res, err := svc.Redeem(ctx, tt.item)
			if err != nil {
				t.Fatalf("Redeem: %v", err)
			}
			if res.OK != tt.ok || res.Balance != tt.after || res.Shortfall != tt.shortfall {
				t.Errorf("got %+v; want ok=%v balance=%d shortfall=%d", res, tt.ok, tt.after, tt.shortfall)
			}
		})
	}
}

func TestPointsService_RedeemUnknownItem(t *testing.T) {
	svc := NewPointsService(newStore(500), DefaultRewards(), testLogger())
	if _, err := svc.Redeem(context.Background(), "nope"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestPointsService_SignInOncePerDay(t *testing.T) {
	ctx := context.Background()
	svc := NewPointsService(newStore(120), DefaultRewards(), testLogger())
	day := time.Date(2024, 5, 1, 9, 0, 0, 0, time.Local)
	svc.now = func() time.Time { return day }

	rewarded, bal, err := svc.SignIn(ctx)
	if err != nil || !rewarded || bal != 125 {
		t.Fatalf("first SignIn = %v, %d, %v; want true, 125", rewarded, bal, err)
	}
	day = day.Add(8 * time.Hour)
	rewarded, bal, err = svc.SignIn(ctx)
	if err != nil || rewarded || bal != 125 {
		t.Fatalf("same-day SignIn = %v, %d, %v; want false, 125", rewarded, bal, err)
	}
	day = day.Add(24 * time.Hour)
	rewarded, bal, err = svc.SignIn(ctx)
	if err != nil || !rewarded || bal != 130 {
		t.Fatalf("next-day SignIn = %v, %d, %v; want true, 130", rewarded, bal, err)
	}
}

func TestPointsService_SignInCreditFailure(t *testing.T) {
	ctx := context.Background()
	store := newStore(120)
	fail := true
	repo := &mockProfileRepo{
		getProfileFn:   store.GetProfile,
		markSignedInFn: store.MarkSignedIn,
		unmarkSignedFn: store.UnmarkSignedIn,
		creditPointsFn: func(ctx context.Context, amount int) (int, error) {
			if fail {
				return 0, errors.New("credit failed")
			}
			return store.CreditPoints(ctx, amount)
		},
	}
	svc := NewPointsService(repo, DefaultRewards(), testLogger())
	svc.now = func() time.Time { return time.Date(2024, 5, 1, 9, 0, 0, 0, time.Local) }

	if rewarded, _, err := svc.SignIn(ctx); err == nil || rewarded {
		t.Fatalf("SignIn = %v, %v; want credit error", rewarded, err)
	}

	fail = false
	rewarded, bal, err := svc.SignIn(ctx)
	if err != nil || !rewarded || bal != 125 {
		t.Errorf("retry SignIn = %v, %d, %v; want true, 125", rewarded, bal, err)
	}
}
