// Package app holds the application services and business logic.
package app

import (
	"context"
	"fmt"
	"time"

	"heartcare/internal/domain"

	"github.com/sirupsen/logrus"
)

// Rewards are the points credited for each engagement action.
type Rewards struct {
	DailyLog int
	Survey   int
	EduRead  int
	SignIn   int
}

// DefaultRewards returns the standard point amounts.
func DefaultRewards() Rewards {
	return Rewards{DailyLog: 20, Survey: 10, EduRead: 5, SignIn: 5}
}

// PointsService owns the points balance.
type PointsService struct {
	repo   domain.ProfileRepository
	signIn int
	log    logrus.FieldLogger
	now    func() time.Time
}

// NewPointsService creates a PointsService backed by the given repository.
func NewPointsService(repo domain.ProfileRepository, rewards Rewards, log logrus.FieldLogger) *PointsService {
	return &PointsService{repo: repo, signIn: rewards.SignIn, log: log, now: time.Now}
}

// Profile returns the patient profile with the current balance.
func (s *PointsService) Profile(ctx context.Context) (domain.Profile, error) {
	return s.repo.GetProfile(ctx)
}

// Balance returns the current balance.
func (s *PointsService) Balance(ctx context.Context) (int, error) {
	p, err := s.repo.GetProfile(ctx)
	if err != nil {
		return 0, err
	}
	return p.Points, nil
}

// Credit adds amount to the balance. reason is only logged.
func (s *PointsService) Credit(ctx context.Context, amount int, reason string) (int, error) {
	if amount < 0 {
		return 0, fmt.Errorf("credit %d: amount must be >= 0: %w", amount, domain.ErrValidation)
	}
	bal, err := s.repo.CreditPoints(ctx, amount)
	if err != nil {
		return 0, err
	}
	s.log.WithFields(logrus.Fields{"amount": amount, "reason": reason, "balance": bal}).Info("points credited")
	return bal, nil
}

// Debit subtracts amount if the balance covers it. An unaffordable debit
// is not an error: it returns false and leaves the balance unchanged.
func (s *PointsService) Debit(ctx context.Context, amount int) (bool, int, error) {
	if amount < 0 {
		return false, 0, fmt.Errorf("debit %d: amount must be >= 0: %w", amount, domain.ErrValidation)
	}
	return s.repo.DebitPoints(ctx, amount)
}

// RedeemResult reports the outcome of a redemption. Shortfall is the
// number of points still missing when OK is false.
type RedeemResult struct {
	OK        bool              `json:"ok"`
	Item      domain.RewardItem `json:"item"`
	Balance   int               `json:"balance"`
	Shortfall int               `json:"shortfall"`
}

// Redeem exchanges points for a catalog item.
func (s *PointsService) Redeem(ctx context.Context, itemID string) (RedeemResult, error) {
	item, ok := domain.RewardByID(itemID)
	if !ok {
		return RedeemResult{}, fmt.Errorf("reward %q: %w", itemID, domain.ErrNotFound)
	}
	paid, bal, err := s.Debit(ctx, item.Points)
	if err != nil {
		return RedeemResult{}, err
	}
	res := RedeemResult{OK: paid, Item: item, Balance: bal}
	if !paid {
		res.Shortfall = item.Points - bal
		return res, nil
	}
	s.log.WithFields(logrus.Fields{"item": item.ID, "cost": item.Points, "balance": bal}).Info("reward redeemed")
	return res, nil
}

// SignIn credits the daily sign-in reward once per local calendar day.
// It reports whether this call was rewarded.
func (s *PointsService) SignIn(ctx context.Context) (bool, int, error) {
	day := s.now().In(time.Local).Format("2006-01-02")
	first, err := s.repo.MarkSignedIn(ctx, day)
	if err != nil {
		return false, 0, err
	}
	if !first {
		bal, err := s.Balance(ctx)
		return false, bal, err
	}
	bal, err := s.Credit(ctx, s.signIn, "sign-in")
	if err != nil {
		if uerr := s.repo.UnmarkSignedIn(ctx, day); uerr != nil {
			s.log.WithError(uerr).WithField("day", day).Error("back out sign-in")
		}
		return false, 0, err
	}
	return true, bal, nil
}
