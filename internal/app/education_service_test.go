package app

import (
	"context"
	"errors"
	"testing"

	"heartcare/internal/domain"
)

func TestEducationService_MarkReadRewardsOnce(t *testing.T) {
	ctx := context.Background()
	store := newStore(120)
	points := NewPointsService(store, DefaultRewards(), testLogger())
	svc := NewEducationService(store, points, DefaultRewards().EduRead, testLogger())

	rewarded, bal, err := svc.MarkRead(ctx, "edu1")
	if err != nil || !rewarded || bal != 125 {
		t.Fatalf("first MarkRead = %v, %d, %v; want true, 125", rewarded, bal, err)
	}
	rewarded, bal, err = svc.MarkRead(ctx, "edu1")
	if err != nil || rewarded || bal != 125 {
		t.Fatalf("second MarkRead = %v, %d, %v; want false, 125", rewarded, bal, err)
	}

	list, _ := svc.List(ctx)
	if !list[0].IsRead || list[1].IsRead {
		t.Errorf("read flags %v %v; want true false", list[0].IsRead, list[1].IsRead)
	}
}

func TestEducationService_UnknownArticle(t *testing.T) {
	ctx := context.Background()
	store := newStore(120)
	svc := NewEducationService(store, NewPointsService(store, DefaultRewards(), testLogger()), 5, testLogger())

	if _, _, err := svc.MarkRead(ctx, "nope"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("MarkRead: expected ErrNotFound, got %v", err)
	}
	if _, err := svc.ToggleFavorite(ctx, "nope"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("ToggleFavorite: expected ErrNotFound, got %v", err)
	}
}

func TestEducationService_Favorites(t *testing.T) {
	ctx := context.Background()
	store := newStore(0)
	svc := NewEducationService(store, NewPointsService(store, DefaultRewards(), testLogger()), 5, testLogger())

	svc.ToggleFavorite(ctx, "edu3")
	on, _ := svc.ToggleFavorite(ctx, "edu1")
	if !on {
		t.Fatal("expected edu1 favourited")
	}
	favs, _ := svc.Favorites(ctx)
	if len(favs) != 2 || favs[0].ID != "edu1" || favs[1].ID != "edu3" {
		t.Errorf("favourites %+v; want edu1, edu3 in catalog order", favs)
	}

	off, _ := svc.ToggleFavorite(ctx, "edu1")
	favs, _ = svc.Favorites(ctx)
	if off || len(favs) != 1 {
		t.Errorf("toggle off left %d favourites", len(favs))
	}
}

func TestEducationService_MarkReadCreditFailure(t *testing.T) {
	ctx := context.Background()
	store := newStore(120)
	fail := true
	repo := &mockProfileRepo{
		creditPointsFn: func(ctx context.Context, amount int) (int, error) {
			if fail {
				return 0, errors.New("credit failed")
			}
			return store.CreditPoints(ctx, amount)
		},
	}
	svc := NewEducationService(store, NewPointsService(repo, DefaultRewards(), testLogger()), 5, testLogger())

	if _, _, err := svc.MarkRead(ctx, "edu1"); err == nil {
		t.Fatal("expected credit error")
	}
	list, _ := svc.List(ctx)
	if list[0].IsRead {
		t.Fatal("read flag kept after failed credit")
	}

	fail = false
	rewarded, bal, err := svc.MarkRead(ctx, "edu1")
	if err != nil || !rewarded || bal != 125 {
		t.Errorf("retry MarkRead = %v, %d, %v; want true, 125", rewarded, bal, err)
	}
}
