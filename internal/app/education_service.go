package app

import (
	"context"

	"heartcare/internal/domain"

	"github.com/sirupsen/logrus"
)

// EducationService serves the article catalog and rewards first reads.
type EducationService struct {
	repo   domain.EducationRepository
	points *PointsService
	reward int
	log    logrus.FieldLogger
}

// NewEducationService creates an EducationService.
func NewEducationService(repo domain.EducationRepository, points *PointsService, reward int, log logrus.FieldLogger) *EducationService {
	return &EducationService{repo: repo, points: points, reward: reward, log: log}
}

// List returns every article with its read and favourite flags.
func (s *EducationService) List(ctx context.Context) ([]domain.EduContent, error) {
	return s.repo.ListEducation(ctx)
}

// Favorites returns the favourited articles.
func (s *EducationService) Favorites(ctx context.Context) ([]domain.EduContent, error) {
	all, err := s.repo.ListEducation(ctx)
	if err != nil {
		return nil, err
	}
	out := []domain.EduContent{}
	for _, c := range all {
		if c.Favorite {
			out = append(out, c)
		}
	}
	return out, nil
}

// MarkRead marks article id as read. Only the first read is rewarded.
func (s *EducationService) MarkRead(ctx context.Context, id string) (rewarded bool, balance int, err error) {
	first, err := s.repo.MarkEducationRead(ctx, id)
	if err != nil {
		return false, 0, err
	}
	if !first {
		bal, err := s.points.Balance(ctx)
		return false, bal, err
	}
	bal, err := s.points.Credit(ctx, s.reward, "education")
	if err != nil {
		if uerr := s.repo.UnmarkEducationRead(ctx, id); uerr != nil {
			s.log.WithError(uerr).WithField("article", id).Error("back out read flag")
		}
		return false, 0, err
	}
	s.log.WithField("article", id).Debug("article read")
	return true, bal, nil
}

// ToggleFavorite flips favourite membership of id and returns the new state.
func (s *EducationService) ToggleFavorite(ctx context.Context, id string) (bool, error) {
	return s.repo.ToggleFavorite(ctx, id)
}
