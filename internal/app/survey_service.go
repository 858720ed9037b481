package app

import (
	"context"
	"fmt"
	"maps"
	"sync"

	"heartcare/internal/domain"

	"github.com/sirupsen/logrus"
)

// Survey phases reported by SurveyView.
const (
	PhaseIdle       = "idle"
	PhaseInProgress = "in_progress"
	PhaseCompleted  = "completed"
)

// InstrumentSummary is a catalog entry for the survey list.
type InstrumentSummary struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Questions int    `json:"questions"`
	MaxScore  int    `json:"maxScore"`
}

// SurveyView is a read-only rendering of the survey state.
type SurveyView struct {
	Phase        string               `json:"phase"`
	InstrumentID string               `json:"instrumentId,omitempty"`
	Name         string               `json:"name,omitempty"`
	Index        int                  `json:"index"`
	Count        int                  `json:"count"`
	Question     *domain.Question     `json:"question,omitempty"`
	Answers      map[int]int          `json:"answers,omitempty"`
	CanBack      bool                 `json:"canBack"`
	CanSubmit    bool                 `json:"canSubmit"`
	Result       *domain.SurveyResult `json:"result,omitempty"`
}

// SurveyService drives the single survey attempt.
type SurveyService struct {
	instruments []*domain.Instrument
	points      *PointsService
	reward      int
	log         logrus.FieldLogger

	mu    sync.Mutex
	state domain.SurveyState
}

// NewSurveyService creates a SurveyService over the given instruments.
func NewSurveyService(instruments []*domain.Instrument, points *PointsService, reward int, log logrus.FieldLogger) *SurveyService {
	return &SurveyService{
		instruments: instruments,
		points:      points,
		reward:      reward,
		log:         log,
		state:       domain.NotStarted{},
	}
}

// Instruments lists the available questionnaires.
func (s *SurveyService) Instruments() []InstrumentSummary {
	out := make([]InstrumentSummary, 0, len(s.instruments))
	for _, in := range s.instruments {
		out = append(out, InstrumentSummary{
			ID:        in.ID,
			Name:      in.Name,
			Questions: len(in.Questions),
			MaxScore:  in.MaxScore(),
		})
	}
	return out
}

// State returns the current view.
func (s *SurveyService) State() SurveyView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return view(s.state)
}

// Start opens instrument id on its first question. Starting while another
// attempt is open discards it.
func (s *SurveyService) Start(id string) (SurveyView, error) {
	in := s.lookup(id)
	if in == nil {
		return SurveyView{}, fmt.Errorf("instrument %q: %w", id, domain.ErrNotFound)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = domain.StartSurvey(in)
	s.log.WithField("instrument", in.ID).Debug("survey started")
	return view(s.state), nil
}

// Answer records score for the current question.
func (s *SurveyService) Answer(score int) (SurveyView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, err := s.inProgress("answer")
	if err != nil {
		return SurveyView{}, err
	}
	next, err := p.Answer(score)
	if err != nil {
		return SurveyView{}, err
	}
	s.state = next
	return view(s.state), nil
}

// Back moves to the previous question.
func (s *SurveyService) Back() (SurveyView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, err := s.inProgress("back")
	if err != nil {
		return SurveyView{}, err
	}
	next, err := p.Back()
	if err != nil {
		return SurveyView{}, err
	}
	s.state = next
	return view(s.state), nil
}

// Submit scores the attempt and credits the survey reward.
func (s *SurveyService) Submit(ctx context.Context) (SurveyView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, err := s.inProgress("submit")
	if err != nil {
		return SurveyView{}, err
	}
	done, err := p.Submit()
	if err != nil {
		return SurveyView{}, err
	}
	if _, err := s.points.Credit(ctx, s.reward, "survey"); err != nil {
		return SurveyView{}, err
	}
	s.state = done
	s.log.WithFields(logrus.Fields{
		"instrument": done.Result.InstrumentID,
		"score":      done.Result.TotalScore,
		"level":      done.Result.Level,
	}).Info("survey submitted")
	return view(s.state), nil
}

// Close returns to the idle state from any phase.
func (s *SurveyService) Close() SurveyView {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = domain.NotStarted{}
	return view(s.state)
}

func (s *SurveyService) lookup(id string) *domain.Instrument {
	for _, in := range s.instruments {
		if in.ID == id {
			return in
		}
	}
	return nil
}

func (s *SurveyService) inProgress(op string) (domain.InProgress, error) {
	p, ok := s.state.(domain.InProgress)
	if !ok {
		return domain.InProgress{}, fmt.Errorf("%s: no survey in progress: %w", op, domain.ErrInvalidState)
	}
	return p, nil
}

func view(st domain.SurveyState) SurveyView {
	switch st := st.(type) {
	case domain.InProgress:
		q := st.Question()
		return SurveyView{
			Phase:        PhaseInProgress,
			InstrumentID: st.Instrument.ID,
			Name:         st.Instrument.Name,
			Index:        st.Index,
			Count:        len(st.Instrument.Questions),
			Question:     &q,
			Answers:      maps.Clone(st.Answers),
			CanBack:      st.Index > 0,
			CanSubmit:    st.AtLast(),
		}
	case domain.Completed:
		r := st.Result
		return SurveyView{
			Phase:        PhaseCompleted,
			InstrumentID: r.InstrumentID,
			Name:         r.InstrumentName,
			Result:       &r,
		}
	case domain.NotStarted:
		return SurveyView{Phase: PhaseIdle}
	default:
		panic(fmt.Sprintf("unknown survey state %T", st))
	}
}
