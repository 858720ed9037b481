package domain

import (
	"fmt"
)

// Option is one selectable answer and the score it contributes.
type Option struct {
	Label string `json:"label"`
	Score int    `json:"score"`
}

// Question is a single survey item.
type Question struct {
	ID      int      `json:"id"`
	Text    string   `json:"text"`
	Options []Option `json:"options"`
}

// Band maps every total score >= Min (up to the next band) to a level and
// advice text.
type Band struct {
	Min    int    `json:"min"`
	Level  string `json:"level"`
	Advice string `json:"advice"`
}

// SkipGate makes the answer Score on question QuestionID jump straight to
// question ResumeID, skipping everything in between.
type SkipGate struct {
	QuestionID int `json:"questionId"`
	Score      int `json:"score"`
	ResumeID   int `json:"resumeId"`
}

// Instrument is a fixed questionnaire with its scoring bands. Bands are
// ordered from the highest Min to the lowest.
type Instrument struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Questions []Question `json:"questions"`
	Bands     []Band     `json:"bands"`
	Gate      *SkipGate  `json:"skipGate,omitempty"`
}

// Validate checks the structural rules every instrument must satisfy so
// that scoring is total over [0, MaxScore].
func (in *Instrument) Validate() error {
	if in.ID == "" {
		return fmt.Errorf("instrument: empty id: %w", ErrValidation)
	}
	if len(in.Questions) == 0 {
		return fmt.Errorf("instrument %s: no questions: %w", in.ID, ErrValidation)
	}
	seen := make(map[int]bool, len(in.Questions))
	for _, q := range in.Questions {
		if seen[q.ID] {
			return fmt.Errorf("instrument %s: duplicate question %d: %w", in.ID, q.ID, ErrValidation)
		}
		seen[q.ID] = true
		if len(q.Options) == 0 {
			return fmt.Errorf("instrument %s: question %d has no options: %w", in.ID, q.ID, ErrValidation)
		}
		for _, o := range q.Options {
			if o.Score < 0 {
				return fmt.Errorf("instrument %s: question %d: negative score %d: %w", in.ID, q.ID, o.Score, ErrValidation)
			}
		}
	}

	if len(in.Bands) == 0 {
		return fmt.Errorf("instrument %s: no bands: %w", in.ID, ErrValidation)
	}
	for i := 1; i < len(in.Bands); i++ {
		if in.Bands[i].Min >= in.Bands[i-1].Min {
			return fmt.Errorf("instrument %s: bands not strictly descending at %d: %w", in.ID, i, ErrValidation)
		}
	}
	if low := in.Bands[len(in.Bands)-1].Min; low != 0 {
		return fmt.Errorf("instrument %s: lowest band starts at %d, want 0: %w", in.ID, low, ErrValidation)
	}

	if g := in.Gate; g != nil {
		gi, ri := in.questionIndex(g.QuestionID), in.questionIndex(g.ResumeID)
		if gi < 0 || ri < 0 {
			return fmt.Errorf("instrument %s: skip gate references unknown question: %w", in.ID, ErrValidation)
		}
		if ri <= gi {
			return fmt.Errorf("instrument %s: skip gate resumes before gate: %w", in.ID, ErrValidation)
		}
		if !in.Questions[gi].hasScore(g.Score) {
			return fmt.Errorf("instrument %s: skip gate score %d not offered: %w", in.ID, g.Score, ErrValidation)
		}
	}
	return nil
}

// MaxScore is the highest total reachable by answering every question.
func (in *Instrument) MaxScore() int {
	total := 0
	for _, q := range in.Questions {
		best := 0
		for _, o := range q.Options {
			best = max(best, o.Score)
		}
		total += best
	}
	return total
}

// Interpret returns the band containing score: the first band, from the
// highest Min down, whose Min is <= score. Scores below every band fall in
// the lowest one.
func (in *Instrument) Interpret(score int) Band {
	for _, b := range in.Bands {
		if score >= b.Min {
			return b
		}
	}
	return in.Bands[len(in.Bands)-1]
}

func (in *Instrument) questionIndex(id int) int {
	for i, q := range in.Questions {
		if q.ID == id {
			return i
		}
	}
	return -1
}

func (q Question) hasScore(score int) bool {
	for _, o := range q.Options {
		if o.Score == score {
			return true
		}
	}
	return false
}

// SurveyResult is the scored outcome of a completed attempt.
type SurveyResult struct {
	InstrumentID   string `json:"instrumentId"`
	InstrumentName string `json:"instrumentName"`
	TotalScore     int    `json:"totalScore"`
	Level          string `json:"level"`
	Advice         string `json:"advice"`
}
