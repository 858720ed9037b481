package domain

import "fmt"

// SurveyState is the lifecycle of the single survey attempt. It is one of
// NotStarted, InProgress or Completed.
type SurveyState interface {
	surveyState()
}

// NotStarted means no instrument is open.
type NotStarted struct{}

// InProgress is an open attempt positioned on question Index.
type InProgress struct {
	Instrument *Instrument
	Index      int
	// Answers maps question id to the chosen score. Skipped questions are
	// absent.
	Answers map[int]int
}

// Completed holds the result of a submitted attempt until it is closed.
type Completed struct {
	Result SurveyResult
}

func (NotStarted) surveyState() {}
func (InProgress) surveyState() {}
func (Completed) surveyState()  {}

// StartSurvey opens a fresh attempt on the first question of in.
func StartSurvey(in *Instrument) InProgress {
	return InProgress{Instrument: in, Answers: map[int]int{}}
}

// Question returns the question the attempt is positioned on.
func (p InProgress) Question() Question {
	return p.Instrument.Questions[p.Index]
}

// AtLast reports whether the attempt is on the final question.
func (p InProgress) AtLast() bool {
	return p.Index == len(p.Instrument.Questions)-1
}

// Answer records score for the current question and advances. A matching
// skip gate jumps to its resume question and drops any answers given to the
// questions in between. On the last question the index stays put.
func (p InProgress) Answer(score int) (InProgress, error) {
	q := p.Question()
	if !q.hasScore(score) {
		return p, fmt.Errorf("question %d: score %d: %w", q.ID, score, ErrInvalidOption)
	}

	next := p.clone()
	next.Answers[q.ID] = score

	if g := p.Instrument.Gate; g != nil && g.QuestionID == q.ID && g.Score == score {
		resume := p.Instrument.questionIndex(g.ResumeID)
		for i := p.Index + 1; i < resume; i++ {
			delete(next.Answers, p.Instrument.Questions[i].ID)
		}
		next.Index = resume
		return next, nil
	}

	if !p.AtLast() {
		next.Index++
	}
	return next, nil
}

// Back moves to the previous question, keeping recorded answers. Stepping
// back from the resume question of a taken skip gate lands on the last
// skipped question; answering the gate again re-skips that section.
func (p InProgress) Back() (InProgress, error) {
	if p.Index == 0 {
		return p, fmt.Errorf("back from first question: %w", ErrInvalidState)
	}
	next := p.clone()
	next.Index--
	return next, nil
}

// Submit scores the attempt. It is only legal on the last question.
func (p InProgress) Submit() (Completed, error) {
	if !p.AtLast() {
		return Completed{}, fmt.Errorf("submit before last question: %w", ErrInvalidState)
	}
	total := 0
	for _, s := range p.Answers {
		total += s
	}
	band := p.Instrument.Interpret(total)
	return Completed{Result: SurveyResult{
		InstrumentID:   p.Instrument.ID,
		InstrumentName: p.Instrument.Name,
		TotalScore:     total,
		Level:          band.Level,
		Advice:         band.Advice,
	}}, nil
}

func (p InProgress) clone() InProgress {
	answers := make(map[int]int, len(p.Answers)+1)
	for k, v := range p.Answers {
		answers[k] = v
	}
	p.Answers = answers
	return p
}
