package domain_test

import (
	"errors"
	"testing"

	"heartcare/internal/domain"
)

// answerAll answers every remaining question with score until the attempt
// reaches the last question, then answers that one too.
func answerAll(t *testing.T, p domain.InProgress, score func(q domain.Question) int) domain.InProgress {
	t.Helper()
	for {
		last := p.AtLast()
		var err error
		p, err = p.Answer(score(p.Question()))
		if err != nil {
			t.Fatalf("Answer: %v", err)
		}
		if last {
			return p
		}
	}
}

func TestInstrumentsValidate(t *testing.T) {
	if err := domain.ValidateInstruments(); err != nil {
		t.Fatalf("catalog invalid: %v", err)
	}
	want := map[string]int{"SCHFI": 22, "MLHFQ": 21, "GSES": 10, "GAD7": 7, "PHQ9": 9}
	for _, in := range domain.Instruments {
		if got := len(in.Questions); got != want[in.ID] {
			t.Errorf("%s: %d questions; want %d", in.ID, got, want[in.ID])
		}
	}
}

func TestInterpret_TotalOverRange(t *testing.T) {
	for _, in := range domain.Instruments {
		for score := 0; score <= in.MaxScore(); score++ {
			b := in.Interpret(score)
			if b.Level == "" || b.Advice == "" {
				t.Fatalf("%s: score %d mapped to empty band", in.ID, score)
			}
			if score < b.Min {
				t.Fatalf("%s: score %d below band min %d", in.ID, score, b.Min)
			}
		}
	}
}

func TestInterpret_Boundaries(t *testing.T) {
	tests := []struct {
		in    *domain.Instrument
		score int
		level string
	}{
		{&domain.SCHFI, 60, "管理良好"},
		{&domain.SCHFI, 59, "管理中等"},
		{&domain.SCHFI, 40, "管理中等"},
		{&domain.SCHFI, 39, "需要加强"},
		{&domain.MLHFQ, 24, "质量良好"},
		{&domain.MLHFQ, 25, "中度受损"},
		{&domain.MLHFQ, 45, "中度受损"},
		{&domain.MLHFQ, 46, "严重受损"},
		{&domain.GSES, 31, "效能高"},
		{&domain.GSES, 20, "效能偏低"},
		{&domain.GAD7, 4, "情绪平稳"},
		{&domain.GAD7, 9, "轻度焦虑"},
		{&domain.GAD7, 10, "焦虑偏高"},
		{&domain.PHQ9, 5, "轻度抑郁"},
	}
	for _, tc := range tests {
		if got := tc.in.Interpret(tc.score).Level; got != tc.level {
			t.Errorf("%s.Interpret(%d) = %q; want %q", tc.in.ID, tc.score, got, tc.level)
		}
	}
}

func TestInstrumentValidate_Rejects(t *testing.T) {
	opts := []domain.Option{{Label: "a", Score: 0}, {Label: "b", Score: 1}}
	base := func() domain.Instrument {
		return domain.Instrument{
			ID: "T",
			Questions: []domain.Question{
				{ID: 1, Options: opts}, {ID: 2, Options: opts}, {ID: 3, Options: opts},
			},
			Bands: []domain.Band{{Min: 2, Level: "hi"}, {Min: 0, Level: "lo"}},
		}
	}
	tests := []struct {
		name   string
		mutate func(in *domain.Instrument)
	}{
		{"no questions", func(in *domain.Instrument) { in.Questions = nil }},
		{"duplicate id", func(in *domain.Instrument) { in.Questions[1].ID = 1 }},
		{"no options", func(in *domain.Instrument) { in.Questions[0].Options = nil }},
		{"negative score", func(in *domain.Instrument) {
			in.Questions[0].Options = []domain.Option{{Label: "x", Score: -1}}
		}},
		{"bands not descending", func(in *domain.Instrument) {
			in.Bands = []domain.Band{{Min: 0}, {Min: 2}}
		}},
		{"gap below lowest band", func(in *domain.Instrument) {
			in.Bands = []domain.Band{{Min: 3}, {Min: 1}}
		}},
		{"gate unknown question", func(in *domain.Instrument) {
			in.Gate = &domain.SkipGate{QuestionID: 9, Score: 0, ResumeID: 3}
		}},
		{"gate resumes backwards", func(in *domain.Instrument) {
			in.Gate = &domain.SkipGate{QuestionID: 2, Score: 0, ResumeID: 1}
		}},
		{"gate score not offered", func(in *domain.Instrument) {
			in.Gate = &domain.SkipGate{QuestionID: 1, Score: 7, ResumeID: 3}
		}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			in := base()
			if err := in.Validate(); err != nil {
				t.Fatalf("base instrument invalid: %v", err)
			}
			tc.mutate(&in)
			if err := in.Validate(); !errors.Is(err, domain.ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
		})
	}
}

func TestSurvey_SkipGate(t *testing.T) {
	p := domain.StartSurvey(&domain.SCHFI)
	var err error
	for i := 0; i < 10; i++ {
		if p, err = p.Answer(2); err != nil {
			t.Fatalf("Answer: %v", err)
		}
	}
	if p.Question().ID != 11 {
		t.Fatalf("expected gate question 11, got %d", p.Question().ID)
	}
	if p, err = p.Answer(0); err != nil {
		t.Fatalf("Answer gate: %v", err)
	}
	if p.Question().ID != 17 {
		t.Fatalf("expected jump to question 17, got %d", p.Question().ID)
	}
	for id := 12; id <= 16; id++ {
		if _, ok := p.Answers[id]; ok {
			t.Fatalf("skipped question %d present in answers", id)
		}
	}

	p = answerAll(t, p, func(domain.Question) int { return 1 })
	done, err := p.Submit()
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	// 10 x 2 + gate 0 + 6 x 1
	if done.Result.TotalScore != 26 {
		t.Fatalf("total = %d; want 26", done.Result.TotalScore)
	}
	if done.Result.Level != "需要加强" {
		t.Fatalf("level = %q", done.Result.Level)
	}
}

func TestSurvey_GateNotTaken(t *testing.T) {
	p := domain.StartSurvey(&domain.SCHFI)
	p = answerAll(t, p, func(q domain.Question) int {
		if q.ID == 11 {
			return 1
		}
		return 4
	})
	if len(p.Answers) != 22 {
		t.Fatalf("expected 22 answers, got %d", len(p.Answers))
	}
	done, err := p.Submit()
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if done.Result.TotalScore != 85 {
		t.Fatalf("total = %d; want 85", done.Result.TotalScore)
	}
	if done.Result.Level != "管理良好" {
		t.Fatalf("level = %q", done.Result.Level)
	}
}

func TestSurvey_RegatingDropsSkippedAnswers(t *testing.T) {
	p := domain.StartSurvey(&domain.SCHFI)
	var err error
	for p.Question().ID != 14 {
		score := 3
		if p.Question().ID == 11 {
			score = 1
		}
		if p, err = p.Answer(score); err != nil {
			t.Fatalf("Answer: %v", err)
		}
	}
	for p.Question().ID != 11 {
		if p, err = p.Back(); err != nil {
			t.Fatalf("Back: %v", err)
		}
	}
	if p, err = p.Answer(0); err != nil {
		t.Fatalf("Answer gate: %v", err)
	}
	for id := 12; id <= 16; id++ {
		if _, ok := p.Answers[id]; ok {
			t.Fatalf("answer for skipped question %d survived re-gating", id)
		}
	}
}

func TestSurvey_BackAcrossGate(t *testing.T) {
	p := domain.StartSurvey(&domain.SCHFI)
	var err error
	for i := 0; i < 10; i++ {
		p, _ = p.Answer(2)
	}
	p, _ = p.Answer(0)
	if p.Question().ID != 17 {
		t.Fatalf("gate did not jump to question 17, at %d", p.Question().ID)
	}
	if p, err = p.Back(); err != nil {
		t.Fatalf("Back: %v", err)
	}
	if p.Index != 15 || p.Question().ID != 16 {
		t.Fatalf("expected back to index 15 (question 16), got index %d (question %d)", p.Index, p.Question().ID)
	}
	if p.Answers[11] != 0 || len(p.Answers) != 11 {
		t.Fatalf("answers not retained: %v", p.Answers)
	}
	if _, ok := p.Answers[16]; ok {
		t.Fatal("stepping back recorded an answer for a skipped question")
	}

	// Walking back onto the gate and re-answering it skips the section again.
	for p.Question().ID != 11 {
		if p, err = p.Back(); err != nil {
			t.Fatalf("Back: %v", err)
		}
	}
	if p, err = p.Answer(0); err != nil {
		t.Fatalf("Answer gate: %v", err)
	}
	if p.Question().ID != 17 || len(p.Answers) != 11 {
		t.Fatalf("re-gating: at question %d with answers %v", p.Question().ID, p.Answers)
	}
}

func TestSurvey_BackAndOverwrite(t *testing.T) {
	p := domain.StartSurvey(&domain.GAD7)
	if _, err := p.Back(); !errors.Is(err, domain.ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState at index 0, got %v", err)
	}
	p, _ = p.Answer(3)
	p, _ = p.Back()
	if p.Index != 0 || p.Answers[1] != 3 {
		t.Fatalf("unexpected state after back: index=%d answers=%v", p.Index, p.Answers)
	}
	p, _ = p.Answer(1)
	if p.Answers[1] != 1 || len(p.Answers) != 1 {
		t.Fatalf("re-answer did not overwrite: %v", p.Answers)
	}
}

func TestSurvey_AnswerLeavesPreviousStateUntouched(t *testing.T) {
	p := domain.StartSurvey(&domain.PHQ9)
	next, _ := p.Answer(2)
	if len(p.Answers) != 0 || p.Index != 0 {
		t.Fatal("Answer mutated the receiver")
	}
	if next.Index != 1 {
		t.Fatalf("next index = %d", next.Index)
	}
}

func TestSurvey_InvalidOption(t *testing.T) {
	p := domain.StartSurvey(&domain.MLHFQ)
	if _, err := p.Answer(2); !errors.Is(err, domain.ErrInvalidOption) {
		t.Fatalf("expected ErrInvalidOption, got %v", err)
	}
}

func TestSurvey_SubmitRules(t *testing.T) {
	p := domain.StartSurvey(&domain.GAD7)
	if _, err := p.Submit(); !errors.Is(err, domain.ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState, got %v", err)
	}
	p = answerAll(t, p, func(domain.Question) int { return 2 })
	if !p.AtLast() {
		t.Fatal("expected to stay on last question")
	}
	// answering the last question again keeps the index
	p, _ = p.Answer(2)
	if !p.AtLast() {
		t.Fatal("answer on last question advanced past the end")
	}
	done, err := p.Submit()
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if done.Result.TotalScore != 14 || done.Result.Level != "焦虑偏高" {
		t.Fatalf("unexpected result: %+v", done.Result)
	}
	if done.Result.InstrumentName != "焦虑测评" {
		t.Fatalf("name = %q", done.Result.InstrumentName)
	}
}
