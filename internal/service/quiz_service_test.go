package service

import (
	"errors"
	"learnhub_backend/internal/model"
	"learnhub_backend/internal/util"
	"testing"
)

func TestQuizDraftAddQuestionSeedsBlankAnswers(t *testing.T) {
	draft := NewQuizDraft()
	if draft.PassingScore != 70 {
		t.Fatalf("expected default passing score 70, got %d", draft.PassingScore)
	}

	draft = draft.AddQuestion()
	if len(draft.Questions) != 1 {
		t.Fatalf("expected 1 question, got %d", len(draft.Questions))
	}

	q := draft.Questions[0]
	if q.Type != model.MultipleChoice {
		t.Errorf("expected default type multiple_choice, got %s", q.Type)
	}
	if q.Points != 1 {
		t.Errorf("expected default 1 point, got %d", q.Points)
	}
	if len(q.Answers) != 2 {
		t.Fatalf("expected 2 blank answers, got %d", len(q.Answers))
	}
	for i, a := range q.Answers {
		if a.Text != "" || a.IsCorrect {
			t.Errorf("answer %d should be blank and not correct", i)
		}
	}
}

func TestQuizDraftAnswerBounds(t *testing.T) {
	draft := NewQuizDraft().AddQuestion()

	// 下限：两个选项时不能再删
	if _, err := draft.RemoveAnswer(0, 0); !util.IsValidationError(err) {
		t.Fatalf("expected validation error removing below minimum, got %v", err)
	}

	// 上限：最多 6 个
	var err error
	for i := 0; i < MaxAnswersPerQuestion-2; i++ {
		draft, err = draft.AddAnswer(0)
		if err != nil {
			t.Fatalf("AddAnswer %d: %v", i, err)
		}
	}
	if len(draft.Questions[0].Answers) != MaxAnswersPerQuestion {
		t.Fatalf("expected %d answers, got %d", MaxAnswersPerQuestion, len(draft.Questions[0].Answers))
	}
	if _, err := draft.AddAnswer(0); !util.IsValidationError(err) {
		t.Fatalf("expected validation error above maximum, got %v", err)
	}

	// 有余量时可删
	draft, err = draft.RemoveAnswer(0, 5)
	if err != nil {
		t.Fatalf("RemoveAnswer: %v", err)
	}
	if len(draft.Questions[0].Answers) != MaxAnswersPerQuestion-1 {
		t.Fatalf("expected %d answers after removal, got %d", MaxAnswersPerQuestion-1, len(draft.Questions[0].Answers))
	}
}

func TestQuizDraftOperationsDoNotMutateOriginal(t *testing.T) {
	original := twoQuestionDraft()
	modified, err := original.AddAnswer(0)
	if err != nil {
		t.Fatalf("AddAnswer: %v", err)
	}

	if len(original.Questions[0].Answers) != 3 {
		t.Errorf("original draft mutated: %d answers", len(original.Questions[0].Answers))
	}
	if len(modified.Questions[0].Answers) != 4 {
		t.Errorf("expected 4 answers on modified draft, got %d", len(modified.Questions[0].Answers))
	}
}

func TestQuizDraftValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(d *QuizDraft)
	}{
		{"missing title", func(d *QuizDraft) { d.Title = "  " }},
		{"passing score out of range", func(d *QuizDraft) { d.PassingScore = 101 }},
		{"no questions", func(d *QuizDraft) { d.Questions = nil }},
		{"blank question text", func(d *QuizDraft) { d.Questions[0].Text = "" }},
		{"unsupported type", func(d *QuizDraft) { d.Questions[0].Type = "essay" }},
		{"zero points", func(d *QuizDraft) { d.Questions[0].Points = 0 }},
		{"no correct answer", func(d *QuizDraft) {
			for i := range d.Questions[0].Answers {
				d.Questions[0].Answers[i].IsCorrect = false
			}
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			draft := twoQuestionDraft()
			tc.mutate(&draft)
			if err := draft.Validate(); !util.IsValidationError(err) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}

	if err := twoQuestionDraft().Validate(); err != nil {
		t.Fatalf("valid draft rejected: %v", err)
	}
}

func TestQuizServiceSaveCreateThenEdit(t *testing.T) {
	db := newTestDB(t)
	svc := newQuizServiceForTest(db)

	course := seedCourse(t, db, true)
	module := seedModule(t, db, course.ID, 0)
	lesson := seedLesson(t, db, module.ID, 0)

	quiz, err := svc.Save(lesson.ID, "", twoQuestionDraft())
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if quiz.ID == "" {
		t.Fatal("expected quiz to be assigned an id")
	}

	saved, err := svc.GetForLesson(lesson.ID)
	if err != nil {
		t.Fatalf("GetForLesson: %v", err)
	}
	if len(saved.Questions) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(saved.Questions))
	}
	if len(saved.Questions[0].Answers) != 3 {
		t.Fatalf("expected 3 answers on first question, got %d", len(saved.Questions[0].Answers))
	}

	// 编辑：减成一道题，旧题目连同选项应全部消失
	edited := twoQuestionDraft()
	edited.Questions = edited.Questions[:1]
	edited.Title = "修订后的小测"

	afterEdit, err := svc.Save(lesson.ID, saved.ID, edited)
	if err != nil {
		t.Fatalf("Save edit: %v", err)
	}
	if afterEdit.ID != saved.ID {
		t.Errorf("edit must keep quiz id: %s != %s", afterEdit.ID, saved.ID)
	}

	reloaded, err := svc.GetForLesson(lesson.ID)
	if err != nil {
		t.Fatalf("GetForLesson after edit: %v", err)
	}
	if reloaded.Title != "修订后的小测" {
		t.Errorf("title not updated: %s", reloaded.Title)
	}
	if len(reloaded.Questions) != 1 {
		t.Fatalf("expected 1 question after edit, got %d", len(reloaded.Questions))
	}

	var questionCount, answerCount int64
	db.Model(&model.Question{}).Where("quiz_id = ?", saved.ID).Count(&questionCount)
	db.Model(&model.Answer{}).Count(&answerCount)
	if questionCount != 1 {
		t.Errorf("expected 1 question row, got %d", questionCount)
	}
	if answerCount != 3 {
		t.Errorf("expected 3 answer rows total after replace, got %d", answerCount)
	}
}

func TestQuizServiceSaveRejectsInvalidDraft(t *testing.T) {
	db := newTestDB(t)
	svc := newQuizServiceForTest(db)

	course := seedCourse(t, db, true)
	module := seedModule(t, db, course.ID, 0)
	lesson := seedLesson(t, db, module.ID, 0)

	bad := twoQuestionDraft()
	bad.Title = ""

	if _, err := svc.Save(lesson.ID, "", bad); !util.IsValidationError(err) {
		t.Fatalf("expected validation error, got %v", err)
	}

	var count int64
	db.Model(&model.Quiz{}).Count(&count)
	if count != 0 {
		t.Errorf("invalid draft must not touch storage, found %d quiz rows", count)
	}
}

func TestQuizServiceSaveLessonMissing(t *testing.T) {
	db := newTestDB(t)
	svc := newQuizServiceForTest(db)

	_, err := svc.Save("no-such-lesson", "", twoQuestionDraft())
	if !errors.Is(err, util.ErrLessonNotFound) {
		t.Fatalf("expected ErrLessonNotFound, got %v", err)
	}
}

func TestDraftFromQuizRoundTrip(t *testing.T) {
	db := newTestDB(t)
	svc := newQuizServiceForTest(db)

	course := seedCourse(t, db, true)
	module := seedModule(t, db, course.ID, 0)
	lesson := seedLesson(t, db, module.ID, 0)

	if _, err := svc.Save(lesson.ID, "", twoQuestionDraft()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	saved, err := svc.GetForLesson(lesson.ID)
	if err != nil {
		t.Fatalf("GetForLesson: %v", err)
	}

	draft := DraftFromQuiz(saved)
	if draft.Title != saved.Title {
		t.Errorf("title mismatch: %s != %s", draft.Title, saved.Title)
	}
	if len(draft.Questions) != 2 {
		t.Fatalf("expected 2 questions in draft, got %d", len(draft.Questions))
	}
	if !draft.Questions[0].Answers[0].IsCorrect {
		t.Error("correct flag lost in round trip")
	}
	if err := draft.Validate(); err != nil {
		t.Errorf("round-tripped draft should validate: %v", err)
	}
}
