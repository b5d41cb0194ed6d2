package service

import (
	"learnhub_backend/internal/model"
	"learnhub_backend/internal/repository"
	"learnhub_backend/internal/util"
	"strings"
	"sync"
)

const (
	// MinAnswersPerQuestion 每道题至少保留的选项数
	MinAnswersPerQuestion = 2
	// MaxAnswersPerQuestion 每道题允许的选项上限
	MaxAnswersPerQuestion = 6
)

// AnswerDraft 编辑中的选项
type AnswerDraft struct {
	Text      string `json:"text"`
	IsCorrect bool   `json:"isCorrect"`
}

// QuestionDraft 编辑中的题目
type QuestionDraft struct {
	Text    string             `json:"text"`
	Type    model.QuestionType `json:"type"`
	Points  int                `json:"points"`
	Answers []AnswerDraft      `json:"answers"`
}

// QuizDraft 测验编辑态。所有操作在内存中进行，
// 校验全部通过后才触达存储，不存在部分保存
type QuizDraft struct {
	Title            string          `json:"title"`
	Description      string          `json:"description"`
	PassingScore     int             `json:"passingScore"`
	TimeLimitMinutes *int            `json:"timeLimitMinutes"`
	Questions        []QuestionDraft `json:"questions"`
}

func NewQuizDraft() QuizDraft {
	return QuizDraft{PassingScore: 70}
}

// AddQuestion 追加一道新题，预置两个空白选项
func (d QuizDraft) AddQuestion() QuizDraft {
	d.Questions = append(cloneQuestions(d.Questions), QuestionDraft{
		Type:   model.MultipleChoice,
		Points: 1,
		Answers: []AnswerDraft{
			{},
			{},
		},
	})
	return d
}

func (d QuizDraft) RemoveQuestion(index int) (QuizDraft, error) {
	if index < 0 || index >= len(d.Questions) {
		return d, util.NewValidationError("question", "question index out of range")
	}
	questions := cloneQuestions(d.Questions)
	d.Questions = append(questions[:index], questions[index+1:]...)
	return d, nil
}

func (d QuizDraft) AddAnswer(questionIndex int) (QuizDraft, error) {
	if questionIndex < 0 || questionIndex >= len(d.Questions) {
		return d, util.NewValidationError("question", "question index out of range")
	}
	questions := cloneQuestions(d.Questions)
	if len(questions[questionIndex].Answers) >= MaxAnswersPerQuestion {
		return d, util.NewValidationError("answers", "a question can have at most 6 answers")
	}
	questions[questionIndex].Answers = append(questions[questionIndex].Answers, AnswerDraft{})
	d.Questions = questions
	return d, nil
}

func (d QuizDraft) RemoveAnswer(questionIndex, answerIndex int) (QuizDraft, error) {
	if questionIndex < 0 || questionIndex >= len(d.Questions) {
		return d, util.NewValidationError("question", "question index out of range")
	}
	questions := cloneQuestions(d.Questions)
	answers := questions[questionIndex].Answers
	if answerIndex < 0 || answerIndex >= len(answers) {
		return d, util.NewValidationError("answers", "answer index out of range")
	}
	if len(answers) <= MinAnswersPerQuestion {
		return d, util.NewValidationError("answers", "a question must keep at least 2 answer options")
	}
	questions[questionIndex].Answers = append(answers[:answerIndex:answerIndex], answers[answerIndex+1:]...)
	d.Questions = questions
	return d, nil
}

// Validate 保存前的全量校验，任何一条不过都不会触达存储
func (d QuizDraft) Validate() error {
	if strings.TrimSpace(d.Title) == "" {
		return util.NewValidationError("title", "quiz title is required")
	}
	if d.PassingScore < 0 || d.PassingScore > 100 {
		return util.NewValidationError("passingScore", "passing score must be between 0 and 100")
	}
	if len(d.Questions) == 0 {
		return util.NewValidationError("questions", "a quiz needs at least one question")
	}
	for _, q := range d.Questions {
		if strings.TrimSpace(q.Text) == "" {
			return util.NewValidationError("questions", "all questions must have text")
		}
		if q.Type != model.MultipleChoice && q.Type != model.TrueFalse {
			return util.NewValidationError("questions", "unsupported question type")
		}
		if q.Points < 1 {
			return util.NewValidationError("questions", "question points must be at least 1")
		}
		hasCorrect := false
		for _, a := range q.Answers {
			if a.IsCorrect {
				hasCorrect = true
				break
			}
		}
		if !hasCorrect {
			return util.NewValidationError("questions", "each question must have at least one correct answer")
		}
	}
	return nil
}

func cloneQuestions(questions []QuestionDraft) []QuestionDraft {
	cloned := make([]QuestionDraft, len(questions))
	for i, q := range questions {
		answers := make([]AnswerDraft, len(q.Answers))
		copy(answers, q.Answers)
		q.Answers = answers
		cloned[i] = q
	}
	return cloned
}

// QuizService 测验定义的保存与读取。
// 保存采用整组替换：旧题目连同选项删除后按当前草稿重插
type QuizService struct {
	QuizRepo   *repository.QuizRepository
	LessonRepo *repository.LessonRepository

	// 同一测验的并发保存按测验串行化，避免交错的半成品状态
	saveLocks sync.Map
}

func NewQuizService(quizRepo *repository.QuizRepository, lessonRepo *repository.LessonRepository) *QuizService {
	return &QuizService{QuizRepo: quizRepo, LessonRepo: lessonRepo}
}

func (s *QuizService) lockFor(key string) *sync.Mutex {
	actual, _ := s.saveLocks.LoadOrStore(key, &sync.Mutex{})
	return actual.(*sync.Mutex)
}

// Save 保存完整测验定义。existingQuizID 为空表示新建
func (s *QuizService) Save(lessonID, existingQuizID string, draft QuizDraft) (*model.Quiz, error) {
	if err := draft.Validate(); err != nil {
		return nil, err
	}

	lesson, err := s.LessonRepo.FindByID(lessonID)
	if err != nil {
		return nil, err
	}
	if lesson == nil {
		return nil, util.ErrLessonNotFound
	}

	lockKey := existingQuizID
	if lockKey == "" {
		lockKey = "lesson:" + lessonID
	}
	mu := s.lockFor(lockKey)
	mu.Lock()
	defer mu.Unlock()

	quiz := &model.Quiz{
		LessonID:         lessonID,
		Title:            strings.TrimSpace(draft.Title),
		Description:      draft.Description,
		PassingScore:     draft.PassingScore,
		TimeLimitMinutes: draft.TimeLimitMinutes,
	}
	if existingQuizID != "" {
		existing, err := s.QuizRepo.FindByID(existingQuizID)
		if err != nil {
			return nil, err
		}
		if existing == nil {
			return nil, util.ErrQuizNotFound
		}
		quiz.UUIDBase = existing.UUIDBase
	}

	questions := make([]model.Question, 0, len(draft.Questions))
	for i, q := range draft.Questions {
		question := model.Question{
			QuestionText: strings.TrimSpace(q.Text),
			QuestionType: q.Type,
			Points:       q.Points,
			OrderIndex:   i,
		}
		for j, a := range q.Answers {
			question.Answers = append(question.Answers, model.Answer{
				AnswerText: a.Text,
				IsCorrect:  a.IsCorrect,
				OrderIndex: j,
			})
		}
		questions = append(questions, question)
	}

	if err := s.QuizRepo.Replace(quiz, questions); err != nil {
		return nil, err
	}
	quiz.Questions = questions
	return quiz, nil
}

// GetForLesson 课时的测验定义（含题目与选项）
func (s *QuizService) GetForLesson(lessonID string) (*model.Quiz, error) {
	quiz, err := s.QuizRepo.FindByLessonID(lessonID)
	if err != nil {
		return nil, err
	}
	if quiz == nil {
		return nil, util.ErrQuizNotFound
	}
	return s.QuizRepo.FindByID(quiz.ID)
}

// DraftFromQuiz 把已保存的测验还原为编辑草稿
func DraftFromQuiz(quiz *model.Quiz) QuizDraft {
	draft := QuizDraft{
		Title:            quiz.Title,
		Description:      quiz.Description,
		PassingScore:     quiz.PassingScore,
		TimeLimitMinutes: quiz.TimeLimitMinutes,
	}
	for _, q := range quiz.Questions {
		question := QuestionDraft{
			Text:   q.QuestionText,
			Type:   q.QuestionType,
			Points: q.Points,
		}
		for _, a := range q.Answers {
			question.Answers = append(question.Answers, AnswerDraft{Text: a.AnswerText, IsCorrect: a.IsCorrect})
		}
		draft.Questions = append(draft.Questions, question)
	}
	return draft
}
