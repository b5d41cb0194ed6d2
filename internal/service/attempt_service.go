package service

import (
	"learnhub_backend/internal/model"
	"learnhub_backend/internal/repository"
	"learnhub_backend/internal/util"
	"learnhub_backend/pkg/logger"
	"learnhub_backend/pkg/monitoring"
	"math"
	"sync"
	"time"

	"go.uber.org/zap"
)

// AttemptService 驱动一次答题：加载定义、记录所选答案、
// 可选倒计时、计分并落库。状态机 Loading -> InProgress -> Submitted，
// 没有取消态，开始后的答题记录不会被删除
type AttemptService struct {
	QuizRepo    *repository.QuizRepository
	AttemptRepo *repository.AttemptRepository

	// TickInterval 倒计时步长，默认一秒。测试用它压缩时间
	TickInterval time.Duration
	Now          func() time.Time

	mu     sync.Mutex
	active map[string]*attemptRun // 进行中的答题，交卷落库后移除
}

func NewAttemptService(quizRepo *repository.QuizRepository, attemptRepo *repository.AttemptRepository) *AttemptService {
	return &AttemptService{
		QuizRepo:    quizRepo,
		AttemptRepo: attemptRepo,
		active:      make(map[string]*attemptRun),
	}
}

// attemptRun 单次答题的内存状态
type attemptRun struct {
	mu        sync.Mutex
	attemptID string
	quiz      *model.Quiz
	selected  map[string][]string // questionID -> answerIDs（当前仅单选，新选择替换旧选择）
	remaining int                 // 剩余秒数，-1 表示不限时
	submitted bool
	result    *AttemptResult
	stop      chan struct{}
}

// AttemptView 返回给答题端的视图，选项不携带 is_correct
type AttemptView struct {
	AttemptID        string           `json:"attemptId"`
	Quiz             *model.Quiz      `json:"quiz"`
	Questions        []model.Question `json:"questions"`
	RemainingSeconds int              `json:"remainingSeconds"`
}

// AttemptResult 提交后的成绩。持久化失败时依然返回，
// 学员看到的分数不依赖写库成功
type AttemptResult struct {
	AttemptID    string `json:"attemptId"`
	Score        int    `json:"score"`
	Passed       bool   `json:"passed"`
	EarnedPoints int    `json:"earnedPoints"`
	TotalPoints  int    `json:"totalPoints"`
}

func (s *AttemptService) tickInterval() time.Duration {
	if s.TickInterval > 0 {
		return s.TickInterval
	}
	return time.Second
}

func (s *AttemptService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Start 加载测验并创建答题记录；设有时限则立刻开始倒计时。
// 加载或建档失败直接报错，不自动重试
func (s *AttemptService) Start(userID uint, quizID string) (*AttemptView, error) {
	quiz, err := s.QuizRepo.FindByID(quizID)
	if err != nil {
		return nil, err
	}
	if quiz == nil {
		return nil, util.ErrQuizNotFound
	}

	attempt := &model.QuizAttempt{
		UserID:    userID,
		QuizID:    quizID,
		StartedAt: s.now(),
	}
	if err := s.AttemptRepo.Create(attempt); err != nil {
		return nil, err
	}

	run := &attemptRun{
		attemptID: attempt.ID,
		quiz:      quiz,
		selected:  make(map[string][]string),
		remaining: -1,
		stop:      make(chan struct{}),
	}
	if quiz.TimeLimitMinutes != nil && *quiz.TimeLimitMinutes > 0 {
		run.remaining = *quiz.TimeLimitMinutes * 60
	}

	s.mu.Lock()
	s.active[attempt.ID] = run
	s.mu.Unlock()

	if run.remaining >= 0 {
		go s.countdown(run)
	}

	// 视图里的测验不携带题目，题目单独给出且抹掉正确标记
	quizView := *quiz
	quizView.Questions = nil

	return &AttemptView{
		AttemptID:        attempt.ID,
		Quiz:             &quizView,
		Questions:        stripCorrectFlags(quiz.Questions),
		RemainingSeconds: run.remaining,
	}, nil
}

// stripCorrectFlags 答题视图不能泄露正确答案
func stripCorrectFlags(questions []model.Question) []model.Question {
	stripped := make([]model.Question, len(questions))
	for i, q := range questions {
		answers := make([]model.Answer, len(q.Answers))
		for j, a := range q.Answers {
			a.IsCorrect = false
			answers[j] = a
		}
		q.Answers = answers
		stripped[i] = q
	}
	return stripped
}

// countdown 每个步长减一秒，归零自动提交。提交后不再产生任何 tick
func (s *AttemptService) countdown(run *attemptRun) {
	ticker := time.NewTicker(s.tickInterval())
	defer ticker.Stop()

	for {
		select {
		case <-run.stop:
			return
		case <-ticker.C:
			run.mu.Lock()
			if run.submitted {
				run.mu.Unlock()
				return
			}
			run.remaining--
			expired := run.remaining <= 0
			run.mu.Unlock()

			if expired {
				if _, err := s.submit(run, "timeout"); err != nil {
					logger.Log.Error("auto-submit on quiz timeout failed",
						zap.String("attemptId", run.attemptID),
						zap.Error(err))
				}
				return
			}
		}
	}
}

func (s *AttemptService) findRun(attemptID string) (*attemptRun, error) {
	s.mu.Lock()
	run, ok := s.active[attemptID]
	s.mu.Unlock()
	if !ok {
		return nil, util.ErrAttemptNotFound
	}
	return run, nil
}

// findFinished 内存中没有的答题记录回落到持久化行，只认已交卷的
func (s *AttemptService) findFinished(attemptID string) (*model.QuizAttempt, error) {
	attempt, err := s.AttemptRepo.FindByID(attemptID)
	if err != nil {
		return nil, err
	}
	if attempt == nil || attempt.CompletedAt == nil {
		return nil, util.ErrAttemptNotFound
	}
	return attempt, nil
}

// SelectAnswer 记录所选选项。单选：同一题的新选择替换旧选择。
// 已提交的答题忽略后续选择
func (s *AttemptService) SelectAnswer(attemptID, questionID, answerID string) error {
	run, err := s.findRun(attemptID)
	if err != nil {
		if _, ferr := s.findFinished(attemptID); ferr == nil {
			return nil
		}
		return err
	}

	run.mu.Lock()
	defer run.mu.Unlock()

	if run.submitted {
		return nil
	}

	for _, q := range run.quiz.Questions {
		if q.ID != questionID {
			continue
		}
		for _, a := range q.Answers {
			if a.ID == answerID {
				run.selected[questionID] = []string{answerID}
				return nil
			}
		}
		return util.NewValidationError("answerId", "answer does not belong to this question")
	}
	return util.NewValidationError("questionId", "question does not belong to this quiz")
}

// RemainingSeconds 当前剩余秒数，-1 表示不限时，已交卷恒为 0
func (s *AttemptService) RemainingSeconds(attemptID string) (int, error) {
	run, err := s.findRun(attemptID)
	if err != nil {
		if _, ferr := s.findFinished(attemptID); ferr == nil {
			return 0, nil
		}
		return 0, err
	}
	run.mu.Lock()
	defer run.mu.Unlock()
	return run.remaining, nil
}

// Submit 手动提交。重复提交是空操作，返回第一次的成绩；
// 内存态已清理时从持久化行取成绩
func (s *AttemptService) Submit(attemptID string) (*AttemptResult, error) {
	run, err := s.findRun(attemptID)
	if err != nil {
		attempt, ferr := s.findFinished(attemptID)
		if ferr != nil {
			return nil, ferr
		}
		return &AttemptResult{
			AttemptID: attempt.ID,
			Score:     attempt.Score,
			Passed:    attempt.Passed,
		}, nil
	}
	return s.submit(run, "manual")
}

// submit 提交闩：计分一次、写库一次，之后的调用直接返回缓存结果。
// 写库失败时成绩照常返回，错误一并带出
func (s *AttemptService) submit(run *attemptRun, trigger string) (*AttemptResult, error) {
	run.mu.Lock()
	if run.submitted {
		result := run.result
		run.mu.Unlock()
		return result, nil
	}
	run.submitted = true
	close(run.stop)

	result := scoreAttempt(run.quiz, run.selected)
	result.AttemptID = run.attemptID
	run.result = result
	run.mu.Unlock()

	monitoring.QuizSubmissions.WithLabelValues(trigger, boolLabel(result.Passed)).Inc()

	if _, err := s.AttemptRepo.Finalize(run.attemptID, result.Score, result.Passed, s.now()); err != nil {
		// 落库失败时保留内存态，成绩不丢
		return result, err
	}

	s.mu.Lock()
	delete(s.active, run.attemptID)
	s.mu.Unlock()
	return result, nil
}

// History 某学员在该测验下的历史答题记录，按开始时间倒序
func (s *AttemptService) History(userID uint, quizID string) ([]model.QuizAttempt, error) {
	quiz, err := s.QuizRepo.FindByID(quizID)
	if err != nil {
		return nil, err
	}
	if quiz == nil {
		return nil, util.ErrQuizNotFound
	}
	return s.AttemptRepo.ListByUserAndQuiz(userID, quizID)
}

func boolLabel(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

// scoreAttempt 逐题比对所选选项集合与正确选项集合，完全一致才得分，
// 不给部分分。得分 = round(100 * 得分点数 / 总点数)；没有题目时为 0 分未通过
func scoreAttempt(quiz *model.Quiz, selected map[string][]string) *AttemptResult {
	totalPoints := 0
	earnedPoints := 0

	for _, q := range quiz.Questions {
		totalPoints += q.Points

		correct := make(map[string]bool)
		for _, a := range q.Answers {
			if a.IsCorrect {
				correct[a.ID] = true
			}
		}

		chosen := selected[q.ID]
		if len(chosen) != len(correct) {
			continue
		}
		match := true
		for _, id := range chosen {
			if !correct[id] {
				match = false
				break
			}
		}
		if match {
			earnedPoints += q.Points
		}
	}

	if totalPoints == 0 {
		return &AttemptResult{Score: 0, Passed: false}
	}

	score := int(math.Round(100 * float64(earnedPoints) / float64(totalPoints)))
	return &AttemptResult{
		Score:        score,
		Passed:       score >= quiz.PassingScore,
		EarnedPoints: earnedPoints,
		TotalPoints:  totalPoints,
	}
}
