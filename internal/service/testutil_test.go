package service

import (
	"fmt"
	"learnhub_backend/internal/model"
	"learnhub_backend/internal/repository"
	"learnhub_backend/pkg/database"
	"learnhub_backend/pkg/logger"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	logger.Log = zap.NewNop()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedUser(t *testing.T, db *gorm.DB, role model.UserRole) *model.User {
	t.Helper()

	user := &model.User{
		Name:     "测试用户",
		Email:    fmt.Sprintf("user-%d@test.local", time.Now().UnixNano()),
		Password: "hashed-password",
		Role:     role,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func seedCourse(t *testing.T, db *gorm.DB, published bool) *model.Course {
	t.Helper()

	course := &model.Course{
		Title:        "Go 进阶",
		Slug:         fmt.Sprintf("go-advanced-%d", time.Now().UnixNano()),
		Level:        model.Beginner,
		IsPublished:  published,
		InstructorID: 1,
	}
	if err := db.Create(course).Error; err != nil {
		t.Fatalf("seed course: %v", err)
	}
	return course
}

func seedModule(t *testing.T, db *gorm.DB, courseID string, orderIndex int) *model.CourseModule {
	t.Helper()

	module := &model.CourseModule{
		CourseID:   courseID,
		Title:      fmt.Sprintf("第 %d 章", orderIndex+1),
		OrderIndex: orderIndex,
	}
	if err := db.Create(module).Error; err != nil {
		t.Fatalf("seed module: %v", err)
	}
	return module
}

func seedLesson(t *testing.T, db *gorm.DB, moduleID string, orderIndex int) *model.Lesson {
	t.Helper()

	lesson := &model.Lesson{
		ModuleID:    moduleID,
		Title:       fmt.Sprintf("第 %d 节", orderIndex+1),
		ContentType: model.ContentText,
		Content:     "正文",
		OrderIndex:  orderIndex,
	}
	if err := db.Create(lesson).Error; err != nil {
		t.Fatalf("seed lesson: %v", err)
	}
	return lesson
}

func seedEnrollment(t *testing.T, db *gorm.DB, userID uint, courseID string) *model.Enrollment {
	t.Helper()

	enrollment := &model.Enrollment{
		UserID:     userID,
		CourseID:   courseID,
		EnrolledAt: time.Now(),
	}
	if err := db.Create(enrollment).Error; err != nil {
		t.Fatalf("seed enrollment: %v", err)
	}
	return enrollment
}

func newContentServiceForTest(db *gorm.DB) *ContentService {
	return NewContentService(
		repository.NewCourseRepository(db),
		repository.NewModuleRepository(db),
		repository.NewLessonRepository(db),
	)
}

func newQuizServiceForTest(db *gorm.DB) *QuizService {
	return NewQuizService(
		repository.NewQuizRepository(db),
		repository.NewLessonRepository(db),
	)
}

func newAttemptServiceForTest(db *gorm.DB) *AttemptService {
	return NewAttemptService(
		repository.NewQuizRepository(db),
		repository.NewAttemptRepository(db),
	)
}

func newProgressServiceForTest(db *gorm.DB) *ProgressService {
	return NewProgressService(
		repository.NewLessonRepository(db),
		repository.NewModuleRepository(db),
		repository.NewLessonProgressRepository(db),
		repository.NewEnrollmentRepository(db),
	)
}

func newCourseServiceForTest(db *gorm.DB) *CourseService {
	return NewCourseService(
		repository.NewCourseRepository(db),
		repository.NewModuleRepository(db),
		repository.NewEnrollmentRepository(db),
		nil,
	)
}

func newDiscussionServiceForTest(db *gorm.DB) *DiscussionService {
	return NewDiscussionService(
		repository.NewDiscussionRepository(db),
		repository.NewCourseRepository(db),
	)
}

func newReviewServiceForTest(db *gorm.DB) *ReviewService {
	return NewReviewService(
		repository.NewReviewRepository(db),
		repository.NewCourseRepository(db),
		repository.NewEnrollmentRepository(db),
	)
}

// twoQuestionDraft 两道单选题，各 1 分，第一个选项为正确答案
func twoQuestionDraft() QuizDraft {
	return QuizDraft{
		Title:        "章节小测",
		PassingScore: 70,
		Questions: []QuestionDraft{
			{
				Text:   "Go 的并发原语是什么？",
				Type:   model.MultipleChoice,
				Points: 1,
				Answers: []AnswerDraft{
					{Text: "goroutine", IsCorrect: true},
					{Text: "thread"},
					{Text: "process"},
				},
			},
			{
				Text:   "channel 是类型安全的",
				Type:   model.TrueFalse,
				Points: 1,
				Answers: []AnswerDraft{
					{Text: "对", IsCorrect: true},
					{Text: "错"},
				},
			},
		},
	}
}
