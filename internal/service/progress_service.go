package service

import (
	"learnhub_backend/internal/model"
	"learnhub_backend/internal/repository"
	"learnhub_backend/internal/util"
	"math"
	"time"
)

// ProgressService 聚合学习进度：课时完成记录 + 选课进度百分比。
// 进度 = round(100 * 已完成课时数 / 课程课时总数)，没有课时时恒为 0
type ProgressService struct {
	LessonRepo     *repository.LessonRepository
	ModuleRepo     *repository.ModuleRepository
	ProgressRepo   *repository.LessonProgressRepository
	EnrollmentRepo *repository.EnrollmentRepository
}

func NewProgressService(
	lessonRepo *repository.LessonRepository,
	moduleRepo *repository.ModuleRepository,
	progressRepo *repository.LessonProgressRepository,
	enrollmentRepo *repository.EnrollmentRepository,
) *ProgressService {
	return &ProgressService{
		LessonRepo:     lessonRepo,
		ModuleRepo:     moduleRepo,
		ProgressRepo:   progressRepo,
		EnrollmentRepo: enrollmentRepo,
	}
}

// CourseProgress 某个学员在某门课程内的进度快照。
// CompletedLessonIDs 供前端在大纲上打勾
type CourseProgress struct {
	CourseID           string     `json:"courseId"`
	TotalLessons       int64      `json:"totalLessons"`
	CompletedLessons   int64      `json:"completedLessons"`
	CompletedLessonIDs []string   `json:"completedLessonIds"`
	Percentage         int        `json:"percentage"`
	CompletedAt        *time.Time `json:"completedAt"`
}

// MarkLessonComplete 标记课时完成并重算所属课程的选课进度。
// 重复标记是幂等的，首次完成时间不被覆盖
func (s *ProgressService) MarkLessonComplete(userID uint, lessonID string) (*model.LessonProgress, error) {
	lesson, err := s.LessonRepo.FindByID(lessonID)
	if err != nil {
		return nil, err
	}
	if lesson == nil {
		return nil, util.ErrLessonNotFound
	}

	module, err := s.ModuleRepo.FindByID(lesson.ModuleID)
	if err != nil {
		return nil, err
	}
	if module == nil {
		return nil, util.ErrModuleNotFound
	}

	enrollment, err := s.EnrollmentRepo.FindByUserAndCourse(userID, module.CourseID)
	if err != nil {
		return nil, err
	}
	if enrollment == nil {
		return nil, util.ErrNotEnrolled
	}

	progress, err := s.ProgressRepo.MarkComplete(userID, lessonID, time.Now())
	if err != nil {
		return nil, err
	}

	if err := s.recompute(userID, module.CourseID, enrollment.ID); err != nil {
		return nil, err
	}
	return progress, nil
}

// GetCourseProgress 进度快照，读取后的选课记录里已是最新百分比
func (s *ProgressService) GetCourseProgress(userID uint, courseID string) (*CourseProgress, error) {
	enrollment, err := s.EnrollmentRepo.FindByUserAndCourse(userID, courseID)
	if err != nil {
		return nil, err
	}
	if enrollment == nil {
		return nil, util.ErrNotEnrolled
	}

	total, err := s.LessonRepo.CountByCourse(courseID)
	if err != nil {
		return nil, err
	}
	items, err := s.ProgressRepo.ListByUserAndCourse(userID, courseID)
	if err != nil {
		return nil, err
	}

	completedIDs := make([]string, 0, len(items))
	for _, p := range items {
		if p.Completed {
			completedIDs = append(completedIDs, p.LessonID)
		}
	}
	completed := int64(len(completedIDs))

	return &CourseProgress{
		CourseID:           courseID,
		TotalLessons:       total,
		CompletedLessons:   completed,
		CompletedLessonIDs: completedIDs,
		Percentage:         progressPercentage(completed, total),
		CompletedAt:        enrollment.CompletedAt,
	}, nil
}

// RecomputeEnrollmentProgress 课程内容变化后（删课时等）由调用方触发重算
func (s *ProgressService) RecomputeEnrollmentProgress(userID uint, courseID string) error {
	enrollment, err := s.EnrollmentRepo.FindByUserAndCourse(userID, courseID)
	if err != nil {
		return err
	}
	if enrollment == nil {
		return util.ErrNotEnrolled
	}
	return s.recompute(userID, courseID, enrollment.ID)
}

func (s *ProgressService) recompute(userID uint, courseID, enrollmentID string) error {
	total, err := s.LessonRepo.CountByCourse(courseID)
	if err != nil {
		return err
	}
	completed, err := s.ProgressRepo.CountCompletedForCourse(userID, courseID)
	if err != nil {
		return err
	}
	return s.EnrollmentRepo.UpdateProgress(enrollmentID, progressPercentage(completed, total), time.Now())
}

func progressPercentage(completed, total int64) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(100 * float64(completed) / float64(total)))
}
