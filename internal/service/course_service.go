package service

import (
	"context"
	"encoding/json"
	"learnhub_backend/internal/model"
	"learnhub_backend/internal/repository"
	"learnhub_backend/internal/util"
	"learnhub_backend/pkg/logger"
	"regexp"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// courseCacheTTL 课程详情缓存时长。写操作主动删缓存，TTL 只是兜底
const courseCacheTTL = 10 * time.Minute

// CourseService 课程生命周期：创建、编辑、发布、删除、选课与目录查询。
// 课程详情按 slug 走 Redis 缓存，Redis 不可用时直接查库
type CourseService struct {
	CourseRepo     *repository.CourseRepository
	ModuleRepo     *repository.ModuleRepository
	EnrollmentRepo *repository.EnrollmentRepository
	Redis          *redis.Client
}

func NewCourseService(
	courseRepo *repository.CourseRepository,
	moduleRepo *repository.ModuleRepository,
	enrollmentRepo *repository.EnrollmentRepository,
	rdb *redis.Client,
) *CourseService {
	return &CourseService{
		CourseRepo:     courseRepo,
		ModuleRepo:     moduleRepo,
		EnrollmentRepo: enrollmentRepo,
		Redis:          rdb,
	}
}

type CourseInput struct {
	Title        string            `json:"title"`
	Slug         string            `json:"slug"`
	Description  string            `json:"description"`
	ThumbnailURL string            `json:"thumbnailUrl"`
	Level        model.CourseLevel `json:"level"`
	Price        float64           `json:"price"`
}

func validateCourseInput(input CourseInput) error {
	if strings.TrimSpace(input.Title) == "" {
		return util.NewValidationError("title", "course title is required")
	}
	if !slugPattern.MatchString(input.Slug) {
		return util.NewValidationError("slug", "slug must be lowercase letters, digits and hyphens")
	}
	switch input.Level {
	case model.Beginner, model.Intermediate, model.Advanced:
	default:
		return util.NewValidationError("level", "unrecognized course level")
	}
	if input.Price < 0 {
		return util.NewValidationError("price", "price cannot be negative")
	}
	return nil
}

func (s *CourseService) Create(instructorID uint, input CourseInput) (*model.Course, error) {
	if err := validateCourseInput(input); err != nil {
		return nil, err
	}

	taken, err := s.CourseRepo.SlugExists(input.Slug, "")
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, util.ErrSlugTaken
	}

	course := &model.Course{
		Title:        strings.TrimSpace(input.Title),
		Slug:         input.Slug,
		Description:  input.Description,
		ThumbnailURL: input.ThumbnailURL,
		Level:        input.Level,
		Price:        input.Price,
		InstructorID: instructorID,
	}
	if err := s.CourseRepo.Create(course); err != nil {
		return nil, err
	}
	return course, nil
}

func (s *CourseService) Update(courseID string, input CourseInput) (*model.Course, error) {
	if err := validateCourseInput(input); err != nil {
		return nil, err
	}

	course, err := s.CourseRepo.FindByID(courseID)
	if err != nil {
		return nil, err
	}
	if course == nil {
		return nil, util.ErrCourseNotFound
	}

	taken, err := s.CourseRepo.SlugExists(input.Slug, courseID)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, util.ErrSlugTaken
	}

	oldSlug := course.Slug
	course.Title = strings.TrimSpace(input.Title)
	course.Slug = input.Slug
	course.Description = input.Description
	course.ThumbnailURL = input.ThumbnailURL
	course.Level = input.Level
	course.Price = input.Price

	if err := s.CourseRepo.Update(course); err != nil {
		return nil, err
	}

	s.invalidateCache(oldSlug)
	if course.Slug != oldSlug {
		s.invalidateCache(course.Slug)
	}
	return course, nil
}

// SetPublished 上架/下架。下架不影响已有选课记录
func (s *CourseService) SetPublished(courseID string, published bool) (*model.Course, error) {
	course, err := s.CourseRepo.FindByID(courseID)
	if err != nil {
		return nil, err
	}
	if course == nil {
		return nil, util.ErrCourseNotFound
	}

	course.IsPublished = published
	if err := s.CourseRepo.Update(course); err != nil {
		return nil, err
	}
	s.invalidateCache(course.Slug)
	return course, nil
}

// Delete 级联删除课程全部数据，不可恢复
func (s *CourseService) Delete(courseID string) error {
	course, err := s.CourseRepo.FindByID(courseID)
	if err != nil {
		return err
	}
	if course == nil {
		return util.ErrCourseNotFound
	}

	if err := s.CourseRepo.DeleteCascade(courseID); err != nil {
		return err
	}
	s.invalidateCache(course.Slug)
	return nil
}

func (s *CourseService) GetByID(courseID string) (*model.Course, error) {
	course, err := s.CourseRepo.FindByID(courseID)
	if err != nil {
		return nil, err
	}
	if course == nil {
		return nil, util.ErrCourseNotFound
	}
	return course, nil
}

// GetBySlug 课程详情，缓存优先
func (s *CourseService) GetBySlug(ctx context.Context, slug string) (*model.Course, error) {
	if cached := s.readCache(ctx, slug); cached != nil {
		return cached, nil
	}

	course, err := s.CourseRepo.FindBySlug(slug)
	if err != nil {
		return nil, err
	}
	if course == nil {
		return nil, util.ErrCourseNotFound
	}

	s.writeCache(ctx, course)
	return course, nil
}

func (s *CourseService) ListPublished(page, limit int) ([]model.Course, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return s.CourseRepo.ListPublished(page, limit)
}

func (s *CourseService) ListByInstructor(instructorID uint) ([]model.Course, error) {
	return s.CourseRepo.ListByInstructor(instructorID)
}

// Enroll 学员选课。未发布课程不可选，重复选课报错
func (s *CourseService) Enroll(userID uint, courseID string) (*model.Enrollment, error) {
	course, err := s.CourseRepo.FindByID(courseID)
	if err != nil {
		return nil, err
	}
	if course == nil {
		return nil, util.ErrCourseNotFound
	}
	if !course.IsPublished {
		return nil, util.NewValidationError("courseId", "course is not published")
	}

	existing, err := s.EnrollmentRepo.FindByUserAndCourse(userID, courseID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, util.ErrAlreadyEnrolled
	}

	enrollment := &model.Enrollment{
		UserID:     userID,
		CourseID:   courseID,
		EnrolledAt: time.Now(),
	}
	if err := s.EnrollmentRepo.Create(enrollment); err != nil {
		return nil, err
	}
	return enrollment, nil
}

func (s *CourseService) ListEnrollments(userID uint) ([]model.Enrollment, error) {
	return s.EnrollmentRepo.ListByUser(userID)
}

func courseCacheKey(slug string) string {
	return "course:slug:" + slug
}

func (s *CourseService) readCache(ctx context.Context, slug string) *model.Course {
	if s.Redis == nil {
		return nil
	}
	data, err := s.Redis.Get(ctx, courseCacheKey(slug)).Bytes()
	if err != nil {
		return nil
	}
	var course model.Course
	if err := json.Unmarshal(data, &course); err != nil {
		return nil
	}
	return &course
}

func (s *CourseService) writeCache(ctx context.Context, course *model.Course) {
	if s.Redis == nil {
		return
	}
	data, err := json.Marshal(course)
	if err != nil {
		return
	}
	if err := s.Redis.Set(ctx, courseCacheKey(course.Slug), data, courseCacheTTL).Err(); err != nil {
		logger.Log.Warn("failed to cache course detail", zap.String("slug", course.Slug), zap.Error(err))
	}
}

func (s *CourseService) invalidateCache(slug string) {
	if s.Redis == nil {
		return
	}
	if err := s.Redis.Del(context.Background(), courseCacheKey(slug)).Err(); err != nil {
		logger.Log.Warn("failed to invalidate course cache", zap.String("slug", slug), zap.Error(err))
	}
}
