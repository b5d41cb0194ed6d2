package service

import (
	"learnhub_backend/internal/model"
	"learnhub_backend/internal/repository"
	"learnhub_backend/internal/util"
	"strings"
)

const (
	MinRating = 1
	MaxRating = 5
)

// ReviewService 课程评价：一人一课一条，重复提交覆盖。
// 评价默认直接过审，管理员可事后下架
type ReviewService struct {
	ReviewRepo     *repository.ReviewRepository
	CourseRepo     *repository.CourseRepository
	EnrollmentRepo *repository.EnrollmentRepository
}

func NewReviewService(
	reviewRepo *repository.ReviewRepository,
	courseRepo *repository.CourseRepository,
	enrollmentRepo *repository.EnrollmentRepository,
) *ReviewService {
	return &ReviewService{
		ReviewRepo:     reviewRepo,
		CourseRepo:     courseRepo,
		EnrollmentRepo: enrollmentRepo,
	}
}

type ReviewInput struct {
	Rating  int    `json:"rating" binding:"required"`
	Comment string `json:"comment"`
}

// ReviewSummary 课程评价汇总：均分、总数、星级分布和已过审的评价列表
type ReviewSummary struct {
	AverageRating float64        `json:"averageRating"`
	TotalReviews  int            `json:"totalReviews"`
	Distribution  map[int]int    `json:"distribution"`
	Reviews       []model.Review `json:"reviews"`
}

// Submit 提交或覆盖自己的评价。只有选了课的学员能评
func (s *ReviewService) Submit(userID uint, courseID string, input ReviewInput) (*model.Review, error) {
	if input.Rating < MinRating || input.Rating > MaxRating {
		return nil, util.NewValidationError("rating", "rating must be between 1 and 5")
	}

	course, err := s.CourseRepo.FindByID(courseID)
	if err != nil {
		return nil, err
	}
	if course == nil {
		return nil, util.ErrCourseNotFound
	}

	enrollment, err := s.EnrollmentRepo.FindByUserAndCourse(userID, courseID)
	if err != nil {
		return nil, err
	}
	if enrollment == nil {
		return nil, util.ErrNotEnrolled
	}

	review, err := s.ReviewRepo.FindByUserAndCourse(userID, courseID)
	if err != nil {
		return nil, err
	}
	if review == nil {
		review = &model.Review{UserID: userID, CourseID: courseID}
	}
	review.Rating = input.Rating
	review.Comment = strings.TrimSpace(input.Comment)
	review.IsModerated = true

	if err := s.ReviewRepo.Save(review); err != nil {
		return nil, err
	}
	return review, nil
}

// GetCourseReviews 汇总某门课程的已过审评价
func (s *ReviewService) GetCourseReviews(courseID string) (*ReviewSummary, error) {
	course, err := s.CourseRepo.FindByID(courseID)
	if err != nil {
		return nil, err
	}
	if course == nil {
		return nil, util.ErrCourseNotFound
	}

	reviews, err := s.ReviewRepo.ListModeratedByCourse(courseID)
	if err != nil {
		return nil, err
	}

	summary := &ReviewSummary{
		TotalReviews: len(reviews),
		Distribution: map[int]int{1: 0, 2: 0, 3: 0, 4: 0, 5: 0},
		Reviews:      reviews,
	}
	if len(reviews) == 0 {
		return summary, nil
	}

	sum := 0
	for _, r := range reviews {
		sum += r.Rating
		summary.Distribution[r.Rating]++
	}
	summary.AverageRating = float64(sum) / float64(len(reviews))
	return summary, nil
}

// GetMyReview 当前学员对该课程的评价，未评过返回 ErrReviewNotFound
func (s *ReviewService) GetMyReview(userID uint, courseID string) (*model.Review, error) {
	review, err := s.ReviewRepo.FindByUserAndCourse(userID, courseID)
	if err != nil {
		return nil, err
	}
	if review == nil {
		return nil, util.ErrReviewNotFound
	}
	return review, nil
}

// Moderate 管理员审核开关，下架的评价不再出现在课程页
func (s *ReviewService) Moderate(reviewID string, moderated bool) (*model.Review, error) {
	ok, err := s.ReviewRepo.SetModerated(reviewID, moderated)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, util.ErrReviewNotFound
	}
	return s.ReviewRepo.FindByID(reviewID)
}
