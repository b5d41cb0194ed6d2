package repository

import (
	"errors"
	"learnhub_backend/internal/model"

	"gorm.io/gorm"
)

type CourseRepository struct {
	DB *gorm.DB
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{DB: db}
}

func (r *CourseRepository) Create(course *model.Course) error {
	return r.DB.Create(course).Error
}

func (r *CourseRepository) FindByID(id string) (*model.Course, error) {
	var course model.Course
	err := r.DB.Where("id = ?", id).First(&course).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *CourseRepository) FindBySlug(slug string) (*model.Course, error) {
	var course model.Course
	err := r.DB.Where("slug = ?", slug).First(&course).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *CourseRepository) SlugExists(slug, excludeID string) (bool, error) {
	var count int64
	q := r.DB.Model(&model.Course{}).Where("slug = ?", slug)
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *CourseRepository) Update(course *model.Course) error {
	return r.DB.Save(course).Error
}

func (r *CourseRepository) ListPublished(page, limit int) ([]model.Course, int64, error) {
	var courses []model.Course
	var total int64

	base := r.DB.Model(&model.Course{}).Where("is_published = ?", true)
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.DB.Where("is_published = ?", true).
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&courses).Error
	if err != nil {
		return nil, 0, err
	}
	return courses, total, nil
}

func (r *CourseRepository) ListByInstructor(instructorID uint) ([]model.Course, error) {
	var courses []model.Course
	err := r.DB.Where("instructor_id = ?", instructorID).
		Order("created_at DESC").
		Find(&courses).Error
	return courses, err
}

// DeleteCascade 删除课程及其全部下级数据：模块、课时、测验、题目、选项、
// 选课记录、讨论帖和课程评价
func (r *CourseRepository) DeleteCascade(courseID string) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		moduleIDs := tx.Model(&model.CourseModule{}).Select("id").Where("course_id = ?", courseID)
		lessonIDs := tx.Model(&model.Lesson{}).Select("id").Where("module_id IN (?)", moduleIDs)
		quizIDs := tx.Model(&model.Quiz{}).Select("id").Where("lesson_id IN (?)", lessonIDs)
		questionIDs := tx.Model(&model.Question{}).Select("id").Where("quiz_id IN (?)", quizIDs)

		if err := tx.Unscoped().Where("question_id IN (?)", questionIDs).Delete(&model.Answer{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("quiz_id IN (?)", quizIDs).Delete(&model.Question{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("quiz_id IN (?)", quizIDs).Delete(&model.QuizAttempt{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("lesson_id IN (?)", lessonIDs).Delete(&model.Quiz{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("lesson_id IN (?)", lessonIDs).Delete(&model.LessonProgress{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("module_id IN (?)", moduleIDs).Delete(&model.Lesson{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("course_id = ?", courseID).Delete(&model.CourseModule{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("course_id = ?", courseID).Delete(&model.Enrollment{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("course_id = ?", courseID).Delete(&model.Discussion{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("course_id = ?", courseID).Delete(&model.Review{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Where("id = ?", courseID).Delete(&model.Course{}).Error
	})
}
