package repository

import (
	"errors"
	"learnhub_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type LessonProgressRepository struct {
	DB *gorm.DB
}

func NewLessonProgressRepository(db *gorm.DB) *LessonProgressRepository {
	return &LessonProgressRepository{DB: db}
}

// MarkComplete 幂等写入完成记录：已完成的记录不改动 completed_at
func (r *LessonProgressRepository) MarkComplete(userID uint, lessonID string, now time.Time) (*model.LessonProgress, error) {
	var result *model.LessonProgress
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		var progress model.LessonProgress
		err := tx.Where("user_id = ? AND lesson_id = ?", userID, lessonID).First(&progress).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			progress = model.LessonProgress{
				UserID:      userID,
				LessonID:    lessonID,
				Completed:   true,
				CompletedAt: &now,
			}
			if err := tx.Create(&progress).Error; err != nil {
				return err
			}
			result = &progress
			return nil
		}
		if err != nil {
			return err
		}

		if progress.Completed {
			result = &progress
			return nil
		}

		progress.Completed = true
		progress.CompletedAt = &now
		if err := tx.Save(&progress).Error; err != nil {
			return err
		}
		result = &progress
		return nil
	})
	return result, err
}

// CountCompletedForCourse 统计用户在某课程内已完成的课时数
func (r *LessonProgressRepository) CountCompletedForCourse(userID uint, courseID string) (int64, error) {
	moduleIDs := r.DB.Model(&model.CourseModule{}).Select("id").Where("course_id = ?", courseID)
	lessonIDs := r.DB.Model(&model.Lesson{}).Select("id").Where("module_id IN (?)", moduleIDs)

	var count int64
	err := r.DB.Model(&model.LessonProgress{}).
		Where("user_id = ? AND completed = ? AND lesson_id IN (?)", userID, true, lessonIDs).
		Count(&count).Error
	return count, err
}

func (r *LessonProgressRepository) ListByUserAndCourse(userID uint, courseID string) ([]model.LessonProgress, error) {
	moduleIDs := r.DB.Model(&model.CourseModule{}).Select("id").Where("course_id = ?", courseID)
	lessonIDs := r.DB.Model(&model.Lesson{}).Select("id").Where("module_id IN (?)", moduleIDs)

	var items []model.LessonProgress
	err := r.DB.Where("user_id = ? AND lesson_id IN (?)", userID, lessonIDs).
		Find(&items).Error
	return items, err
}
