package repository

import (
	"errors"
	"learnhub_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type EnrollmentRepository struct {
	DB *gorm.DB
}

func NewEnrollmentRepository(db *gorm.DB) *EnrollmentRepository {
	return &EnrollmentRepository{DB: db}
}

func (r *EnrollmentRepository) Create(enrollment *model.Enrollment) error {
	return r.DB.Create(enrollment).Error
}

func (r *EnrollmentRepository) FindByUserAndCourse(userID uint, courseID string) (*model.Enrollment, error) {
	var enrollment model.Enrollment
	err := r.DB.Where("user_id = ? AND course_id = ?", userID, courseID).First(&enrollment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &enrollment, nil
}

func (r *EnrollmentRepository) ListByUser(userID uint) ([]model.Enrollment, error) {
	var enrollments []model.Enrollment
	err := r.DB.Where("user_id = ?", userID).
		Order("enrolled_at DESC").
		Find(&enrollments).Error
	return enrollments, err
}

// UpdateProgress 写入进度百分比；首次达到 100 时记录完成时间，此后不再改动
func (r *EnrollmentRepository) UpdateProgress(id string, percentage int, now time.Time) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var enrollment model.Enrollment
		if err := tx.Where("id = ?", id).First(&enrollment).Error; err != nil {
			return err
		}

		updates := map[string]interface{}{"progress_percentage": percentage}
		if percentage >= 100 && enrollment.CompletedAt == nil {
			updates["completed_at"] = now
		}
		return tx.Model(&model.Enrollment{}).Where("id = ?", id).Updates(updates).Error
	})
}
