package repository

import (
	"errors"
	"learnhub_backend/internal/model"

	"gorm.io/gorm"
)

type ReviewRepository struct {
	DB *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{DB: db}
}

func (r *ReviewRepository) FindByID(id string) (*model.Review, error) {
	var review model.Review
	err := r.DB.Where("id = ?", id).First(&review).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *ReviewRepository) FindByUserAndCourse(userID uint, courseID string) (*model.Review, error) {
	var review model.Review
	err := r.DB.Where("user_id = ? AND course_id = ?", userID, courseID).First(&review).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &review, nil
}

// Save 新评价创建，带 ID 的覆盖原行
func (r *ReviewRepository) Save(review *model.Review) error {
	if review.ID == "" {
		return r.DB.Create(review).Error
	}
	return r.DB.Save(review).Error
}

// ListModeratedByCourse 只返回已过审的评价，按提交时间倒序
func (r *ReviewRepository) ListModeratedByCourse(courseID string) ([]model.Review, error) {
	var reviews []model.Review
	err := r.DB.Where("course_id = ? AND is_moderated = ?", courseID, true).
		Order("created_at DESC").
		Find(&reviews).Error
	return reviews, err
}

// SetModerated 审核开关，返回 false 表示评价不存在
func (r *ReviewRepository) SetModerated(id string, moderated bool) (bool, error) {
	result := r.DB.Model(&model.Review{}).
		Where("id = ?", id).
		Update("is_moderated", moderated)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
