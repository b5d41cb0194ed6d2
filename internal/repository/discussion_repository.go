package repository

import (
	"errors"
	"learnhub_backend/internal/model"

	"gorm.io/gorm"
)

type DiscussionRepository struct {
	DB *gorm.DB
}

func NewDiscussionRepository(db *gorm.DB) *DiscussionRepository {
	return &DiscussionRepository{DB: db}
}

func (r *DiscussionRepository) Create(discussion *model.Discussion) error {
	return r.DB.Create(discussion).Error
}

func (r *DiscussionRepository) FindByID(id string) (*model.Discussion, error) {
	var discussion model.Discussion
	err := r.DB.Where("id = ?", id).First(&discussion).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &discussion, nil
}

// ListTopLevelByCourse 主题帖按发帖时间倒序
func (r *DiscussionRepository) ListTopLevelByCourse(courseID string) ([]model.Discussion, error) {
	var discussions []model.Discussion
	err := r.DB.Where("course_id = ? AND parent_id IS NULL", courseID).
		Order("created_at DESC").
		Find(&discussions).Error
	return discussions, err
}

// ListReplies 回帖按发帖时间正序
func (r *DiscussionRepository) ListReplies(parentID string) ([]model.Discussion, error) {
	var replies []model.Discussion
	err := r.DB.Where("parent_id = ?", parentID).
		Order("created_at ASC").
		Find(&replies).Error
	return replies, err
}

// DeleteWithReplies 删除帖子；主题帖连同其下回帖一起删，不留孤儿
func (r *DiscussionRepository) DeleteWithReplies(id string) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("parent_id = ?", id).Delete(&model.Discussion{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Where("id = ?", id).Delete(&model.Discussion{}).Error
	})
}
