package repository

import (
	"errors"
	"learnhub_backend/internal/model"
	"learnhub_backend/internal/util"

	"gorm.io/gorm"
)

type LessonRepository struct {
	DB *gorm.DB
}

func NewLessonRepository(db *gorm.DB) *LessonRepository {
	return &LessonRepository{DB: db}
}

func (r *LessonRepository) Create(lesson *model.Lesson) error {
	return r.DB.Create(lesson).Error
}

func (r *LessonRepository) FindByID(id string) (*model.Lesson, error) {
	var lesson model.Lesson
	err := r.DB.Where("id = ?", id).First(&lesson).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &lesson, nil
}

// FindByModuleOrdered 按 order_index 升序返回模块的课时
func (r *LessonRepository) FindByModuleOrdered(moduleID string) ([]model.Lesson, error) {
	var lessons []model.Lesson
	err := r.DB.Where("module_id = ?", moduleID).
		Order("order_index ASC").
		Find(&lessons).Error
	return lessons, err
}

// OrderIndices 当前同级课时已占用的序号
func (r *LessonRepository) OrderIndices(moduleID string) ([]int, error) {
	var indices []int
	err := r.DB.Model(&model.Lesson{}).
		Where("module_id = ?", moduleID).
		Pluck("order_index", &indices).Error
	return indices, err
}

func (r *LessonRepository) Update(lesson *model.Lesson) error {
	return r.DB.Save(lesson).Error
}

// CountByCourse 统计课程下全部课时数（跨所有模块，含非试看）
func (r *LessonRepository) CountByCourse(courseID string) (int64, error) {
	moduleIDs := r.DB.Model(&model.CourseModule{}).Select("id").Where("course_id = ?", courseID)

	var count int64
	err := r.DB.Model(&model.Lesson{}).
		Where("module_id IN (?)", moduleIDs).
		Count(&count).Error
	return count, err
}

// DeleteCascade 删除课时及其附属测验、题目、选项、完成记录
func (r *LessonRepository) DeleteCascade(lessonID string) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		quizIDs := tx.Model(&model.Quiz{}).Select("id").Where("lesson_id = ?", lessonID)
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
		if err := tx.Unscoped().Where("lesson_id = ?", lessonID).Delete(&model.Quiz{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("lesson_id = ?", lessonID).Delete(&model.LessonProgress{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Where("id = ?", lessonID).Delete(&model.Lesson{}).Error
	})
}

// Reorder 将课时移动到目标位置并重排同级序号
func (r *LessonRepository) Reorder(lessonID string, newIndex int) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var moved model.Lesson
		if err := tx.Where("id = ?", lessonID).First(&moved).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return util.ErrLessonNotFound
			}
			return err
		}

		var siblings []model.Lesson
		if err := tx.Where("module_id = ?", moved.ModuleID).
			Order("order_index ASC").
			Find(&siblings).Error; err != nil {
			return err
		}

		ids := make([]string, len(siblings))
		for i, l := range siblings {
			ids[i] = l.ID
		}

		reordered := spliceByID(ids, lessonID, util.ClampIndex(newIndex, len(siblings)))
		for i, id := range reordered {
			if err := tx.Model(&model.Lesson{}).
				Where("id = ?", id).
				Update("order_index", i).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
