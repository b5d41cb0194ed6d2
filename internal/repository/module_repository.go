package repository

import (
	"errors"
	"learnhub_backend/internal/model"
	"learnhub_backend/internal/util"

	"gorm.io/gorm"
)

type ModuleRepository struct {
	DB *gorm.DB
}

func NewModuleRepository(db *gorm.DB) *ModuleRepository {
	return &ModuleRepository{DB: db}
}

// ModuleWithLessonCount 课程大纲列表项
type ModuleWithLessonCount struct {
	model.CourseModule
	LessonCount int64 `json:"lessonCount"`
}

func (r *ModuleRepository) Create(module *model.CourseModule) error {
	return r.DB.Create(module).Error
}

func (r *ModuleRepository) FindByID(id string) (*model.CourseModule, error) {
	var module model.CourseModule
	err := r.DB.Where("id = ?", id).First(&module).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &module, nil
}

// FindByCourseOrdered 按 order_index 升序返回课程的全部模块
func (r *ModuleRepository) FindByCourseOrdered(courseID string) ([]model.CourseModule, error) {
	var modules []model.CourseModule
	err := r.DB.Where("course_id = ?", courseID).
		Order("order_index ASC").
		Find(&modules).Error
	return modules, err
}

// FindByCourseWithLessonCount 大纲列表，附带每个模块的课时数
func (r *ModuleRepository) FindByCourseWithLessonCount(courseID string) ([]ModuleWithLessonCount, error) {
	modules, err := r.FindByCourseOrdered(courseID)
	if err != nil {
		return nil, err
	}

	result := make([]ModuleWithLessonCount, 0, len(modules))
	for _, m := range modules {
		var count int64
		if err := r.DB.Model(&model.Lesson{}).Where("module_id = ?", m.ID).Count(&count).Error; err != nil {
			return nil, err
		}
		result = append(result, ModuleWithLessonCount{CourseModule: m, LessonCount: count})
	}
	return result, nil
}

// OrderIndices 当前同级模块已占用的序号
func (r *ModuleRepository) OrderIndices(courseID string) ([]int, error) {
	var indices []int
	err := r.DB.Model(&model.CourseModule{}).
		Where("course_id = ?", courseID).
		Pluck("order_index", &indices).Error
	return indices, err
}

func (r *ModuleRepository) Update(module *model.CourseModule) error {
	return r.DB.Save(module).Error
}

// DeleteCascade 删除模块及其课时、测验、题目、选项
func (r *ModuleRepository) DeleteCascade(moduleID string) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		lessonIDs := tx.Model(&model.Lesson{}).Select("id").Where("module_id = ?", moduleID)
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
		if err := tx.Unscoped().Where("module_id = ?", moduleID).Delete(&model.Lesson{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Where("id = ?", moduleID).Delete(&model.CourseModule{}).Error
	})
}

// Reorder 将模块移动到目标位置并重排全部同级序号，单事务内完成
func (r *ModuleRepository) Reorder(moduleID string, newIndex int) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var moved model.CourseModule
		if err := tx.Where("id = ?", moduleID).First(&moved).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return util.ErrModuleNotFound
			}
			return err
		}

		var siblings []model.CourseModule
		if err := tx.Where("course_id = ?", moved.CourseID).
			Order("order_index ASC").
			Find(&siblings).Error; err != nil {
			return err
		}

		reordered := spliceByID(idsOfModules(siblings), moduleID, util.ClampIndex(newIndex, len(siblings)))
		for i, id := range reordered {
			if err := tx.Model(&model.CourseModule{}).
				Where("id = ?", id).
				Update("order_index", i).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func idsOfModules(modules []model.CourseModule) []string {
	ids := make([]string, len(modules))
	for i, m := range modules {
		ids[i] = m.ID
	}
	return ids
}

// spliceByID 把 id 从原位置取出后插入目标位置，返回新顺序
func spliceByID(ids []string, id string, newIndex int) []string {
	without := make([]string, 0, len(ids))
	for _, v := range ids {
		if v != id {
			without = append(without, v)
		}
	}
	if newIndex > len(without) {
		newIndex = len(without)
	}
	result := make([]string, 0, len(ids))
	result = append(result, without[:newIndex]...)
	result = append(result, id)
	result = append(result, without[newIndex:]...)
	return result
}
