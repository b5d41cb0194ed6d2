package repository

import (
	"errors"
	"learnhub_backend/internal/model"

	"gorm.io/gorm"
)

type QuizRepository struct {
	DB *gorm.DB
}

func NewQuizRepository(db *gorm.DB) *QuizRepository {
	return &QuizRepository{DB: db}
}

// FindByID 加载测验及其题目、选项，均按 order_index 升序
func (r *QuizRepository) FindByID(id string) (*model.Quiz, error) {
	var quiz model.Quiz
	err := r.DB.Where("id = ?", id).
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("questions.order_index ASC")
		}).
		Preload("Questions.Answers", func(db *gorm.DB) *gorm.DB {
			return db.Order("answers.order_index ASC")
		}).
		First(&quiz).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &quiz, nil
}

func (r *QuizRepository) FindByLessonID(lessonID string) (*model.Quiz, error) {
	var quiz model.Quiz
	err := r.DB.Where("lesson_id = ?", lessonID).First(&quiz).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &quiz, nil
}

// Replace 整体保存测验定义：测验行 upsert，旧题目连同选项全部删除后重插。
// 删除+重插在单事务内完成，并发读取不会看到半成品状态
func (r *QuizRepository) Replace(quiz *model.Quiz, questions []model.Question) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if quiz.ID == "" {
			if err := tx.Create(quiz).Error; err != nil {
				return err
			}
		} else {
			if err := tx.Save(quiz).Error; err != nil {
				return err
			}
			questionIDs := tx.Model(&model.Question{}).Select("id").Where("quiz_id = ?", quiz.ID)
			if err := tx.Unscoped().Where("question_id IN (?)", questionIDs).Delete(&model.Answer{}).Error; err != nil {
				return err
			}
			if err := tx.Unscoped().Where("quiz_id = ?", quiz.ID).Delete(&model.Question{}).Error; err != nil {
				return err
			}
		}

		for i := range questions {
			q := &questions[i]
			q.ID = ""
			q.QuizID = quiz.ID

			answers := q.Answers
			q.Answers = nil
			if err := tx.Create(q).Error; err != nil {
				return err
			}

			for j := range answers {
				answers[j].ID = ""
				answers[j].QuestionID = q.ID
			}
			if len(answers) > 0 {
				if err := tx.Create(&answers).Error; err != nil {
					return err
				}
			}
			q.Answers = answers
		}
		return nil
	})
}
