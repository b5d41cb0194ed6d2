package model

type QuestionType string

const (
	MultipleChoice QuestionType = "multiple_choice"
	TrueFalse      QuestionType = "true_false"
)

// Question 测验题目，按 order_index 排序
type Question struct {
	UUIDBase
	QuizID       string       `gorm:"size:36;index;not null" json:"quizId"`
	QuestionText string       `gorm:"type:text;not null" json:"questionText"`
	QuestionType QuestionType `gorm:"size:20;default:'multiple_choice'" json:"questionType"`
	Points       int          `gorm:"default:1" json:"points"`
	OrderIndex   int          `gorm:"not null;default:0" json:"orderIndex"`

	Answers []Answer `gorm:"foreignKey:QuestionID" json:"answers,omitempty"`
}

func (Question) TableName() string {
	return "questions"
}
