package model

// Answer 题目选项。保存测验前每道题必须至少有一个 is_correct 选项
type Answer struct {
	UUIDBase
	QuestionID string `gorm:"size:36;index;not null" json:"questionId"`
	AnswerText string `gorm:"type:text;not null" json:"answerText"`
	IsCorrect  bool   `gorm:"default:false" json:"isCorrect"`
	OrderIndex int    `gorm:"not null;default:0" json:"orderIndex"`
}

func (Answer) TableName() string {
	return "answers"
}
