package model

import "time"

// QuizAttempt 一次答题记录。创建即开始，提交后只写入一次结果
type QuizAttempt struct {
	UUIDBase
	UserID      uint       `gorm:"index;not null" json:"userId"`
	QuizID      string     `gorm:"size:36;index;not null" json:"quizId"`
	Score       int        `gorm:"default:0" json:"score"`
	Passed      bool       `gorm:"default:false" json:"passed"`
	StartedAt   time.Time  `json:"startedAt"`
	CompletedAt *time.Time `json:"completedAt"`
}

func (QuizAttempt) TableName() string {
	return "quiz_attempts"
}
