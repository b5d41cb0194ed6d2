package model

import "time"

// LessonProgress 课时完成记录。重复标记完成不改动 completed_at
type LessonProgress struct {
	UUIDBase
	UserID      uint       `gorm:"index:idx_progress_user_lesson,unique;not null" json:"userId"`
	LessonID    string     `gorm:"size:36;index:idx_progress_user_lesson,unique;not null" json:"lessonId"`
	Completed   bool       `gorm:"default:false" json:"completed"`
	CompletedAt *time.Time `json:"completedAt"`
}

func (LessonProgress) TableName() string {
	return "lesson_progress"
}
