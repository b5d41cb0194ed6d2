package model

// Quiz 测验定义，与课时一对一
type Quiz struct {
	UUIDBase
	LessonID         string `gorm:"size:36;uniqueIndex;not null" json:"lessonId"`
	Title            string `gorm:"size:255;not null" json:"title"`
	Description      string `gorm:"type:text" json:"description"`
	PassingScore     int    `gorm:"default:70" json:"passingScore"`
	TimeLimitMinutes *int   `json:"timeLimitMinutes"`

	Questions []Question `gorm:"foreignKey:QuizID" json:"questions,omitempty"`
}

func (Quiz) TableName() string {
	return "quizzes"
}
