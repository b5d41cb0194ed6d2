package model

// CourseModule 课程内的章节分组，按 order_index 升序展示
type CourseModule struct {
	UUIDBase
	CourseID    string `gorm:"size:36;index;not null" json:"courseId"`
	Title       string `gorm:"size:255;not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	OrderIndex  int    `gorm:"not null;default:0" json:"orderIndex"`

	Lessons []Lesson `gorm:"foreignKey:ModuleID" json:"lessons,omitempty"`
}

func (CourseModule) TableName() string {
	return "course_modules"
}
