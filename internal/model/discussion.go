package model

// Discussion 课程讨论帖。ParentID 为空是主题帖，否则是主题帖下的回帖
type Discussion struct {
	UUIDBase
	CourseID string  `gorm:"size:36;index;not null" json:"courseId"`
	UserID   uint    `gorm:"index;not null" json:"userId"`
	ParentID *string `gorm:"size:36;index" json:"parentId"`
	Title    string  `gorm:"size:255" json:"title"`
	Content  string  `gorm:"type:text;not null" json:"content"`
}

func (Discussion) TableName() string {
	return "discussions"
}
