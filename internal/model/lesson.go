package model

type ContentType string

const (
	ContentVideo      ContentType = "video"
	ContentText       ContentType = "text"
	ContentQuiz       ContentType = "quiz"
	ContentAssignment ContentType = "assignment"
	ContentResource   ContentType = "resource"
)

// ValidContentType 判断课时内容类型是否在允许集合内
func ValidContentType(t ContentType) bool {
	switch t {
	case ContentVideo, ContentText, ContentQuiz, ContentAssignment, ContentResource:
		return true
	}
	return false
}

// Lesson 课时。Content 的含义取决于 ContentType：
// video/resource 存 URL，text/assignment 存正文，quiz 为空（测验单独建表）
type Lesson struct {
	UUIDBase
	ModuleID        string      `gorm:"size:36;index;not null" json:"moduleId"`
	Title           string      `gorm:"size:255;not null" json:"title"`
	ContentType     ContentType `gorm:"size:20;not null" json:"contentType"`
	Content         string      `gorm:"type:text" json:"content"`
	DurationMinutes int         `gorm:"default:0" json:"durationMinutes"`
	IsPreview       bool        `gorm:"default:false" json:"isPreview"`
	OrderIndex      int         `gorm:"not null;default:0" json:"orderIndex"`
}

func (Lesson) TableName() string {
	return "lessons"
}
