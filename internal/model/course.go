package model

type CourseLevel string

const (
	Beginner     CourseLevel = "beginner"
	Intermediate CourseLevel = "intermediate"
	Advanced     CourseLevel = "advanced"
)

// Course 课程，由讲师创建，删除时级联删除其模块
// swagger:model Course
type Course struct {
	UUIDBase
	Title        string      `gorm:"size:255;not null" json:"title"`
	Slug         string      `gorm:"size:255;uniqueIndex;not null" json:"slug"`
	Description  string      `gorm:"type:text" json:"description"`
	ThumbnailURL string      `gorm:"size:512" json:"thumbnailUrl"`
	Level        CourseLevel `gorm:"size:20;default:'beginner'" json:"level"`
	Price        float64     `gorm:"default:0" json:"price"`
	IsPublished  bool        `gorm:"default:false;index" json:"isPublished"`
	InstructorID uint        `gorm:"index;not null" json:"instructorId"`

	Modules []CourseModule `gorm:"foreignKey:CourseID" json:"modules,omitempty"`
}

func (Course) TableName() string {
	return "courses"
}
