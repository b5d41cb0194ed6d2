package model

import "time"

// Enrollment 选课记录，进度百分比在课时完成状态变化时重算
type Enrollment struct {
	UUIDBase
	UserID             uint       `gorm:"index:idx_enroll_user_course,unique;not null" json:"userId"`
	CourseID           string     `gorm:"size:36;index:idx_enroll_user_course,unique;not null" json:"courseId"`
	EnrolledAt         time.Time  `json:"enrolledAt"`
	ProgressPercentage int        `gorm:"default:0" json:"progressPercentage"`
	CompletedAt        *time.Time `json:"completedAt"`
}

func (Enrollment) TableName() string {
	return "enrollments"
}
