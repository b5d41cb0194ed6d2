package model

// Review 课程评价。每个学员对每门课程只有一条，重复提交覆盖原评价
type Review struct {
	UUIDBase
	UserID      uint   `gorm:"index:idx_review_user_course,unique;not null" json:"userId"`
	CourseID    string `gorm:"size:36;index:idx_review_user_course,unique;not null" json:"courseId"`
	Rating      int    `gorm:"not null" json:"rating"`
	Comment     string `gorm:"type:text" json:"comment"`
	IsModerated bool   `gorm:"default:true" json:"isModerated"`
}

func (Review) TableName() string {
	return "reviews"
}
