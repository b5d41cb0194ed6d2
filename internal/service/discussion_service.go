package service

import (
	"learnhub_backend/internal/model"
	"learnhub_backend/internal/repository"
	"learnhub_backend/internal/util"
	"strings"
)

// DiscussionService 课程讨论区：主题帖加一层回帖。
// 帖子只有作者本人（或管理员）能删，删主题帖连同回帖一起删
type DiscussionService struct {
	DiscussionRepo *repository.DiscussionRepository
	CourseRepo     *repository.CourseRepository
}

func NewDiscussionService(
	discussionRepo *repository.DiscussionRepository,
	courseRepo *repository.CourseRepository,
) *DiscussionService {
	return &DiscussionService{
		DiscussionRepo: discussionRepo,
		CourseRepo:     courseRepo,
	}
}

// DiscussionThread 主题帖及其下全部回帖
type DiscussionThread struct {
	model.Discussion
	Replies []model.Discussion `json:"replies"`
}

// Post 发主题帖，标题和正文都不能为空
func (s *DiscussionService) Post(userID uint, courseID, title, content string) (*model.Discussion, error) {
	title = strings.TrimSpace(title)
	content = strings.TrimSpace(content)
	if title == "" {
		return nil, util.NewValidationError("title", "title is required")
	}
	if content == "" {
		return nil, util.NewValidationError("content", "content is required")
	}

	course, err := s.CourseRepo.FindByID(courseID)
	if err != nil {
		return nil, err
	}
	if course == nil {
		return nil, util.ErrCourseNotFound
	}

	discussion := &model.Discussion{
		CourseID: courseID,
		UserID:   userID,
		Title:    title,
		Content:  content,
	}
	if err := s.DiscussionRepo.Create(discussion); err != nil {
		return nil, err
	}
	return discussion, nil
}

// Reply 在主题帖下回帖。只支持一层：回帖不能再被回复
func (s *DiscussionService) Reply(userID uint, parentID, content string) (*model.Discussion, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, util.NewValidationError("content", "content is required")
	}

	parent, err := s.DiscussionRepo.FindByID(parentID)
	if err != nil {
		return nil, err
	}
	if parent == nil {
		return nil, util.ErrDiscussionNotFound
	}
	if parent.ParentID != nil {
		return nil, util.NewValidationError("parentId", "cannot reply to a reply")
	}

	reply := &model.Discussion{
		CourseID: parent.CourseID,
		UserID:   userID,
		ParentID: &parent.ID,
		Content:  content,
	}
	if err := s.DiscussionRepo.Create(reply); err != nil {
		return nil, err
	}
	return reply, nil
}

// ListByCourse 主题帖倒序，每帖带时间正序的回帖
func (s *DiscussionService) ListByCourse(courseID string) ([]DiscussionThread, error) {
	course, err := s.CourseRepo.FindByID(courseID)
	if err != nil {
		return nil, err
	}
	if course == nil {
		return nil, util.ErrCourseNotFound
	}

	topLevel, err := s.DiscussionRepo.ListTopLevelByCourse(courseID)
	if err != nil {
		return nil, err
	}

	threads := make([]DiscussionThread, 0, len(topLevel))
	for _, d := range topLevel {
		replies, err := s.DiscussionRepo.ListReplies(d.ID)
		if err != nil {
			return nil, err
		}
		threads = append(threads, DiscussionThread{Discussion: d, Replies: replies})
	}
	return threads, nil
}

// Delete 删帖。作者本人或管理员可删，主题帖连同回帖一起删
func (s *DiscussionService) Delete(userID uint, isAdmin bool, discussionID string) error {
	discussion, err := s.DiscussionRepo.FindByID(discussionID)
	if err != nil {
		return err
	}
	if discussion == nil {
		return util.ErrDiscussionNotFound
	}
	if discussion.UserID != userID && !isAdmin {
		return util.ErrPermissionDenied
	}
	return s.DiscussionRepo.DeleteWithReplies(discussionID)
}
