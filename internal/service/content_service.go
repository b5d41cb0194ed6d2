package service

import (
	"learnhub_backend/internal/model"
	"learnhub_backend/internal/repository"
	"learnhub_backend/internal/util"
	"strings"
	"sync"
)

// ContentService 维护单个课程的 模块→课时 树：加载、增删改、排序。
// 每个模块的课时列表懒加载并缓存，任何改动只作废受影响模块的缓存
type ContentService struct {
	CourseRepo *repository.CourseRepository
	ModuleRepo *repository.ModuleRepository
	LessonRepo *repository.LessonRepository

	mu          sync.Mutex
	lessonCache map[string][]model.Lesson
}

func NewContentService(
	courseRepo *repository.CourseRepository,
	moduleRepo *repository.ModuleRepository,
	lessonRepo *repository.LessonRepository,
) *ContentService {
	return &ContentService{
		CourseRepo:  courseRepo,
		ModuleRepo:  moduleRepo,
		LessonRepo:  lessonRepo,
		lessonCache: make(map[string][]model.Lesson),
	}
}

// TreeState 大纲的展开状态，值语义，便于脱离 UI 测试
type TreeState struct {
	Expanded map[string]bool
}

func NewTreeState() TreeState {
	return TreeState{Expanded: make(map[string]bool)}
}

func (t TreeState) with(moduleID string, expanded bool) TreeState {
	next := make(map[string]bool, len(t.Expanded)+1)
	for k, v := range t.Expanded {
		next[k] = v
	}
	next[moduleID] = expanded
	return TreeState{Expanded: next}
}

func (t TreeState) IsExpanded(moduleID string) bool {
	return t.Expanded[moduleID]
}

// LoadModules 课程大纲：模块按 order_index 升序，附带课时数
func (s *ContentService) LoadModules(courseID string) ([]repository.ModuleWithLessonCount, error) {
	course, err := s.CourseRepo.FindByID(courseID)
	if err != nil {
		return nil, err
	}
	if course == nil {
		return nil, util.ErrCourseNotFound
	}
	return s.ModuleRepo.FindByCourseWithLessonCount(courseID)
}

// Expand 展开模块并返回其课时。首次展开才查库，之后命中缓存，
// 直到该模块的课时被编辑过
func (s *ContentService) Expand(state TreeState, moduleID string) (TreeState, []model.Lesson, error) {
	s.mu.Lock()
	cached, ok := s.lessonCache[moduleID]
	s.mu.Unlock()

	if ok {
		return state.with(moduleID, true), cached, nil
	}

	module, err := s.ModuleRepo.FindByID(moduleID)
	if err != nil {
		return state, nil, err
	}
	if module == nil {
		return state, nil, util.ErrModuleNotFound
	}

	lessons, err := s.LessonRepo.FindByModuleOrdered(moduleID)
	if err != nil {
		return state, nil, err
	}

	s.mu.Lock()
	s.lessonCache[moduleID] = lessons
	s.mu.Unlock()

	return state.with(moduleID, true), lessons, nil
}

// Collapse 折叠模块，纯 UI 状态，不触达存储
func (s *ContentService) Collapse(state TreeState, moduleID string) TreeState {
	return state.with(moduleID, false)
}

func (s *ContentService) invalidateLessons(moduleID string) {
	s.mu.Lock()
	delete(s.lessonCache, moduleID)
	s.mu.Unlock()
}

func (s *ContentService) CreateModule(courseID, title, description string) (*model.CourseModule, error) {
	if strings.TrimSpace(title) == "" {
		return nil, util.NewValidationError("title", "module title is required")
	}

	course, err := s.CourseRepo.FindByID(courseID)
	if err != nil {
		return nil, err
	}
	if course == nil {
		return nil, util.ErrCourseNotFound
	}

	indices, err := s.ModuleRepo.OrderIndices(courseID)
	if err != nil {
		return nil, err
	}

	module := &model.CourseModule{
		CourseID:    courseID,
		Title:       strings.TrimSpace(title),
		Description: description,
		OrderIndex:  util.NextOrderIndex(indices),
	}
	if err := s.ModuleRepo.Create(module); err != nil {
		return nil, err
	}
	return module, nil
}

// UpdateModule 局部更新，不改动 order_index
func (s *ContentService) UpdateModule(moduleID, title, description string) (*model.CourseModule, error) {
	if strings.TrimSpace(title) == "" {
		return nil, util.NewValidationError("title", "module title is required")
	}

	module, err := s.ModuleRepo.FindByID(moduleID)
	if err != nil {
		return nil, err
	}
	if module == nil {
		return nil, util.ErrModuleNotFound
	}

	module.Title = strings.TrimSpace(title)
	module.Description = description
	if err := s.ModuleRepo.Update(module); err != nil {
		return nil, err
	}
	return module, nil
}

// DeleteModule 级联删除模块下的课时、测验、题目、选项。不可恢复
func (s *ContentService) DeleteModule(moduleID string) error {
	module, err := s.ModuleRepo.FindByID(moduleID)
	if err != nil {
		return err
	}
	if module == nil {
		return util.ErrModuleNotFound
	}

	if err := s.ModuleRepo.DeleteCascade(moduleID); err != nil {
		return err
	}
	s.invalidateLessons(moduleID)
	return nil
}

// ReorderModule 拖拽排序落库：重排同级全部序号
func (s *ContentService) ReorderModule(moduleID string, newIndex int) error {
	return s.ModuleRepo.Reorder(moduleID, newIndex)
}

type LessonInput struct {
	Title           string            `json:"title"`
	ContentType     model.ContentType `json:"contentType"`
	Content         string            `json:"content"`
	DurationMinutes int               `json:"durationMinutes"`
	IsPreview       bool              `json:"isPreview"`
}

func validateLessonInput(input LessonInput) error {
	if strings.TrimSpace(input.Title) == "" {
		return util.NewValidationError("title", "lesson title is required")
	}
	if !model.ValidContentType(input.ContentType) {
		return util.NewValidationError("contentType", "unrecognized content type")
	}
	return nil
}

func (s *ContentService) CreateLesson(moduleID string, input LessonInput) (*model.Lesson, error) {
	if err := validateLessonInput(input); err != nil {
		return nil, err
	}

	module, err := s.ModuleRepo.FindByID(moduleID)
	if err != nil {
		return nil, err
	}
	if module == nil {
		return nil, util.ErrModuleNotFound
	}

	indices, err := s.LessonRepo.OrderIndices(moduleID)
	if err != nil {
		return nil, err
	}

	content := input.Content
	if input.ContentType == model.ContentQuiz {
		// 测验课时的内容单独建表，不存正文
		content = ""
	}

	lesson := &model.Lesson{
		ModuleID:        moduleID,
		Title:           strings.TrimSpace(input.Title),
		ContentType:     input.ContentType,
		Content:         content,
		DurationMinutes: input.DurationMinutes,
		IsPreview:       input.IsPreview,
		OrderIndex:      util.NextOrderIndex(indices),
	}
	if err := s.LessonRepo.Create(lesson); err != nil {
		return nil, err
	}

	s.invalidateLessons(moduleID)
	return lesson, nil
}

func (s *ContentService) UpdateLesson(lessonID string, input LessonInput) (*model.Lesson, error) {
	if err := validateLessonInput(input); err != nil {
		return nil, err
	}

	lesson, err := s.LessonRepo.FindByID(lessonID)
	if err != nil {
		return nil, err
	}
	if lesson == nil {
		return nil, util.ErrLessonNotFound
	}

	lesson.Title = strings.TrimSpace(input.Title)
	lesson.ContentType = input.ContentType
	lesson.Content = input.Content
	if input.ContentType == model.ContentQuiz {
		lesson.Content = ""
	}
	lesson.DurationMinutes = input.DurationMinutes
	lesson.IsPreview = input.IsPreview

	if err := s.LessonRepo.Update(lesson); err != nil {
		return nil, err
	}

	s.invalidateLessons(lesson.ModuleID)
	return lesson, nil
}

func (s *ContentService) DeleteLesson(lessonID string) error {
	lesson, err := s.LessonRepo.FindByID(lessonID)
	if err != nil {
		return err
	}
	if lesson == nil {
		return util.ErrLessonNotFound
	}

	if err := s.LessonRepo.DeleteCascade(lessonID); err != nil {
		return err
	}
	s.invalidateLessons(lesson.ModuleID)
	return nil
}

func (s *ContentService) ReorderLesson(lessonID string, newIndex int) error {
	lesson, err := s.LessonRepo.FindByID(lessonID)
	if err != nil {
		return err
	}
	if lesson == nil {
		return util.ErrLessonNotFound
	}

	if err := s.LessonRepo.Reorder(lessonID, newIndex); err != nil {
		return err
	}
	s.invalidateLessons(lesson.ModuleID)
	return nil
}
