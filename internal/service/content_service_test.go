package service

import (
	"errors"
	"learnhub_backend/internal/model"
	"learnhub_backend/internal/repository"
	"learnhub_backend/internal/util"
	"testing"
)

func TestCreateModuleAppendsToEnd(t *testing.T) {
	db := newTestDB(t)
	svc := newContentServiceForTest(db)
	course := seedCourse(t, db, true)

	for i, title := range []string{"入门", "进阶", "实战"} {
		module, err := svc.CreateModule(course.ID, title, "")
		if err != nil {
			t.Fatalf("CreateModule %q: %v", title, err)
		}
		if module.OrderIndex != i {
			t.Errorf("module %q expected order %d, got %d", title, i, module.OrderIndex)
		}
	}

	modules, err := svc.LoadModules(course.ID)
	if err != nil {
		t.Fatalf("LoadModules: %v", err)
	}
	if len(modules) != 3 {
		t.Fatalf("expected 3 modules, got %d", len(modules))
	}
	for i, m := range modules {
		if m.OrderIndex != i {
			t.Errorf("position %d has order_index %d", i, m.OrderIndex)
		}
	}
}

func TestCreateModuleValidation(t *testing.T) {
	db := newTestDB(t)
	svc := newContentServiceForTest(db)
	course := seedCourse(t, db, true)

	if _, err := svc.CreateModule(course.ID, "   ", ""); !util.IsValidationError(err) {
		t.Errorf("expected validation error for blank title, got %v", err)
	}
	if _, err := svc.CreateModule("no-such-course", "标题", ""); !errors.Is(err, util.ErrCourseNotFound) {
		t.Errorf("expected ErrCourseNotFound, got %v", err)
	}
}

func TestExpandCachesUntilInvalidated(t *testing.T) {
	db := newTestDB(t)
	svc := newContentServiceForTest(db)
	course := seedCourse(t, db, true)
	module := seedModule(t, db, course.ID, 0)
	seedLesson(t, db, module.ID, 0)

	state := NewTreeState()
	state, lessons, err := svc.Expand(state, module.ID)
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	if !state.IsExpanded(module.ID) {
		t.Error("module should be marked expanded")
	}
	if len(lessons) != 1 {
		t.Fatalf("expected 1 lesson, got %d", len(lessons))
	}

	// 绕过服务直接写库：缓存命中时看不到新课时
	seedLesson(t, db, module.ID, 1)
	_, lessons, err = svc.Expand(state, module.ID)
	if err != nil {
		t.Fatalf("Expand cached: %v", err)
	}
	if len(lessons) != 1 {
		t.Fatalf("cache should serve stale list, got %d lessons", len(lessons))
	}

	// 经由服务修改会作废缓存
	if _, err := svc.CreateLesson(module.ID, LessonInput{Title: "新课时", ContentType: model.ContentText}); err != nil {
		t.Fatalf("CreateLesson: %v", err)
	}
	_, lessons, err = svc.Expand(state, module.ID)
	if err != nil {
		t.Fatalf("Expand after invalidate: %v", err)
	}
	if len(lessons) != 3 {
		t.Fatalf("expected 3 lessons after reload, got %d", len(lessons))
	}

	state = svc.Collapse(state, module.ID)
	if state.IsExpanded(module.ID) {
		t.Error("module should be collapsed")
	}
}

func TestExpandModuleMissing(t *testing.T) {
	db := newTestDB(t)
	svc := newContentServiceForTest(db)

	_, _, err := svc.Expand(NewTreeState(), "no-such-module")
	if !errors.Is(err, util.ErrModuleNotFound) {
		t.Fatalf("expected ErrModuleNotFound, got %v", err)
	}
}

func TestCreateLessonQuizTypeClearsContent(t *testing.T) {
	db := newTestDB(t)
	svc := newContentServiceForTest(db)
	course := seedCourse(t, db, true)
	module := seedModule(t, db, course.ID, 0)

	lesson, err := svc.CreateLesson(module.ID, LessonInput{
		Title:       "随堂测验",
		ContentType: model.ContentQuiz,
		Content:     "这段正文应该被丢弃",
	})
	if err != nil {
		t.Fatalf("CreateLesson: %v", err)
	}
	if lesson.Content != "" {
		t.Errorf("quiz lesson content should be empty, got %q", lesson.Content)
	}

	if _, err := svc.CreateLesson(module.ID, LessonInput{Title: "x", ContentType: "podcast"}); !util.IsValidationError(err) {
		t.Errorf("expected validation error for bad content type, got %v", err)
	}
}

func TestDeleteModuleCascade(t *testing.T) {
	db := newTestDB(t)
	svc := newContentServiceForTest(db)
	course := seedCourse(t, db, true)
	module := seedModule(t, db, course.ID, 0)
	lesson := seedLesson(t, db, module.ID, 0)

	quizSvc := newQuizServiceForTest(db)
	if _, err := quizSvc.Save(lesson.ID, "", twoQuestionDraft()); err != nil {
		t.Fatalf("save quiz: %v", err)
	}

	user := seedUser(t, db, model.Student)
	progressRepo := repository.NewLessonProgressRepository(db)
	if _, err := progressRepo.MarkComplete(user.ID, lesson.ID, lesson.CreatedAt); err != nil {
		t.Fatalf("mark complete: %v", err)
	}

	if err := svc.DeleteModule(module.ID); err != nil {
		t.Fatalf("DeleteModule: %v", err)
	}

	// 模块树下不留任何孤儿行
	for table, m := range map[string]interface{}{
		"course_modules":  &model.CourseModule{},
		"lessons":         &model.Lesson{},
		"quizzes":         &model.Quiz{},
		"questions":       &model.Question{},
		"answers":         &model.Answer{},
		"lesson_progress": &model.LessonProgress{},
	} {
		var count int64
		if err := db.Model(m).Count(&count).Error; err != nil {
			t.Fatalf("count %s: %v", table, err)
		}
		if count != 0 {
			t.Errorf("orphan rows left in %s: %d", table, count)
		}
	}
}

func TestReorderModulePersists(t *testing.T) {
	db := newTestDB(t)
	svc := newContentServiceForTest(db)
	course := seedCourse(t, db, true)

	var ids []string
	for i := 0; i < 3; i++ {
		m := seedModule(t, db, course.ID, i)
		ids = append(ids, m.ID)
	}

	// 把最后一个移到最前
	if err := svc.ReorderModule(ids[2], 0); err != nil {
		t.Fatalf("ReorderModule: %v", err)
	}

	modules, err := svc.LoadModules(course.ID)
	if err != nil {
		t.Fatalf("LoadModules: %v", err)
	}
	wantOrder := []string{ids[2], ids[0], ids[1]}
	for i, m := range modules {
		if m.ID != wantOrder[i] {
			t.Errorf("position %d: want %s, got %s", i, wantOrder[i], m.ID)
		}
		if m.OrderIndex != i {
			t.Errorf("position %d has order_index %d after renumber", i, m.OrderIndex)
		}
	}
}

func TestReorderLessonClampsIndex(t *testing.T) {
	db := newTestDB(t)
	svc := newContentServiceForTest(db)
	course := seedCourse(t, db, true)
	module := seedModule(t, db, course.ID, 0)

	var ids []string
	for i := 0; i < 3; i++ {
		l := seedLesson(t, db, module.ID, i)
		ids = append(ids, l.ID)
	}

	// 目标位置越界时落到末尾
	if err := svc.ReorderLesson(ids[0], 99); err != nil {
		t.Fatalf("ReorderLesson: %v", err)
	}

	lessons, err := repository.NewLessonRepository(db).FindByModuleOrdered(module.ID)
	if err != nil {
		t.Fatalf("reload lessons: %v", err)
	}
	if lessons[len(lessons)-1].ID != ids[0] {
		t.Errorf("lesson should land at the end, order: %v", lessonIDs(lessons))
	}
}

func lessonIDs(lessons []model.Lesson) []string {
	ids := make([]string, len(lessons))
	for i, l := range lessons {
		ids[i] = l.ID
	}
	return ids
}
