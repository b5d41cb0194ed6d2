package service

import (
	"context"
	"errors"
	"learnhub_backend/internal/model"
	"learnhub_backend/internal/util"
	"testing"
)

func validCourseInput() CourseInput {
	return CourseInput{
		Title: "Go 微服务实战",
		Slug:  "go-microservices",
		Level: model.Intermediate,
		Price: 199,
	}
}

func TestCreateCourseValidation(t *testing.T) {
	db := newTestDB(t)
	svc := newCourseServiceForTest(db)

	cases := []struct {
		name   string
		mutate func(i *CourseInput)
	}{
		{"blank title", func(i *CourseInput) { i.Title = " " }},
		{"uppercase slug", func(i *CourseInput) { i.Slug = "Go-Microservices" }},
		{"slug with spaces", func(i *CourseInput) { i.Slug = "go microservices" }},
		{"empty slug", func(i *CourseInput) { i.Slug = "" }},
		{"bad level", func(i *CourseInput) { i.Level = "expert" }},
		{"negative price", func(i *CourseInput) { i.Price = -1 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := validCourseInput()
			tc.mutate(&input)
			if _, err := svc.Create(1, input); !util.IsValidationError(err) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestCreateCourseSlugUniqueness(t *testing.T) {
	db := newTestDB(t)
	svc := newCourseServiceForTest(db)

	first, err := svc.Create(1, validCourseInput())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := svc.Create(2, validCourseInput()); !errors.Is(err, util.ErrSlugTaken) {
		t.Fatalf("expected ErrSlugTaken, got %v", err)
	}

	// 更新自身保留原 slug 不算冲突
	input := validCourseInput()
	input.Title = "改名后的课程"
	updated, err := svc.Update(first.ID, input)
	if err != nil {
		t.Fatalf("Update with own slug: %v", err)
	}
	if updated.Title != "改名后的课程" {
		t.Errorf("title not updated: %s", updated.Title)
	}
}

func TestGetBySlug(t *testing.T) {
	db := newTestDB(t)
	svc := newCourseServiceForTest(db)

	created, err := svc.Create(1, validCourseInput())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	found, err := svc.GetBySlug(context.Background(), created.Slug)
	if err != nil {
		t.Fatalf("GetBySlug: %v", err)
	}
	if found.ID != created.ID {
		t.Errorf("wrong course: %s != %s", found.ID, created.ID)
	}

	if _, err := svc.GetBySlug(context.Background(), "no-such-slug"); !errors.Is(err, util.ErrCourseNotFound) {
		t.Fatalf("expected ErrCourseNotFound, got %v", err)
	}
}

func TestEnrollRules(t *testing.T) {
	db := newTestDB(t)
	svc := newCourseServiceForTest(db)
	user := seedUser(t, db, model.Student)

	draft, err := svc.Create(1, validCourseInput())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// 未发布不可选
	if _, err := svc.Enroll(user.ID, draft.ID); !util.IsValidationError(err) {
		t.Fatalf("expected validation error for unpublished course, got %v", err)
	}

	if _, err := svc.SetPublished(draft.ID, true); err != nil {
		t.Fatalf("SetPublished: %v", err)
	}
	if _, err := svc.Enroll(user.ID, draft.ID); err != nil {
		t.Fatalf("Enroll: %v", err)
	}
	if _, err := svc.Enroll(user.ID, draft.ID); !errors.Is(err, util.ErrAlreadyEnrolled) {
		t.Fatalf("expected ErrAlreadyEnrolled, got %v", err)
	}
}

func TestListPublishedFiltersDrafts(t *testing.T) {
	db := newTestDB(t)
	svc := newCourseServiceForTest(db)

	seedCourse(t, db, true)
	seedCourse(t, db, true)
	seedCourse(t, db, false)

	courses, total, err := svc.ListPublished(1, 20)
	if err != nil {
		t.Fatalf("ListPublished: %v", err)
	}
	if total != 2 || len(courses) != 2 {
		t.Fatalf("expected 2 published courses, got total=%d len=%d", total, len(courses))
	}
	for _, c := range courses {
		if !c.IsPublished {
			t.Errorf("draft course leaked into catalog: %s", c.ID)
		}
	}
}

func TestDeleteCourseCascade(t *testing.T) {
	db := newTestDB(t)
	svc := newCourseServiceForTest(db)
	user := seedUser(t, db, model.Student)

	course := seedCourse(t, db, true)
	module := seedModule(t, db, course.ID, 0)
	lesson := seedLesson(t, db, module.ID, 0)
	seedEnrollment(t, db, user.ID, course.ID)

	quizSvc := newQuizServiceForTest(db)
	if _, err := quizSvc.Save(lesson.ID, "", twoQuestionDraft()); err != nil {
		t.Fatalf("save quiz: %v", err)
	}

	discussionSvc := newDiscussionServiceForTest(db)
	if _, err := discussionSvc.Post(user.ID, course.ID, "提问", "内容"); err != nil {
		t.Fatalf("post discussion: %v", err)
	}
	reviewSvc := newReviewServiceForTest(db)
	if _, err := reviewSvc.Submit(user.ID, course.ID, ReviewInput{Rating: 4}); err != nil {
		t.Fatalf("submit review: %v", err)
	}

	if err := svc.Delete(course.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	for table, m := range map[string]interface{}{
		"courses":        &model.Course{},
		"course_modules": &model.CourseModule{},
		"lessons":        &model.Lesson{},
		"quizzes":        &model.Quiz{},
		"questions":      &model.Question{},
		"answers":        &model.Answer{},
		"enrollments":    &model.Enrollment{},
		"discussions":    &model.Discussion{},
		"reviews":        &model.Review{},
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
