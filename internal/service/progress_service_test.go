package service

import (
	"errors"
	"learnhub_backend/internal/model"
	"learnhub_backend/internal/repository"
	"learnhub_backend/internal/util"
	"testing"
)

func TestMarkLessonCompleteUpdatesEnrollment(t *testing.T) {
	db := newTestDB(t)
	svc := newProgressServiceForTest(db)

	user := seedUser(t, db, model.Student)
	course := seedCourse(t, db, true)
	module := seedModule(t, db, course.ID, 0)
	first := seedLesson(t, db, module.ID, 0)
	second := seedLesson(t, db, module.ID, 1)
	seedEnrollment(t, db, user.ID, course.ID)

	if _, err := svc.MarkLessonComplete(user.ID, first.ID); err != nil {
		t.Fatalf("MarkLessonComplete: %v", err)
	}

	progress, err := svc.GetCourseProgress(user.ID, course.ID)
	if err != nil {
		t.Fatalf("GetCourseProgress: %v", err)
	}
	if progress.Percentage != 50 || progress.CompletedLessons != 1 || progress.TotalLessons != 2 {
		t.Fatalf("expected 50%% (1/2), got %d%% (%d/%d)",
			progress.Percentage, progress.CompletedLessons, progress.TotalLessons)
	}
	if len(progress.CompletedLessonIDs) != 1 || progress.CompletedLessonIDs[0] != first.ID {
		t.Errorf("expected completed lesson ids [%s], got %v", first.ID, progress.CompletedLessonIDs)
	}
	if progress.CompletedAt != nil {
		t.Error("course should not be completed at 50%")
	}

	if _, err := svc.MarkLessonComplete(user.ID, second.ID); err != nil {
		t.Fatalf("MarkLessonComplete: %v", err)
	}

	progress, err = svc.GetCourseProgress(user.ID, course.ID)
	if err != nil {
		t.Fatalf("GetCourseProgress: %v", err)
	}
	if progress.Percentage != 100 {
		t.Fatalf("expected 100%%, got %d%%", progress.Percentage)
	}
	if progress.CompletedAt == nil {
		t.Fatal("completed_at should be set at 100%")
	}
}

func TestMarkLessonCompleteIdempotent(t *testing.T) {
	db := newTestDB(t)
	svc := newProgressServiceForTest(db)

	user := seedUser(t, db, model.Student)
	course := seedCourse(t, db, true)
	module := seedModule(t, db, course.ID, 0)
	lesson := seedLesson(t, db, module.ID, 0)
	seedEnrollment(t, db, user.ID, course.ID)

	first, err := svc.MarkLessonComplete(user.ID, lesson.ID)
	if err != nil {
		t.Fatalf("MarkLessonComplete: %v", err)
	}
	if first.CompletedAt == nil {
		t.Fatal("completed_at missing on first completion")
	}

	again, err := svc.MarkLessonComplete(user.ID, lesson.ID)
	if err != nil {
		t.Fatalf("repeat MarkLessonComplete: %v", err)
	}
	if !again.CompletedAt.Equal(*first.CompletedAt) {
		t.Errorf("first completion time overwritten: %v != %v", again.CompletedAt, first.CompletedAt)
	}

	var rows int64
	db.Model(&model.LessonProgress{}).Where("user_id = ? AND lesson_id = ?", user.ID, lesson.ID).Count(&rows)
	if rows != 1 {
		t.Errorf("expected single progress row, got %d", rows)
	}
}

func TestCourseCompletedAtSetOnce(t *testing.T) {
	db := newTestDB(t)
	svc := newProgressServiceForTest(db)

	user := seedUser(t, db, model.Student)
	course := seedCourse(t, db, true)
	module := seedModule(t, db, course.ID, 0)
	lesson := seedLesson(t, db, module.ID, 0)
	seedEnrollment(t, db, user.ID, course.ID)

	if _, err := svc.MarkLessonComplete(user.ID, lesson.ID); err != nil {
		t.Fatalf("MarkLessonComplete: %v", err)
	}

	enrollRepo := repository.NewEnrollmentRepository(db)
	enrollment, err := enrollRepo.FindByUserAndCourse(user.ID, course.ID)
	if err != nil || enrollment.CompletedAt == nil {
		t.Fatalf("expected completed enrollment, err=%v", err)
	}
	completedAt := *enrollment.CompletedAt

	// 再次重算不改写首次完成时间
	if err := svc.RecomputeEnrollmentProgress(user.ID, course.ID); err != nil {
		t.Fatalf("RecomputeEnrollmentProgress: %v", err)
	}
	enrollment, err = enrollRepo.FindByUserAndCourse(user.ID, course.ID)
	if err != nil {
		t.Fatalf("reload enrollment: %v", err)
	}
	if !enrollment.CompletedAt.Equal(completedAt) {
		t.Errorf("completed_at changed on recompute: %v != %v", enrollment.CompletedAt, completedAt)
	}
}

func TestMarkLessonCompleteRequiresEnrollment(t *testing.T) {
	db := newTestDB(t)
	svc := newProgressServiceForTest(db)

	user := seedUser(t, db, model.Student)
	course := seedCourse(t, db, true)
	module := seedModule(t, db, course.ID, 0)
	lesson := seedLesson(t, db, module.ID, 0)

	if _, err := svc.MarkLessonComplete(user.ID, lesson.ID); !errors.Is(err, util.ErrNotEnrolled) {
		t.Fatalf("expected ErrNotEnrolled, got %v", err)
	}
	if _, err := svc.MarkLessonComplete(user.ID, "no-such-lesson"); !errors.Is(err, util.ErrLessonNotFound) {
		t.Fatalf("expected ErrLessonNotFound, got %v", err)
	}
}

func TestProgressZeroLessonsIsZeroPercent(t *testing.T) {
	db := newTestDB(t)
	svc := newProgressServiceForTest(db)

	user := seedUser(t, db, model.Student)
	course := seedCourse(t, db, true)
	seedEnrollment(t, db, user.ID, course.ID)

	progress, err := svc.GetCourseProgress(user.ID, course.ID)
	if err != nil {
		t.Fatalf("GetCourseProgress: %v", err)
	}
	if progress.Percentage != 0 || progress.TotalLessons != 0 {
		t.Fatalf("course without lessons must be 0%%, got %d%%", progress.Percentage)
	}
	if progress.CompletedAt != nil {
		t.Error("empty course must not be marked completed")
	}

	if err := svc.RecomputeEnrollmentProgress(user.ID, course.ID); err != nil {
		t.Fatalf("RecomputeEnrollmentProgress: %v", err)
	}
}

func TestProgressPercentageRounding(t *testing.T) {
	cases := []struct {
		completed, total int64
		want             int
	}{
		{0, 0, 0},
		{0, 3, 0},
		{1, 3, 33},
		{2, 3, 67},
		{3, 3, 100},
		{1, 8, 13}, // 12.5 四舍五入
	}
	for _, tc := range cases {
		if got := progressPercentage(tc.completed, tc.total); got != tc.want {
			t.Errorf("progressPercentage(%d, %d) = %d, want %d", tc.completed, tc.total, got, tc.want)
		}
	}
}
