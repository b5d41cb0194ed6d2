package service

import (
	"errors"
	"learnhub_backend/internal/model"
	"learnhub_backend/internal/util"
	"testing"
	"time"
)

func TestPostDiscussionValidation(t *testing.T) {
	db := newTestDB(t)
	svc := newDiscussionServiceForTest(db)

	student := seedUser(t, db, model.Student)
	course := seedCourse(t, db, true)

	if _, err := svc.Post(student.ID, course.ID, "  ", "正文"); err == nil {
		t.Fatal("expected validation error for empty title")
	}
	if _, err := svc.Post(student.ID, course.ID, "标题", ""); err == nil {
		t.Fatal("expected validation error for empty content")
	}
	if _, err := svc.Post(student.ID, "no-such-course", "标题", "正文"); !errors.Is(err, util.ErrCourseNotFound) {
		t.Fatalf("expected ErrCourseNotFound, got %v", err)
	}

	post, err := svc.Post(student.ID, course.ID, "  有空格的标题  ", "正文")
	if err != nil {
		t.Fatalf("post discussion: %v", err)
	}
	if post.Title != "有空格的标题" {
		t.Errorf("expected trimmed title, got %q", post.Title)
	}
	if post.ParentID != nil {
		t.Error("top-level post should have no parent")
	}
}

func TestReplyOnlyOneLevelDeep(t *testing.T) {
	db := newTestDB(t)
	svc := newDiscussionServiceForTest(db)

	student := seedUser(t, db, model.Student)
	course := seedCourse(t, db, true)

	post, err := svc.Post(student.ID, course.ID, "goroutine 泄漏怎么查", "求指点")
	if err != nil {
		t.Fatalf("post discussion: %v", err)
	}

	reply, err := svc.Reply(student.ID, post.ID, "用 pprof 看 goroutine profile")
	if err != nil {
		t.Fatalf("reply: %v", err)
	}
	if reply.ParentID == nil || *reply.ParentID != post.ID {
		t.Fatal("reply should reference the top-level post")
	}
	if reply.CourseID != course.ID {
		t.Error("reply should inherit course from parent")
	}

	// 回帖不能再被回复
	if _, err := svc.Reply(student.ID, reply.ID, "再盖一层"); err == nil {
		t.Fatal("expected validation error when replying to a reply")
	}
	if _, err := svc.Reply(student.ID, "no-such-post", "内容"); !errors.Is(err, util.ErrDiscussionNotFound) {
		t.Fatalf("expected ErrDiscussionNotFound, got %v", err)
	}
}

func TestListDiscussionsOrdering(t *testing.T) {
	db := newTestDB(t)
	svc := newDiscussionServiceForTest(db)

	student := seedUser(t, db, model.Student)
	course := seedCourse(t, db, true)

	first, err := svc.Post(student.ID, course.ID, "第一帖", "内容一")
	if err != nil {
		t.Fatalf("post first: %v", err)
	}
	second, err := svc.Post(student.ID, course.ID, "第二帖", "内容二")
	if err != nil {
		t.Fatalf("post second: %v", err)
	}
	// 主题帖按时间倒序需要第二帖的 created_at 更晚，sqlite 精度内手动拉开
	if err := db.Model(&model.Discussion{}).Where("id = ?", second.ID).
		Update("created_at", first.CreatedAt.Add(time.Second)).Error; err != nil {
		t.Fatalf("bump created_at: %v", err)
	}

	if _, err := svc.Reply(student.ID, first.ID, "回帖 A"); err != nil {
		t.Fatalf("reply A: %v", err)
	}
	if _, err := svc.Reply(student.ID, first.ID, "回帖 B"); err != nil {
		t.Fatalf("reply B: %v", err)
	}

	threads, err := svc.ListByCourse(course.ID)
	if err != nil {
		t.Fatalf("list discussions: %v", err)
	}
	if len(threads) != 2 {
		t.Fatalf("expected 2 threads, got %d", len(threads))
	}
	if threads[0].ID != second.ID {
		t.Error("newest top-level post should come first")
	}
	if len(threads[1].Replies) != 2 {
		t.Fatalf("expected 2 replies on first post, got %d", len(threads[1].Replies))
	}
	if threads[1].Replies[0].Content != "回帖 A" {
		t.Error("replies should be in chronological order")
	}

	if _, err := svc.ListByCourse("no-such-course"); !errors.Is(err, util.ErrCourseNotFound) {
		t.Fatalf("expected ErrCourseNotFound, got %v", err)
	}
}

func TestDeleteDiscussionPermissions(t *testing.T) {
	db := newTestDB(t)
	svc := newDiscussionServiceForTest(db)

	author := seedUser(t, db, model.Student)
	other := seedUser(t, db, model.Student)
	course := seedCourse(t, db, true)

	post, err := svc.Post(author.ID, course.ID, "待删的帖子", "内容")
	if err != nil {
		t.Fatalf("post discussion: %v", err)
	}
	if _, err := svc.Reply(other.ID, post.ID, "别人的回帖"); err != nil {
		t.Fatalf("reply: %v", err)
	}

	if err := svc.Delete(other.ID, false, post.ID); !errors.Is(err, util.ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied for non-author, got %v", err)
	}

	// 作者删主题帖，回帖一并删除
	if err := svc.Delete(author.ID, false, post.ID); err != nil {
		t.Fatalf("delete by author: %v", err)
	}
	var count int64
	if err := db.Model(&model.Discussion{}).Count(&count).Error; err != nil {
		t.Fatalf("count discussions: %v", err)
	}
	if count != 0 {
		t.Errorf("expected replies deleted with the post, %d rows left", count)
	}

	if err := svc.Delete(author.ID, false, post.ID); !errors.Is(err, util.ErrDiscussionNotFound) {
		t.Fatalf("expected ErrDiscussionNotFound after delete, got %v", err)
	}
}

func TestAdminCanDeleteAnyDiscussion(t *testing.T) {
	db := newTestDB(t)
	svc := newDiscussionServiceForTest(db)

	author := seedUser(t, db, model.Student)
	admin := seedUser(t, db, model.Admin)
	course := seedCourse(t, db, true)

	post, err := svc.Post(author.ID, course.ID, "违规内容", "广告")
	if err != nil {
		t.Fatalf("post discussion: %v", err)
	}
	if err := svc.Delete(admin.ID, true, post.ID); err != nil {
		t.Fatalf("delete by admin: %v", err)
	}
}
