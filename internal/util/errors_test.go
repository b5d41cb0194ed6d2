package util

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"learnhub_backend/pkg/logger"
)

func TestIsNotFoundClassification(t *testing.T) {
	notFound := []error{
		ErrUserNotFound,
		ErrCourseNotFound,
		ErrModuleNotFound,
		ErrLessonNotFound,
		ErrQuizNotFound,
		ErrAttemptNotFound,
		ErrDiscussionNotFound,
		ErrReviewNotFound,
		ErrNotEnrolled,
	}
	for _, err := range notFound {
		if !IsNotFound(err) {
			t.Errorf("IsNotFound(%v) = false", err)
		}
	}

	other := []error{ErrSlugTaken, ErrAlreadyEnrolled, ErrInvalidCredentials, ErrPermissionDenied}
	for _, err := range other {
		if IsNotFound(err) {
			t.Errorf("IsNotFound(%v) = true", err)
		}
	}
}

func TestHandleServiceErrorStatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger.Log = zap.NewNop()

	cases := []struct {
		name string
		err  error
		want int
	}{
		{"validation", NewValidationError("title", "title is required"), http.StatusBadRequest},
		{"not enrolled", ErrNotEnrolled, http.StatusNotFound},
		{"course missing", ErrCourseNotFound, http.StatusNotFound},
		{"permission denied", ErrPermissionDenied, http.StatusForbidden},
		{"unknown", http.ErrBodyNotAllowed, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			HandleServiceError(c, tc.err)
			if w.Code != tc.want {
				t.Errorf("%v mapped to %d, want %d", tc.err, w.Code, tc.want)
			}
		})
	}
}
