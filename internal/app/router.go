package app

import (
	"learnhub_backend/docs"
	"learnhub_backend/internal/config"
	"learnhub_backend/internal/middleware"
	"learnhub_backend/internal/model"
	"learnhub_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	a.registerPublicRoutes(router, c)

	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		a.registerStudentRoutes(authGroup, c)
		a.registerInstructorRoutes(authGroup, c)
		a.registerAdminRoutes(authGroup, c)
	}
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/auth/register", c.auth.Register)
		public.POST("/auth/login", c.auth.Login)

		// 课程目录与大纲对游客开放
		public.GET("/courses", c.course.ListCourses)
		public.GET("/courses/:courseId", c.course.GetCourse)
		public.GET("/courses/:courseId/modules", c.content.ListModules)
		public.GET("/modules/:moduleId/lessons", c.content.ListLessons)
		public.GET("/catalog/:slug", c.course.GetCourseBySlug)
		public.GET("/courses/:courseId/reviews", c.review.ListReviews)
	}
}

func (a *App) registerStudentRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/profile", c.auth.Profile)
	rg.GET("/enrollments", c.course.ListEnrollments)
	rg.POST("/courses/:courseId/enroll", c.course.Enroll)
	rg.GET("/courses/:courseId/progress", c.progress.GetCourseProgress)
	rg.POST("/lessons/:lessonId/complete", c.progress.MarkLessonComplete)

	// 讨论区
	rg.GET("/courses/:courseId/discussions", c.discussion.ListDiscussions)
	rg.POST("/courses/:courseId/discussions", c.discussion.PostDiscussion)
	rg.POST("/discussions/:discussionId/replies", c.discussion.ReplyDiscussion)
	rg.DELETE("/discussions/:discussionId", c.discussion.DeleteDiscussion)

	// 评价
	rg.PUT("/courses/:courseId/review", c.review.SubmitReview)
	rg.GET("/courses/:courseId/review", c.review.GetMyReview)

	// 答题
	rg.POST("/quizzes/:quizId/attempts", c.attempt.StartAttempt)
	rg.GET("/quizzes/:quizId/attempts", c.attempt.ListAttempts)
	rg.PUT("/attempts/:id/answers", c.attempt.SelectAnswer)
	rg.POST("/attempts/:id/submit", c.attempt.SubmitAttempt)
	rg.GET("/attempts/:id/remaining", c.attempt.RemainingSeconds)
}

func (a *App) registerInstructorRoutes(rg *gin.RouterGroup, c *controllers) {
	instructor := rg.Group("/instructor")
	instructor.Use(middleware.RoleMiddleware(model.Instructor))
	{
		instructor.GET("/courses", c.course.ListMyCourses)
		instructor.POST("/courses", c.course.CreateCourse)
		instructor.PUT("/courses/:courseId", c.course.UpdateCourse)
		instructor.PUT("/courses/:courseId/publish", c.course.PublishCourse)
		instructor.DELETE("/courses/:courseId", c.course.DeleteCourse)

		// 大纲
		instructor.POST("/courses/:courseId/modules", c.content.CreateModule)
		instructor.PUT("/modules/:moduleId", c.content.UpdateModule)
		instructor.DELETE("/modules/:moduleId", c.content.DeleteModule)
		instructor.PUT("/modules/:moduleId/reorder", c.content.ReorderModule)
		instructor.POST("/modules/:moduleId/lessons", c.content.CreateLesson)
		instructor.PUT("/lessons/:lessonId", c.content.UpdateLesson)
		instructor.DELETE("/lessons/:lessonId", c.content.DeleteLesson)
		instructor.PUT("/lessons/:lessonId/reorder", c.content.ReorderLesson)

		// 测验编辑
		instructor.GET("/lessons/:lessonId/quiz", c.quiz.GetQuiz)
		instructor.PUT("/lessons/:lessonId/quiz", c.quiz.SaveQuiz)

		// 素材
		instructor.POST("/lessons/:lessonId/video", c.media.UploadLessonVideo)
		instructor.POST("/uploads/thumbnail", c.media.UploadThumbnail)
	}
}

func (a *App) registerAdminRoutes(rg *gin.RouterGroup, c *controllers) {
	admin := rg.Group("/admin")
	admin.Use(middleware.RoleMiddleware(model.Admin))
	{
		admin.GET("/users", c.admin.ListUsers)
		admin.PUT("/users/:id/role", c.admin.SetUserRole)
		admin.PUT("/users/:id/disabled", c.admin.SetUserDisabled)
		admin.PUT("/reviews/:id/moderated", c.review.ModerateReview)
	}
}
