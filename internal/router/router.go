package router

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/studyzen/backend/api/handler"
)

type Handlers struct {
	Auth    *apiHandler.AuthHandler
	Profile *apiHandler.ProfileHandler
	Subject *apiHandler.SubjectHandler
	Topic   *apiHandler.TopicHandler
	Task    *apiHandler.TaskHandler
	Session *apiHandler.SessionHandler
	Me      *apiHandler.MeHandler
	Health  *apiHandler.HealthHandler
}

func New(handlers Handlers, authMiddleware func(fasthttp.RequestHandler) fasthttp.RequestHandler) *router.Router {
	r := router.New()

	r.GET("/health", handlers.Health.Check)

	// Auth routes
	r.POST("/api/v1/auth/login", handlers.Auth.Login)
	r.POST("/api/v1/auth/refresh", handlers.Auth.Refresh)

	// Protected routes
	r.GET("/api/v1/profile", authMiddleware(handlers.Profile.GetProfile))
	r.PUT("/api/v1/profile", authMiddleware(handlers.Profile.UpdateProfile))

	r.GET("/api/v1/subjects", authMiddleware(handlers.Subject.GetSubjects))
	r.POST("/api/v1/subjects", authMiddleware(handlers.Subject.CreateSubject))
	r.PUT("/api/v1/subjects/{id}", authMiddleware(handlers.Subject.UpdateSubject))
	r.DELETE("/api/v1/subjects/{id}", authMiddleware(handlers.Subject.DeleteSubject))

	r.GET("/api/v1/topics", authMiddleware(handlers.Topic.GetTopics))
	r.POST("/api/v1/topics", authMiddleware(handlers.Topic.CreateTopic))
	r.PUT("/api/v1/topics/{id}", authMiddleware(handlers.Topic.UpdateTopic))
	r.DELETE("/api/v1/topics/{id}", authMiddleware(handlers.Topic.DeleteTopic))

	r.GET("/api/v1/tasks", authMiddleware(handlers.Task.GetTasks))
	r.POST("/api/v1/tasks", authMiddleware(handlers.Task.CreateTask))
	r.PUT("/api/v1/tasks/{id}", authMiddleware(handlers.Task.UpdateTask))
	r.PATCH("/api/v1/tasks/{id}/complete", authMiddleware(handlers.Task.CompleteTask))
	r.DELETE("/api/v1/tasks/{id}", authMiddleware(handlers.Task.DeleteTask))

	// Study sessions: POST starts a running session, PATCH {id}/stop ends it.
	r.GET("/api/v1/sessions", authMiddleware(handlers.Session.GetSessions))
	r.POST("/api/v1/sessions", authMiddleware(handlers.Session.StartSession))
	r.GET("/api/v1/sessions/{id}", authMiddleware(handlers.Session.GetSession))
	r.PATCH("/api/v1/sessions/{id}/stop", authMiddleware(handlers.Session.StopSession))
	r.DELETE("/api/v1/sessions/{id}", authMiddleware(handlers.Session.DeleteSession))

	// Derived analytics views
	r.GET("/api/v1/me/summary", authMiddleware(handlers.Me.Summary))
	r.GET("/api/v1/me/blueprint", authMiddleware(handlers.Me.Blueprint))

	return r
}
