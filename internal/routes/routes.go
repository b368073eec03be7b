package routes

import (
	"hiretalent_backend/internal/handlers"
	"hiretalent_backend/internal/middleware"
	"hiretalent_backend/internal/models"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes wires every HTTP route of the API.
func RegisterRoutes(router *gin.Engine, h *handlers.AppHandlers) {
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := router.Group("/api/v1")

	auth := api.Group("/auth")
	{
		auth.POST("/register", h.AuthHandler.Register)
		auth.POST("/login", h.AuthHandler.Login)
		auth.POST("/refresh", h.AuthHandler.RefreshToken)
		auth.POST("/logout", h.AuthHandler.Logout)
		auth.GET("/me", middleware.AuthMiddleware(), h.AuthHandler.Me)
	}

	jobs := api.Group("/jobs")
	{
		// Public: published jobs are world-readable.
		jobs.GET("", h.JobHandler.Search)
		jobs.GET("/:jobId", middleware.OptionalAuthMiddleware(), h.JobHandler.Get)

		authed := jobs.Group("", middleware.AuthMiddleware())
		{
			authed.POST("", middleware.RequireRoles(models.UserRoleRecruiter, models.UserRoleAdmin), h.JobHandler.Create)
			authed.GET("/my", h.JobHandler.ListMine)
			authed.PUT("/:jobId", h.JobHandler.Update)
			authed.DELETE("/:jobId", h.JobHandler.Delete)
			authed.PUT("/:jobId/status", h.JobHandler.UpdateStatus)
			authed.GET("/:jobId/applications", h.ApplicationHandler.ListForJob)
			authed.GET("/:jobId/funnel", h.JobHandler.Funnel)
		}
	}

	applications := api.Group("/applications", middleware.AuthMiddleware())
	{
		applications.POST("", middleware.RequireRoles(models.UserRoleCandidate), h.ApplicationHandler.Apply)
		applications.GET("/my", h.ApplicationHandler.ListMine)
		applications.GET("/:id", h.ApplicationHandler.Get)
		applications.PUT("/:id/status", h.ApplicationHandler.Transition)
		applications.POST("/:id/withdraw", h.ApplicationHandler.Withdraw)
		applications.PUT("/:id/rating", h.ApplicationHandler.Rate)
		applications.POST("/:id/notes", h.ApplicationHandler.AddNote)
		applications.GET("/:id/interviews", h.ApplicationHandler.ListInterviews)
	}

	interviews := api.Group("/interviews", middleware.AuthMiddleware())
	{
		interviews.POST("", h.InterviewHandler.Schedule)
		interviews.GET("/upcoming", h.InterviewHandler.Upcoming)
		interviews.GET("/:id", h.InterviewHandler.Get)
		interviews.PUT("/:id/status", h.InterviewHandler.UpdateStatus)
		interviews.POST("/:id/reschedule", h.InterviewHandler.Reschedule)
		interviews.POST("/:id/feedback", h.InterviewHandler.SubmitFeedback)
	}

	offers := api.Group("/offers")
	{
		// Public response endpoints: the mailed capability token is the
		// credential, no session required.
		offers.POST("/:id/accept", h.OfferHandler.Respond("accept"))
		offers.POST("/:id/reject", h.OfferHandler.Respond("reject"))
		offers.POST("/:id/negotiate", h.OfferHandler.Respond("negotiate"))

		authed := offers.Group("", middleware.AuthMiddleware())
		{
			authed.POST("", h.OfferHandler.Create)
			authed.GET("/:id", h.OfferHandler.Get)
			authed.PUT("/:id", h.OfferHandler.Update)
			authed.POST("/:id/send", h.OfferHandler.Send)
			authed.POST("/:id/withdraw", h.OfferHandler.Withdraw)
			authed.POST("/:id/extend-validity", h.OfferHandler.ExtendValidity)
		}
	}

	dashboard := api.Group("/dashboard", middleware.AuthMiddleware(),
		middleware.RequireRoles(models.UserRoleRecruiter, models.UserRoleAdmin))
	{
		dashboard.GET("/stats", h.DashboardHandler.Stats)
		dashboard.GET("/recent-applications", h.DashboardHandler.RecentApplications)
		dashboard.GET("/upcoming-interviews", h.DashboardHandler.UpcomingInterviews)
	}

	messages := api.Group("/messages", middleware.AuthMiddleware())
	{
		messages.POST("", h.MessageHandler.Send)
		messages.GET("/inbox", h.MessageHandler.Inbox)
		messages.GET("/thread/:threadId", h.MessageHandler.Thread)
		messages.PUT("/:id/read", h.MessageHandler.MarkRead)
	}
}
