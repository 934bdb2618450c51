package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/taskhive-dev/taskhive/internal/handlers"
	"github.com/taskhive-dev/taskhive/internal/middleware"
)

func NewRouter(allowedOrigins []string) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthCheck)

		auth := api.Group("/auth")
		{
			auth.POST("/register", handlers.Register)
			auth.POST("/login", handlers.Login)
			auth.POST("/logout", middleware.AuthMiddleware(), handlers.Logout)
			auth.GET("/me", middleware.AuthMiddleware(), handlers.Me)
			auth.PATCH("/me", middleware.AuthMiddleware(), handlers.UpdateUser)
			auth.DELETE("/me", middleware.AuthMiddleware(), handlers.DeleteUser)
		}

		authenticated := api.Group("", middleware.AuthMiddleware())
		{
			authenticated.GET("/profile", handlers.GetProfile)
			authenticated.PATCH("/profile", handlers.UpdateProfile)
			authenticated.POST("/profile/image", handlers.UploadProfileImage)

			authenticated.GET("/users", handlers.ListUsers)
			authenticated.GET("/activities", handlers.ListActivities)
			authenticated.GET("/categories", handlers.ListCategories)

			projects := authenticated.Group("/projects")
			{
				projects.POST("", handlers.CreateProject)
				projects.GET("", handlers.ListProjects)
				projects.GET("/:project_id", handlers.GetProject)
				projects.PATCH("/:project_id", handlers.UpdateProject)
				projects.DELETE("/:project_id", handlers.DeleteProject)
				projects.POST("/:project_id/progress", handlers.RecomputeProjectProgress)

				projects.POST("/:project_id/tasks", handlers.CreateTask)
				projects.GET("/:project_id/tasks", handlers.ListTasks)
				projects.PATCH("/:project_id/tasks/:task_id", handlers.UpdateTask)
				projects.DELETE("/:project_id/tasks/:task_id", handlers.DeleteTask)
			}

			admin := authenticated.Group("/admin", middleware.RequireStaff())
			{
				admin.GET("/activities", handlers.ListAllActivities)
				admin.POST("/categories", handlers.CreateCategory)
			}
		}
	}

	return r
}
