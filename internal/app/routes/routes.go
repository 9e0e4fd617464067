package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/unpuzzleclub/backend/internal/app/controllers"
	"github.com/unpuzzleclub/backend/internal/app/models"
	"github.com/unpuzzleclub/backend/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	directoryController *controllers.DirectoryController,
	academyController *controllers.AcademyController,
	photoController *controllers.PhotoController,
	adminController *controllers.AdminController,
	dashboardController *controllers.DashboardController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/google", authController.GoogleSignIn)
		auth.POST("/login", authController.Login)
		auth.POST("/refresh", authController.RefreshToken)
	}

	// --- Public directory routes ---
	locations := v1.Group("/locations")
	{
		locations.GET("", directoryController.GetAllLocations)
		locations.GET("/:id", directoryController.GetLocationByID)
	}

	skills := v1.Group("/skills")
	{
		skills.GET("", directoryController.GetAllSkills)
		skills.GET("/:id", directoryController.GetSkillByID)
	}

	// --- Public academy directory ---
	academies := v1.Group("/academies")
	{
		academies.GET("", academyController.ListAcademies)
		academies.GET("/:id", academyController.GetAcademyByID)
		academies.GET("/:id/skills", academyController.GetAcademySkills)
		academies.GET("/:id/photos", photoController.GetAcademyPhotos)
	}

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.GET("/auth/me", authController.GetMe)
		authenticated.POST("/auth/select-role", authController.SelectRole)

		authenticated.POST("/academies", academyController.CreateAcademy)

		// Academy owner routes
		owner := authenticated.Group("")
		owner.Use(authMiddleware.RoleRequired(models.RoleAcademyOwner))
		{
			owner.GET("/my-academy", academyController.GetMyAcademy)
			owner.PUT("/academies/:id", academyController.UpdateAcademy)
			owner.POST("/academies/:id/skills", academyController.RequestSkill)
			owner.POST("/academies/:id/photos", photoController.UploadPhoto)
			owner.DELETE("/photos/:id", photoController.DeletePhoto)
			owner.PUT("/photos/:id/order", photoController.ReorderPhoto)

			dashboard := owner.Group("/dashboard")
			{
				dashboard.GET("/stats", dashboardController.GetAcademyStats)
				dashboard.GET("/batches", dashboardController.GetAcademyBatches)
				dashboard.GET("/students", dashboardController.GetAcademyStudents)
				dashboard.GET("/teachers", dashboardController.GetAcademyTeachers)
			}
		}

		// Platform admin routes
		admin := authenticated.Group("/admin")
		admin.Use(authMiddleware.AdminRequired())
		{
			admin.GET("/academies", academyController.ListAllAcademies)
			admin.PUT("/academies/:id/status", academyController.UpdateAcademyStatus)
			admin.PUT("/academies/:id/name", academyController.RenameAcademy)
			admin.DELETE("/academies/:id", academyController.DeleteAcademy)

			admin.POST("/locations", directoryController.CreateLocation)
			admin.PUT("/locations/:id", directoryController.UpdateLocation)
			admin.DELETE("/locations/:id", directoryController.DeleteLocation)

			admin.POST("/skills", directoryController.CreateSkill)
			admin.PUT("/skills/:id", directoryController.UpdateSkill)
			admin.DELETE("/skills/:id", directoryController.DeleteSkill)

			admin.GET("/skill-requests", adminController.GetPendingSkillRequests)
			admin.PUT("/skill-requests/:id", adminController.ResolveSkillRequest)

			admin.GET("/photos/pending", photoController.GetPendingPhotos)
			admin.PUT("/photos/:id/status", photoController.UpdatePhotoStatus)
			admin.DELETE("/photos/:id", photoController.DeletePhoto)

			admin.GET("/stats", adminController.GetDashboardStats)
			admin.GET("/activities", adminController.GetRecentActivities)

			// Admin management is reserved for super admins
			superAdmin := admin.Group("/admins")
			superAdmin.Use(authMiddleware.SuperAdminRequired())
			{
				superAdmin.GET("", adminController.GetAllAdmins)
				superAdmin.POST("", adminController.CreateAdmin)
				superAdmin.PUT("/:id/status", adminController.UpdateAdminStatus)
				superAdmin.DELETE("/:id", adminController.DeleteAdmin)
			}
		}
	}
}
