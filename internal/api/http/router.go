package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/justjoin/justjoin-backend/internal/api/http/handlers"
	"github.com/justjoin/justjoin-backend/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Profiles       *handlers.ProfileHandler
	Notifications  *handlers.NotificationHandler
	Admin          *handlers.AdminHandler
	Interview      *handlers.InterviewHandler
	AuthMiddleware *auth.Middleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api")

	api.Post("/register-jobseeker", cfg.Auth.RegisterJobSeeker)
	api.Post("/register-company", cfg.Auth.RegisterCompany)
	api.Post("/login", cfg.Auth.Login)
	api.Post("/password/reset", cfg.Auth.ResetPassword)
	api.Post("/admin/bootstrap", cfg.Admin.Bootstrap)

	protected := api.Group("", cfg.AuthMiddleware.Handle)
	protected.Post("/password/change", cfg.Auth.ChangePassword)

	protected.Get("/profile/:userId", auth.RequireSelfOrAdmin("userId"), cfg.Profiles.Get)
	protected.Put("/profile/:userId", auth.RequireSelfOrAdmin("userId"), cfg.Profiles.Update)

	protected.Get("/interview/questions/:userId", auth.RequireSelfOrAdmin("userId"), cfg.Interview.Questions)

	notifications := protected.Group("/notifications")
	notifications.Get("/user/:userId", auth.RequireSelfOrAdmin("userId"), cfg.Notifications.ListByUser)
	notifications.Get("/unread-count/:userId", auth.RequireSelfOrAdmin("userId"), cfg.Notifications.UnreadCount)
	notifications.Put("/mark-read/:notificationId", cfg.Notifications.MarkRead)
	notifications.Put("/mark-all-read/:userId", auth.RequireSelfOrAdmin("userId"), cfg.Notifications.MarkAllRead)

	adminNotifications := notifications.Group("/admin", auth.RequireAdmin())
	adminNotifications.Get("/all", cfg.Notifications.ListAll)
	adminNotifications.Post("/send-to-user", cfg.Notifications.SendToUser)
	adminNotifications.Post("/send-to-all", cfg.Notifications.SendToAll)
	adminNotifications.Post("/send-spot", cfg.Notifications.SendSpot)
	adminNotifications.Get("/spot-history", cfg.Notifications.SpotHistory)
	adminNotifications.Put("/spot/:id", cfg.Notifications.UpdateSpot)
	adminNotifications.Delete("/spot/:id", cfg.Notifications.DeleteSpot)
	adminNotifications.Post("/workflow", cfg.Notifications.SaveWorkflow)
	adminNotifications.Get("/workflow-history", cfg.Notifications.WorkflowHistory)
	adminNotifications.Put("/workflow/:id/enabled", cfg.Notifications.ToggleWorkflow)

	// Registered after /notifications/admin so the wildcard delete does
	// not shadow the admin group.
	notifications.Delete("/:notificationId", cfg.Notifications.Delete)

	admin := protected.Group("/admin", auth.RequireAdmin())
	admin.Get("/companies/pending", cfg.Admin.PendingCompanies)
	admin.Post("/companies/:id/approve", cfg.Admin.ApproveCompany)
	admin.Post("/companies/:id/reject", cfg.Admin.RejectCompany)
	admin.Post("/admins", cfg.Admin.CreateAdmin)
	admin.Get("/admins", cfg.Admin.ListAdmins)
	admin.Delete("/admins/:id", cfg.Admin.DeleteAdmin)
	admin.Post("/admins/:id/reset-password", cfg.Admin.ResetAdminPassword)
	admin.Delete("/users/:email", cfg.Admin.DeleteUser)

	protected.Get("/analytics/admin/summary", auth.RequireAdmin(), cfg.Admin.AnalyticsSummary)
}
