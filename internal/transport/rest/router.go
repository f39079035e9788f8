package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"
	"github.com/ronaldsalazarvasquez/Inventario-Taller/internal/auth"
	"github.com/ronaldsalazarvasquez/Inventario-Taller/internal/loto"
	"github.com/ronaldsalazarvasquez/Inventario-Taller/internal/notification"
	"github.com/ronaldsalazarvasquez/Inventario-Taller/internal/report"
	"github.com/ronaldsalazarvasquez/Inventario-Taller/internal/settings"
	"github.com/ronaldsalazarvasquez/Inventario-Taller/internal/tool"
	"github.com/ronaldsalazarvasquez/Inventario-Taller/internal/transport/middleware"
	"github.com/ronaldsalazarvasquez/Inventario-Taller/internal/transport/swagger"
	"github.com/ronaldsalazarvasquez/Inventario-Taller/internal/user"
)

type Handlers struct {
	Auth         *auth.Handler
	User         *user.Handler
	Tool         *tool.Handler
	Loto         *loto.Handler
	Report       *report.Handler
	Notification *notification.Handler
	Settings     *settings.Handler
}

func RegisterAllRoutes(router *chi.Mux, db *sql.DB, h Handlers, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	// Apply global middleware
	router.Use(middleware.CORS)
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RequestID)
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.RecoveryMiddleware(logger))

	// Serve OpenAPI spec at root (outside API prefix)
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	// Swagger UI route at root
	router.Handle("/swagger/*", swagger.Handler())

	// Mount API under /api/v1 to match OpenAPI basePath
	router.Route("/api/v1", func(r chi.Router) {
		// Health check route
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		// Auth routes
		if h.Auth != nil {
			r.Route("/auth", func(sr chi.Router) {
				sr.Post("/login", h.Auth.Login)
				sr.Post("/refresh", h.Auth.Refresh)
			})
		}

		if h.Auth == nil {
			return
		}

		// Protected routes that require authentication
		r.Group(func(pr chi.Router) {
			pr.Use(h.Auth.Middleware)
			pr.Use(middleware.UserContext)

			pr.Get("/auth/me", h.Auth.Me)

			// Tool registry and loan ledger
			if h.Tool != nil {
				pr.Route("/tools", func(tr chi.Router) {
					tr.Get("/", h.Tool.ListTools)
					tr.Get("/{id}", h.Tool.GetTool)
					tr.Get("/{id}/maintenance", h.Tool.MaintenanceHistory)

					tr.Group(func(mr chi.Router) {
						mr.Use(middleware.RequirePermissions("manage_tools"))
						mr.Post("/", h.Tool.RegisterTool)
						mr.Put("/{id}", h.Tool.UpdateTool)
					})

					tr.Group(func(lr chi.Router) {
						lr.Use(middleware.RequirePermissions("checkout_tool"))
						lr.Post("/{id}/checkout", h.Tool.CheckOut)
						lr.Post("/{id}/checkin", h.Tool.CheckIn)
					})

					tr.Group(func(mr chi.Router) {
						mr.Use(middleware.RequirePermissions("manage_maintenance"))
						mr.Post("/{id}/maintenance", h.Tool.SendToMaintenance)
						mr.Post("/{id}/maintenance/return", h.Tool.ReturnFromMaintenance)
					})

					tr.Group(func(dr chi.Router) {
						dr.Use(middleware.RequirePermissions("decommission_tool"))
						dr.Post("/{id}/decommission", h.Tool.Decommission)
						dr.Get("/{id}/decommission", h.Tool.GetDecommission)
					})

					tr.Group(func(rr chi.Router) {
						rr.Use(middleware.RequirePermissions("advance_replacement"))
						rr.Patch("/{id}/replacement", h.Tool.AdvanceReplacement)
					})
				})

				pr.Get("/loans", h.Tool.ListLoans)

				pr.Group(func(dr chi.Router) {
					dr.Use(middleware.RequirePermissions("decommission_tool", "view_reports"))
					dr.Get("/decommissions", h.Tool.ListDecommissions)
				})
			}

			// Lockout/tagout devices
			if h.Loto != nil {
				pr.Route("/loto", func(lr chi.Router) {
					lr.Get("/", h.Loto.ListDevices)
					lr.Get("/{id}", h.Loto.GetDevice)
					lr.Get("/usage", h.Loto.ListUsage)

					lr.Group(func(ur chi.Router) {
						ur.Use(middleware.RequirePermissions("use_loto"))
						ur.Post("/{id}/usage", h.Loto.StartUsage)
						ur.Patch("/usage/{recordID}/end", h.Loto.EndUsage)
					})

					lr.Group(func(mr chi.Router) {
						mr.Use(middleware.RequirePermissions("manage_loto"))
						mr.Post("/", h.Loto.RegisterDevice)
						mr.Put("/{id}", h.Loto.UpdateDevice)
						mr.Delete("/{id}", h.Loto.DeleteDevice)
					})
				})
			}

			// Users
			if h.User != nil {
				pr.Route("/users", func(ur chi.Router) {
					ur.Get("/{id}", h.User.GetUser)

					ur.Group(func(mr chi.Router) {
						mr.Use(middleware.RequirePermissions("manage_users"))
						mr.Post("/", h.User.CreateUser)
						mr.Get("/", h.User.ListUsers)
						mr.Put("/{id}", h.User.UpdateUser)
						mr.Delete("/{id}", h.User.DeleteUser)
					})
				})
			}

			// Reports
			if h.Report != nil {
				pr.Route("/reports", func(rr chi.Router) {
					rr.Use(middleware.RequirePermissions("view_reports"))
					rr.Get("/overdue", h.Report.Overdue)
					rr.Get("/calibration", h.Report.CalibrationStatus)
					rr.Get("/shift", h.Report.ShiftReport)
					rr.Get("/activity", h.Report.Activity)
					rr.Get("/users", h.Report.UserActivity)
					rr.Get("/summary", h.Report.Summary)
				})
			}

			// Notifications
			if h.Notification != nil {
				pr.Route("/notifications", func(nr chi.Router) {
					nr.Get("/", h.Notification.ListNotifications)
					nr.Patch("/read", h.Notification.MarkAllRead)
				})
			}

			// Settings
			if h.Settings != nil {
				pr.Route("/settings", func(sr chi.Router) {
					sr.Get("/", h.Settings.GetSettings)

					sr.Group(func(mr chi.Router) {
						mr.Use(middleware.RequirePermissions("manage_settings"))
						mr.Put("/", h.Settings.UpdateSettings)
					})
				})
			}
		})
	})
}
