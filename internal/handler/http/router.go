package http

import (
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/corvitlabs/attendance-tracker/internal/config"
	"github.com/corvitlabs/attendance-tracker/internal/domain/user"
	"github.com/corvitlabs/attendance-tracker/internal/handler/http/middleware"
	"github.com/corvitlabs/attendance-tracker/internal/handler/http/response"
	"github.com/corvitlabs/attendance-tracker/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

// Handlers groups every HTTP handler the router mounts.
type Handlers struct {
	Auth         AuthHandler
	User         UserHandler
	Office       OfficeHandler
	SystemConfig SystemConfigHandler
	Attendance   AttendanceHandler
	Report       ReportHandler
}

func NewRouter(cfg *config.Config, JWTService jwt.Service, users middleware.UserLookup, h Handlers) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(cfg.App.Env != "production")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "attendance-tracker"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.App.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.RequestID)

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.SetHeader("X-Content-Type-Options", "nosniff"))
	r.Use(chiMiddleware.SetHeader("X-Frame-Options", "DENY"))
	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(middleware.RateLimitByIP(cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		response.Success(w, map[string]string{
			"status":    "ok",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/login", h.Auth.Login)

		// Bootstrap: succeeds only while no admin exists
		r.Post("/users/admin", h.User.CreateAdmin)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService))
			r.Use(middleware.ActiveUserRequired(users))

			r.Route("/auth", func(r chi.Router) {
				r.Post("/logout", h.Auth.Logout)
				r.Get("/me", h.Auth.Me)
			})

			r.Route("/users", func(r chi.Router) {
				r.Get("/{id}", h.User.Get)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionUserManage))
					r.Post("/", h.User.Create)
					r.Get("/", h.User.List)
					r.Put("/{id}", h.User.Update)
					r.Post("/{id}/activate", h.User.Activate)
					r.Post("/{id}/deactivate", h.User.Deactivate)
					r.Delete("/{id}", h.User.Delete)
				})
			})

			r.Route("/office-locations", func(r chi.Router) {
				r.Get("/", h.Office.List)
				r.Get("/{id}", h.Office.Get)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionOfficeManage))
					r.Post("/", h.Office.Create)
					r.Put("/{id}", h.Office.Update)
					r.Delete("/{id}", h.Office.Delete)
				})
			})

			r.Route("/system-config", func(r chi.Router) {
				r.Get("/snapshot", h.SystemConfig.Snapshot)

				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/initialize", h.SystemConfig.Initialize)
					r.Get("/", h.SystemConfig.List)
					r.Get("/{key}", h.SystemConfig.Get)
					r.Put("/{key}", h.SystemConfig.Update)
					r.Delete("/{key}", h.SystemConfig.Delete)
				})
			})

			r.Route("/attendance", func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionAttendanceViewOwn))

				r.Get("/today", h.Attendance.Today)
				r.Get("/", h.Attendance.List)
				r.Get("/{id}", h.Attendance.Get)
				r.Get("/{id}/breaks", h.Attendance.ListBreaks)
				r.Post("/validate-location", h.Attendance.ValidateLocation)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionAttendanceCreate))
					r.Post("/check-in", h.Attendance.CheckIn)
					r.Post("/check-out", h.Attendance.CheckOut)
					r.Post("/breaks", h.Attendance.StartBreak)
					r.Post("/breaks/{id}/end", h.Attendance.EndBreak)
				})
			})

			r.Route("/reports", func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionReportsView))
				r.Get("/daily", h.Report.DailySummary)
				r.Get("/employees/{id}", h.Report.EmployeeReport)
				r.Get("/employees/{id}/export", h.Report.ExportEmployeeReport)
			})
		})
	})

	return r
}
