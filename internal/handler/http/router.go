package http

import (
	"log/slog"
	"os"

	"github.com/cmlabs-hris/attendance-engine/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-engine/internal/handler/http/middleware"
	"github.com/cmlabs-hris/attendance-engine/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

type RouterOptions struct {
	AllowedOrigins []string
	Env            string
	LogLevel       slog.Level
}

func NewRouter(
	opts RouterOptions,
	JWTService jwt.Service,
	authHandler AuthHandler,
	attendanceHandler AttendanceHandler,
	latePolicyHandler LatePolicyHandler,
	leaveHandler LeaveHandler,
	settingsHandler SettingsHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(opts.Env != "production")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       opts.LogLevel,
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "attendance-engine"),
		slog.String("version", "v1.0.0"),
		slog.String("env", opts.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Post("/auth/login", authHandler.Login)

		r.Route("/setup", func(r chi.Router) {
			r.Get("/has-admin", authHandler.HasAdmin)
			r.Post("/register-admin", authHandler.RegisterAdmin)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService))

			r.Post("/auth/logout", authHandler.Logout)

			r.Route("/attendance", func(r chi.Router) {
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(employee.PermissionAttendanceViewOwn))
					r.Get("/my", attendanceHandler.GetMyAttendance)
				})
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(employee.PermissionAttendanceClock))
					r.Post("/clock-in", attendanceHandler.ClockIn)
					r.Post("/clock-out", attendanceHandler.ClockOut)
				})
				r.With(middleware.RequirePermission(employee.PermissionAttendanceViewAll)).
					Get("/employees/{id}", attendanceHandler.GetEmployeeAttendance)
				r.With(middleware.RequirePermission(employee.PermissionAttendanceExport)).
					Get("/export", attendanceHandler.Export)
				r.With(middleware.RequirePermission(employee.PermissionAttendanceCorrect)).
					Put("/{id}", attendanceHandler.Update)
			})

			r.Route("/late-policy", func(r chi.Router) {
				r.With(middleware.RequirePermission(employee.PermissionLatePolicyEvaluate)).
					Post("/evaluate", latePolicyHandler.Evaluate)
				r.With(middleware.RequirePermission(employee.PermissionLatePolicyView)).
					Get("/logs/{employeeID}", latePolicyHandler.GetLog)
			})

			r.Route("/leave-requests/{id}", func(r chi.Router) {
				r.Use(middleware.RequirePermission(employee.PermissionLeaveReview))
				r.Post("/approve", leaveHandler.ApproveRequest)
				r.Post("/reject", leaveHandler.RejectRequest)
			})

			r.Route("/settings", func(r chi.Router) {
				r.With(middleware.RequirePermission(employee.PermissionSettingsView)).
					Get("/", settingsHandler.Get)
				r.With(middleware.RequirePermission(employee.PermissionSettingsManage)).
					Put("/", settingsHandler.Update)
			})
		})
	})
	return r
}
