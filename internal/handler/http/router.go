package http

import (
	"log/slog"
	"os"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

// RouterOptions configures the ambient middleware of the router.
type RouterOptions struct {
	AllowedOrigins []string
	Env            string
	Version        string
	LogLevel       slog.Level
}

func NewRouter(
	opts RouterOptions,
	JWTService jwt.Service,
	employeeHandler EmployeeHandler,
	payPeriodHandler PayPeriodHandler,
	timesheetHandler TimesheetHandler,
	auditTrailHandler AuditTrailHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       opts.LogLevel,
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "timesheet-backend"),
		slog.String("version", opts.Version),
		slog.String("env", opts.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentType("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired)

			r.Route("/employee", func(r chi.Router) {
				r.Get("/", employeeHandler.ListEmployees)
				r.Get("/aids", employeeHandler.ListAids)
				r.Get("/{id}", employeeHandler.GetEmployee)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/add", employeeHandler.CreateEmployee)
					r.Post("/bulk", employeeHandler.CreateEmployeesBulk)
					r.Post("/bulk-delete", employeeHandler.DeleteEmployeesBulk)
					r.Put("/{id}", employeeHandler.UpdateEmployee)
					r.Delete("/{id}", employeeHandler.DeleteEmployee)
				})
			})

			r.Route("/pay-period", func(r chi.Router) {
				r.Get("/", payPeriodHandler.ListPayPeriods)
				r.Get("/current-id", payPeriodHandler.GetCurrentPayPeriodID)
				r.Get("/details/{payPeriodId}", payPeriodHandler.GetPayPeriod)
				r.Get("/days/{payPeriodId}", payPeriodHandler.GetPayPeriodDays)
				r.Get("/auto-creation", payPeriodHandler.GetAutoCreation)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/", payPeriodHandler.CreatePayPeriod)
					r.Put("/auto-creation", payPeriodHandler.SetAutoCreation)
					r.Post("/ensure", payPeriodHandler.EnsureCurrentPayPeriod)
				})
			})

			r.Route("/timesheet", func(r chi.Router) {
				r.Get("/", timesheetHandler.GetCurrentTimesheet)
				r.Get("/{payPeriodId}", timesheetHandler.GetTimesheet)
				r.Get("/{payPeriodId}/export", timesheetHandler.ExportTimesheet)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Put("/", timesheetHandler.UpdateAttendance)
					r.Put("/notes", timesheetHandler.UpdateNotes)
				})
			})

			r.Get("/audit-trail", auditTrailHandler.List)
		})
	})
	return r
}
