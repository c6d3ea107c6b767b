package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
)

type RouterConfig struct {
	Env            string
	AllowedOrigins []string
}

func NewRouter(
	cfg RouterConfig,
	attendanceHandler AttendanceHandler,
	employeeHandler EmployeeHandler,
	reportHandler ReportHandler,
	leaveHandler LeaveHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "attendance-console"),
		slog.String("env", cfg.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/attendance", func(r chi.Router) {
			r.Post("/day", attendanceHandler.LoadDay)
			r.Get("/day", attendanceHandler.DayView)
			r.Post("/day/save-all", attendanceHandler.SaveAll)

			r.Route("/day/records/{employeeID}", func(r chi.Router) {
				r.Patch("/", attendanceHandler.PatchRow)
				r.Delete("/draft", attendanceHandler.ResetRow)
				r.Post("/mark", attendanceHandler.MarkOne)
			})

			r.Route("/day/prompt", func(r chi.Router) {
				r.Post("/decision", attendanceHandler.ResolvePrompt)
				r.Post("/dismiss", attendanceHandler.DismissPrompt)
			})
		})

		r.Get("/employees", employeeHandler.List)
		r.Get("/reports/user-month", reportHandler.UserMonth)

		r.Route("/leaves", func(r chi.Router) {
			r.Get("/", leaveHandler.List)
			r.Post("/{leaveID}/decision", leaveHandler.Decide)
		})
	})
	return r
}
