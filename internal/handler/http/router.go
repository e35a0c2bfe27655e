package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/mikailpirgozi/Dochadzkovy-system-sub003/internal/config"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewRouter(
	cfg config.AppConfig,
	attendanceHandler AttendanceHandler,
	overtimeHandler OvertimeHandler,
	tripHandler TripHandler,
	correctionHandler CorrectionHandler,
	reportHandler ReportHandler,
	notificationHandler NotificationHandler,
	jobsHandler JobsHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "attendance-engine"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-User-ID"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/jobs", func(r chi.Router) {
			r.Get("/", jobsHandler.List)
			r.Post("/{name}/start", jobsHandler.Start)
			r.Post("/{name}/stop", jobsHandler.Stop)
			r.Post("/{name}/run", jobsHandler.RunNow)
		})

		r.Route("/notifications", func(r chi.Router) {
			r.Get("/", notificationHandler.List)
			r.Post("/read", notificationHandler.MarkAsRead)
			r.Get("/stream", notificationHandler.Stream)
		})

		r.Route("/companies/{companyID}", func(r chi.Router) {

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/events", attendanceHandler.RecordEvent)
				r.Get("/events", attendanceHandler.ListEvents)
				r.Get("/status/{userID}", attendanceHandler.GetLiveStatus)
			})

			r.Route("/overtime", func(r chi.Router) {
				r.Get("/stats", overtimeHandler.GetStats)
				r.Get("/current", overtimeHandler.GetCurrent)
				r.Post("/sweep", overtimeHandler.RunSweep)
			})

			r.Route("/trips", func(r chi.Router) {
				r.Post("/", tripHandler.Create)
				r.Get("/", tripHandler.List)
				r.Route("/{tripID}", func(r chi.Router) {
					r.Get("/", tripHandler.Get)
					r.Post("/approve", tripHandler.Approve)
					r.Post("/reject", tripHandler.Reject)
					r.Post("/start", tripHandler.Start)
					r.Post("/end", tripHandler.End)
				})
			})

			r.Route("/corrections", func(r chi.Router) {
				r.Post("/", correctionHandler.Create)
				r.Get("/", correctionHandler.List)
				r.Route("/{correctionID}", func(r chi.Router) {
					r.Get("/", correctionHandler.Get)
					r.Post("/approve", correctionHandler.Approve)
					r.Post("/reject", correctionHandler.Reject)
				})
			})

			r.Get("/reports/punctuality", reportHandler.Punctuality)
		})
	})
	return r
}
