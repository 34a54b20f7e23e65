package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	auth "github.com/mind-engage/thesisgrade/internal/auth/middleware"
	"github.com/mind-engage/thesisgrade/internal/evallog"
	"github.com/mind-engage/thesisgrade/internal/grading"
	"github.com/mind-engage/thesisgrade/internal/intake"
	"github.com/mind-engage/thesisgrade/internal/logging"
	"github.com/mind-engage/thesisgrade/internal/rbac"
	"github.com/mind-engage/thesisgrade/internal/report"
	"github.com/mind-engage/thesisgrade/internal/roster"
	"github.com/mind-engage/thesisgrade/internal/storage"
)

type Deps struct {
	Engine  *grading.Engine
	Log     evallog.Store
	Intake  *intake.Service
	Reports *report.Service
	Roster  roster.Store
	Blobs   storage.BlobStore

	Auth          *auth.AuthService
	AdminPassHash string // empty disables admin login

	Logger      *slog.Logger
	CORSOrigins []string
	Timeout     time.Duration
	Ready       func() error
}

func NewRouter(d Deps) http.Handler {
	if d.Logger == nil {
		d.Logger = logging.Discard()
	}
	if d.Timeout <= 0 {
		d.Timeout = 30 * time.Second
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, logging.RequestLogger(d.Logger), middleware.Recoverer)
	r.Use(middleware.Timeout(d.Timeout))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   d.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Evaluator form surface: open, like the paper form it replaces.
	r.Group(func(pr chi.Router) {
		pr.Use(rbac.Default(rbac.RoleEvaluator))

		pr.With(rbac.Require("rubric:view")).Get("/roles", ListRolesHandler(d.Engine))
		pr.With(rbac.Require("rubric:view")).Get("/rubrics/{role}", GetRubricHandler())
		pr.With(rbac.Require("roster:view")).Get("/students", ListStudentsHandler(d.Roster))
		pr.With(rbac.Require("roster:view")).Get("/lecturers", ListLecturersHandler(d.Roster))
		pr.With(rbac.Require("evaluation:submit")).Post("/evaluations", SubmitEvaluationHandler(d.Intake))
	})

	// Recap and roster maintenance (JWT → role in context → RBAC). Without an
	// admin password none of it is mounted.
	if d.AdminPassHash != "" && d.Auth != nil {
		r.Post("/auth/login", auth.LoginHandler(d.Auth, d.AdminPassHash, d.Logger))
		mountAdmin(r, d)
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if d.Ready != nil {
			if err := d.Ready(); err != nil {
				http.Error(w, err.Error(), http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
	})
	r.Handle("/metrics", promhttp.Handler())
	return r
}

func mountAdmin(r chi.Router, d Deps) {
	r.Group(func(pr chi.Router) {
		pr.Use(auth.JWTMiddleware(d.Auth))

		pr.With(rbac.Require("evaluation:list")).Get("/evaluations", ListEvaluationsHandler(d.Log))
		pr.With(rbac.Require("report:view")).Get("/report", ReportHandler(d.Reports))
		pr.With(rbac.Require("report:export")).Get("/report.csv", ReportCSVHandler(d.Reports))
		pr.With(rbac.Require("report:view")).Get("/report/students/{studentID}", StudentReportHandler(d.Reports))
		pr.With(rbac.Require("report:export")).Post("/report/snapshot", SnapshotHandler(d.Reports, d.Blobs))
		pr.With(rbac.Require("report:export")).Route("/exports", func(er chi.Router) {
			MountExports(er, d.Blobs)
		})
		pr.With(rbac.Require("roster:write")).Post("/students/bulk", BulkUpsertStudentsHandler(d.Roster, d.Intake))
		pr.With(rbac.Require("roster:write")).Post("/lecturers/bulk", BulkUpsertLecturersHandler(d.Roster))
	})
}
