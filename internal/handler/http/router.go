package http

import (
	"log/slog"
	"os"

	"github.com/albastory/workforce-backend-go/internal/handler/http/middleware"
	"github.com/albastory/workforce-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(jwtService jwt.Service, authHandler AuthHandler, workplaceHandler WorkplaceHandler, attendanceHandler AttendanceHandler, scheduleHandler ScheduleHandler, payrollHandler PayrollHandler) *chi.Mux {
	r := chi.NewRouter()

	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "workforce-backend"),
		slog.String("version", "v1.0.0"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", authHandler.Signup)
			r.Post("/login", authHandler.Login)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/workplaces", func(r chi.Router) {
				r.Post("/", workplaceHandler.Create)
				r.Post("/join-requests/{id}/accept", workplaceHandler.AcceptJoinRequest)

				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", workplaceHandler.GetByID)
					r.Post("/join", workplaceHandler.SubmitJoinRequest)
					r.Get("/join-requests", workplaceHandler.ListJoinRequests)
					r.Get("/employees", workplaceHandler.ListEmployees)
					r.Route("/employees/{userID}/work-info", func(r chi.Router) {
						r.Put("/", workplaceHandler.UpsertWorkInfo)
						r.Get("/", workplaceHandler.GetWorkInfo)
					})
				})
			})

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/check-in", attendanceHandler.CheckIn)
				r.Post("/check-out", attendanceHandler.CheckOut)
				r.Post("/", attendanceHandler.Create)
				r.Put("/{id}", attendanceHandler.Update)
				r.Post("/{id}/approve", attendanceHandler.Approve)
				r.Get("/workplace/{id}", attendanceHandler.ListByWorkplace)
				r.Get("/my", attendanceHandler.ListMine)
			})

			r.Route("/schedules", func(r chi.Router) {
				r.Post("/preferences", scheduleHandler.SavePreference)
				r.Get("/preferences/my", scheduleHandler.GetMyPreference)
				r.Post("/generate", scheduleHandler.Generate)
				r.Put("/{id}", scheduleHandler.Update)
				r.Delete("/{id}", scheduleHandler.Cancel)
				r.Get("/workplace/{id}", scheduleHandler.ListByWorkplace)
				r.Get("/my", scheduleHandler.ListMine)
			})

			r.Route("/payroll", func(r chi.Router) {
				r.Post("/calculate", payrollHandler.Calculate)
				r.Post("/{id}/finalize", payrollHandler.Finalize)
				r.Get("/workplace/{id}", payrollHandler.ListByWorkplace)
				r.Get("/my", payrollHandler.ListMine)
			})
		})
	})

	return r
}
