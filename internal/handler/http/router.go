package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/scanpoint-hq/scanpoint-backend-go/internal/handler/http/middleware"
	"github.com/scanpoint-hq/scanpoint-backend-go/internal/pkg/jwt"
)

func NewRouter(
	JWTService jwt.Service,
	authHandler AuthHandler,
	attendanceHandler AttendanceHandler,
	gatePassHandler GatePassHandler,
	env string,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "scanpoint"),
		slog.String("version", "v1.0.0"),
		slog.String("env", env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
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

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/device-login", authHandler.DeviceLogin)
		})

		// Requires device authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/scan", attendanceHandler.Scan)
				r.Get("/today/{employeeID}", attendanceHandler.GetToday)
				r.Delete("/{employeeID}/today/checkpoints/{n}", attendanceHandler.ResetCheckpoint)
				r.Route("/cooldown", func(r chi.Router) {
					r.Get("/{employeeID}", attendanceHandler.GetCooldown)
					r.Get("/{employeeID}/stream", attendanceHandler.StreamCooldown)
				})
			})

			r.Route("/gate-passes", func(r chi.Router) {
				r.Post("/", gatePassHandler.Create)
				r.Get("/", gatePassHandler.List)
				r.Post("/verify", gatePassHandler.Verify)
				r.Post("/{passID}/usage", gatePassHandler.RecordUsage)
				r.Post("/{passID}/revoke", gatePassHandler.Revoke)
			})
		})
	})
	return r
}
