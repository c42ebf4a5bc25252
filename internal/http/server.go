package httpapi

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/redis/go-redis/v9"

	"pathways-backend-go/internal/config"
	"pathways-backend-go/internal/events"
	"pathways-backend-go/internal/models"
	"pathways-backend-go/internal/services"
	"pathways-backend-go/internal/store"
	"pathways-backend-go/internal/validation"
)

type Server struct {
	Store       store.Store
	Config      config.Config
	Tokens      services.TokenService
	Hub         *services.AdminHub
	Bus         *events.Bus
	Redis       *redis.Client
	Limiter     *services.RateLimiter
	AuthLimiter *services.RateLimiter
	Revocations *services.Revocations
	Requests    *validation.Requests
	Logger      *slog.Logger
}

func NewServer(st store.Store, cfg config.Config, rdb *redis.Client, hub *services.AdminHub, bus *events.Bus, logger *slog.Logger) *Server {
	tokens := services.TokenService{
		Secret:     []byte(cfg.JWTSecret),
		Issuer:     cfg.JWTIssuer,
		AccessTTL:  time.Duration(cfg.AccessTTLSeconds) * time.Second,
		RefreshTTL: time.Duration(cfg.RefreshTTLSeconds) * time.Second,
	}
	return &Server{
		Store:       st,
		Config:      cfg,
		Tokens:      tokens,
		Hub:         hub,
		Bus:         bus,
		Redis:       rdb,
		Limiter:     services.NewRateLimiter(rdb, "api", cfg.RateLimitRequests, cfg.RateLimitWindow),
		AuthLimiter: services.NewRateLimiter(rdb, "auth", cfg.AuthRateLimitRequests, cfg.RateLimitWindow),
		Revocations: services.NewRevocations(rdb),
		Requests:    validation.NewRequests(),
		Logger:      logger,
	}
}

// publish forwards a committed activity log entry to the admin feed.
func (s *Server) publish(entry *models.ActivityLog) {
	if entry == nil {
		return
	}
	s.Bus.PublishActivity(*entry)
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.RequestLogger)
	r.Use(s.Recoverer)
	if len(s.Config.CorsOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   s.Config.CorsOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
			ExposedHeaders:   []string{"X-Request-Id", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
			AllowCredentials: false,
			MaxAge:           300,
		}))
	}
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, http.StatusNotFound, "Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	r.Route("/api", func(api chi.Router) {
		api.Use(middleware.Timeout(s.Config.RequestTimeout))
		api.Use(s.RateLimit(s.Limiter))

		api.Get("/health", s.Health)

		api.Route("/auth", func(auth chi.Router) {
			auth.Group(func(limited chi.Router) {
				limited.Use(s.RateLimit(s.AuthLimiter))
				limited.Post("/register", s.Register)
				limited.Post("/login", s.Login)
				limited.Post("/refresh", s.Refresh)
				limited.Post("/forgot-password", s.ForgotPassword)
				limited.Post("/reset-password", s.ResetPassword)
			})
			auth.With(s.WithAuth).Post("/logout", s.Logout)
			auth.With(s.OptionalAuth).Get("/me", s.Me)
		})

		api.Group(func(authed chi.Router) {
			authed.Use(s.WithAuth)

			authed.Route("/users", func(users chi.Router) {
				users.Get("/profile", s.GetProfile)
				users.Put("/profile", s.UpdateProfile)
				users.Put("/password", s.ChangePassword)
			})

			authed.Get("/skills", s.ListSkills)
			authed.Get("/interests", s.ListInterests)
			authed.Get("/media/{assetId}", s.MediaContent)

			authed.Route("/students", func(students chi.Router) {
				students.With(s.RequireRole(models.RoleTeacher, models.RoleAdmin)).Get("/", s.ListStudents)
				students.With(s.RequireRole(models.RoleStudent)).Get("/me", s.MyStudentRecord)
				students.Route("/{studentId}", func(student chi.Router) {
					student.Use(s.RequireStudentOwnership)
					student.Get("/", s.GetStudent)
					student.Get("/groups", s.StudentGroups)
					student.Post("/resume", s.UploadResume)
					student.Route("/goals", func(goals chi.Router) {
						goals.Get("/", s.ListGoals)
						goals.Post("/", s.CreateGoal)
						goals.Get("/{goalId}", s.GetGoal)
						goals.Put("/{goalId}", s.UpdateGoal)
						goals.Delete("/{goalId}", s.DeleteGoal)
					})
					student.Route("/activities", func(activities chi.Router) {
						activities.Get("/", s.ListActivities)
						activities.Post("/", s.CreateActivity)
						activities.Get("/{activityId}", s.GetActivity)
						activities.Put("/{activityId}", s.UpdateActivity)
						activities.Delete("/{activityId}", s.DeleteActivity)
					})
				})
			})

			authed.Route("/classes", func(classes chi.Router) {
				classes.Use(s.RequireRole(models.RoleTeacher, models.RoleAdmin))
				classes.With(s.RequireRole(models.RoleTeacher)).Post("/", s.CreateClass)
				classes.Get("/", s.ListClasses)
				classes.Route("/{classId}", func(class chi.Router) {
					class.Use(s.RequireClassAccess)
					class.Get("/", s.GetClass)
					class.Put("/", s.UpdateClass)
					class.Get("/students", s.ClassRoster)
					class.Get("/export", s.ExportRoster)
					class.Route("/groups", func(groups chi.Router) {
						groups.Get("/", s.ListGroups)
						groups.Post("/", s.CreateGroup)
						groups.Get("/{groupId}", s.GetGroup)
						groups.Put("/{groupId}", s.UpdateGroup)
						groups.Delete("/{groupId}", s.DeleteGroup)
						groups.Post("/{groupId}/members", s.AddGroupMember)
						groups.Delete("/{groupId}/members/{studentId}", s.RemoveGroupMember)
					})
				})
			})

			authed.Route("/surveys", func(surveys chi.Router) {
				surveys.Get("/", s.ListSurveys)
				surveys.With(s.RequireRole(models.RoleTeacher, models.RoleAdmin)).Post("/", s.CreateSurvey)
				surveys.Get("/{surveyId}", s.GetSurvey)
				surveys.Put("/{surveyId}/status", s.SetSurveyStatus)
				surveys.With(s.RequireRole(models.RoleStudent)).Post("/{surveyId}/responses", s.SubmitSurveyResponse)
				surveys.Get("/{surveyId}/responses", s.ListSurveyResponses)
			})

			authed.Route("/admin", func(admin chi.Router) {
				admin.Use(s.RequireRole(models.RoleAdmin))
				admin.Get("/users", s.ListUsers)
				admin.Post("/users", s.CreateUser)
				admin.Put("/users/{userId}/status", s.SetUserStatus)
				admin.Get("/activity", s.ActivityLogs)
				admin.Get("/metrics/history", s.MetricsHistory)
			})
		})
	})

	r.Get("/ws/admin", s.AdminSocket)
	return r
}
