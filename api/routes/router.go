package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/litera-id/litera-backend/api/controllers"
	"github.com/litera-id/litera-backend/api/middleware"
	achievementsvc "github.com/litera-id/litera-backend/internal/achievements"
	authsvc "github.com/litera-id/litera-backend/internal/auth"
	booksvc "github.com/litera-id/litera-backend/internal/books"
	inventorysvc "github.com/litera-id/litera-backend/internal/inventory"
	loansvc "github.com/litera-id/litera-backend/internal/loans"
	usersvc "github.com/litera-id/litera-backend/internal/users"
	"github.com/litera-id/litera-backend/pkg/config"
	"github.com/litera-id/litera-backend/pkg/db"
	"github.com/litera-id/litera-backend/pkg/enums"
	"github.com/litera-id/litera-backend/pkg/logger"
	"github.com/litera-id/litera-backend/pkg/redis"
)

// Services bundles everything the router wires into controllers.
type Services struct {
	Auth         authsvc.Service
	Books        booksvc.Service
	Loans        loansvc.Service
	Achievements achievementsvc.Service
	Inventory    inventorysvc.Service
	Users        usersvc.Service
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	services Services,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.RateLimit.LoginWindow,
		cfg.RateLimit.LoginIPLimit,
		cfg.RateLimit.LoginUsernameLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.RateLimit.RegisterWindow,
		cfg.RateLimit.RegisterIPLimit,
		cfg.RateLimit.RegisterUsernameLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, dbP, redisClient, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.With(middleware.AuthRateLimit(registerPolicy, redisClient, logg)).
				Post("/register", controllers.Register(services.Auth, logg))
			r.With(middleware.AuthRateLimit(loginPolicy, redisClient, logg)).
				Post("/login", controllers.Login(services.Auth, logg))
			r.With(middleware.Auth(cfg.JWT, logg)).
				Get("/me", controllers.Me(services.Auth, logg))
			r.With(middleware.Auth(cfg.JWT, logg)).
				Put("/me/avatar", controllers.UpdateAvatar(services.Auth, logg))
		})

		r.Route("/books", func(r chi.Router) {
			r.With(middleware.OptionalAuth(cfg.JWT, logg)).Get("/", controllers.ListBooks(services.Books, logg))
			r.With(middleware.OptionalAuth(cfg.JWT, logg)).Get("/{isbn}", controllers.GetBook(services.Books, logg))

			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(cfg.JWT, logg))
				r.Use(middleware.RequireRole(logg, enums.UserRoleAdmin))
				r.Post("/", controllers.CreateBook(services.Books, logg))
				r.Patch("/{isbn}", controllers.UpdateBook(services.Books, logg))
				r.Delete("/{isbn}", controllers.DeleteBook(services.Books, logg))
				r.Put("/{isbn}/cover", controllers.UploadBookCover(services.Books, logg))
			})
		})

		r.Route("/loans", func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, logg))
			r.Get("/", controllers.ListLoans(services.Loans, logg))
			r.Post("/", controllers.CreateLoan(services.Loans, logg))
			r.Get("/{id}", controllers.GetLoan(services.Loans, logg))
			r.Patch("/{id}", controllers.UpdateLoan(services.Loans, logg))
			r.With(middleware.RequireRole(logg, enums.UserRoleAdmin)).
				Delete("/{id}", controllers.DeleteLoan(services.Loans, logg))
		})

		r.Route("/achievements", func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, logg))
			r.Get("/", controllers.ListAchievements(services.Achievements, logg))
		})

		r.Route("/inventories", func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, logg))
			r.Use(middleware.RequireRole(logg, enums.UserRoleAdmin))
			r.Get("/", controllers.ListInventories(services.Inventory, logg))
			r.Post("/adjust", controllers.AdjustInventory(services.Inventory, logg))
		})

		r.Route("/users", func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, logg))
			r.Use(middleware.RequireRole(logg, enums.UserRoleAdmin))
			r.Get("/", controllers.ListUsers(services.Users, logg))
			r.Post("/{id}/verify", controllers.VerifyUser(services.Users, logg))
		})
	})

	return r
}
