package router

import (
	"github.com/oksasatya/ward-admin/internal/application"
	"github.com/oksasatya/ward-admin/internal/container"
	repo "github.com/oksasatya/ward-admin/internal/domain/repository"
	"github.com/oksasatya/ward-admin/internal/infrastructure/cache"
	pginfra "github.com/oksasatya/ward-admin/internal/infrastructure/postgres"
	"github.com/oksasatya/ward-admin/internal/infrastructure/queue"
	"github.com/oksasatya/ward-admin/internal/infrastructure/search"
	handlers "github.com/oksasatya/ward-admin/internal/interface/http"
	"github.com/oksasatya/ward-admin/internal/interface/middleware"
	"github.com/oksasatya/ward-admin/internal/router/modules"
)

type Deps struct {
	Users    repo.UserRepository
	Wards    repo.WardRepository
	Service  *application.Service
	WardSvc  *application.WardService
	Activity *application.ActivityService
	Auth     *application.AuthService
}

func repositories() (repo.UserRepository, repo.WardRepository) {
	users, wards := container.GetRepositories()
	if users == nil {
		users = pginfra.NewUserRepository(container.GetPGPool())
	}
	if wards == nil {
		wards = pginfra.NewWardRepository(container.GetPGPool())
	}
	return users, wards
}

func buildDeps() Deps {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	users, wards := repositories()
	presence := cache.NewPresenceStore(container.GetRedis())

	var notifier application.ApprovalNotifier
	if pub := container.GetRabbitPub(); pub != nil {
		notifier = queue.NewApprovalNotifier(pub, cfg.AppName, cfg.LoginURL, cfg.MailSendEnabled)
	}
	var index application.UserIndexer
	if es := container.GetES(); es != nil {
		index = search.NewUserIndex(es, cfg.ESUsersIndex)
	}

	return Deps{
		Users:    users,
		Wards:    wards,
		Service:  application.NewService(users, wards, presence, index, notifier, logger, cfg.PageSize),
		WardSvc:  application.NewWardService(wards, logger),
		Activity: application.NewActivityService(users, presence, cfg.OnlineMarkerTTL, logger),
		Auth:     application.NewAuthService(users, container.GetRedis(), container.GetJWT(), logger),
	}
}

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry) Deps {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	deps := buildDeps()

	// identity first, then activity for every signed-in request
	r.Use(
		middleware.Authenticate(deps.Auth, logger),
		middleware.UserActivity(deps.Activity),
	)

	gate := middleware.ApprovedUser(cfg.LoginPath, cfg.DashboardPath)
	r.Add(modules.NewUserModule(handlers.NewUserHandler(deps.Service, logger, cfg.CookieDomain, cfg.CookieSecure), gate))
	r.Add(modules.NewWardModule(handlers.NewWardHandler(deps.WardSvc), gate))
	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(deps.Auth, logger, cfg.CookieDomain, cfg.CookieSecure, cfg.DashboardPath)))
	r.Add(modules.NewPageModule(handlers.NewPageHandler(cfg.CookieDomain, cfg.CookieSecure, cfg.LoginPath), cfg.DashboardPath))
	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
	return deps
}
