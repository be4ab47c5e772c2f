package http

import (
	"context"

	"taskhub/internal/adapter/http/handler"
	"taskhub/internal/core/port"
	"taskhub/internal/core/service"
	"taskhub/pkg/auth"
	"taskhub/pkg/config"
	"taskhub/pkg/logging"
	"taskhub/pkg/metrics"
)

// Repositories groups the persistence ports so the container stays
// driver-agnostic; bootstrap picks sqlite or postgres implementations.
type Repositories struct {
	Users port.UserRepository
	Tasks port.TaskRepository
	Lists port.ListRepository
}

type Container struct {
	Tokens *auth.TokenManager

	AuthService port.AuthService
	UserService port.UserService
	TaskService port.TaskService
	ListService port.ListService

	AuthHandler   *handler.AuthHandler
	UserHandler   *handler.UserHandler
	TaskHandler   *handler.TaskHandler
	ListHandler   *handler.ListHandler
	HealthHandler *handler.HealthHandler
}

func NewContainer(
	repos Repositories,
	cfg *config.Config,
	logger *logging.AppLogger,
	appMetrics *metrics.AppMetrics,
	ping func(context.Context) error,
) *Container {
	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.TokenTTL())

	authSvc := service.NewAuthService(repos.Users, cfg.Auth.LockThreshold)
	userSvc := service.NewUserService(repos.Users)
	taskSvc := service.NewTaskService(repos.Tasks, repos.Lists)
	listSvc := service.NewListService(repos.Lists)

	return &Container{
		Tokens: tokens,

		AuthService: authSvc,
		UserService: userSvc,
		TaskService: taskSvc,
		ListService: listSvc,

		AuthHandler:   handler.NewAuthHandler(authSvc, tokens),
		UserHandler:   handler.NewUserHandler(userSvc, authSvc),
		TaskHandler:   handler.NewTaskHandler(taskSvc, logger, appMetrics),
		ListHandler:   handler.NewListHandler(listSvc, appMetrics),
		HealthHandler: handler.NewHealthHandler(ping),
	}
}
