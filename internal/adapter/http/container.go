package http

import (
	database "github.com/Manni1403/taskboard-assessment/internal/adapter/database/sqlite"
	repository "github.com/Manni1403/taskboard-assessment/internal/adapter/database/sqlite/repository"

	"github.com/Manni1403/taskboard-assessment/internal/adapter/http/handler"
	"github.com/Manni1403/taskboard-assessment/internal/core/port"
	"github.com/Manni1403/taskboard-assessment/internal/core/service"
	"github.com/Manni1403/taskboard-assessment/pkg/logging"
)

type Container struct {
	UserRepo port.UserRepository
	TodoRepo port.TodoRepository

	UserUseCase port.UserService
	TodoUseCase port.TodoService
	AuthUseCase port.AuthService

	TodoHandler *handler.TodoHandler
	AuthHandler *handler.AuthHandler
}

func NewContainer(db *database.DB, logger *logging.Logger, probe port.Telemetry) *Container {
	userRepo := repository.NewUserRepository(db)
	todoRepo := repository.NewTodoRepository(db, probe)

	authSvc := service.NewAuthService(userRepo)
	userSvc := service.NewUserService(userRepo)
	todoSvc := service.NewTodoService(todoRepo, probe)

	authHandler := handler.NewAuthHandler(authSvc)
	todoHandler := handler.NewTodoHandler(todoSvc, logger)

	return &Container{
		UserRepo:    userRepo,
		TodoRepo:    todoRepo,
		UserUseCase: userSvc,
		TodoUseCase: todoSvc,
		AuthUseCase: authSvc,

		TodoHandler: todoHandler,
		AuthHandler: authHandler,
	}
}
