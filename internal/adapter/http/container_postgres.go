package http

import (
	database "github.com/Manni1403/taskboard-assessment/internal/adapter/database/postgres"
	repository "github.com/Manni1403/taskboard-assessment/internal/adapter/database/postgres/repository"

	"github.com/Manni1403/taskboard-assessment/internal/adapter/http/handler"
	"github.com/Manni1403/taskboard-assessment/internal/core/port"
	"github.com/Manni1403/taskboard-assessment/internal/core/service"
	"github.com/Manni1403/taskboard-assessment/pkg/logging"
)

// NewPostgresContainer wires the same services and handlers over the pgx
// repositories. Selected at startup when DATABASE_URL is set.
func NewPostgresContainer(db *database.DB, logger *logging.Logger, probe port.Telemetry) *Container {
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
