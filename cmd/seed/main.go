package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"time"

	"github.com/google/uuid"

	database "github.com/Manni1403/taskboard-assessment/internal/adapter/database/sqlite"
	repository "github.com/Manni1403/taskboard-assessment/internal/adapter/database/sqlite/repository"
	"github.com/Manni1403/taskboard-assessment/internal/core/domain"
	"github.com/Manni1403/taskboard-assessment/internal/core/model/request"
	"github.com/Manni1403/taskboard-assessment/internal/core/service"
	"github.com/Manni1403/taskboard-assessment/internal/core/telemetry"
	"github.com/Manni1403/taskboard-assessment/internal/core/util"
	"github.com/joho/godotenv"
)

func strPtr(s string) *string { return &s }

// Seeds a demo account with a handful of todos so the API is usable right
// after a fresh migration.
func main() {
	_ = godotenv.Load()

	ctx := context.Background()

	db, err := database.NewDB()
	if err != nil {
		log.Fatal("Failed to open database:", err)
	}
	defer db.Close()

	probe := telemetry.NewNoOpProbe()
	userRepo := repository.NewUserRepository(db)
	todoRepo := repository.NewTodoRepository(db, probe)
	todoSvc := service.NewTodoService(todoRepo, probe)

	demo, err := userRepo.GetByEmail(ctx, "demo@local.com")
	if errors.Is(err, domain.ErrUserNotFound) {
		encrypted, hashErr := util.GenerateEncrypt("demo123")
		if hashErr != nil {
			log.Fatal("Failed to hash password:", hashErr)
		}

		now := time.Now()
		demo, err = userRepo.Create(ctx, domain.User{
			UUID:              uuid.New(),
			Name:              "Demo",
			Email:             "demo@local.com",
			EncryptedPassword: encrypted,
			CreatedAt:         now,
			UpdatedAt:         now,
		})
	}

	if err != nil {
		log.Fatal("Failed to resolve demo user:", err)
	}

	// Re-seed from a clean slate for this user.
	existing, err := todoRepo.GetAllByOwner(ctx, demo.ID, domain.TodoFilterAll)
	if err != nil {
		log.Fatal("Failed to list existing todos:", err)
	}

	for _, todo := range existing {
		if err := todoRepo.DeleteByUUID(ctx, todo.UUID.String()); err != nil {
			log.Fatal("Failed to clear existing todos:", err)
		}
	}

	samples := []struct {
		req       request.CreateTodoRequest
		completed bool
	}{
		{request.CreateTodoRequest{Title: "Complete project documentation", Description: strPtr("Write comprehensive README and API documentation")}, false},
		{request.CreateTodoRequest{Title: "Review code changes", Description: strPtr("Go through all recent pull requests and provide feedback")}, true},
		{request.CreateTodoRequest{Title: "Update dependencies", Description: strPtr("Check for security vulnerabilities and update packages")}, false},
		{request.CreateTodoRequest{Title: "Plan next sprint", Description: strPtr("Define user stories and estimate tasks for upcoming sprint")}, true},
		{request.CreateTodoRequest{Title: "Test edge cases", Description: strPtr("Verify optimistic locking and bulk operations work correctly")}, false},
	}

	for _, sample := range samples {
		created, err := todoSvc.Create(ctx, demo.ID, sample.req)
		if err != nil {
			log.Fatal("Failed to create todo:", err)
		}

		if sample.completed {
			completed := true
			version := created.Version

			if _, err := todoSvc.Update(ctx, demo.ID, created.UUID.String(), request.UpdateTodoRequest{
				Completed: &completed,
				Version:   &version,
			}); err != nil {
				log.Fatal("Failed to complete todo:", err)
			}
		}
	}

	slog.Info("Database seeded successfully")
	fmt.Println("Demo user: demo@local.com / demo123")
	fmt.Printf("Created %d sample todos\n", len(samples))
}
