package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/Manni1403/taskboard-assessment/internal/core/domain"
	"github.com/Manni1403/taskboard-assessment/internal/core/model/request"
	"github.com/Manni1403/taskboard-assessment/internal/core/port"
	tel "github.com/Manni1403/taskboard-assessment/internal/core/telemetry"
	"github.com/Manni1403/taskboard-assessment/internal/core/util"
)

type TodoService struct {
	repo      port.TodoRepository
	telemetry port.Telemetry
}

func NewTodoService(repo port.TodoRepository, telemetry port.Telemetry) *TodoService {
	if telemetry == nil {
		telemetry = tel.NewNoOpProbe()
	}

	return &TodoService{repo: repo, telemetry: telemetry}
}

// normalizeTitle trims the title and enforces the non-blank and length rules.
func normalizeTitle(title string) (string, error) {
	trimmed := strings.TrimSpace(title)

	if trimmed == "" {
		return "", fmt.Errorf("title cannot be empty: %w", domain.ErrInvalidInput)
	}

	if utf8.RuneCountInString(trimmed) > domain.TitleMaxLength {
		return "", fmt.Errorf("title must not exceed %d characters: %w", domain.TitleMaxLength, domain.ErrInvalidInput)
	}

	return trimmed, nil
}

func (ts *TodoService) Create(ctx context.Context, userId int, req request.CreateTodoRequest) (domain.Todo, error) {
	ctx, span := ts.telemetry.StartServiceSpan(ctx, "todo", "Create", userId)
	defer span.End()

	title, err := normalizeTitle(req.Title)

	if err != nil {
		return domain.Todo{}, err
	}

	now := time.Now()

	newTodo := domain.Todo{
		UUID:        uuid.New(),
		Title:       title,
		Description: util.SanitizeDescription(req.Description),
		Completed:   false,
		Version:     1,
		UserId:      userId,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	todo, err := ts.repo.Create(ctx, newTodo)

	if err != nil {
		span.RecordError(err)
		slog.Error("Repository create failed", "error", err, "title", newTodo.Title)

		return domain.Todo{}, err
	}

	ts.telemetry.RecordBusinessEvent(ctx, "todo.created", "todo", todo.UUID.String(), userId)

	return todo, nil
}

func (ts *TodoService) List(ctx context.Context, userId int, filter domain.TodoFilter) ([]domain.Todo, error) {
	return ts.repo.GetAllByOwner(ctx, userId, filter)
}

// Get checks existence before ownership, so a non-owner probing a
// nonexistent id gets not-found rather than forbidden.
func (ts *TodoService) Get(ctx context.Context, userId int, uid string) (domain.Todo, error) {
	todo, err := ts.repo.GetByUUID(ctx, uid)

	if err != nil {
		return domain.Todo{}, err
	}

	if !todo.BelongsToUser(userId) {
		return domain.Todo{}, domain.ErrForbidden
	}

	return todo, nil
}

func (ts *TodoService) Update(ctx context.Context, userId int, uid string, req request.UpdateTodoRequest) (domain.Todo, error) {
	if req.Version == nil {
		return domain.Todo{}, fmt.Errorf("version is required for optimistic locking: %w", domain.ErrInvalidInput)
	}

	// Supplied fields are validated and sanitized before the row is even
	// looked up, so a bad payload reads as invalid input regardless of
	// whether the id exists or who owns it.
	var newTitle *string

	if req.Title != nil {
		title, err := normalizeTitle(*req.Title)

		if err != nil {
			return domain.Todo{}, err
		}

		newTitle = &title
	}

	var newDescription *string

	if req.Description != nil {
		newDescription = util.SanitizeDescription(req.Description)
	}

	existing, err := ts.Get(ctx, userId, uid)

	if err != nil {
		return domain.Todo{}, err
	}

	updated := existing

	if newTitle != nil {
		updated.Title = *newTitle
	}

	if req.Description != nil {
		updated.Description = newDescription
	}

	if req.Completed != nil {
		updated.Completed = *req.Completed
	}

	if existing.Version != *req.Version {
		return domain.Todo{}, domain.ErrVersionConflict
	}

	updated.Version = existing.Version + 1
	updated.UpdatedAt = time.Now()

	// The write itself is conditional on uuid AND version at the store, so a
	// writer that raced past the check above still loses instead of silently
	// overwriting.
	todo, err := ts.repo.UpdateWithVersion(ctx, updated, existing.Version)

	if err != nil {
		return domain.Todo{}, err
	}

	ts.telemetry.RecordBusinessEvent(ctx, "todo.updated", "todo", todo.UUID.String(), userId)

	return todo, nil
}

// Remove deletes permanently. No version check: there is nothing left to
// conflict with after a delete.
func (ts *TodoService) Remove(ctx context.Context, userId int, uid string) error {
	if _, err := ts.Get(ctx, userId, uid); err != nil {
		return err
	}

	return ts.repo.DeleteByUUID(ctx, uid)
}

func (ts *TodoService) BulkCreate(ctx context.Context, userId int, items []request.CreateTodoRequest) ([]domain.Todo, error) {
	ctx, span := ts.telemetry.StartServiceSpan(ctx, "todo", "BulkCreate", userId)
	defer span.End()

	if len(items) == 0 {
		return nil, fmt.Errorf("at least one todo is required: %w", domain.ErrInvalidInput)
	}

	// Validate every item before touching the store. One bad item fails the
	// whole call with its index and nothing is persisted.
	titles := make([]string, len(items))

	for i, item := range items {
		title, err := normalizeTitle(item.Title)

		if err != nil {
			return nil, fmt.Errorf("todo at index %d: %w", i, err)
		}

		titles[i] = title
	}

	now := time.Now()
	todos := make([]domain.Todo, 0, len(items))

	for i, item := range items {
		todos = append(todos, domain.Todo{
			UUID:        uuid.New(),
			Title:       titles[i],
			Description: util.SanitizeDescription(item.Description),
			Completed:   false,
			Version:     1,
			UserId:      userId,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
	}

	created, err := ts.repo.BulkCreate(ctx, todos)

	if err != nil {
		span.RecordError(err)
		slog.Error("Bulk create failed", "error", err, "count", len(todos))

		return nil, err
	}

	span.SetAttributes(map[string]interface{}{"todo.count": len(created)})

	return created, nil
}

func (ts *TodoService) BulkDelete(ctx context.Context, userId int, uids []string) (port.BulkDeleteResult, error) {
	ctx, span := ts.telemetry.StartServiceSpan(ctx, "todo", "BulkDelete", userId)
	defer span.End()

	if len(uids) == 0 {
		return port.BulkDeleteResult{}, fmt.Errorf("at least one id is required: %w", domain.ErrInvalidInput)
	}

	owned, err := ts.repo.GetOwnedByUUIDs(ctx, userId, uids)

	if err != nil {
		span.RecordError(err)
		return port.BulkDeleteResult{}, err
	}

	ownedSet := make(map[string]bool, len(owned))
	deleted := make([]string, 0, len(owned))

	for _, todo := range owned {
		uid := todo.UUID.String()

		if !ownedSet[uid] {
			ownedSet[uid] = true
			deleted = append(deleted, uid)
		}
	}

	// Nonexistent ids, other users' ids and malformed ids all land in
	// notFound. The result never reveals which, and never raises forbidden.
	notFound := make([]string, 0)
	seen := make(map[string]bool, len(uids))

	for _, uid := range uids {
		if seen[uid] {
			continue
		}

		seen[uid] = true

		if !ownedSet[uid] {
			notFound = append(notFound, uid)
		}
	}

	if len(deleted) > 0 {
		if _, err := ts.repo.DeleteManyByUUIDs(ctx, deleted); err != nil {
			span.RecordError(err)
			return port.BulkDeleteResult{}, err
		}
	}

	span.SetAttributes(map[string]interface{}{
		"todo.deleted":   len(deleted),
		"todo.not_found": len(notFound),
	})

	return port.BulkDeleteResult{Deleted: deleted, NotFound: notFound}, nil
}
