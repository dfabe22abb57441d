package port

import (
	"context"

	"github.com/Manni1403/taskboard-assessment/internal/core/domain"
	"github.com/Manni1403/taskboard-assessment/internal/core/model/request"
)

// BulkDeleteResult partitions a bulk-delete request into the ids actually
// removed and the ids that were not removed (nonexistent or not owned).
type BulkDeleteResult struct {
	Deleted  []string
	NotFound []string
}

type TodoRepository interface {
	Create(ctx context.Context, todo domain.Todo) (domain.Todo, error)

	// BulkCreate inserts all todos inside one transaction. Either every row
	// is persisted or none are.
	BulkCreate(ctx context.Context, todos []domain.Todo) ([]domain.Todo, error)

	// GetByUUID returns domain.ErrTodoNotFound when no row matches.
	GetByUUID(ctx context.Context, uid string) (domain.Todo, error)

	GetAllByOwner(ctx context.Context, userId int, filter domain.TodoFilter) ([]domain.Todo, error)
	GetOwnedByUUIDs(ctx context.Context, userId int, uids []string) ([]domain.Todo, error)

	// UpdateWithVersion performs a conditional write matching both uuid and
	// expectedVersion, bumping version by one. It returns
	// domain.ErrVersionConflict when the row exists at a different version
	// and domain.ErrTodoNotFound when the row is gone.
	UpdateWithVersion(ctx context.Context, todo domain.Todo, expectedVersion int) (domain.Todo, error)

	DeleteByUUID(ctx context.Context, uid string) error
	DeleteManyByUUIDs(ctx context.Context, uids []string) (int64, error)
}

type TodoService interface {
	Create(ctx context.Context, userId int, req request.CreateTodoRequest) (domain.Todo, error)
	List(ctx context.Context, userId int, filter domain.TodoFilter) ([]domain.Todo, error)
	Get(ctx context.Context, userId int, uid string) (domain.Todo, error)
	Update(ctx context.Context, userId int, uid string, req request.UpdateTodoRequest) (domain.Todo, error)
	Remove(ctx context.Context, userId int, uid string) error
	BulkCreate(ctx context.Context, userId int, items []request.CreateTodoRequest) ([]domain.Todo, error)
	BulkDelete(ctx context.Context, userId int, uids []string) (BulkDeleteResult, error)
}
