package repository

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/Manni1403/taskboard-assessment/internal/adapter/database/postgres"
	"github.com/Manni1403/taskboard-assessment/internal/core/domain"
	"github.com/Manni1403/taskboard-assessment/internal/core/port"
	tel "github.com/Manni1403/taskboard-assessment/internal/core/telemetry"
)

var todoColumns = []string{"id", "uuid", "title", "description", "completed", "version", "user_id", "created_at", "updated_at"}

type TodoRepository struct {
	db        *postgres.DB
	telemetry port.Telemetry
}

func NewTodoRepository(db *postgres.DB, telemetry port.Telemetry) port.TodoRepository {
	if telemetry == nil {
		telemetry = tel.NewNoOpProbe()
	}

	return &TodoRepository{db: db, telemetry: telemetry}
}

func scanTodo(row pgx.Row) (domain.Todo, error) {
	var todo domain.Todo

	err := row.Scan(
		&todo.ID,
		&todo.UUID,
		&todo.Title,
		&todo.Description,
		&todo.Completed,
		&todo.Version,
		&todo.UserId,
		&todo.CreatedAt,
		&todo.UpdatedAt,
	)

	return todo, err
}

func returningSuffix() string {
	return "RETURNING " + strings.Join(todoColumns, ", ")
}

func (tr *TodoRepository) Create(ctx context.Context, todo domain.Todo) (domain.Todo, error) {
	start := time.Now()

	query := tr.db.QueryBuilder.Insert("todos").
		Columns("uuid", "title", "description", "completed", "version", "user_id", "created_at", "updated_at").
		Values(todo.UUID, todo.Title, todo.Description, todo.Completed, todo.Version, todo.UserId, todo.CreatedAt, todo.UpdatedAt).
		Suffix(returningSuffix())

	stmt, args, err := query.ToSql()

	if err != nil {
		return domain.Todo{}, err
	}

	saved, err := scanTodo(tr.db.QueryRow(ctx, stmt, args...))
	tr.telemetry.RecordRepositoryOperation(ctx, "INSERT", "todos", time.Since(start), err)

	if err != nil {
		slog.Error("Error creating todo", "error", err)
		return domain.Todo{}, err
	}

	return saved, nil
}

func (tr *TodoRepository) BulkCreate(ctx context.Context, todos []domain.Todo) ([]domain.Todo, error) {
	start := time.Now()

	tx, err := tr.db.Begin(ctx)

	if err != nil {
		return nil, err
	}

	defer tx.Rollback(ctx)

	created := make([]domain.Todo, 0, len(todos))

	for _, todo := range todos {
		query := tr.db.QueryBuilder.Insert("todos").
			Columns("uuid", "title", "description", "completed", "version", "user_id", "created_at", "updated_at").
			Values(todo.UUID, todo.Title, todo.Description, todo.Completed, todo.Version, todo.UserId, todo.CreatedAt, todo.UpdatedAt).
			Suffix(returningSuffix())

		stmt, args, err := query.ToSql()

		if err != nil {
			return nil, err
		}

		saved, err := scanTodo(tx.QueryRow(ctx, stmt, args...))

		if err != nil {
			tr.telemetry.RecordRepositoryOperation(ctx, "BULK_INSERT", "todos", time.Since(start), err)
			slog.Error("Error bulk creating todos", "error", err)

			return nil, err
		}

		created = append(created, saved)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	tr.telemetry.RecordRepositoryOperation(ctx, "BULK_INSERT", "todos", time.Since(start), nil)

	return created, nil
}

func (tr *TodoRepository) GetByUUID(ctx context.Context, uid string) (domain.Todo, error) {
	query := tr.db.QueryBuilder.Select(todoColumns...).
		From("todos").
		Where(sq.Eq{"uuid": uid}).
		Limit(1)

	stmt, args, err := query.ToSql()

	if err != nil {
		return domain.Todo{}, err
	}

	todo, err := scanTodo(tr.db.QueryRow(ctx, stmt, args...))

	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Todo{}, domain.ErrTodoNotFound
	}

	if err != nil {
		slog.Error("Error getting todo by uuid", "error", err)
		return domain.Todo{}, err
	}

	return todo, nil
}

func (tr *TodoRepository) GetAllByOwner(ctx context.Context, userId int, filter domain.TodoFilter) ([]domain.Todo, error) {
	query := tr.db.QueryBuilder.Select(todoColumns...).
		From("todos").
		Where(sq.Eq{"user_id": userId}).
		OrderBy("updated_at DESC", "id DESC")

	switch filter {
	case domain.TodoFilterCompleted:
		query = query.Where(sq.Eq{"completed": true})
	case domain.TodoFilterPending:
		query = query.Where(sq.Eq{"completed": false})
	}

	stmt, args, err := query.ToSql()

	if err != nil {
		return nil, err
	}

	rows, err := tr.db.Query(ctx, stmt, args...)

	if err != nil {
		slog.Error("Error fetching todos", "error", err)
		return nil, err
	}

	defer rows.Close()

	data := []domain.Todo{}

	for rows.Next() {
		todo, err := scanTodo(rows)

		if err != nil {
			return nil, err
		}

		data = append(data, todo)
	}

	return data, rows.Err()
}

func (tr *TodoRepository) GetOwnedByUUIDs(ctx context.Context, userId int, uids []string) ([]domain.Todo, error) {
	// Malformed ids would fail the UUID cast in postgres, and they must
	// surface as not-found rather than as a query error.
	valid := make([]string, 0, len(uids))

	for _, uid := range uids {
		if _, err := uuid.Parse(uid); err == nil {
			valid = append(valid, uid)
		}
	}

	if len(valid) == 0 {
		return []domain.Todo{}, nil
	}

	query := tr.db.QueryBuilder.Select(todoColumns...).
		From("todos").
		Where(sq.Eq{"uuid": valid}).
		Where(sq.Eq{"user_id": userId})

	stmt, args, err := query.ToSql()

	if err != nil {
		return nil, err
	}

	rows, err := tr.db.Query(ctx, stmt, args...)

	if err != nil {
		return nil, err
	}

	defer rows.Close()

	data := []domain.Todo{}

	for rows.Next() {
		todo, err := scanTodo(rows)

		if err != nil {
			return nil, err
		}

		data = append(data, todo)
	}

	return data, rows.Err()
}

// UpdateWithVersion matches both uuid and the expected version in a single
// conditional UPDATE, so a stale writer loses instead of overwriting.
func (tr *TodoRepository) UpdateWithVersion(ctx context.Context, todo domain.Todo, expectedVersion int) (domain.Todo, error) {
	start := time.Now()

	query := tr.db.QueryBuilder.Update("todos").
		SetMap(map[string]interface{}{
			"title":       todo.Title,
			"description": todo.Description,
			"completed":   todo.Completed,
			"version":     todo.Version,
			"updated_at":  todo.UpdatedAt,
		}).
		Where(sq.Eq{"uuid": todo.UUID}).
		Where(sq.Eq{"version": expectedVersion}).
		Suffix(returningSuffix())

	stmt, args, err := query.ToSql()

	if err != nil {
		return domain.Todo{}, err
	}

	updated, err := scanTodo(tr.db.QueryRow(ctx, stmt, args...))
	tr.telemetry.RecordRepositoryOperation(ctx, "UPDATE", "todos", time.Since(start), err)

	if errors.Is(err, pgx.ErrNoRows) {
		if _, err := tr.GetByUUID(ctx, todo.UUID.String()); err != nil {
			return domain.Todo{}, err
		}

		return domain.Todo{}, domain.ErrVersionConflict
	}

	if err != nil {
		slog.Error("Error updating todo", "error", err)
		return domain.Todo{}, err
	}

	return updated, nil
}

func (tr *TodoRepository) DeleteByUUID(ctx context.Context, uid string) error {
	query := tr.db.QueryBuilder.Delete("todos").
		Where(sq.Eq{"uuid": uid})

	stmt, args, err := query.ToSql()

	if err != nil {
		return err
	}

	tag, err := tr.db.Exec(ctx, stmt, args...)

	if err != nil {
		slog.Error("Error deleting todo", "error", err)
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrTodoNotFound
	}

	return nil
}

func (tr *TodoRepository) DeleteManyByUUIDs(ctx context.Context, uids []string) (int64, error) {
	start := time.Now()

	query := tr.db.QueryBuilder.Delete("todos").
		Where(sq.Eq{"uuid": uids})

	stmt, args, err := query.ToSql()

	if err != nil {
		return 0, err
	}

	tag, err := tr.db.Exec(ctx, stmt, args...)
	tr.telemetry.RecordRepositoryOperation(ctx, "BULK_DELETE", "todos", time.Since(start), err)

	if err != nil {
		slog.Error("Error bulk deleting todos", "error", err)
		return 0, err
	}

	return tag.RowsAffected(), nil
}
