package repository

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/Manni1403/taskboard-assessment/internal/adapter/database/sqlite"
	"github.com/Manni1403/taskboard-assessment/internal/core/domain"
	"github.com/Manni1403/taskboard-assessment/internal/core/port"
	tel "github.com/Manni1403/taskboard-assessment/internal/core/telemetry"
)

var todoColumns = []string{"id", "uuid", "title", "description", "completed", "version", "user_id", "created_at", "updated_at"}

type TodoRepository struct {
	db        *sqlite.DB
	telemetry port.Telemetry
}

func NewTodoRepository(db *sqlite.DB, telemetry port.Telemetry) port.TodoRepository {
	if telemetry == nil {
		telemetry = tel.NewNoOpProbe()
	}

	return &TodoRepository{db: db, telemetry: telemetry}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTodo(row rowScanner) (domain.Todo, error) {
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

func (tr *TodoRepository) Create(ctx context.Context, todo domain.Todo) (domain.Todo, error) {
	start := time.Now()

	query := tr.db.QueryBuilder.Insert("todos").
		Columns("uuid", "title", "description", "completed", "version", "user_id", "created_at", "updated_at").
		Values(todo.UUID.String(), todo.Title, todo.Description, todo.Completed, todo.Version, todo.UserId, todo.CreatedAt, todo.UpdatedAt)

	stmt, args, err := query.ToSql()

	if err != nil {
		return domain.Todo{}, err
	}

	_, err = tr.db.ExecContext(ctx, stmt, args...)
	tr.telemetry.RecordRepositoryOperation(ctx, "INSERT", "todos", time.Since(start), err)

	if err != nil {
		slog.Error("Error creating todo", "error", err)
		return domain.Todo{}, err
	}

	return tr.GetByUUID(ctx, todo.UUID.String())
}

func (tr *TodoRepository) createTx(ctx context.Context, tx *sql.Tx, todo domain.Todo) (domain.Todo, error) {
	query := tr.db.QueryBuilder.Insert("todos").
		Columns("uuid", "title", "description", "completed", "version", "user_id", "created_at", "updated_at").
		Values(todo.UUID.String(), todo.Title, todo.Description, todo.Completed, todo.Version, todo.UserId, todo.CreatedAt, todo.UpdatedAt)

	stmt, args, err := query.ToSql()

	if err != nil {
		return domain.Todo{}, err
	}

	if _, err = tx.ExecContext(ctx, stmt, args...); err != nil {
		return domain.Todo{}, err
	}

	selectQuery := tr.db.QueryBuilder.Select(todoColumns...).
		From("todos").
		Where(sq.Eq{"uuid": todo.UUID.String()}).
		Limit(1)

	stmt, args, err = selectQuery.ToSql()

	if err != nil {
		return domain.Todo{}, err
	}

	return scanTodo(tx.QueryRowContext(ctx, stmt, args...))
}

// BulkCreate inserts every todo inside a single transaction. Any failure
// rolls the whole batch back.
func (tr *TodoRepository) BulkCreate(ctx context.Context, todos []domain.Todo) ([]domain.Todo, error) {
	start := time.Now()

	tx, err := tr.db.BeginTx(ctx, nil)

	if err != nil {
		return nil, err
	}

	defer tx.Rollback()

	created := make([]domain.Todo, 0, len(todos))

	for _, todo := range todos {
		saved, err := tr.createTx(ctx, tx, todo)

		if err != nil {
			tr.telemetry.RecordRepositoryOperation(ctx, "BULK_INSERT", "todos", time.Since(start), err)
			slog.Error("Error bulk creating todos", "error", err)

			return nil, err
		}

		created = append(created, saved)
	}

	if err := tx.Commit(); err != nil {
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

	todo, err := scanTodo(tr.db.QueryRowContext(ctx, stmt, args...))

	if errors.Is(err, sql.ErrNoRows) {
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

	rows, err := tr.db.QueryContext(ctx, stmt, args...)

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
	query := tr.db.QueryBuilder.Select(todoColumns...).
		From("todos").
		Where(sq.Eq{"uuid": uids}).
		Where(sq.Eq{"user_id": userId})

	stmt, args, err := query.ToSql()

	if err != nil {
		return nil, err
	}

	rows, err := tr.db.QueryContext(ctx, stmt, args...)

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

// UpdateWithVersion is the optimistic-locking write: the UPDATE matches both
// uuid and the expected version, so two writers racing from the same read can
// never both succeed.
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
		Where(sq.Eq{"uuid": todo.UUID.String()}).
		Where(sq.Eq{"version": expectedVersion})

	stmt, args, err := query.ToSql()

	if err != nil {
		return domain.Todo{}, err
	}

	result, err := tr.db.ExecContext(ctx, stmt, args...)
	tr.telemetry.RecordRepositoryOperation(ctx, "UPDATE", "todos", time.Since(start), err)

	if err != nil {
		slog.Error("Error updating todo", "error", err)
		return domain.Todo{}, err
	}

	rowsAffected, _ := result.RowsAffected()

	if rowsAffected == 0 {
		// Either the row is gone or it moved to another version.
		if _, err := tr.GetByUUID(ctx, todo.UUID.String()); err != nil {
			return domain.Todo{}, err
		}

		return domain.Todo{}, domain.ErrVersionConflict
	}

	return tr.GetByUUID(ctx, todo.UUID.String())
}

func (tr *TodoRepository) DeleteByUUID(ctx context.Context, uid string) error {
	query := tr.db.QueryBuilder.Delete("todos").
		Where(sq.Eq{"uuid": uid})

	stmt, args, err := query.ToSql()

	if err != nil {
		return err
	}

	result, err := tr.db.ExecContext(ctx, stmt, args...)

	if err != nil {
		slog.Error("Error deleting todo", "error", err)
		return err
	}

	rowsAffected, _ := result.RowsAffected()

	if rowsAffected == 0 {
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

	result, err := tr.db.ExecContext(ctx, stmt, args...)
	tr.telemetry.RecordRepositoryOperation(ctx, "BULK_DELETE", "todos", time.Since(start), err)

	if err != nil {
		slog.Error("Error bulk deleting todos", "error", err)
		return 0, err
	}

	return result.RowsAffected()
}
