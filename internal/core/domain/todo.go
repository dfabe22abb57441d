package domain

import (
	"time"

	"github.com/google/uuid"
)

// TodoFilter narrows list results by completion state.
type TodoFilter string

const (
	TodoFilterAll       TodoFilter = "all"
	TodoFilterCompleted TodoFilter = "completed"
	TodoFilterPending   TodoFilter = "pending"
)

// TitleMaxLength is the storage limit for todo titles.
const TitleMaxLength = 250

type Todo struct {
	ID          int
	UUID        uuid.UUID
	Title       string `validate:"required,max=250"`
	Description *string
	Completed   bool `validate:"boolean"`
	Version     int
	UserId      int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (t *Todo) BelongsToUser(userID int) bool {
	return t.UserId == userID
}

func (t *Todo) ToMap() map[string]interface{} {
	return map[string]interface{}{
		"id":          t.ID,
		"uuid":        t.UUID,
		"title":       t.Title,
		"description": t.Description,
		"completed":   t.Completed,
		"version":     t.Version,
		"user_id":     t.UserId,
		"created_at":  t.CreatedAt,
		"updated_at":  t.UpdatedAt,
	}
}
