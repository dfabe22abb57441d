package domain_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/Manni1403/taskboard-assessment/internal/core/domain"
)

func TestBelongsToUser(t *testing.T) {
	todo := domain.Todo{UUID: uuid.New(), UserId: 7}

	assert.True(t, todo.BelongsToUser(7))
	assert.False(t, todo.BelongsToUser(8))
}

func TestToMap(t *testing.T) {
	todo := domain.Todo{
		ID:      1,
		UUID:    uuid.New(),
		Title:   "Mapped",
		Version: 3,
		UserId:  7,
	}

	m := todo.ToMap()

	assert.Equal(t, "Mapped", m["title"])
	assert.Equal(t, 3, m["version"])
	assert.Equal(t, 7, m["user_id"])
	assert.Nil(t, m["description"])
}
