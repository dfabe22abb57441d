package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/suite"

	"github.com/Manni1403/taskboard-assessment/internal/adapter/database/sqlite/repository"
	"github.com/Manni1403/taskboard-assessment/internal/core/domain"
	"github.com/Manni1403/taskboard-assessment/internal/core/port"
	"github.com/Manni1403/taskboard-assessment/pkg/test"
)

type TodoRepositoryTestSuite struct {
	suite.Suite
	TodoRepo port.TodoRepository
	UserRepo port.UserRepository

	user domain.User
}

func (s *TodoRepositoryTestSuite) SetupTest() {
	db := test.InitTestDatabase()

	s.TodoRepo = repository.NewTodoRepository(db, nil)
	s.UserRepo = repository.NewUserRepository(db)

	user, err := s.UserRepo.Create(context.Background(), domain.User{
		UUID:              uuid.New(),
		Name:              "Repo User",
		Email:             "repo@example.com",
		EncryptedPassword: "irrelevant",
	})
	Expect(err).To(BeNil())

	s.user = user
}

func TestTodoRepositoryTestSuite(t *testing.T) {
	RegisterTestingT(t)

	suite.Run(t, new(TodoRepositoryTestSuite))
}

func (s *TodoRepositoryTestSuite) newTodo(title string) domain.Todo {
	now := time.Now().UTC()

	return domain.Todo{
		UUID:      uuid.New(),
		Title:     title,
		Version:   1,
		UserId:    s.user.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (s *TodoRepositoryTestSuite) TestCreateAndGetByUUID() {
	todo := s.newTodo("Persisted")

	created, err := s.TodoRepo.Create(context.Background(), todo)
	Expect(err).To(BeNil())
	Expect(created.ID).To(BeNumerically(">", 0))
	Expect(created.UUID).To(Equal(todo.UUID))

	found, err := s.TodoRepo.GetByUUID(context.Background(), todo.UUID.String())
	Expect(err).To(BeNil())
	Expect(found.Title).To(Equal("Persisted"))
	Expect(found.Version).To(Equal(1))
}

func (s *TodoRepositoryTestSuite) TestGetByUUID_Missing() {
	_, err := s.TodoRepo.GetByUUID(context.Background(), uuid.NewString())

	Expect(errors.Is(err, domain.ErrTodoNotFound)).To(BeTrue())
}

func (s *TodoRepositoryTestSuite) TestUpdateWithVersion_MatchingVersionWins() {
	created, err := s.TodoRepo.Create(context.Background(), s.newTodo("Original"))
	Expect(err).To(BeNil())

	created.Title = "Changed"
	created.Version = 2

	updated, err := s.TodoRepo.UpdateWithVersion(context.Background(), created, 1)
	Expect(err).To(BeNil())
	Expect(updated.Title).To(Equal("Changed"))
	Expect(updated.Version).To(Equal(2))
}

func (s *TodoRepositoryTestSuite) TestUpdateWithVersion_StaleVersionConflicts() {
	created, err := s.TodoRepo.Create(context.Background(), s.newTodo("Contended"))
	Expect(err).To(BeNil())

	created.Version = 2
	_, err = s.TodoRepo.UpdateWithVersion(context.Background(), created, 1)
	Expect(err).To(BeNil())

	// Second writer still holds version 1.
	created.Title = "Late write"
	created.Version = 2

	_, err = s.TodoRepo.UpdateWithVersion(context.Background(), created, 1)
	Expect(errors.Is(err, domain.ErrVersionConflict)).To(BeTrue())
}

func (s *TodoRepositoryTestSuite) TestUpdateWithVersion_MissingRowIsNotFound() {
	ghost := s.newTodo("Ghost")
	ghost.Version = 2

	_, err := s.TodoRepo.UpdateWithVersion(context.Background(), ghost, 1)

	Expect(errors.Is(err, domain.ErrTodoNotFound)).To(BeTrue())
}

func (s *TodoRepositoryTestSuite) TestBulkCreate_RollsBackOnFailure() {
	ctx := context.Background()

	duplicate := uuid.New()

	first := s.newTodo("First")
	first.UUID = duplicate

	second := s.newTodo("Second")
	second.UUID = duplicate // violates the unique index

	_, err := s.TodoRepo.BulkCreate(ctx, []domain.Todo{first, second})
	Expect(err).NotTo(BeNil())

	// Nothing from the batch may survive.
	todos, err := s.TodoRepo.GetAllByOwner(ctx, s.user.ID, domain.TodoFilterAll)
	Expect(err).To(BeNil())
	Expect(todos).To(BeEmpty())
}

func (s *TodoRepositoryTestSuite) TestGetAllByOwner_MostRecentlyUpdatedFirst() {
	ctx := context.Background()

	older := s.newTodo("Older")
	older.UpdatedAt = time.Now().UTC().Add(-time.Hour)
	older.CreatedAt = older.UpdatedAt

	newer := s.newTodo("Newer")

	_, err := s.TodoRepo.Create(ctx, older)
	Expect(err).To(BeNil())
	_, err = s.TodoRepo.Create(ctx, newer)
	Expect(err).To(BeNil())

	todos, err := s.TodoRepo.GetAllByOwner(ctx, s.user.ID, domain.TodoFilterAll)
	Expect(err).To(BeNil())
	Expect(todos).To(HaveLen(2))
	Expect(todos[0].Title).To(Equal("Newer"))
	Expect(todos[1].Title).To(Equal("Older"))
}

func (s *TodoRepositoryTestSuite) TestGetOwnedByUUIDs_IgnoresForeignAndUnknown() {
	ctx := context.Background()

	other, err := s.UserRepo.Create(ctx, domain.User{
		UUID:              uuid.New(),
		Email:             "other@example.com",
		EncryptedPassword: "irrelevant",
	})
	Expect(err).To(BeNil())

	mine, err := s.TodoRepo.Create(ctx, s.newTodo("Mine"))
	Expect(err).To(BeNil())

	foreign := s.newTodo("Foreign")
	foreign.UserId = other.ID
	created, err := s.TodoRepo.Create(ctx, foreign)
	Expect(err).To(BeNil())

	owned, err := s.TodoRepo.GetOwnedByUUIDs(ctx, s.user.ID, []string{
		mine.UUID.String(),
		created.UUID.String(),
		uuid.NewString(),
		"garbage",
	})

	Expect(err).To(BeNil())
	Expect(owned).To(HaveLen(1))
	Expect(owned[0].UUID).To(Equal(mine.UUID))
}

func (s *TodoRepositoryTestSuite) TestDeleteByUUID() {
	created, err := s.TodoRepo.Create(context.Background(), s.newTodo("Doomed"))
	Expect(err).To(BeNil())

	Expect(s.TodoRepo.DeleteByUUID(context.Background(), created.UUID.String())).To(Succeed())

	err = s.TodoRepo.DeleteByUUID(context.Background(), created.UUID.String())
	Expect(errors.Is(err, domain.ErrTodoNotFound)).To(BeTrue())
}

func (s *TodoRepositoryTestSuite) TestDeleteManyByUUIDs() {
	ctx := context.Background()

	a, err := s.TodoRepo.Create(ctx, s.newTodo("A"))
	Expect(err).To(BeNil())
	b, err := s.TodoRepo.Create(ctx, s.newTodo("B"))
	Expect(err).To(BeNil())

	affected, err := s.TodoRepo.DeleteManyByUUIDs(ctx, []string{a.UUID.String(), b.UUID.String(), uuid.NewString()})
	Expect(err).To(BeNil())
	Expect(affected).To(Equal(int64(2)))

	todos, err := s.TodoRepo.GetAllByOwner(ctx, s.user.ID, domain.TodoFilterAll)
	Expect(err).To(BeNil())
	Expect(todos).To(BeEmpty())
}
