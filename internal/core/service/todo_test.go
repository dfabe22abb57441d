package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/suite"

	"github.com/Manni1403/taskboard-assessment/internal/adapter/database/sqlite/repository"
	"github.com/Manni1403/taskboard-assessment/internal/core/domain"
	"github.com/Manni1403/taskboard-assessment/internal/core/model/request"
	"github.com/Manni1403/taskboard-assessment/internal/core/port"
	"github.com/Manni1403/taskboard-assessment/internal/core/service"
	"github.com/Manni1403/taskboard-assessment/pkg/test"
)

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }
func intPtr(i int) *int       { return &i }

type TodoServiceTestSuite struct {
	suite.Suite
	Service  port.TodoService
	UserRepo port.UserRepository
	TodoRepo port.TodoRepository

	owner    domain.User
	stranger domain.User
}

func (s *TodoServiceTestSuite) SetupTest() {
	db := test.InitTestDatabase()

	s.TodoRepo = repository.NewTodoRepository(db, nil)
	s.UserRepo = repository.NewUserRepository(db)
	s.Service = service.NewTodoService(s.TodoRepo, nil)

	s.owner = s.createUser("owner@example.com")
	s.stranger = s.createUser("stranger@example.com")
}

func (s *TodoServiceTestSuite) createUser(email string) domain.User {
	user, err := s.UserRepo.Create(context.Background(), domain.User{
		UUID:              uuid.New(),
		Name:              "Test User",
		Email:             email,
		EncryptedPassword: "irrelevant",
	})
	Expect(err).To(BeNil())

	return user
}

func TestTodoServiceTestSuite(t *testing.T) {
	RegisterTestingT(t)

	suite.Run(t, new(TodoServiceTestSuite))
}

func (s *TodoServiceTestSuite) TestCreate_TrimsTitleAndStartsAtVersionOne() {
	todo, err := s.Service.Create(context.Background(), s.owner.ID, request.CreateTodoRequest{
		Title: "  Buy milk  ",
	})

	Expect(err).To(BeNil())
	Expect(todo.Title).To(Equal("Buy milk"))
	Expect(todo.Version).To(Equal(1))
	Expect(todo.Completed).To(BeFalse())
	Expect(todo.Description).To(BeNil())
	Expect(todo.UserId).To(Equal(s.owner.ID))
}

func (s *TodoServiceTestSuite) TestCreate_StripsMarkupFromDescription() {
	todo, err := s.Service.Create(context.Background(), s.owner.ID, request.CreateTodoRequest{
		Title:       "Sanitized",
		Description: strPtr("<script>alert(1)</script>Hi"),
	})

	Expect(err).To(BeNil())
	Expect(todo.Description).NotTo(BeNil())
	Expect(*todo.Description).To(Equal("Hi"))
}

func (s *TodoServiceTestSuite) TestCreate_DescriptionReducedToNothingBecomesAbsent() {
	todo, err := s.Service.Create(context.Background(), s.owner.ID, request.CreateTodoRequest{
		Title:       "Markup only",
		Description: strPtr("<b></b>"),
	})

	Expect(err).To(BeNil())
	Expect(todo.Description).To(BeNil())
}

func (s *TodoServiceTestSuite) TestCreate_BlankTitleRejected() {
	_, err := s.Service.Create(context.Background(), s.owner.ID, request.CreateTodoRequest{
		Title: "   ",
	})

	Expect(errors.Is(err, domain.ErrInvalidInput)).To(BeTrue())
}

func (s *TodoServiceTestSuite) TestCreate_TitleAtLimitAccepted() {
	todo, err := s.Service.Create(context.Background(), s.owner.ID, request.CreateTodoRequest{
		Title: strings.Repeat("a", 250),
	})

	Expect(err).To(BeNil())
	Expect(len(todo.Title)).To(Equal(250))
}

func (s *TodoServiceTestSuite) TestCreate_TitleOverLimitRejected() {
	_, err := s.Service.Create(context.Background(), s.owner.ID, request.CreateTodoRequest{
		Title: strings.Repeat("a", 251),
	})

	Expect(errors.Is(err, domain.ErrInvalidInput)).To(BeTrue())
}

func (s *TodoServiceTestSuite) TestGet_UnknownIdIsNotFound() {
	_, err := s.Service.Get(context.Background(), s.owner.ID, uuid.NewString())

	Expect(errors.Is(err, domain.ErrTodoNotFound)).To(BeTrue())
}

func (s *TodoServiceTestSuite) TestGet_ForeignTodoIsForbidden() {
	todo, err := s.Service.Create(context.Background(), s.owner.ID, request.CreateTodoRequest{Title: "Mine"})
	Expect(err).To(BeNil())

	_, err = s.Service.Get(context.Background(), s.stranger.ID, todo.UUID.String())

	Expect(errors.Is(err, domain.ErrForbidden)).To(BeTrue())
}

func (s *TodoServiceTestSuite) TestGet_NonexistentIdNeverLeaksForbidden() {
	// A stranger probing a random id must see not-found, not forbidden.
	_, err := s.Service.Get(context.Background(), s.stranger.ID, uuid.NewString())

	Expect(errors.Is(err, domain.ErrTodoNotFound)).To(BeTrue())
}

func (s *TodoServiceTestSuite) TestUpdate_BumpsVersionByOne() {
	todo, err := s.Service.Create(context.Background(), s.owner.ID, request.CreateTodoRequest{Title: "Draft"})
	Expect(err).To(BeNil())

	updated, err := s.Service.Update(context.Background(), s.owner.ID, todo.UUID.String(), request.UpdateTodoRequest{
		Title:   strPtr("Final"),
		Version: intPtr(1),
	})

	Expect(err).To(BeNil())
	Expect(updated.Title).To(Equal("Final"))
	Expect(updated.Version).To(Equal(2))
}

func (s *TodoServiceTestSuite) TestUpdate_PartialUpdateKeepsOtherFields() {
	todo, err := s.Service.Create(context.Background(), s.owner.ID, request.CreateTodoRequest{
		Title:       "Keep me",
		Description: strPtr("still here"),
	})
	Expect(err).To(BeNil())

	updated, err := s.Service.Update(context.Background(), s.owner.ID, todo.UUID.String(), request.UpdateTodoRequest{
		Completed: boolPtr(true),
		Version:   intPtr(1),
	})

	Expect(err).To(BeNil())
	Expect(updated.Title).To(Equal("Keep me"))
	Expect(*updated.Description).To(Equal("still here"))
	Expect(updated.Completed).To(BeTrue())
}

func (s *TodoServiceTestSuite) TestUpdate_StaleVersionConflicts() {
	todo, err := s.Service.Create(context.Background(), s.owner.ID, request.CreateTodoRequest{Title: "Contended"})
	Expect(err).To(BeNil())

	_, err = s.Service.Update(context.Background(), s.owner.ID, todo.UUID.String(), request.UpdateTodoRequest{
		Title:   strPtr("First writer"),
		Version: intPtr(1),
	})
	Expect(err).To(BeNil())

	_, err = s.Service.Update(context.Background(), s.owner.ID, todo.UUID.String(), request.UpdateTodoRequest{
		Title:   strPtr("Second writer"),
		Version: intPtr(1),
	})

	Expect(errors.Is(err, domain.ErrVersionConflict)).To(BeTrue())

	// The losing write must not have touched the row.
	current, err := s.Service.Get(context.Background(), s.owner.ID, todo.UUID.String())
	Expect(err).To(BeNil())
	Expect(current.Title).To(Equal("First writer"))
	Expect(current.Version).To(Equal(2))
}

func (s *TodoServiceTestSuite) TestUpdate_MissingVersionRejected() {
	todo, err := s.Service.Create(context.Background(), s.owner.ID, request.CreateTodoRequest{Title: "Versionless"})
	Expect(err).To(BeNil())

	_, err = s.Service.Update(context.Background(), s.owner.ID, todo.UUID.String(), request.UpdateTodoRequest{
		Title: strPtr("Nope"),
	})

	Expect(errors.Is(err, domain.ErrInvalidInput)).To(BeTrue())
}

func (s *TodoServiceTestSuite) TestUpdate_BlankTitleOnMissingIdIsInvalidInput() {
	// Field validation runs before the lookup, so a bad payload never
	// turns into not-found.
	_, err := s.Service.Update(context.Background(), s.owner.ID, uuid.NewString(), request.UpdateTodoRequest{
		Title:   strPtr("   "),
		Version: intPtr(1),
	})

	Expect(errors.Is(err, domain.ErrInvalidInput)).To(BeTrue())
}

func (s *TodoServiceTestSuite) TestUpdate_BlankTitleOnForeignTodoIsInvalidInput() {
	todo, err := s.Service.Create(context.Background(), s.owner.ID, request.CreateTodoRequest{Title: "Theirs"})
	Expect(err).To(BeNil())

	_, err = s.Service.Update(context.Background(), s.stranger.ID, todo.UUID.String(), request.UpdateTodoRequest{
		Title:   strPtr("   "),
		Version: intPtr(1),
	})

	Expect(errors.Is(err, domain.ErrInvalidInput)).To(BeTrue())
}

func (s *TodoServiceTestSuite) TestUpdate_OverlongTitleOnMissingIdIsInvalidInput() {
	_, err := s.Service.Update(context.Background(), s.owner.ID, uuid.NewString(), request.UpdateTodoRequest{
		Title:   strPtr(strings.Repeat("a", 251)),
		Version: intPtr(1),
	})

	Expect(errors.Is(err, domain.ErrInvalidInput)).To(BeTrue())
}

func (s *TodoServiceTestSuite) TestUpdate_ForeignTodoIsForbidden() {
	todo, err := s.Service.Create(context.Background(), s.owner.ID, request.CreateTodoRequest{Title: "Mine"})
	Expect(err).To(BeNil())

	_, err = s.Service.Update(context.Background(), s.stranger.ID, todo.UUID.String(), request.UpdateTodoRequest{
		Title:   strPtr("Theft"),
		Version: intPtr(1),
	})

	Expect(errors.Is(err, domain.ErrForbidden)).To(BeTrue())
}

func (s *TodoServiceTestSuite) TestRemove_OwnerDeletes() {
	todo, err := s.Service.Create(context.Background(), s.owner.ID, request.CreateTodoRequest{Title: "Short lived"})
	Expect(err).To(BeNil())

	err = s.Service.Remove(context.Background(), s.owner.ID, todo.UUID.String())
	Expect(err).To(BeNil())

	_, err = s.Service.Get(context.Background(), s.owner.ID, todo.UUID.String())
	Expect(errors.Is(err, domain.ErrTodoNotFound)).To(BeTrue())
}

func (s *TodoServiceTestSuite) TestRemove_ForeignTodoIsForbidden() {
	todo, err := s.Service.Create(context.Background(), s.owner.ID, request.CreateTodoRequest{Title: "Protected"})
	Expect(err).To(BeNil())

	err = s.Service.Remove(context.Background(), s.stranger.ID, todo.UUID.String())
	Expect(errors.Is(err, domain.ErrForbidden)).To(BeTrue())

	_, err = s.Service.Get(context.Background(), s.owner.ID, todo.UUID.String())
	Expect(err).To(BeNil())
}

func (s *TodoServiceTestSuite) TestList_FiltersByCompletion() {
	ctx := context.Background()

	first, err := s.Service.Create(ctx, s.owner.ID, request.CreateTodoRequest{Title: "Done one"})
	Expect(err).To(BeNil())

	_, err = s.Service.Create(ctx, s.owner.ID, request.CreateTodoRequest{Title: "Open one"})
	Expect(err).To(BeNil())

	_, err = s.Service.Update(ctx, s.owner.ID, first.UUID.String(), request.UpdateTodoRequest{
		Completed: boolPtr(true),
		Version:   intPtr(1),
	})
	Expect(err).To(BeNil())

	completed, err := s.Service.List(ctx, s.owner.ID, domain.TodoFilterCompleted)
	Expect(err).To(BeNil())
	Expect(completed).To(HaveLen(1))
	Expect(completed[0].Title).To(Equal("Done one"))

	pending, err := s.Service.List(ctx, s.owner.ID, domain.TodoFilterPending)
	Expect(err).To(BeNil())
	Expect(pending).To(HaveLen(1))
	Expect(pending[0].Title).To(Equal("Open one"))

	all, err := s.Service.List(ctx, s.owner.ID, domain.TodoFilterAll)
	Expect(err).To(BeNil())
	Expect(all).To(HaveLen(2))
}

func (s *TodoServiceTestSuite) TestList_NeverReturnsForeignTodos() {
	ctx := context.Background()

	_, err := s.Service.Create(ctx, s.owner.ID, request.CreateTodoRequest{Title: "Private"})
	Expect(err).To(BeNil())

	todos, err := s.Service.List(ctx, s.stranger.ID, domain.TodoFilterAll)
	Expect(err).To(BeNil())
	Expect(todos).To(BeEmpty())
}

func (s *TodoServiceTestSuite) TestBulkCreate_AllItemsPersisted() {
	todos, err := s.Service.BulkCreate(context.Background(), s.owner.ID, []request.CreateTodoRequest{
		{Title: "One"},
		{Title: "Two", Description: strPtr("second")},
		{Title: "Three"},
	})

	Expect(err).To(BeNil())
	Expect(todos).To(HaveLen(3))

	for _, todo := range todos {
		Expect(todo.Version).To(Equal(1))
		Expect(todo.UserId).To(Equal(s.owner.ID))
	}
}

func (s *TodoServiceTestSuite) TestBulkCreate_OneBadItemFailsAll() {
	_, err := s.Service.BulkCreate(context.Background(), s.owner.ID, []request.CreateTodoRequest{
		{Title: "Fine"},
		{Title: "   "},
		{Title: "Also fine"},
	})

	Expect(errors.Is(err, domain.ErrInvalidInput)).To(BeTrue())
	Expect(err.Error()).To(ContainSubstring("index 1"))

	todos, listErr := s.Service.List(context.Background(), s.owner.ID, domain.TodoFilterAll)
	Expect(listErr).To(BeNil())
	Expect(todos).To(BeEmpty())
}

func (s *TodoServiceTestSuite) TestBulkCreate_EmptyListRejected() {
	_, err := s.Service.BulkCreate(context.Background(), s.owner.ID, nil)

	Expect(errors.Is(err, domain.ErrInvalidInput)).To(BeTrue())
}

func (s *TodoServiceTestSuite) TestBulkDelete_PartitionsOwnedAndUnknown() {
	ctx := context.Background()

	mine, err := s.Service.Create(ctx, s.owner.ID, request.CreateTodoRequest{Title: "Mine"})
	Expect(err).To(BeNil())

	theirs, err := s.Service.Create(ctx, s.stranger.ID, request.CreateTodoRequest{Title: "Theirs"})
	Expect(err).To(BeNil())

	missing := uuid.NewString()

	result, err := s.Service.BulkDelete(ctx, s.owner.ID, []string{
		mine.UUID.String(),
		theirs.UUID.String(),
		missing,
		"not-a-uuid",
	})

	Expect(err).To(BeNil())
	Expect(result.Deleted).To(Equal([]string{mine.UUID.String()}))
	Expect(result.NotFound).To(ConsistOf(theirs.UUID.String(), missing, "not-a-uuid"))

	// The other user's todo must survive.
	_, err = s.Service.Get(ctx, s.stranger.ID, theirs.UUID.String())
	Expect(err).To(BeNil())
}

func (s *TodoServiceTestSuite) TestBulkDelete_DeduplicatesIds() {
	ctx := context.Background()

	todo, err := s.Service.Create(ctx, s.owner.ID, request.CreateTodoRequest{Title: "Once"})
	Expect(err).To(BeNil())

	uid := todo.UUID.String()

	result, err := s.Service.BulkDelete(ctx, s.owner.ID, []string{uid, uid, uid})

	Expect(err).To(BeNil())
	Expect(result.Deleted).To(Equal([]string{uid}))
	Expect(result.NotFound).To(BeEmpty())
}

func (s *TodoServiceTestSuite) TestBulkDelete_EmptyListRejected() {
	_, err := s.Service.BulkDelete(context.Background(), s.owner.ID, nil)

	Expect(errors.Is(err, domain.ErrInvalidInput)).To(BeTrue())
}
