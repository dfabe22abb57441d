package service_test

import (
	"context"
	"testing"

	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/suite"

	"github.com/Manni1403/taskboard-assessment/internal/adapter/database/sqlite/repository"
	"github.com/Manni1403/taskboard-assessment/internal/core/model/request"
	"github.com/Manni1403/taskboard-assessment/internal/core/port"
	"github.com/Manni1403/taskboard-assessment/internal/core/service"
	"github.com/Manni1403/taskboard-assessment/pkg/test"
)

type AuthServiceTestSuite struct {
	suite.Suite
	Auth port.AuthService
}

func (s *AuthServiceTestSuite) SetupTest() {
	db := test.InitTestDatabase()

	s.Auth = service.NewAuthService(repository.NewUserRepository(db))
}

func TestAuthServiceTestSuite(t *testing.T) {
	RegisterTestingT(t)

	suite.Run(t, new(AuthServiceTestSuite))
}

func (s *AuthServiceTestSuite) TestRegistration_StoresHashedPassword() {
	user, err := s.Auth.Registration(context.Background(), &request.SignUpRequest{
		Name:     "Sam",
		Email:    "sam@example.com",
		Password: "secret-pass",
	})

	Expect(err).To(BeNil())
	Expect(user.ID).To(BeNumerically(">", 0))
	Expect(user.EncryptedPassword).ToNot(Equal("secret-pass"))
}

func (s *AuthServiceTestSuite) TestRegistration_DuplicateEmailRejected() {
	req := &request.SignUpRequest{Email: "dup@example.com", Password: "secret-pass"}

	_, err := s.Auth.Registration(context.Background(), req)
	Expect(err).To(BeNil())

	_, err = s.Auth.Registration(context.Background(), req)
	Expect(err).To(MatchError(ContainSubstring("already exists")))
}

func (s *AuthServiceTestSuite) TestAuthenticate_RightPassword() {
	_, err := s.Auth.Registration(context.Background(), &request.SignUpRequest{
		Email:    "login@example.com",
		Password: "secret-pass",
	})
	Expect(err).To(BeNil())

	user, err := s.Auth.Authenticate(context.Background(), &request.LoginRequest{
		Email:    "login@example.com",
		Password: "secret-pass",
	})

	Expect(err).To(BeNil())
	Expect(user.Email).To(Equal("login@example.com"))
}

func (s *AuthServiceTestSuite) TestAuthenticate_WrongPasswordAndUnknownUserLookAlike() {
	_, err := s.Auth.Registration(context.Background(), &request.SignUpRequest{
		Email:    "victim@example.com",
		Password: "secret-pass",
	})
	Expect(err).To(BeNil())

	_, wrongPass := s.Auth.Authenticate(context.Background(), &request.LoginRequest{
		Email:    "victim@example.com",
		Password: "not-the-pass",
	})

	_, unknownUser := s.Auth.Authenticate(context.Background(), &request.LoginRequest{
		Email:    "ghost@example.com",
		Password: "whatever-pass",
	})

	// Both failures read the same so callers cannot probe for accounts.
	Expect(wrongPass.Error()).To(Equal(unknownUser.Error()))
}
