package service_test

import (
	"context"
	"testing"

	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/suite"

	. "taskapp/pkg/test"
	"taskapp/pkg/test/factory"

	"taskapp/internal/adapter/database/sqlite/repository"
	"taskapp/internal/core/domain"
	"taskapp/internal/core/model/request"
	"taskapp/internal/core/port"
	"taskapp/internal/core/service"
)

type AuthServiceTestSuite struct {
	suite.Suite
	UseCase  port.AuthService
	UserRepo port.UserRepository
}

func (s *AuthServiceTestSuite) SetupTest() {
	db := InitTestDB()

	s.UserRepo = repository.NewUserRepository(db, nil)
	s.UseCase = service.NewAuthService(s.UserRepo)
}

func TestAuthServiceTestSuite(t *testing.T) {
	RegisterTestingT(t)
	suite.Run(t, new(AuthServiceTestSuite))
}

func (s *AuthServiceTestSuite) TestService_Registration_Success() {
	user, err := s.UseCase.Registration(context.Background(), &request.SignUpRequest{
		Email:    "new@example.com",
		Name:     "New User",
		Password: "supersecret",
	})

	Expect(err).To(BeNil())
	Expect(user.Email).To(Equal("new@example.com"))
	Expect(user.PasswordHash).NotTo(Equal("supersecret"))
	Expect(user.PasswordHash).NotTo(BeEmpty())
}

func (s *AuthServiceTestSuite) TestService_Registration_DuplicateEmail() {
	_, err := s.UseCase.Registration(context.Background(), &request.SignUpRequest{
		Email:    "dup@example.com",
		Password: "supersecret",
	})

	Expect(err).To(BeNil())

	_, err = s.UseCase.Registration(context.Background(), &request.SignUpRequest{
		Email:    "dup@example.com",
		Password: "othersecret",
	})

	Expect(err).To(MatchError(domain.ErrEmailTaken))
}

func (s *AuthServiceTestSuite) TestService_Authenticate_Success() {
	_, err := s.UserRepo.Create(context.Background(), factory.NewUser(map[string]any{
		"Email": "login@example.com",
	}))

	Expect(err).To(BeNil())

	user, err := s.UseCase.Authenticate(context.Background(), &request.LoginRequest{
		Email:    "login@example.com",
		Password: factory.DefaultPassword,
	})

	Expect(err).To(BeNil())
	Expect(user.Email).To(Equal("login@example.com"))
}

func (s *AuthServiceTestSuite) TestService_Authenticate_WrongPassword() {
	_, err := s.UserRepo.Create(context.Background(), factory.NewUser(map[string]any{
		"Email": "victim@example.com",
	}))

	Expect(err).To(BeNil())

	_, err = s.UseCase.Authenticate(context.Background(), &request.LoginRequest{
		Email:    "victim@example.com",
		Password: "not-the-password",
	})

	Expect(err).To(MatchError(service.ErrInvalidCredentials))
}

func (s *AuthServiceTestSuite) TestService_Authenticate_UnknownEmail() {
	_, err := s.UseCase.Authenticate(context.Background(), &request.LoginRequest{
		Email:    "ghost@example.com",
		Password: "whatever",
	})

	Expect(err).To(MatchError(service.ErrInvalidCredentials))
}
