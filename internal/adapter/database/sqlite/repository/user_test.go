package repository_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/suite"

	. "taskapp/pkg/test"
	"taskapp/pkg/test/factory"

	"taskapp/internal/adapter/database/sqlite/repository"
	"taskapp/internal/core/domain"
	"taskapp/internal/core/port"
)

type UserRepositoryTestSuite struct {
	suite.Suite
	UserRepo port.UserRepository
}

func (s *UserRepositoryTestSuite) SetupTest() {
	db := InitTestDB()

	s.UserRepo = repository.NewUserRepository(db, nil)
}

func TestUserRepositoryTestSuite(t *testing.T) {
	RegisterTestingT(t)
	suite.Run(t, new(UserRepositoryTestSuite))
}

func (s *UserRepositoryTestSuite) TestRepository_CreateUser_Success() {
	user, err := s.UserRepo.Create(context.Background(), factory.NewUser(map[string]any{
		"Email": "test@example.com",
	}))

	Expect(err).To(BeNil())
	Expect(user.Email).To(Equal("test@example.com"))

	saved, err := s.UserRepo.GetByID(context.Background(), user.ID)

	Expect(err).To(BeNil())
	Expect(saved.Email).To(Equal("test@example.com"))
}

func (s *UserRepositoryTestSuite) TestRepository_CreateUser_DuplicateEmail() {
	_, err := s.UserRepo.Create(context.Background(), factory.NewUser(map[string]any{
		"Email": "taken@example.com",
	}))

	Expect(err).To(BeNil())

	_, err = s.UserRepo.Create(context.Background(), factory.NewUser(map[string]any{
		"Email": "taken@example.com",
	}))

	Expect(err).To(MatchError(domain.ErrEmailTaken))
}

func (s *UserRepositoryTestSuite) TestRepository_GetByEmail_Success() {
	created, err := s.UserRepo.Create(context.Background(), factory.NewUser(map[string]any{
		"Email": "findme@example.com",
	}))

	Expect(err).To(BeNil())

	user, err := s.UserRepo.GetByEmail(context.Background(), "findme@example.com")

	Expect(err).To(BeNil())
	Expect(user.ID).To(Equal(created.ID))
}

func (s *UserRepositoryTestSuite) TestRepository_GetByEmail_Missing() {
	_, err := s.UserRepo.GetByEmail(context.Background(), "nobody@example.com")

	Expect(err).To(MatchError(domain.ErrUserNotFound))
}

func (s *UserRepositoryTestSuite) TestRepository_GetByID_Missing() {
	_, err := s.UserRepo.GetByID(context.Background(), uuid.New())

	Expect(err).To(MatchError(domain.ErrUserNotFound))
}
