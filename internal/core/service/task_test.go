package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	. "taskapp/pkg/test"
	"taskapp/pkg/test/factory"

	"taskapp/internal/adapter/database/sqlite/repository"
	"taskapp/internal/core/domain"
	"taskapp/internal/core/port"
	"taskapp/internal/core/service"
)

type TaskServiceTestSuite struct {
	suite.Suite
	UseCase  port.TaskService
	UserRepo port.UserRepository
	Owner    domain.User
}

func (s *TaskServiceTestSuite) SetupTest() {
	db := InitTestDB()

	taskRepo := repository.NewTaskRepository(db, nil)
	s.UserRepo = repository.NewUserRepository(db, nil)
	s.UseCase = service.NewTaskService(taskRepo, nil)

	owner, err := s.UserRepo.Create(context.Background(), factory.NewUser())

	assert.NoError(s.T(), err)
	s.Owner = owner
}

func TestTaskServiceTestSuite(t *testing.T) {
	RegisterTestingT(t)
	suite.Run(t, new(TaskServiceTestSuite))
}

func (s *TaskServiceTestSuite) TestService_Create_TrimsTitle() {
	task, err := s.UseCase.Create(context.Background(), s.Owner.ID, "  padded title  ", "")

	Expect(err).To(BeNil())
	Expect(task.Title).To(Equal("padded title"))
}

func (s *TaskServiceTestSuite) TestService_Create_RejectsBlankTitle() {
	_, err := s.UseCase.Create(context.Background(), s.Owner.ID, "   ", "")

	var validationErr *domain.ValidationError

	Expect(err).To(HaveOccurred())
	Expect(errors.As(err, &validationErr)).To(BeTrue())
	Expect(validationErr.Field).To(Equal("title"))
}

func (s *TaskServiceTestSuite) TestService_Create_RejectsOverlongTitle() {
	_, err := s.UseCase.Create(context.Background(), s.Owner.ID, strings.Repeat("a", 201), "")

	var validationErr *domain.ValidationError

	Expect(errors.As(err, &validationErr)).To(BeTrue())
	Expect(validationErr.Field).To(Equal("title"))
}

func (s *TaskServiceTestSuite) TestService_Create_RejectsOverlongDescription() {
	_, err := s.UseCase.Create(context.Background(), s.Owner.ID, "valid", strings.Repeat("d", 1001))

	var validationErr *domain.ValidationError

	Expect(errors.As(err, &validationErr)).To(BeTrue())
	Expect(validationErr.Field).To(Equal("description"))
}

func (s *TaskServiceTestSuite) TestService_Create_LimitsCountCharactersNotBytes() {
	title := strings.Repeat("日", 200)

	task, err := s.UseCase.Create(context.Background(), s.Owner.ID, title, strings.Repeat("é", 1000))

	Expect(err).To(BeNil())
	Expect(task.Title).To(Equal(title))
}

func (s *TaskServiceTestSuite) TestService_Create_TimestampsStartEqual() {
	task, err := s.UseCase.Create(context.Background(), s.Owner.ID, "fresh", "")

	Expect(err).To(BeNil())
	Expect(task.Completed).To(BeFalse())
	Expect(task.UpdatedAt.Equal(task.CreatedAt)).To(BeTrue())
}

func (s *TaskServiceTestSuite) TestService_Get_MissingIsNotFound() {
	_, err := s.UseCase.Get(context.Background(), 42, s.Owner.ID)

	Expect(err).To(MatchError(domain.ErrTaskNotFound))
}

func (s *TaskServiceTestSuite) TestService_Get_CrossOwnerIsNotFound() {
	other, err := s.UserRepo.Create(context.Background(), factory.NewUser())
	assert.NoError(s.T(), err)

	task, err := s.UseCase.Create(context.Background(), s.Owner.ID, "secret", "")
	assert.NoError(s.T(), err)

	_, err = s.UseCase.Get(context.Background(), task.ID, other.ID)

	Expect(err).To(MatchError(domain.ErrTaskNotFound))
}

func (s *TaskServiceTestSuite) TestService_Update_EmptyPatchRejected() {
	task, err := s.UseCase.Create(context.Background(), s.Owner.ID, "something", "")
	assert.NoError(s.T(), err)

	_, err = s.UseCase.Update(context.Background(), task.ID, s.Owner.ID, domain.TaskPatch{})

	var validationErr *domain.ValidationError

	Expect(errors.As(err, &validationErr)).To(BeTrue())
}

func (s *TaskServiceTestSuite) TestService_Update_MultibyteTitleWithinLimit() {
	task, err := s.UseCase.Create(context.Background(), s.Owner.ID, "ascii", "")
	assert.NoError(s.T(), err)

	newTitle := strings.Repeat("ü", 200)
	updated, err := s.UseCase.Update(context.Background(), task.ID, s.Owner.ID, domain.TaskPatch{Title: &newTitle})

	Expect(err).To(BeNil())
	Expect(updated.Title).To(Equal(newTitle))
}

func (s *TaskServiceTestSuite) TestService_Update_ExplicitEmptyDescriptionKept() {
	task, err := s.UseCase.Create(context.Background(), s.Owner.ID, "keep title", "old description")
	assert.NoError(s.T(), err)

	empty := ""
	updated, err := s.UseCase.Update(context.Background(), task.ID, s.Owner.ID, domain.TaskPatch{Description: &empty})

	Expect(err).To(BeNil())
	Expect(updated.Description).To(Equal(""))
	Expect(updated.Title).To(Equal("keep title"))
}

func (s *TaskServiceTestSuite) TestService_List_DefaultsToAllByCreated() {
	ctx := context.Background()

	first, err := s.UseCase.Create(ctx, s.Owner.ID, "first", "")
	assert.NoError(s.T(), err)

	done, err := s.UseCase.Create(ctx, s.Owner.ID, "done", "")
	assert.NoError(s.T(), err)

	_, err = s.UseCase.ToggleComplete(ctx, done.ID, s.Owner.ID)
	assert.NoError(s.T(), err)

	tasks, err := s.UseCase.List(ctx, s.Owner.ID, domain.ListOptions{})

	Expect(err).To(BeNil())
	Expect(tasks).To(HaveLen(2))
	Expect(first.ID).To(BeNumerically(">", 0))
}

func (s *TaskServiceTestSuite) TestService_Delete_MissingIsNotFound() {
	err := s.UseCase.Delete(context.Background(), 404, s.Owner.ID)

	Expect(err).To(MatchError(domain.ErrTaskNotFound))
}
