package service

import (
	"testing"

	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/suite"

	"taskhub/internal/adapter/database/sqlite"
	"taskhub/internal/adapter/database/sqlite/repository"
	"taskhub/internal/core/domain"
	"taskhub/internal/core/model/request"
	"taskhub/internal/core/port"
	"taskhub/pkg/test"
	"taskhub/pkg/test/factory"
)

type TaskServiceSuite struct {
	suite.Suite
	db    *sqlite.DB
	users port.UserRepository
	lists port.ListRepository
	tasks port.TaskRepository
	svc   *TaskService
	owner domain.User
	other domain.User
}

func (s *TaskServiceSuite) SetupTest() {
	s.db = test.InitTestDB()
	s.users = repository.NewUserRepository(s.db)
	s.lists = repository.NewListRepository(s.db)
	s.tasks = repository.NewTaskRepository(s.db)
	s.svc = NewTaskService(s.tasks, s.lists)

	var err error

	s.owner, err = s.users.Create(ctx, factory.NewUser(map[string]any{"Email": "owner@example.com"}))
	Expect(err).ToNot(HaveOccurred())

	s.other, err = s.users.Create(ctx, factory.NewUser(map[string]any{"Email": "other@example.com"}))
	Expect(err).ToNot(HaveOccurred())
}

func (s *TaskServiceSuite) TearDownTest() {
	s.db.Close()
}

func TestTaskServiceSuite(t *testing.T) {
	RegisterTestingT(t)
	suite.Run(t, new(TaskServiceSuite))
}

func strPtr(v string) *string { return &v }

func (s *TaskServiceSuite) createList(userID int, name string) domain.List {
	list, err := s.lists.Create(ctx, factory.NewList(map[string]any{
		"Name":   name,
		"UserID": userID,
	}))

	Expect(err).ToNot(HaveOccurred())

	return list
}

func (s *TaskServiceSuite) TestCreateForcesDefaults() {
	task, err := s.svc.Create(ctx, s.owner.ID, &request.CreateTaskRequest{
		Title: "Pack for the journey",
	})

	Expect(err).ToNot(HaveOccurred())
	Expect(task.Status).To(Equal(domain.StatusTodo))
	Expect(task.Priority).To(Equal(domain.PriorityMedium))
	Expect(task.CompletedAt).To(BeNil())
	Expect(task.List).To(BeNil())
}

func (s *TaskServiceSuite) TestCreateWithPriorityAndDueDate() {
	task, err := s.svc.Create(ctx, s.owner.ID, &request.CreateTaskRequest{
		Title:    "Pack for the journey",
		Priority: strPtr("URGENT"),
		DueDate:  strPtr("2026-09-15"),
	})

	Expect(err).ToNot(HaveOccurred())
	Expect(task.Priority).To(Equal(domain.PriorityUrgent))
	Expect(*task.DueDate).To(Equal("2026-09-15"))
}

func (s *TaskServiceSuite) TestCreateInvalidDueDate() {
	_, err := s.svc.Create(ctx, s.owner.ID, &request.CreateTaskRequest{
		Title:   "Pack for the journey",
		DueDate: strPtr("15/09/2026"),
	})

	Expect(err).To(MatchError(domain.ErrInvalidInput))
}

func (s *TaskServiceSuite) TestCreateWithOwnedList() {
	list := s.createList(s.owner.ID, "Travel")

	task, err := s.svc.Create(ctx, s.owner.ID, &request.CreateTaskRequest{
		Title:  "Pack for the journey",
		ListID: strPtr(list.UUID.String()),
	})

	Expect(err).ToNot(HaveOccurred())
	Expect(task.List).ToNot(BeNil())
	Expect(task.List.Name).To(Equal("Travel"))
}

func (s *TaskServiceSuite) TestCreateWithForeignList() {
	list := s.createList(s.other.ID, "Not yours")

	_, err := s.svc.Create(ctx, s.owner.ID, &request.CreateTaskRequest{
		Title:  "Pack for the journey",
		ListID: strPtr(list.UUID.String()),
	})

	Expect(err).To(MatchError(domain.ErrListForbidden))
}

func (s *TaskServiceSuite) TestGetMissingBeforeForeign() {
	task, err := s.svc.Create(ctx, s.owner.ID, &request.CreateTaskRequest{Title: "Owned task"})
	Expect(err).ToNot(HaveOccurred())

	// Unknown id reads as not found, even for the wrong user.
	_, err = s.svc.Get(ctx, s.other.ID, "00000000-0000-0000-0000-000000000000")
	Expect(err).To(MatchError(domain.ErrNotFound))

	// An existing task owned by someone else is forbidden, not hidden.
	_, err = s.svc.Get(ctx, s.other.ID, task.UUID.String())
	Expect(err).To(MatchError(domain.ErrForbidden))
}

func (s *TaskServiceSuite) TestUpdateStatusRecordsHistoryAndCompletedAt() {
	task, err := s.svc.Create(ctx, s.owner.ID, &request.CreateTaskRequest{Title: "Finish the report"})
	Expect(err).ToNot(HaveOccurred())

	done, err := s.svc.Update(ctx, s.owner.ID, task.UUID.String(), &request.UpdateTaskRequest{
		Status: strPtr("DONE"),
	})

	Expect(err).ToNot(HaveOccurred())
	Expect(done.Status).To(Equal(domain.StatusDone))
	Expect(done.CompletedAt).ToNot(BeNil())

	entries, err := s.svc.History(ctx, s.owner.ID, task.UUID.String())
	Expect(err).ToNot(HaveOccurred())
	Expect(entries).To(HaveLen(1))
	Expect(entries[0].OldStatus).To(Equal(domain.StatusTodo))
	Expect(entries[0].NewStatus).To(Equal(domain.StatusDone))

	// Leaving DONE clears the completion timestamp.
	reopened, err := s.svc.Update(ctx, s.owner.ID, task.UUID.String(), &request.UpdateTaskRequest{
		Status: strPtr("IN_PROGRESS"),
	})

	Expect(err).ToNot(HaveOccurred())
	Expect(reopened.CompletedAt).To(BeNil())

	entries, err = s.svc.History(ctx, s.owner.ID, task.UUID.String())
	Expect(err).ToNot(HaveOccurred())
	Expect(entries).To(HaveLen(2))
	Expect(entries[1].NewStatus).To(Equal(domain.StatusInProgress))
}

func (s *TaskServiceSuite) TestUpdateSameStatusLeavesNoHistory() {
	task, err := s.svc.Create(ctx, s.owner.ID, &request.CreateTaskRequest{Title: "Finish the report"})
	Expect(err).ToNot(HaveOccurred())

	_, err = s.svc.Update(ctx, s.owner.ID, task.UUID.String(), &request.UpdateTaskRequest{
		Status: strPtr("TODO"),
	})
	Expect(err).ToNot(HaveOccurred())

	entries, err := s.svc.History(ctx, s.owner.ID, task.UUID.String())
	Expect(err).ToNot(HaveOccurred())
	Expect(entries).To(BeEmpty())
}

func (s *TaskServiceSuite) TestUpdateClearsDueDateAndList() {
	list := s.createList(s.owner.ID, "Travel")

	task, err := s.svc.Create(ctx, s.owner.ID, &request.CreateTaskRequest{
		Title:   "Pack for the journey",
		DueDate: strPtr("2026-09-15"),
		ListID:  strPtr(list.UUID.String()),
	})
	Expect(err).ToNot(HaveOccurred())

	updated, err := s.svc.Update(ctx, s.owner.ID, task.UUID.String(), &request.UpdateTaskRequest{
		DueDate: strPtr(""),
		ListID:  strPtr(""),
	})

	Expect(err).ToNot(HaveOccurred())
	Expect(updated.DueDate).To(BeNil())
	Expect(updated.List).To(BeNil())
}

func (s *TaskServiceSuite) TestListCountersIgnoreFilters() {
	for _, status := range []string{"TODO", "IN_PROGRESS", "DONE"} {
		task, err := s.svc.Create(ctx, s.owner.ID, &request.CreateTaskRequest{Title: "Task " + status})
		Expect(err).ToNot(HaveOccurred())

		if status != "TODO" {
			_, err = s.svc.Update(ctx, s.owner.ID, task.UUID.String(), &request.UpdateTaskRequest{
				Status: strPtr(status),
			})
			Expect(err).ToNot(HaveOccurred())
		}
	}

	page, err := s.svc.List(ctx, s.owner.ID, &request.ListTasksQuery{Status: "DONE"})

	Expect(err).ToNot(HaveOccurred())
	Expect(page.Tasks).To(HaveLen(1))
	Expect(page.Counters.Total).To(Equal(3))
	Expect(page.Counters.Todo).To(Equal(1))
	Expect(page.Counters.InProgress).To(Equal(1))
	Expect(page.Counters.Done).To(Equal(1))
	Expect(page.Pagination.Page).To(Equal(1))
	Expect(page.Pagination.PageSize).To(Equal(defaultPageSize))
	Expect(page.Pagination.Total).To(Equal(1))
	Expect(page.Pagination.TotalPages).To(Equal(1))
}

func (s *TaskServiceSuite) TestListInvalidStatusFilter() {
	_, err := s.svc.List(ctx, s.owner.ID, &request.ListTasksQuery{Status: "SHIPPED"})

	Expect(err).To(MatchError(domain.ErrInvalidInput))
}

func (s *TaskServiceSuite) TestListForeignListFilterMatchesNothing() {
	list := s.createList(s.other.ID, "Not yours")

	_, err := s.svc.Create(ctx, s.owner.ID, &request.CreateTaskRequest{Title: "Owned task"})
	Expect(err).ToNot(HaveOccurred())

	page, err := s.svc.List(ctx, s.owner.ID, &request.ListTasksQuery{ListID: list.UUID.String()})

	Expect(err).ToNot(HaveOccurred())
	Expect(page.Tasks).To(BeEmpty())
}

func (s *TaskServiceSuite) TestSearchRejectsBlankKeyword() {
	_, err := s.svc.Search(ctx, s.owner.ID, "   ")

	Expect(err).To(MatchError(domain.ErrInvalidInput))
}

func (s *TaskServiceSuite) TestSearchMatchesTitleAndDescription() {
	_, err := s.svc.Create(ctx, s.owner.ID, &request.CreateTaskRequest{Title: "Buy groceries"})
	Expect(err).ToNot(HaveOccurred())

	_, err = s.svc.Create(ctx, s.owner.ID, &request.CreateTaskRequest{
		Title:       "Weekend chores",
		Description: "Mow the lawn and buy GROCERIES",
	})
	Expect(err).ToNot(HaveOccurred())

	_, err = s.svc.Create(ctx, s.owner.ID, &request.CreateTaskRequest{Title: "Unrelated"})
	Expect(err).ToNot(HaveOccurred())

	results, err := s.svc.Search(ctx, s.owner.ID, "groceries")

	Expect(err).ToNot(HaveOccurred())
	Expect(results).To(HaveLen(2))
}

func (s *TaskServiceSuite) TestDeleteRemovesTaskAndHistory() {
	task, err := s.svc.Create(ctx, s.owner.ID, &request.CreateTaskRequest{Title: "Short lived"})
	Expect(err).ToNot(HaveOccurred())

	_, err = s.svc.Update(ctx, s.owner.ID, task.UUID.String(), &request.UpdateTaskRequest{
		Status: strPtr("DONE"),
	})
	Expect(err).ToNot(HaveOccurred())

	Expect(s.svc.Delete(ctx, s.owner.ID, task.UUID.String())).To(Succeed())

	_, err = s.svc.Get(ctx, s.owner.ID, task.UUID.String())
	Expect(err).To(MatchError(domain.ErrNotFound))

	var count int
	err = s.db.QueryRow("SELECT COUNT(*) FROM status_history").Scan(&count)
	Expect(err).ToNot(HaveOccurred())
	Expect(count).To(Equal(0))
}
