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

type ListServiceSuite struct {
	suite.Suite
	db    *sqlite.DB
	users port.UserRepository
	lists port.ListRepository
	tasks port.TaskRepository
	svc   *ListService
	owner domain.User
	other domain.User
}

func (s *ListServiceSuite) SetupTest() {
	s.db = test.InitTestDB()
	s.users = repository.NewUserRepository(s.db)
	s.lists = repository.NewListRepository(s.db)
	s.tasks = repository.NewTaskRepository(s.db)
	s.svc = NewListService(s.lists)

	var err error

	s.owner, err = s.users.Create(ctx, factory.NewUser(map[string]any{"Email": "owner@example.com"}))
	Expect(err).ToNot(HaveOccurred())

	s.other, err = s.users.Create(ctx, factory.NewUser(map[string]any{"Email": "other@example.com"}))
	Expect(err).ToNot(HaveOccurred())
}

func (s *ListServiceSuite) TearDownTest() {
	s.db.Close()
}

func TestListServiceSuite(t *testing.T) {
	RegisterTestingT(t)
	suite.Run(t, new(ListServiceSuite))
}

func (s *ListServiceSuite) TestCreateDefaults() {
	list, err := s.svc.Create(ctx, s.owner.ID, &request.CreateListRequest{Name: "Groceries"})

	Expect(err).ToNot(HaveOccurred())
	Expect(list.Name).To(Equal("Groceries"))
	Expect(list.Color).To(Equal(domain.DefaultListColor))
	Expect(list.Position).To(Equal(0))
}

func (s *ListServiceSuite) TestCreateWithColorAndPosition() {
	position := 4

	list, err := s.svc.Create(ctx, s.owner.ID, &request.CreateListRequest{
		Name:     "Groceries",
		Color:    strPtr("#FF0000"),
		Position: &position,
	})

	Expect(err).ToNot(HaveOccurred())
	Expect(list.Color).To(Equal("#FF0000"))
	Expect(list.Position).To(Equal(4))
}

func (s *ListServiceSuite) TestListReturnsTaskCounts() {
	groceries, err := s.svc.Create(ctx, s.owner.ID, &request.CreateListRequest{Name: "Groceries"})
	Expect(err).ToNot(HaveOccurred())

	_, err = s.svc.Create(ctx, s.owner.ID, &request.CreateListRequest{Name: "Chores"})
	Expect(err).ToNot(HaveOccurred())

	for i := 0; i < 2; i++ {
		_, err = s.tasks.Create(ctx, factory.NewTask(map[string]any{
			"UserID": s.owner.ID,
			"ListID": &groceries.ID,
		}))
		Expect(err).ToNot(HaveOccurred())
	}

	lists, err := s.svc.List(ctx, s.owner.ID)

	Expect(err).ToNot(HaveOccurred())
	Expect(lists).To(HaveLen(2))

	byName := map[string]int{}

	for _, l := range lists {
		byName[l.Name] = l.TaskCount
	}

	Expect(byName["Groceries"]).To(Equal(2))
	Expect(byName["Chores"]).To(Equal(0))
}

func (s *ListServiceSuite) TestListScopedToUser() {
	_, err := s.svc.Create(ctx, s.other.ID, &request.CreateListRequest{Name: "Theirs"})
	Expect(err).ToNot(HaveOccurred())

	lists, err := s.svc.List(ctx, s.owner.ID)

	Expect(err).ToNot(HaveOccurred())
	Expect(lists).To(BeEmpty())
}

func (s *ListServiceSuite) TestUpdate() {
	list, err := s.svc.Create(ctx, s.owner.ID, &request.CreateListRequest{Name: "Groceries"})
	Expect(err).ToNot(HaveOccurred())

	updated, err := s.svc.Update(ctx, s.owner.ID, list.UUID.String(), &request.UpdateListRequest{
		Name:  strPtr("Errands"),
		Color: strPtr("#00FF00"),
	})

	Expect(err).ToNot(HaveOccurred())
	Expect(updated.Name).To(Equal("Errands"))
	Expect(updated.Color).To(Equal("#00FF00"))
}

func (s *ListServiceSuite) TestUpdateForeignList() {
	list, err := s.svc.Create(ctx, s.other.ID, &request.CreateListRequest{Name: "Theirs"})
	Expect(err).ToNot(HaveOccurred())

	_, err = s.svc.Update(ctx, s.owner.ID, list.UUID.String(), &request.UpdateListRequest{
		Name: strPtr("Mine now"),
	})

	Expect(err).To(MatchError(domain.ErrForbidden))
}

func (s *ListServiceSuite) TestUpdateUnknownList() {
	_, err := s.svc.Update(ctx, s.owner.ID, "00000000-0000-0000-0000-000000000000", &request.UpdateListRequest{
		Name: strPtr("Ghost"),
	})

	Expect(err).To(MatchError(domain.ErrNotFound))
}

func (s *ListServiceSuite) TestDeleteDissociatesTasks() {
	list, err := s.svc.Create(ctx, s.owner.ID, &request.CreateListRequest{Name: "Groceries"})
	Expect(err).ToNot(HaveOccurred())

	task, err := s.tasks.Create(ctx, factory.NewTask(map[string]any{
		"UserID": s.owner.ID,
		"ListID": &list.ID,
	}))
	Expect(err).ToNot(HaveOccurred())

	Expect(s.svc.Delete(ctx, s.owner.ID, list.UUID.String())).To(Succeed())

	_, err = s.lists.GetByUUID(ctx, list.UUID.String())
	Expect(err).To(MatchError(domain.ErrNotFound))

	// The task survives, detached from the deleted list.
	survivor, err := s.tasks.GetByUUID(ctx, task.UUID.String())
	Expect(err).ToNot(HaveOccurred())
	Expect(survivor.ListID).To(BeNil())
	Expect(survivor.List).To(BeNil())
}

func (s *ListServiceSuite) TestDeleteForeignList() {
	list, err := s.svc.Create(ctx, s.other.ID, &request.CreateListRequest{Name: "Theirs"})
	Expect(err).ToNot(HaveOccurred())

	err = s.svc.Delete(ctx, s.owner.ID, list.UUID.String())

	Expect(err).To(MatchError(domain.ErrForbidden))
}
