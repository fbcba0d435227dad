package task_test

import (
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/buildtrack/construction-api/internal"
	"github.com/buildtrack/construction-api/internal/task"
)

func TestTaskService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "TaskService Suite")
}

// Mock repository for testing
type mockTaskRepository struct {
	tasks  map[int64]*task.Task
	nextID int64
}

func newMockTaskRepository() *mockTaskRepository {
	return &mockTaskRepository{
		tasks:  make(map[int64]*task.Task),
		nextID: 1,
	}
}

func (m *mockTaskRepository) Create(t *task.Task) error {
	t.ID = m.nextID
	m.nextID++
	m.tasks[t.ID] = t
	return nil
}

func (m *mockTaskRepository) GetByID(id int64) (*task.Task, error) {
	t, exists := m.tasks[id]
	if !exists {
		return nil, errors.New("task not found")
	}
	return t, nil
}

func (m *mockTaskRepository) GetByProject(projectID int64) ([]*task.Task, error) {
	out := make([]*task.Task, 0)
	for _, t := range m.tasks {
		if t.ProjectID == projectID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (m *mockTaskRepository) GetByAssignee(userID int64, limit, offset int) ([]*task.Task, error) {
	out := make([]*task.Task, 0)
	for _, t := range m.tasks {
		if t.AssignedTo != nil && *t.AssignedTo == userID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (m *mockTaskRepository) GetAll(limit, offset int) ([]*task.Task, error) {
	out := make([]*task.Task, 0, len(m.tasks))
	for _, t := range m.tasks {
		out = append(out, t)
	}
	return out, nil
}

func (m *mockTaskRepository) Update(t *task.Task) error {
	m.tasks[t.ID] = t
	return nil
}

func (m *mockTaskRepository) Delete(id int64) error {
	delete(m.tasks, id)
	return nil
}

func (m *mockTaskRepository) CountByProject(projectID int64) (int64, int64, error) {
	var total, completed int64
	for _, t := range m.tasks {
		if t.ProjectID == projectID {
			total++
			if t.Status == task.StatusCompleted {
				completed++
			}
		}
	}
	return total, completed, nil
}

var _ = Describe("TaskService", func() {
	var (
		service  *task.Service
		mockRepo *mockTaskRepository
		manager  internal.Principal
		worker   internal.Principal
	)

	BeforeEach(func() {
		mockRepo = newMockTaskRepository()
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = task.NewService(mockRepo, logger)
		manager = internal.Principal{UserID: 30, Role: internal.RoleProjectManager}
		worker = internal.Principal{UserID: 31, Role: internal.RoleWorker}
	})

	create := func(assignee *int64) *task.Task {
		dto := task.CreateTaskDTO{
			ProjectID:  2,
			Title:      "Pour foundation slab",
			AssignedTo: assignee,
		}
		t, err := service.Create(manager, dto)
		Expect(err).ToNot(HaveOccurred())
		return t
	}

	Describe("Create", func() {
		It("should start tasks in PENDING with default priority", func() {
			t := create(nil)

			Expect(t.Status).To(Equal(task.StatusPending))
			Expect(t.Priority).To(Equal(task.PriorityMedium))
			Expect(t.CompletedAt).To(BeNil())
		})

		It("should deny workers", func() {
			dto := task.CreateTaskDTO{ProjectID: 2, Title: "x"}

			_, err := service.Create(worker, dto)

			Expect(err).To(HaveOccurred())
		})

		It("should require a title", func() {
			dto := task.CreateTaskDTO{ProjectID: 2}

			_, err := service.Create(manager, dto)

			Expect(err).To(HaveOccurred())
		})
	})

	Describe("UpdateStatus", func() {
		It("should stamp the completion time when a task completes", func() {
			t := create(&worker.UserID)

			result, err := service.UpdateStatus(t.ID, worker, task.UpdateTaskStatusDTO{Status: task.StatusCompleted})

			Expect(err).ToNot(HaveOccurred())
			Expect(result.Status).To(Equal(task.StatusCompleted))
			Expect(result.CompletedAt).ToNot(BeNil())
		})

		It("should clear the completion time when a task reopens", func() {
			t := create(&worker.UserID)

			_, err := service.UpdateStatus(t.ID, worker, task.UpdateTaskStatusDTO{Status: task.StatusCompleted})
			Expect(err).ToNot(HaveOccurred())

			result, err := service.UpdateStatus(t.ID, worker, task.UpdateTaskStatusDTO{Status: task.StatusInProgress})

			Expect(err).ToNot(HaveOccurred())
			Expect(result.Status).To(Equal(task.StatusInProgress))
			Expect(result.CompletedAt).To(BeNil())
		})

		It("should let the assignee move their own task", func() {
			t := create(&worker.UserID)

			result, err := service.UpdateStatus(t.ID, worker, task.UpdateTaskStatusDTO{Status: task.StatusInProgress})

			Expect(err).ToNot(HaveOccurred())
			Expect(result.Status).To(Equal(task.StatusInProgress))
		})

		It("should deny non-assignee workers", func() {
			t := create(&worker.UserID)
			other := internal.Principal{UserID: 77, Role: internal.RoleWorker}

			_, err := service.UpdateStatus(t.ID, other, task.UpdateTaskStatusDTO{Status: task.StatusInProgress})

			Expect(err).To(HaveOccurred())
		})

		It("should reject an unknown status", func() {
			t := create(&worker.UserID)

			_, err := service.UpdateStatus(t.ID, worker, task.UpdateTaskStatusDTO{Status: "DONE"})

			Expect(err).To(HaveOccurred())
		})
	})

	Describe("ListForPrincipal", func() {
		It("should scope workers to their assigned tasks", func() {
			create(&worker.UserID)
			create(nil)

			result, err := service.ListForPrincipal(worker, 20, 0)

			Expect(err).ToNot(HaveOccurred())
			Expect(result).To(HaveLen(1))
		})

		It("should give managers everything", func() {
			create(&worker.UserID)
			create(nil)

			result, err := service.ListForPrincipal(manager, 20, 0)

			Expect(err).ToNot(HaveOccurred())
			Expect(result).To(HaveLen(2))
		})
	})

	Describe("Delete", func() {
		It("should deny engineers", func() {
			t := create(nil)
			engineer := internal.Principal{UserID: 40, Role: internal.RoleSiteEngineer}

			err := service.Delete(t.ID, engineer)

			Expect(err).To(HaveOccurred())
		})

		It("should let managers delete", func() {
			t := create(nil)

			err := service.Delete(t.ID, manager)

			Expect(err).ToNot(HaveOccurred())
			_, err = mockRepo.GetByID(t.ID)
			Expect(err).To(HaveOccurred())
		})
	})
})

var _ = Describe("Task overdue flag", func() {
	now := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)

	It("should be set when the due date has passed and the task is open", func() {
		due := now.AddDate(0, 0, -2)
		t := &task.Task{Status: task.StatusInProgress, DueDate: &due}

		Expect(t.IsOverdue(now)).To(BeTrue())
	})

	It("should not be set on the due date itself", func() {
		due := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
		t := &task.Task{Status: task.StatusPending, DueDate: &due}

		Expect(t.IsOverdue(now)).To(BeFalse())
	})

	It("should not be set for completed or cancelled tasks", func() {
		due := now.AddDate(0, 0, -10)
		done := &task.Task{Status: task.StatusCompleted, DueDate: &due}
		dropped := &task.Task{Status: task.StatusCancelled, DueDate: &due}

		Expect(done.IsOverdue(now)).To(BeFalse())
		Expect(dropped.IsOverdue(now)).To(BeFalse())
	})

	It("should not be set without a due date", func() {
		t := &task.Task{Status: task.StatusPending}

		Expect(t.IsOverdue(now)).To(BeFalse())
	})
})

var _ = Describe("Task status vocabulary", func() {
	It("should accept exactly the four lifecycle statuses", func() {
		for _, s := range []string{task.StatusPending, task.StatusInProgress, task.StatusCompleted, task.StatusCancelled} {
			Expect(task.ValidStatus(s)).To(BeTrue(), s)
		}
	})

	It("should reject statuses outside the lifecycle", func() {
		for _, s := range []string{"TODO", "BLOCKED", "DONE", ""} {
			Expect(task.ValidStatus(s)).To(BeFalse(), s)
		}
	})
})
