package worklog_test

import (
	"errors"
	"log/slog"
	"os"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/shopspring/decimal"

	"github.com/buildtrack/construction-api/internal"
	"github.com/buildtrack/construction-api/internal/worklog"
)

func TestWorkLogService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "WorkLogService Suite")
}

// Mock repository for testing
type mockWorkLogRepository struct {
	logs   map[int64]*worklog.WorkLog
	nextID int64
}

func newMockWorkLogRepository() *mockWorkLogRepository {
	return &mockWorkLogRepository{
		logs:   make(map[int64]*worklog.WorkLog),
		nextID: 1,
	}
}

func (m *mockWorkLogRepository) Create(l *worklog.WorkLog) error {
	l.ID = m.nextID
	m.nextID++
	m.logs[l.ID] = l
	return nil
}

func (m *mockWorkLogRepository) GetByID(id int64) (*worklog.WorkLog, error) {
	l, exists := m.logs[id]
	if !exists {
		return nil, errors.New("work log not found")
	}
	return l, nil
}

func (m *mockWorkLogRepository) GetByProject(projectID int64, limit, offset int) ([]*worklog.WorkLog, error) {
	out := make([]*worklog.WorkLog, 0)
	for _, l := range m.logs {
		if l.ProjectID == projectID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (m *mockWorkLogRepository) GetByUser(userID int64, limit, offset int) ([]*worklog.WorkLog, error) {
	out := make([]*worklog.WorkLog, 0)
	for _, l := range m.logs {
		if l.UserID == userID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (m *mockWorkLogRepository) Update(l *worklog.WorkLog) error {
	m.logs[l.ID] = l
	return nil
}

func (m *mockWorkLogRepository) Delete(id int64) error {
	delete(m.logs, id)
	return nil
}

var _ = Describe("WorkLogService", func() {
	var (
		service  *worklog.Service
		mockRepo *mockWorkLogRepository
		engineer internal.Principal
		client   internal.Principal
		admin    internal.Principal
	)

	BeforeEach(func() {
		mockRepo = newMockWorkLogRepository()
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = worklog.NewService(mockRepo, logger)
		engineer = internal.Principal{UserID: 60, Role: internal.RoleSiteEngineer}
		client = internal.Principal{UserID: 61, Role: internal.RoleClient}
		admin = internal.Principal{UserID: 62, Role: internal.RoleAdmin}
	})

	newDTO := func() worklog.CreateWorkLogDTO {
		return worklog.CreateWorkLogDTO{
			ProjectID:   9,
			HoursWorked: decimal.NewFromFloat(7.5),
			Description: "formwork on level 3",
			Weather:     "clear",
		}
	}

	Describe("Create", func() {
		It("should record a daily log for the author", func() {
			result, err := service.Create(engineer, newDTO())

			Expect(err).ToNot(HaveOccurred())
			Expect(result.UserID).To(Equal(engineer.UserID))
			Expect(result.HoursWorked.Equal(decimal.NewFromFloat(7.5))).To(BeTrue())
			Expect(result.LogDate.Hour()).To(BeZero())
		})

		It("should deny client representatives", func() {
			_, err := service.Create(client, newDTO())

			Expect(err).To(HaveOccurred())
		})

		It("should reject hours above twenty-four", func() {
			dto := newDTO()
			dto.HoursWorked = decimal.NewFromInt(25)

			_, err := service.Create(engineer, dto)

			Expect(err).To(HaveOccurred())
		})

		It("should require a description", func() {
			dto := newDTO()
			dto.Description = ""

			_, err := service.Create(engineer, dto)

			Expect(err).To(HaveOccurred())
		})
	})

	Describe("Update", func() {
		It("should let the author edit their log", func() {
			l, err := service.Create(engineer, newDTO())
			Expect(err).ToNot(HaveOccurred())

			hours := decimal.NewFromInt(8)
			result, err := service.Update(l.ID, engineer, worklog.UpdateWorkLogDTO{HoursWorked: &hours})

			Expect(err).ToNot(HaveOccurred())
			Expect(result.HoursWorked.Equal(hours)).To(BeTrue())
		})

		It("should deny everyone else, including admins", func() {
			l, err := service.Create(engineer, newDTO())
			Expect(err).ToNot(HaveOccurred())

			hours := decimal.NewFromInt(8)
			_, err = service.Update(l.ID, admin, worklog.UpdateWorkLogDTO{HoursWorked: &hours})

			Expect(err).To(HaveOccurred())
		})
	})

	Describe("Delete", func() {
		It("should let the author delete their log", func() {
			l, err := service.Create(engineer, newDTO())
			Expect(err).ToNot(HaveOccurred())

			Expect(service.Delete(l.ID, engineer)).To(Succeed())
		})

		It("should let admins delete any log", func() {
			l, err := service.Create(engineer, newDTO())
			Expect(err).ToNot(HaveOccurred())

			Expect(service.Delete(l.ID, admin)).To(Succeed())
		})

		It("should deny other users", func() {
			l, err := service.Create(engineer, newDTO())
			Expect(err).ToNot(HaveOccurred())

			other := internal.Principal{UserID: 99, Role: internal.RoleWorker}
			err = service.Delete(l.ID, other)

			Expect(err).To(HaveOccurred())
		})
	})

	Describe("ListMine", func() {
		It("should only return the caller's logs", func() {
			_, err := service.Create(engineer, newDTO())
			Expect(err).ToNot(HaveOccurred())

			other := internal.Principal{UserID: 99, Role: internal.RoleWorker}
			result, err := service.ListMine(other, 20, 0)

			Expect(err).ToNot(HaveOccurred())
			Expect(result).To(BeEmpty())
		})
	})
})
