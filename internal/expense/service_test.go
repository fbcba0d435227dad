package expense_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/shopspring/decimal"

	"github.com/buildtrack/construction-api/internal"
	"github.com/buildtrack/construction-api/internal/core/events"
	"github.com/buildtrack/construction-api/internal/expense"
)

func TestExpenseService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "ExpenseService Suite")
}

// Mock repository for testing
type mockExpenseRepository struct {
	expenses    map[int64]*expense.Expense
	createError error
	updateError error
	nextID      int64
}

func newMockExpenseRepository() *mockExpenseRepository {
	return &mockExpenseRepository{
		expenses: make(map[int64]*expense.Expense),
		nextID:   1,
	}
}

func (m *mockExpenseRepository) Create(e *expense.Expense) error {
	if m.createError != nil {
		return m.createError
	}
	e.ID = m.nextID
	m.nextID++
	m.expenses[e.ID] = e
	return nil
}

func (m *mockExpenseRepository) GetByID(id int64) (*expense.Expense, error) {
	e, exists := m.expenses[id]
	if !exists {
		return nil, errors.New("expense not found")
	}
	return e, nil
}

func (m *mockExpenseRepository) GetByProject(projectID int64) ([]*expense.Expense, error) {
	out := make([]*expense.Expense, 0)
	for _, e := range m.expenses {
		if e.ProjectID == projectID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *mockExpenseRepository) GetBySubmitter(userID int64, limit, offset int) ([]*expense.Expense, error) {
	out := make([]*expense.Expense, 0)
	for _, e := range m.expenses {
		if e.SubmittedBy == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *mockExpenseRepository) GetByStatus(status string, limit, offset int) ([]*expense.Expense, error) {
	out := make([]*expense.Expense, 0)
	for _, e := range m.expenses {
		if e.Status == status {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *mockExpenseRepository) GetAll(limit, offset int) ([]*expense.Expense, error) {
	out := make([]*expense.Expense, 0, len(m.expenses))
	for _, e := range m.expenses {
		out = append(out, e)
	}
	return out, nil
}

func (m *mockExpenseRepository) Update(e *expense.Expense) error {
	if m.updateError != nil {
		return m.updateError
	}
	m.expenses[e.ID] = e
	return nil
}

func (m *mockExpenseRepository) TotalApprovedByProject(projectID int64) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, e := range m.expenses {
		if e.ProjectID == projectID && e.CountsTowardBudget() {
			total = total.Add(e.Amount)
		}
	}
	return total, nil
}

func (m *mockExpenseRepository) ApprovedTotalsByCategory(projectID int64) (map[string]decimal.Decimal, error) {
	totals := make(map[string]decimal.Decimal)
	for _, e := range m.expenses {
		if e.ProjectID == projectID && e.CountsTowardBudget() {
			totals[e.Category] = totals[e.Category].Add(e.Amount)
		}
	}
	return totals, nil
}

// Mock publisher capturing published events
type mockPublisher struct {
	published    []events.Event
	publishError error
}

func (m *mockPublisher) Publish(ctx context.Context, event events.Event) error {
	if m.publishError != nil {
		return m.publishError
	}
	m.published = append(m.published, event)
	return nil
}

var _ = Describe("ExpenseService", func() {
	var (
		service  *expense.Service
		mockRepo *mockExpenseRepository
		mockBus  *mockPublisher
		engineer internal.Principal
		finance  internal.Principal
		client   internal.Principal
	)

	BeforeEach(func() {
		mockRepo = newMockExpenseRepository()
		mockBus = &mockPublisher{}
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = expense.NewService(mockRepo, mockBus, logger)
		engineer = internal.Principal{UserID: 11, Role: internal.RoleSiteEngineer}
		finance = internal.Principal{UserID: 12, Role: internal.RoleFinanceOfficer}
		client = internal.Principal{UserID: 13, Role: internal.RoleClient}
	})

	newDTO := func() expense.CreateExpenseDTO {
		return expense.CreateExpenseDTO{
			ProjectID:   4,
			Amount:      decimal.NewFromInt(175000),
			Category:    "MATERIALS",
			Description: "rebar delivery",
		}
	}

	Describe("Submit", func() {
		It("should create a pending expense", func() {
			result, err := service.Submit(engineer, newDTO())

			Expect(err).ToNot(HaveOccurred())
			Expect(result.Status).To(Equal(expense.StatusPending))
			Expect(result.SubmittedBy).To(Equal(engineer.UserID))
			Expect(result.ID).To(BeNumerically(">", 0))
		})

		It("should deny client representatives", func() {
			_, err := service.Submit(client, newDTO())

			Expect(err).To(HaveOccurred())
		})

		It("should reject a negative amount", func() {
			dto := newDTO()
			dto.Amount = decimal.NewFromInt(-5)

			_, err := service.Submit(engineer, dto)

			Expect(err).To(HaveOccurred())
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeInvalidAmount))
		})

		It("should reject a future expense date", func() {
			future := time.Now().AddDate(0, 0, 3)
			dto := newDTO()
			dto.ExpenseDate = &future

			_, err := service.Submit(engineer, dto)

			Expect(err).To(HaveOccurred())
		})
	})

	Describe("Approve", func() {
		It("should approve a pending expense and publish an event", func() {
			e, err := service.Submit(engineer, newDTO())
			Expect(err).ToNot(HaveOccurred())

			result, err := service.Approve(e.ID, finance)

			Expect(err).ToNot(HaveOccurred())
			Expect(result.Status).To(Equal(expense.StatusApproved))
			Expect(*result.ApprovedBy).To(Equal(finance.UserID))
			Expect(result.ApprovedAt).ToNot(BeNil())
			Expect(mockBus.published).To(HaveLen(1))
			Expect(mockBus.published[0].EventType()).To(Equal(events.EventTypeExpenseApproved))
		})

		It("should deny non-finance roles", func() {
			e, err := service.Submit(engineer, newDTO())
			Expect(err).ToNot(HaveOccurred())

			_, err = service.Approve(e.ID, engineer)

			Expect(err).To(HaveOccurred())
		})

		It("should refuse approving twice", func() {
			e, err := service.Submit(engineer, newDTO())
			Expect(err).ToNot(HaveOccurred())

			_, err = service.Approve(e.ID, finance)
			Expect(err).ToNot(HaveOccurred())

			_, err = service.Approve(e.ID, finance)
			Expect(err).To(Equal(expense.ErrInvalidStatus))
		})
	})

	Describe("Reject", func() {
		It("should reject a pending expense and keep the reason", func() {
			e, err := service.Submit(engineer, newDTO())
			Expect(err).ToNot(HaveOccurred())

			result, err := service.Reject(e.ID, finance, "duplicate submission")

			Expect(err).ToNot(HaveOccurred())
			Expect(result.Status).To(Equal(expense.StatusRejected))
			Expect(result.RejectionReason).To(Equal("duplicate submission"))
		})

		It("should refuse rejecting an approved expense", func() {
			e, err := service.Submit(engineer, newDTO())
			Expect(err).ToNot(HaveOccurred())

			_, err = service.Approve(e.ID, finance)
			Expect(err).ToNot(HaveOccurred())

			_, err = service.Reject(e.ID, finance, "too late")
			Expect(err).To(Equal(expense.ErrInvalidStatus))
		})
	})

	Describe("MarkPaid", func() {
		It("should settle an approved expense", func() {
			e, err := service.Submit(engineer, newDTO())
			Expect(err).ToNot(HaveOccurred())

			_, err = service.Approve(e.ID, finance)
			Expect(err).ToNot(HaveOccurred())

			result, err := service.MarkPaid(e.ID, finance)

			Expect(err).ToNot(HaveOccurred())
			Expect(result.Status).To(Equal(expense.StatusPaid))
			Expect(result.PaidAt).ToNot(BeNil())
		})

		It("should refuse paying a pending expense", func() {
			e, err := service.Submit(engineer, newDTO())
			Expect(err).ToNot(HaveOccurred())

			_, err = service.MarkPaid(e.ID, finance)

			Expect(err).To(Equal(expense.ErrInvalidStatus))
		})
	})

	Describe("GetByID", func() {
		It("should let the submitter read their own expense", func() {
			e, err := service.Submit(engineer, newDTO())
			Expect(err).ToNot(HaveOccurred())

			result, err := service.GetByID(e.ID, engineer)

			Expect(err).ToNot(HaveOccurred())
			Expect(result.ID).To(Equal(e.ID))
		})

		It("should deny other non-finance users", func() {
			e, err := service.Submit(engineer, newDTO())
			Expect(err).ToNot(HaveOccurred())

			other := internal.Principal{UserID: 99, Role: internal.RoleWorker}
			_, err = service.GetByID(e.ID, other)

			Expect(err).To(HaveOccurred())
		})
	})

	Describe("ListForPrincipal", func() {
		It("should scope workers to their own submissions", func() {
			_, err := service.Submit(engineer, newDTO())
			Expect(err).ToNot(HaveOccurred())

			otherWorker := internal.Principal{UserID: 50, Role: internal.RoleWorker}
			result, err := service.ListForPrincipal(otherWorker, 20, 0)

			Expect(err).ToNot(HaveOccurred())
			Expect(result).To(BeEmpty())
		})

		It("should give finance the full list", func() {
			_, err := service.Submit(engineer, newDTO())
			Expect(err).ToNot(HaveOccurred())

			result, err := service.ListForPrincipal(finance, 20, 0)

			Expect(err).ToNot(HaveOccurred())
			Expect(result).To(HaveLen(1))
		})
	})
})
