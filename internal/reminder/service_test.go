package reminder_test

import (
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/shopspring/decimal"

	"github.com/buildtrack/construction-api/internal"
	"github.com/buildtrack/construction-api/internal/reminder"
)

func TestReminderService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "ReminderService Suite")
}

// Mock repository for testing
type mockReminderRepository struct {
	reminders   map[int64]*reminder.PaymentReminder
	createError error
	updateError error
	nextID      int64
}

func newMockReminderRepository() *mockReminderRepository {
	return &mockReminderRepository{
		reminders: make(map[int64]*reminder.PaymentReminder),
		nextID:    1,
	}
}

func (m *mockReminderRepository) Create(r *reminder.PaymentReminder) error {
	if m.createError != nil {
		return m.createError
	}
	r.ID = m.nextID
	m.nextID++
	m.reminders[r.ID] = r
	return nil
}

func (m *mockReminderRepository) GetByID(id int64) (*reminder.PaymentReminder, error) {
	r, exists := m.reminders[id]
	if !exists {
		return nil, errors.New("reminder not found")
	}
	return r, nil
}

func (m *mockReminderRepository) GetAll(limit, offset int) ([]*reminder.PaymentReminder, error) {
	out := make([]*reminder.PaymentReminder, 0, len(m.reminders))
	for _, r := range m.reminders {
		out = append(out, r)
	}
	return out, nil
}

func (m *mockReminderRepository) GetByProject(projectID int64) ([]*reminder.PaymentReminder, error) {
	out := make([]*reminder.PaymentReminder, 0)
	for _, r := range m.reminders {
		if r.ProjectID == projectID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *mockReminderRepository) GetByStatus(status string, limit, offset int) ([]*reminder.PaymentReminder, error) {
	out := make([]*reminder.PaymentReminder, 0)
	for _, r := range m.reminders {
		if r.Status == status {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *mockReminderRepository) Update(r *reminder.PaymentReminder) error {
	if m.updateError != nil {
		return m.updateError
	}
	r.UpdatedAt = time.Now()
	m.reminders[r.ID] = r
	return nil
}

func (m *mockReminderRepository) Delete(id int64) error {
	delete(m.reminders, id)
	return nil
}

func (m *mockReminderRepository) PromoteOverdue(asOf time.Time) (int64, error) {
	day := time.Date(asOf.Year(), asOf.Month(), asOf.Day(), 0, 0, 0, 0, asOf.Location())
	var promoted int64
	for _, r := range m.reminders {
		if r.Status == reminder.StatusPending && r.DueDate.Before(day) {
			r.Status = reminder.StatusOverdue
			promoted++
		}
	}
	return promoted, nil
}

var _ = Describe("ReminderService", func() {
	var (
		service  *reminder.Service
		mockRepo *mockReminderRepository
		finance  internal.Principal
		client   internal.Principal
		worker   internal.Principal
	)

	BeforeEach(func() {
		mockRepo = newMockReminderRepository()
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = reminder.NewService(mockRepo, logger)
		finance = internal.Principal{UserID: 1, Role: internal.RoleFinanceOfficer}
		client = internal.Principal{UserID: 2, Role: internal.RoleClient}
		worker = internal.Principal{UserID: 3, Role: internal.RoleWorker}
	})

	newDTO := func(due time.Time) reminder.CreateReminderDTO {
		return reminder.CreateReminderDTO{
			ProjectID:   10,
			Description: "Steel supplier invoice",
			Amount:      decimal.NewFromInt(250000),
			DueDate:     due,
			Recipient:   "PT Baja Utama",
		}
	}

	Describe("Create", func() {
		It("should create a pending reminder with default priority", func() {
			result, err := service.Create(finance, newDTO(time.Now().AddDate(0, 0, 7)))

			Expect(err).ToNot(HaveOccurred())
			Expect(result.Status).To(Equal(reminder.StatusPending))
			Expect(result.Priority).To(Equal(reminder.PriorityMedium))
			Expect(result.CreatedBy).To(Equal(finance.UserID))
			Expect(result.IsClientSubmitted).To(BeFalse())
		})

		It("should reject a due date in the past", func() {
			_, err := service.Create(finance, newDTO(time.Now().AddDate(0, 0, -1)))

			Expect(err).To(HaveOccurred())
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeDueDateInPast))
		})

		It("should deny roles without finance or manager access", func() {
			_, err := service.Create(worker, newDTO(time.Now().AddDate(0, 0, 7)))

			Expect(err).To(HaveOccurred())
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.StatusCode).To(Equal(403))
		})
	})

	Describe("List", func() {
		It("should promote stale pending reminders to overdue before returning", func() {
			stale := &reminder.PaymentReminder{
				ProjectID:   10,
				Description: "old",
				Amount:      decimal.NewFromInt(100),
				DueDate:     time.Now().AddDate(0, 0, -3),
				Status:      reminder.StatusPending,
				Priority:    reminder.PriorityMedium,
				CreatedBy:   finance.UserID,
			}
			Expect(mockRepo.Create(stale)).To(Succeed())

			result, err := service.List(finance, 20, 0)

			Expect(err).ToNot(HaveOccurred())
			Expect(result).To(HaveLen(1))
			Expect(result[0].Status).To(Equal(reminder.StatusOverdue))
		})

		It("should not touch reminders due today or later", func() {
			fresh := &reminder.PaymentReminder{
				ProjectID:   10,
				Description: "fresh",
				Amount:      decimal.NewFromInt(100),
				DueDate:     time.Now().AddDate(0, 0, 2),
				Status:      reminder.StatusPending,
				Priority:    reminder.PriorityMedium,
				CreatedBy:   finance.UserID,
			}
			Expect(mockRepo.Create(fresh)).To(Succeed())

			result, err := service.List(finance, 20, 0)

			Expect(err).ToNot(HaveOccurred())
			Expect(result[0].Status).To(Equal(reminder.StatusPending))
		})

		It("should be idempotent across repeated reads", func() {
			stale := &reminder.PaymentReminder{
				ProjectID: 10,
				Amount:    decimal.NewFromInt(100),
				DueDate:   time.Now().AddDate(0, 0, -1),
				Status:    reminder.StatusPending,
				CreatedBy: finance.UserID,
			}
			Expect(mockRepo.Create(stale)).To(Succeed())

			_, err := service.List(finance, 20, 0)
			Expect(err).ToNot(HaveOccurred())

			n, err := mockRepo.PromoteOverdue(time.Now())
			Expect(err).ToNot(HaveOccurred())
			Expect(n).To(BeZero())
		})
	})

	Describe("SubmitPayment", func() {
		var existing *reminder.PaymentReminder

		BeforeEach(func() {
			var err error
			existing, err = service.Create(finance, newDTO(time.Now().AddDate(0, 0, 7)))
			Expect(err).ToNot(HaveOccurred())
		})

		It("should record the submission and await confirmation", func() {
			dto := reminder.SubmitPaymentDTO{
				PaymentMethod: "bank_transfer",
				TransactionID: "TRX-889",
				ProofURL:      "https://files.example.com/proof.pdf",
			}

			result, err := service.SubmitPayment(existing.ID, client, dto)

			Expect(err).ToNot(HaveOccurred())
			Expect(result.Status).To(Equal(reminder.StatusAwaitingConfirmation))
			Expect(result.PaymentSubmitted).To(BeTrue())
			Expect(result.PaymentSubmittedAt).ToNot(BeNil())
			Expect(result.PaymentMethod).To(Equal("bank_transfer"))
		})

		It("should shield awaiting reminders from overdue promotion", func() {
			dto := reminder.SubmitPaymentDTO{PaymentMethod: "bank_transfer"}
			submitted, err := service.SubmitPayment(existing.ID, client, dto)
			Expect(err).ToNot(HaveOccurred())

			// Backdate the due date, then run a promotion pass.
			submitted.DueDate = time.Now().AddDate(0, 0, -5)
			Expect(mockRepo.Update(submitted)).To(Succeed())

			_, err = service.List(finance, 20, 0)
			Expect(err).ToNot(HaveOccurred())

			got, err := mockRepo.GetByID(existing.ID)
			Expect(err).ToNot(HaveOccurred())
			Expect(got.Status).To(Equal(reminder.StatusAwaitingConfirmation))
		})

		It("should require a payment method", func() {
			_, err := service.SubmitPayment(existing.ID, client, reminder.SubmitPaymentDTO{})

			Expect(err).To(HaveOccurred())
		})

		It("should deny non-client roles", func() {
			dto := reminder.SubmitPaymentDTO{PaymentMethod: "cash"}

			_, err := service.SubmitPayment(existing.ID, worker, dto)

			Expect(err).To(HaveOccurred())
		})

		It("should refuse submissions on settled reminders", func() {
			_, err := service.MarkPaid(existing.ID, finance)
			Expect(err).ToNot(HaveOccurred())

			_, err = service.SubmitPayment(existing.ID, client, reminder.SubmitPaymentDTO{PaymentMethod: "cash"})

			Expect(err).To(Equal(reminder.ErrReminderSettled))
		})
	})

	Describe("ConfirmPayment", func() {
		var existing *reminder.PaymentReminder

		BeforeEach(func() {
			var err error
			existing, err = service.Create(finance, newDTO(time.Now().AddDate(0, 0, 7)))
			Expect(err).ToNot(HaveOccurred())
		})

		It("should refuse when no payment was submitted", func() {
			_, err := service.ConfirmPayment(existing.ID, finance)

			Expect(err).To(HaveOccurred())
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeInvalidStatus))
		})

		It("should settle the reminder after a client submission", func() {
			dto := reminder.SubmitPaymentDTO{PaymentMethod: "bank_transfer"}
			_, err := service.SubmitPayment(existing.ID, client, dto)
			Expect(err).ToNot(HaveOccurred())

			result, err := service.ConfirmPayment(existing.ID, finance)

			Expect(err).ToNot(HaveOccurred())
			Expect(result.Status).To(Equal(reminder.StatusPaid))
			Expect(result.PaymentConfirmed).To(BeTrue())
			Expect(result.PaidAt).ToNot(BeNil())
			Expect(*result.PaidBy).To(Equal(finance.UserID))
		})

		It("should deny the client role", func() {
			dto := reminder.SubmitPaymentDTO{PaymentMethod: "bank_transfer"}
			_, err := service.SubmitPayment(existing.ID, client, dto)
			Expect(err).ToNot(HaveOccurred())

			_, err = service.ConfirmPayment(existing.ID, client)

			Expect(err).To(HaveOccurred())
		})
	})

	Describe("MarkPaid", func() {
		It("should settle a reminder directly", func() {
			existing, err := service.Create(finance, newDTO(time.Now().AddDate(0, 0, 7)))
			Expect(err).ToNot(HaveOccurred())

			result, err := service.MarkPaid(existing.ID, finance)

			Expect(err).ToNot(HaveOccurred())
			Expect(result.Status).To(Equal(reminder.StatusPaid))
		})

		It("should refuse double settlement", func() {
			existing, err := service.Create(finance, newDTO(time.Now().AddDate(0, 0, 7)))
			Expect(err).ToNot(HaveOccurred())

			_, err = service.MarkPaid(existing.ID, finance)
			Expect(err).ToNot(HaveOccurred())

			_, err = service.MarkPaid(existing.ID, finance)
			Expect(err).To(Equal(reminder.ErrReminderSettled))
		})
	})

	Describe("Cancel", func() {
		It("should cancel a pending reminder", func() {
			existing, err := service.Create(finance, newDTO(time.Now().AddDate(0, 0, 7)))
			Expect(err).ToNot(HaveOccurred())

			result, err := service.Cancel(existing.ID, finance)

			Expect(err).ToNot(HaveOccurred())
			Expect(result.Status).To(Equal(reminder.StatusCancelled))
		})

		It("should refuse cancelling a paid reminder", func() {
			existing, err := service.Create(finance, newDTO(time.Now().AddDate(0, 0, 7)))
			Expect(err).ToNot(HaveOccurred())

			_, err = service.MarkPaid(existing.ID, finance)
			Expect(err).ToNot(HaveOccurred())

			_, err = service.Cancel(existing.ID, finance)
			Expect(err).To(Equal(reminder.ErrReminderSettled))
		})
	})

	Describe("SweepOverdue", func() {
		It("should report how many reminders were promoted", func() {
			for i := 0; i < 3; i++ {
				r := &reminder.PaymentReminder{
					ProjectID: 10,
					Amount:    decimal.NewFromInt(100),
					DueDate:   time.Now().AddDate(0, 0, -(i + 1)),
					Status:    reminder.StatusPending,
					CreatedBy: finance.UserID,
				}
				Expect(mockRepo.Create(r)).To(Succeed())
			}

			n, err := service.SweepOverdue()

			Expect(err).ToNot(HaveOccurred())
			Expect(n).To(Equal(int64(3)))
		})
	})
})
