package reminder_test

import (
	"context"
	"log/slog"
	"os"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/shopspring/decimal"

	"github.com/buildtrack/construction-api/internal/core/events"
	"github.com/buildtrack/construction-api/internal/reminder"
)

var _ = Describe("EventHandler", func() {
	var (
		handler  *reminder.EventHandler
		mockRepo *mockReminderRepository
		bus      *events.EventBus
		logger   *slog.Logger
	)

	BeforeEach(func() {
		mockRepo = newMockReminderRepository()
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		handler = reminder.NewEventHandler(mockRepo, logger)
		bus = events.NewEventBus(logger)
		handler.RegisterHandlers(bus)
	})

	Describe("expense approval", func() {
		It("should schedule a disbursement reminder due in thirty days", func() {
			event := events.NewExpenseApprovedEvent(42, 7, decimal.NewFromInt(500000), 12, "crane rental")

			err := bus.PublishSync(context.Background(), event)

			Expect(err).ToNot(HaveOccurred())

			created, err := mockRepo.GetByProject(7)
			Expect(err).ToNot(HaveOccurred())
			Expect(created).To(HaveLen(1))

			r := created[0]
			Expect(r.Status).To(Equal(reminder.StatusPending))
			Expect(r.Priority).To(Equal(reminder.PriorityMedium))
			Expect(*r.ExpenseID).To(Equal(int64(42)))
			Expect(r.Amount.Equal(decimal.NewFromInt(500000))).To(BeTrue())
			Expect(r.Description).To(ContainSubstring("crane rental"))

			wantDue := time.Now().AddDate(0, 0, 30)
			Expect(r.DueDate.Year()).To(Equal(wantDue.Year()))
			Expect(r.DueDate.YearDay()).To(Equal(wantDue.YearDay()))
		})

		It("should escalate priority for large disbursements", func() {
			event := events.NewExpenseApprovedEvent(43, 7, decimal.NewFromInt(25_000_000), 12, "tower crane purchase")

			err := bus.PublishSync(context.Background(), event)

			Expect(err).ToNot(HaveOccurred())

			created, err := mockRepo.GetByProject(7)
			Expect(err).ToNot(HaveOccurred())
			Expect(created).To(HaveLen(1))
			Expect(created[0].Priority).To(Equal(reminder.PriorityHigh))
		})

		It("should ignore unrelated event types", func() {
			event := events.NewExpensePaidEvent(42, 7, decimal.NewFromInt(500000), 12)

			err := bus.PublishSync(context.Background(), event)

			Expect(err).ToNot(HaveOccurred())
			created, err := mockRepo.GetAll(20, 0)
			Expect(err).ToNot(HaveOccurred())
			Expect(created).To(BeEmpty())
		})
	})
})
