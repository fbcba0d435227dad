package events_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"sync/atomic"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/shopspring/decimal"

	"github.com/buildtrack/construction-api/internal/core/events"
)

func TestEventBus(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "EventBus Suite")
}

var _ = Describe("EventBus", func() {
	var bus *events.EventBus

	BeforeEach(func() {
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		bus = events.NewEventBus(logger)
	})

	newEvent := func() events.Event {
		return events.NewExpenseApprovedEvent(1, 2, decimal.NewFromInt(100), 3, "formwork")
	}

	Describe("Publish", func() {
		It("should reach every listener before Drain returns", func() {
			var calls int32
			for i := 0; i < 3; i++ {
				bus.Subscribe(events.EventTypeExpenseApproved, func(ctx context.Context, e events.Event) error {
					atomic.AddInt32(&calls, 1)
					return nil
				})
			}

			Expect(bus.Publish(context.Background(), newEvent())).To(Succeed())
			bus.Drain()

			Expect(atomic.LoadInt32(&calls)).To(Equal(int32(3)))
		})

		It("should not surface listener failures to the publisher", func() {
			bus.Subscribe(events.EventTypeExpenseApproved, func(ctx context.Context, e events.Event) error {
				return errors.New("listener broke")
			})

			Expect(bus.Publish(context.Background(), newEvent())).To(Succeed())
			bus.Drain()
		})

		It("should accept events nobody listens to", func() {
			paid := events.NewExpensePaidEvent(1, 2, decimal.NewFromInt(100), 3)

			Expect(bus.Publish(context.Background(), paid)).To(Succeed())
		})
	})

	Describe("PublishSync", func() {
		It("should stop at the first failing listener", func() {
			var second int32
			bus.Subscribe(events.EventTypeExpenseApproved, func(ctx context.Context, e events.Event) error {
				return errors.New("listener broke")
			})
			bus.Subscribe(events.EventTypeExpenseApproved, func(ctx context.Context, e events.Event) error {
				atomic.AddInt32(&second, 1)
				return nil
			})

			err := bus.PublishSync(context.Background(), newEvent())

			Expect(err).To(HaveOccurred())
			Expect(atomic.LoadInt32(&second)).To(BeZero())
		})

		It("should carry the event identity through", func() {
			var got events.Event
			bus.Subscribe(events.EventTypeExpenseApproved, func(ctx context.Context, e events.Event) error {
				got = e
				return nil
			})

			ev := newEvent()
			Expect(bus.PublishSync(context.Background(), ev)).To(Succeed())

			Expect(got.EventID()).To(Equal(ev.EventID()))
			Expect(got.EventType()).To(Equal(events.EventTypeExpenseApproved))
			Expect(got.OccurredAt()).To(BeTemporally("~", time.Now(), time.Minute))
		})
	})
})
