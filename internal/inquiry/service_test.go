package inquiry_test

import (
	"errors"
	"log/slog"
	"os"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/buildtrack/construction-api/internal"
	"github.com/buildtrack/construction-api/internal/inquiry"
)

func TestInquiryService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "InquiryService Suite")
}

// Mock repository for testing
type mockInquiryRepository struct {
	inquiries map[int64]*inquiry.Inquiry
	nextID    int64
}

func newMockInquiryRepository() *mockInquiryRepository {
	return &mockInquiryRepository{
		inquiries: make(map[int64]*inquiry.Inquiry),
		nextID:    1,
	}
}

func (m *mockInquiryRepository) Create(i *inquiry.Inquiry) error {
	i.ID = m.nextID
	m.nextID++
	m.inquiries[i.ID] = i
	return nil
}

func (m *mockInquiryRepository) GetByID(id int64) (*inquiry.Inquiry, error) {
	i, exists := m.inquiries[id]
	if !exists {
		return nil, errors.New("inquiry not found")
	}
	return i, nil
}

func (m *mockInquiryRepository) GetAll(limit, offset int) ([]*inquiry.Inquiry, error) {
	out := make([]*inquiry.Inquiry, 0, len(m.inquiries))
	for _, i := range m.inquiries {
		out = append(out, i)
	}
	return out, nil
}

func (m *mockInquiryRepository) GetByStatus(status string, limit, offset int) ([]*inquiry.Inquiry, error) {
	out := make([]*inquiry.Inquiry, 0)
	for _, i := range m.inquiries {
		if i.Status == status {
			out = append(out, i)
		}
	}
	return out, nil
}

func (m *mockInquiryRepository) Update(i *inquiry.Inquiry) error {
	m.inquiries[i.ID] = i
	return nil
}

var _ = Describe("InquiryService", func() {
	var (
		service  *inquiry.Service
		mockRepo *mockInquiryRepository
		manager  internal.Principal
		worker   internal.Principal
	)

	BeforeEach(func() {
		mockRepo = newMockInquiryRepository()
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = inquiry.NewService(mockRepo, logger)
		manager = internal.Principal{UserID: 70, Role: internal.RoleProjectManager}
		worker = internal.Principal{UserID: 71, Role: internal.RoleWorker}
	})

	newDTO := func() inquiry.CreateInquiryDTO {
		return inquiry.CreateInquiryDTO{
			ClientName:  "Dewi Lestari",
			ClientEmail: "dewi@example.com",
			Subject:     "Warehouse extension quote",
			Message:     "We need an estimate for a 400 sqm extension.",
		}
	}

	Describe("Submit", func() {
		It("should open an inquiry without authentication", func() {
			result, err := service.Submit(newDTO())

			Expect(err).ToNot(HaveOccurred())
			Expect(result.Status).To(Equal(inquiry.StatusOpen))
			Expect(result.ID).To(BeNumerically(">", 0))
		})

		It("should require a valid email", func() {
			dto := newDTO()
			dto.ClientEmail = "not-an-email"

			_, err := service.Submit(dto)

			Expect(err).To(HaveOccurred())
		})
	})

	Describe("Respond", func() {
		It("should attach the response and mark the inquiry responded", func() {
			i, err := service.Submit(newDTO())
			Expect(err).ToNot(HaveOccurred())

			dto := inquiry.RespondInquiryDTO{ResponseText: "We will send a quote this week."}
			result, err := service.Respond(i.ID, manager, dto)

			Expect(err).ToNot(HaveOccurred())
			Expect(result.Status).To(Equal(inquiry.StatusResponded))
			Expect(result.ResponseText).To(Equal("We will send a quote this week."))
			Expect(*result.RespondedBy).To(Equal(manager.UserID))
		})

		It("should deny workers", func() {
			i, err := service.Submit(newDTO())
			Expect(err).ToNot(HaveOccurred())

			_, err = service.Respond(i.ID, worker, inquiry.RespondInquiryDTO{ResponseText: "hi"})

			Expect(err).To(HaveOccurred())
		})

		It("should refuse responding to a closed inquiry", func() {
			i, err := service.Submit(newDTO())
			Expect(err).ToNot(HaveOccurred())

			_, err = service.Close(i.ID, manager)
			Expect(err).ToNot(HaveOccurred())

			_, err = service.Respond(i.ID, manager, inquiry.RespondInquiryDTO{ResponseText: "too late"})
			Expect(err).To(Equal(inquiry.ErrInquiryClosed))
		})
	})

	Describe("Close", func() {
		It("should close an open inquiry", func() {
			i, err := service.Submit(newDTO())
			Expect(err).ToNot(HaveOccurred())

			result, err := service.Close(i.ID, manager)

			Expect(err).ToNot(HaveOccurred())
			Expect(result.Status).To(Equal(inquiry.StatusClosed))
		})

		It("should refuse closing twice", func() {
			i, err := service.Submit(newDTO())
			Expect(err).ToNot(HaveOccurred())

			_, err = service.Close(i.ID, manager)
			Expect(err).ToNot(HaveOccurred())

			_, err = service.Close(i.ID, manager)
			Expect(err).To(Equal(inquiry.ErrInquiryClosed))
		})
	})

	Describe("List", func() {
		It("should filter by status", func() {
			first, err := service.Submit(newDTO())
			Expect(err).ToNot(HaveOccurred())
			_, err = service.Submit(newDTO())
			Expect(err).ToNot(HaveOccurred())

			_, err = service.Close(first.ID, manager)
			Expect(err).ToNot(HaveOccurred())

			open, err := service.List(manager, inquiry.StatusOpen, 20, 0)

			Expect(err).ToNot(HaveOccurred())
			Expect(open).To(HaveLen(1))
		})

		It("should deny workers", func() {
			_, err := service.List(worker, "", 20, 0)

			Expect(err).To(HaveOccurred())
		})
	})
})
