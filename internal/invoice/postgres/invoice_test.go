package postgres

import (
	"fmt"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/buildtrack/construction-api/internal/invoice"
)

func TestInvoiceRepository(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "InvoiceRepository Suite")
}

var _ = Describe("InvoiceRepository", func() {
	var (
		db   *gorm.DB
		repo *InvoiceRepository
	)

	BeforeEach(func() {
		var err error

		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&invoice.Invoice{}, &invoice.InvoiceSequence{})
		Expect(err).NotTo(HaveOccurred())

		repo = NewInvoiceRepository(db)
	})

	AfterEach(func() {
		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		err = sqlDB.Close()
		Expect(err).NotTo(HaveOccurred())
	})

	newInvoice := func(number, status string, due time.Time) *invoice.Invoice {
		return &invoice.Invoice{
			ProjectID:     1,
			InvoiceNumber: number,
			Amount:        decimal.NewFromInt(1000000),
			TaxAmount:     decimal.NewFromInt(110000),
			TotalAmount:   decimal.NewFromInt(1110000),
			IssueDate:     time.Now().AddDate(0, 0, -10),
			DueDate:       due,
			Status:        status,
			CreatedBy:     1,
		}
	}

	Describe("NextSequence", func() {
		It("should hand out distinct consecutive values", func() {
			first, err := repo.NextSequence(2026)
			Expect(err).NotTo(HaveOccurred())
			second, err := repo.NextSequence(2026)
			Expect(err).NotTo(HaveOccurred())

			Expect(first).To(Equal(int64(1)))
			Expect(second).To(Equal(int64(2)))
		})

		It("should count each year independently", func() {
			_, err := repo.NextSequence(2025)
			Expect(err).NotTo(HaveOccurred())
			_, err = repo.NextSequence(2025)
			Expect(err).NotTo(HaveOccurred())

			seq, err := repo.NextSequence(2026)
			Expect(err).NotTo(HaveOccurred())
			Expect(seq).To(Equal(int64(1)))
		})

		It("should allocate even when the allocations interleave", func() {
			seen := map[int64]bool{}
			for i := 0; i < 5; i++ {
				seq, err := repo.NextSequence(2026)
				Expect(err).NotTo(HaveOccurred())
				Expect(seen[seq]).To(BeFalse(), fmt.Sprintf("sequence %d handed out twice", seq))
				seen[seq] = true
			}
		})
	})

	Describe("PromoteOverdue", func() {
		It("should flip only sent invoices past their due date", func() {
			stale := newInvoice("INV-2026-0001", invoice.StatusSent, time.Now().AddDate(0, 0, -3))
			fresh := newInvoice("INV-2026-0002", invoice.StatusSent, time.Now().AddDate(0, 0, 3))
			draft := newInvoice("INV-2026-0003", invoice.StatusDraft, time.Now().AddDate(0, 0, -3))
			for _, i := range []*invoice.Invoice{stale, fresh, draft} {
				Expect(repo.Create(i)).To(Succeed())
			}

			n, err := repo.PromoteOverdue(time.Now())
			Expect(err).NotTo(HaveOccurred())
			Expect(n).To(Equal(int64(1)))

			got, err := repo.GetByID(stale.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.Status).To(Equal(invoice.StatusOverdue))

			got, err = repo.GetByID(fresh.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.Status).To(Equal(invoice.StatusSent))

			got, err = repo.GetByID(draft.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.Status).To(Equal(invoice.StatusDraft))
		})
	})
})
