package attendance_test

import (
	"fmt"
	"log/slog"
	"os"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"

	"github.com/buildtrack/construction-api/internal"
	"github.com/buildtrack/construction-api/internal/attendance"
)

func TestAttendanceService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "AttendanceService Suite")
}

// Mock repository for testing
type mockAttendanceRepository struct {
	records     map[string]*attendance.Attendance // "userID/date" -> record
	createError error
	updateError error
	nextID      int64
}

func newMockAttendanceRepository() *mockAttendanceRepository {
	return &mockAttendanceRepository{
		records: make(map[string]*attendance.Attendance),
		nextID:  1,
	}
}

func key(userID int64, date time.Time) string {
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	return fmt.Sprintf("%d/%s", userID, day.Format("2006-01-02"))
}

func (m *mockAttendanceRepository) Create(a *attendance.Attendance) error {
	if m.createError != nil {
		return m.createError
	}
	a.ID = m.nextID
	m.nextID++
	m.records[key(a.UserID, a.Date)] = a
	return nil
}

func (m *mockAttendanceRepository) GetByUserAndDate(userID int64, date time.Time) (*attendance.Attendance, error) {
	a, exists := m.records[key(userID, date)]
	if !exists {
		return nil, gorm.ErrRecordNotFound
	}
	return a, nil
}

func (m *mockAttendanceRepository) GetByUser(userID int64, limit, offset int) ([]*attendance.Attendance, error) {
	out := make([]*attendance.Attendance, 0)
	for _, a := range m.records {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *mockAttendanceRepository) GetByDate(date time.Time) ([]*attendance.Attendance, error) {
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	out := make([]*attendance.Attendance, 0)
	for _, a := range m.records {
		if a.Date.Equal(day) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *mockAttendanceRepository) GetByUserAndRange(userID int64, from, to time.Time) ([]*attendance.Attendance, error) {
	out := make([]*attendance.Attendance, 0)
	for _, a := range m.records {
		if a.UserID == userID && !a.Date.Before(from) && !a.Date.After(to) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *mockAttendanceRepository) Update(a *attendance.Attendance) error {
	if m.updateError != nil {
		return m.updateError
	}
	m.records[key(a.UserID, a.Date)] = a
	return nil
}

type mockStaffCounter struct {
	active int64
	err    error
}

func (m *mockStaffCounter) CountActive() (int64, error) {
	return m.active, m.err
}

type mockLeaveCalendar struct {
	onLeave int64
	err     error
}

func (m *mockLeaveCalendar) CountApprovedOn(date time.Time) (int64, error) {
	return m.onLeave, m.err
}

var _ = Describe("AttendanceService", func() {
	var (
		service  *attendance.Service
		mockRepo *mockAttendanceRepository
		staff    *mockStaffCounter
		leaves   *mockLeaveCalendar
		worker   internal.Principal
		hr       internal.Principal
	)

	BeforeEach(func() {
		mockRepo = newMockAttendanceRepository()
		staff = &mockStaffCounter{active: 6}
		leaves = &mockLeaveCalendar{}
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		cfg := internal.SchedulerConfig{CheckInCutoff: "09:30"}
		service = attendance.NewService(mockRepo, staff, leaves, cfg, logger)
		worker = internal.Principal{UserID: 7, Role: internal.RoleWorker}
		hr = internal.Principal{UserID: 8, Role: internal.RoleHRExecutive}
	})

	Describe("CheckIn", func() {
		It("should open a record for today", func() {
			result, err := service.CheckIn(worker)

			Expect(err).ToNot(HaveOccurred())
			Expect(result.UserID).To(Equal(worker.UserID))
			Expect(result.CheckOutTime).To(BeNil())
			Expect(result.Date.Hour()).To(BeZero())
		})

		It("should return the existing record on a same-day re-check-in", func() {
			first, err := service.CheckIn(worker)
			Expect(err).ToNot(HaveOccurred())

			second, err := service.CheckIn(worker)

			Expect(err).ToNot(HaveOccurred())
			Expect(second.ID).To(Equal(first.ID))
			Expect(second.CheckInTime).To(Equal(first.CheckInTime))
		})
	})

	Describe("StatusForCheckIn", func() {
		day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

		It("should mark arrivals before the cutoff as present", func() {
			at := day.Add(9 * time.Hour)
			Expect(attendance.StatusForCheckIn(at, 9, 30)).To(Equal(attendance.StatusPresent))
		})

		It("should mark an arrival exactly on the cutoff as present", func() {
			at := day.Add(9*time.Hour + 30*time.Minute)
			Expect(attendance.StatusForCheckIn(at, 9, 30)).To(Equal(attendance.StatusPresent))
		})

		It("should mark an arrival one second after the cutoff as late", func() {
			at := day.Add(9*time.Hour + 30*time.Minute + time.Second)
			Expect(attendance.StatusForCheckIn(at, 9, 30)).To(Equal(attendance.StatusLate))
		})
	})

	Describe("CheckOut", func() {
		It("should fail without a prior check-in", func() {
			_, err := service.CheckOut(worker)

			Expect(err).To(Equal(attendance.ErrNoAttendanceRecord))
		})

		It("should derive hours worked and mark a short day HALF_DAY", func() {
			checkedIn, err := service.CheckIn(worker)
			Expect(err).ToNot(HaveOccurred())

			// Pretend the check-in happened earlier in the day.
			earlier := checkedIn.CheckInTime.Add(-90 * time.Minute)
			checkedIn.CheckInTime = earlier
			Expect(mockRepo.Update(checkedIn)).To(Succeed())

			result, err := service.CheckOut(worker)

			Expect(err).ToNot(HaveOccurred())
			Expect(result.Status).To(Equal(attendance.StatusHalfDay))
			Expect(result.CheckOutTime).ToNot(BeNil())
			Expect(*result.HoursWorked).To(BeNumerically("~", 1.5, 0.05))
		})

		It("should mark a full day DEPARTED", func() {
			checkedIn, err := service.CheckIn(worker)
			Expect(err).ToNot(HaveOccurred())

			earlier := checkedIn.CheckInTime.Add(-8 * time.Hour)
			checkedIn.CheckInTime = earlier
			Expect(mockRepo.Update(checkedIn)).To(Succeed())

			result, err := service.CheckOut(worker)

			Expect(err).ToNot(HaveOccurred())
			Expect(result.Status).To(Equal(attendance.StatusDeparted))
			Expect(*result.HoursWorked).To(BeNumerically("~", 8.0, 0.05))
		})

		It("should refuse a second check-out", func() {
			_, err := service.CheckIn(worker)
			Expect(err).ToNot(HaveOccurred())

			_, err = service.CheckOut(worker)
			Expect(err).ToNot(HaveOccurred())

			_, err = service.CheckOut(worker)
			Expect(err).To(Equal(attendance.ErrAlreadyCheckedOut))
		})
	})

	Describe("Today", func() {
		It("should return the open record", func() {
			_, err := service.CheckIn(worker)
			Expect(err).ToNot(HaveOccurred())

			result, err := service.Today(worker)

			Expect(err).ToNot(HaveOccurred())
			Expect(result.UserID).To(Equal(worker.UserID))
		})

		It("should report no record when the user never checked in", func() {
			_, err := service.Today(worker)

			Expect(err).To(Equal(attendance.ErrNoAttendanceRecord))
		})
	})

	Describe("HistoryForUser", func() {
		It("should let HR read any user's history", func() {
			_, err := service.CheckIn(worker)
			Expect(err).ToNot(HaveOccurred())

			records, err := service.HistoryForUser(worker.UserID, hr, 20, 0)

			Expect(err).ToNot(HaveOccurred())
			Expect(records).To(HaveLen(1))
		})

		It("should deny other workers", func() {
			other := internal.Principal{UserID: 99, Role: internal.RoleWorker}

			_, err := service.HistoryForUser(worker.UserID, other, 20, 0)

			Expect(err).To(HaveOccurred())
		})

		It("should always allow reading your own history", func() {
			records, err := service.HistoryForUser(worker.UserID, worker, 20, 0)

			Expect(err).ToNot(HaveOccurred())
			Expect(records).To(BeEmpty())
		})
	})

	Describe("DailyReport", func() {
		It("should deny workers", func() {
			_, err := service.DailyReport(time.Now(), worker)

			Expect(err).To(HaveOccurred())
		})

		It("should list everyone checked in on the date", func() {
			_, err := service.CheckIn(worker)
			Expect(err).ToNot(HaveOccurred())
			_, err = service.CheckIn(hr)
			Expect(err).ToNot(HaveOccurred())

			records, err := service.DailyReport(time.Now(), hr)

			Expect(err).ToNot(HaveOccurred())
			Expect(records).To(HaveLen(2))
		})
	})

	Describe("DailySummary", func() {
		day := time.Date(2026, 4, 6, 0, 0, 0, 0, time.UTC)

		seed := func(userID int64, status string) {
			Expect(mockRepo.Create(&attendance.Attendance{
				UserID:      userID,
				Date:        day,
				CheckInTime: day.Add(9 * time.Hour),
				Status:      status,
			})).To(Succeed())
		}

		It("should deny workers", func() {
			_, err := service.DailySummary(day, worker)

			Expect(err).To(HaveOccurred())
		})

		It("should break the workforce down including absentees", func() {
			seed(1, attendance.StatusPresent)
			seed(2, attendance.StatusLate)
			seed(3, attendance.StatusDeparted)
			leaves.onLeave = 1

			summary, err := service.DailySummary(day, hr)

			Expect(err).ToNot(HaveOccurred())
			Expect(summary.Present).To(Equal(int64(1)))
			Expect(summary.Late).To(Equal(int64(1)))
			Expect(summary.Departed).To(Equal(int64(1)))
			Expect(summary.OnLeave).To(Equal(int64(1)))
			// 6 active staff, 3 with records, 1 on leave.
			Expect(summary.Absent).To(Equal(int64(2)))
		})

		It("should never report negative absentees", func() {
			staff.active = 1
			seed(1, attendance.StatusPresent)
			seed(2, attendance.StatusLate)

			summary, err := service.DailySummary(day, hr)

			Expect(err).ToNot(HaveOccurred())
			Expect(summary.Absent).To(BeZero())
		})
	})
})
