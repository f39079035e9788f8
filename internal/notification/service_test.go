package notification

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"

	"github.com/ronaldsalazarvasquez/Inventario-Taller/internal/core/events"
)

func TestNotification(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "Notification Module Suite")
}

type mockRepository struct {
	log []*Notification
}

func (m *mockRepository) Append(n *Notification) error {
	copied := *n
	m.log = append(m.log, &copied)
	return nil
}

func (m *mockRepository) List(unreadOnly bool, limit int) ([]*Notification, error) {
	var result []*Notification
	for i := len(m.log) - 1; i >= 0 && len(result) < limit; i-- {
		if unreadOnly && m.log[i].Read {
			continue
		}
		result = append(result, m.log[i])
	}
	return result, nil
}

func (m *mockRepository) MarkAllRead() (int64, error) {
	var count int64
	for _, n := range m.log {
		if !n.Read {
			n.Read = true
			count++
		}
	}
	return count, nil
}

func (m *mockRepository) HasForRef(t Type, refID string) (bool, error) {
	for _, n := range m.log {
		if n.Type == t && n.RefID != nil && *n.RefID == refID {
			return true, nil
		}
	}
	return false, nil
}

var _ = ginkgo.Describe("NotificationService", func() {
	var (
		service *Service
		repo    *mockRepository
	)

	ginkgo.BeforeEach(func() {
		repo = &mockRepository{}
		logger := slog.New(slog.NewTextHandler(io.Discard, nil))
		service = NewService(repo, logger)
	})

	ginkgo.Describe("Append", func() {
		ginkgo.It("should append an unread record", func() {
			n, err := service.Append(TypeCheckOut, "Carlos retiró el taladro", nil)

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(n.Read).To(gomega.BeFalse())
			gomega.Expect(repo.log).To(gomega.HaveLen(1))
		})
	})

	ginkgo.Describe("AppendOverdueOnce", func() {
		ginkgo.It("should append only one overdue record per loan", func() {
			first, err := service.AppendOverdueOnce("préstamo vencido", "loan-1")
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(first).ToNot(gomega.BeNil())

			second, err := service.AppendOverdueOnce("préstamo vencido", "loan-1")
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(second).To(gomega.BeNil())

			gomega.Expect(repo.log).To(gomega.HaveLen(1))
		})

		ginkgo.It("should track different loans independently", func() {
			_, err := service.AppendOverdueOnce("vencido", "loan-1")
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			n, err := service.AppendOverdueOnce("vencido", "loan-2")
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(n).ToNot(gomega.BeNil())

			gomega.Expect(repo.log).To(gomega.HaveLen(2))
		})
	})

	ginkgo.Describe("MarkAllRead", func() {
		ginkgo.It("should mark every unread record", func() {
			service.Append(TypeCheckOut, "uno", nil)
			service.Append(TypeCheckIn, "dos", nil)

			count, err := service.MarkAllRead()

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(count).To(gomega.Equal(int64(2)))

			unread, _ := service.List(true, 50)
			gomega.Expect(unread).To(gomega.BeEmpty())
		})
	})
})

var _ = ginkgo.Describe("EventHandler", func() {
	var (
		repo *mockRepository
		bus  *events.EventBus
	)

	ginkgo.BeforeEach(func() {
		repo = &mockRepository{}
		logger := slog.New(slog.NewTextHandler(io.Discard, nil))
		service := NewService(repo, logger)
		bus = events.NewEventBus(logger)
		NewEventHandler(service, logger).RegisterEventHandlers(bus)
	})

	ginkgo.It("should append records in publish order", func() {
		ctx := context.Background()
		estimated := time.Now().Add(2 * time.Hour)

		err := bus.PublishSync(ctx, events.NewToolCheckedOutEvent("HER-001", "Taladro", "EMP-001", "Carlos Mendoza", estimated))
		gomega.Expect(err).ToNot(gomega.HaveOccurred())

		err = bus.PublishSync(ctx, events.NewToolCheckedInEvent("HER-001", "Taladro", "EMP-001", "Carlos Mendoza"))
		gomega.Expect(err).ToNot(gomega.HaveOccurred())

		gomega.Expect(repo.log).To(gomega.HaveLen(2))
		gomega.Expect(repo.log[0].Type).To(gomega.Equal(TypeCheckOut))
		gomega.Expect(repo.log[1].Type).To(gomega.Equal(TypeCheckIn))
	})

	ginkgo.It("should reference the tool in the record", func() {
		err := bus.PublishSync(context.Background(), events.NewToolDecommissionedEvent("HER-002", "Esmeril", "Desgaste", "ADM-001"))
		gomega.Expect(err).ToNot(gomega.HaveOccurred())

		gomega.Expect(repo.log).To(gomega.HaveLen(1))
		gomega.Expect(repo.log[0].Type).To(gomega.Equal(TypeDecommission))
		gomega.Expect(*repo.log[0].RefID).To(gomega.Equal("HER-002"))
	})

	ginkgo.It("should dedupe overdue events per loan", func() {
		ctx := context.Background()
		estimated := time.Now().Add(-time.Hour)

		overdue := events.NewLoanOverdueEvent("loan-1", "HER-001", "Taladro", "EMP-001", "Carlos Mendoza", estimated)
		gomega.Expect(bus.PublishSync(ctx, overdue)).To(gomega.Succeed())

		again := events.NewLoanOverdueEvent("loan-1", "HER-001", "Taladro", "EMP-001", "Carlos Mendoza", estimated)
		gomega.Expect(bus.PublishSync(ctx, again)).To(gomega.Succeed())

		gomega.Expect(repo.log).To(gomega.HaveLen(1))
	})
})
