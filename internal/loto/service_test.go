package loto

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"

	"github.com/ronaldsalazarvasquez/Inventario-Taller/internal"
	"github.com/ronaldsalazarvasquez/Inventario-Taller/internal/core/events"
)

func TestLoto(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "Lockout Module Suite")
}

type mockRepository struct {
	devices map[string]*LockoutDevice
	usage   map[string]*UsageRecord
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		devices: make(map[string]*LockoutDevice),
		usage:   make(map[string]*UsageRecord),
	}
}

func (m *mockRepository) addDevice(d *LockoutDevice) {
	copied := *d
	m.devices[d.ID] = &copied
}

func (m *mockRepository) CreateDevice(d *LockoutDevice) error {
	copied := *d
	m.devices[d.ID] = &copied
	return nil
}

func (m *mockRepository) GetDevice(id string) (*LockoutDevice, error) {
	d, ok := m.devices[id]
	if !ok {
		return nil, internal.ErrDeviceNotFound
	}
	copied := *d
	return &copied, nil
}

func (m *mockRepository) ListDevices(f DeviceFilter) ([]*LockoutDevice, error) {
	var result []*LockoutDevice
	for _, d := range m.devices {
		if f.Status != nil && d.Status != *f.Status {
			continue
		}
		if f.Type != nil && d.Type != *f.Type {
			continue
		}
		result = append(result, d)
	}
	return result, nil
}

func (m *mockRepository) SaveDevice(d *LockoutDevice) error {
	copied := *d
	m.devices[d.ID] = &copied
	return nil
}

func (m *mockRepository) DeleteDevice(id string) error {
	if _, ok := m.devices[id]; !ok {
		return internal.ErrDeviceNotFound
	}
	delete(m.devices, id)
	return nil
}

func (m *mockRepository) StartUsage(d *LockoutDevice, rec *UsageRecord) error {
	m.SaveDevice(d)
	copied := *rec
	m.usage[rec.ID] = &copied
	return nil
}

func (m *mockRepository) EndUsage(d *LockoutDevice, recordID string, at time.Time) error {
	rec, ok := m.usage[recordID]
	if !ok || rec.EndDate != nil {
		return internal.ErrUsageNotFound
	}
	m.SaveDevice(d)
	stamped := at
	rec.EndDate = &stamped
	return nil
}

func (m *mockRepository) GetUsage(recordID string) (*UsageRecord, error) {
	rec, ok := m.usage[recordID]
	if !ok {
		return nil, internal.ErrUsageNotFound
	}
	copied := *rec
	return &copied, nil
}

func (m *mockRepository) ListUsage(f UsageFilter) ([]*UsageRecord, error) {
	var result []*UsageRecord
	for _, rec := range m.usage {
		if f.DeviceID != "" && rec.DeviceID != f.DeviceID {
			continue
		}
		if f.UserID != "" && rec.UserID != f.UserID {
			continue
		}
		if f.OnlyOpen && rec.EndDate != nil {
			continue
		}
		result = append(result, rec)
	}
	return result, nil
}

type mockUserDirectory struct {
	names map[string]string
}

func (m *mockUserDirectory) Lookup(id string) (string, error) {
	if name, ok := m.names[id]; ok {
		return name, nil
	}
	return "", internal.ErrUserNotFound
}

func availableDevice(id string) *LockoutDevice {
	now := time.Now()
	return &LockoutDevice{
		ID:              id,
		Name:            "Candado de bloqueo eléctrico",
		Type:            DeviceElectric,
		Brand:           "Brady",
		Color:           "rojo",
		Status:          StatusAvailable,
		Location:        "Tablero principal",
		AcquisitionDate: now.AddDate(-1, 0, 0),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

var _ = ginkgo.Describe("LotoService", func() {
	var (
		service *Service
		repo    *mockRepository
	)

	ginkgo.BeforeEach(func() {
		repo = newMockRepository()
		users := &mockUserDirectory{names: map[string]string{
			"EMP-001": "Carlos Mendoza",
		}}
		logger := slog.New(slog.NewTextHandler(io.Discard, nil))
		service = NewService(repo, users, events.NewEventBus(logger), logger)
	})

	ginkgo.Describe("StartUsage", func() {
		ginkgo.BeforeEach(func() {
			repo.addDevice(availableDevice("LOTO-E-001"))
		})

		ginkgo.It("should lock the device to the user and open a usage record", func() {
			rec, err := service.StartUsage("LOTO-E-001", StartUsageDTO{
				UserID:       "EMP-001",
				LockLocation: "Panel A-3",
				LockReason:   "Electrical isolation",
			})

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(rec.Open()).To(gomega.BeTrue())

			d, _ := repo.GetDevice("LOTO-E-001")
			gomega.Expect(d.Status).To(gomega.Equal(StatusInUse))
			gomega.Expect(*d.CurrentUserID).To(gomega.Equal("EMP-001"))
		})

		ginkgo.It("should reject a second lockout on the same device", func() {
			_, err := service.StartUsage("LOTO-E-001", StartUsageDTO{
				UserID:       "EMP-001",
				LockLocation: "Panel A-3",
				LockReason:   "Electrical isolation",
			})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			_, err = service.StartUsage("LOTO-E-001", StartUsageDTO{
				UserID:       "EMP-001",
				LockLocation: "Panel B-1",
				LockReason:   "Mechanical isolation",
			})

			gomega.Expect(err).To(gomega.Equal(internal.ErrDeviceNotAvailable))
			appErr, _ := internal.IsAppError(err)
			gomega.Expect(appErr.Type).To(gomega.Equal(internal.ErrorTypeInvalidTransition))
		})

		ginkgo.It("should reject an unknown user", func() {
			_, err := service.StartUsage("LOTO-E-001", StartUsageDTO{
				UserID:       "EMP-999",
				LockLocation: "Panel A-3",
				LockReason:   "Electrical isolation",
			})

			gomega.Expect(err).To(gomega.Equal(internal.ErrUserNotFound))
		})
	})

	ginkgo.Describe("EndUsage", func() {
		ginkgo.BeforeEach(func() {
			repo.addDevice(availableDevice("LOTO-E-001"))
		})

		ginkgo.It("should free the device and close the record", func() {
			rec, err := service.StartUsage("LOTO-E-001", StartUsageDTO{
				UserID:       "EMP-001",
				LockLocation: "Panel A-3",
				LockReason:   "Electrical isolation",
			})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			closed, err := service.EndUsage(rec.ID)

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(closed.EndDate).ToNot(gomega.BeNil())

			d, _ := repo.GetDevice("LOTO-E-001")
			gomega.Expect(d.Status).To(gomega.Equal(StatusAvailable))
			gomega.Expect(d.CurrentUserID).To(gomega.BeNil())
		})

		ginkgo.It("should reject closing an already closed record", func() {
			rec, err := service.StartUsage("LOTO-E-001", StartUsageDTO{
				UserID:       "EMP-001",
				LockLocation: "Panel A-3",
				LockReason:   "Electrical isolation",
			})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			_, err = service.EndUsage(rec.ID)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			_, err = service.EndUsage(rec.ID)

			gomega.Expect(err).To(gomega.Equal(internal.ErrUsageAlreadyEnded))
		})

		ginkgo.It("should allow a new lockout after the previous one ends", func() {
			rec, err := service.StartUsage("LOTO-E-001", StartUsageDTO{
				UserID:       "EMP-001",
				LockLocation: "Panel A-3",
				LockReason:   "Electrical isolation",
			})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			_, err = service.EndUsage(rec.ID)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			_, err = service.StartUsage("LOTO-E-001", StartUsageDTO{
				UserID:       "EMP-001",
				LockLocation: "Panel C-2",
				LockReason:   "Pump repair",
			})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
		})
	})

	ginkgo.Describe("Delete", func() {
		ginkgo.BeforeEach(func() {
			repo.addDevice(availableDevice("LOTO-E-001"))
		})

		ginkgo.It("should refuse to remove a device under an active lockout", func() {
			_, err := service.StartUsage("LOTO-E-001", StartUsageDTO{
				UserID:       "EMP-001",
				LockLocation: "Panel A-3",
				LockReason:   "Electrical isolation",
			})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			err = service.Delete("LOTO-E-001")

			gomega.Expect(err).To(gomega.Equal(internal.ErrDeviceInUse))
			appErr, _ := internal.IsAppError(err)
			gomega.Expect(appErr.Type).To(gomega.Equal(internal.ErrorTypeConflict))
		})

		ginkgo.It("should remove an idle device", func() {
			err := service.Delete("LOTO-E-001")

			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			_, err = service.Get("LOTO-E-001")
			gomega.Expect(err).To(gomega.Equal(internal.ErrDeviceNotFound))
		})
	})

	ginkgo.Describe("SetCondition", func() {
		ginkgo.It("should mark an idle device as damaged and back", func() {
			d := availableDevice("LOTO-M-002")

			gomega.Expect(d.SetCondition(StatusDamaged, time.Now())).To(gomega.Succeed())
			gomega.Expect(d.Status).To(gomega.Equal(StatusDamaged))

			gomega.Expect(d.SetCondition(StatusAvailable, time.Now())).To(gomega.Succeed())
			gomega.Expect(d.Status).To(gomega.Equal(StatusAvailable))
		})

		ginkgo.It("should refuse to change the condition of a device in use", func() {
			d := availableDevice("LOTO-M-002")
			gomega.Expect(d.StartUse("EMP-001", time.Now())).To(gomega.Succeed())

			err := d.SetCondition(StatusOutOfService, time.Now())

			gomega.Expect(err).To(gomega.Equal(internal.ErrDeviceInUse))
		})
	})
})
