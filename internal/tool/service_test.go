package tool

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

func TestTool(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "Tool Module Suite")
}

// Mock Repository backed by maps. Command methods mimic the transactional
// repository: they write the tool and the ledger record together.
type mockRepository struct {
	tools         map[string]*Tool
	loans         map[string]*LoanRecord
	maintenance   map[string][]*MaintenanceRecord
	decommissions map[string]*DecommissionRecord
	returnError   error
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		tools:         make(map[string]*Tool),
		loans:         make(map[string]*LoanRecord),
		maintenance:   make(map[string][]*MaintenanceRecord),
		decommissions: make(map[string]*DecommissionRecord),
	}
}

func (m *mockRepository) addTool(t *Tool) {
	copied := *t
	m.tools[t.ID] = &copied
}

func (m *mockRepository) CreateTool(t *Tool) error {
	if m.returnError != nil {
		return m.returnError
	}
	copied := *t
	m.tools[t.ID] = &copied
	return nil
}

func (m *mockRepository) GetTool(id string) (*Tool, error) {
	if m.returnError != nil {
		return nil, m.returnError
	}
	t, ok := m.tools[id]
	if !ok {
		return nil, internal.ErrToolNotFound
	}
	copied := *t
	if t.Custody != nil {
		custody := *t.Custody
		copied.Custody = &custody
	}
	return &copied, nil
}

func (m *mockRepository) ListTools(f Filter) ([]*Tool, error) {
	var result []*Tool
	for _, t := range m.tools {
		if f.Status != nil && t.Status != *f.Status {
			continue
		}
		if f.Category != nil && t.Category != *f.Category {
			continue
		}
		result = append(result, t)
	}
	return result, nil
}

func (m *mockRepository) SaveTool(t *Tool) error {
	if m.returnError != nil {
		return m.returnError
	}
	copied := *t
	m.tools[t.ID] = &copied
	return nil
}

func (m *mockRepository) CheckOut(t *Tool, rec *LoanRecord) error {
	if m.returnError != nil {
		return m.returnError
	}
	m.SaveTool(t)
	copied := *rec
	m.loans[rec.ID] = &copied
	return nil
}

func (m *mockRepository) CheckIn(t *Tool, loanID string, at time.Time) error {
	if m.returnError != nil {
		return m.returnError
	}
	rec, ok := m.loans[loanID]
	if !ok || rec.CheckinDate != nil {
		return internal.ErrLoanNotFound
	}
	m.SaveTool(t)
	stamped := at
	rec.CheckinDate = &stamped
	return nil
}

func (m *mockRepository) OpenLoan(toolID string) (*LoanRecord, error) {
	for _, rec := range m.loans {
		if rec.ToolID == toolID && rec.CheckinDate == nil {
			copied := *rec
			return &copied, nil
		}
	}
	return nil, internal.ErrLoanNotFound
}

func (m *mockRepository) ListLoans(f LoanFilter) ([]*LoanRecord, error) {
	var result []*LoanRecord
	for _, rec := range m.loans {
		if f.ToolID != "" && rec.ToolID != f.ToolID {
			continue
		}
		if f.UserID != "" && rec.UserID != f.UserID {
			continue
		}
		if f.OnlyOpen && rec.CheckinDate != nil {
			continue
		}
		if f.OnlyClosed && rec.CheckinDate == nil {
			continue
		}
		result = append(result, rec)
	}
	return result, nil
}

func (m *mockRepository) AddMaintenance(t *Tool, rec *MaintenanceRecord) error {
	if m.returnError != nil {
		return m.returnError
	}
	m.SaveTool(t)
	m.maintenance[rec.ToolID] = append(m.maintenance[rec.ToolID], rec)
	return nil
}

func (m *mockRepository) ListMaintenance(toolID string) ([]*MaintenanceRecord, error) {
	return m.maintenance[toolID], nil
}

func (m *mockRepository) AllMaintenance() ([]*MaintenanceRecord, error) {
	var result []*MaintenanceRecord
	for _, records := range m.maintenance {
		result = append(result, records...)
	}
	return result, nil
}

func (m *mockRepository) Decommission(t *Tool, rec *DecommissionRecord, closeOpenLoanAt *time.Time) error {
	if m.returnError != nil {
		return m.returnError
	}
	m.SaveTool(t)
	copied := *rec
	m.decommissions[rec.ToolID] = &copied
	if closeOpenLoanAt != nil {
		for _, loan := range m.loans {
			if loan.ToolID == t.ID && loan.CheckinDate == nil {
				stamped := *closeOpenLoanAt
				loan.CheckinDate = &stamped
			}
		}
	}
	return nil
}

func (m *mockRepository) GetDecommission(toolID string) (*DecommissionRecord, error) {
	rec, ok := m.decommissions[toolID]
	if !ok {
		return nil, internal.ErrDecommissionNotFound
	}
	copied := *rec
	return &copied, nil
}

func (m *mockRepository) ListDecommissions() ([]*DecommissionRecord, error) {
	var result []*DecommissionRecord
	for _, rec := range m.decommissions {
		result = append(result, rec)
	}
	return result, nil
}

func (m *mockRepository) SaveReplacementStatus(toolID string, status ReplacementStatus) error {
	rec, ok := m.decommissions[toolID]
	if !ok {
		return internal.ErrDecommissionNotFound
	}
	rec.ReplacementStatus = status
	return nil
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

func availableTool(id string) *Tool {
	now := time.Now()
	return &Tool{
		ID:              id,
		Name:            "Taladro Bosch GSB 13",
		Category:        CategoryElectric,
		Brand:           "Bosch",
		Status:          StatusAvailable,
		Location:        "Estante A3",
		AcquisitionDate: now.AddDate(-1, 0, 0),
		LifespanMonths:  48,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

var _ = ginkgo.Describe("ToolService", func() {
	var (
		service *Service
		repo    *mockRepository
		users   *mockUserDirectory
		bus     *events.EventBus
		logger  *slog.Logger
	)

	ginkgo.BeforeEach(func() {
		repo = newMockRepository()
		users = &mockUserDirectory{names: map[string]string{
			"EMP-001": "Carlos Mendoza",
			"EMP-002": "Lucía Vargas",
		}}
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
		bus = events.NewEventBus(logger)
		service = NewService(repo, users, bus, logger)
	})

	ginkgo.Describe("Register", func() {
		ginkgo.It("should create an available tool", func() {
			dto := RegisterToolDTO{
				Name:            "Llave dinamométrica",
				Category:        "mechanic",
				Brand:           "Stanley",
				Location:        "Estante B1",
				AcquisitionDate: time.Now().AddDate(0, -6, 0),
				LifespanMonths:  36,
			}

			t, err := service.Register(dto)

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(t.ID).ToNot(gomega.BeEmpty())
			gomega.Expect(t.Status).To(gomega.Equal(StatusAvailable))
			gomega.Expect(t.Custody).To(gomega.BeNil())
		})

		ginkgo.It("should reject an unknown category", func() {
			dto := RegisterToolDTO{
				Name:            "Llave dinamométrica",
				Category:        "hydraulic",
				AcquisitionDate: time.Now().AddDate(0, -6, 0),
			}

			_, err := service.Register(dto)

			gomega.Expect(err).To(gomega.HaveOccurred())
			appErr, ok := internal.IsAppError(err)
			gomega.Expect(ok).To(gomega.BeTrue())
			gomega.Expect(appErr.Type).To(gomega.Equal(internal.ErrorTypeValidation))
		})

		ginkgo.It("should reject a duplicate asset code", func() {
			repo.addTool(availableTool("HER-001"))

			dto := RegisterToolDTO{
				ID:              "HER-001",
				Name:            "Taladro",
				Category:        "electric",
				AcquisitionDate: time.Now().AddDate(0, -1, 0),
			}

			_, err := service.Register(dto)

			gomega.Expect(err).To(gomega.Equal(internal.ErrToolAlreadyRegistered))
		})
	})

	ginkgo.Describe("CheckOut", func() {
		ginkgo.BeforeEach(func() {
			repo.addTool(availableTool("HER-001"))
		})

		ginkgo.It("should open a loan and hand custody to the user", func() {
			dto := CheckOutDTO{
				UserID:            "EMP-001",
				EstimatedReturnAt: time.Now().Add(4 * time.Hour),
			}

			rec, err := service.CheckOut("HER-001", dto)

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(rec.Open()).To(gomega.BeTrue())
			gomega.Expect(rec.UserID).To(gomega.Equal("EMP-001"))

			t, _ := repo.GetTool("HER-001")
			gomega.Expect(t.Status).To(gomega.Equal(StatusBorrowed))
			gomega.Expect(t.Custody).ToNot(gomega.BeNil())
			gomega.Expect(t.Custody.UserID).To(gomega.Equal("EMP-001"))
			gomega.Expect(t.CustodyConsistent()).To(gomega.BeTrue())
		})

		ginkgo.It("should reject a checkout for an unknown user", func() {
			dto := CheckOutDTO{
				UserID:            "EMP-999",
				EstimatedReturnAt: time.Now().Add(4 * time.Hour),
			}

			_, err := service.CheckOut("HER-001", dto)

			gomega.Expect(err).To(gomega.Equal(internal.ErrUserNotFound))

			t, _ := repo.GetTool("HER-001")
			gomega.Expect(t.Status).To(gomega.Equal(StatusAvailable))
		})

		ginkgo.It("should reject a checkout of a borrowed tool", func() {
			dto := CheckOutDTO{
				UserID:            "EMP-001",
				EstimatedReturnAt: time.Now().Add(4 * time.Hour),
			}
			_, err := service.CheckOut("HER-001", dto)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			dto.UserID = "EMP-002"
			_, err = service.CheckOut("HER-001", dto)

			gomega.Expect(err).To(gomega.Equal(internal.ErrToolNotAvailable))
			appErr, _ := internal.IsAppError(err)
			gomega.Expect(appErr.Type).To(gomega.Equal(internal.ErrorTypeInvalidTransition))
		})
	})

	ginkgo.Describe("CheckIn", func() {
		ginkgo.BeforeEach(func() {
			repo.addTool(availableTool("HER-001"))
		})

		ginkgo.It("should close the loan and make the tool available", func() {
			_, err := service.CheckOut("HER-001", CheckOutDTO{
				UserID:            "EMP-001",
				EstimatedReturnAt: time.Now().Add(4 * time.Hour),
			})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			rec, err := service.CheckIn("HER-001")

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(rec.Open()).To(gomega.BeFalse())
			gomega.Expect(rec.CheckinDate).ToNot(gomega.BeNil())

			t, _ := repo.GetTool("HER-001")
			gomega.Expect(t.Status).To(gomega.Equal(StatusAvailable))
			gomega.Expect(t.Custody).To(gomega.BeNil())
		})

		ginkgo.It("should reject a second check-in of the same tool", func() {
			_, err := service.CheckOut("HER-001", CheckOutDTO{
				UserID:            "EMP-001",
				EstimatedReturnAt: time.Now().Add(4 * time.Hour),
			})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			_, err = service.CheckIn("HER-001")
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			_, err = service.CheckIn("HER-001")

			gomega.Expect(err).To(gomega.Equal(internal.ErrToolNotBorrowed))
			appErr, _ := internal.IsAppError(err)
			gomega.Expect(appErr.Type).To(gomega.Equal(internal.ErrorTypeInvalidTransition))
		})

		ginkgo.It("should support checkout, check-in and a second checkout by another user", func() {
			_, err := service.CheckOut("HER-001", CheckOutDTO{
				UserID:            "EMP-001",
				EstimatedReturnAt: time.Now().Add(4 * time.Hour),
			})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			_, err = service.CheckIn("HER-001")
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			_, err = service.CheckOut("HER-001", CheckOutDTO{
				UserID:            "EMP-002",
				EstimatedReturnAt: time.Now().Add(2 * time.Hour),
			})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			t, _ := repo.GetTool("HER-001")
			gomega.Expect(t.Custody.UserID).To(gomega.Equal("EMP-002"))

			loans, _ := service.Loans(LoanFilter{ToolID: "HER-001"})
			gomega.Expect(loans).To(gomega.HaveLen(2))
		})
	})

	ginkgo.Describe("SendToMaintenance", func() {
		ginkgo.BeforeEach(func() {
			repo.addTool(availableTool("HER-001"))
		})

		ginkgo.It("should move the tool into maintenance and record the intervention", func() {
			rec, err := service.SendToMaintenance("HER-001", MaintenanceDTO{
				Company:     "Servitec",
				Type:        "preventive",
				Description: "Lubricación y ajuste",
			})

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(rec.Type).To(gomega.Equal(MaintenancePreventive))

			t, _ := repo.GetTool("HER-001")
			gomega.Expect(t.Status).To(gomega.Equal(StatusInMaintenance))
		})

		ginkgo.It("should close the open loan when a borrowed tool goes to the shop", func() {
			_, err := service.CheckOut("HER-001", CheckOutDTO{
				UserID:            "EMP-001",
				EstimatedReturnAt: time.Now().Add(4 * time.Hour),
			})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			_, err = service.SendToMaintenance("HER-001", MaintenanceDTO{
				Company:     "Servitec",
				Type:        "corrective",
				Description: "Motor recalienta",
			})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			t, _ := repo.GetTool("HER-001")
			gomega.Expect(t.Status).To(gomega.Equal(StatusInMaintenance))
			gomega.Expect(t.Custody).To(gomega.BeNil())

			open, _ := service.Loans(LoanFilter{ToolID: "HER-001", OnlyOpen: true})
			gomega.Expect(open).To(gomega.BeEmpty())
		})

		ginkgo.It("should return the tool to service afterwards", func() {
			_, err := service.SendToMaintenance("HER-001", MaintenanceDTO{
				Company:     "Servitec",
				Type:        "preventive",
				Description: "Revisión anual",
			})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			t, err := service.ReturnFromMaintenance("HER-001")

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(t.Status).To(gomega.Equal(StatusAvailable))
		})

		ginkgo.It("should reject returning a tool that is not in maintenance", func() {
			_, err := service.ReturnFromMaintenance("HER-001")

			gomega.Expect(err).To(gomega.Equal(internal.ErrToolNotInMaintenance))
		})
	})

	ginkgo.Describe("Decommission", func() {
		ginkgo.BeforeEach(func() {
			repo.addTool(availableTool("HER-001"))
		})

		decommissionDTO := DecommissionDTO{
			Reason:            "Desgaste irreparable",
			Description:       "Carcasa fracturada, no admite reparación",
			ReplacementReason: "Herramienta de uso diario en línea 2",
		}

		ginkgo.It("should retire the tool and open the replacement workflow", func() {
			rec, err := service.Decommission("HER-001", "EMP-002", decommissionDTO)

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(rec.ReplacementStatus).To(gomega.Equal(ReplacementGenerated))
			gomega.Expect(rec.ResponsibleUserID).To(gomega.Equal("EMP-002"))

			t, _ := repo.GetTool("HER-001")
			gomega.Expect(t.Status).To(gomega.Equal(StatusDecommissioned))
			gomega.Expect(t.Location).To(gomega.Equal(HoldingLocation))
		})

		ginkgo.It("should close the open loan when a borrowed tool is retired", func() {
			_, err := service.CheckOut("HER-001", CheckOutDTO{
				UserID:            "EMP-001",
				EstimatedReturnAt: time.Now().Add(4 * time.Hour),
			})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			_, err = service.Decommission("HER-001", "EMP-002", decommissionDTO)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			open, _ := service.Loans(LoanFilter{ToolID: "HER-001", OnlyOpen: true})
			gomega.Expect(open).To(gomega.BeEmpty())

			t, _ := repo.GetTool("HER-001")
			gomega.Expect(t.Custody).To(gomega.BeNil())
		})

		ginkgo.It("should reject a second decommission", func() {
			_, err := service.Decommission("HER-001", "EMP-002", decommissionDTO)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			_, err = service.Decommission("HER-001", "EMP-002", decommissionDTO)

			gomega.Expect(err).To(gomega.Equal(internal.ErrAlreadyDecommissioned))
		})

		ginkgo.It("should reject a decommission without an acting user", func() {
			_, err := service.Decommission("HER-001", "", decommissionDTO)

			gomega.Expect(err).To(gomega.Equal(internal.ErrMissingActor))
		})

		ginkgo.It("should block checkout of a decommissioned tool", func() {
			_, err := service.Decommission("HER-001", "EMP-002", decommissionDTO)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			_, err = service.CheckOut("HER-001", CheckOutDTO{
				UserID:            "EMP-001",
				EstimatedReturnAt: time.Now().Add(time.Hour),
			})

			gomega.Expect(err).To(gomega.Equal(internal.ErrToolNotAvailable))
		})
	})

	ginkgo.Describe("AdvanceReplacement", func() {
		ginkgo.BeforeEach(func() {
			repo.addTool(availableTool("HER-001"))
			_, err := service.Decommission("HER-001", "EMP-002", DecommissionDTO{
				Reason:            "Desgaste",
				Description:       "Fuera de servicio",
				ReplacementReason: "Reposición de stock",
			})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
		})

		ginkgo.It("should advance one stage at a time through the whole workflow", func() {
			stages := []ReplacementStatus{
				ReplacementSeen,
				ReplacementInProgress,
				ReplacementDelivered,
				ReplacementReceived,
			}

			for _, stage := range stages {
				rec, err := service.AdvanceReplacement("HER-001", stage)
				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(rec.ReplacementStatus).To(gomega.Equal(stage))
			}
		})

		ginkgo.It("should reject skipping a stage", func() {
			_, err := service.AdvanceReplacement("HER-001", ReplacementDelivered)

			gomega.Expect(err).To(gomega.Equal(internal.ErrReplacementOutOfOrder))

			rec, _ := service.GetDecommission("HER-001")
			gomega.Expect(rec.ReplacementStatus).To(gomega.Equal(ReplacementGenerated))
		})

		ginkgo.It("should reject moving backwards", func() {
			_, err := service.AdvanceReplacement("HER-001", ReplacementSeen)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			_, err = service.AdvanceReplacement("HER-001", ReplacementGenerated)

			gomega.Expect(err).To(gomega.Equal(internal.ErrReplacementOutOfOrder))
		})

		ginkgo.It("should reject advancing past the final stage", func() {
			for _, stage := range []ReplacementStatus{ReplacementSeen, ReplacementInProgress, ReplacementDelivered, ReplacementReceived} {
				_, err := service.AdvanceReplacement("HER-001", stage)
				gomega.Expect(err).ToNot(gomega.HaveOccurred())
			}

			_, err := service.AdvanceReplacement("HER-001", ReplacementReceived)

			gomega.Expect(err).To(gomega.Equal(internal.ErrReplacementComplete))
		})
	})
})
